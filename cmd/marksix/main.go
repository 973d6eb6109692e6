package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ryanlwk/marksix-analysisv1/internal/config"
	"github.com/ryanlwk/marksix-analysisv1/internal/history"
	"github.com/ryanlwk/marksix-analysisv1/internal/model"
	"github.com/ryanlwk/marksix-analysisv1/internal/recorder"
	"github.com/ryanlwk/marksix-analysisv1/internal/source"
	"github.com/ryanlwk/marksix-analysisv1/internal/stats"
	"github.com/ryanlwk/marksix-analysisv1/internal/updater"
)

// Actions selectable from the menu or via flags.
const (
	actionUpdate = 1
	actionStats  = 2
	actionBoth   = 3
)

func main() {
	log.SetFlags(log.LstdFlags)

	months := flag.Int("months", 0, "analysis window in months (1, 3, or 6); prompts when unset")
	statsOnly := flag.Bool("stats-only", false, "only show statistics from existing data, skip fetching")
	analyze := flag.Bool("analyze", false, "update history, then show statistics")
	forceRefresh := flag.Bool("force-refresh", false, "refetch full history instead of an incremental update")
	cfgPath := flag.String("config", "", "config file path (default configs/config.yaml)")
	flag.Parse()

	if *months != 0 && *months != 1 && *months != 3 && *months != 6 {
		log.Fatalf("[FATAL] --months must be 1, 3, or 6")
	}

	path := *cfgPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	store := history.NewStore(cfg.HistoryFile)
	stdin := bufio.NewReader(os.Stdin)

	var action int
	switch {
	case *statsOnly:
		action = actionStats
	case *analyze:
		action = actionBoth
	case *months != 0 || *forceRefresh:
		action = actionUpdate
	default:
		action = promptAction(stdin)
	}

	if action == actionStats {
		draws, err := store.Load()
		if err != nil {
			log.Fatalf("[FATAL] load history: %v", err)
		}
		if len(draws) == 0 {
			fmt.Fprintln(os.Stderr, "No existing history found. Fetch data first (option 1).")
			os.Exit(1)
		}
		showStats(draws, *months, stdin)
		return
	}

	// Update path (actions 1 and 3).
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	chain := source.NewChain(
		source.NewLottolyzerFetcher(cfg.Sources.LottolyzerURL, timeout, cfg.Proxy),
		source.NewIcelamFetcher(cfg.Sources.IcelamURL, timeout, cfg.Proxy),
		source.NewWilliammwFetcher(cfg.Sources.WilliammwURL, timeout, cfg.Proxy),
	)

	up := updater.NewUpdater(chain, store, rec)
	result, err := up.Run(*forceRefresh)
	if err != nil {
		if errors.Is(err, source.ErrAllSourcesFailed) {
			log.Fatalf("[FATAL] no data obtained from any source: %v", err)
		}
		log.Fatalf("[FATAL] update: %v", err)
	}
	fmt.Printf("History up to date: %d draws stored, %d new.\n", len(result.Draws), result.Added)

	if action == actionBoth {
		showStats(result.Draws, *months, stdin)
	}
}

// showStats prints the draw listing and frequency report for the selected
// window, prompting for the window when months is 0.
func showStats(draws []model.Draw, months int, stdin *bufio.Reader) {
	if months == 0 {
		months = promptMonths(stdin)
	}

	now := time.Now()
	window := stats.Window(draws, months, now)
	report, err := stats.Analyze(draws, months, now)
	if err != nil {
		if errors.Is(err, stats.ErrNoDataInRange) {
			fmt.Fprintf(os.Stderr, "No draws in the selected %d-month range.\n", months)
			return
		}
		log.Fatalf("[FATAL] analyze: %v", err)
	}

	fmt.Print(stats.FormatHistory(window))
	fmt.Print(stats.FormatReport(report))
}

// promptAction asks what to do, re-prompting on bad input and defaulting to
// an update when stdin closes.
func promptAction(stdin *bufio.Reader) int {
	fmt.Println("\nWhat would you like to do?")
	fmt.Println("1. Update history (fetch new results)")
	fmt.Println("2. Show history and analysis (from existing data)")
	fmt.Println("3. Both (update and show)")

	for {
		fmt.Print("\nEnter choice (1/2/3): ")
		line, err := stdin.ReadString('\n')
		choice := strings.TrimSpace(line)
		switch choice {
		case "1":
			return actionUpdate
		case "2":
			return actionStats
		case "3":
			return actionBoth
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "\nDefaulting to option 1 (update history).")
			return actionUpdate
		}
		fmt.Fprintln(os.Stderr, "Please enter 1, 2, or 3.")
	}
}

// promptMonths asks for the analysis window, defaulting to 6 months when
// stdin closes.
func promptMonths(stdin *bufio.Reader) int {
	for {
		fmt.Print("Data range: 1 month, 3 months, or 6 months? (1/3/6): ")
		line, err := stdin.ReadString('\n')
		switch strings.TrimSpace(line) {
		case "1":
			return 1
		case "3":
			return 3
		case "6":
			return 6
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "\nDefaulting to 6 months.")
			return 6
		}
		fmt.Fprintln(os.Stderr, "Please enter 1, 3, or 6.")
	}
}
