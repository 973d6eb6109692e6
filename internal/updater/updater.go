package updater

import (
	"fmt"
	"log"
	"time"

	"github.com/ryanlwk/marksix-analysisv1/internal/history"
	"github.com/ryanlwk/marksix-analysisv1/internal/model"
	"github.com/ryanlwk/marksix-analysisv1/internal/recorder"
	"github.com/ryanlwk/marksix-analysisv1/internal/source"
)

// Updater orchestrates one incremental (or full) history update.
type Updater struct {
	Chain    *source.Chain
	Store    *history.Store
	Recorder recorder.Recorder
}

// Result summarizes a completed update.
type Result struct {
	Draws  []model.Draw // merged history, newest first
	Added  int          // rows not previously stored
	Source string       // name of the source that answered
}

// NewUpdater creates a new Updater.
func NewUpdater(chain *source.Chain, store *history.Store, rec recorder.Recorder) *Updater {
	return &Updater{Chain: chain, Store: store, Recorder: rec}
}

// Run loads the stored history, decides the fetch scope, fetches through the
// fallback chain, merges, and saves. forceRefresh discards the incremental
// optimization and refetches everything available. On any fetch failure the
// history file is left untouched.
func (u *Updater) Run(forceRefresh bool) (*Result, error) {
	existing, err := u.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	var since time.Time
	if !forceRefresh {
		since = history.LatestDate(existing)
	}
	switch {
	case forceRefresh:
		log.Println("[INFO] force refresh: fetching full history")
	case since.IsZero():
		log.Println("[INFO] no existing history, fetching full history")
	default:
		log.Printf("[INFO] fetching draws since %s", since.Format("2006-01-02"))
	}

	fetched, sourceName, err := u.Chain.FetchDraws(since)
	if err != nil {
		return nil, err
	}

	// Sources are not trusted to honor since; drop anything at or before it.
	if !since.IsZero() {
		kept := fetched[:0]
		for _, d := range fetched {
			if d.Date.After(since) {
				kept = append(kept, d)
			}
		}
		fetched = kept
	}

	if len(fetched) == 0 {
		log.Println("[INFO] no new draws, history is up to date")
		return &Result{Draws: existing, Added: 0, Source: sourceName}, nil
	}

	before := len(existing)
	merged := history.Merge(existing, fetched)
	if err := u.Store.Save(merged); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}
	added := len(merged) - before

	if err := u.Recorder.RecordDraws(fetched); err != nil {
		log.Printf("[ERROR] record draws: %v", err)
	}
	if err := u.Recorder.RecordUpdate(&recorder.UpdateRun{
		Timestamp:    time.Now(),
		Source:       sourceName,
		RowsFetched:  len(fetched),
		RowsAdded:    added,
		ForceRefresh: forceRefresh,
	}); err != nil {
		log.Printf("[ERROR] record update: %v", err)
	}

	log.Printf("[INFO] history updated: %d rows total, %d new (source %s)", len(merged), added, sourceName)
	return &Result{Draws: merged, Added: added, Source: sourceName}, nil
}
