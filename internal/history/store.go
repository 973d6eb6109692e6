package history

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ryanlwk/marksix-analysisv1/internal/model"
)

// Header is the fixed history.csv column layout.
var Header = []string{"date", "n1", "n2", "n3", "n4", "n5", "n6", "special_number"}

// Store reads and writes the local draw history CSV.
type Store struct {
	Path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the history file. A missing file yields an empty slice.
// Malformed rows are skipped, not fatal: the file may have been edited by
// hand.
func (s *Store) Load() ([]model.Draw, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if len(records[0]) == 0 || records[0][0] != "date" {
		return nil, fmt.Errorf("read history: unexpected header %v", records[0])
	}

	var draws []model.Draw
	for _, rec := range records[1:] {
		draw, err := parseRow(rec)
		if err != nil {
			log.Printf("[WARN] history: skipping row %v: %v", rec, err)
			continue
		}
		draws = append(draws, draw)
	}
	return draws, nil
}

// Merge overlays fresh draws onto existing ones keyed by date. A fresh draw
// for an already-stored date replaces the stored row. The result is sorted
// newest first.
func Merge(existing, fresh []model.Draw) []model.Draw {
	byDate := make(map[string]model.Draw, len(existing)+len(fresh))
	for _, d := range existing {
		byDate[d.DateKey()] = d
	}
	for _, d := range fresh {
		byDate[d.DateKey()] = d
	}

	merged := make([]model.Draw, 0, len(byDate))
	for _, d := range byDate {
		merged = append(merged, d)
	}
	model.SortByDateDesc(merged)
	return merged
}

// Save writes the full history atomically: temp file in the target
// directory, then rename. The merge has already completed in memory, so a
// failed write leaves the previous file intact.
func (s *Store) Save(draws []model.Draw) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "history-*.csv")
	if err != nil {
		return fmt.Errorf("create temp history: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(Header); err != nil {
		tmp.Close()
		return fmt.Errorf("write history header: %w", err)
	}
	for _, d := range draws {
		if err := w.Write(formatRow(d)); err != nil {
			tmp.Close()
			return fmt.Errorf("write history row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp history: %w", err)
	}

	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

// LatestDate returns the newest draw date, zero when there are none.
func LatestDate(draws []model.Draw) time.Time {
	var latest time.Time
	for _, d := range draws {
		if d.Date.After(latest) {
			latest = d.Date
		}
	}
	return latest
}

func parseRow(rec []string) (model.Draw, error) {
	if len(rec) < 7 {
		return model.Draw{}, fmt.Errorf("short row (%d fields)", len(rec))
	}
	date, err := time.Parse("2006-01-02", rec[0])
	if err != nil {
		return model.Draw{}, fmt.Errorf("bad date %q", rec[0])
	}
	draw := model.Draw{Date: date}
	for i := 0; i < 6; i++ {
		n, err := strconv.Atoi(rec[i+1])
		if err != nil {
			return model.Draw{}, fmt.Errorf("bad number %q", rec[i+1])
		}
		draw.Numbers[i] = n
	}
	if len(rec) > 7 && rec[7] != "" {
		n, err := strconv.Atoi(rec[7])
		if err != nil {
			return model.Draw{}, fmt.Errorf("bad extra number %q", rec[7])
		}
		draw.Special = n
	}
	draw.Normalize()
	if err := draw.Validate(); err != nil {
		return model.Draw{}, err
	}
	return draw, nil
}

func formatRow(d model.Draw) []string {
	row := make([]string, 8)
	row[0] = d.DateKey()
	for i, n := range d.Numbers {
		row[i+1] = strconv.Itoa(n)
	}
	if d.Special != 0 {
		row[7] = strconv.Itoa(d.Special)
	}
	return row
}
