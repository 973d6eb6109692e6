package source

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ryanlwk/marksix-analysisv1/internal/model"
)

// WilliammwFetcher downloads the williammw/marksixheatmap CSV archive.
// Tertiary source: oldest data, no native date filtering.
type WilliammwFetcher struct {
	URL    string
	Client *http.Client
}

// NewWilliammwFetcher creates the fetcher with optional proxy support.
func NewWilliammwFetcher(csvURL string, timeout time.Duration, proxyURL string) *WilliammwFetcher {
	return &WilliammwFetcher{
		URL:    csvURL,
		Client: newHTTPClient(timeout, proxyURL),
	}
}

func (f *WilliammwFetcher) Name() string { return "williammw" }

func (f *WilliammwFetcher) FetchDraws(since time.Time) ([]model.Draw, error) {
	resp, err := f.Client.Get(f.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: williammw fetch: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: williammw: status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	r := csv.NewReader(resp.Body)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: williammw read csv: %v", ErrSourceUnavailable, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: williammw: empty archive", ErrSourceUnavailable)
	}

	cols, err := mapWilliammwColumns(records[0])
	if err != nil {
		return nil, fmt.Errorf("%w: williammw: %v", ErrSourceUnavailable, err)
	}

	var draws []model.Draw
	for _, rec := range records[1:] {
		draw, err := parseWilliammwRow(rec, cols)
		if err != nil {
			log.Printf("[WARN] williammw: skipping row: %v", err)
			continue
		}
		draws = append(draws, draw)
	}
	if len(draws) == 0 {
		return nil, fmt.Errorf("%w: williammw: no valid rows", ErrSourceUnavailable)
	}
	return filterSince(draws, since), nil
}

// williammwColumns maps the archive's header to field indexes. The header
// names the first ball "Winning Number 1" and the rest just "2".."6"; the
// extra ball column merely contains the word "Extra".
type williammwColumns struct {
	date  int
	nums  [6]int
	extra int // -1 when absent
}

func mapWilliammwColumns(header []string) (williammwColumns, error) {
	cols := williammwColumns{date: -1, extra: -1}
	for i := range cols.nums {
		cols.nums[i] = -1
	}
	wanted := map[string]*int{
		"Date":             &cols.date,
		"Winning Number 1": &cols.nums[0],
		"2":                &cols.nums[1],
		"3":                &cols.nums[2],
		"4":                &cols.nums[3],
		"5":                &cols.nums[4],
		"6":                &cols.nums[5],
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if p, ok := wanted[name]; ok {
			*p = i
		} else if strings.Contains(name, "Extra") {
			cols.extra = i
		}
	}
	if cols.date < 0 {
		return cols, fmt.Errorf("no Date column")
	}
	for i, idx := range cols.nums {
		if idx < 0 {
			return cols, fmt.Errorf("missing winning number column %d", i+1)
		}
	}
	return cols, nil
}

// williammwDateLayouts covers the date formats seen in the archive.
var williammwDateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006", "2006/01/02"}

func parseWilliammwRow(rec []string, cols williammwColumns) (model.Draw, error) {
	maxIdx := cols.date
	for _, idx := range cols.nums {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	if len(rec) <= maxIdx {
		return model.Draw{}, fmt.Errorf("short row (%d fields)", len(rec))
	}

	dateText := strings.TrimSpace(rec[cols.date])
	var date time.Time
	var err error
	for _, layout := range williammwDateLayouts {
		if date, err = time.Parse(layout, dateText); err == nil {
			break
		}
	}
	if err != nil {
		return model.Draw{}, fmt.Errorf("bad date %q", dateText)
	}

	draw := model.Draw{Date: date}
	for i, idx := range cols.nums {
		n, err := strconv.Atoi(strings.TrimSpace(rec[idx]))
		if err != nil {
			return model.Draw{}, fmt.Errorf("bad number %q", rec[idx])
		}
		draw.Numbers[i] = n
	}
	if cols.extra >= 0 && cols.extra < len(rec) {
		if n, err := strconv.Atoi(strings.TrimSpace(rec[cols.extra])); err == nil {
			draw.Special = n
		}
	}

	draw.Normalize()
	if err := draw.Validate(); err != nil {
		return model.Draw{}, err
	}
	return draw, nil
}
