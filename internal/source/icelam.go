package source

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ryanlwk/marksix-analysisv1/internal/model"
)

// IcelamFetcher downloads the icelam/mark-six-data-visualization bulk JSON
// archive. Secondary source: complete history, no native date filtering.
type IcelamFetcher struct {
	URL    string
	Client *http.Client
}

// NewIcelamFetcher creates the fetcher with optional proxy support.
func NewIcelamFetcher(jsonURL string, timeout time.Duration, proxyURL string) *IcelamFetcher {
	return &IcelamFetcher{
		URL:    jsonURL,
		Client: newHTTPClient(timeout, proxyURL),
	}
}

func (f *IcelamFetcher) Name() string { return "icelam" }

// icelamEntry is one draw in the archive. Dates look like "2024-01-30" and
// may carry a trailing time part; numbers are strings.
type icelamEntry struct {
	Date string   `json:"date"`
	No   []string `json:"no"`
	SNo  string   `json:"sno"`
}

func (f *IcelamFetcher) FetchDraws(since time.Time) ([]model.Draw, error) {
	resp, err := f.Client.Get(f.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: icelam fetch: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: icelam: status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var entries []icelamEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: icelam decode: %v", ErrSourceUnavailable, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: icelam: empty archive", ErrSourceUnavailable)
	}

	var draws []model.Draw
	for _, e := range entries {
		draw, err := parseIcelamEntry(e)
		if err != nil {
			log.Printf("[WARN] icelam: skipping entry %q: %v", e.Date, err)
			continue
		}
		draws = append(draws, draw)
	}
	if len(draws) == 0 {
		return nil, fmt.Errorf("%w: icelam: no valid entries", ErrSourceUnavailable)
	}
	return filterSince(draws, since), nil
}

func parseIcelamEntry(e icelamEntry) (model.Draw, error) {
	if len(e.Date) < 10 {
		return model.Draw{}, fmt.Errorf("missing date")
	}
	date, err := time.Parse("2006-01-02", e.Date[:10])
	if err != nil {
		return model.Draw{}, fmt.Errorf("bad date: %v", err)
	}
	if len(e.No) != 6 {
		return model.Draw{}, fmt.Errorf("expected 6 numbers, got %d", len(e.No))
	}

	draw := model.Draw{Date: date}
	for i, s := range e.No {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return model.Draw{}, fmt.Errorf("bad number %q", s)
		}
		draw.Numbers[i] = n
	}
	// A blank sno means the Extra number was not published for that draw.
	if s := strings.TrimSpace(e.SNo); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			draw.Special = n
		}
	}

	draw.Normalize()
	if err := draw.Validate(); err != nil {
		return model.Draw{}, err
	}
	return draw, nil
}
