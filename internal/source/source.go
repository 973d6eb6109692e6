package source

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/ryanlwk/marksix-analysisv1/internal/model"
)

// ErrSourceUnavailable marks a single source as failed (network, HTTP
// status, or parse error). The fallback chain recovers by trying the next
// source.
var ErrSourceUnavailable = errors.New("source unavailable")

// ErrAllSourcesFailed is returned when every source in the chain failed or
// returned no draws.
var ErrAllSourcesFailed = errors.New("all sources failed")

// Fetcher defines the interface for fetching draw history from one source.
// A zero since means full available history; otherwise only draws strictly
// newer than since are wanted (sources without native filtering filter
// client-side).
type Fetcher interface {
	FetchDraws(since time.Time) ([]model.Draw, error)
	Name() string
}

// newHTTPClient builds the shared client with timeout and optional proxy.
func newHTTPClient(timeout time.Duration, proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// filterSince drops draws not strictly newer than since.
func filterSince(draws []model.Draw, since time.Time) []model.Draw {
	if since.IsZero() {
		return draws
	}
	out := draws[:0]
	for _, d := range draws {
		if d.Date.After(since) {
			out = append(out, d)
		}
	}
	return out
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Label string
	Draws []model.Draw
	Err   error
}

func (m *MockFetcher) Name() string {
	if m.Label != "" {
		return m.Label
	}
	return "mock"
}

func (m *MockFetcher) FetchDraws(since time.Time) ([]model.Draw, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return filterSince(append([]model.Draw(nil), m.Draws...), since), nil
}
