package source

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const icelamArchive = `[
  {"date": "2025-01-15", "no": ["3", "8", "14", "22", "30", "41"], "sno": "7"},
  {"date": "2025-01-12", "no": ["1", "9", "18", "25", "33", "47"], "sno": ""},
  {"date": "2025-01-10", "no": ["2", "5", "11", "29", "38"], "sno": "16"},
  {"date": "", "no": ["1", "2", "3", "4", "5", "6"], "sno": "7"},
  {"date": "2025-01-08", "no": ["4", "6", "13", "21", "35", "x"], "sno": "2"}
]`

func TestIcelam_ParsesArchive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(icelamArchive))
	}))
	defer srv.Close()

	draws, err := NewIcelamFetcher(srv.URL, 5*time.Second, "").FetchDraws(time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Short, dateless, and non-numeric entries are skipped.
	if len(draws) != 2 {
		t.Fatalf("expected 2 draws, got %d", len(draws))
	}
	if draws[0].DateKey() != "2025-01-15" || draws[0].Special != 7 {
		t.Fatalf("unexpected first draw: %+v", draws[0])
	}
	if draws[1].Special != 0 {
		t.Fatalf("blank sno should give Special 0, got %d", draws[1].Special)
	}
}

func TestIcelam_SinceFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(icelamArchive))
	}))
	defer srv.Close()

	since, _ := time.Parse("2006-01-02", "2025-01-12")
	draws, err := NewIcelamFetcher(srv.URL, 5*time.Second, "").FetchDraws(since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(draws) != 1 || draws[0].DateKey() != "2025-01-15" {
		t.Fatalf("expected only the 2025-01-15 draw, got %+v", draws)
	}
}

func TestIcelam_BadJSONIsSourceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := NewIcelamFetcher(srv.URL, 5*time.Second, "").FetchDraws(time.Time{})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestIcelam_EmptyArchiveIsSourceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, err := NewIcelamFetcher(srv.URL, 5*time.Second, "").FetchDraws(time.Time{})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}
