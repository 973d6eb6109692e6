package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ryanlwk/marksix-analysisv1/internal/model"
)

func mkDraw(t *testing.T, date string, nums [6]int, special int) model.Draw {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("parse date %s: %v", date, err)
	}
	return model.Draw{Date: d, Numbers: nums, Special: special}
}

func TestLoad_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.csv"))
	draws, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(draws) != 0 {
		t.Fatalf("expected empty history, got %d rows", len(draws))
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "data", "history.csv"))
	draws := []model.Draw{
		mkDraw(t, "2025-01-15", [6]int{3, 8, 14, 22, 30, 41}, 7),
		mkDraw(t, "2025-01-12", [6]int{1, 9, 18, 25, 33, 47}, 0),
		mkDraw(t, "2025-01-10", [6]int{2, 5, 11, 29, 38, 44}, 16),
	}
	if err := store.Save(draws); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != len(draws) {
		t.Fatalf("expected %d rows, got %d", len(draws), len(loaded))
	}
	for i := range draws {
		if loaded[i] != draws[i] {
			t.Fatalf("row %d: expected %+v, got %+v", i, draws[i], loaded[i])
		}
	}
}

func TestSave_HeaderAndOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	store := NewStore(path)
	draws := []model.Draw{
		mkDraw(t, "2025-01-10", [6]int{2, 5, 11, 29, 38, 44}, 16),
		mkDraw(t, "2025-01-15", [6]int{3, 8, 14, 22, 30, 41}, 7),
	}
	if err := store.Save(Merge(nil, draws)); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "date,n1,n2,n3,n4,n5,n6,special_number" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "2025-01-15") || !strings.HasPrefix(lines[2], "2025-01-10") {
		t.Fatalf("rows not sorted descending: %v", lines[1:])
	}
}

func TestSave_BlankSpecialCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	store := NewStore(path)
	if err := store.Save([]model.Draw{mkDraw(t, "2025-01-12", [6]int{1, 9, 18, 25, 33, 47}, 0)}); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(data), "2025-01-12,1,9,18,25,33,47,\n") {
		t.Fatalf("expected blank special cell, got:\n%s", data)
	}
}

func TestMerge_DedupeCount(t *testing.T) {
	existing := []model.Draw{
		mkDraw(t, "2025-01-10", [6]int{2, 5, 11, 29, 38, 44}, 16),
		mkDraw(t, "2025-01-08", [6]int{4, 6, 13, 21, 35, 40}, 2),
		mkDraw(t, "2025-01-05", [6]int{1, 9, 18, 25, 33, 47}, 12),
	}
	// 3 fresh rows, 1 overlapping date: expect 3 + 3 - 1 = 5.
	fresh := []model.Draw{
		mkDraw(t, "2025-01-15", [6]int{3, 8, 14, 22, 30, 41}, 7),
		mkDraw(t, "2025-01-12", [6]int{7, 10, 19, 26, 34, 45}, 3),
		mkDraw(t, "2025-01-10", [6]int{1, 2, 3, 4, 5, 6}, 49),
	}

	merged := Merge(existing, fresh)
	if len(merged) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(merged))
	}

	seen := make(map[string]bool)
	for _, d := range merged {
		if seen[d.DateKey()] {
			t.Fatalf("duplicate date %s", d.DateKey())
		}
		seen[d.DateKey()] = true
	}
}

func TestMerge_NewDataWins(t *testing.T) {
	existing := []model.Draw{mkDraw(t, "2025-01-10", [6]int{2, 5, 11, 29, 38, 44}, 16)}
	fresh := []model.Draw{mkDraw(t, "2025-01-10", [6]int{1, 2, 3, 4, 5, 6}, 49)}

	merged := Merge(existing, fresh)
	if len(merged) != 1 {
		t.Fatalf("expected 1 row, got %d", len(merged))
	}
	if merged[0].Numbers != fresh[0].Numbers || merged[0].Special != 49 {
		t.Fatalf("expected fresh values to win, got %+v", merged[0])
	}
}

func TestLoad_SkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	content := "date,n1,n2,n3,n4,n5,n6,special_number\n" +
		"2025-01-15,3,8,14,22,30,41,7\n" +
		"not-a-date,1,2,3,4,5,6,7\n" +
		"2025-01-10,2,5,11,29,38,44,16\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	draws, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(draws) != 2 {
		t.Fatalf("expected 2 valid rows, got %d", len(draws))
	}
}

func TestLoad_BadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	if err := os.WriteFile(path, []byte("foo,bar\n1,2\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := NewStore(path).Load(); err == nil {
		t.Fatal("expected error for bad header")
	}
}

func TestLatestDate(t *testing.T) {
	if !LatestDate(nil).IsZero() {
		t.Fatal("expected zero time for empty history")
	}
	draws := []model.Draw{
		mkDraw(t, "2025-01-05", [6]int{1, 9, 18, 25, 33, 47}, 12),
		mkDraw(t, "2025-01-15", [6]int{3, 8, 14, 22, 30, 41}, 7),
		mkDraw(t, "2025-01-10", [6]int{2, 5, 11, 29, 38, 44}, 16),
	}
	if got := LatestDate(draws).Format("2006-01-02"); got != "2025-01-15" {
		t.Fatalf("expected 2025-01-15, got %s", got)
	}
}
