package stats

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ryanlwk/marksix-analysisv1/internal/model"
)

// ErrNoDataInRange is returned when no draws fall inside the requested
// window. Callers report it as a message, not a crash.
var ErrNoDataInRange = errors.New("no draws in the selected range")

// NumberCount pairs a ball number with its occurrence count.
type NumberCount struct {
	Number int
	Count  int
}

// Report holds the frequency analysis over a time window.
type Report struct {
	Months    int
	DrawCount int
	From, To  time.Time // date range of the analyzed draws
	TopMain   []NumberCount
	Never     []int // numbers 1-49 that never appeared as a main number
	Bottom    []NumberCount
	TopExtra  []NumberCount
}

// Window returns the draws dated within the last months calendar months
// before now.
func Window(draws []model.Draw, months int, now time.Time) []model.Draw {
	cutoff := now.AddDate(0, -months, 0)
	var window []model.Draw
	for _, d := range draws {
		if !d.Date.Before(cutoff) {
			window = append(window, d)
		}
	}
	return window
}

// Analyze filters draws to the last 1, 3, or 6 calendar months before now
// and computes frequency counts for main and Extra numbers.
func Analyze(draws []model.Draw, months int, now time.Time) (*Report, error) {
	if months != 1 && months != 3 && months != 6 {
		return nil, fmt.Errorf("months must be 1, 3, or 6, got %d", months)
	}

	window := Window(draws, months, now)
	if len(window) == 0 {
		return nil, ErrNoDataInRange
	}

	from, to := window[0].Date, window[0].Date
	mainFreq := make(map[int]int)
	extraFreq := make(map[int]int)
	for _, d := range window {
		if d.Date.Before(from) {
			from = d.Date
		}
		if d.Date.After(to) {
			to = d.Date
		}
		for _, n := range d.Numbers {
			mainFreq[n]++
		}
		if d.Special != 0 {
			extraFreq[d.Special]++
		}
	}

	var never []int
	for n := model.MinNumber; n <= model.MaxNumber; n++ {
		if mainFreq[n] == 0 {
			never = append(never, n)
		}
	}

	appeared := sortedCounts(mainFreq)
	return &Report{
		Months:    months,
		DrawCount: len(window),
		From:      from,
		To:        to,
		TopMain:   topN(appeared, 10),
		Never:     never,
		Bottom:    bottomN(appeared, 10),
		TopExtra:  topN(sortedCounts(extraFreq), 10),
	}, nil
}

// sortedCounts flattens a frequency map ordered by count descending, number
// ascending on ties.
func sortedCounts(freq map[int]int) []NumberCount {
	counts := make([]NumberCount, 0, len(freq))
	for n, c := range freq {
		counts = append(counts, NumberCount{Number: n, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Number < counts[j].Number
	})
	return counts
}

func topN(counts []NumberCount, n int) []NumberCount {
	if len(counts) > n {
		counts = counts[:n]
	}
	return append([]NumberCount(nil), counts...)
}

// bottomN returns the n least frequent entries, count ascending, number
// ascending on ties. Only numbers that actually appeared are candidates.
func bottomN(counts []NumberCount, n int) []NumberCount {
	out := make([]NumberCount, len(counts))
	copy(out, counts)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}
		return out[i].Number < out[j].Number
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
