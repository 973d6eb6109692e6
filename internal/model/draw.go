package model

import (
	"fmt"
	"sort"
	"time"
)

// MinNumber and MaxNumber bound every ball in a Mark Six draw.
const (
	MinNumber = 1
	MaxNumber = 49
)

// Draw represents one Mark Six draw: six main numbers plus the Extra number.
type Draw struct {
	Date    time.Time
	Numbers [6]int
	Special int // 0 when the source did not publish an Extra number
}

// DateKey returns the draw's identity key (one draw per calendar date).
func (d *Draw) DateKey() string {
	return d.Date.Format("2006-01-02")
}

// Normalize sorts the six main numbers ascending.
func (d *Draw) Normalize() {
	sort.Ints(d.Numbers[:])
}

// Validate checks number ranges, main-number uniqueness, and that the
// Extra number is not among the main six. Special 0 means "not published"
// and is accepted.
func (d *Draw) Validate() error {
	if d.Date.IsZero() {
		return fmt.Errorf("draw has no date")
	}
	seen := make(map[int]bool, 6)
	for _, n := range d.Numbers {
		if n < MinNumber || n > MaxNumber {
			return fmt.Errorf("draw %s: number %d out of range", d.DateKey(), n)
		}
		if seen[n] {
			return fmt.Errorf("draw %s: duplicate number %d", d.DateKey(), n)
		}
		seen[n] = true
	}
	if d.Special != 0 {
		if d.Special < MinNumber || d.Special > MaxNumber {
			return fmt.Errorf("draw %s: extra number %d out of range", d.DateKey(), d.Special)
		}
		if seen[d.Special] {
			return fmt.Errorf("draw %s: extra number %d repeats a main number", d.DateKey(), d.Special)
		}
	}
	return nil
}

// SortByDateDesc orders draws newest first, the order history.csv is kept in.
func SortByDateDesc(draws []Draw) {
	sort.Slice(draws, func(i, j int) bool { return draws[i].Date.After(draws[j].Date) })
}
