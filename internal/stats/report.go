package stats

import (
	"fmt"
	"strings"

	"github.com/ryanlwk/marksix-analysisv1/internal/model"
)

const bannerWidth = 60

func banner() string {
	return strings.Repeat("=", bannerWidth)
}

// FormatHistory renders the draw listing for stdout, newest first.
func FormatHistory(draws []model.Draw) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", banner())
	fmt.Fprintf(&b, "DRAW HISTORY - %d draws\n", len(draws))
	if len(draws) > 0 {
		fmt.Fprintf(&b, "Date range: %s to %s\n",
			draws[0].DateKey(), draws[len(draws)-1].DateKey())
	}
	fmt.Fprintf(&b, "%s\n\n", banner())
	fmt.Fprintf(&b, "%-12s %-25s %-5s\n", "Date", "Numbers", "Extra")
	b.WriteString(strings.Repeat("-", bannerWidth) + "\n")

	for _, d := range draws {
		nums := fmt.Sprintf("%2d, %2d, %2d, %2d, %2d, %2d",
			d.Numbers[0], d.Numbers[1], d.Numbers[2],
			d.Numbers[3], d.Numbers[4], d.Numbers[5])
		extra := "N/A"
		if d.Special != 0 {
			extra = fmt.Sprintf("%d", d.Special)
		}
		fmt.Fprintf(&b, "%-12s %-25s %-5s\n", d.DateKey(), nums, extra)
	}
	b.WriteString("\n")
	return b.String()
}

// FormatReport renders the frequency analysis for stdout.
func FormatReport(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", banner())
	fmt.Fprintf(&b, "FREQUENCY ANALYSIS - %d draws\n", r.DrawCount)
	fmt.Fprintf(&b, "Date range: %s to %s\n",
		r.To.Format("2006-01-02"), r.From.Format("2006-01-02"))
	fmt.Fprintf(&b, "%s\n\n", banner())

	b.WriteString("TOP 10 MOST FREQUENT NUMBERS (Main 6):\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, nc := range r.TopMain {
		fmt.Fprintf(&b, "  Number %2d: %2d times\n", nc.Number, nc.Count)
	}

	fmt.Fprintf(&b, "\nNUMBERS THAT NEVER APPEARED (%d total):\n", len(r.Never))
	b.WriteString(strings.Repeat("-", 40) + "\n")
	if len(r.Never) > 0 {
		parts := make([]string, len(r.Never))
		for i, n := range r.Never {
			parts[i] = fmt.Sprintf("%d", n)
		}
		fmt.Fprintf(&b, "  %s\n", strings.Join(parts, ", "))
	} else {
		b.WriteString("  All numbers 1-49 appeared at least once\n")
	}

	b.WriteString("\nLEAST FREQUENT NUMBERS (Bottom 10):\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, nc := range r.Bottom {
		fmt.Fprintf(&b, "  Number %2d: %2d times\n", nc.Number, nc.Count)
	}

	if len(r.TopExtra) > 0 {
		b.WriteString("\nTOP 10 MOST FREQUENT EXTRA NUMBERS:\n")
		b.WriteString(strings.Repeat("-", 40) + "\n")
		for _, nc := range r.TopExtra {
			fmt.Fprintf(&b, "  Extra %2d: %2d times\n", nc.Number, nc.Count)
		}
	}

	fmt.Fprintf(&b, "\n%s\n\n", banner())
	return b.String()
}
