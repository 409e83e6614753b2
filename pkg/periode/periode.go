// Package periode generates the month labels ("November 2025") that bucket
// hadiah entries and dashboard stats.
package periode

import (
	"fmt"
	"time"
)

// Default window: 24 months starting November 2025.
const (
	AnchorMonth = time.November
	AnchorYear  = 2025
	WindowSize  = 24
)

var bulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian name of m.
func MonthName(m time.Month) string {
	return bulan[m-1]
}

// Label formats the month of t the way hadiah.month stores it.
func Label(t time.Time) string {
	return fmt.Sprintf("%s %d", MonthName(t.Month()), t.Year())
}

// Months returns count consecutive labels starting at anchor/year.
func Months(anchor time.Month, year, count int) []string {
	if count <= 0 {
		return []string{}
	}
	start := time.Date(year, anchor, 1, 0, 0, 0, 0, time.UTC)
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, Label(start.AddDate(0, i, 0)))
	}
	return out
}

// Window is the list of selectable periods.
type Window struct {
	Labels []string
}

// DefaultWindow is the fixed 24 month window from November 2025.
func DefaultWindow() Window {
	return Window{Labels: Months(AnchorMonth, AnchorYear, WindowSize)}
}

// Contains reports whether label is one of the window's periods.
func (w Window) Contains(label string) bool {
	for _, l := range w.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Current is the label for now in loc. It is not clamped to any window: once
// the clock passes the last period the current label is simply absent from it.
func Current(now time.Time, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	return Label(now)
}
