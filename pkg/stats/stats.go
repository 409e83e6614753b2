// Package stats computes the dashboard tiles from fetched klasemen and hadiah.
package stats

import (
	"crbklasemen/models"

	"github.com/dustin/go-humanize"
)

// Summary holds the dashboard tiles. The *Text fields carry the same numbers
// grouped the id-ID way (1.234.567).
type Summary struct {
	TotalWinners      int     `json:"totalWinners"`
	TotalWinloss      float64 `json:"totalWinloss"`
	TotalTurnover     float64 `json:"totalTurnover"`
	TotalPrizes       int     `json:"totalPrizes"`
	TotalWinlossText  string  `json:"totalWinlossText"`
	TotalTurnoverText string  `json:"totalTurnoverText"`
}

// Summarize counts and sums the Aktif klasemen entries and counts the visible
// hadiah. Entries that do not match are skipped, so callers may pass
// unfiltered lists.
func Summarize(klasemen []models.Klasemen, hadiah []models.Hadiah) Summary {
	var s Summary
	for _, k := range klasemen {
		if k.Keterangan != models.KeteranganAktif {
			continue
		}
		s.TotalWinners++
		s.TotalWinloss += k.Winloss
		s.TotalTurnover += k.Turnover
	}
	for _, h := range hadiah {
		if h.Visible {
			s.TotalPrizes++
		}
	}
	s.TotalWinlossText = FormatNumber(s.TotalWinloss)
	s.TotalTurnoverText = FormatNumber(s.TotalTurnover)
	return s
}

// FormatNumber groups thousands with dots and uses a comma for the decimals,
// dropping them when the value is whole.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return humanize.FormatFloat("#.###,", v)
	}
	return humanize.FormatFloat("#.###,##", v)
}
