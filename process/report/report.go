package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"crbklasemen/models"
	"crbklasemen/pkg/docstore"
	"crbklasemen/pkg/stats"

	"gorm.io/gorm"
)

// Report is the dashboard summary of one period together with the rows it
// was computed from.
type Report struct {
	Month    string
	Summary  stats.Summary
	Winners  []models.Klasemen
	Prizes   []models.Hadiah
	Unlisted int // hadiah of the month hidden from the dashboard
}

// Build fetches the Aktif klasemen and the hadiah of month.
func Build(ctx context.Context, db *gorm.DB, month string) (Report, error) {
	rep := Report{Month: month}
	winners, err := docstore.New[models.Klasemen](db, "klasemen", "top asc").
		List(ctx, docstore.Filter{"keterangan": string(models.KeteranganAktif)})
	if err != nil {
		return rep, fmt.Errorf("fetch klasemen: %w", err)
	}
	prizes, err := docstore.New[models.Hadiah](db, "hadiah", "top asc").
		List(ctx, docstore.Filter{"month": month})
	if err != nil {
		return rep, fmt.Errorf("fetch hadiah: %w", err)
	}
	rep.Winners = winners
	for _, h := range prizes {
		if !h.Visible {
			rep.Unlisted++
			continue
		}
		rep.Prizes = append(rep.Prizes, h)
	}
	rep.Summary = stats.Summarize(rep.Winners, rep.Prizes)
	return rep, nil
}

// Write prints the report. With list set every winner and prize is printed
// as a pipe separated line.
func Write(w io.Writer, rep Report, list bool) {
	s := rep.Summary
	fmt.Fprintf(w, "Report for periode=%s:\n", rep.Month)
	fmt.Fprintf(w, "  winners=%d winloss=%s turnover=%s\n", s.TotalWinners, s.TotalWinlossText, s.TotalTurnoverText)
	fmt.Fprintf(w, "  prizes=%d hidden=%d\n", s.TotalPrizes, rep.Unlisted)
	if !list {
		return
	}
	for _, k := range rep.Winners {
		fmt.Fprintf(w, "K|%d|%s|%s|%s|%s\n", k.Top, k.UserID, stats.FormatNumber(k.Winloss), stats.FormatNumber(k.Turnover), k.Hadiah)
	}
	for _, h := range rep.Prizes {
		fmt.Fprintf(w, "H|%d|%s|%s|%s|%s\n", h.Top, h.IDUsername, h.Hadiah, h.HadiahType, strings.ToLower(string(h.Status)))
	}
}
