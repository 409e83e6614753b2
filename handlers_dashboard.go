package main

import (
	"net/http"
	"time"

	"crbklasemen/models"
	"crbklasemen/pkg/docstore"
	"crbklasemen/pkg/periode"
	"crbklasemen/pkg/stats"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// dashboardStatsHandler fetches the Aktif klasemen and the visible hadiah of
// the selected month in parallel and summarizes them.
func dashboardStatsHandler(c *gin.Context) {
	month := selectedMonth(c, "")
	var (
		klasemen []models.Klasemen
		hadiah   []models.Hadiah
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		klasemen, err = klasemenStore().List(ctx, docstore.Filter{"keterangan": string(models.KeteranganAktif)})
		return err
	})
	g.Go(func() error {
		var err error
		hadiah, err = hadiahStore().List(ctx, docstore.Filter{"month": month, "visible": true})
		return err
	})
	if err := g.Wait(); err != nil {
		serverError(c, "Gagal memuat data dashboard", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "stats": stats.Summarize(klasemen, hadiah)})
}

func periodsHandler(c *gin.Context) {
	w := periode.DefaultWindow()
	current := periode.Current(time.Now(), location)
	c.JSON(http.StatusOK, gin.H{
		"months":          w.Labels,
		"current":         current,
		"currentInWindow": w.Contains(current),
	})
}
