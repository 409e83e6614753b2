package main

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"crbklasemen/models"
	"crbklasemen/pkg/docstore"
	"crbklasemen/pkg/periode"

	"github.com/gin-gonic/gin"
)

type hadiahRequest struct {
	Top            int     `json:"top" binding:"gte=0"`
	IDUsername     string  `json:"idUsername" binding:"required"`
	MinimalWinloss float64 `json:"minimalWinloss"`
	To             float64 `json:"to" binding:"gte=0"`
	Hadiah         string  `json:"hadiah" binding:"required"`
	HadiahType     string  `json:"hadiahType" binding:"required,hadiahtype"`
	Status         string  `json:"status" binding:"required,hadiahstatus"`
	Month          string  `json:"month"`
	Visible        *bool   `json:"visible"`
}

func (r hadiahRequest) entry(month string) models.Hadiah {
	visible := true
	if r.Visible != nil {
		visible = *r.Visible
	}
	return models.Hadiah{
		Top:            r.Top,
		IDUsername:     r.IDUsername,
		MinimalWinloss: r.MinimalWinloss,
		To:             r.To,
		Hadiah:         r.Hadiah,
		HadiahType:     models.HadiahType(r.HadiahType),
		Status:         models.HadiahStatus(r.Status),
		Month:          month,
		Visible:        visible,
	}
}

// selectedMonth is the ?month= label, then fallback, then the current month.
func selectedMonth(c *gin.Context, fallback string) string {
	if m := strings.TrimSpace(c.Query("month")); m != "" {
		return m
	}
	if m := strings.TrimSpace(fallback); m != "" {
		return m
	}
	return periode.Current(time.Now(), location)
}

func listHadiahHandler(c *gin.Context) {
	month := selectedMonth(c, "")
	rows, err := hadiahStore().List(c.Request.Context(), docstore.Filter{"month": month})
	if err != nil {
		serverError(c, "Gagal memuat data hadiah", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "data": rows})
}

func createHadiahHandler(c *gin.Context) {
	var req hadiahRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h := req.entry(selectedMonth(c, req.Month))
	if err := hadiahStore().Create(c.Request.Context(), &h); err != nil {
		serverError(c, msgSaveFailed, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Data hadiah berhasil ditambahkan", "data": h})
}

// updateHadiahHandler overwrites the prize. Visibility is kept when the body
// has no visible field.
func updateHadiahHandler(c *gin.Context) {
	var req hadiahRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h := req.entry(selectedMonth(c, req.Month))
	var keep []string
	if req.Visible == nil {
		keep = append(keep, "visible")
	}
	if err := hadiahStore().Replace(c.Request.Context(), c.Param("id"), &h, keep...); err != nil {
		writeFailed(c, msgSaveFailed, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data hadiah berhasil diperbarui"})
}

func deleteHadiahHandler(c *gin.Context) {
	if err := hadiahStore().Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeFailed(c, msgDeleteFailed, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data hadiah berhasil dihapus"})
}

// toggleHadiahVisibilityHandler writes only the visible column. Without a
// body the stored value is flipped.
func toggleHadiahVisibilityHandler(c *gin.Context) {
	var req struct {
		Visible *bool `json:"visible"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(c, err)
			return
		}
	}
	ctx := c.Request.Context()
	store := hadiahStore()
	if req.Visible == nil {
		h, err := store.Get(ctx, c.Param("id"))
		if err != nil {
			writeFailed(c, "Gagal memuat data hadiah", err)
			return
		}
		v := !h.Visible
		req.Visible = &v
	}
	if err := store.Patch(ctx, c.Param("id"), map[string]any{"visible": *req.Visible}); err != nil {
		writeFailed(c, msgSaveFailed, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Visibilitas hadiah diperbarui", "visible": *req.Visible})
}
