package main

import (
	"net/http"

	"crbklasemen/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type eventRequest struct {
	JudulEvent string `json:"judulEvent" binding:"required"`
	Deskripsi  string `json:"deskripsi"`
}

func listEventsHandler(c *gin.Context) {
	rows, err := eventStore().List(c.Request.Context(), nil)
	if err != nil {
		serverError(c, "Gagal memuat data event", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func createEventHandler(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ev := models.Event{JudulEvent: req.JudulEvent, Deskripsi: req.Deskripsi}
	if err := eventStore().Create(c.Request.Context(), &ev); err != nil {
		serverError(c, msgSaveFailed, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Event berhasil ditambahkan", "data": ev})
}

func updateEventHandler(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ev := models.Event{JudulEvent: req.JudulEvent, Deskripsi: req.Deskripsi}
	if err := eventStore().Replace(c.Request.Context(), c.Param("id"), &ev); err != nil {
		writeFailed(c, msgSaveFailed, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event berhasil diperbarui"})
}

func deleteEventHandler(c *gin.Context) {
	if err := eventStore().Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeFailed(c, msgDeleteFailed, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event berhasil dihapus"})
}

// sendEventHandler accepts the request but delivers nothing; there is no
// member messaging channel yet.
func sendEventHandler(c *gin.Context) {
	ev, err := eventStore().Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeFailed(c, "Gagal memuat data event", err)
		return
	}
	logger.Info("event send requested", zap.String("event_id", ev.ID), zap.String("judul", ev.JudulEvent), zap.String("by", c.GetString("email")))
	c.JSON(http.StatusAccepted, gin.H{"message": "Event akan dikirim ke member", "delivered": false})
}
