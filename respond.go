package main

import (
	"errors"
	"net/http"

	"crbklasemen/pkg/docstore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgSaveFailed   = "Gagal menyimpan data"
	msgDeleteFailed = "Gagal menghapus data"
	msgNotFound     = "Data tidak ditemukan"
	msgImportFailed = "Gagal mengimport data"
)

// serverError logs err, reports it to sentry and writes a 500 with msg.
func serverError(c *gin.Context, msg string, err error) {
	logger.Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
	captureErr(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// writeFailed maps a store error from an update or delete.
func writeFailed(c *gin.Context, msg string, err error) {
	if errors.Is(err, docstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return
	}
	serverError(c, msg, err)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
