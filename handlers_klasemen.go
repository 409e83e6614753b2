package main

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"crbklasemen/models"
	"crbklasemen/pkg/klasemenfile"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type klasemenRequest struct {
	Top        int     `json:"top" binding:"gte=0"`
	UserID     string  `json:"userId" binding:"required"`
	Winloss    float64 `json:"winloss"`
	Turnover   float64 `json:"turnover" binding:"gte=0"`
	Hadiah     string  `json:"hadiah"`
	Catatan    string  `json:"catatan"`
	Keterangan string  `json:"keterangan" binding:"omitempty,keterangan"`
}

func (r klasemenRequest) entry() models.Klasemen {
	k := models.Klasemen{
		Top:        r.Top,
		UserID:     r.UserID,
		Winloss:    r.Winloss,
		Turnover:   r.Turnover,
		Hadiah:     r.Hadiah,
		Catatan:    r.Catatan,
		Keterangan: models.Keterangan(r.Keterangan),
	}
	if k.Keterangan == "" {
		k.Keterangan = models.KeteranganAktif
	}
	return k
}

func listKlasemenHandler(c *gin.Context) {
	rows, err := klasemenStore().List(c.Request.Context(), nil)
	if err != nil {
		serverError(c, "Gagal memuat data klasemen", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func createKlasemenHandler(c *gin.Context) {
	var req klasemenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	k := req.entry()
	if err := klasemenStore().Create(c.Request.Context(), &k); err != nil {
		serverError(c, msgSaveFailed, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Data klasemen berhasil ditambahkan", "data": k})
}

func updateKlasemenHandler(c *gin.Context) {
	var req klasemenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	k := req.entry()
	if err := klasemenStore().Replace(c.Request.Context(), c.Param("id"), &k); err != nil {
		writeFailed(c, msgSaveFailed, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data klasemen berhasil diperbarui"})
}

func deleteKlasemenHandler(c *gin.Context) {
	if err := klasemenStore().Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeFailed(c, msgDeleteFailed, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data klasemen berhasil dihapus"})
}

// exportKlasemenHandler serves the whole klasemen as CSV, or as a workbook
// with ?format=xlsx.
func exportKlasemenHandler(c *gin.Context) {
	rows, err := klasemenStore().List(c.Request.Context(), nil)
	if err != nil {
		serverError(c, "Gagal memuat data klasemen", err)
		return
	}
	now := time.Now().In(location)
	var buf bytes.Buffer
	ext, contentType := "csv", "text/csv; charset=utf-8"
	if c.Query("format") == "xlsx" {
		ext, contentType = "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = klasemenfile.WriteXLSX(&buf, rows)
	} else {
		err = klasemenfile.Encode(&buf, rows)
	}
	if err != nil {
		serverError(c, "Gagal mengekspor data", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+klasemenfile.FileName(now, ext)+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// importKlasemenHandler creates one entry per CSV line. Lines stored before a
// failing line stay stored unless ?atomic=true is given.
func importKlasemenHandler(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer f.Close()

	ctx := c.Request.Context()
	atomic, _ := strconv.ParseBool(c.Query("atomic"))
	var created int
	if atomic {
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var ierr error
			created, ierr = klasemenfile.Import(ctx, f, klasemenStore().WithTx(tx).Create)
			return ierr
		})
		if err != nil {
			created = 0
		}
	} else {
		created, err = klasemenfile.Import(ctx, f, klasemenStore().Create)
	}
	importedRows.Add(float64(created))
	if err != nil {
		importFailures.Inc()
		resp := gin.H{"error": msgImportFailed, "imported": created, "detail": err.Error()}
		var rowErr *klasemenfile.RowError
		if errors.As(err, &rowErr) {
			resp["line"] = rowErr.Line
		}
		logger.Warn("klasemen import stopped", zap.String("file", fh.Filename), zap.Int("imported", created), zap.Error(err))
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data berhasil diimport", "imported": created})
}
