// Package klasemenfile converts klasemen entries to and from downloadable
// files: a comma separated export/import format and an XLSX workbook.
package klasemenfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"crbklasemen/models"
	"crbklasemen/pkg/rules"
)

// Header is the first line of every export. Import skips the first line
// without looking at it.
var Header = []string{"TOP", "User ID", "Winloss", "TurnOver", "Hadiah", "Catatan", "Keterangan"}

// FileName is the download name for an export made at now, e.g.
// klasemen_2025-11-03.csv.
func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("klasemen_%s.%s", now.Format("2006-01-02"), ext)
}

func record(k models.Klasemen) []string {
	return []string{
		strconv.Itoa(k.Top),
		k.UserID,
		strconv.FormatFloat(k.Winloss, 'f', -1, 64),
		strconv.FormatFloat(k.Turnover, 'f', -1, 64),
		k.Hadiah,
		k.Catatan,
		string(k.Keterangan),
	}
}

// Encode writes the header and one record per entry. Fields holding commas,
// quotes or newlines are quoted so they survive a re-import.
func Encode(w io.Writer, entries []models.Klasemen) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, k := range entries {
		if err := cw.Write(record(k)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type row struct {
	Top        int     `validate:"gte=0"`
	UserID     string  `validate:"required"`
	Turnover   float64 `validate:"gte=0"`
	Keterangan string  `validate:"keterangan"`
}

var validate = rules.New()

// ParseRow converts the seven positional fields of one data line.
func ParseRow(fields []string) (models.Klasemen, error) {
	if len(fields) != len(Header) {
		return models.Klasemen{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, len(Header), len(fields))
	}
	top, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return models.Klasemen{}, fmt.Errorf("%w: top: %v", ErrMalformedRow, err)
	}
	winloss, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return models.Klasemen{}, fmt.Errorf("%w: winloss: %v", ErrMalformedRow, err)
	}
	turnover, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return models.Klasemen{}, fmt.Errorf("%w: turnover: %v", ErrMalformedRow, err)
	}
	k := models.Klasemen{
		Top:        top,
		UserID:     strings.TrimSpace(fields[1]),
		Winloss:    winloss,
		Turnover:   turnover,
		Hadiah:     strings.TrimSpace(fields[4]),
		Catatan:    strings.TrimSpace(fields[5]),
		Keterangan: models.Keterangan(strings.TrimSpace(fields[6])),
	}
	r := row{Top: k.Top, UserID: k.UserID, Turnover: k.Turnover, Keterangan: string(k.Keterangan)}
	if err := validate.Struct(r); err != nil {
		return models.Klasemen{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	return k, nil
}
