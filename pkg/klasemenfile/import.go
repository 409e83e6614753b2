package klasemenfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"crbklasemen/models"
)

// ErrMalformedRow marks a line that could not be turned into an entry.
var ErrMalformedRow = errors.New("malformed row")

// RowError reports the 1-based file line that stopped an import.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }

// CreateFunc stores one imported entry.
type CreateFunc func(ctx context.Context, k *models.Klasemen) error

// Import reads an export file and calls create once per data line, in file
// order, waiting for each call before reading on. The first line is skipped
// as the header and blank lines are ignored. Import stops at the first line
// that fails to parse or store and returns how many entries were created
// before it; those are not undone.
func Import(ctx context.Context, r io.Reader, create CreateFunc) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	// hand-edited files carry stray quotes (TV 32") and spaces after commas
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	created := 0
	header := true
	for {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return created, nil
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.StartLine
			}
			return created, &RowError{Line: line, Err: fmt.Errorf("%w: %v", ErrMalformedRow, err)}
		}
		line, _ := cr.FieldPos(0)
		if header {
			header = false
			continue
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		k, err := ParseRow(fields)
		if err != nil {
			return created, &RowError{Line: line, Err: err}
		}
		if err := create(ctx, &k); err != nil {
			return created, &RowError{Line: line, Err: err}
		}
		created++
	}
}

// Decode parses a whole export without storing anything.
func Decode(r io.Reader) ([]models.Klasemen, error) {
	var out []models.Klasemen
	_, err := Import(context.Background(), r, func(_ context.Context, k *models.Klasemen) error {
		out = append(out, *k)
		return nil
	})
	return out, err
}
