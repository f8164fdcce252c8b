package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"hemnet-scraper/models"
)

// ErrNoListings is returned when a run produced nothing to write. The file is
// not created in that case: a header-only CSV would look like a valid empty
// dataset downstream.
var ErrNoListings = errors.New("no listings to save")

// CSVWriter writes kept listings to a CSV file, one row per listing in the
// variant's column order. The file is created (or overwritten) at write time.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a writer targeting the given path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write emits the header row and all listings. Absent fields become empty
// cells. Returns ErrNoListings for an empty input without touching the file.
func (w *CSVWriter) Write(variant models.Variant, listings []*models.Listing) error {
	if len(listings) == 0 {
		return ErrNoListings
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", w.path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if err := cw.Write(variant.Columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, l := range listings {
		if err := cw.Write(variant.Row(l)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}
