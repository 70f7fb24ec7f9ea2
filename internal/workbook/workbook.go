package workbook

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook holds the raw cell matrices of a spreadsheet, one matrix per
// sheet. It is read-only once built; all interpretation (headers, data
// rows) happens in ReadRows.
type Workbook struct {
	order  []string
	sheets map[string][][]string
	hash   string
}

// New builds a Workbook directly from raw sheet matrices. Parse is the
// normal entry point; New exists so tests and callers with already
// decoded data can skip the xlsx layer.
func New(order []string, sheets map[string][][]string) *Workbook {
	h := sha256.New()
	for _, name := range order {
		fmt.Fprintf(h, "%s\n", name)
		for _, row := range sheets[name] {
			fmt.Fprintf(h, "%q\n", row)
		}
	}
	return &Workbook{
		order:  order,
		sheets: sheets,
		hash:   hex.EncodeToString(h.Sum(nil)),
	}
}

// Parse decodes xlsx bytes into a Workbook. The content hash is taken
// over the raw bytes, so identical uploads hash identically.
func Parse(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	order := f.GetSheetList()
	sheets := make(map[string][][]string, len(order))
	for _, name := range order {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		sheets[name] = rows
	}

	wb := New(order, sheets)
	sum := sha256.Sum256(data)
	wb.hash = hex.EncodeToString(sum[:])
	return wb, nil
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.order
}

// HasSheet reports whether a sheet exists.
func (w *Workbook) HasSheet(name string) bool {
	_, ok := w.sheets[name]
	return ok
}

// Matrix returns a sheet's raw cell matrix, or nil if the sheet is
// absent.
func (w *Workbook) Matrix(name string) [][]string {
	return w.sheets[name]
}

// PickSheet returns the first candidate name that exists in the
// workbook, or "" if none do.
func (w *Workbook) PickSheet(candidates ...string) string {
	for _, name := range candidates {
		if w.HasSheet(name) {
			return name
		}
	}
	return ""
}

// Hash returns a stable content hash, usable as a cache key component.
func (w *Workbook) Hash() string {
	return w.hash
}
