package workbook

import (
	"strconv"
	"strings"
)

// Row is an ordered mapping from normalized column name to raw cell
// value for one data row. Keys are unique within a row; duplicate
// header labels were suffixed by ReadRows.
type Row struct {
	keys   []string
	values map[string]string
}

// Keys returns the column names in sheet order.
func (r Row) Keys() []string {
	return r.keys
}

// Get returns the value of the first candidate whose name matches an
// existing column case-insensitively. Sheets disagree on header
// spelling ("Int" vs "INT" vs "Interceptions"), so every call site
// declares its accepted synonyms.
func (r Row) Get(candidates ...string) (string, bool) {
	for _, want := range candidates {
		for _, k := range r.keys {
			if strings.EqualFold(k, want) {
				return r.values[k], true
			}
		}
	}
	return "", false
}

// Field is Get with a caller-supplied default.
func (r Row) Field(def string, candidates ...string) string {
	if v, ok := r.Get(candidates...); ok {
		return v
	}
	return def
}

// Num returns the first candidate column holding a non-empty value,
// coerced to a number. Malformed cells coerce to zero rather than
// failing the row; a column that exists but is blank falls through to
// the next candidate.
func (r Row) Num(candidates ...string) float64 {
	for _, want := range candidates {
		for _, k := range r.keys {
			if !strings.EqualFold(k, want) {
				continue
			}
			v := strings.TrimSpace(r.values[k])
			if v == "" {
				break // blank cell, try next candidate
			}
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return 0
			}
			return n
		}
	}
	return 0
}

// hasData reports whether any cell holds a non-blank value.
func (r Row) hasData() bool {
	for _, v := range r.values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
