package workbook

import (
	"fmt"
	"strings"
)

const (
	// How many leading rows to scan for a header before giving up and
	// using row 0. Exported sheets often carry a title row or two.
	headerScanRows = 6

	// A header-like row needs at least this many non-empty cells.
	minHeaderCells = 3
)

// isHeaderLike reports whether a raw row looks like the real column
// header: enough non-empty cells, one of them "player" or "team".
func isHeaderLike(row []string) bool {
	nonEmpty := 0
	anchored := false
	for _, c := range row {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		nonEmpty++
		switch strings.ToLower(c) {
		case "player", "team":
			anchored = true
		}
	}
	return nonEmpty >= minHeaderCells && anchored
}

// ReadRows converts a raw sheet matrix into data rows keyed by the
// detected header. Duplicate header labels get ".1", ".2", … suffixes
// in order of appearance so repeated metric columns (a second "Yds"
// column is sack yards, not passing yards) stay addressable. A blank
// header label becomes the "@" sentinel, which is how box scores mark
// the home/away column. Fully blank data rows are dropped.
func ReadRows(matrix [][]string) []Row {
	if len(matrix) == 0 {
		return nil
	}

	headerIdx := 0
	for i := 0; i < len(matrix) && i < headerScanRows; i++ {
		if isHeaderLike(matrix[i]) {
			headerIdx = i
			break
		}
	}

	counts := make(map[string]int)
	var headers []string
	for _, h := range matrix[headerIdx] {
		base := strings.TrimSpace(h)
		if base == "" {
			base = "@"
		}
		n := counts[base]
		counts[base] = n + 1
		if n > 0 {
			base = fmt.Sprintf("%s.%d", base, n)
		}
		headers = append(headers, base)
	}

	var out []Row
	for i := headerIdx + 1; i < len(matrix); i++ {
		cells := matrix[i]
		row := Row{
			keys:   headers,
			values: make(map[string]string, len(headers)),
		}
		for c, key := range headers {
			if c < len(cells) {
				row.values[key] = cells[c]
			} else {
				row.values[key] = ""
			}
		}
		if row.hasData() {
			out = append(out, row)
		}
	}
	return out
}
