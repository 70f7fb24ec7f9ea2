// Package stats reads the weekly box-score sheets of the stats
// workbook and joins them into per-player stat lines.
package stats

import (
	"fmt"
	"strings"

	"github.com/tgriffin/lineupiq/internal/workbook"
)

// Category identifies one of the three box-score stat sheets.
type Category string

const (
	Passing   Category = "Passing"
	Rushing   Category = "Rushing"
	Receiving Category = "Receiving"
)

// Categories in join order.
var Categories = []Category{Passing, Rushing, Receiving}

// Weekly sheets follow the "Passing W3" / "Passing Week 3" naming
// convention; both forms are accepted.
var sheetNameFormats = []string{"%s W%d", "%s Week %d"}

// Source provides request-scoped access to the stats workbook, parsing
// each sheet at most once. It is not safe for concurrent use; every
// request builds its own Source, which is what keeps concurrent
// requests isolated without locking.
type Source struct {
	wb    *workbook.Workbook
	cache map[string][]workbook.Row
}

// NewSource wraps a parsed stats workbook.
func NewSource(wb *workbook.Workbook) *Source {
	return &Source{
		wb:    wb,
		cache: make(map[string][]workbook.Row),
	}
}

// Hash returns the underlying workbook's content hash.
func (s *Source) Hash() string {
	return s.wb.Hash()
}

func (s *Source) rows(sheet string) []workbook.Row {
	if sheet == "" {
		return nil
	}
	if r, ok := s.cache[sheet]; ok {
		return r
	}
	r := workbook.ReadRows(s.wb.Matrix(sheet))
	s.cache[sheet] = r
	return r
}

// CategoryRows returns the data rows of a category's sheet for a week.
// A missing sheet is not an error; it reads as "no stats in this
// category this week" and the pipeline degrades to projection.
func (s *Source) CategoryRows(cat Category, week int) []workbook.Row {
	for _, format := range sheetNameFormats {
		if name := fmt.Sprintf(format, cat, week); s.wb.HasSheet(name) {
			return s.rows(name)
		}
	}
	return nil
}

// FindRow locates a player's row in a category sheet by exact
// (name, team) match. A miss signals absence, not an error.
func (s *Source) FindRow(cat Category, week int, name, team string) (workbook.Row, bool) {
	for _, r := range s.CategoryRows(cat, week) {
		n, t := Identity(r)
		if n == name && t == team {
			return r, true
		}
	}
	return workbook.Row{}, false
}

// Identity returns a row's player name and team code.
func Identity(r workbook.Row) (name, team string) {
	name = strings.TrimSpace(r.Field("", "Player", "Name"))
	team = strings.TrimSpace(r.Field("", "Team", "Tm"))
	return name, team
}

// RowPos returns a row's raw position tag, which may be empty.
func RowPos(r workbook.Row) string {
	return strings.TrimSpace(r.Field("", "Pos.", "Pos", "Position"))
}

// RowOpp returns the row's own opponent column, "@"-prefixed when the
// sheet's home/away marker indicates an away game. Used as a fallback
// when the schedule workbook has no entry.
func RowOpp(r workbook.Row) string {
	opp := strings.TrimSpace(r.Field("", "Opp", "Opponent", "Def"))
	if opp == "" {
		return ""
	}
	at := strings.TrimSpace(r.Field("", "@", "HomeAway", "Venue"))
	if at == "@" || strings.EqualFold(at, "at") {
		return "@" + opp
	}
	return opp
}
