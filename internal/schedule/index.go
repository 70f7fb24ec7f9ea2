// Package schedule parses a team-schedule workbook into a
// (team, week) → opponent lookup.
package schedule

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tgriffin/lineupiq/internal/workbook"
)

// Bye is the sentinel opponent for a bye week.
const Bye = "BYE"

var (
	// W1 / WK 1 / Week.1 / Week 12, any casing.
	weekHeaderRe = regexp.MustCompile(`(?i)^(?:week|wk|w)\s*\.?\s*(\d{1,2})$`)

	byeRe      = regexp.MustCompile(`(?i)bye`)
	atWordRe   = regexp.MustCompile(`(?i)\bat\b`)
	vsWordRe   = regexp.MustCompile(`(?i)\bvs\b`)
	teamCodeRe = regexp.MustCompile(`[A-Z]{2,4}\b`)
)

// Index maps team code to week number to a normalized opponent
// descriptor ("BUF", "@BUF", or "BYE"). Built once per request from
// the schedule workbook; read-only thereafter.
type Index struct {
	teams map[string]map[int]string
}

// Opponent returns the normalized opponent for a team and week. Team
// lookup is case-insensitive.
func (i *Index) Opponent(team string, week int) (string, bool) {
	weeks, ok := i.teams[strings.ToUpper(strings.TrimSpace(team))]
	if !ok {
		return "", false
	}
	opp, ok := weeks[week]
	return opp, ok
}

func (i *Index) set(team string, week int, opp string) {
	if i.teams[team] == nil {
		i.teams[team] = make(map[int]string)
	}
	i.teams[team][week] = opp
}

// weekHeaderNumber extracts the week number from a wide-layout column
// header, if the header matches the week pattern.
func weekHeaderNumber(h string) (int, bool) {
	m := weekHeaderRe.FindStringSubmatch(strings.TrimSpace(h))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// trailingTeamCode extracts the trailing run of 2–4 uppercase letters
// from an already upper-cased cell. Accepted heuristic risk: a cell
// like "TBD" parses as team code "TBD".
func trailingTeamCode(s string) string {
	locs := teamCodeRe.FindAllStringIndex(s, -1)
	if len(locs) > 0 {
		last := locs[len(locs)-1]
		if !strings.ContainsAny(s[last[1]:], "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
			return s[last[0]:last[1]]
		}
	}
	return strings.TrimSpace(strings.TrimPrefix(s, "@"))
}

// NormalizeOpp turns any schedule cell into "BUF", "@BUF" or Bye.
// Any cell mentioning "bye" is a bye; an away game is marked by a
// leading "@" or a standalone "at" without "vs".
func NormalizeOpp(val string) (string, bool) {
	s := strings.TrimSpace(val)
	if s == "" {
		return "", false
	}
	if byeRe.MatchString(s) {
		return Bye, true
	}

	away := strings.HasPrefix(s, "@") || (atWordRe.MatchString(s) && !vsWordRe.MatchString(s))
	code := trailingTeamCode(strings.ToUpper(s))
	if code == "" {
		return "", false
	}
	if away {
		return "@" + strings.TrimPrefix(code, "@"), true
	}
	return code, true
}

// Build scans every sheet of the schedule workbook that has a team
// column and indexes it, detecting the layout per sheet:
//
//   - wide: one row per team, opponents under W1..W18 columns
//   - long: one row per (team, week), with Week and Opp columns
func Build(wb *workbook.Workbook) *Index {
	idx := &Index{teams: make(map[string]map[int]string)}

	for _, name := range wb.SheetNames() {
		rows := workbook.ReadRows(wb.Matrix(name))
		if len(rows) == 0 {
			continue
		}

		headers := rows[0].Keys()
		if !hasTeamColumn(headers) {
			continue
		}

		type wideCol struct {
			header string
			week   int
		}
		var wideCols []wideCol
		for _, h := range headers {
			if w, ok := weekHeaderNumber(h); ok {
				wideCols = append(wideCols, wideCol{header: h, week: w})
			}
		}

		if len(wideCols) > 0 {
			for _, r := range rows {
				team := teamKey(r)
				if team == "" {
					continue
				}
				for _, col := range wideCols {
					raw, _ := r.Get(col.header)
					if opp, ok := NormalizeOpp(raw); ok {
						idx.set(team, col.week, opp)
					}
				}
			}
			continue
		}

		if hasColumn(headers, "week") && hasAnyColumn(headers, "opp", "opponent", "opp.") {
			for _, r := range rows {
				team := teamKey(r)
				week, err := strconv.Atoi(strings.TrimSpace(r.Field("", "Week")))
				if team == "" || err != nil {
					continue
				}

				opp, ok := NormalizeOpp(r.Field("", "Opp", "Opponent", "Opp."))
				if !ok {
					// Retry with the home/away marker column folded in.
					ha := strings.TrimSpace(r.Field("", "@", "HomeAway", "Venue"))
					code := strings.TrimSpace(r.Field("", "Opp", "Opponent", "Opp."))
					if code != "" {
						opp, ok = NormalizeOpp(strings.TrimSpace(ha + " " + code))
					}
				}
				if ok {
					idx.set(team, week, opp)
				}
			}
		}
	}

	return idx
}

func teamKey(r workbook.Row) string {
	return strings.ToUpper(strings.TrimSpace(r.Field("", "TEAM", "Team", "Tm")))
}

func hasTeamColumn(headers []string) bool {
	return hasAnyColumn(headers, "team", "tm", "team.")
}

func hasColumn(headers []string, want string) bool {
	return hasAnyColumn(headers, want)
}

func hasAnyColumn(headers []string, wants ...string) bool {
	for _, h := range headers {
		for _, w := range wants {
			if strings.EqualFold(strings.TrimSpace(h), w) {
				return true
			}
		}
	}
	return false
}
