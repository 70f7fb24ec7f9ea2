// Package position resolves a player's canonical roster position from
// whatever signals the sheets offer.
package position

import (
	"strings"

	"github.com/tgriffin/lineupiq/internal/models"
	"github.com/tgriffin/lineupiq/internal/stats"
)

// Rule names which resolution policy produced a position, so callers
// and tests can assert which rule fired rather than only the value.
type Rule string

const (
	RuleTag      Rule = "tag"      // explicit position column this week
	RuleLookback Rule = "lookback" // explicit tag within prior weeks
	RuleCategory Rule = "category" // inferred from sheet membership
	RuleDefault  Rule = "default"  // no signal at all
)

// Resolution is a tagged resolver outcome.
type Resolution struct {
	Pos  models.Position
	Rule Rule
}

// Normalize maps a raw position tag to a canonical position via a
// fixed prefix/alias table.
func Normalize(raw string) (models.Position, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch s {
	case "":
		return "", false
	case "K":
		return models.PosK, true
	case "DEF", "DST", "D/ST":
		return models.PosDEF, true
	case "FB", "HB":
		return models.PosRB, true
	case "WR/TE", "TE/WR":
		return models.PosWR, true
	}
	switch {
	case strings.HasPrefix(s, "QB"):
		return models.PosQB, true
	case strings.HasPrefix(s, "RB"):
		return models.PosRB, true
	case strings.HasPrefix(s, "WR"):
		return models.PosWR, true
	case strings.HasPrefix(s, "TE"):
		return models.PosTE, true
	}
	return "", false
}

// tagFor checks the player's own position tag across the week's three
// category sheets, passing first.
func tagFor(src *stats.Source, name, team string, week int) (models.Position, bool) {
	for _, cat := range stats.Categories {
		if r, ok := src.FindRow(cat, week, name, team); ok {
			if pos, ok := Normalize(stats.RowPos(r)); ok {
				return pos, true
			}
		}
	}
	return "", false
}

// Resolve determines a player's position for a week. Policy order is
// deliberate and documented behavior, not incidental:
//
//  1. explicit tag on any of this week's rows
//  2. explicit tag within the prior lookback weeks
//  3. category presence: passing ⇒ QB; rushing without receiving ⇒ RB;
//     receiving ⇒ TE when tagged TE, else WR
//  4. WR
func Resolve(src *stats.Source, name, team string, week, lookback int) Resolution {
	if pos, ok := tagFor(src, name, team, week); ok {
		return Resolution{Pos: pos, Rule: RuleTag}
	}

	start := week - lookback
	if start < 1 {
		start = 1
	}
	for w := start; w < week; w++ {
		if pos, ok := tagFor(src, name, team, w); ok {
			return Resolution{Pos: pos, Rule: RuleLookback}
		}
	}

	_, pok := src.FindRow(stats.Passing, week, name, team)
	_, rok := src.FindRow(stats.Rushing, week, name, team)
	cr, cok := src.FindRow(stats.Receiving, week, name, team)
	switch {
	case pok:
		return Resolution{Pos: models.PosQB, Rule: RuleCategory}
	case rok && !cok:
		return Resolution{Pos: models.PosRB, Rule: RuleCategory}
	case cok:
		if pos, ok := Normalize(stats.RowPos(cr)); ok && pos == models.PosTE {
			return Resolution{Pos: models.PosTE, Rule: RuleCategory}
		}
		return Resolution{Pos: models.PosWR, Rule: RuleCategory}
	}

	return Resolution{Pos: models.PosWR, Rule: RuleDefault}
}
