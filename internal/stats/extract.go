package stats

import (
	"strings"

	"github.com/tgriffin/lineupiq/internal/models"
	"github.com/tgriffin/lineupiq/internal/schedule"
	"github.com/tgriffin/lineupiq/internal/workbook"
)

// passingLine extracts a passing-sheet row. The first "Yds" column is
// true pass yards; "Yds.1" is sack yards on sports-reference exports,
// which is why it is never listed here. Passing sheets also carry the
// QB's own rushing and fumble columns.
func passingLine(r workbook.Row) models.StatLine {
	return models.StatLine{
		PassYds: r.Num("Yds", "PassYds", "Pass Yds"),
		PassTD:  r.Num("TD", "PassTD", "Pass TD"),
		Ints:    r.Num("Int", "INT", "Interceptions", "Int."),
		RushYds: r.Num("RushYds", "RushingYds", "Rushing Yds", "Yds.2"),
		RushTD:  r.Num("RushTD", "RushingTD", "Rushing TD"),
		Fumbles: r.Num("FmbLost", "FL", "Fumbles Lost", "Fumbles"),
	}
}

func rushingLine(r workbook.Row) models.StatLine {
	return models.StatLine{
		RushYds: r.Num("Yds", "RushYds", "RushingYds"),
		RushTD:  r.Num("TD", "RushTD", "RushingTD"),
		Fumbles: r.Num("FmbLost", "FL", "Fumbles Lost"),
	}
}

func receivingLine(r workbook.Row) models.StatLine {
	return models.StatLine{
		Rec:    r.Num("Rec", "Receptions"),
		RecYds: r.Num("Yds", "RecYds"),
		RecTD:  r.Num("TD", "RecTD"),
	}
}

// Actuals joins a player's passing/rushing/receiving rows for one week
// into a single merged stat line. ok is false when the player appears
// in none of the three sheets — absence means inactive or unlisted,
// not "scored zero".
func (s *Source) Actuals(name, team string, week int) (models.StatLine, bool) {
	pr, pok := s.FindRow(Passing, week, name, team)
	rr, rok := s.FindRow(Rushing, week, name, team)
	cr, cok := s.FindRow(Receiving, week, name, team)
	if !pok && !rok && !cok {
		return models.StatLine{}, false
	}

	var line models.StatLine
	if pok {
		line.Add(passingLine(pr))
	}
	if rok {
		line.Add(rushingLine(rr))
	}
	if cok {
		line.Add(receivingLine(cr))
	}
	return line, true
}

// RecentForm gathers a player's merged lines for the weeks in
// [max(1, target−lookback), target), oldest first. Weeks where the
// player is absent from all three sheets are skipped, not zero-filled.
// Opponent context comes from the schedule index when available, else
// from the sheet's own opponent column.
func (s *Source) RecentForm(name, team string, targetWeek, lookback int, sched *schedule.Index) []models.GameLine {
	start := targetWeek - lookback
	if start < 1 {
		start = 1
	}

	var lines []models.GameLine
	for w := start; w < targetWeek; w++ {
		pr, pok := s.FindRow(Passing, w, name, team)
		rr, rok := s.FindRow(Rushing, w, name, team)
		cr, cok := s.FindRow(Receiving, w, name, team)
		if !pok && !rok && !cok {
			continue
		}

		line := models.GameLine{Week: w}
		if pok {
			line.Stats.Add(passingLine(pr))
		}
		if rok {
			line.Stats.Add(rushingLine(rr))
		}
		if cok {
			line.Stats.Add(receivingLine(cr))
		}

		opp := ""
		if sched != nil {
			opp, _ = sched.Opponent(team, w)
		}
		if opp == "" {
			switch {
			case pok:
				opp = RowOpp(pr)
			case rok:
				opp = RowOpp(rr)
			case cok:
				opp = RowOpp(cr)
			}
		}
		line.Opp = opp
		line.Home = opp != "" && !strings.HasPrefix(opp, "@")

		lines = append(lines, line)
	}
	return lines
}
