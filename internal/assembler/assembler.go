// Package assembler orchestrates the extraction, scoring and
// projection pipeline into the final per-player records for a week.
package assembler

import (
	"sort"
	"strings"

	"github.com/tgriffin/lineupiq/internal/models"
	"github.com/tgriffin/lineupiq/internal/position"
	"github.com/tgriffin/lineupiq/internal/projection"
	"github.com/tgriffin/lineupiq/internal/schedule"
	"github.com/tgriffin/lineupiq/internal/scoring"
	"github.com/tgriffin/lineupiq/internal/stats"
)

const (
	// How many prior weeks feed the universe and recent form.
	lookbackWeeks = 5

	// How many prior weeks the position resolver may consult.
	positionLookback = 4

	// How many prior weeks the spark sequence shows.
	sparkWeeks = 3

	startableMin = 10.0
)

// Assembler builds a week's records from a stats source and a schedule
// index. Both are request-scoped; so is the Assembler.
type Assembler struct {
	stats *stats.Source
	sched *schedule.Index
}

// New creates an assembler over request-scoped inputs.
func New(src *stats.Source, sched *schedule.Index) *Assembler {
	return &Assembler{stats: src, sched: sched}
}

// riskFromPoints tiers a point total.
func riskFromPoints(p float64) models.Risk {
	switch {
	case p >= 16:
		return models.RiskLow
	case p >= 9:
		return models.RiskMed
	default:
		return models.RiskHigh
	}
}

// BuildWeek assembles one record per universe candidate and returns
// them sorted by projected points descending. The sort is stable:
// ties keep universe discovery order.
func (a *Assembler) BuildWeek(week int) []models.PlayerWeekRecord {
	universe := a.stats.Universe(week, lookbackWeeks)

	records := make([]models.PlayerWeekRecord, 0, len(universe))
	for _, ref := range universe {
		records = append(records, a.buildPlayer(ref, week))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Projected > records[j].Projected
	})
	return records
}

// buildPlayer runs the per-player three-state decision: bye, actual,
// or projected.
func (a *Assembler) buildPlayer(ref models.PlayerRef, week int) models.PlayerWeekRecord {
	pos, ok := position.Normalize(ref.RawPos)
	if !ok {
		pos = position.Resolve(a.stats, ref.Name, ref.Team, week, positionLookback).Pos
	}

	opp, _ := a.sched.Opponent(ref.Team, week)

	rec := models.PlayerWeekRecord{
		ID:       ref.Key(),
		Name:     ref.Name,
		Initials: models.Initials(ref.Name),
		Team:     ref.Team,
		Pos:      pos,
		Opp:      opp,
	}

	// Bye short-circuit: zero out regardless of any leftover rows.
	if strings.EqualFold(opp, schedule.Bye) {
		rec.Opp = schedule.Bye
		rec.Risk = models.RiskMed
		rec.Projected = 0
		rec.Startable = false
		rec.Spark = a.spark(ref, week, 0)
		rec.Source = models.SourceBye
		return rec
	}

	if line, ok := a.stats.Actuals(ref.Name, ref.Team, week); ok {
		rec.Projected = scoring.Round1(scoring.Points(line))
		rec.Stats = line
		rec.Source = models.SourceActual
	} else {
		recent := a.stats.RecentForm(ref.Name, ref.Team, week, lookbackWeeks, a.sched)
		ctx := projection.Context{
			Home:   opp != "" && !strings.HasPrefix(opp, "@"),
			Injury: projection.InjuryNone,
		}
		rec.Projected = projection.Project(pos, recent, ctx)
		rec.Source = models.SourceProjected
	}

	rec.Risk = riskFromPoints(rec.Projected)
	rec.Startable = rec.Projected >= startableMin
	rec.Spark = a.spark(ref, week, rec.Projected)
	return rec
}

// spark returns up to sparkWeeks prior actual point totals (zero when
// the player had no actual line) followed by the current value.
func (a *Assembler) spark(ref models.PlayerRef, week int, current float64) []float64 {
	start := week - sparkWeeks
	if start < 1 {
		start = 1
	}

	var vals []float64
	for w := start; w < week && w < start+sparkWeeks; w++ {
		if line, ok := a.stats.Actuals(ref.Name, ref.Team, w); ok {
			vals = append(vals, scoring.Round1(scoring.Points(line)))
		} else {
			vals = append(vals, 0)
		}
	}
	return append(vals, scoring.Round1(current))
}
