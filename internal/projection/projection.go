// Package projection estimates a player's current-week fantasy points
// from recent form and matchup context. The model is a fixed,
// hand-tuned linear heuristic per position — no training step, no
// persisted parameters, explicitly coarse.
package projection

import (
	"math"

	"github.com/tgriffin/lineupiq/internal/models"
	"github.com/tgriffin/lineupiq/internal/scoring"
)

// Injury is this-week availability status.
type Injury string

const (
	InjuryNone         Injury = "none"
	InjuryQuestionable Injury = "questionable"
	InjuryDoubtful     Injury = "doubtful"
)

// Context carries this-week matchup signals. Zero-valued ranks mean
// league average (16 of 32); a zero team total means the 22-point
// default. 1 is the toughest defense, 32 the softest.
type Context struct {
	OppRushRank int
	OppPassRank int
	OppRecRank  int
	Home        bool
	Injury      Injury
	TeamTotal   float64
}

const (
	emaAlpha         = 0.55
	blendModel       = 0.85
	blendMean        = 0.15
	defaultRank      = 16
	defaultTeamTotal = 22
	historyWindow    = 5
	shortWindow      = 3
)

type features struct {
	avg3, ema5, vol3, trend        float64
	recPerG, rushYdsG, passYdsG    float64
	rushMatch, passMatch, recMatch float64
	home, injuryQ, injuryD, vegas  float64
}

type weights struct {
	bias, ema5, avg3, trend, vol3  float64
	recPerG, rushYdsG, passYdsG    float64
	rushMatch, passMatch, recMatch float64
	home, vegas, injuryQ, injuryD  float64
}

// Hand-set coefficient tables per position. K and DEF stay a flat
// bias until drive/FG features exist.
var coeffs = map[models.Position]weights{
	models.PosQB: {
		bias: 2.0, ema5: 0.55, avg3: 0.25, trend: 0.20, vol3: -0.10,
		passYdsG: 0.03, rushYdsG: 0.02,
		passMatch: 1.8,
		home:      0.6, vegas: 0.10,
		injuryQ: -1.0, injuryD: -3.0,
	},
	models.PosRB: {
		bias: 1.5, ema5: 0.50, avg3: 0.25, trend: 0.20, vol3: -0.08,
		rushYdsG: 0.05, recPerG: 0.35,
		rushMatch: 1.6, recMatch: 0.6,
		home:      0.4, vegas: 0.07,
		injuryQ: -1.2, injuryD: -3.0,
	},
	models.PosWR: {
		bias: 1.2, ema5: 0.55, avg3: 0.20, trend: 0.22, vol3: -0.06,
		recPerG:  0.55,
		recMatch: 1.4, passMatch: 0.6,
		home:     0.3, vegas: 0.06,
		injuryQ: -1.0, injuryD: -2.5,
	},
	models.PosTE: {
		bias: 0.8, ema5: 0.50, avg3: 0.20, trend: 0.18, vol3: -0.05,
		recPerG: 0.50, recMatch: 1.2, passMatch: 0.5,
		home:    0.3, vegas: 0.05,
		injuryQ: -0.8, injuryD: -2.0,
	},
	models.PosK:   {bias: 6},
	models.PosDEF: {bias: 6},
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// ema is a trend-weighted moving average: later samples dominate.
func ema(vals []float64, alpha float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for i := 1; i < len(vals); i++ {
		m = alpha*vals[i] + (1-alpha)*m
	}
	return m
}

// stdev is the sample standard deviation.
func stdev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	sum := 0.0
	for _, v := range vals {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

func tail(vals []float64, n int) []float64 {
	if len(vals) <= n {
		return vals
	}
	return vals[len(vals)-n:]
}

func rankOrDefault(r int) float64 {
	if r == 0 {
		r = defaultRank
	}
	return float64(r)
}

// matchFactor maps an opponent rank onto roughly −1 (elite defense) to
// +1 (poor defense).
func matchFactor(rank int) float64 {
	return (rankOrDefault(rank) - defaultRank) / defaultRank
}

func buildFeatures(recent []models.GameLine, ctx Context) features {
	last := recent
	if len(last) > historyWindow {
		last = last[len(last)-historyWindow:]
	}

	points := make([]float64, len(last))
	var recs, rushYds, passYds []float64
	for i, g := range last {
		points[i] = scoring.Points(g.Stats)
		recs = append(recs, g.Stats.Rec)
		rushYds = append(rushYds, g.Stats.RushYds)
		passYds = append(passYds, g.Stats.PassYds)
	}

	short := tail(points, shortWindow)
	trend := 0.0
	if len(points) >= 2 {
		trend = points[len(points)-1] - points[len(points)-2]
	}

	vegas := ctx.TeamTotal
	if vegas == 0 {
		vegas = defaultTeamTotal
	}

	f := features{
		avg3:      mean(short),
		ema5:      ema(points, emaAlpha),
		vol3:      stdev(short),
		trend:     trend,
		recPerG:   mean(recs),
		rushYdsG:  mean(rushYds),
		passYdsG:  mean(passYds),
		rushMatch: matchFactor(ctx.OppRushRank),
		passMatch: matchFactor(ctx.OppPassRank),
		recMatch:  matchFactor(ctx.OppRecRank),
		vegas:     vegas,
	}
	if ctx.Home {
		f.home = 1
	}
	switch ctx.Injury {
	case InjuryQuestionable:
		f.injuryQ = 1
	case InjuryDoubtful:
		f.injuryD = 1
	}
	return f
}

// Project estimates this week's fantasy points. The linear estimate is
// blended 0.85/0.15 with the player's full-history mean to dampen
// small-sample swings, floored at zero and rounded to one decimal.
func Project(pos models.Position, recent []models.GameLine, ctx Context) float64 {
	f := buildFeatures(recent, ctx)

	w, ok := coeffs[pos]
	if !ok {
		w = coeffs[models.PosWR]
	}

	y := w.bias +
		w.ema5*f.ema5 +
		w.avg3*f.avg3 +
		w.trend*f.trend +
		w.vol3*f.vol3 +
		w.recPerG*f.recPerG +
		w.rushYdsG*f.rushYdsG +
		w.passYdsG*f.passYdsG +
		w.rushMatch*f.rushMatch +
		w.passMatch*f.passMatch +
		w.recMatch*f.recMatch +
		w.home*f.home +
		w.vegas*f.vegas +
		w.injuryQ*f.injuryQ +
		w.injuryD*f.injuryD

	var allPoints []float64
	for _, g := range recent {
		allPoints = append(allPoints, scoring.Points(g.Stats))
	}
	y = blendModel*y + blendMean*mean(allPoints)

	if y < 0 {
		return 0
	}
	return scoring.Round1(y)
}
