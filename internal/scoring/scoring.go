// Package scoring owns the fantasy scoring formula. The coefficient
// table lives here and nowhere else.
package scoring

import (
	"math"

	"github.com/tgriffin/lineupiq/internal/models"
)

// Full-PPR coefficients. Fixed; there is no configuration surface.
const (
	PassYds = 0.04 // 1 / 25
	PassTD  = 4.0
	Int     = -2.0
	RushYds = 0.1 // 1 / 10
	RushTD  = 6.0
	FumLost = -2.0
	Rec     = 1.0 // full PPR
	RecYds  = 0.1
	RecTD   = 6.0
)

// Points computes the fantasy point total for a stat line. Pure
// function of the nine numeric inputs.
func Points(l models.StatLine) float64 {
	return l.PassYds*PassYds + l.PassTD*PassTD + l.Ints*Int +
		l.RushYds*RushYds + l.RushTD*RushTD + l.Fumbles*FumLost +
		l.Rec*Rec + l.RecYds*RecYds + l.RecTD*RecTD
}

// Round1 rounds to one decimal for display.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
