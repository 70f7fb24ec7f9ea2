// Package trade evaluates two-player trade proposals against a fixed
// value board.
package trade

import (
	"fmt"
	"math"

	"github.com/tgriffin/lineupiq/internal/models"
)

// Player is a tradeable asset with a market value on a 0-100 scale.
type Player struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Pos  models.Position `json:"pos"`
	Team string          `json:"team"`
	Val  float64         `json:"val"`
}

// Result is the outcome of a trade evaluation.
type Result struct {
	Score   int    `json:"score"`
	Verdict string `json:"verdict"`
}

// Verdicts, from best to worst for the proposing side.
const (
	VerdictFleecing = "fleecing"
	VerdictFair     = "fair"
	VerdictLosing   = "losing"
)

// Roster is the user's side of the board.
var Roster = []Player{
	{ID: "r1", Name: "Puka Nacua", Pos: models.PosWR, Team: "LAR", Val: 88},
	{ID: "r2", Name: "Josh Jacobs", Pos: models.PosRB, Team: "GB", Val: 82},
	{ID: "r3", Name: "De'Von Achane", Pos: models.PosRB, Team: "MIA", Val: 86},
	{ID: "r4", Name: "George Pickens", Pos: models.PosWR, Team: "DAL", Val: 80},
}

// League is the rest of the league's board.
var League = []Player{
	{ID: "o1", Name: "A.J. Brown", Pos: models.PosWR, Team: "PHI", Val: 92},
	{ID: "o2", Name: "Saquon Barkley", Pos: models.PosRB, Team: "PHI", Val: 91},
	{ID: "o3", Name: "Deebo Samuel", Pos: models.PosWR, Team: "SF", Val: 87},
	{ID: "o4", Name: "James Cook", Pos: models.PosRB, Team: "BUF", Val: 79},
}

// find looks up a player by ID across both boards.
func find(id string) (Player, bool) {
	for _, p := range Roster {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range League {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Evaluate scores a 1-for-1 trade from the perspective of the side
// giving giveID and receiving getID. The score centers at 50 and moves
// by the value delta, clamped to [0, 100].
func Evaluate(giveID, getID string) (Result, error) {
	give, ok := find(giveID)
	if !ok {
		return Result{}, fmt.Errorf("players not found")
	}
	get, ok := find(getID)
	if !ok {
		return Result{}, fmt.Errorf("players not found")
	}

	delta := get.Val - give.Val
	score := int(math.Round(50 + delta))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	verdict := VerdictLosing
	switch {
	case score >= 65:
		verdict = VerdictFleecing
	case score >= 45:
		verdict = VerdictFair
	}

	return Result{Score: score, Verdict: verdict}, nil
}
