package models

import "strings"

// Position is a canonical fantasy roster position.
type Position string

const (
	PosQB  Position = "QB"
	PosRB  Position = "RB"
	PosWR  Position = "WR"
	PosTE  Position = "TE"
	PosK   Position = "K"
	PosDEF Position = "DEF"
)

// Risk tiers a point total for display.
type Risk string

const (
	RiskLow  Risk = "low"
	RiskMed  Risk = "med"
	RiskHigh Risk = "high"
)

// Provenance marks where a record's point total came from.
type Provenance string

const (
	SourceActual    Provenance = "actual"    // recorded box-score results
	SourceProjected Provenance = "projected" // model estimate
	SourceBye       Provenance = "bye"       // forced to zero by a bye week
)

// StatLine holds the raw numeric box-score stats for one player in one
// week. Fields missing from the sheet default to zero; the line is not
// mutated after extraction.
type StatLine struct {
	PassYds float64 `json:"passYds"`
	PassTD  float64 `json:"passTD"`
	Ints    float64 `json:"ints"`
	RushYds float64 `json:"rushYds"`
	RushTD  float64 `json:"rushTD"`
	Fumbles float64 `json:"fumbles"`
	Rec     float64 `json:"rec"`
	RecYds  float64 `json:"recYds"`
	RecTD   float64 `json:"recTD"`
}

// Add merges another category line into l. Box scores split a QB's
// rushing between the passing and rushing sheets, so overlapping fields
// are summed rather than replaced.
func (l *StatLine) Add(o StatLine) {
	l.PassYds += o.PassYds
	l.PassTD += o.PassTD
	l.Ints += o.Ints
	l.RushYds += o.RushYds
	l.RushTD += o.RushTD
	l.Fumbles += o.Fumbles
	l.Rec += o.Rec
	l.RecYds += o.RecYds
	l.RecTD += o.RecTD
}

// GameLine is one player's merged stat line for one week, with optional
// opponent context.
type GameLine struct {
	Week  int      `json:"week"`
	Stats StatLine `json:"stats"`
	Opp   string   `json:"opp,omitempty"` // e.g. "@BUF"
	Home  bool     `json:"home"`
}

// PlayerRef identifies a player by the (name, team) pair the sheets use.
type PlayerRef struct {
	Name   string
	Team   string
	RawPos string // position tag as it appeared on the sheet, may be empty
}

// Key returns the composite "name|team" identity.
func (p PlayerRef) Key() string {
	return p.Name + "|" + p.Team
}

// PlayerWeekRecord is the final per-player output for a requested week.
// Records are built fresh per request and never persisted.
type PlayerWeekRecord struct {
	ID        string     `json:"id"` // "name|team"
	Name      string     `json:"name"`
	Initials  string     `json:"initials"`
	Team      string     `json:"team"`
	Pos       Position   `json:"pos"`
	Opp       string     `json:"opp"` // "BUF", "@BUF", "BYE" or ""
	Risk      Risk       `json:"risk"`
	Projected float64    `json:"projected"`
	Startable bool       `json:"startable"`
	Spark     []float64  `json:"spark"` // recent point values, current week last
	Stats     StatLine   `json:"stats"`
	Source    Provenance `json:"source"`
}

// WeekResponse is the JSON envelope for a week's records.
type WeekResponse struct {
	OK      bool               `json:"ok"`
	Week    int                `json:"week"`
	Players []PlayerWeekRecord `json:"players"`
}

// ErrorResponse is the flat failure envelope.
type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// RankingEntry is one row of a positional ranking.
type RankingEntry struct {
	Rank      int     `json:"rank"`
	Name      string  `json:"name"`
	Team      string  `json:"team"`
	Opp       string  `json:"opp"`
	Tier      string  `json:"tier"` // S / A / B
	Projected float64 `json:"projected"`
}

// Initials returns up to two uppercase initials for a display avatar.
func Initials(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(w))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
