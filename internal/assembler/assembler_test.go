package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgriffin/lineupiq/internal/models"
	"github.com/tgriffin/lineupiq/internal/schedule"
	"github.com/tgriffin/lineupiq/internal/stats"
	"github.com/tgriffin/lineupiq/internal/workbook"
)

func fixtureStats() *stats.Source {
	wb := workbook.New(
		[]string{"Passing W1", "Receiving W1"},
		map[string][][]string{
			"Passing W1": {
				{"Player", "Team", "Pos", "Yds", "TD", "Int"},
				{"Sam Smith", "BUF", "QB", "300", "3", "1"},
			},
			"Receiving W1": {
				{"Player", "Team", "Pos", "Rec", "Yds", "TD"},
				{"Jordan Reed", "MIA", "WR", "5", "80", "1"},
				{"Bo Dart", "MIA", "WR", "3", "40", "0"},
				{"Alex Cole", "NYJ", "WR", "4", "60", "0"},
			},
		},
	)
	return stats.NewSource(wb)
}

func fixtureSchedule() *schedule.Index {
	return schedule.Build(workbook.New([]string{"Schedule"}, map[string][][]string{
		"Schedule": {
			{"Team", "W1", "W2"},
			{"BUF", "@NYJ", "vs MIA"},
			{"MIA", "BYE", "@BUF"},
			{"NYJ", "vs BUF", "@KC"},
		},
	}))
}

func findRecord(t *testing.T, records []models.PlayerWeekRecord, name string) models.PlayerWeekRecord {
	t.Helper()
	for _, r := range records {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("record for %q not found", name)
	return models.PlayerWeekRecord{}
}

func TestBuildWeek_ActualRecord(t *testing.T) {
	a := New(fixtureStats(), fixtureSchedule())
	records := a.BuildWeek(1)
	require.Len(t, records, 4)

	sam := findRecord(t, records, "Sam Smith")
	assert.Equal(t, "Sam Smith|BUF", sam.ID)
	assert.Equal(t, "SS", sam.Initials)
	assert.Equal(t, models.PosQB, sam.Pos)
	assert.Equal(t, "@NYJ", sam.Opp)
	// 300*0.04 + 3*4 - 2 = 22.0
	assert.Equal(t, 22.0, sam.Projected)
	assert.Equal(t, models.SourceActual, sam.Source)
	assert.Equal(t, models.RiskLow, sam.Risk)
	assert.True(t, sam.Startable)
	assert.Equal(t, 300.0, sam.Stats.PassYds)
	assert.Equal(t, []float64{22.0}, sam.Spark)
}

func TestBuildWeek_ByeShortCircuit(t *testing.T) {
	a := New(fixtureStats(), fixtureSchedule())
	records := a.BuildWeek(1)

	// Jordan Reed has a recorded stat line, but the schedule says bye:
	// the bye wins and the record is zeroed.
	jordan := findRecord(t, records, "Jordan Reed")
	assert.Equal(t, schedule.Bye, jordan.Opp)
	assert.Equal(t, models.SourceBye, jordan.Source)
	assert.Equal(t, 0.0, jordan.Projected)
	assert.Equal(t, models.RiskMed, jordan.Risk)
	assert.False(t, jordan.Startable)
	assert.Equal(t, []float64{0}, jordan.Spark)
}

func TestBuildWeek_SortedByProjectedDescending(t *testing.T) {
	a := New(fixtureStats(), fixtureSchedule())
	records := a.BuildWeek(1)
	require.Len(t, records, 4)

	for i := 1; i < len(records); i++ {
		assert.GreaterOrEqual(t, records[i-1].Projected, records[i].Projected)
	}

	// Ties keep universe discovery order: both MIA receivers are byes
	// at zero, and Jordan Reed appears first on the sheet.
	assert.Equal(t, "Jordan Reed", records[2].Name)
	assert.Equal(t, "Bo Dart", records[3].Name)
}

func TestBuildWeek_ProjectedRecord(t *testing.T) {
	a := New(fixtureStats(), fixtureSchedule())
	records := a.BuildWeek(2)

	// No week-2 sheets exist, so everyone seen in week 1 projects.
	alex := findRecord(t, records, "Alex Cole")
	assert.Equal(t, models.SourceProjected, alex.Source)
	assert.Equal(t, "@KC", alex.Opp)
	assert.Greater(t, alex.Projected, 0.0)
	assert.Zero(t, alex.Stats)

	// Spark: week-1 actual points, then the current projection.
	require.Len(t, alex.Spark, 2)
	assert.Equal(t, 10.0, alex.Spark[0]) // 4 rec + 60*0.1
	assert.Equal(t, alex.Projected, alex.Spark[1])
}

func TestBuildWeek_PositionFromTag(t *testing.T) {
	a := New(fixtureStats(), fixtureSchedule())
	records := a.BuildWeek(1)

	assert.Equal(t, models.PosWR, findRecord(t, records, "Alex Cole").Pos)
	assert.Equal(t, models.PosQB, findRecord(t, records, "Sam Smith").Pos)
}

func TestBuildWeek_ResolvesUntaggedPosition(t *testing.T) {
	src := stats.NewSource(workbook.New([]string{"Passing W1"}, map[string][][]string{
		"Passing W1": {
			{"Player", "Team", "Yds", "TD"},
			{"No Tag", "KC", "180", "1"},
		},
	}))
	a := New(src, fixtureSchedule())

	records := a.BuildWeek(1)
	require.Len(t, records, 1)
	assert.Equal(t, models.PosQB, records[0].Pos)
}

func TestBuildWeek_EmptyWorkbook(t *testing.T) {
	src := stats.NewSource(workbook.New(nil, map[string][][]string{}))
	a := New(src, fixtureSchedule())

	records := a.BuildWeek(1)
	assert.Empty(t, records)
}

func TestRiskFromPoints(t *testing.T) {
	assert.Equal(t, models.RiskLow, riskFromPoints(16))
	assert.Equal(t, models.RiskMed, riskFromPoints(15.9))
	assert.Equal(t, models.RiskMed, riskFromPoints(9))
	assert.Equal(t, models.RiskHigh, riskFromPoints(8.9))
}
