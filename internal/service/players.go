package service

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/tgriffin/lineupiq/internal/assembler"
	"github.com/tgriffin/lineupiq/internal/database"
	"github.com/tgriffin/lineupiq/internal/models"
	"github.com/tgriffin/lineupiq/internal/schedule"
	"github.com/tgriffin/lineupiq/internal/stats"
	"github.com/tgriffin/lineupiq/internal/workbook"
)

// PlayerService orchestrates workbook retrieval and week assembly.
// Every call rebuilds from fresh workbook bytes; the only carried
// state is the optional result cache, keyed by content hash so it can
// never go stale.
type PlayerService struct {
	loader       *workbook.Loader
	statsPath    string
	schedulePath string
	db           *database.DB // nil disables the cache
}

// NewPlayerService creates a new player service. db may be nil.
func NewPlayerService(loader *workbook.Loader, statsPath, schedulePath string, db *database.DB) *PlayerService {
	return &PlayerService{
		loader:       loader,
		statsPath:    statsPath,
		schedulePath: schedulePath,
		db:           db,
	}
}

type fetchResult struct {
	wb  *workbook.Workbook
	err error
}

// WeekRecords fetches both workbooks and assembles the week's records,
// sorted by projected points descending. The two fetches have no data
// dependency and run concurrently; both must succeed — a fetch failure
// fails the whole request with no partial result.
func (s *PlayerService) WeekRecords(week int) ([]models.PlayerWeekRecord, error) {
	statsCh := make(chan fetchResult, 1)
	schedCh := make(chan fetchResult, 1)

	go func() {
		wb, err := s.loader.Fetch(s.statsPath)
		statsCh <- fetchResult{wb: wb, err: err}
	}()
	go func() {
		wb, err := s.loader.Fetch(s.schedulePath)
		schedCh <- fetchResult{wb: wb, err: err}
	}()

	statsRes := <-statsCh
	schedRes := <-schedCh
	if statsRes.err != nil {
		return nil, fmt.Errorf("stats workbook: %w", statsRes.err)
	}
	if schedRes.err != nil {
		return nil, fmt.Errorf("schedule workbook: %w", schedRes.err)
	}

	cacheKey := statsRes.wb.Hash() + ":" + schedRes.wb.Hash()
	if s.db != nil {
		if payload, ok := s.db.GetWeekCache(cacheKey, week); ok {
			var records []models.PlayerWeekRecord
			if err := json.Unmarshal(payload, &records); err == nil {
				return records, nil
			}
			log.Printf("Service: discarding unreadable week cache entry for week %d", week)
		}
	}

	src := stats.NewSource(statsRes.wb)
	idx := schedule.Build(schedRes.wb)
	records := assembler.New(src, idx).BuildWeek(week)

	if s.db != nil {
		if payload, err := json.Marshal(records); err == nil {
			if err := s.db.PutWeekCache(cacheKey, week, payload); err != nil {
				log.Printf("Service: week cache write failed: %v", err)
			}
		}
	}

	return records, nil
}

// tierFromPoints buckets projected points into ranking tiers.
func tierFromPoints(p float64) string {
	switch {
	case p >= 16:
		return "S"
	case p >= 9:
		return "A"
	default:
		return "B"
	}
}

// Rankings derives a positional ranking from the week's records.
func (s *PlayerService) Rankings(pos models.Position, week int) ([]models.RankingEntry, error) {
	records, err := s.WeekRecords(week)
	if err != nil {
		return nil, err
	}

	var entries []models.RankingEntry
	for _, r := range records {
		if r.Pos != pos || strings.EqualFold(r.Opp, schedule.Bye) {
			continue
		}
		entries = append(entries, models.RankingEntry{
			Rank:      len(entries) + 1,
			Name:      r.Name,
			Team:      r.Team,
			Opp:       r.Opp,
			Tier:      tierFromPoints(r.Projected),
			Projected: r.Projected,
		})
	}
	return entries, nil
}
