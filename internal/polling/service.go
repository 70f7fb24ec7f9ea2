// Package polling periodically rebuilds the current week's records and
// fans out changes to WebSocket subscribers and push subscriptions.
package polling

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/tgriffin/lineupiq/internal/models"
	"github.com/tgriffin/lineupiq/internal/notifications"
	"github.com/tgriffin/lineupiq/internal/service"
	"github.com/tgriffin/lineupiq/internal/websocket"
)

// Config holds polling service configuration
type Config struct {
	// Enabled controls whether polling is active
	Enabled bool

	// Interval is the time between polls
	Interval time.Duration

	// Week is the week to rebuild each cycle
	Week int

	// MaxRetries before giving up on a poll cycle
	MaxRetries int

	// RetryBaseDelay is the base delay for exponential backoff
	RetryBaseDelay time.Duration
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Enabled:        false, // Off by default
		Interval:       5 * time.Minute,
		Week:           1,
		MaxRetries:     3,
		RetryBaseDelay: 2 * time.Second,
	}
}

// Service handles periodic rebuilding of the current week
type Service struct {
	config  Config
	players *service.PlayerService
	hub     *websocket.Hub
	notify  *notifications.Service

	// State
	mu       sync.RWMutex
	lastHash string // Hash of last records for change detection

	// Control
	stopCh chan struct{}
}

// NewService creates a new polling service
func NewService(config Config, players *service.PlayerService, hub *websocket.Hub, notify *notifications.Service) *Service {
	return &Service{
		config:  config,
		players: players,
		hub:     hub,
		notify:  notify,
		stopCh:  make(chan struct{}),
	}
}

// Start begins the polling loop
func (s *Service) Start(ctx context.Context) {
	log.Printf("Polling service starting (week: %d, interval: %v)", s.config.Week, s.config.Interval)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// Immediate poll on start
	s.poll()

	for {
		select {
		case <-ctx.Done():
			log.Println("Polling service stopped (context cancelled)")
			return

		case <-s.stopCh:
			log.Println("Polling service stopped")
			return

		case <-ticker.C:
			s.poll()
		}
	}
}

// Stop stops the polling service
func (s *Service) Stop() {
	close(s.stopCh)
}

func (s *Service) poll() {
	records, err := s.pollWithRetry()
	if err != nil {
		log.Printf("Polling: week %d rebuild failed: %v", s.config.Week, err)
		s.hub.BroadcastStatus("polling_degraded")
		return
	}

	if !s.hasChanges(records) {
		return
	}

	log.Printf("Polling: Changes detected for week %d, broadcasting to clients", s.config.Week)
	s.hub.BroadcastWeek(s.config.Week, records)
	s.updateHash(records)

	if s.notify != nil && s.notify.Enabled() {
		go s.notify.NotifyTopProjections(s.config.Week, records)
	}
}

func (s *Service) pollWithRetry() ([]models.PlayerWeekRecord, error) {
	var lastErr error

	for attempt := 0; attempt < s.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 2s, 4s, 8s...
			delay := s.config.RetryBaseDelay * time.Duration(1<<uint(attempt-1))
			log.Printf("Polling: Retry %d after %v", attempt, delay)
			time.Sleep(delay)
		}

		records, err := s.players.WeekRecords(s.config.Week)
		if err == nil {
			return records, nil
		}

		lastErr = err
		log.Printf("Polling: Attempt %d failed: %v", attempt+1, err)
	}

	return nil, fmt.Errorf("all %d retries failed: %w", s.config.MaxRetries, lastErr)
}

// hasChanges checks whether the records differ from the last broadcast
func (s *Service) hasChanges(records []models.PlayerWeekRecord) bool {
	newHash := hashRecords(records)

	s.mu.RLock()
	oldHash := s.lastHash
	s.mu.RUnlock()

	return newHash != oldHash
}

func (s *Service) updateHash(records []models.PlayerWeekRecord) {
	s.mu.Lock()
	s.lastHash = hashRecords(records)
	s.mu.Unlock()
}

func hashRecords(records []models.PlayerWeekRecord) string {
	data, _ := json.Marshal(records)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}
