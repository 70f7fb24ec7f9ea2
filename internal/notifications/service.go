// Package notifications sends Web Push digests of the week's top
// projections to subscribed browsers.
package notifications

import (
	"encoding/json"
	"fmt"
	"log"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/tgriffin/lineupiq/internal/database"
	"github.com/tgriffin/lineupiq/internal/models"
)

const topPicks = 3

// Config holds notification service configuration
type Config struct {
	// VAPID keys for Web Push
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubject    string // mailto: or https:// URL
}

// PushPayload is the notification body delivered to the service worker.
type PushPayload struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Icon  string   `json:"icon,omitempty"`
	Tag   string   `json:"tag,omitempty"`
	Data  PushData `json:"data,omitempty"`
}

// PushData carries structured payload data.
type PushData struct {
	URL  string `json:"url"`
	Week int    `json:"week"`
}

// Service handles notification dispatch
type Service struct {
	config Config
	db     *database.DB
}

// NewService creates a new notification service
func NewService(config Config, db *database.DB) *Service {
	return &Service{config: config, db: db}
}

// Enabled reports whether push dispatch is fully configured.
func (s *Service) Enabled() bool {
	return s.db != nil && s.config.VAPIDPublicKey != "" && s.config.VAPIDPrivateKey != ""
}

// Subscribe stores a browser push subscription after validating that
// it parses as one.
func (s *Service) Subscribe(subscriptionJSON string) error {
	if s.db == nil {
		return fmt.Errorf("push subscriptions require a database")
	}

	var sub webpush.Subscription
	if err := json.Unmarshal([]byte(subscriptionJSON), &sub); err != nil {
		return fmt.Errorf("invalid subscription: %w", err)
	}
	if sub.Endpoint == "" {
		return fmt.Errorf("invalid subscription: missing endpoint")
	}

	return s.db.SavePushSubscription(subscriptionJSON)
}

// NotifyTopProjections pushes a digest of the week's top startable
// players to every stored subscription. Failed endpoints are dropped.
func (s *Service) NotifyTopProjections(week int, records []models.PlayerWeekRecord) {
	if !s.Enabled() {
		return
	}

	var picks []models.PlayerWeekRecord
	for _, r := range records {
		if !r.Startable {
			continue
		}
		picks = append(picks, r)
		if len(picks) == topPicks {
			break
		}
	}
	if len(picks) == 0 {
		return
	}

	body := ""
	for i, p := range picks {
		if i > 0 {
			body += ", "
		}
		body += fmt.Sprintf("%s %.1f", p.Name, p.Projected)
	}

	payload := PushPayload{
		Title: fmt.Sprintf("Week %d top projections", week),
		Body:  body,
		Icon:  "/icon-192.png",
		Tag:   "top-projections",
		Data:  PushData{URL: "/", Week: week},
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Notifications: failed to marshal payload: %v", err)
		return
	}

	subs, err := s.db.PushSubscriptions()
	if err != nil {
		log.Printf("Notifications: failed to load subscriptions: %v", err)
		return
	}

	for _, raw := range subs {
		sub := &webpush.Subscription{}
		if err := json.Unmarshal([]byte(raw), sub); err != nil {
			log.Printf("Notifications: dropping unparseable subscription")
			s.db.DeletePushSubscription(raw)
			continue
		}

		resp, err := webpush.SendNotification(payloadJSON, sub, &webpush.Options{
			Subscriber:      s.config.VAPIDSubject,
			VAPIDPublicKey:  s.config.VAPIDPublicKey,
			VAPIDPrivateKey: s.config.VAPIDPrivateKey,
			TTL:             60,
		})
		if err != nil {
			log.Printf("Notifications: push failed: %v", err)
			continue
		}
		if resp.StatusCode == 404 || resp.StatusCode == 410 {
			// Endpoint gone, subscription expired
			s.db.DeletePushSubscription(raw)
		}
		resp.Body.Close()
	}

	log.Printf("Notifications: pushed week %d digest to %d subscriptions", week, len(subs))
}
