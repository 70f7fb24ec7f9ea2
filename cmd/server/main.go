package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tgriffin/lineupiq/internal/api"
	"github.com/tgriffin/lineupiq/internal/auth"
	"github.com/tgriffin/lineupiq/internal/database"
	"github.com/tgriffin/lineupiq/internal/notifications"
	"github.com/tgriffin/lineupiq/internal/polling"
	"github.com/tgriffin/lineupiq/internal/service"
	"github.com/tgriffin/lineupiq/internal/websocket"
	"github.com/tgriffin/lineupiq/internal/workbook"
)

const (
	defaultStatsPath    = "/data/2025-weekly-stats.xlsx"
	defaultSchedulePath = "/data/team-schedules.xlsx"
)

func main() {
	// Subcommand: generate VAPID keys for push notifications
	if len(os.Args) > 1 && os.Args[1] == "vapid-keys" {
		notifications.PrintVAPIDKeys()
		return
	}

	// Where workbooks are fetched from
	baseURL := os.Getenv("DATA_BASE_URL")
	if baseURL == "" {
		log.Fatal("DATA_BASE_URL environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	statsPath := os.Getenv("STATS_WORKBOOK_PATH")
	if statsPath == "" {
		statsPath = defaultStatsPath
	}
	schedulePath := os.Getenv("SCHEDULE_WORKBOOK_PATH")
	if schedulePath == "" {
		schedulePath = defaultSchedulePath
	}

	// Optional result cache and push subscription store
	var db *database.DB
	if dbPath := os.Getenv("CACHE_DB"); dbPath != "" {
		var err error
		db, err = database.New(dbPath)
		if err != nil {
			log.Fatalf("Failed to open cache database: %v", err)
		}
		defer db.Close()
	}

	// Initialize components
	loader := workbook.NewLoader(baseURL)
	players := service.NewPlayerService(loader, statsPath, schedulePath, db)

	hub := websocket.NewHub(0)
	go hub.Run()

	var notify *notifications.Service
	if pub, priv := os.Getenv("VAPID_PUBLIC_KEY"), os.Getenv("VAPID_PRIVATE_KEY"); pub != "" && priv != "" {
		subject := os.Getenv("VAPID_SUBJECT")
		if subject == "" {
			subject = "mailto:admin@localhost"
		}
		notify = notifications.NewService(notifications.Config{
			VAPIDPublicKey:  pub,
			VAPIDPrivateKey: priv,
			VAPIDSubject:    subject,
		}, db)
		log.Println("Push notifications enabled")
	}

	var tokens *auth.TokenIssuer
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		tokens = auth.NewTokenIssuer(secret)
	}

	// Optional background poll of the current week
	if weekStr := os.Getenv("CURRENT_WEEK"); weekStr != "" {
		week, err := strconv.Atoi(weekStr)
		if err != nil || week < 1 || week > 18 {
			log.Fatalf("Invalid CURRENT_WEEK: %q", weekStr)
		}

		cfg := polling.DefaultConfig()
		cfg.Enabled = true
		cfg.Week = week
		if intervalStr := os.Getenv("POLL_INTERVAL"); intervalStr != "" {
			interval, err := time.ParseDuration(intervalStr)
			if err != nil {
				log.Fatalf("Invalid POLL_INTERVAL: %q", intervalStr)
			}
			cfg.Interval = interval
		}

		poller := polling.NewService(cfg, players, hub, notify)
		go poller.Start(context.Background())
	}

	handler := api.NewHandler(players, hub, notify, tokens)

	// Setup routes
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	handler.RegisterRoutes(r)

	// Start server
	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("LineupIQ API starting on http://localhost%s\n", addr)
	fmt.Println("\nEndpoints:")
	fmt.Println("  GET  /api/health          - Health check")
	fmt.Println("  GET  /api/players?week=N  - Assembled week records")
	fmt.Println("  GET  /api/rankings?pos=&week= - Positional rankings")
	fmt.Println("  POST /api/trade           - Trade value verdict")
	fmt.Println("  POST /api/league/connect  - Connect a league account")
	fmt.Println("  POST /api/push/subscribe  - Register push subscription")
	fmt.Println("  GET  /ws                  - WebSocket week updates")
	fmt.Println()

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
