// Package api exposes the HTTP surface over the week-assembly engine.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tgriffin/lineupiq/internal/auth"
	"github.com/tgriffin/lineupiq/internal/models"
	"github.com/tgriffin/lineupiq/internal/notifications"
	"github.com/tgriffin/lineupiq/internal/service"
	"github.com/tgriffin/lineupiq/internal/trade"
	"github.com/tgriffin/lineupiq/internal/websocket"
)

const (
	defaultWeek = 1
	minWeek     = 1
	maxWeek     = 18
)

// Handler holds HTTP handlers
type Handler struct {
	players *service.PlayerService
	hub     *websocket.Hub
	notify  *notifications.Service
	tokens  *auth.TokenIssuer
}

// NewHandler creates a new handler. hub, notify and tokens may be nil
// when the corresponding feature is not configured.
func NewHandler(players *service.PlayerService, hub *websocket.Hub, notify *notifications.Service, tokens *auth.TokenIssuer) *Handler {
	return &Handler{
		players: players,
		hub:     hub,
		notify:  notify,
		tokens:  tokens,
	}
}

// RegisterRoutes sets up the HTTP routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", h.handleHealth)
	r.Get("/api/players", h.handlePlayers)
	r.Get("/api/rankings", h.handleRankings)
	r.Post("/api/trade", h.handleTrade)
	r.Post("/api/league/connect", h.handleLeagueConnect)
	r.Post("/api/push/subscribe", h.handlePushSubscribe)
	r.Get("/ws", h.handleWebSocket)
}

// handleHealth returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{"status": "ok"}
	if h.hub != nil {
		status["ws_clients"] = h.hub.ClientCount()
	}
	h.jsonResponse(w, http.StatusOK, status)
}

// parseWeek reads and validates the week query parameter.
func parseWeek(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("week")
	if raw == "" {
		return defaultWeek, true
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week < minWeek || week > maxWeek {
		return 0, false
	}
	return week, true
}

// handlePlayers returns the assembled records for a week
// GET /api/players?week=N
func (h *Handler) handlePlayers(w http.ResponseWriter, r *http.Request) {
	week, ok := parseWeek(r)
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "invalid week: use 1-18")
		return
	}

	records, err := h.players.WeekRecords(week)
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, models.WeekResponse{
		OK:      true,
		Week:    week,
		Players: records,
	})
}

// handleRankings returns a positional ranking derived from the week's
// records
// GET /api/rankings?pos=QB&week=N
func (h *Handler) handleRankings(w http.ResponseWriter, r *http.Request) {
	week, ok := parseWeek(r)
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "invalid week: use 1-18")
		return
	}

	pos := models.Position(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("pos"))))
	switch pos {
	case models.PosQB, models.PosRB, models.PosWR, models.PosTE, models.PosK, models.PosDEF:
	default:
		h.errorResponse(w, http.StatusBadRequest, "invalid pos: use QB, RB, WR, TE, K or DEF")
		return
	}

	entries, err := h.players.Rankings(pos, week)
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"pos":      pos,
		"week":     week,
		"rankings": entries,
	})
}

// handleTrade evaluates a 1-for-1 trade proposal
// POST /api/trade {"giveId": "...", "getId": "..."}
func (h *Handler) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GiveID string `json:"giveId"`
		GetID  string `json:"getId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := trade.Evaluate(req.GiveID, req.GetID)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}

// handleLeagueConnect validates a league connection request and
// returns a session token when signing is configured
// POST /api/league/connect {"platform": "...", "identifier": "..."}
func (h *Handler) handleLeagueConnect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Platform   string `json:"platform"`
		Identifier string `json:"identifier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Platform == "" || req.Identifier == "" {
		h.errorResponse(w, http.StatusBadRequest, "missing fields")
		return
	}

	resp := map[string]interface{}{
		"ok":         true,
		"platform":   req.Platform,
		"identifier": req.Identifier,
		"kind":       "mock-connection",
	}

	if h.tokens != nil {
		token, err := h.tokens.IssueLeagueToken(req.Platform, req.Identifier)
		if err != nil {
			h.errorResponse(w, http.StatusInternalServerError, "failed to issue session token")
			return
		}
		resp["token"] = token
	}

	h.jsonResponse(w, http.StatusOK, resp)
}

// handlePushSubscribe stores a browser push subscription
// POST /api/push/subscribe {subscription JSON}
func (h *Handler) handlePushSubscribe(w http.ResponseWriter, r *http.Request) {
	if h.notify == nil {
		h.errorResponse(w, http.StatusNotImplemented, "push notifications not configured")
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.notify.Subscribe(string(raw)); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleWebSocket upgrades the connection and hands it to the hub
// GET /ws
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		h.errorResponse(w, http.StatusNotImplemented, "websocket not configured")
		return
	}
	websocket.ServeWs(h.hub, w, r)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, models.ErrorResponse{OK: false, Message: message})
}
