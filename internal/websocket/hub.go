package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/tgriffin/lineupiq/internal/models"
)

// Message types
const (
	MessageTypeRankingsUpdate = "rankings_update"
	MessageTypeSubscribe      = "subscribe"
	MessageTypeUnsubscribe    = "unsubscribe"
	MessageTypeError          = "error"
	MessageTypeStatus         = "status"
	MessageTypePong           = "pong"
)

// Message represents a WebSocket message.
type Message struct {
	Type      string                    `json:"type"`
	Week      int                       `json:"week,omitempty"`
	Players   []models.PlayerWeekRecord `json:"players,omitempty"`
	Timestamp time.Time                 `json:"timestamp"`
	Error     string                    `json:"error,omitempty"`
	Status    string                    `json:"status,omitempty"`
}

// Hub maintains the set of active clients and broadcasts recomputed
// week rankings to clients subscribed to that week.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Client subscriptions by week number
	subscriptions map[int]map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu sync.RWMutex

	maxConnections int
}

// NewHub creates a new Hub.
func NewHub(maxConnections int) *Hub {
	if maxConnections <= 0 {
		maxConnections = 1000
	}
	return &Hub{
		clients:        make(map[*Client]bool),
		subscriptions:  make(map[int]map[*Client]bool),
		register:       make(chan *Client, 256),
		unregister:     make(chan *Client, 256),
		maxConnections: maxConnections,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) >= h.maxConnections {
		log.Printf("WebSocket: Connection rejected - at capacity (%d)", h.maxConnections)
		errMsg := Message{
			Type:      MessageTypeError,
			Error:     "Server at capacity, please try again later",
			Timestamp: time.Now(),
		}
		data, _ := json.Marshal(errMsg)
		client.send <- data
		close(client.send)
		return
	}

	h.clients[client] = true
	log.Printf("WebSocket: Client connected (total: %d)", len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		for week := range h.subscriptions {
			delete(h.subscriptions[week], client)
		}
		close(client.send)
		log.Printf("WebSocket: Client disconnected (total: %d)", len(h.clients))
	}
}

// Subscribe adds a client to a week's subscription list.
func (h *Hub) Subscribe(client *Client, week int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscriptions[week] == nil {
		h.subscriptions[week] = make(map[*Client]bool)
	}
	h.subscriptions[week][client] = true
	log.Printf("WebSocket: Client subscribed to week %d (subscribers: %d)", week, len(h.subscriptions[week]))
}

// Unsubscribe removes a client from a week's subscription list.
func (h *Hub) Unsubscribe(client *Client, week int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscriptions[week] != nil {
		delete(h.subscriptions[week], client)
	}
}

// BroadcastWeek sends freshly assembled records to all clients
// subscribed to that week.
func (h *Hub) BroadcastWeek(week int, players []models.PlayerWeekRecord) {
	message := Message{
		Type:      MessageTypeRankingsUpdate,
		Week:      week,
		Players:   players,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("WebSocket: Failed to marshal broadcast message: %v", err)
		return
	}

	h.mu.RLock()
	subscribers := h.subscriptions[week]
	clientCount := len(subscribers)
	h.mu.RUnlock()

	if clientCount == 0 {
		return
	}

	var failedClients []*Client

	h.mu.RLock()
	for client := range subscribers {
		select {
		case client.send <- data:
			// Sent successfully
		default:
			// Client's buffer is full - mark for removal
			failedClients = append(failedClients, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range failedClients {
		log.Printf("WebSocket: Removing slow client")
		h.unregister <- client
	}

	log.Printf("WebSocket: Broadcast week %d to %d clients (%d bytes)", week, clientCount-len(failedClients), len(data))
}

// BroadcastStatus sends a status message to all clients.
func (h *Hub) BroadcastStatus(status string) {
	message := Message{
		Type:      MessageTypeStatus,
		Status:    status,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Skip slow clients for status messages
		}
	}
}

// CanAccept returns whether the hub can accept new connections.
func (h *Hub) CanAccept() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients) < h.maxConnections
}

// ClientCount returns the current number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
