// Package realtime delivers match events to connected users. Channels are
// keyed by user id rather than by match, so one connection carries updates
// for every match the user takes part in.
package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	ErrHubClosed = errors.New("realtime hub is not running")
	ErrHubBusy   = errors.New("realtime hub queue is full")
)

// Event is one server-sent message.
type Event struct {
	Name string
	Data []byte
}

// Client is a single open stream for one user. The hub writes to Send and
// closes it when the client is dropped.
type Client struct {
	UserID uint
	Send   chan Event
}

type message struct {
	userID uint
	event  Event
}

// Hub tracks open streams per user. All map writes happen on the Run
// goroutine; Connected reads under the lock.
type Hub struct {
	clients map[uint]map[*Client]bool

	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	bufferSize int
	logger     *slog.Logger
	mu         sync.RWMutex
}

// NewHub creates a hub whose clients buffer up to bufferSize events.
func NewHub(bufferSize int, logger *slog.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		broadcast:  make(chan message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// Run processes registrations and deliveries until ctx is cancelled, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.UserID] == nil {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			targets := make([]*Client, 0, len(h.clients[msg.userID]))
			for client := range h.clients[msg.userID] {
				targets = append(targets, client)
			}
			h.mu.RUnlock()

			for _, client := range targets {
				select {
				case client.Send <- msg.event:
				default:
					// Slow reader; it reconnects and re-fetches.
					h.logger.Warn("dropping slow realtime client", "user_id", client.UserID, "event", msg.event.Name)
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[client.UserID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.UserID)
	}
}

func (h *Hub) shutdown() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, clients := range h.clients {
		for client := range clients {
			close(client.Send)
		}
		delete(h.clients, userID)
	}
}

// Subscribe opens a stream for userID.
func (h *Hub) Subscribe(userID uint) (*Client, error) {
	client := &Client{UserID: userID, Send: make(chan Event, h.bufferSize)}
	select {
	case h.register <- client:
		return client, nil
	case <-h.done:
		return nil, ErrHubClosed
	}
}

// Unsubscribe closes the stream. It is safe to call after the hub dropped
// the client or stopped.
func (h *Hub) Unsubscribe(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues an event for every open stream of userID. It never blocks
// on a slow consumer; a full queue is reported as ErrHubBusy.
func (h *Hub) Publish(ctx context.Context, userID uint, event string, payload []byte) error {
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}
	msg := message{userID: userID, event: Event{Name: event, Data: payload}}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case h.broadcast <- msg:
		return nil
	default:
		return ErrHubBusy
	}
}

// Connected returns the number of open streams for userID.
func (h *Hub) Connected(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
