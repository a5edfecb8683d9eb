// Package ws pushes newly posted comments to readers who have the post open.
package ws

import (
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"
)

const (
	maxConnsPerPost = 200
	maxTotalConns   = 2000
)

var ErrTooManyConnections = errors.New("connection limit reached")

// Message is the JSON envelope sent to subscribers.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub keeps the open connections per post id.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[uint]map[*Client]struct{}
	total  int
	closed bool
	log    *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		rooms: make(map[uint]map[*Client]struct{}),
		log:   log.Named("ws"),
	}
}

func (h *Hub) register(c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed || h.total >= maxTotalConns {
		return ErrTooManyConnections
	}
	room, ok := h.rooms[c.postID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.postID] = room
	}
	if len(room) >= maxConnsPerPost {
		return ErrTooManyConnections
	}
	room[c] = struct{}{}
	h.total++
	return nil
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[c.postID]
	if !ok {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	close(c.send)
	h.total--
	if len(room) == 0 {
		delete(h.rooms, c.postID)
	}
}

// Subscribers returns the number of open connections for a post.
func (h *Hub) Subscribers(postID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[postID])
}

// Publish sends msgType/data to every subscriber of postID. Slow subscribers miss messages
// rather than block the publisher.
func (h *Hub) Publish(postID uint, msgType string, data interface{}) {
	payload, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		h.log.Error("marshal websocket message", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[postID] {
		select {
		case c.send <- payload:
		default:
			h.log.Warn("dropping message for slow subscriber", zap.Uint("post_id", postID))
		}
	}
}

// Close disconnects every subscriber and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for postID, room := range h.rooms {
		for c := range room {
			close(c.send)
		}
		delete(h.rooms, postID)
	}
	h.total = 0
}
