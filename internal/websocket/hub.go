package websocket

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/policy"
	"github.com/noah-isme/placement-portal-api/internal/service"
)

type clientSet map[*Client]struct{}

// Hub tracks live chat connections by college channel and by user.
type Hub struct {
	mu       sync.RWMutex
	channels map[policy.ChannelID]clientSet
	users    map[string]clientSet

	metrics *service.MetricsService
	logger  *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(metrics *service.MetricsService, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		channels: make(map[policy.ChannelID]clientSet),
		users:    make(map[string]clientSet),
		metrics:  metrics,
		logger:   logger,
	}
}

// Register adds a client to its channel.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	add(h.channels, client.channel, client)
	add(h.users, client.userID, client)
	h.metrics.ChatConnectionOpened()

	h.logger.Info("chat client registered",
		zap.String("channel", client.channel.GroupName()),
		zap.String("user_id", client.userID),
	)
}

// Unregister removes a client and closes its send queue. Safe to call more
// than once.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) bool {
	members, ok := h.channels[client.channel]
	if !ok {
		return false
	}
	if _, ok := members[client]; !ok {
		return false
	}

	remove(h.channels, client.channel, client)
	remove(h.users, client.userID, client)
	close(client.send)
	h.metrics.ChatConnectionClosed()

	h.logger.Info("chat client unregistered",
		zap.String("channel", client.channel.GroupName()),
		zap.String("user_id", client.userID),
	)
	return true
}

// Broadcast sends an event to every member of a channel. Members whose send
// queue is full are dropped.
func (h *Hub) Broadcast(channel policy.ChannelID, event dto.ChatEvent) {
	if event.Channel == "" {
		event.Channel = channel.GroupName()
	}
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal chat event", zap.String("type", event.Type), zap.Error(err))
		return
	}

	var slow []*Client
	h.mu.RLock()
	for client := range h.channels[channel] {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("dropping slow chat client", zap.String("user_id", client.userID))
		h.Unregister(client)
	}
}

// Evict disconnects every connection of a user, telling each why. It returns
// the number of connections closed.
func (h *Hub) Evict(userID, reason string) int {
	data, err := json.Marshal(dto.ChatEvent{Type: dto.ChatEventMembershipRevoked, Error: reason})
	if err != nil {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	evicted := 0
	for client := range h.users[userID] {
		select {
		case client.send <- data:
		default:
		}
		if h.removeLocked(client) {
			evicted++
		}
	}
	if evicted > 0 {
		h.logger.Info("chat membership revoked", zap.String("user_id", userID), zap.Int("connections", evicted))
	}
	return evicted
}

// Count returns the number of live connections in a channel.
func (h *Hub) Count(channel policy.ChannelID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// deliver queues an event for a single client if it is still registered.
func (h *Hub) deliver(client *Client, event dto.ChatEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.channels[client.channel][client]; !ok {
		return
	}
	select {
	case client.send <- data:
	default:
	}
}

func add[K comparable](index map[K]clientSet, key K, client *Client) {
	members, ok := index[key]
	if !ok {
		members = make(clientSet)
		index[key] = members
	}
	members[client] = struct{}{}
}

func remove[K comparable](index map[K]clientSet, key K, client *Client) {
	members, ok := index[key]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(index, key)
	}
}
