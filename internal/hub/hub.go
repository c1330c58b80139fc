package hub

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/YashRana52/INSTRAGRAM/internal/event"
	"github.com/YashRana52/INSTRAGRAM/internal/model"
)

// Hub owns all live websocket sessions and the presence registry. Domain
// services push notifications through it; it resolves the target user's
// session and delivers best-effort, dropping silently when the user is
// offline.
type Hub struct {
	registry *Registry

	mu      sync.RWMutex
	clients map[string]*Client // sessionID -> client

	register   chan *Client
	unregister chan *Client

	allowedOrigins map[string]struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a hub around the given registry and starts its manager
// loop. allowedOrigins lists the origins accepted at websocket upgrade;
// empty means accept any (useful in tests).
func NewHub(registry *Registry, allowedOrigins []string) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	h := &Hub{
		registry:       registry,
		clients:        make(map[string]*Client),
		register:       make(chan *Client, 1024),
		unregister:     make(chan *Client, 1024),
		allowedOrigins: origins,
		ctx:            ctx,
		cancel:         cancel,
	}

	go h.run()

	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		}
	}
}

// addClient records the session, binds it into the registry when it
// carries a user ID, and broadcasts the new presence snapshot.
func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()

	if c.UserID != "" {
		h.registry.Bind(c.UserID, c.ID)
		log.Printf("user %s connected on session %s", c.UserID, c.ID)
	}

	h.broadcastOnlineUsers()
}

// removeClient drops the session. The registry unbinds only when this
// session is still the one on record, so a quick reconnect is not evicted
// by the old session's late disconnect.
func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	_, exists := h.clients[c.ID]
	if exists {
		delete(h.clients, c.ID)
	}
	h.mu.Unlock()

	if !exists {
		return
	}
	c.Close()

	if uid, ok := h.registry.Unbind(c.ID); ok {
		log.Printf("user %s disconnected from session %s", uid, c.ID)
	}

	h.broadcastOnlineUsers()
}

// broadcastOnlineUsers pushes the full registry snapshot to every live
// session, bound or anonymous. Last snapshot wins; there is no diffing.
func (h *Hub) broadcastOnlineUsers() {
	ev, err := event.New(event.EventOnlineUsers, h.registry.OnlineUsers())
	if err != nil {
		log.Printf("failed to encode online users snapshot: %v", err)
		return
	}

	for _, c := range h.snapshotClients() {
		c.SafeSend(ev, sendTimeout)
	}
}

func (h *Hub) snapshotClients() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	return clients
}

// sendToUser resolves the user's active session and enqueues the event.
// A missing session is the normal offline case, not an error.
func (h *Hub) sendToUser(userID string, ev event.WsEvent) {
	sessionID, ok := h.registry.Resolve(userID)
	if !ok {
		return
	}

	h.mu.RLock()
	c, ok := h.clients[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if !c.SafeSend(ev, sendTimeout) {
		log.Printf("dropped %s event for user %s: egress unavailable", ev.Event, userID)
	}
}

// NotifyUser pushes a notification envelope to the user's session, if any.
func (h *Hub) NotifyUser(userID string, n model.Notification) {
	ev, err := event.New(event.EventNotification, n)
	if err != nil {
		log.Printf("failed to encode notification for user %s: %v", userID, err)
		return
	}
	h.sendToUser(userID, ev)
}

// DeliverMessage pushes a newly persisted message to the receiver's
// session, if any. The sender gets its copy in the HTTP response.
func (h *Hub) DeliverMessage(userID string, msg model.Message) {
	ev, err := event.New(event.EventNewMessage, msg)
	if err != nil {
		log.Printf("failed to encode message for user %s: %v", userID, err)
		return
	}
	h.sendToUser(userID, ev)
}

// IsOnline reports whether the user currently has a bound session.
func (h *Hub) IsOnline(userID string) bool {
	_, ok := h.registry.Resolve(userID)
	return ok
}

// Registry exposes the presence registry for monitoring.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// ConnectedClients returns the number of live sessions.
func (h *Hub) ConnectedClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stop shuts down the manager loop and closes every client.
func (h *Hub) Stop() {
	h.cancel()

	for _, c := range h.snapshotClients() {
		c.Close()
	}
}

var websocketUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	if len(h.allowedOrigins) == 0 {
		return true
	}
	_, ok := h.allowedOrigins[r.Header.Get("Origin")]
	return ok
}

// ServeWS upgrades the request and registers the session. An empty userID
// yields an anonymous session that is never bound into the registry.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) {
	upgrader := websocketUpgrader
	upgrader.CheckOrigin = h.checkOrigin

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	RegisterClient(userID, conn, h)
}
