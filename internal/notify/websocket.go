package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/skyflipper/engine/internal/store"
)

const (
	// WriteTimeout bounds each client write; a client that cannot keep up
	// is dropped rather than stalling the broadcast.
	WriteTimeout = 10 * time.Second

	feedPath = "/feed"
)

// WebsocketSink broadcasts flip decisions as JSON to connected feed clients.
type WebsocketSink struct {
	addr     string
	server   *http.Server
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewWebsocketSink creates a sink listening on addr.
func NewWebsocketSink(addr string) *WebsocketSink {
	return &WebsocketSink{
		addr:    addr,
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Start begins serving the feed endpoint. It returns once the listener is
// running; serve errors after startup are logged.
func (s *WebsocketSink) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc(feedPath, s.handleFeed)

	s.server = &http.Server{Addr: s.addr, Handler: mux}

	slog.Info("feed_listening", "addr", s.addr, "path", feedPath)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("feed_server_failed", "error", err)
		}
	}()

	return nil
}

// Stop closes all client connections and shuts the server down.
func (s *WebsocketSink) Stop(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// handleFeed upgrades the connection and registers the client.
func (s *WebsocketSink) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("feed_upgrade_failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	count := len(s.clients)
	s.mu.Unlock()

	slog.Info("feed_client_connected", "remote", r.RemoteAddr, "clients", count)

	// Drain reads so close frames and pings are processed; the feed itself
	// is one-directional.
	go func() {
		defer s.dropClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Notify broadcasts the decision to every connected client.
func (s *WebsocketSink) Notify(d store.FlipDecision) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode decision: %w", err)
	}

	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			slog.Warn("feed_write_failed", "error", err)
			s.dropClient(conn)
		}
	}

	return nil
}

// dropClient closes and unregisters a connection.
func (s *WebsocketSink) dropClient(conn *websocket.Conn) {
	conn.Close()

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
}
