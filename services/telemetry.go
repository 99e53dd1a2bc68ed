// Package services provides supporting services for the eightball
// application, including a WebSocket telemetry broadcast that streams
// read-only simulation snapshots to remote viewers.
package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"eightball/engine"
)

// Frame is the wire representation of one engine.Snapshot, broadcast
// to every connected telemetry client.
type Frame struct {
	Balls           []engine.BallView `json:"balls"`
	ContainerRadius float64           `json:"container_radius"`
	GlobalTime      float64           `json:"global_time"`
}

func frameFromSnapshot(s engine.Snapshot) Frame {
	return Frame{Balls: s.Balls, ContainerRadius: s.ContainerRadius, GlobalTime: s.GlobalTime}
}

// Telemetry serves a WebSocket endpoint that broadcasts a Frame, once
// per tick, to every connected client. It never mutates the engine it
// observes; source is called from the broadcaster goroutine only, so
// the caller is responsible for ensuring it is safe to call source
// concurrently with whatever goroutine is stepping the engine.
type Telemetry struct {
	addr   string
	tick   time.Duration
	source func() engine.Snapshot

	upgrader websocket.Upgrader
	server   *http.Server

	mu      sync.Mutex
	running bool
	clients map[string]*websocket.Conn
	done    chan struct{}
}

// NewTelemetry creates a telemetry service that will broadcast frames
// produced by source, once every tick, once Start is called.
func NewTelemetry(addr string, tick time.Duration, source func() engine.Snapshot) *Telemetry {
	return &Telemetry{
		addr:     addr,
		tick:     tick,
		source:   source,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		clients:  map[string]*websocket.Conn{},
	}
}

// Start begins accepting WebSocket connections on Addr and broadcasting
// snapshots. It returns once the listener is up; serving and
// broadcasting continue in background goroutines until Stop is called.
func (t *Telemetry) Start() error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return fmt.Errorf("services: telemetry already running")
	}
	t.running = true
	t.done = make(chan struct{})
	t.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", t.handleWebSocket)
	t.server = &http.Server{Addr: t.addr, Handler: mux}

	ln, err := newListener(t.addr)
	if err != nil {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
		return fmt.Errorf("services: telemetry listen: %w", err)
	}

	log.WithField("addr", t.addr).Info("starting telemetry service")
	go func() {
		if err := t.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("telemetry server stopped unexpectedly")
		}
	}()
	go t.broadcastLoop()
	return nil
}

// Stop gracefully shuts down the telemetry service and disconnects all
// clients.
func (t *Telemetry) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	close(t.done)
	clients := t.clients
	t.clients = map[string]*websocket.Conn{}
	t.mu.Unlock()

	log.Info("stopping telemetry service")
	for id, conn := range clients {
		log.WithField("client_id", id).Debug("closing telemetry client")
		conn.Close()
	}
	if t.server != nil {
		t.server.Close()
	}
}

// IsRunning returns the current running state of the telemetry service.
func (t *Telemetry) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Telemetry) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("failed to upgrade telemetry connection")
		return
	}
	clientID := uuid.New().String()

	t.mu.Lock()
	t.clients[clientID] = conn
	t.mu.Unlock()

	log.WithField("client_id", clientID).Info("telemetry client connected")

	// Drain and discard any client-initiated traffic so the read side
	// of the connection doesn't back up; detect disconnects here.
	go func() {
		defer func() {
			t.mu.Lock()
			delete(t.clients, clientID)
			t.mu.Unlock()
			conn.Close()
			log.WithField("client_id", clientID).Info("telemetry client disconnected")
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (t *Telemetry) broadcastLoop() {
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.broadcastOnce()
		}
	}
}

func (t *Telemetry) broadcastOnce() {
	frame := frameFromSnapshot(t.source())
	payload, err := json.Marshal(frame)
	if err != nil {
		log.WithError(err).Error("failed to marshal telemetry frame")
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for id, conn := range t.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.WithError(err).WithField("client_id", id).Warn("failed to write telemetry frame")
		}
	}
}
