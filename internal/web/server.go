// Package web exposes the instrument state over HTTP and a websocket feed so
// a remote page can follow the frequency readout.
package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Status is the instrument snapshot pushed to clients.
type Status struct {
	FrequencyHz  *float64 `json:"frequencyHz"`
	WindowMS     float64  `json:"windowMs"`
	YLimit       float64  `json:"yLimit"`
	TriggerOn    bool     `json:"triggerOn"`
	SampleRateHz float64  `json:"sampleRateHz"`
	Buffered     int      `json:"bufferedSamples"`
	Device       string   `json:"device,omitempty"`
}

// StatusSource provides the current instrument snapshot.
type StatusSource interface {
	ScopeStatus() Status
}

// Server broadcasts instrument status over /ws and serves it on /api/status.
type Server struct {
	mu        sync.RWMutex
	source    StatusSource
	log       *log.Logger
	clients   map[*websocketClient]bool
	broadcast chan []byte
	upgrader  websocket.Upgrader
}

type websocketClient struct {
	conn   *websocket.Conn
	send   chan []byte
	server *Server
}

// NewServer creates a Server reading snapshots from source.
func NewServer(source StatusSource, logger *log.Logger) *Server {
	return &Server{
		source:    source,
		log:       logger,
		clients:   make(map[*websocketClient]bool),
		broadcast: make(chan []byte, 256),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Start serves until the listener fails. Run it on its own goroutine.
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWebSocket)

	addr := fmt.Sprintf(":%d", port)
	s.log.Printf("status server on http://0.0.0.0%s", addr)

	go s.broadcastLoop()
	go s.statusUpdateLoop()

	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := s.source.ScopeStatus()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.log.Printf("encode status: %v", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := &websocketClient{
		conn:   conn,
		send:   make(chan []byte, 256),
		server: s,
	}

	s.mu.Lock()
	s.clients[client] = true
	s.mu.Unlock()

	go client.writePump()
	go client.readPump()
}

func (s *Server) broadcastLoop() {
	for message := range s.broadcast {
		s.mu.Lock()
		for client := range s.clients {
			select {
			case client.send <- message:
			default:
				close(client.send)
				delete(s.clients, client)
			}
		}
		s.mu.Unlock()
	}
}

func (s *Server) statusUpdateLoop() {
	// Matches the estimator hop so clients never miss a reading.
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		data, err := json.Marshal(s.source.ScopeStatus())
		if err != nil {
			continue
		}
		select {
		case s.broadcast <- data:
		default:
			// drop if the channel is full
		}
	}
}

func (c *websocketClient) readPump() {
	defer func() {
		c.server.mu.Lock()
		delete(c.server.clients, c)
		c.server.mu.Unlock()
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *websocketClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
