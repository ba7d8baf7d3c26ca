// internal/server/handlers/websocket.go

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// EventSource delivers published events until the returned cancel func runs
type EventSource interface {
	Subscribe(handler func(subject string, data []byte)) (func() error, error)
}

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64

	// Outgoing messages buffered per client before new ones are dropped
	SendBuffer int
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 4 * 1024,
		SendBuffer:     256,
	}
}

// StreamMessage is the frame written to feed clients
type StreamMessage struct {
	Type    string          `json:"type"`
	Subject string          `json:"subject,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Time    time.Time       `json:"time"`
}

// EventStreamHandler streams published events to WebSocket clients
type EventStreamHandler struct {
	source   EventSource
	upgrader websocket.Upgrader
	config   WebSocketConfig
	logger   *slog.Logger
}

// NewEventStreamHandler creates a live event feed. Browsers are accepted only
// from allowedOrigins; a "*" entry accepts any origin.
func NewEventStreamHandler(source EventSource, allowedOrigins []string, logger *slog.Logger) *EventStreamHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventStreamHandler{
		source: source,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		config: DefaultWebSocketConfig(),
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
	}
}

// Stream upgrades the request and forwards every event until the client leaves
func (h *EventStreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	client := &streamClient{
		conn:   conn,
		send:   make(chan []byte, h.config.SendBuffer),
		done:   make(chan struct{}),
		config: h.config,
		logger: h.logger,
	}

	cancel, err := h.source.Subscribe(func(subject string, data []byte) {
		client.enqueue(StreamMessage{Type: "event", Subject: subject, Data: data, Time: time.Now()})
	})
	if err != nil {
		h.logger.Error("failed to subscribe websocket client", "error", err)
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "event feed unavailable"),
			time.Now().Add(h.config.WriteWait),
		)
		conn.Close()
		return
	}
	client.unsubscribe = cancel

	client.enqueue(StreamMessage{Type: "welcome", Time: time.Now()})

	go client.writePump()
	go client.readPump()

	h.logger.Info("websocket client connected", "remote", r.RemoteAddr)
}

type streamClient struct {
	conn        *websocket.Conn
	send        chan []byte
	done        chan struct{}
	once        sync.Once
	unsubscribe func() error
	config      WebSocketConfig
	logger      *slog.Logger
}

// enqueue never blocks the subscription callback; slow clients lose events
func (c *streamClient) enqueue(msg StreamMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		c.logger.Warn("failed to encode stream message", "subject", msg.Subject, "error", err)
		return
	}

	select {
	case <-c.done:
	case c.send <- payload:
	default:
		c.logger.Warn("websocket client too slow, dropping event", "subject", msg.Subject)
	}
}

// readPump only drains control frames; the feed is one-way
func (c *streamClient) readPump() {
	defer c.close()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			return
		}
	}
}

func (c *streamClient) writePump() {
	ticker := time.NewTicker(c.config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close is safe to call from both pumps
func (c *streamClient) close() {
	c.once.Do(func() {
		if c.unsubscribe != nil {
			if err := c.unsubscribe(); err != nil {
				c.logger.Debug("failed to unsubscribe websocket client", "error", err)
			}
		}
		close(c.done)
		c.conn.Close()
		c.logger.Info("websocket client disconnected")
	})
}
