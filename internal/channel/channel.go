package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Config holds configuration for the real-time channel connection.
type Config struct {
	URL             string
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	SendBufferSize  int
	EventBufferSize int
	Header          http.Header
}

// DefaultConfig returns default channel configuration.
func DefaultConfig() Config {
	return Config{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  64 * 1024,
		SendBufferSize:  256,
		EventBufferSize: 256,
	}
}

// Channel is a client connection to the backend's real-time event channel.
// Inbound events are delivered on Events(); the channel is closed when the
// connection ends. A degraded connection is not an error condition for the
// caller: events simply stop arriving.
type Channel struct {
	id     string
	conn   *websocket.Conn
	config Config

	send   chan []byte
	events chan Event

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to the channel endpoint, identifying the session with the
// auctionId and userEmail query parameters.
func Dial(ctx context.Context, config Config, auctionID, userEmail string) (*Channel, error) {
	u, err := url.Parse(config.URL)
	if err != nil {
		return nil, fmt.Errorf("parse channel URL: %w", err)
	}
	q := u.Query()
	q.Set("auctionId", auctionID)
	q.Set("userEmail", userEmail)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), config.Header)
	if err != nil {
		return nil, fmt.Errorf("dial channel: %w", err)
	}

	ch := &Channel{
		id:     uuid.New().String(),
		conn:   conn,
		config: config,
		send:   make(chan []byte, config.SendBufferSize),
		events: make(chan Event, config.EventBufferSize),
		done:   make(chan struct{}),
	}

	go ch.writePump()
	go ch.readPump()

	log.Info().
		Str("connection_id", ch.id).
		Str("auction_id", auctionID).
		Str("user_email", userEmail).
		Msg("channel connected")

	return ch, nil
}

// Events returns the stream of inbound events. The channel is closed once
// the connection is gone.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// Emit sends an event to the backend. It fails fast when the connection is
// closed or the send buffer is full.
func (c *Channel) Emit(eventType EventType, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	message, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", eventType, err)
	}

	select {
	case <-c.done:
		return fmt.Errorf("channel closed")
	case c.send <- message:
		return nil
	default:
		log.Warn().
			Str("connection_id", c.id).
			Str("event_type", string(eventType)).
			Msg("send buffer full, dropping event")
		return fmt.Errorf("send buffer full")
	}
}

// Close shuts the connection down. Safe to call more than once.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
		log.Info().Str("connection_id", c.id).Msg("channel closed")
	})
	return nil
}

func (c *Channel) writePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.id).
					Msg("failed to write message to channel")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.id).
					Msg("failed to send ping")
				return
			}
		}
	}
}

func (c *Channel) readPump() {
	defer func() {
		c.Close()
		close(c.events)
	}()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.id).
					Msg("unexpected channel close")
			}
			return
		}

		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			log.Warn().
				Err(err).
				Str("connection_id", c.id).
				Msg("dropping malformed channel message")
			continue
		}

		select {
		case c.events <- event:
		default:
			log.Warn().
				Str("connection_id", c.id).
				Str("event_type", string(event.Type)).
				Msg("event buffer full, dropping event")
		}
		c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	}
}
