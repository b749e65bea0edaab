/*
Package live broadcasts platform events to connected clients over WebSocket.

This file defines the Subscriber, one active WebSocket connection on the feed.
It manages the connection lifecycle and the read/write pumps, including
heartbeat deadlines.
*/
package live

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"placerank/internal/pkg/logx"
)

const (
	// writeWait is the timeout for writing a frame to the connection.
	writeWait = 10 * time.Second

	// pongWait is the maximum time to wait for a Pong from the client.
	pongWait = 60 * time.Second

	// pingPeriod is how often the server sends a Ping. Must be under pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize caps inbound frames. The feed is one-directional, so
	// anything beyond a control frame is suspicious.
	maxMessageSize = 512
)

// Subscriber represents one live-feed WebSocket connection.
type Subscriber struct {
	hub  *Hub
	conn *websocket.Conn

	// send queues outbound event payloads for the write pump.
	send chan []byte

	logger zerolog.Logger
}

// NewSubscriber wraps an upgraded connection and returns it ready to pump.
func NewSubscriber(hub *Hub, conn *websocket.Conn) *Subscriber {
	return &Subscriber{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 64),
		logger: logx.Logger().With().
			Str("component", "LiveSubscriber").
			Str("remote_addr", conn.RemoteAddr().String()).
			Logger(),
	}
}

// Register attaches the subscriber to the hub's feed.
func (s *Subscriber) Register() {
	s.hub.register <- s
}

// ReadPump consumes inbound frames to service Pong handling and to detect
// disconnects. It unregisters the subscriber on exit.
func (s *Subscriber) ReadPump() {
	defer func() {
		s.hub.unregister <- s
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)

	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug().Err(err).Msg("Live feed connection closed unexpectedly")
			}
			return
		}
		// The feed is broadcast-only; client payloads are ignored.
	}
}

// WritePump forwards queued events to the connection and keeps the heartbeat
// alive. It closes the connection when the hub drops the subscriber.
func (s *Subscriber) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}

			if !ok {
				// Hub closed the channel.
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
