/*
Package livefeed subscribes the terminal client to the service's live event
stream, so place listings refresh while the user is looking at them.
*/
package livefeed

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"placerank/internal/app/live"
	"placerank/internal/pkg/logx"
)

const dialTimeout = 10 * time.Second

// Listener is one live feed subscription. Events arrive on Events until the
// connection ends, after which the channel closes.
type Listener struct {
	conn   *websocket.Conn
	events chan live.Event
}

// Dial connects to the live feed endpoint (ws:// or wss:// URL) and starts
// reading events.
func Dial(ctx context.Context, feedURL string) (*Listener, error) {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, resp, err := dialer.DialContext(ctx, feedURL, http.Header{})
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	l := &Listener{
		conn:   conn,
		events: make(chan live.Event, 16),
	}
	go l.readLoop()
	return l, nil
}

// Events returns the stream of feed events. The channel closes when the
// connection ends.
func (l *Listener) Events() <-chan live.Event {
	return l.events
}

// Close tears the subscription down. Safe to call while readLoop runs.
func (l *Listener) Close() error {
	return l.conn.Close()
}

func (l *Listener) readLoop() {
	defer close(l.events)
	for {
		var event live.Event
		if err := l.conn.ReadJSON(&event); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logx.Debug("Live feed read ended", "error", err)
			}
			return
		}
		l.events <- event
	}
}
