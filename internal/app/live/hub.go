/*
Package live broadcasts platform events to connected clients over WebSocket.

This file defines the Hub, which owns the set of active subscriber connections
and fans published events out to all of them. The Explore page subscribes so
newly created places, ratings, and comments appear without a manual refresh.
*/
package live

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"placerank/internal/app/place"
	"placerank/internal/pkg/logx"
)

// Event types carried on the live feed.
const (
	EventPlaceCreated = "place_created"
	EventPlaceDeleted = "place_deleted"
	EventRatingAdded  = "rating_added"
	EventCommentAdded = "comment_added"
)

// Event is the JSON record broadcast to every subscriber.
type Event struct {
	Type  string       `json:"type"`
	Place *place.Place `json:"place,omitempty"`

	// PlaceID is set for deletions, where there is no place body to send.
	PlaceID string `json:"placeId,omitempty"`
}

// Hub coordinates all active live-feed subscribers. Register, unregister, and
// broadcast all flow through channels serviced by a single Run loop, so the
// subscriber set needs no locking of its own.
type Hub struct {
	subscribers map[*Subscriber]struct{}

	register   chan *Subscriber
	unregister chan *Subscriber
	events     chan Event

	// done signals Run to drain and exit.
	done chan struct{}

	// wg waits for the Run loop during shutdown.
	wg sync.WaitGroup

	logger zerolog.Logger
}

// NewHub constructs a Hub and starts its Run loop.
func NewHub() *Hub {
	h := &Hub{
		subscribers: make(map[*Subscriber]struct{}),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		events:      make(chan Event, 64),
		done:        make(chan struct{}),
		logger:      logx.Logger().With().Str("component", "LiveHub").Logger(),
	}

	h.wg.Add(1)
	go h.run()

	return h
}

// run services registration and broadcast until Shutdown is called.
func (h *Hub) run() {
	defer h.wg.Done()

	h.logger.Info().Msg("Live hub started.")

	for {
		select {
		case sub := <-h.register:
			h.subscribers[sub] = struct{}{}
			h.logger.Debug().Int("subscribers", len(h.subscribers)).Msg("Subscriber registered.")

		case sub := <-h.unregister:
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.send)
			}

		case event := <-h.events:
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error().Err(err).Str("event_type", event.Type).Msg("Failed to encode live event.")
				continue
			}

			for sub := range h.subscribers {
				select {
				case sub.send <- payload:
				default:
					// Slow consumer: drop it rather than block the feed.
					delete(h.subscribers, sub)
					close(sub.send)
				}
			}

		case <-h.done:
			for sub := range h.subscribers {
				delete(h.subscribers, sub)
				close(sub.send)
			}
			h.logger.Info().Msg("Live hub stopped.")
			return
		}
	}
}

// Publish queues an event for broadcast. It never blocks the caller; if the
// feed is saturated the event is dropped and logged.
func (h *Hub) Publish(event Event) {
	select {
	case h.events <- event:
	default:
		h.logger.Warn().Str("event_type", event.Type).Msg("Live event dropped: feed saturated.")
	}
}

// Shutdown stops the Run loop and disconnects all subscribers.
func (h *Hub) Shutdown() {
	close(h.done)
	h.wg.Wait()
}
