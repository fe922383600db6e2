package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rythmn1111/final-cam/infra"
	"github.com/rythmn1111/final-cam/ports"
)

// pingInterval keeps intermediaries from closing an otherwise idle stream.
const pingInterval = 25 * time.Second

type eventMessage struct {
	Type string `json:"type"`
	TS   int64  `json:"ts,omitempty"`
	Name string `json:"name,omitempty"`
}

type EventsController struct {
	log ports.Logger
	bus ports.EventBus
}

func NewEventsController(log ports.Logger, bus ports.EventBus) *EventsController {
	log = log.With(slog.String("entity", "EventsController"))
	c := &EventsController{
		log: log,
		bus: bus,
	}
	return c
}

// Get streams newline delimited JSON events until the client goes away.
// Each successful capture yields one "captured" message; files appearing
// in the photo directory from outside yield "updated". A "hello" opens
// the stream and periodic "ping" messages keep it alive.
func (c *EventsController) Get(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, ErrStreamingUnsupported)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	captured := c.bus.Sub(ports.TopicCaptured)
	defer c.bus.Unsub(captured)
	updated := c.bus.Sub(ports.TopicArtifactUpdated)
	defer c.bus.Unsub(updated)

	infra.EventSubscribers.Inc()
	defer infra.EventSubscribers.Dec()

	enc := json.NewEncoder(w)
	send := func(m eventMessage) bool {
		if err := enc.Encode(m); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send(eventMessage{Type: "hello", TS: time.Now().UnixMilli()}) {
		return
	}

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	log := c.log.With(slog.String("remote", r.RemoteAddr))
	log.Info("event stream open")
	defer log.Info("event stream closed")

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-captured:
			ts := time.Now().UnixMilli()
			if len(ev) > 0 {
				ts = parseMillis(ev[0], ts)
			}
			if !send(eventMessage{Type: "captured", TS: ts}) {
				return
			}
		case ev := <-updated:
			name := ""
			if len(ev) > 0 {
				name = ev[0]
			}
			if !send(eventMessage{Type: "updated", TS: time.Now().UnixMilli(), Name: name}) {
				return
			}
		case <-ticker.C:
			if !send(eventMessage{Type: "ping", TS: time.Now().UnixMilli()}) {
				return
			}
		}
	}
}
