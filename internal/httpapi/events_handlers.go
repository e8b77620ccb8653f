package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/emreugurluhr/hrs/internal/events"
)

// keepaliveInterval is short enough that the desktop webview's idle
// timeout never fires between candidate edits.
const keepaliveInterval = 30 * time.Second

type EventsHandler struct {
	Hub *events.Hub
}

// ServeSSE streams change notifications to the UI. One message per
// mutation, plus periodic heartbeats so idle streams stay open.
func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "streaming unsupported")
		return
	}

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	reqID := RequestIDFrom(r.Context())
	writeSSE(w, events.Heartbeat(reqID))
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			writeSSE(w, events.Heartbeat(reqID))
			flusher.Flush()
		case msg := <-ch:
			writeSSE(w, msg)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, payload string) {
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", payload)
}
