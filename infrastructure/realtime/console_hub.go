package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"trucking-news/domain/model"

	"github.com/gin-gonic/gin"
)

// ConsoleEvent is an SSE payload describing one fetch/post/renew action.
type ConsoleEvent struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	PostID    *int64    `json:"post_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub fans activity events out to every connected dashboard console.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan ConsoleEvent]struct{}
}

func NewConsoleHub() *Hub {
	return &Hub{subs: make(map[chan ConsoleEvent]struct{})}
}

// Serve registers an SSE stream for the authenticated operator (user_id set
// by the auth middleware).
func (h *Hub) Serve(c *gin.Context) {
	if c.GetString("user_id") == "" {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	ch := make(chan ConsoleEvent, 16)
	h.addSubscriber(ch)
	defer h.removeSubscriber(ch)

	// Initial comment to keep connection open
	c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	for {
		select {
		case evt := <-ch:
			data, _ := json.Marshal(evt)
			_, _ = c.Writer.Write([]byte("event: console\n"))
			_, _ = c.Writer.Write([]byte("data: "))
			_, _ = c.Writer.Write(data)
			_, _ = c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *Hub) addSubscriber(ch chan ConsoleEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[ch] = struct{}{}
}

func (h *Hub) removeSubscriber(ch chan ConsoleEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

// Broadcast pushes a posting-log entry to every console subscriber.
func (h *Hub) Broadcast(log *model.PostingLog) {
	if log == nil {
		return
	}
	evt := ConsoleEvent{
		Type:      log.Action,
		PostID:    log.PostID,
		Timestamp: log.Timestamp,
	}
	if log.Message != nil {
		evt.Message = *log.Message
	}
	h.mu.RLock()
	for ch := range h.subs {
		select { // non-blocking
		case ch <- evt:
		default:
		}
	}
	h.mu.RUnlock()
}
