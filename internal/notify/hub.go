package notify

import (
	"fmt"
	"sync"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// Notice is a user-facing, non-blocking notification. Warnings cover
// recoverable read failures; errors are reserved for failed writes.
type Notice struct {
	Level   Level
	Message string
}

type Hub struct {
	mu      sync.Mutex
	clients map[chan Notice]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan Notice]struct{})}
}

func (h *Hub) Subscribe() chan Notice {
	ch := make(chan Notice, 10)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Notice) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *Hub) Publish(n Notice) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- n:
		default:
			// drop if slow
		}
	}
}

func (h *Hub) Infof(format string, args ...any) {
	h.Publish(Notice{Level: LevelInfo, Message: fmt.Sprintf(format, args...)})
}

func (h *Hub) Successf(format string, args ...any) {
	h.Publish(Notice{Level: LevelSuccess, Message: fmt.Sprintf(format, args...)})
}

func (h *Hub) Warnf(format string, args ...any) {
	h.Publish(Notice{Level: LevelWarning, Message: fmt.Sprintf(format, args...)})
}

func (h *Hub) Errorf(format string, args ...any) {
	h.Publish(Notice{Level: LevelError, Message: fmt.Sprintf(format, args...)})
}
