// Package sse relays streamed agent events to connected clients, keyed by
// conversation id.
package sse

import (
	"sync"

	"go.uber.org/zap"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/logger"
)

// Event is one unit pushed to a client stream.
type Event struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ClientStream is the channel pair backing one SSE connection.
type ClientStream struct {
	Events chan Event
	Done   chan struct{}
}

// Registry tracks at most one client stream per conversation.
type Registry struct {
	mu      sync.RWMutex
	streams map[string]*ClientStream
}

func NewRegistry() *Registry {
	return &Registry{streams: make(map[string]*ClientStream)}
}

// Register creates a stream for the conversation, replacing any previous
// one.
func (r *Registry) Register(conversationID string) *ClientStream {
	stream := &ClientStream{
		Events: make(chan Event, 100),
		Done:   make(chan struct{}, 1),
	}
	r.mu.Lock()
	r.streams[conversationID] = stream
	r.mu.Unlock()
	logger.Get().Debug("client stream registered", zap.String("conversation_id", conversationID))
	return stream
}

// Unregister drops the conversation's stream.
func (r *Registry) Unregister(conversationID string) {
	r.mu.Lock()
	delete(r.streams, conversationID)
	r.mu.Unlock()
	logger.Get().Debug("client stream closed", zap.String("conversation_id", conversationID))
}

// Publish pushes an event to the conversation's stream; events for
// conversations without a listener, or with a full buffer, are dropped.
func (r *Registry) Publish(conversationID string, event Event) {
	r.mu.RLock()
	stream, ok := r.streams[conversationID]
	r.mu.RUnlock()
	if !ok {
		logger.Get().Debug("no client stream for conversation",
			zap.String("conversation_id", conversationID))
		return
	}

	select {
	case stream.Events <- event:
	default:
		logger.Get().Warn("client stream buffer full, dropping event",
			zap.String("conversation_id", conversationID))
	}
}

// Finish signals end-of-stream to the conversation's listener.
func (r *Registry) Finish(conversationID string) {
	r.mu.RLock()
	stream, ok := r.streams[conversationID]
	r.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case stream.Done <- struct{}{}:
	default:
	}
}
