// Package store holds the in-process conversation collection. Conversations
// live in memory only; every mutation rebuilds the collection as a whole
// under one lock rather than editing entries in place.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/logger"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/models"
)

var (
	ErrNotFound     = errors.New("conversation not found")
	ErrBlankTitle   = errors.New("title must not be blank")
	ErrTurnInFlight = errors.New("a turn is already in flight for this conversation")
)

const (
	previewLimit = 80
	titleLimit   = 30
	renameLimit  = 50

	newConversationPreview = "Start a new analysis..."
)

// Store is the ordered conversation collection. Exactly one conversation is
// active whenever the collection is non-empty, and the collection is never
// left empty.
type Store struct {
	mu    sync.Mutex
	items []models.Conversation
	now   func() time.Time
}

// New returns a store seeded with one fresh active conversation.
func New() *Store {
	s := &Store{now: time.Now}
	s.items = []models.Conversation{s.fresh()}
	return s
}

func (s *Store) fresh() models.Conversation {
	return models.Conversation{
		ID:       uuid.NewString(),
		Title:    models.DefaultTitle,
		Preview:  newConversationPreview,
		Date:     s.displayTime(),
		IsActive: true,
		Messages: []models.Message{},
	}
}

func (s *Store) displayTime() string {
	return s.now().Format("1/2/2006, 3:04:05 PM")
}

// List returns a copy of the collection in order.
func (s *Store) List() []models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []models.Conversation {
	out := make([]models.Conversation, len(s.items))
	copy(out, s.items)
	for i := range out {
		msgs := make([]models.Message, len(out[i].Messages))
		copy(msgs, out[i].Messages)
		out[i].Messages = msgs
	}
	return out
}

// Get fetches a conversation by id.
func (s *Store) Get(id string) (models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conv := range s.items {
		if conv.ID == id {
			msgs := make([]models.Message, len(conv.Messages))
			copy(msgs, conv.Messages)
			conv.Messages = msgs
			return conv, nil
		}
	}
	return models.Conversation{}, ErrNotFound
}

// Active returns the active conversation.
func (s *Store) Active() (models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conv := range s.items {
		if conv.IsActive {
			return conv, nil
		}
	}
	return models.Conversation{}, ErrNotFound
}

// Select marks id active and clears the flag on every other conversation.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.existsLocked(id) {
		return ErrNotFound
	}

	next := make([]models.Conversation, len(s.items))
	for i, conv := range s.items {
		conv.IsActive = conv.ID == id
		next[i] = conv
	}
	s.items = next
	return nil
}

// Create inserts a fresh conversation at the front of the collection, marks
// it active and deactivates all others.
func (s *Store) Create() models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.fresh()
	next := make([]models.Conversation, 0, len(s.items)+1)
	next = append(next, conv)
	for _, existing := range s.items {
		existing.IsActive = false
		next = append(next, existing)
	}
	s.items = next

	logger.Get().Info("conversation created", zap.String("conversation_id", conv.ID))
	return conv
}

// Rename replaces the title. Blank or whitespace-only titles are rejected;
// long titles are capped so they cannot break the list rendering.
func (s *Store) Rename(id, title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrBlankTitle
	}
	if runes := []rune(trimmed); len(runes) > renameLimit {
		trimmed = string(runes[:renameLimit])
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.existsLocked(id) {
		return ErrNotFound
	}

	next := make([]models.Conversation, len(s.items))
	for i, conv := range s.items {
		if conv.ID == id {
			conv.Title = trimmed
		}
		next[i] = conv
	}
	s.items = next
	return nil
}

// Delete removes the conversation. Deleting the active one activates the
// first remaining entry; deleting the last one synthesizes a fresh active
// conversation. A second delete of the same id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasActive := false
	next := make([]models.Conversation, 0, len(s.items))
	for _, conv := range s.items {
		if conv.ID == id {
			wasActive = conv.IsActive
			continue
		}
		next = append(next, conv)
	}

	if len(next) == len(s.items) {
		return
	}

	if len(next) == 0 {
		s.items = []models.Conversation{s.fresh()}
		return
	}

	if wasActive {
		for i := range next {
			next[i].IsActive = i == 0
		}
	}
	s.items = next
}

// AppendUserMessage appends a user message, refreshes preview and date, and
// derives a title from the first message while the title is still the
// placeholder.
func (s *Store) AppendUserMessage(id, text string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := models.Message{
		ID:        uuid.NewString(),
		Type:      models.UserMessage,
		Content:   text,
		Timestamp: s.now(),
	}

	found := false
	next := make([]models.Conversation, len(s.items))
	for i, conv := range s.items {
		if conv.ID == id {
			found = true
			conv.Messages = append(append([]models.Message{}, conv.Messages...), msg)
			conv.Preview = truncate(text, previewLimit)
			conv.Date = s.displayTime()
			if conv.Title == models.DefaultTitle {
				conv.Title = truncate(text, titleLimit)
			}
		}
		next[i] = conv
	}
	if !found {
		return models.Message{}, ErrNotFound
	}
	s.items = next
	return msg, nil
}

// AppendAssistantMessage appends an assistant message carrying an optional
// render directive.
func (s *Store) AppendAssistantMessage(id, content string, directive models.Directive) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := models.Message{
		ID:        uuid.NewString(),
		Type:      models.AssistantMessage,
		Content:   content,
		Timestamp: s.now(),
		Directive: directive,
	}

	found := false
	next := make([]models.Conversation, len(s.items))
	for i, conv := range s.items {
		if conv.ID == id {
			found = true
			conv.Messages = append(append([]models.Message{}, conv.Messages...), msg)
			conv.Date = s.displayTime()
		}
		next[i] = conv
	}
	if !found {
		return models.Message{}, ErrNotFound
	}
	s.items = next
	return msg, nil
}

// SetPreview overrides the cached preview text (the address follow-up uses
// its own preview format).
func (s *Store) SetPreview(id, preview string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Conversation, len(s.items))
	for i, conv := range s.items {
		if conv.ID == id {
			conv.Preview = truncate(preview, previewLimit)
		}
		next[i] = conv
	}
	s.items = next
}

// BeginTurn moves the conversation into the sending state. The loading flag
// is scoped per conversation: a second send into the same conversation is
// rejected while turns in other conversations may proceed.
func (s *Store) BeginTurn(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	next := make([]models.Conversation, len(s.items))
	for i, conv := range s.items {
		if conv.ID == id {
			if conv.Loading {
				return ErrTurnInFlight
			}
			found = true
			conv.Loading = true
		}
		next[i] = conv
	}
	if !found {
		return ErrNotFound
	}
	s.items = next
	return nil
}

// EndTurn clears the loading flag regardless of how the turn resolved.
func (s *Store) EndTurn(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Conversation, len(s.items))
	for i, conv := range s.items {
		if conv.ID == id {
			conv.Loading = false
		}
		next[i] = conv
	}
	s.items = next
}

func (s *Store) existsLocked(id string) bool {
	for _, conv := range s.items {
		if conv.ID == id {
			return true
		}
	}
	return false
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
