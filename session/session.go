// Package session implements the passcode gate and the process-wide session
// context. The gate is a demo gate: a verbatim string comparison plus a
// persisted flag, with no security guarantee implied. Authentication state
// is defined entirely by two storage keys; external clearing of those keys
// is detected by a polling watcher and forces a logout.
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/logger"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/models"
)

// Storage keys. The flag must be the literal string "true" for the session
// to count as authenticated.
const (
	UserKey = "legislative_user"
	AuthKey = "legislative_auth"
)

// Event notifies subscribers of session transitions.
type Event string

const (
	EventLoggedIn  Event = "logged_in"
	EventLoggedOut Event = "logged_out"
)

var (
	ErrBadPasscode  = errors.New("invalid passcode")
	ErrInvalidToken = errors.New("invalid session token")
)

const tokenLifetime = 24 * time.Hour

// Manager is the explicit session context: init reads the persisted flags
// once, logout clears them and notifies subscribers.
type Manager struct {
	mu            sync.Mutex
	storage       Storage
	passcode      string
	secret        []byte
	user          *models.User
	authenticated bool
	subscribers   []chan Event
	done          chan struct{}
	closeOnce     sync.Once
}

// NewManager builds the session context and performs the one-time read of
// the persisted state.
func NewManager(storage Storage, passcode, secret string) *Manager {
	m := &Manager{
		storage:  storage,
		passcode: passcode,
		secret:   []byte(secret),
		done:     make(chan struct{}),
	}
	m.restore()
	return m
}

func (m *Manager) restore() {
	userRaw, hasUser := m.storage.Get(UserKey)
	flag, hasFlag := m.storage.Get(AuthKey)

	if !hasUser || !hasFlag || flag != "true" {
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		logger.Get().Warn("discarding unreadable session user blob", zap.Error(err))
		m.storage.Delete(UserKey)
		m.storage.Delete(AuthKey)
		return
	}

	m.user = &user
	m.authenticated = true
	logger.Get().Info("session restored", zap.String("user", user.Name))
}

// Login checks the passcode and establishes the session, replacing any
// existing one. On success it returns a signed session token.
func (m *Manager) Login(name, passcode string) (string, error) {
	if passcode != m.passcode {
		return "", ErrBadPasscode
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Clear any existing auth state first.
	m.storage.Delete(UserKey)
	m.storage.Delete(AuthKey)

	user := models.User{
		Name:      name,
		Type:      "demo",
		LoginTime: time.Now().Format(time.RFC3339),
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode session user")
	}
	if err := m.storage.Set(UserKey, string(raw)); err != nil {
		return "", errors.Wrap(err, "failed to persist session user")
	}
	if err := m.storage.Set(AuthKey, "true"); err != nil {
		return "", errors.Wrap(err, "failed to persist session flag")
	}

	m.user = &user
	m.authenticated = true
	m.notifyLocked(EventLoggedIn)

	token, err := m.issueToken(user)
	if err != nil {
		return "", err
	}
	logger.Get().Info("session established", zap.String("user", name))
	return token, nil
}

// Logout clears the session state and notifies subscribers.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

func (m *Manager) resetLocked() {
	m.storage.Delete(UserKey)
	m.storage.Delete(AuthKey)
	if m.authenticated {
		m.user = nil
		m.authenticated = false
		m.notifyLocked(EventLoggedOut)
		logger.Get().Info("session cleared")
	}
}

// Authenticated reports whether a session is established.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// User returns the session user, or nil.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Subscribe returns a channel receiving session events. The channel is
// buffered; slow subscribers drop events rather than blocking mutations.
func (m *Manager) Subscribe() <-chan Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan Event, 4)
	m.subscribers = append(m.subscribers, ch)
	return ch
}

func (m *Manager) notifyLocked(e Event) {
	for _, ch := range m.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}

// Recheck re-reads the persisted keys and forces a logout if they were
// cleared or changed externally.
func (m *Manager) Recheck() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.authenticated {
		return
	}
	_, hasUser := m.storage.Get(UserKey)
	flag, hasFlag := m.storage.Get(AuthKey)
	if !hasUser || !hasFlag || flag != "true" {
		logger.Get().Info("session storage cleared externally, forcing logout")
		m.resetLocked()
	}
}

// Watch polls the persisted keys at interval as the fallback change
// detector. It runs until Close.
func (m *Manager) Watch(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Recheck()
			case <-m.done:
				return
			}
		}
	}()
}

// Close stops the watcher.
func (m *Manager) Close() {
	m.closeOnce.Do(func() { close(m.done) })
}

func (m *Manager) issueToken(user models.User) (string, error) {
	now := time.Now()
	claims := models.SessionClaims{
		Name:     user.Name,
		UserType: user.Type,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}
	return signed, nil
}

// VerifyToken parses and validates a session token.
func (m *Manager) VerifyToken(tokenString string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
