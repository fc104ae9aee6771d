// Package session wraps Fiber's session middleware with a typed view of the
// lobby's per-client state: the authenticated identity (if any) and the
// ordered guest score buffer.
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/config"
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	keyUserID      = "user_id"
	keyUsername    = "username"
	keyGuestScores = "guest_scores"
)

// GuestScore is one unauthenticated submission. It lives only in the session
// until it is migrated into score_history or the session expires.
// SubmittedAt is recorded at buffer-insert time and survives migration as the
// entry's played_at.
type GuestScore struct {
	GameName    string    `json:"game_name"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Manager struct {
	store *fibersession.Store
}

func NewManager(cfg *config.Config) *Manager {
	store := fibersession.New(fibersession.Config{
		Expiration:     cfg.SessionExpiry,
		KeyLookup:      "cookie:" + cfg.SessionCookie,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	return &Manager{store: store}
}

func (m *Manager) Get(c *fiber.Ctx) (*Session, error) {
	inner, err := m.store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &Session{inner: inner}, nil
}

type Session struct {
	inner *fibersession.Session
}

// UserID returns the authenticated user id, if the session has one.
func (s *Session) UserID() (uuid.UUID, bool) {
	raw, ok := s.inner.Get(keyUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (s *Session) Username() string {
	name, _ := s.inner.Get(keyUsername).(string)
	return name
}

func (s *Session) SetUser(id uuid.UUID, username string) {
	s.inner.Set(keyUserID, id.String())
	s.inner.Set(keyUsername, username)
}

// GuestScores returns the buffered guest scores in insertion order.
func (s *Session) GuestScores() []GuestScore {
	raw, ok := s.inner.Get(keyGuestScores).([]byte)
	if !ok || len(raw) == 0 {
		return nil
	}
	var scores []GuestScore
	if err := json.Unmarshal(raw, &scores); err != nil {
		return nil
	}
	return scores
}

// AppendGuestScore adds a score to the end of the buffer and returns the new
// buffer length. The buffer is unbounded; it is dropped wholesale when the
// session expires or is destroyed.
func (s *Session) AppendGuestScore(gs GuestScore) (int, error) {
	scores := append(s.GuestScores(), gs)
	raw, err := json.Marshal(scores)
	if err != nil {
		return 0, fmt.Errorf("failed to encode guest scores: %w", err)
	}
	s.inner.Set(keyGuestScores, raw)
	return len(scores), nil
}

func (s *Session) ClearGuestScores() {
	s.inner.Delete(keyGuestScores)
}

// Destroy wipes the whole session, identity and guest buffer included.
func (s *Session) Destroy() error {
	return s.inner.Destroy()
}

func (s *Session) Save() error {
	return s.inner.Save()
}
