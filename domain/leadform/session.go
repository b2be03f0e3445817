package leadform

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

const sessionKeyPrefix = "leadform:wizard:"

// SessionStore keeps one Wizard per visitor between requests.
type SessionStore interface {
	// Load returns ErrSessionNotFound for unknown or expired ids.
	Load(ctx context.Context, id string) (*Wizard, error)
	Save(ctx context.Context, id string, wizard *Wizard) error
	Delete(ctx context.Context, id string) error
}

// Cache is the subset of the application cache used for sessions.
type Cache interface {
	// Get returns ("", nil) when a key is not found.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type cacheSessionStore struct {
	cache Cache
	ttl   time.Duration
}

func NewCacheSessionStore(cache Cache, ttl time.Duration) SessionStore {
	return &cacheSessionStore{cache: cache, ttl: ttl}
}

func (s *cacheSessionStore) Load(ctx context.Context, id string) (*Wizard, error) {
	raw, err := s.cache.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("load wizard session: %w", err)
	}
	if raw == "" {
		return nil, ErrSessionNotFound
	}

	wizard := &Wizard{}
	if err := json.Unmarshal([]byte(raw), wizard); err != nil {
		return nil, err
	}

	return wizard, nil
}

func (s *cacheSessionStore) Save(ctx context.Context, id string, wizard *Wizard) error {
	data, err := json.Marshal(wizard)
	if err != nil {
		return fmt.Errorf("encode wizard session: %w", err)
	}

	if err := s.cache.Set(ctx, sessionKeyPrefix+id, string(data), s.ttl); err != nil {
		return fmt.Errorf("save wizard session: %w", err)
	}

	return nil
}

func (s *cacheSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, sessionKeyPrefix+id); err != nil {
		return fmt.Errorf("delete wizard session: %w", err)
	}
	return nil
}

type memorySession struct {
	data      []byte
	expiresAt time.Time
}

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStore keeps sessions in process memory. Expired sessions
// are dropped lazily on access and on every save.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return newMemorySessionStore(ttl, time.Now)
}

func newMemorySessionStore(ttl time.Duration, now func() time.Time) *memorySessionStore {
	return &memorySessionStore{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      now,
	}
}

func (s *memorySessionStore) Load(_ context.Context, id string) (*Wizard, error) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok && s.expired(session) {
		delete(s.sessions, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	wizard := &Wizard{}
	if err := json.Unmarshal(session.data, wizard); err != nil {
		return nil, err
	}

	return wizard, nil
}

func (s *memorySessionStore) Save(_ context.Context, id string, wizard *Wizard) error {
	data, err := json.Marshal(wizard)
	if err != nil {
		return fmt.Errorf("encode wizard session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, key)
		}
	}

	session := memorySession{data: data}
	if s.ttl > 0 {
		session.expiresAt = s.now().Add(s.ttl)
	}
	s.sessions[id] = session

	return nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *memorySessionStore) expired(session memorySession) bool {
	return !session.expiresAt.IsZero() && !s.now().Before(session.expiresAt)
}
