package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/geoweather/internal/location"
	"github.com/i474232898/geoweather/internal/view"
)

var (
	// ErrNoLastLocation is returned before any manual query has succeeded.
	ErrNoLastLocation = errors.New("no previous location")
	// ErrPendingNotFound is returned when a disambiguation token is unknown
	// or has expired.
	ErrPendingNotFound = errors.New("no pending disambiguation for token")
)

type pendingEntry struct {
	candidates []location.Candidate
	created    time.Time
}

// Session is the concurrency-safe per-process session state: the last
// successfully resolved manual query, its most recent view model, and the
// candidate sets of disambiguation requests awaiting a follow-up selection.
type Session struct {
	mu sync.RWMutex

	lastLocation string
	lastModel    *view.Model

	pending map[string]pendingEntry
	ttl     time.Duration // max age of a pending candidate set (0 = unlimited)
}

// NewSession creates a Session. Pending disambiguations older than ttl are
// pruned on the next write.
func NewSession(ttl time.Duration) *Session {
	return &Session{
		pending: make(map[string]pendingEntry),
		ttl:     ttl,
	}
}

// SaveLast overwrites the last-location value and its cached view model.
// Called only after a successful manually-resolved query.
func (s *Session) SaveLast(query string, model *view.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLocation = query
	s.lastModel = model
}

// RefreshLastModel replaces only the cached model, keeping the query string.
func (s *Session) RefreshLastModel(model *view.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastModel = model
}

// LastLocation returns the last successfully resolved manual query.
func (s *Session) LastLocation() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastLocation == "" {
		return "", ErrNoLastLocation
	}
	return s.lastLocation, nil
}

// LastModel returns the most recent view model for the last location.
func (s *Session) LastModel() (*view.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastModel == nil {
		return nil, ErrNoLastLocation
	}
	return s.lastModel, nil
}

// SavePending stores a candidate set awaiting user selection and returns the
// token identifying it.
func (s *Session) SavePending(candidates []location.Candidate) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	s.pending[token] = pendingEntry{
		candidates: candidates,
		created:    time.Now(),
	}
	return token
}

// TakePending removes and returns the candidate set for a token.
func (s *Session) TakePending(token string) ([]location.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	entry, ok := s.pending[token]
	if !ok {
		return nil, ErrPendingNotFound
	}
	delete(s.pending, token)
	return entry.candidates, nil
}

func (s *Session) pruneLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl)
	for token, entry := range s.pending {
		if entry.created.Before(cutoff) {
			delete(s.pending, token)
		}
	}
}
