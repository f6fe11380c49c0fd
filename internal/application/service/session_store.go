package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/injapanfood/pos-api/internal/domain/entity"
)

// Session is one open POS cart. Its mutex serializes every cart mutation,
// including checkout, so the cart cannot change while it is being stored.
type Session struct {
	ID        string
	Cashier   entity.Cashier
	CreatedAt time.Time

	mu       sync.Mutex
	cart     *entity.Cart
	lastSeen time.Time
}

// SessionSnapshot is a point-in-time copy of a session's cart.
type SessionSnapshot struct {
	ID        string            `json:"id"`
	CashierID string            `json:"cashier_id"`
	Items     []entity.CartLine `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     int64             `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
}

// Do runs fn with exclusive access to the session's cart.
func (s *Session) Do(fn func(cart *entity.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.cart)
}

// Snapshot copies the cart under the session lock.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() SessionSnapshot {
	lines := s.cart.Lines()
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return SessionSnapshot{
		ID:        s.ID,
		CashierID: s.Cashier.ID,
		Items:     lines,
		ItemCount: count,
		Total:     s.cart.Total(),
		CreatedAt: s.CreatedAt,
	}
}

// SessionStore keeps open POS sessions in memory and evicts idle ones.
type SessionStore struct {
	sessions    map[string]*Session
	mu          sync.RWMutex
	ttl         time.Duration
	cleanupTick time.Duration
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewSessionStore creates a session store whose sessions expire after ttl without use.
// A background loop evicts them until Stop is called.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	tick := ttl / 2
	if tick > 5*time.Minute {
		tick = 5 * time.Minute
	}
	st := &SessionStore{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		cleanupTick: tick,
		now:         time.Now,
		stop:        make(chan struct{}),
	}

	go st.cleanupLoop()

	return st
}

// Open starts an empty cart for cashier.
func (st *SessionStore) Open(cashier entity.Cashier) *Session {
	now := st.now()
	sess := &Session{
		ID:        uuid.New().String(),
		Cashier:   cashier,
		CreatedAt: now,
		cart:      entity.NewCart(),
		lastSeen:  now,
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	return sess
}

// Get returns the session and marks it as used.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}

	st.mu.Lock()
	sess.lastSeen = st.now()
	st.mu.Unlock()

	return sess, true
}

// Close removes a session. It reports whether the session existed.
func (st *SessionStore) Close(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Len returns the number of open sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Stop ends the cleanup loop. Open sessions are kept.
func (st *SessionStore) Stop() {
	st.stopOnce.Do(func() { close(st.stop) })
}

// cleanupLoop periodically removes idle sessions
func (st *SessionStore) cleanupLoop() {
	ticker := time.NewTicker(st.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.evictIdle()
		case <-st.stop:
			return
		}
	}
}

// evictIdle removes sessions not used within the ttl and returns how many it removed
func (st *SessionStore) evictIdle() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := st.now().Add(-st.ttl)
	removed := 0
	for id, sess := range st.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
