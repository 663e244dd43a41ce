package services

import (
	"sync"
	"time"

	"tshirt-store/models"
)

// SessionManager hands out one CartEngine per storefront session and evicts
// engines that have sat idle past the TTL, cancelling their timers.
type SessionManager struct {
	newEngine func(sessionID string) *CartEngine
	idleTTL   time.Duration

	mu       sync.Mutex
	sessions map[string]*session

	done      chan struct{}
	closeOnce sync.Once
}

type session struct {
	engine   *CartEngine
	badge    models.CartBadge
	lastSeen time.Time
}

func NewSessionManager(newEngine func(string) *CartEngine, idleTTL, sweepInterval time.Duration) *SessionManager {
	m := &SessionManager{
		newEngine: newEngine,
		idleTTL:   idleTTL,
		sessions:  make(map[string]*session),
		done:      make(chan struct{}),
	}
	if sweepInterval > 0 {
		go m.janitor(sweepInterval)
	}
	return m
}

// Engine returns the cart engine for a session, creating it on first use
// and refreshing the idle clock.
func (m *SessionManager) Engine(sessionID string) *CartEngine {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		engine := m.newEngine(sessionID)
		s = &session{engine: engine}
		engine.Subscribe(func(cart models.Cart) {
			m.mu.Lock()
			if cur, ok := m.sessions[sessionID]; ok {
				cur.badge = models.CartBadge{
					Items:         len(cart.Items),
					TotalQuantity: cart.TotalQuantity,
					Total:         cart.Total,
				}
			}
			m.mu.Unlock()
		})
		m.sessions[sessionID] = s
	}
	s.lastSeen = time.Now()
	return s.engine
}

// Badge returns the lightweight cart counters kept current by the engine's
// change observer, without touching the engine itself.
func (m *SessionManager) Badge(sessionID string) (models.CartBadge, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return models.CartBadge{}, false
	}
	return s.badge, true
}

func (m *SessionManager) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.Sweep(time.Now())
		}
	}
}

// Sweep evicts sessions idle longer than the TTL and returns how many were
// closed. Exposed so eviction can be driven directly in tests.
func (m *SessionManager) Sweep(now time.Time) int {
	var expired []*CartEngine
	m.mu.Lock()
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.idleTTL {
			expired = append(expired, s.engine)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, engine := range expired {
		engine.Close()
	}
	return len(expired)
}

// Close stops the janitor and shuts every engine down.
func (m *SessionManager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
	m.mu.Lock()
	engines := make([]*CartEngine, 0, len(m.sessions))
	for _, s := range m.sessions {
		engines = append(engines, s.engine)
	}
	m.sessions = make(map[string]*session)
	m.mu.Unlock()
	for _, engine := range engines {
		engine.Close()
	}
}
