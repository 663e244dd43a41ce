package services

import (
	"context"
	"testing"
	"time"
)

func newTestManager(t *testing.T, idleTTL time.Duration) *SessionManager {
	t.Helper()
	api, stock, catalog := testFixtures()
	m := NewSessionManager(func(sessionID string) *CartEngine {
		return NewCartEngine(sessionID, api, stock, catalog, EngineOptions{
			DebounceWindow: time.Minute,
			SyncTimeout:    time.Second,
		})
	}, idleTTL, 0)
	t.Cleanup(m.Close)
	return m
}

func TestEngineIsPerSession(t *testing.T) {
	m := newTestManager(t, time.Minute)

	a := m.Engine("sess-a")
	b := m.Engine("sess-b")
	if a == b {
		t.Fatal("sessions must not share an engine")
	}
	if m.Engine("sess-a") != a {
		t.Fatal("same session must get the same engine back")
	}
}

func TestBadgeTracksCartChanges(t *testing.T) {
	m := newTestManager(t, time.Minute)

	engine := m.Engine("sess-a")
	engine.AddItem(context.Background(), keyBlackM, 3, false)

	badge, ok := m.Badge("sess-a")
	if !ok {
		t.Fatal("badge missing for active session")
	}
	if badge.Items != 1 || badge.TotalQuantity != 3 {
		t.Fatalf("badge = %+v, want 1 item / 3 pieces", badge)
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	m := newTestManager(t, 10*time.Minute)

	old := m.Engine("sess-a")
	if evicted := m.Sweep(time.Now()); evicted != 0 {
		t.Fatalf("evicted = %d, want 0 for a fresh session", evicted)
	}

	if evicted := m.Sweep(time.Now().Add(11 * time.Minute)); evicted != 1 {
		t.Fatalf("evicted = %d, want 1", evicted)
	}
	if _, ok := m.Badge("sess-a"); ok {
		t.Fatal("badge must disappear with the evicted session")
	}
	if m.Engine("sess-a") == old {
		t.Fatal("a new request after eviction must get a fresh engine")
	}
}
