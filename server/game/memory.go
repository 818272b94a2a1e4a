package game

import (
	"context"
	"fmt"
	"sync"

	"holdem-tracker/server/engine"
)

// MemoryArchive keeps completed hands in memory, newest last. It backs the
// server when no DATABASE_URL is configured and the tests.
type MemoryArchive struct {
	mu    sync.RWMutex
	hands []*engine.Hand
	byID  map[string]*engine.Hand
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{byID: map[string]*engine.Hand{}}
}

func (m *MemoryArchive) SaveHand(ctx context.Context, h *engine.Hand) error {
	if !h.Completed {
		return fmt.Errorf("archive: refusing incomplete hand %s", h.ID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[h.ID]; ok {
		return fmt.Errorf("archive: hand %s already archived", h.ID)
	}
	cp := h.Clone()
	m.hands = append(m.hands, cp)
	m.byID[cp.ID] = cp
	return nil
}

func (m *MemoryArchive) GetHand(ctx context.Context, id string) (*engine.Hand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", engine.ErrHandNotFound, id)
	}
	return h.Clone(), nil
}

func (m *MemoryArchive) ListHands(ctx context.Context, limit int) ([]*engine.Hand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.hands)
	if limit > n {
		limit = n
	}
	out := make([]*engine.Hand, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, m.hands[i].Clone())
	}
	return out, nil
}
