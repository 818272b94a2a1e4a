package game

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"holdem-tracker/server/engine"
)

// Archive is the append-only store of completed hands.
type Archive interface {
	SaveHand(ctx context.Context, h *engine.Hand) error
	GetHand(ctx context.Context, id string) (*engine.Hand, error)
	ListHands(ctx context.Context, limit int) ([]*engine.Hand, error)
}

// Service owns every live hand and archives each exactly once on completion.
// Each hand carries its own lock so two concurrent commands against the same
// id cannot both mutate from the same snapshot.
type Service struct {
	archive Archive

	mu   sync.Mutex
	live map[string]*slot
}

type slot struct {
	mu   sync.Mutex
	hand *engine.Hand
}

func NewService(archive Archive) *Service {
	return &Service{archive: archive, live: map[string]*slot{}}
}

// CreateHand seats the given stacks, posts blinds and registers the hand.
func (s *Service) CreateHand(stacks []int) (*engine.Hand, error) {
	h, err := engine.NewHand(uuid.NewString(), stacks)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.live[h.ID] = &slot{hand: h}
	s.mu.Unlock()
	return h.Clone(), nil
}

// RecordAction applies one player action and returns the new snapshot.
func (s *Service) RecordAction(ctx context.Context, handID string, pos int, kind engine.ActionKind, amount int) (*engine.Hand, error) {
	return s.mutate(ctx, handID, func(h *engine.Hand) error {
		return h.ApplyAction(pos, kind, amount)
	})
}

// DealHoleCards assigns hole card pairs to the given positions. Positions are
// applied in ascending order so duplicate detection is deterministic.
func (s *Service) DealHoleCards(ctx context.Context, handID string, byPosition map[int]string) (*engine.Hand, error) {
	positions := make([]int, 0, len(byPosition))
	for pos := range byPosition {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return s.mutate(ctx, handID, func(h *engine.Hand) error {
		for _, pos := range positions {
			if err := h.DealHole(pos, byPosition[pos]); err != nil {
				return err
			}
		}
		return nil
	})
}

// DealBoardCards extends the board by one street.
func (s *Service) DealBoardCards(ctx context.Context, handID string, board string) (*engine.Hand, error) {
	return s.mutate(ctx, handID, func(h *engine.Hand) error {
		return h.DealBoard(board)
	})
}

// GetHand returns a snapshot of a live hand, falling back to the archive for
// completed ones.
func (s *Service) GetHand(ctx context.Context, handID string) (*engine.Hand, error) {
	s.mu.Lock()
	sl := s.live[handID]
	s.mu.Unlock()
	if sl != nil {
		sl.mu.Lock()
		defer sl.mu.Unlock()
		return sl.hand.Clone(), nil
	}
	return s.archive.GetHand(ctx, handID)
}

// History lists the most recent completed hands, newest first, projected to
// their display summaries.
func (s *Service) History(ctx context.Context, limit int) ([]engine.HistoryItem, error) {
	if limit <= 0 {
		limit = 50
	}
	hands, err := s.archive.ListHands(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]engine.HistoryItem, len(hands))
	for i, h := range hands {
		items[i] = h.Summarize()
	}
	return items, nil
}

// mutate runs fn against a scratch clone of the live hand and only swaps it
// in when fn succeeds. A hand that completes is archived before the swap, so
// a storage fault leaves the prior snapshot untouched.
func (s *Service) mutate(ctx context.Context, handID string, fn func(*engine.Hand) error) (*engine.Hand, error) {
	s.mu.Lock()
	sl := s.live[handID]
	s.mu.Unlock()
	if sl == nil {
		// Completed hands are evicted to the archive; mutating one is a
		// different failure than an id that never existed. Archive faults
		// other than not-found propagate as-is.
		_, err := s.archive.GetHand(ctx, handID)
		if err == nil {
			return nil, fmt.Errorf("%w: %s", engine.ErrHandAlreadyCompleted, handID)
		}
		return nil, err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()
	next := sl.hand.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if next.Completed {
		if err := s.archive.SaveHand(ctx, next); err != nil {
			return nil, err
		}
		// Leave the completed snapshot in the slot so a caller that grabbed
		// the slot pointer before eviction sees the hand as completed
		// instead of replaying the final mutation against a stale copy.
		sl.hand = next
		s.mu.Lock()
		delete(s.live, handID)
		s.mu.Unlock()
		return next, nil
	}
	sl.hand = next
	return next.Clone(), nil
}
