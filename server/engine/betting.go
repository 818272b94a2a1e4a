package engine

import "fmt"

// Constraints are the derived betting bounds for one seat against the current
// table state. Both the state machine and any presentation layer read these
// instead of recomputing them ad hoc.
type Constraints struct {
	MaxBet     int  `json:"max_bet"`
	CallAmount int  `json:"call_amount"`
	CanCheck   bool `json:"can_check"`
	CanCall    bool `json:"can_call"`
	MinBet     int  `json:"min_bet"`      // opening bet floor, meaningful only when MaxBet == 0
	MinRaiseTo int  `json:"min_raise_to"` // fixed one-big-blind increment over MaxBet
}

// ConstraintsFor derives the bounds for the player at pos. The position must
// name a live (non-folded) seat.
func (h *Hand) ConstraintsFor(pos int) (Constraints, error) {
	p, err := h.player(pos)
	if err != nil {
		return Constraints{}, err
	}
	maxBet := h.maxBet()
	return Constraints{
		MaxBet:     maxBet,
		CallAmount: maxBet - p.CurrentBet,
		CanCheck:   p.CurrentBet == maxBet,
		CanCall:    p.CurrentBet < maxBet && p.Stack > 0,
		MinBet:     BigBlind,
		MinRaiseTo: maxBet + BigBlind,
	}, nil
}

// LegalActions lists the action kinds the player at pos could take right now.
func (h *Hand) LegalActions(pos int) []ActionKind {
	c, err := h.ConstraintsFor(pos)
	if err != nil {
		return nil
	}
	p := &h.Players[pos]
	out := []ActionKind{Fold}
	if c.CanCheck {
		out = append(out, Check)
	}
	if c.CanCall {
		out = append(out, Call)
	}
	if c.MaxBet == 0 && p.Stack >= c.MinBet {
		out = append(out, Bet)
	}
	if c.MaxBet > 0 && p.Stack >= c.MinRaiseTo-p.CurrentBet {
		out = append(out, Raise)
	}
	if p.Stack > 0 {
		out = append(out, AllIn)
	}
	return out
}

// maxBet is the highest CurrentBet among non-folded players.
func (h *Hand) maxBet() int {
	max := 0
	for i := range h.Players {
		if h.Players[i].IsFolded {
			continue
		}
		if h.Players[i].CurrentBet > max {
			max = h.Players[i].CurrentBet
		}
	}
	return max
}

func (h *Hand) player(pos int) (*Player, error) {
	if pos < 0 || pos >= len(h.Players) {
		return nil, fmt.Errorf("%w: position %d", ErrUnknownPlayer, pos)
	}
	if h.Players[pos].IsFolded {
		return nil, fmt.Errorf("%w: position %d already folded", ErrUnknownPlayer, pos)
	}
	return &h.Players[pos], nil
}
