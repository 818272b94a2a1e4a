package engine

import (
	"fmt"
	"sort"
	"time"
)

// NewHand seats 2..6 players with the given stacks, assigns the fixed roles
// (dealer at 0, blinds left of the dealer) and debits both blinds. Heads-up
// the dealer posts the small blind.
func NewHand(id string, stacks []int) (*Hand, error) {
	if len(stacks) < 2 || len(stacks) > 6 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSeatCount, len(stacks))
	}
	for i, s := range stacks {
		if s <= 0 {
			return nil, fmt.Errorf("%w: stack %d at position %d", ErrIllegalAmount, s, i)
		}
	}

	sbPos, bbPos := 1, 2
	if len(stacks) == 2 {
		sbPos, bbPos = 0, 1
	}

	h := &Hand{
		ID:        id,
		Round:     Preflop,
		Winnings:  map[int]int{},
		CreatedAt: time.Now().UTC(),
	}
	for i, s := range stacks {
		h.Players = append(h.Players, Player{
			Position:     i,
			Name:         fmt.Sprintf("Player %d", i+1),
			Stack:        s,
			IsDealer:     i == 0,
			IsSmallBlind: i == sbPos,
			IsBigBlind:   i == bbPos,
		})
	}
	h.commit(&h.Players[sbPos], SmallBlind)
	h.commit(&h.Players[bbPos], BigBlind)
	return h, nil
}

// commit moves amt chips from the player's stack into the pot, capped at the
// stack. Returns the amount actually paid.
func (h *Hand) commit(p *Player, amt int) int {
	if amt >= p.Stack {
		amt = p.Stack
		p.IsAllIn = true
	}
	p.Stack -= amt
	p.CurrentBet += amt
	p.TotalInvested += amt
	h.Pot += amt
	return amt
}

// ApplyAction validates and records one voluntary action. Turn order is not
// enforced: the operator picks any live seat, and only legality per the
// betting constraints is checked. On success the action is appended to the
// log and the round or hand is advanced if the action closed it.
func (h *Hand) ApplyAction(pos int, kind ActionKind, amount int) error {
	if h.Completed {
		return fmt.Errorf("%w: %s", ErrHandAlreadyCompleted, h.ID)
	}
	c, err := h.ConstraintsFor(pos)
	if err != nil {
		return err
	}
	p := &h.Players[pos]

	logged := 0
	switch kind {
	case Fold:
		p.IsFolded = true
	case Check:
		if !c.CanCheck {
			return fmt.Errorf("%w: cannot check facing a bet of %d", ErrInvalidAction, c.MaxBet)
		}
	case Call:
		if !c.CanCall {
			return fmt.Errorf("%w: nothing to call", ErrInvalidAction)
		}
		logged = h.commit(p, c.CallAmount)
	case Bet:
		if c.MaxBet != 0 {
			return fmt.Errorf("%w: facing a bet of %d, raise instead", ErrInvalidAction, c.MaxBet)
		}
		if amount < c.MinBet {
			return fmt.Errorf("%w: bet %d below minimum %d", ErrIllegalAmount, amount, c.MinBet)
		}
		if amount-p.CurrentBet > p.Stack {
			return fmt.Errorf("%w: bet %d exceeds stack %d", ErrIllegalAmount, amount, p.Stack)
		}
		h.commit(p, amount-p.CurrentBet)
		logged = amount
	case Raise:
		if amount < c.MinRaiseTo {
			return fmt.Errorf("%w: raise to %d below minimum %d", ErrIllegalAmount, amount, c.MinRaiseTo)
		}
		if amount-p.CurrentBet > p.Stack {
			return fmt.Errorf("%w: raise to %d exceeds stack", ErrIllegalAmount, amount)
		}
		h.commit(p, amount-p.CurrentBet)
		logged = amount
	case AllIn:
		if p.Stack <= 0 {
			return fmt.Errorf("%w: all-in with empty stack", ErrIllegalAmount)
		}
		logged = h.commit(p, p.Stack)
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidAction, kind)
	}

	h.Actions = append(h.Actions, Action{
		PlayerPosition: pos,
		Kind:           kind,
		Amount:         logged,
		Round:          h.Round,
	})
	h.maybeAdvance()
	return nil
}

// DealHole assigns a two-card token pair to the seat at pos. Cards are set at
// most once per hand.
func (h *Hand) DealHole(pos int, tokens string) error {
	if h.Completed {
		return fmt.Errorf("%w: %s", ErrHandAlreadyCompleted, h.ID)
	}
	if pos < 0 || pos >= len(h.Players) {
		return fmt.Errorf("%w: position %d", ErrUnknownPlayer, pos)
	}
	p := &h.Players[pos]
	if p.HoleCards != "" {
		return fmt.Errorf("%w: position %d holds %s", ErrCardsAlreadyDealt, pos, p.HoleCards)
	}
	cards, err := ParseCards(tokens)
	if err != nil {
		return err
	}
	if len(cards) != 2 {
		return fmt.Errorf("%w: expected two cards, got %d", ErrMalformedCard, len(cards))
	}
	known := h.knownCards()
	for _, c := range cards {
		if known[c] {
			return fmt.Errorf("%w: %s already in play", ErrDuplicateCard, c)
		}
	}
	p.HoleCards = tokens
	return nil
}

// DealBoard extends the board string to the next street boundary. The
// already-dealt prefix must be repeated verbatim; skipping a street or
// rewriting dealt cards is rejected.
func (h *Hand) DealBoard(board string) error {
	if h.Completed {
		return fmt.Errorf("%w: %s", ErrHandAlreadyCompleted, h.ID)
	}
	cards, err := ParseBoard(board)
	if err != nil {
		return err
	}
	cur, next := -1, -1
	for i, n := range boardLengths {
		if n == len(h.Board) {
			cur = i
		}
		if n == len(board) {
			next = i
		}
	}
	if next != cur+1 {
		return fmt.Errorf("%w: board of %d chars cannot extend %d", ErrInvalidBoardLength, len(board), len(h.Board))
	}
	if board[:len(h.Board)] != h.Board {
		return fmt.Errorf("%w: dealt cards %s cannot be rewritten", ErrInvalidBoardLength, h.Board)
	}
	known := h.holeCardSet()
	for _, c := range cards[len(h.Board)/2:] {
		if known[c] {
			return fmt.Errorf("%w: %s already in play", ErrDuplicateCard, c)
		}
	}
	h.Board = board
	return nil
}

func (h *Hand) activePositions() []int {
	var out []int
	for i := range h.Players {
		if !h.Players[i].IsFolded {
			out = append(out, h.Players[i].Position)
		}
	}
	return out
}

// knownCards is every card visible to the hand: the board plus all dealt
// hole cards.
func (h *Hand) knownCards() map[Card]bool {
	out := h.holeCardSet()
	if cards, err := ParseCards(h.Board); err == nil {
		for _, c := range cards {
			out[c] = true
		}
	}
	return out
}

func (h *Hand) holeCardSet() map[Card]bool {
	out := map[Card]bool{}
	for i := range h.Players {
		cards, err := ParseCards(h.Players[i].HoleCards)
		if err != nil {
			continue
		}
		for _, c := range cards {
			out[c] = true
		}
	}
	return out
}

// maybeAdvance closes the betting round or the whole hand when the last
// action left nothing more to decide.
func (h *Hand) maybeAdvance() {
	if len(h.activePositions()) == 1 {
		h.settle()
		return
	}
	if !h.roundComplete() {
		return
	}
	if h.Round == River {
		h.settle()
		return
	}
	for i := range h.Players {
		if !h.Players[i].IsFolded {
			h.Players[i].CurrentBet = 0
		}
	}
	h.Round = h.Round.next()
}

// roundComplete reports whether every live seat has matched the table bet
// (or is all-in for less) and has acted at least once this round. Blind
// posts do not count as acting, so the big blind always gets an option
// preflop.
func (h *Hand) roundComplete() bool {
	acted := map[int]bool{}
	any := false
	for _, a := range h.Actions {
		if a.Round == h.Round {
			acted[a.PlayerPosition] = true
			any = true
		}
	}
	if !any {
		return false
	}
	maxBet := h.maxBet()
	for i := range h.Players {
		p := &h.Players[i]
		if p.IsFolded || p.IsAllIn {
			continue
		}
		if p.CurrentBet != maxBet || !acted[p.Position] {
			return false
		}
	}
	return true
}

// settle runs the showdown (or the walk when one seat remains), splits the
// pot among the winners with any odd chips going to the earliest positions,
// and freezes the hand.
func (h *Hand) settle() {
	active := h.activePositions()
	winners := h.showdownWinners(active)
	sort.Ints(winners)

	share := h.Pot / len(winners)
	rem := h.Pot % len(winners)
	payout := map[int]int{}
	for i, pos := range winners {
		payout[pos] = share
		if i < rem {
			payout[pos]++
		}
	}

	h.Winnings = make(map[int]int, len(h.Players))
	for i := range h.Players {
		pos := h.Players[i].Position
		h.Winnings[pos] = payout[pos] - h.Players[i].TotalInvested
	}
	h.WinnerPositions = winners
	h.Completed = true
}
