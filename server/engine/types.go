package engine

import "time"

// Fixed table stakes. Every hand plays 20/40 with no ante.
const (
	SmallBlind = 20
	BigBlind   = 40
)

type Round string

const (
	Preflop Round = "preflop"
	Flop    Round = "flop"
	Turn    Round = "turn"
	River   Round = "river"
)

func (r Round) next() Round {
	switch r {
	case Preflop:
		return Flop
	case Flop:
		return Turn
	case Turn:
		return River
	}
	return River
}

type ActionKind string

const (
	Fold  ActionKind = "fold"
	Check ActionKind = "check"
	Call  ActionKind = "call"
	Bet   ActionKind = "bet"
	Raise ActionKind = "raise"
	AllIn ActionKind = "allin"
)

// Action is one immutable log entry. Amount carries the chips paid for a
// call or all-in and the raise-to target for a bet or raise.
type Action struct {
	PlayerPosition int        `json:"player_position"`
	Kind           ActionKind `json:"action_type"`
	Amount         int        `json:"amount"`
	Round          Round      `json:"round"`
}

// Player is one seat at the table. CurrentBet is the chips committed in the
// running betting round; TotalInvested accumulates across the whole hand.
type Player struct {
	Position      int    `json:"position"`
	Name          string `json:"name"`
	Stack         int    `json:"stack"`
	HoleCards     string `json:"hole_cards"`
	IsDealer      bool   `json:"is_dealer"`
	IsSmallBlind  bool   `json:"is_small_blind"`
	IsBigBlind    bool   `json:"is_big_blind"`
	IsFolded      bool   `json:"is_folded"`
	IsAllIn       bool   `json:"is_all_in"`
	CurrentBet    int    `json:"current_bet"`
	TotalInvested int    `json:"total_invested"`
}

// Hand is the aggregate: seats, the append-only action log, the board string
// and the settlement outcome once completed.
type Hand struct {
	ID              string      `json:"id"`
	Players         []Player    `json:"players"`
	Actions         []Action    `json:"actions"`
	Board           string      `json:"board_cards"`
	Pot             int         `json:"pot_size"`
	Round           Round       `json:"current_round"`
	Completed       bool        `json:"is_completed"`
	WinnerPositions []int       `json:"winner_positions"`
	Winnings        map[int]int `json:"winnings"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Clone deep-copies the hand so a command can mutate a scratch copy and the
// caller can discard it on rejection.
func (h *Hand) Clone() *Hand {
	out := *h
	out.Players = append([]Player(nil), h.Players...)
	out.Actions = append([]Action(nil), h.Actions...)
	out.WinnerPositions = append([]int(nil), h.WinnerPositions...)
	out.Winnings = make(map[int]int, len(h.Winnings))
	for pos, amt := range h.Winnings {
		out.Winnings[pos] = amt
	}
	return &out
}
