package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/thoas/go-funk"
)

// HistoryItem is the five-line display projection of an archived hand.
type HistoryItem struct {
	ID        string    `json:"id"`
	Line1     string    `json:"line1"`
	Line2     string    `json:"line2"`
	Line3     string    `json:"line3"`
	Line4     string    `json:"line4"`
	Line5     string    `json:"line5"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Summarize projects the hand into its display lines: id, table setup, hole
// cards, the compact action trace and the per-seat net results.
func (h *Hand) Summarize() HistoryItem {
	status := "In Progress"
	if h.Completed {
		status = "Completed"
	}

	stacks := make([]string, len(h.Players))
	for i, p := range h.Players {
		stacks[i] = fmt.Sprintf("%d", p.Stack+p.TotalInvested)
	}
	line2 := fmt.Sprintf("Stacks: [%s] | Dealer: %d | SB: %d | BB: %d",
		strings.Join(stacks, ", "),
		rolePosition(h.Players, func(p Player) bool { return p.IsDealer }),
		rolePosition(h.Players, func(p Player) bool { return p.IsSmallBlind }),
		rolePosition(h.Players, func(p Player) bool { return p.IsBigBlind }))

	cards := make([]string, len(h.Players))
	for i, p := range h.Players {
		if p.HoleCards == "" {
			cards[i] = "??"
		} else {
			cards[i] = p.HoleCards
		}
	}
	line3 := "Cards: " + strings.Join(cards, " | ")

	var trace []string
	for _, a := range h.Actions {
		switch a.Kind {
		case Fold:
			trace = append(trace, "f")
		case Check:
			trace = append(trace, "x")
		case Call:
			trace = append(trace, "c")
		case Bet:
			trace = append(trace, fmt.Sprintf("b%d", a.Amount))
		case Raise:
			trace = append(trace, fmt.Sprintf("r%d", a.Amount))
		case AllIn:
			trace = append(trace, "allin")
		}
	}
	if h.Board != "" {
		trace = append(trace, h.Board)
	}
	line4 := "Actions: " + strings.Join(trace, " ")

	nets := make([]string, len(h.Players))
	for i, p := range h.Players {
		amt := h.Winnings[p.Position]
		if amt > 0 {
			nets[i] = fmt.Sprintf("+%d", amt)
		} else {
			nets[i] = fmt.Sprintf("%d", amt)
		}
	}
	line5 := "Winnings: " + strings.Join(nets, " | ")

	return HistoryItem{
		ID:        h.ID,
		Line1:     h.ID,
		Line2:     line2,
		Line3:     line3,
		Line4:     line4,
		Line5:     line5,
		Status:    status,
		CreatedAt: h.CreatedAt,
	}
}

func rolePosition(players []Player, pred func(Player) bool) int {
	if v := funk.Find(players, pred); v != nil {
		return v.(Player).Position
	}
	return -1
}
