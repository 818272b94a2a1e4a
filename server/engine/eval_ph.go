package engine

import (
	"sort"

	poker "github.com/paulhankin/poker"
)

// Library-based hand rank. Bigger score = stronger hand.

// Convert our engine.Card -> library card.
func toPH(c Card) poker.Card {
	var s poker.Suit
	switch c.Suit {
	case 'c':
		s = poker.Club
	case 'd':
		s = poker.Diamond
	case 'h':
		s = poker.Heart
	case 's':
		s = poker.Spade
	default:
		s = poker.Club
	}
	// Our ranks: 2..14 (Ace=14). Library: 1..13 (Ace=1).
	var r poker.Rank
	if c.Rank == 14 {
		r = poker.Rank(1)
	} else {
		r = poker.Rank(c.Rank)
	}
	card, _ := poker.MakeCard(s, r)
	return card
}

func bestFive(cards []Card) int16 {
	n := len(cards)
	pcs := make([]poker.Card, n)
	for i, c := range cards {
		pcs[i] = toPH(c)
	}
	switch n {
	case 7:
		var a7 [7]poker.Card
		copy(a7[:], pcs)
		return poker.Eval7(&a7)
	case 5:
		var a5 [5]poker.Card
		copy(a5[:], pcs)
		return poker.Eval5(&a5)
	default:
		// 6 cards (hole + turn board): choose best 5.
		return bestOfFiveSubsets(pcs)
	}
}

func bestOfFiveSubsets(pcs []poker.Card) int16 {
	n := len(pcs)
	best := int16(-32768)
	choose := [5]int{}
	var five [5]poker.Card
	var rec func(start, k int)
	rec = func(start, k int) {
		if k == 5 {
			for i := 0; i < 5; i++ {
				five[i] = pcs[choose[i]]
			}
			if score := poker.Eval5(&five); score > best {
				best = score
			}
			return
		}
		for i := start; i <= n-(5-k); i++ {
			choose[k] = i
			rec(i+1, k+1)
		}
	}
	rec(0, 0)
	return best
}

// showdownWinners ranks the remaining seats' best five-card hands. Seats
// without dealt hole cards, or with fewer than five cards to pick from, never
// outrank a scored hand; when nothing is rankable the pot splits across all
// remaining seats (the operator never showed the cards).
func (h *Hand) showdownWinners(active []int) []int {
	if len(active) == 1 {
		return append([]int(nil), active...)
	}
	board, err := ParseCards(h.Board)
	if err != nil {
		board = nil
	}

	type scored struct {
		pos   int
		score int16
	}
	var ranked []scored
	for _, pos := range active {
		hole, err := ParseCards(h.Players[pos].HoleCards)
		if err != nil || len(hole) != 2 {
			continue
		}
		all := append(append([]Card(nil), hole...), board...)
		if len(all) < 5 {
			continue
		}
		ranked = append(ranked, scored{pos: pos, score: bestFive(all)})
	}
	if len(ranked) == 0 {
		return append([]int(nil), active...)
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	winners := []int{ranked[0].pos}
	for _, s := range ranked[1:] {
		if s.score != ranked[0].score {
			break
		}
		winners = append(winners, s.pos)
	}
	return winners
}

// DescribeHand returns the library's human description of the seat's best
// hand, for debug output.
func (h *Hand) DescribeHand(pos int) string {
	if pos < 0 || pos >= len(h.Players) {
		return ""
	}
	hole, err := ParseCards(h.Players[pos].HoleCards)
	if err != nil {
		return ""
	}
	board, err := ParseCards(h.Board)
	if err != nil {
		return ""
	}
	all := append(hole, board...)
	pcs := make([]poker.Card, len(all))
	for i, c := range all {
		pcs[i] = toPH(c)
	}
	d, err := poker.Describe(pcs)
	if err != nil {
		return ""
	}
	return d
}
