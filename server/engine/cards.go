package engine

import "fmt"

type Card struct {
	Rank int
	Suit byte
} // e.g. "As" => rank 14, suit 's'

const rankChars = "23456789TJQKA"

func (c Card) String() string {
	ranks := "  23456789TJQKA"
	return fmt.Sprintf("%c%c", ranks[c.Rank], c.Suit)
}

// ParseCard decodes a two-character token: rank from 2..9TJQKA, suit from hdcs.
func ParseCard(tok string) (Card, error) {
	if len(tok) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrMalformedCard, tok)
	}
	rank := 0
	for i := 0; i < len(rankChars); i++ {
		if rankChars[i] == tok[0] {
			rank = i + 2
			break
		}
	}
	if rank == 0 {
		return Card{}, fmt.Errorf("%w: %q has no rank", ErrMalformedCard, tok)
	}
	switch tok[1] {
	case 'h', 'd', 'c', 's':
	default:
		return Card{}, fmt.Errorf("%w: %q has no suit", ErrMalformedCard, tok)
	}
	return Card{Rank: rank, Suit: tok[1]}, nil
}

// ParseCards decodes a concatenation of two-character tokens with no
// separator, rejecting duplicates within the string.
func ParseCards(s string) ([]Card, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrMalformedCard, len(s))
	}
	var out []Card
	seen := map[Card]bool{}
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}

// Board lengths in characters for each dealt street: none, flop, turn, river.
var boardLengths = []int{0, 6, 8, 10}

// ParseBoard decodes a full board string. The length must land exactly on a
// street boundary.
func ParseBoard(s string) ([]Card, error) {
	ok := false
	for _, n := range boardLengths {
		if len(s) == n {
			ok = true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %d chars", ErrInvalidBoardLength, len(s))
	}
	return ParseCards(s)
}
