package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalChips(h *Hand) int {
	sum := 0
	for _, p := range h.Players {
		sum += p.Stack + p.TotalInvested
	}
	return sum
}

func TestNewHandSeatingAndBlinds(t *testing.T) {
	h := newTestHand(t, 1000, 1000, 1000, 1000, 1000, 1000)

	assert.True(t, h.Players[0].IsDealer)
	assert.True(t, h.Players[1].IsSmallBlind)
	assert.True(t, h.Players[2].IsBigBlind)
	assert.Equal(t, 980, h.Players[1].Stack)
	assert.Equal(t, 20, h.Players[1].CurrentBet)
	assert.Equal(t, 960, h.Players[2].Stack)
	assert.Equal(t, 40, h.Players[2].CurrentBet)
	assert.Equal(t, 60, h.Pot)
	assert.Equal(t, Preflop, h.Round)
	assert.False(t, h.Completed)
	assert.Equal(t, "Player 1", h.Players[0].Name)
}

func TestNewHandHeadsUpDealerPostsSmallBlind(t *testing.T) {
	h := newTestHand(t, 500, 500)

	assert.True(t, h.Players[0].IsDealer)
	assert.True(t, h.Players[0].IsSmallBlind)
	assert.True(t, h.Players[1].IsBigBlind)
	assert.Equal(t, 480, h.Players[0].Stack)
	assert.Equal(t, 460, h.Players[1].Stack)
}

func TestNewHandRejectsBadSeatCounts(t *testing.T) {
	_, err := NewHand("x", []int{1000})
	assert.ErrorIs(t, err, ErrInvalidSeatCount)
	_, err = NewHand("x", []int{1000, 1000, 1000, 1000, 1000, 1000, 1000})
	assert.ErrorIs(t, err, ErrInvalidSeatCount)
	_, err = NewHand("x", []int{1000, 0})
	assert.ErrorIs(t, err, ErrIllegalAmount)
}

func TestFoldToBigBlindEndsHand(t *testing.T) {
	h := newTestHand(t, 1000, 1000, 1000, 1000, 1000, 1000)

	for _, pos := range []int{3, 4, 5, 0, 1} {
		require.NoError(t, h.ApplyAction(pos, Fold, 0))
	}

	require.True(t, h.Completed)
	assert.Equal(t, []int{2}, h.WinnerPositions)
	assert.Equal(t, 20, h.Winnings[2])
	assert.Equal(t, -20, h.Winnings[1])
	assert.Equal(t, 0, h.Winnings[0])
	sum := 0
	for _, amt := range h.Winnings {
		sum += amt
	}
	assert.Zero(t, sum, "payouts must be zero-sum")
}

func TestBetBelowMinimumRejected(t *testing.T) {
	h := newTestHand(t, 1000, 1000, 1000)

	// Close preflop betting: everyone matches 40 and the big blind checks.
	require.NoError(t, h.ApplyAction(0, Call, 0))
	require.NoError(t, h.ApplyAction(1, Call, 0))
	require.NoError(t, h.ApplyAction(2, Check, 0))
	require.Equal(t, Flop, h.Round)

	err := h.ApplyAction(0, Bet, 30)
	assert.ErrorIs(t, err, ErrIllegalAmount)
	assert.Len(t, h.Actions, 3, "rejected action must not be logged")

	require.NoError(t, h.ApplyAction(0, Bet, 40))
}

func TestBetNotAvailableFacingABet(t *testing.T) {
	h := newTestHand(t, 1000, 1000, 1000)
	err := h.ApplyAction(0, Bet, 100)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestRaiseBounds(t *testing.T) {
	h := newTestHand(t, 1000, 1000, 1000)

	err := h.ApplyAction(0, Raise, 79)
	assert.ErrorIs(t, err, ErrIllegalAmount)

	err = h.ApplyAction(0, Raise, 1200)
	assert.ErrorIs(t, err, ErrIllegalAmount)

	require.NoError(t, h.ApplyAction(0, Raise, 80))
	assert.Equal(t, 80, h.Players[0].CurrentBet)
	assert.Equal(t, 920, h.Players[0].Stack)
}

func TestZeroStackAllInRejected(t *testing.T) {
	h := newTestHand(t, 1000, 1000, 1000)
	require.NoError(t, h.ApplyAction(0, AllIn, 0))
	require.True(t, h.Players[0].IsAllIn)
	require.Zero(t, h.Players[0].Stack)

	err := h.ApplyAction(0, AllIn, 0)
	assert.ErrorIs(t, err, ErrIllegalAmount)
}

func TestShortAllInCountsAsMatched(t *testing.T) {
	h := newTestHand(t, 50, 1000, 1000)

	require.NoError(t, h.ApplyAction(0, AllIn, 0))
	assert.Equal(t, 50, h.maxBet())
	require.NoError(t, h.ApplyAction(1, Call, 0))
	require.NoError(t, h.ApplyAction(2, Call, 0))

	// Dealer is all-in for 50; the callers matched, so the round closes.
	assert.Equal(t, Flop, h.Round)
	assert.Equal(t, 150, h.Pot)
	assert.Zero(t, h.Players[1].CurrentBet)
}

func TestBigBlindAlwaysGetsAnOption(t *testing.T) {
	h := newTestHand(t, 1000, 1000, 1000)

	require.NoError(t, h.ApplyAction(0, Call, 0))
	require.NoError(t, h.ApplyAction(1, Call, 0))

	// All bets match 40, but the big blind has not acted yet.
	assert.Equal(t, Preflop, h.Round)
	require.NoError(t, h.ApplyAction(2, Check, 0))
	assert.Equal(t, Flop, h.Round)
}

func TestChipConservation(t *testing.T) {
	h := newTestHand(t, 1000, 800, 600, 400)
	initial := totalChips(h)

	script := []struct {
		pos    int
		kind   ActionKind
		amount int
	}{
		{3, Call, 0},
		{0, Raise, 120},
		{1, Fold, 0},
		{2, Call, 0},
		{3, Call, 0},
	}
	for _, step := range script {
		require.NoError(t, h.ApplyAction(step.pos, step.kind, step.amount))
		assert.Equal(t, initial, totalChips(h))
	}

	assert.Equal(t, Flop, h.Round)
	invested := 0
	for _, p := range h.Players {
		invested += p.TotalInvested
	}
	assert.Equal(t, h.Pot, invested)
}

func TestDealHoleCards(t *testing.T) {
	h := newTestHand(t, 1000, 1000)

	require.NoError(t, h.DealHole(0, "AhKd"))
	assert.Equal(t, "AhKd", h.Players[0].HoleCards)

	err := h.DealHole(0, "QsQc")
	assert.ErrorIs(t, err, ErrCardsAlreadyDealt)

	err = h.DealHole(1, "AhTc")
	assert.ErrorIs(t, err, ErrDuplicateCard)

	err = h.DealHole(1, "Ah")
	assert.ErrorIs(t, err, ErrMalformedCard)

	err = h.DealHole(5, "QsQc")
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	require.NoError(t, h.DealHole(1, "QsQc"))
}

func TestDealBoardProgression(t *testing.T) {
	h := newTestHand(t, 1000, 1000)
	require.NoError(t, h.DealHole(0, "AhKd"))

	// Skipping straight to the river is rejected.
	err := h.DealBoard("2h3h4h5h6h")
	assert.ErrorIs(t, err, ErrInvalidBoardLength)

	require.NoError(t, h.DealBoard("2h3h4h"))
	assert.Equal(t, "2h3h4h", h.Board)

	// Turn must repeat the dealt flop verbatim.
	err = h.DealBoard("2h3h9h5c")
	assert.ErrorIs(t, err, ErrInvalidBoardLength)

	// Board cannot reuse a dealt hole card.
	err = h.DealBoard("2h3h4hAh")
	assert.ErrorIs(t, err, ErrDuplicateCard)

	// Re-dealing the same length is rejected.
	err = h.DealBoard("2h3h4h")
	assert.ErrorIs(t, err, ErrInvalidBoardLength)

	require.NoError(t, h.DealBoard("2h3h4h5c"))
	require.NoError(t, h.DealBoard("2h3h4h5c6d"))
	assert.Equal(t, "2h3h4h5c6d", h.Board)
}

func playRoundOfChecks(t *testing.T, h *Hand, positions ...int) {
	t.Helper()
	for _, pos := range positions {
		require.NoError(t, h.ApplyAction(pos, Check, 0))
	}
}

func TestShowdownBestHandWins(t *testing.T) {
	h := newTestHand(t, 1000, 1000)
	require.NoError(t, h.DealHole(0, "AhAd"))
	require.NoError(t, h.DealHole(1, "KhKd"))

	require.NoError(t, h.ApplyAction(0, Call, 0))
	require.NoError(t, h.ApplyAction(1, Check, 0))
	require.Equal(t, Flop, h.Round)

	require.NoError(t, h.DealBoard("2c7s9h"))
	require.NoError(t, h.ApplyAction(1, Bet, 40))
	require.NoError(t, h.ApplyAction(0, Call, 0))
	require.Equal(t, Turn, h.Round)

	require.NoError(t, h.DealBoard("2c7s9hJc"))
	playRoundOfChecks(t, h, 1, 0)
	require.Equal(t, River, h.Round)

	require.NoError(t, h.DealBoard("2c7s9hJc4d"))
	playRoundOfChecks(t, h, 1, 0)

	require.True(t, h.Completed)
	assert.Equal(t, []int{0}, h.WinnerPositions)
	assert.Equal(t, 80, h.Winnings[0])
	assert.Equal(t, -80, h.Winnings[1])
}

func TestShowdownSplitsTiesWithRemainderToEarliestPosition(t *testing.T) {
	h := newTestHand(t, 1000, 1000, 1000, 1000)
	require.NoError(t, h.DealHole(0, "2h3h"))
	require.NoError(t, h.DealHole(1, "2d3d"))
	require.NoError(t, h.DealHole(2, "2s3s"))
	require.NoError(t, h.DealHole(3, "2c3c"))

	// Everyone sees the flop for 40.
	require.NoError(t, h.ApplyAction(3, Call, 0))
	require.NoError(t, h.ApplyAction(0, Call, 0))
	require.NoError(t, h.ApplyAction(1, Call, 0))
	require.NoError(t, h.ApplyAction(2, Check, 0))
	require.Equal(t, Flop, h.Round)

	// Seat 3 pays the flop bet and then folds to leave an odd pot.
	require.NoError(t, h.DealBoard("AsKsQs"))
	require.NoError(t, h.ApplyAction(0, Bet, 40))
	require.NoError(t, h.ApplyAction(1, Call, 0))
	require.NoError(t, h.ApplyAction(2, Call, 0))
	require.NoError(t, h.ApplyAction(3, Fold, 0))
	require.Equal(t, Turn, h.Round)

	require.NoError(t, h.DealBoard("AsKsQsJs"))
	playRoundOfChecks(t, h, 0, 1, 2)
	require.NoError(t, h.DealBoard("AsKsQsJsTs"))
	playRoundOfChecks(t, h, 0, 1, 2)

	// The board royal flush plays for all three remaining seats.
	require.True(t, h.Completed)
	assert.Equal(t, []int{0, 1, 2}, h.WinnerPositions)

	// Pot 280 splits 94/93/93 with the odd chip to the earliest position.
	assert.Equal(t, 14, h.Winnings[0])
	assert.Equal(t, 13, h.Winnings[1])
	assert.Equal(t, 13, h.Winnings[2])
	assert.Equal(t, -40, h.Winnings[3])
	sum := 0
	for _, amt := range h.Winnings {
		sum += amt
	}
	assert.Zero(t, sum)
}

func TestShowdownWithoutShownCardsSplitsAmongRemaining(t *testing.T) {
	h := newTestHand(t, 1000, 1000)

	require.NoError(t, h.ApplyAction(0, Call, 0))
	require.NoError(t, h.ApplyAction(1, Check, 0))
	require.NoError(t, h.DealBoard("2c7s9h"))
	playRoundOfChecks(t, h, 0, 1)
	require.NoError(t, h.DealBoard("2c7s9hJc"))
	playRoundOfChecks(t, h, 0, 1)
	require.NoError(t, h.DealBoard("2c7s9hJc4d"))
	playRoundOfChecks(t, h, 0, 1)

	// No hole cards were ever recorded, so nothing is rankable.
	require.True(t, h.Completed)
	assert.Equal(t, []int{0, 1}, h.WinnerPositions)
	assert.Equal(t, 0, h.Winnings[0])
	assert.Equal(t, 0, h.Winnings[1])
}

func TestMutationsRejectedAfterCompletion(t *testing.T) {
	h := newTestHand(t, 1000, 1000)
	require.NoError(t, h.ApplyAction(0, Fold, 0))
	require.True(t, h.Completed)

	assert.ErrorIs(t, h.ApplyAction(1, Check, 0), ErrHandAlreadyCompleted)
	assert.ErrorIs(t, h.DealHole(0, "AhKd"), ErrHandAlreadyCompleted)
	assert.ErrorIs(t, h.DealBoard("2h3h4h"), ErrHandAlreadyCompleted)
}

func TestRoundNeverRegresses(t *testing.T) {
	h := newTestHand(t, 1000, 1000)
	seen := []Round{h.Round}

	require.NoError(t, h.ApplyAction(0, Call, 0))
	require.NoError(t, h.ApplyAction(1, Check, 0))
	seen = append(seen, h.Round)
	playRoundOfChecks(t, h, 0, 1)
	seen = append(seen, h.Round)
	playRoundOfChecks(t, h, 0, 1)
	seen = append(seen, h.Round)

	assert.Equal(t, []Round{Preflop, Flop, Turn, River}, seen)
}
