package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/loveletterbots/internal/card"
	"github.com/lox/loveletterbots/internal/randutil"
)

// scriptedState deals a round from cards: burnt card first, then one card per
// seat starting at seat 0, then the draw pile in order.
func scriptedState(t *testing.T, players int, cards ...card.Card) *State {
	t.Helper()
	s, err := NewState(players, randutil.New(1))
	require.NoError(t, err)
	require.NoError(t, s.StartRoundWithDeck(card.NewDeckFromCards(cards)))
	return s
}

func mustAction(t *testing.T) func(Action, error) Action {
	return func(a Action, err error) Action {
		t.Helper()
		require.NoError(t, err)
		return a
	}
}

func drawAndApply(t *testing.T, s *State, act Action) card.Card {
	t.Helper()
	drawn, err := s.Draw()
	require.NoError(t, err)
	require.NoError(t, s.Apply(act))
	return drawn
}

func TestNewStatePlayerBounds(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		_, err := NewState(n, randutil.New(1))
		assert.Error(t, err, "players=%d", n)
	}
	for _, n := range []int{2, 3, 4} {
		_, err := NewState(n, randutil.New(1))
		assert.NoError(t, err, "players=%d", n)
	}
}

func TestTokensToWin(t *testing.T) {
	assert.Equal(t, 7, TokensToWin(2))
	assert.Equal(t, 5, TokensToWin(3))
	assert.Equal(t, 4, TokensToWin(4))
}

func TestStartRoundDealsBurntAndHands(t *testing.T) {
	s, err := NewState(4, randutil.New(7))
	require.NoError(t, err)
	require.NoError(t, s.StartRound())

	assert.Equal(t, 1, s.Round())
	assert.True(t, s.Burnt().Valid())
	for seat := range 4 {
		assert.True(t, s.Hand(seat).Valid())
	}
	assert.Equal(t, card.DeckSize-5, s.View(0).DeckSize)
	assert.False(t, s.RoundOver())
}

func TestGuardCorrectGuessEliminates(t *testing.T) {
	must := mustAction(t)
	s := scriptedState(t, 2, card.Princess, card.Guard, card.Priest, card.Guard, card.Baron, card.Handmaid)

	drawAndApply(t, s, must(PlayGuard(0, 1, card.Priest)))

	assert.True(t, s.Eliminated(1))
	assert.True(t, s.RoundOver())
	assert.Equal(t, []int{0}, s.RoundWinners())
	assert.Equal(t, []int{1, 0}, s.Tokens())
}

func TestGuardWrongGuessDoesNothing(t *testing.T) {
	must := mustAction(t)
	s := scriptedState(t, 2, card.Princess, card.Guard, card.Priest, card.Guard, card.Baron, card.Handmaid)

	drawAndApply(t, s, must(PlayGuard(0, 1, card.Baron)))

	assert.False(t, s.Eliminated(1))
	assert.Equal(t, 1, s.Turn())
	assert.Equal(t, []card.Card{card.Guard}, s.View(1).Discards[0])
}

func TestBaronComparesHands(t *testing.T) {
	must := mustAction(t)

	t.Run("higher wins", func(t *testing.T) {
		s := scriptedState(t, 2, card.Guard, card.King, card.Priest, card.Baron, card.Guard, card.Guard)
		drawAndApply(t, s, must(PlayBaron(0, 1)))
		assert.True(t, s.Eliminated(1))
		assert.False(t, s.Eliminated(0))
	})

	t.Run("lower loses", func(t *testing.T) {
		s := scriptedState(t, 2, card.Guard, card.Guard, card.Priest, card.Baron, card.Guard, card.Guard)
		drawAndApply(t, s, must(PlayBaron(0, 1)))
		assert.True(t, s.Eliminated(0))
		assert.Equal(t, []int{1}, s.RoundWinners())
	})

	t.Run("tie reveals both hands", func(t *testing.T) {
		s := scriptedState(t, 2, card.Guard, card.Priest, card.Priest, card.Baron, card.Guard, card.Guard)
		drawAndApply(t, s, must(PlayBaron(0, 1)))
		assert.False(t, s.Eliminated(0))
		assert.False(t, s.Eliminated(1))
		assert.Equal(t, card.Priest, s.View(0).Known[1])
		assert.Equal(t, card.Priest, s.View(1).Known[0])
	})
}

func TestPriestKnowledgeClearedWhenCardPlayed(t *testing.T) {
	must := mustAction(t)
	s := scriptedState(t, 2, card.Baron, card.Guard, card.Handmaid, card.Priest, card.Guard, card.Guard, card.Guard)

	drawAndApply(t, s, must(PlayPriest(0, 1)))
	assert.Equal(t, card.Handmaid, s.View(0).Known[1])
	assert.Equal(t, card.Unknown, s.View(1).Known[0])

	drawAndApply(t, s, must(PlayHandmaid(1)))
	assert.Equal(t, card.Unknown, s.View(0).Known[1])
	assert.True(t, s.View(0).Protected[1])
}

func TestPriestKnowledgeSurvivesOtherPlay(t *testing.T) {
	must := mustAction(t)
	s := scriptedState(t, 2, card.Baron, card.Guard, card.Handmaid, card.Priest, card.Guard, card.Guard, card.Guard)

	drawAndApply(t, s, must(PlayPriest(0, 1)))
	drawAndApply(t, s, must(PlayGuard(1, 0, card.Baron)))
	assert.Equal(t, card.Handmaid, s.View(0).Known[1])
}

func TestPrinceOnPrincessEliminates(t *testing.T) {
	must := mustAction(t)
	s := scriptedState(t, 2, card.Guard, card.Prince, card.Princess, card.Guard, card.Guard, card.Guard)

	drawAndApply(t, s, must(PlayPrince(0, 1)))

	assert.True(t, s.Eliminated(1))
	assert.Contains(t, s.View(0).Discards[1], card.Princess)
}

func TestPrinceDrawsBurntCardWhenDeckEmpty(t *testing.T) {
	must := mustAction(t)
	s := scriptedState(t, 2, card.Baron, card.Prince, card.Guard, card.Handmaid)

	drawAndApply(t, s, must(PlayPrince(0, 1)))

	assert.Equal(t, card.Baron, s.Hand(1))
	assert.Equal(t, card.Unknown, s.Burnt())
	assert.True(t, s.RoundOver())
	assert.Equal(t, []int{0}, s.RoundWinners())
}

func TestKingSwapsHandsAndKnowledge(t *testing.T) {
	must := mustAction(t)
	s := scriptedState(t, 2, card.Priest, card.Guard, card.Countess, card.King, card.Guard, card.Guard)

	drawAndApply(t, s, must(PlayKing(0, 1)))

	assert.Equal(t, card.Countess, s.Hand(0))
	assert.Equal(t, card.Guard, s.Hand(1))
	assert.Equal(t, card.Guard, s.View(0).Known[1])
	assert.Equal(t, card.Countess, s.View(1).Known[0])
}

func TestCountessRuleEnforced(t *testing.T) {
	must := mustAction(t)
	s := scriptedState(t, 2, card.Guard, card.Countess, card.Guard, card.Prince, card.Guard, card.Guard)

	_, err := s.Draw()
	require.NoError(t, err)

	err = s.Apply(must(PlayPrince(0, 1)))
	var illegalErr *IllegalActionError
	require.ErrorAs(t, err, &illegalErr)
	assert.Contains(t, illegalErr.Reason, "countess")

	require.NoError(t, s.Apply(must(PlayCountess(0))))
	assert.Equal(t, card.Prince, s.Hand(0))
}

func TestPrincessDiscardEliminates(t *testing.T) {
	must := mustAction(t)
	s := scriptedState(t, 2, card.Guard, card.Princess, card.Guard, card.Handmaid, card.Guard, card.Guard)

	drawAndApply(t, s, must(PlayPrincess(0)))
	assert.True(t, s.Eliminated(0))
	assert.Equal(t, []int{1}, s.RoundWinners())
}

func TestProtectedTargetHasNoEffect(t *testing.T) {
	must := mustAction(t)
	s := scriptedState(t, 2, card.Guard, card.Priest, card.Priest, card.Guard, card.Handmaid, card.Guard, card.Guard)

	drawAndApply(t, s, must(PlayGuard(0, 1, card.Baron)))
	drawAndApply(t, s, must(PlayHandmaid(1)))

	// the only other player is protected, so targeting them is allowed but inert
	drawAndApply(t, s, must(PlayGuard(0, 1, card.Priest)))
	assert.False(t, s.Eliminated(1))
	assert.Equal(t, card.Priest, s.Hand(1))
}

func TestRoundEndTieBreaks(t *testing.T) {
	must := mustAction(t)

	t.Run("discard total breaks ties", func(t *testing.T) {
		s := scriptedState(t, 2, card.Guard, card.Priest, card.Priest, card.Handmaid, card.Guard)
		drawAndApply(t, s, must(PlayHandmaid(0)))
		drawAndApply(t, s, must(PlayGuard(1, 0, card.Baron)))

		require.True(t, s.RoundOver())
		assert.Equal(t, []int{0}, s.RoundWinners())
	})

	t.Run("full tie awards everyone", func(t *testing.T) {
		s := scriptedState(t, 2, card.Guard, card.Priest, card.Priest, card.Handmaid, card.Handmaid)
		drawAndApply(t, s, must(PlayHandmaid(0)))
		drawAndApply(t, s, must(PlayHandmaid(1)))

		require.True(t, s.RoundOver())
		assert.Equal(t, []int{0, 1}, s.RoundWinners())
		assert.Equal(t, []int{1, 1}, s.Tokens())
	})
}

func TestRoundWinnerOpensNextRound(t *testing.T) {
	must := mustAction(t)
	s := scriptedState(t, 2, card.Guard, card.Princess, card.Guard, card.Handmaid, card.Guard, card.Guard)

	drawAndApply(t, s, must(PlayPrincess(0)))
	require.True(t, s.RoundOver())

	_, err := s.Draw()
	assert.ErrorIs(t, err, ErrRoundOver)

	require.NoError(t, s.StartRound())
	assert.Equal(t, 2, s.Round())
	assert.Equal(t, 1, s.Turn())
	assert.Equal(t, []int{0, 1}, s.Tokens())
}

func TestApplyRequiresDraw(t *testing.T) {
	must := mustAction(t)
	s := scriptedState(t, 2, card.Guard, card.Priest, card.Guard, card.Handmaid, card.Guard, card.Guard)

	assert.ErrorIs(t, s.Apply(must(PlayPriest(0, 1))), ErrNotDrawn)

	_, err := s.Draw()
	require.NoError(t, err)
	_, err = s.Draw()
	assert.ErrorIs(t, err, ErrAlreadyDrew)
}
