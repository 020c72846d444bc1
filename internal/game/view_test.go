package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/loveletterbots/internal/card"
)

func testView(hand card.Card, protected ...bool) View {
	n := len(protected)
	return View{
		NumPlayers: n,
		Seat:       0,
		Turn:       0,
		Hand:       hand,
		Known:      make([]card.Card, n),
		Eliminated: make([]bool, n),
		Protected:  protected,
		Discards:   make([][]card.Card, n),
		Tokens:     make([]int, n),
	}
}

func TestViewLegal(t *testing.T) {
	must := mustAction(t)

	tests := []struct {
		name    string
		view    View
		drawn   card.Card
		action  Action
		wantErr string
	}{
		{
			name:   "guard on open opponent",
			view:   testView(card.Guard, false, false, false),
			drawn:  card.Priest,
			action: must(PlayGuard(0, 1, card.Priest)),
		},
		{
			name:    "card not held",
			view:    testView(card.Guard, false, false),
			drawn:   card.Priest,
			action:  must(PlayBaron(0, 1)),
			wantErr: "does not hold",
		},
		{
			name:    "protected target",
			view:    testView(card.Guard, false, true, false),
			drawn:   card.Priest,
			action:  must(PlayPriest(0, 1)),
			wantErr: "protected",
		},
		{
			name:   "protected target when everyone is protected",
			view:   testView(card.Guard, false, true, true),
			drawn:  card.Priest,
			action: must(PlayPriest(0, 2)),
		},
		{
			name:    "self target while an opponent is open",
			view:    testView(card.Guard, false, true, false),
			drawn:   card.Priest,
			action:  must(PlayGuard(0, 0, card.Baron)),
			wantErr: "cannot target self",
		},
		{
			name:   "self target when everyone is protected",
			view:   testView(card.Guard, false, true, true),
			drawn:  card.Priest,
			action: must(PlayGuard(0, 0, card.Baron)),
		},
		{
			name:   "prince may always target self",
			view:   testView(card.Prince, false, false),
			drawn:  card.Guard,
			action: must(PlayPrince(0, 0)),
		},
		{
			name:    "countess forces itself over king",
			view:    testView(card.Countess, false, false),
			drawn:   card.King,
			action:  must(PlayKing(0, 1)),
			wantErr: "countess",
		},
		{
			name:    "target out of range",
			view:    testView(card.Guard, false, false),
			drawn:   card.Priest,
			action:  must(PlayPriest(0, 2)),
			wantErr: "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.view.Legal(tt.action, tt.drawn)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var illegalErr *IllegalActionError
			require.ErrorAs(t, err, &illegalErr)
			assert.Contains(t, illegalErr.Reason, tt.wantErr)
		})
	}
}

func TestViewLegalRejectsEliminatedAndOffTurn(t *testing.T) {
	must := mustAction(t)
	v := testView(card.Guard, false, false, false)
	v.Eliminated[2] = true

	assert.Error(t, v.Legal(must(PlayPriest(0, 2)), card.Priest))

	v.Turn = 1
	assert.Error(t, v.Legal(must(PlayPriest(0, 1)), card.Priest))
	assert.Error(t, v.Legal(must(PlayPriest(1, 0)), card.Priest))
}

func TestLegalActions(t *testing.T) {
	t.Run("guard guesses and handmaid", func(t *testing.T) {
		v := testView(card.Guard, false, false)
		actions := v.LegalActions(card.Handmaid)
		assert.Len(t, actions, card.NumTypes)
		for _, a := range actions {
			assert.NoError(t, v.Legal(a, card.Handmaid))
		}
	})

	t.Run("duplicate cards enumerate once", func(t *testing.T) {
		v := testView(card.Guard, false, false)
		assert.Len(t, v.LegalActions(card.Guard), card.NumTypes-1)
	})

	t.Run("countess forced", func(t *testing.T) {
		v := testView(card.Countess, false, false)
		actions := v.LegalActions(card.Prince)
		require.Len(t, actions, 1)
		assert.Equal(t, card.Countess, actions[0].Card())
	})

	t.Run("all protected guard targets self", func(t *testing.T) {
		v := testView(card.Guard, false, true)
		actions := v.LegalActions(card.Guard)
		// guesses against the protected opponent and against ourselves
		assert.Len(t, actions, 2*(card.NumTypes-1))
	})
}

func TestViewOpponentsAndCard(t *testing.T) {
	v := testView(card.Baron, false, false, false, false)
	v.Seat = 2
	v.Known[1] = card.King

	assert.Equal(t, []int{0, 1, 3}, v.Opponents())
	assert.Equal(t, card.Baron, v.Card(2))
	assert.Equal(t, card.King, v.Card(1))
	assert.Equal(t, card.Unknown, v.Card(3))
	assert.Equal(t, card.Unknown, v.Card(9))
}
