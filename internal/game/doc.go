// Package game implements the rules of Love Letter.
//
// State is the authoritative game: it deals rounds, resolves card effects,
// tracks who has seen which card, and awards tokens of affection until a seat
// reaches the target for the table size. Agents never see State directly;
// they receive per-seat View snapshots, and View.Legal is the rules oracle
// they can consult before committing to an action.
//
// # Basic Usage
//
//	m, err := game.NewMatch(id, []game.Agent{a, b, c}, randutil.New(42), logger)
//	if err != nil {
//	    return err
//	}
//	result, err := m.Play(ctx)
//
// Match re-validates every action an agent returns. A rejected action is
// replaced by a uniformly random legal one and counted in
// MatchResult.Substitutions.
//
// # Deterministic Testing
//
// Rounds can be scripted with StartRoundWithDeck and card.NewDeckFromCards,
// which deal the burnt card first, then one card per seat from the opener.
package game
