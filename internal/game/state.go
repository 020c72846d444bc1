package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/loveletterbots/internal/card"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

var (
	ErrRoundOver   = errors.New("round is over")
	ErrGameOver    = errors.New("game is over")
	ErrNotDrawn    = errors.New("no card drawn this turn")
	ErrAlreadyDrew = errors.New("card already drawn this turn")

	// ErrNoLegalAction is returned when no legal action exists for a turn.
	ErrNoLegalAction = errors.New("no legal action")
)

// TokensToWin returns the number of tokens of affection that ends a game with
// numPlayers players.
func TokensToWin(numPlayers int) int {
	switch numPlayers {
	case 2:
		return 7
	case 3:
		return 5
	default:
		return 4
	}
}

// State is the authoritative state of a game: the current round plus the
// token tally across rounds. It is not safe for concurrent use.
type State struct {
	numPlayers int
	rng        *rand.Rand

	round   int
	starter int
	turn    int
	deck    *card.Deck
	dealt   []card.Card
	burnt   card.Card
	drawn   card.Card

	hands      []card.Card
	eliminated []bool
	protected  []bool
	discards   [][]card.Card
	known      [][]card.Card // known[viewer][seat]

	tokens       []int
	roundWinners []int
	roundActive  bool
}

// NewState creates a game for numPlayers seats. Call StartRound to deal.
func NewState(numPlayers int, rng *rand.Rand) (*State, error) {
	if numPlayers < MinPlayers || numPlayers > MaxPlayers {
		return nil, fmt.Errorf("need %d-%d players, got %d", MinPlayers, MaxPlayers, numPlayers)
	}
	return &State{
		numPlayers: numPlayers,
		rng:        rng,
		tokens:     make([]int, numPlayers),
	}, nil
}

// StartRound shuffles a fresh deck and deals a new round.
func (s *State) StartRound() error {
	return s.StartRoundWithDeck(card.NewDeck(s.rng))
}

// StartRoundWithDeck deals a new round from the given deck. The first card is
// burnt, then each seat receives one card starting with the seat that opens
// the round. The winner of the previous round opens the next one.
func (s *State) StartRoundWithDeck(d *card.Deck) error {
	if s.GameOver() {
		return ErrGameOver
	}
	if d.Len() < s.numPlayers+2 {
		return fmt.Errorf("deck has %d cards, need at least %d", d.Len(), s.numPlayers+2)
	}

	n := s.numPlayers
	s.round++
	s.deck = d
	s.drawn = card.Unknown
	s.hands = make([]card.Card, n)
	s.eliminated = make([]bool, n)
	s.protected = make([]bool, n)
	s.discards = make([][]card.Card, n)
	s.known = make([][]card.Card, n)
	for i := range s.known {
		s.known[i] = make([]card.Card, n)
	}
	if len(s.roundWinners) > 0 {
		s.starter = s.roundWinners[0]
	}
	s.roundWinners = nil
	s.turn = s.starter
	s.dealt = d.Remaining()

	s.burnt, _ = d.Draw()
	for i := range n {
		s.hands[(s.starter+i)%n], _ = d.Draw()
	}
	s.roundActive = true
	return nil
}

// Draw deals the acting player their second card. Handmaid protection from
// the player's previous turn ends here.
func (s *State) Draw() (card.Card, error) {
	if s.RoundOver() {
		return card.Unknown, ErrRoundOver
	}
	if s.drawn != card.Unknown {
		return card.Unknown, ErrAlreadyDrew
	}
	c, ok := s.deck.Draw()
	if !ok {
		return card.Unknown, ErrRoundOver
	}
	s.protected[s.turn] = false
	s.drawn = c
	return c, nil
}

// Apply validates and resolves act for the acting player, then passes the
// turn. When the round ends, tokens are awarded to the round winners.
func (s *State) Apply(act Action) error {
	if s.RoundOver() {
		return ErrRoundOver
	}
	if s.drawn == card.Unknown {
		return ErrNotDrawn
	}
	if err := s.View(s.turn).Legal(act, s.drawn); err != nil {
		return err
	}

	p := act.Player()
	if act.Card() != s.drawn {
		s.hands[p] = s.drawn
	}
	s.drawn = card.Unknown
	s.discards[p] = append(s.discards[p], act.Card())
	for v := range s.known {
		if s.known[v][p] == act.Card() {
			s.known[v][p] = card.Unknown
		}
	}

	s.resolve(act)
	s.forgetStale()
	s.advance(p)
	return nil
}

func (s *State) resolve(act Action) {
	p, t := act.Player(), act.Target()

	// Targeting a protected player or yourself with anything other than a
	// Prince only happens when nothing else is legal, and does nothing.
	if act.HasTarget() && (s.protected[t] || (t == p && act.Card() != card.Prince)) {
		return
	}

	switch act.Card() {
	case card.Guard:
		if s.hands[t] == act.Guess() {
			s.eliminate(t)
		}
	case card.Priest:
		s.known[p][t] = s.hands[t]
	case card.Baron:
		s.known[p][t] = s.hands[t]
		s.known[t][p] = s.hands[p]
		switch mine, theirs := s.hands[p].Value(), s.hands[t].Value(); {
		case mine > theirs:
			s.eliminate(t)
		case theirs > mine:
			s.eliminate(p)
		}
	case card.Handmaid:
		s.protected[p] = true
	case card.Prince:
		discarded := s.hands[t]
		s.discards[t] = append(s.discards[t], discarded)
		s.hands[t] = card.Unknown
		for v := range s.known {
			s.known[v][t] = card.Unknown
		}
		if discarded == card.Princess {
			s.eliminate(t)
			return
		}
		if c, ok := s.deck.Draw(); ok {
			s.hands[t] = c
		} else {
			s.hands[t] = s.burnt
			s.burnt = card.Unknown
		}
	case card.King:
		s.hands[p], s.hands[t] = s.hands[t], s.hands[p]
		for v := range s.known {
			s.known[v][p], s.known[v][t] = s.known[v][t], s.known[v][p]
		}
		s.known[p][t] = s.hands[t]
		s.known[t][p] = s.hands[p]
	case card.Princess:
		s.eliminate(p)
	}
}

// eliminate knocks seat out of the round, discarding any card still held.
func (s *State) eliminate(seat int) {
	if s.eliminated[seat] {
		return
	}
	s.eliminated[seat] = true
	s.protected[seat] = false
	if s.hands[seat] != card.Unknown {
		s.discards[seat] = append(s.discards[seat], s.hands[seat])
		s.hands[seat] = card.Unknown
	}
}

// forgetStale drops knowledge that no longer matches the card held.
func (s *State) forgetStale() {
	for v := range s.known {
		s.known[v][v] = card.Unknown
		for seat, c := range s.known[v] {
			if c != card.Unknown && c != s.hands[seat] {
				s.known[v][seat] = card.Unknown
			}
		}
	}
}

func (s *State) advance(from int) {
	if s.liveCount() <= 1 || s.deck.Len() == 0 {
		s.finishRound()
		return
	}
	for i := 1; i <= s.numPlayers; i++ {
		next := (from + i) % s.numPlayers
		if !s.eliminated[next] {
			s.turn = next
			return
		}
	}
}

func (s *State) finishRound() {
	s.roundActive = false
	s.roundWinners = s.computeRoundWinners()
	for _, w := range s.roundWinners {
		s.tokens[w]++
	}
}

// computeRoundWinners picks the live seats with the highest card, breaking
// ties on the total value of discards. Seats still tied all win.
func (s *State) computeRoundWinners() []int {
	var winners []int
	bestCard, bestDiscard := -1, -1
	for seat := range s.numPlayers {
		if s.eliminated[seat] {
			continue
		}
		v, d := s.hands[seat].Value(), s.DiscardTotal(seat)
		switch {
		case v > bestCard || (v == bestCard && d > bestDiscard):
			winners = []int{seat}
			bestCard, bestDiscard = v, d
		case v == bestCard && d == bestDiscard:
			winners = append(winners, seat)
		}
	}
	return winners
}

func (s *State) liveCount() int {
	n := 0
	for _, e := range s.eliminated {
		if !e {
			n++
		}
	}
	return n
}

// RoundOver reports whether the current round has finished or not started.
func (s *State) RoundOver() bool {
	return !s.roundActive
}

// RoundWinners returns the winners of the most recently finished round.
func (s *State) RoundWinners() []int {
	return slices.Clone(s.roundWinners)
}

// GameOver reports whether any seat has reached the token target.
func (s *State) GameOver() bool {
	target := TokensToWin(s.numPlayers)
	return slices.ContainsFunc(s.tokens, func(t int) bool { return t >= target })
}

// Winners returns the seats holding the most tokens once the game is over.
func (s *State) Winners() []int {
	if !s.GameOver() {
		return nil
	}
	best := slices.Max(s.tokens)
	var winners []int
	for seat, t := range s.tokens {
		if t == best {
			winners = append(winners, seat)
		}
	}
	return winners
}

func (s *State) NumPlayers() int    { return s.numPlayers }
func (s *State) Round() int         { return s.round }
func (s *State) Turn() int          { return s.turn }
func (s *State) Drawn() card.Card   { return s.drawn }
func (s *State) Burnt() card.Card   { return s.burnt }

// Dealt returns the round's deck in deal order: burnt card, opening hands from
// the opener, then draws. Feeding it to card.NewDeckFromCards replays the deal.
func (s *State) Dealt() []card.Card { return slices.Clone(s.dealt) }
func (s *State) Tokens() []int      { return slices.Clone(s.tokens) }
func (s *State) Score(seat int) int { return s.tokens[seat] }

// Hand returns the card held by seat. It is omniscient and meant for
// recording and replay, not for agents.
func (s *State) Hand(seat int) card.Card { return s.hands[seat] }

// Hands returns a copy of every held card.
func (s *State) Hands() []card.Card { return slices.Clone(s.hands) }

func (s *State) Eliminated(seat int) bool { return s.eliminated[seat] }

// DiscardTotal sums the values of the cards seat has discarded this round.
func (s *State) DiscardTotal(seat int) int {
	total := 0
	for _, c := range s.discards[seat] {
		total += c.Value()
	}
	return total
}

// View returns what seat can see of the current round.
func (s *State) View(seat int) View {
	known := slices.Clone(s.known[seat])
	known[seat] = card.Unknown

	discards := make([][]card.Card, s.numPlayers)
	for i, d := range s.discards {
		discards[i] = slices.Clone(d)
	}

	return View{
		NumPlayers: s.numPlayers,
		Seat:       seat,
		Turn:       s.turn,
		Round:      s.round,
		DeckSize:   s.deck.Len(),
		Hand:       s.hands[seat],
		Known:      known,
		Eliminated: slices.Clone(s.eliminated),
		Protected:  slices.Clone(s.protected),
		Discards:   discards,
		Tokens:     slices.Clone(s.tokens),
	}
}
