// Package engine runs an authoritative local UNO game: it owns the real
// deck, every hand and the discard pile, and drives one planning seat
// (player 0) against bot opponents. The planner only ever sees the
// snapshot the engine hands it, never the hidden state.
package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"uno/game"
	"uno/planner"
	"uno/searcher"
)

// MaxTurns bounds a game so a pathological loop cannot run forever.
const MaxTurns = 500

// DecisionRecord captures the search metrics behind one planning-seat
// decision.
type DecisionRecord struct {
	Turn    int
	Metrics searcher.SearchMetrics
}

// Result summarizes one finished game.
type Result struct {
	Winner     int // seat index, -1 when the turn cap hit
	Turns      int
	FinalScore int // points from the losers' remaining hands
	Decisions  []DecisionRecord
}

// Engine holds the full hidden game state.
type Engine struct {
	planner *planner.Planner
	bots    []Bot // one per opponent seat
	rng     *rand.Rand

	deck    []game.Card
	discard []game.Card
	hands   [][]game.Card

	color   game.Color
	dir     int
	current int
	skip    bool
	sumPlus int
	uno     bool

	decisions []DecisionRecord
}

// NewLocal deals a fresh game for one planner and len(bots) opponents:
// seven cards per seat and a non-Draw-Four top card flipped to start.
func NewLocal(p *planner.Planner, bots []Bot, rng *rand.Rand) (*Engine, error) {
	if len(bots) < 1 {
		return nil, fmt.Errorf("need at least one opponent")
	}

	e := &Engine{
		planner: p,
		bots:    bots,
		rng:     rng,
		dir:     1,
	}

	e.deck = game.Deck()
	rng.Shuffle(len(e.deck), func(i, j int) {
		e.deck[i], e.deck[j] = e.deck[j], e.deck[i]
	})

	players := len(bots) + 1
	e.hands = make([][]game.Card, players)
	for i := range e.hands {
		e.hands[i] = e.drawFromDeck(7)
	}

	// The discard pile cannot start with a Draw Four.
	for {
		top := e.drawFromDeck(1)[0]
		if top.Type != game.DrawFour {
			e.discard = append(e.discard, top)
			break
		}
		e.deck = append(e.deck, top)
		rng.Shuffle(len(e.deck), func(i, j int) {
			e.deck[i], e.deck[j] = e.deck[j], e.deck[i]
		})
	}

	top := e.discard[len(e.discard)-1]
	if top.Color == game.Wild {
		e.color = game.Colors[rng.Intn(len(game.Colors))]
	} else {
		e.color = top.Color
	}

	return e, nil
}

// Run plays the game to completion and returns the result. The planning
// seat consults the planner every turn and reports each applied step
// back through Observe, for every seat's action.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	for turn := 1; turn <= MaxTurns; turn++ {
		if winner := e.winner(); winner >= 0 {
			score := 0
			for i, hand := range e.hands {
				if i != winner {
					score += game.HandScore(hand)
				}
			}
			log.Info().Int("winner", winner).Int("turns", turn-1).Int("score", score).
				Msg("game over")
			return Result{Winner: winner, Turns: turn - 1, FinalScore: score, Decisions: e.decisions}, nil
		}

		e.absorbForcedDraws()

		var err error
		if e.current == 0 {
			err = e.planTurn(ctx, turn)
		} else {
			err = e.botTurn()
		}
		if err != nil {
			return Result{}, err
		}
	}

	log.Warn().Int("max_turns", MaxTurns).Msg("turn cap reached without a winner")
	return Result{Winner: -1, Turns: MaxTurns, Decisions: e.decisions}, nil
}

// planTurn asks the planner for an action and applies it; when the
// search has no recommendation the seat falls back to drawing. Every
// consultation is recorded, fallbacks included.
func (e *Engine) planTurn(ctx context.Context, turn int) error {
	before := e.snapshot()

	action, ok, metrics, err := e.planner.Decide(ctx, before)
	if err != nil {
		return fmt.Errorf("planner decision: %w", err)
	}
	e.decisions = append(e.decisions, DecisionRecord{Turn: turn, Metrics: metrics})
	if !ok || action.Kind == game.Draw {
		return e.applyDraw(0, before)
	}

	switch action.Kind {
	case game.PlayCard:
		idx, found := planner.HandIndex(before, action)
		if !found {
			return fmt.Errorf("planner chose %s which is not in hand", action)
		}
		return e.applyPlay(0, idx, before)
	case game.DeclareUno:
		e.uno = true
		after := e.snapshot()
		return e.planner.Observe(before, after, action, 0, game.NoDrawer)
	default:
		// Color choices and standalone effects are folded into plays;
		// anything else falls back to a draw.
		return e.applyDraw(0, before)
	}
}

func (e *Engine) botTurn() error {
	before := e.snapshot()
	seat := e.current

	pick := e.bots[seat-1].PickCard(e.hands[seat], e.tableView())
	if pick < 0 {
		return e.applyDraw(seat, before)
	}
	return e.applyPlay(seat, pick, before)
}

// applyPlay discards hand card idx for seat, resolves the card's effect
// on the real table, and reports the observation to the planner.
func (e *Engine) applyPlay(seat, idx int, before planner.Snapshot) error {
	card := e.hands[seat][idx]
	e.hands[seat] = append(e.hands[seat][:idx], e.hands[seat][idx+1:]...)
	e.discard = append(e.discard, card)

	players := len(e.hands)
	e.skip = false
	switch card.Type {
	case game.Skip:
		e.skip = true
	case game.Reverse:
		e.dir = -e.dir
		if players == 2 {
			e.skip = true
		}
	case game.DrawTwo:
		e.sumPlus += 2
	case game.DrawFour:
		e.sumPlus += 4
	}

	if card.Color == game.Wild {
		e.color = game.PreferredColor(e.hands[seat])
	} else {
		e.color = card.Color
	}

	steps := 1
	if e.skip {
		steps = 2
	}
	for i := 0; i < steps; i++ {
		e.current = game.NextPlayer(e.current, e.dir, players)
	}

	log.Debug().Int("seat", seat).Stringer("card", card).Msg("played")

	after := e.snapshot()
	return e.planner.Observe(before, after, game.Play(card), seat, game.NoDrawer)
}

// applyDraw gives seat one card off the deck (reshuffling the discards
// under the top card when the deck empties) and ends the turn.
func (e *Engine) applyDraw(seat int, before planner.Snapshot) error {
	e.hands[seat] = append(e.hands[seat], e.drawFromDeck(1)...)
	e.current = game.NextPlayer(e.current, e.dir, len(e.hands))

	after := e.snapshot()
	return e.planner.Observe(before, after, game.DrawAction(game.Unknown), seat, seat)
}

// absorbForcedDraws makes the player about to act swallow any pending
// Draw Two / Draw Four penalty before taking their turn.
func (e *Engine) absorbForcedDraws() {
	if e.sumPlus == 0 {
		return
	}
	n := e.sumPlus
	e.sumPlus = 0
	e.hands[e.current] = append(e.hands[e.current], e.drawFromDeck(n)...)
	log.Debug().Int("seat", e.current).Int("cards", n).Msg("absorbed forced draws")
}

func (e *Engine) drawFromDeck(n int) []game.Card {
	drawn := make([]game.Card, 0, n)
	for len(drawn) < n {
		if len(e.deck) == 0 {
			if len(e.discard) <= 1 {
				break // nothing left anywhere; the game stalls out at the turn cap
			}
			top := e.discard[len(e.discard)-1]
			e.deck = append(e.deck, e.discard[:len(e.discard)-1]...)
			e.discard = []game.Card{top}
			e.rng.Shuffle(len(e.deck), func(i, j int) {
				e.deck[i], e.deck[j] = e.deck[j], e.deck[i]
			})
		}
		drawn = append(drawn, e.deck[len(e.deck)-1])
		e.deck = e.deck[:len(e.deck)-1]
	}
	return drawn
}

func (e *Engine) winner() int {
	for i, hand := range e.hands {
		if len(hand) == 0 {
			return i
		}
	}
	return -1
}

// snapshot is the planning seat's view of the table.
func (e *Engine) snapshot() planner.Snapshot {
	hand := make([]string, len(e.hands[0]))
	for i, c := range e.hands[0] {
		hand[i] = c.String()
	}
	counts := make([]int, 0, len(e.hands)-1)
	for i := 1; i < len(e.hands); i++ {
		counts = append(counts, len(e.hands[i]))
	}

	return planner.Snapshot{
		Hand:           hand,
		OpponentCounts: counts,
		TopCard:        e.discard[len(e.discard)-1].String(),
		ActiveColor:    e.color.String(),
		Clockwise:      e.dir == 1,
		SkipPending:    e.skip,
		ForcedDraws:    e.sumPlus,
		UnoDeclared:    e.uno,
		CurrentPlayer:  e.current,
		Players:        len(e.hands),
	}
}

// tableView is the public table state a bot is allowed to see.
func (e *Engine) tableView() game.State {
	return game.State{
		Color:   e.color,
		Dir:     e.dir,
		Top:     e.discard[len(e.discard)-1],
		SumPlus: e.sumPlus,
		Current: e.current,
		Players: len(e.hands),
	}
}
