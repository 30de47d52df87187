// Package searcher provides a playout-based baseline policy: it scores each
// canonical turn input by playing the game forward and keeps the one with
// the best average payoff for the acting player.
package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"twocars/game"
)

// DefaultHorizon bounds a playout to this many main steps when the game has
// not terminated on its own.
const DefaultHorizon = 50

// Policy supplies actions during playouts, for both players.
type Policy func(state game.GameState) float64

// StraightPlayout holds the neutral action, giving fully deterministic
// playouts.
func StraightPlayout(game.GameState) float64 {
	return 0
}

// RandomPlayout draws uniformly from the canonical action set using a
// seeded source.
func RandomPlayout(seed uint64) Policy {
	rng := rand.New(rand.NewSource(seed))
	return func(game.GameState) float64 {
		return game.Actions[rng.Intn(len(game.Actions))]
	}
}

type Option func(*Rollout)

// WithHorizon caps each playout at the given number of main steps.
func WithHorizon(rounds int) Option {
	return func(r *Rollout) {
		if rounds > 0 {
			r.horizon = rounds
		}
	}
}

// WithPlayouts sets how many playouts each candidate action is averaged
// over. More than one is only useful with a randomized playout policy.
func WithPlayouts(playouts int) Option {
	return func(r *Rollout) {
		if playouts > 0 {
			r.playouts = playouts
		}
	}
}

// WithPlayout sets the policy both players follow during playouts.
func WithPlayout(policy Policy) Option {
	return func(r *Rollout) {
		if policy != nil {
			r.playout = policy
		}
	}
}

// Rollout is a baseline agent choosing among the canonical actions by
// playout scores.
type Rollout struct {
	horizon  int
	playouts int
	playout  Policy
}

func NewRollout(options ...Option) *Rollout {
	r := &Rollout{
		horizon:  DefaultHorizon,
		playouts: 1,
		playout:  StraightPlayout,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// FindNextAction scores every canonical action for the player to act and
// returns the best one. Ties keep the earliest candidate.
func (r *Rollout) FindNextAction(state game.GameState) float64 {
	player := state.CurrentPlayer()
	best := game.Actions[0]
	bestScore := math.Inf(-1)
	for _, candidate := range game.Actions {
		total := 0.0
		for i := 0; i < r.playouts; i++ {
			total += r.simulate(state, candidate, player)
		}
		score := total / float64(r.playouts)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best
}

// PerformAction makes Rollout usable wherever a policy agent is expected.
func (r *Rollout) PerformAction(state game.GameState) float64 {
	return r.FindNextAction(state)
}

// simulate plays candidate now, then follows the playout policy for both
// players until the game ends or the horizon runs out. A playout cut off at
// the horizon scores the non-terminal payoff of zero.
func (r *Rollout) simulate(state game.GameState, candidate float64, player int) float64 {
	s := state.Step(candidate)
	rounds := 0
	for !s.IsTerminal() && rounds < r.horizon {
		mainStep := s.CurrentPlayer() == game.Evader
		s = s.Step(r.playout(s))
		if mainStep {
			rounds++
		}
	}
	return s.Payoff(player)
}
