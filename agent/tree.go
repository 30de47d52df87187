package agent

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"twocars/game"
	"twocars/gp"
)

// TreeAgent evaluates a policy expression tree against the current state.
type TreeAgent struct {
	tree *gp.Node
}

// NewTreeAgent wraps a policy tree. The root must produce a float, since the
// result is used as a turn action.
func NewTreeAgent(tree *gp.Node) (*TreeAgent, error) {
	if tree.Type() != gp.Float {
		return nil, fmt.Errorf("policy tree must return %s, got %s", gp.Float, tree.Type())
	}
	return &TreeAgent{tree: tree}, nil
}

// Tree returns the wrapped policy tree.
func (a *TreeAgent) Tree() *gp.Node {
	return a.tree
}

// PerformAction evaluates the tree and clamps the result to [-1, 1]. An
// evaluation failure (a type-violating tree) is logged and replaced with the
// neutral action rather than ending the episode.
func (a *TreeAgent) PerformAction(state game.GameState) (action float64) {
	defer func() {
		if cause := recover(); cause != nil {
			log.Warn().Interface("cause", cause).Msg("tree evaluation failed, falling back to neutral action")
			action = 0.0
		}
	}()
	value := a.tree.Evaluate(&gp.Context{State: state}).(float64)
	return Clamp(value)
}
