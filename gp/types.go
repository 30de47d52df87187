// Package gp implements typed expression trees for pursuit-evasion control
// policies: a closed catalog of literals, sensors, and operators, and the
// evaluation semantics that turn a tree plus a game state into a scalar
// action.
package gp

import "twocars/game"

// Type is the output type of a node. The type set is closed.
type Type uint8

const (
	Float Type = iota
	Bool
)

func (t Type) String() string {
	switch t {
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is the runtime value produced by evaluating a node: float64 for
// Float nodes, bool for Bool nodes.
type Value any

// Context carries the inputs sensors read during evaluation. Evaluation is
// a pure read; nothing in the context is mutated.
type Context struct {
	State game.GameState
}
