package engine

import "twocars/game"

// TwoCars instantiates the driver for the pursuit-evasion game. Agent index
// game.Pursuer acts on pursuer half-steps and game.Evader on main steps.
func TwoCars(initial game.GameState) Game[game.GameState] {
	return Game[game.GameState]{
		Initial:       initial,
		Step:          game.GameState.Step,
		CurrentPlayer: game.GameState.CurrentPlayer,
		IsTerminal:    game.GameState.IsTerminal,
		Payoff:        game.GameState.Payoff,
	}
}
