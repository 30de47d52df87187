package game

import "math"

// CarState describes one vehicle. Speed and TurningRate are fixed at
// construction; only position and heading evolve.
type CarState struct {
	// Speed is the constant distance covered per timestep.
	Speed float64
	// TurningRate is the maximum heading change in radians per timestep.
	TurningRate float64

	X float64
	Y float64
	// Heading in radians. 0 points along +x, increasing counterclockwise.
	Heading float64
}

// TurnRateFromTurnRadius converts a turn radius to a per-timestep turning
// rate. A zero radius is a configuration error and surfaces as +Inf.
func TurnRateFromTurnRadius(speed, turnRadius float64) float64 {
	return speed / turnRadius
}

// advance turns the car by action*TurningRate, then moves one timestep along
// the new heading. The turn is applied before the displacement.
func (c CarState) advance(action float64) CarState {
	heading := c.Heading + c.TurningRate*action
	return CarState{
		Speed:       c.Speed,
		TurningRate: c.TurningRate,
		X:           c.X + c.Speed*math.Cos(heading),
		Y:           c.Y + c.Speed*math.Sin(heading),
		Heading:     heading,
	}
}
