package gp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"twocars/game"
)

func testContext() *Context {
	pursuer := game.CarState{Speed: 2, TurningRate: 0.5, X: 0, Y: 0, Heading: 0}
	evader := game.CarState{Speed: 1, TurningRate: 0.25, X: 3, Y: 4, Heading: math.Pi / 2}
	return &Context{State: game.NewState(100, 1, pursuer, evader)}
}

func evalf(t *testing.T, expr string) float64 {
	t.Helper()
	return MustParse(expr).Evaluate(testContext()).(float64)
}

func TestArithmeticGuards(t *testing.T) {
	t.Run("invert of zero is +Inf", func(t *testing.T) {
		require.True(t, math.IsInf(evalf(t, "(invert (zero))"), 1))
	})
	t.Run("invert of nonzero is the reciprocal", func(t *testing.T) {
		require.InDelta(t, 0.25, evalf(t, "(invert 4)"), 1e-12)
	})
	t.Run("divide by zero is +Inf", func(t *testing.T) {
		require.True(t, math.IsInf(evalf(t, "(divide 7 (zero))"), 1))
		require.True(t, math.IsInf(evalf(t, "(divide -7 0)"), 1))
	})
	t.Run("square root of a negative is zero", func(t *testing.T) {
		require.Equal(t, 0.0, evalf(t, "(square_root -1)"))
	})
	t.Run("square root of a positive", func(t *testing.T) {
		require.Equal(t, 2.0, evalf(t, "(square_root 4)"))
	})
}

func TestFloatOperators(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"(negate 3)", -3},
		{"(sign -12)", -1},
		{"(sign 0)", 0},
		{"(sign 0.5)", 1},
		{"(absolute_value -2.5)", 2.5},
		{"(square -3)", 9},
		{"(add 2 3)", 5},
		{"(subtract 2 3)", -1},
		{"(multiply -2 3)", -6},
		{"(divide 7 2)", 3.5},
		{"(maximum 2 -3)", 2},
		{"(minimum 2 -3)", -3},
		{"(one)", 1},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			require.InDelta(t, c.want, evalf(t, c.expr), 1e-12)
		})
	}
}

func TestBoolOperators(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{"(bool_not true)", false},
		{"(bool_and true false)", false},
		{"(bool_and true true)", true},
		{"(bool_or false true)", true},
		{"(bool_or false false)", false},
		{"(bool_xor true true)", false},
		{"(bool_xor true false)", true},
		{"(greater_than 2 1)", true},
		{"(greater_than 1 1)", false},
		{"(less_than 1 2)", true},
		{"(less_than 2 2)", false},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			require.Equal(t, c.want, MustParse(c.expr).Evaluate(testContext()).(bool))
		})
	}
}

func TestIfElseShortCircuits(t *testing.T) {
	// A tripwire primitive records whether its subtree was evaluated.
	tripped := false
	tripwire := &Primitive{
		Name:    "tripwire",
		Returns: Float,
		run: func(_ []*Node, _ *Context) Value {
			tripped = true
			return -1.0
		},
	}

	t.Run("true condition skips the false branch", func(t *testing.T) {
		tripped = false
		tree := NewNode(IfElse, NewBool(true), NewFloat(5), NewNode(tripwire))
		require.Equal(t, 5.0, tree.Evaluate(testContext()))
		require.False(t, tripped, "the unselected branch must not be evaluated")
	})
	t.Run("false condition skips the true branch", func(t *testing.T) {
		tripped = false
		tree := NewNode(IfElse, NewBool(false), NewNode(tripwire), NewFloat(5))
		require.Equal(t, 5.0, tree.Evaluate(testContext()))
		require.False(t, tripped, "the unselected branch must not be evaluated")
	})
}

func TestSensors(t *testing.T) {
	ctx := testContext()

	cases := []struct {
		expr string
		want float64
	}{
		{"(pursuer_speed)", 2},
		{"(evader_speed)", 1},
		{"(pursuer_turning_radius)", 4},  // 2 / 0.5
		{"(evader_turning_radius)", 4},   // 1 / 0.25
		{"(distance_pursuer_evader)", 5}, // 3-4-5 triangle
		// Pursuer heading 0: the x projection picks out dy, the y
		// projection -dy.
		{"(distance_pursuer_evader_x)", 4},
		{"(distance_pursuer_evader_y)", -4},
		// Evader heading pi/2: right axis points along -x, the y
		// projection picks out dx.
		{"(distance_evader_pursuer_x)", 3},
		{"(distance_evader_pursuer_y)", -3},
		{"(time_remaining)", 100},
		{"(time_ratio_remaining)", 1},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			require.InDelta(t, c.want, MustParse(c.expr).Evaluate(ctx).(float64), 1e-12)
		})
	}
}

func TestTimeSensorsTrackTheClock(t *testing.T) {
	state := testContext().State
	state = state.Step(0).Step(0) // one full round
	ctx := &Context{State: state}

	require.InDelta(t, 99, MustParse("(time_remaining)").Evaluate(ctx).(float64), 1e-12)
	require.InDelta(t, 0.99, MustParse("(time_ratio_remaining)").Evaluate(ctx).(float64), 1e-12)
}

func TestLiteralsSampleOncePerNode(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	node := NewLiteralNode(FloatLiteral, rng)

	first := node.Evaluate(testContext()).(float64)
	second := node.Evaluate(testContext()).(float64)

	require.Equal(t, first, second, "literals resolve once per tree instance, not per call")
	require.GreaterOrEqual(t, first, -10.0)
	require.Less(t, first, 10.0)
}

func TestLiteralSamplingIsSeedable(t *testing.T) {
	a := NewLiteralNode(FloatLiteral, rand.New(rand.NewSource(11)))
	b := NewLiteralNode(FloatLiteral, rand.New(rand.NewSource(11)))
	require.Equal(t, a.Evaluate(testContext()), b.Evaluate(testContext()), "the same seed must reproduce the same literal")

	boolNode := NewLiteralNode(BoolLiteral, rand.New(rand.NewSource(11)))
	_, ok := boolNode.Evaluate(testContext()).(bool)
	require.True(t, ok, "bool literal must produce a bool value")
}

func TestEvaluationDoesNotMutateState(t *testing.T) {
	ctx := testContext()
	before := ctx.State

	for _, p := range Primitives() {
		if p.Arity() != 0 {
			continue
		}
		NewNode(p).Evaluate(ctx)
	}

	require.Equal(t, before, ctx.State, "sensors must be pure reads")
}

func TestCatalog(t *testing.T) {
	prim, ok := LookupPrimitive("if_else")
	require.True(t, ok)
	require.Equal(t, 3, prim.Arity())
	require.Equal(t, "if_else(bool, float, float) -> float", prim.Signature())

	for _, p := range PrimitivesByType(Bool) {
		require.Equal(t, Bool, p.Returns)
	}
	require.NotEmpty(t, PrimitivesByType(Float))

	_, ok = LookupLiteral("float_literal")
	require.True(t, ok)
}

func TestNodeSizeAndString(t *testing.T) {
	tree := MustParse("(add (one) (negate 2))")
	require.Equal(t, 4, tree.Size())
	require.Equal(t, "(add (one) (negate 2))", tree.String())
}
