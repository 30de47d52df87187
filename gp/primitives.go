package gp

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

// Primitive describes one entry of the operator/sensor catalog: its result
// type, the exact types of its input slots, and its evaluation rule.
// Zero-arity primitives are sensors or constants.
//
// Evaluation rules apply only the domain guards documented per primitive
// (division by zero, negative square roots); they perform no type checking
// on children. Type-correct construction is the caller's contract.
type Primitive struct {
	Name    string
	Returns Type
	Inputs  []Type

	run func(args []*Node, ctx *Context) Value
}

// Arity is the number of child subtrees the primitive requires.
func (p *Primitive) Arity() int {
	return len(p.Inputs)
}

// Signature renders the primitive as "name(float, float) -> float".
func (p *Primitive) Signature() string {
	inputs := ""
	for i, in := range p.Inputs {
		if i > 0 {
			inputs += ", "
		}
		inputs += in.String()
	}
	return fmt.Sprintf("%s(%s) -> %s", p.Name, inputs, p.Returns)
}

// Literal describes a literal generator. Generators are sampled once, when a
// node is constructed, and never again at evaluation time.
type Literal struct {
	Name    string
	Returns Type

	sample func(rng *rand.Rand) Value
}

var (
	primitiveIndex = map[string]*Primitive{}
	literalIndex   = map[string]*Literal{}
)

func primitive(name string, returns Type, inputs []Type, run func(args []*Node, ctx *Context) Value) *Primitive {
	if _, exists := primitiveIndex[name]; exists {
		panic("duplicate primitive: " + name)
	}
	p := &Primitive{Name: name, Returns: returns, Inputs: inputs, run: run}
	primitiveIndex[name] = p
	return p
}

func literal(name string, returns Type, sample func(rng *rand.Rand) Value) *Literal {
	if _, exists := literalIndex[name]; exists {
		panic("duplicate literal: " + name)
	}
	l := &Literal{Name: name, Returns: returns, sample: sample}
	literalIndex[name] = l
	return l
}

// LookupPrimitive resolves a catalog entry by name.
func LookupPrimitive(name string) (*Primitive, bool) {
	p, ok := primitiveIndex[name]
	return p, ok
}

// LookupLiteral resolves a literal generator by name.
func LookupLiteral(name string) (*Literal, bool) {
	l, ok := literalIndex[name]
	return l, ok
}

// Primitives returns the full catalog sorted by name.
func Primitives() []*Primitive {
	all := make([]*Primitive, 0, len(primitiveIndex))
	for _, p := range primitiveIndex {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// PrimitivesByType returns the catalog entries with the given result type,
// sorted by name. Tree-construction code uses this to pick type-correct
// candidates.
func PrimitivesByType(t Type) []*Primitive {
	var matching []*Primitive
	for _, p := range Primitives() {
		if p.Returns == t {
			matching = append(matching, p)
		}
	}
	return matching
}

func evalFloat(n *Node, ctx *Context) float64 {
	return n.Evaluate(ctx).(float64)
}

func evalBool(n *Node, ctx *Context) bool {
	return n.Evaluate(ctx).(bool)
}

var (
	floatInputs1 = []Type{Float}
	floatInputs2 = []Type{Float, Float}
	boolInputs1  = []Type{Bool}
	boolInputs2  = []Type{Bool, Bool}
)

// Literal generators. The float literal draws uniformly from [-10, 10); the
// bool literal is a fair coin.
var (
	FloatLiteral = literal("float_literal", Float, func(rng *rand.Rand) Value {
		return rng.Float64()*20 - 10
	})
	BoolLiteral = literal("bool_literal", Bool, func(rng *rand.Rand) Value {
		return rng.Float64() < 0.5
	})
)

// Constants.
var (
	Zero = primitive("zero", Float, nil, func(_ []*Node, _ *Context) Value {
		return 0.0
	})
	One = primitive("one", Float, nil, func(_ []*Node, _ *Context) Value {
		return 1.0
	})
)

// Sensors read scalar features of the current game state.
var (
	PursuerSpeed = primitive("pursuer_speed", Float, nil, func(_ []*Node, ctx *Context) Value {
		return ctx.State.Pursuer.Speed
	})
	EvaderSpeed = primitive("evader_speed", Float, nil, func(_ []*Node, ctx *Context) Value {
		return ctx.State.Evader.Speed
	})
	PursuerTurningRadius = primitive("pursuer_turning_radius", Float, nil, func(_ []*Node, ctx *Context) Value {
		return ctx.State.Pursuer.Speed / ctx.State.Pursuer.TurningRate
	})
	EvaderTurningRadius = primitive("evader_turning_radius", Float, nil, func(_ []*Node, ctx *Context) Value {
		return ctx.State.Evader.Speed / ctx.State.Evader.TurningRate
	})
	DistancePursuerEvader = primitive("distance_pursuer_evader", Float, nil, func(_ []*Node, ctx *Context) Value {
		return ctx.State.Distance()
	})

	// The four projection sensors express the opponent's offset in the ego
	// car's heading-aligned frame: the x variant projects onto the axis a
	// quarter turn left of the heading, the y variant onto the heading axis
	// mirrored. Both perspectives are provided.
	DistancePursuerEvaderX = primitive("distance_pursuer_evader_x", Float, nil, func(_ []*Node, ctx *Context) Value {
		pursuer, evader := ctx.State.Pursuer, ctx.State.Evader
		right := pursuer.Heading + math.Pi/2
		return (evader.X-pursuer.X)*math.Cos(right) + (evader.Y-pursuer.Y)*math.Sin(right)
	})
	DistancePursuerEvaderY = primitive("distance_pursuer_evader_y", Float, nil, func(_ []*Node, ctx *Context) Value {
		pursuer, evader := ctx.State.Pursuer, ctx.State.Evader
		return (evader.X-pursuer.X)*math.Sin(pursuer.Heading) - (evader.Y-pursuer.Y)*math.Cos(pursuer.Heading)
	})
	DistanceEvaderPursuerX = primitive("distance_evader_pursuer_x", Float, nil, func(_ []*Node, ctx *Context) Value {
		pursuer, evader := ctx.State.Pursuer, ctx.State.Evader
		right := evader.Heading + math.Pi/2
		return (pursuer.X-evader.X)*math.Cos(right) + (pursuer.Y-evader.Y)*math.Sin(right)
	})
	DistanceEvaderPursuerY = primitive("distance_evader_pursuer_y", Float, nil, func(_ []*Node, ctx *Context) Value {
		pursuer, evader := ctx.State.Pursuer, ctx.State.Evader
		return (pursuer.X-evader.X)*math.Sin(evader.Heading) - (pursuer.Y-evader.Y)*math.Cos(evader.Heading)
	})

	TimeRemaining = primitive("time_remaining", Float, nil, func(_ []*Node, ctx *Context) Value {
		return float64(ctx.State.TurnsRemaining)
	})
	TimeRatioRemaining = primitive("time_ratio_remaining", Float, nil, func(_ []*Node, ctx *Context) Value {
		return float64(ctx.State.TurnsRemaining) / float64(ctx.State.TotalTurns)
	})
)

// Unary float operators.
var (
	Negate = primitive("negate", Float, floatInputs1, func(args []*Node, ctx *Context) Value {
		return -evalFloat(args[0], ctx)
	})
	// Invert returns +Inf for a zero operand instead of failing.
	Invert = primitive("invert", Float, floatInputs1, func(args []*Node, ctx *Context) Value {
		value := evalFloat(args[0], ctx)
		if value == 0 {
			return math.Inf(1)
		}
		return 1 / value
	})
	Sign = primitive("sign", Float, floatInputs1, func(args []*Node, ctx *Context) Value {
		value := evalFloat(args[0], ctx)
		switch {
		case value > 0:
			return 1.0
		case value < 0:
			return -1.0
		default:
			return 0.0
		}
	})
	AbsoluteValue = primitive("absolute_value", Float, floatInputs1, func(args []*Node, ctx *Context) Value {
		return math.Abs(evalFloat(args[0], ctx))
	})
	Square = primitive("square", Float, floatInputs1, func(args []*Node, ctx *Context) Value {
		value := evalFloat(args[0], ctx)
		return value * value
	})
	// SquareRoot returns 0 for negative operands instead of failing.
	SquareRoot = primitive("square_root", Float, floatInputs1, func(args []*Node, ctx *Context) Value {
		value := evalFloat(args[0], ctx)
		if value < 0 {
			return 0.0
		}
		return math.Sqrt(value)
	})
)

// Binary float operators.
var (
	Add = primitive("add", Float, floatInputs2, func(args []*Node, ctx *Context) Value {
		return evalFloat(args[0], ctx) + evalFloat(args[1], ctx)
	})
	Subtract = primitive("subtract", Float, floatInputs2, func(args []*Node, ctx *Context) Value {
		return evalFloat(args[0], ctx) - evalFloat(args[1], ctx)
	})
	Multiply = primitive("multiply", Float, floatInputs2, func(args []*Node, ctx *Context) Value {
		return evalFloat(args[0], ctx) * evalFloat(args[1], ctx)
	})
	// Divide returns +Inf for a zero divisor instead of failing.
	Divide = primitive("divide", Float, floatInputs2, func(args []*Node, ctx *Context) Value {
		left := evalFloat(args[0], ctx)
		right := evalFloat(args[1], ctx)
		if right == 0 {
			return math.Inf(1)
		}
		return left / right
	})
	Maximum = primitive("maximum", Float, floatInputs2, func(args []*Node, ctx *Context) Value {
		return math.Max(evalFloat(args[0], ctx), evalFloat(args[1], ctx))
	})
	Minimum = primitive("minimum", Float, floatInputs2, func(args []*Node, ctx *Context) Value {
		return math.Min(evalFloat(args[0], ctx), evalFloat(args[1], ctx))
	})
)

// Boolean logic and comparisons.
var (
	BoolNot = primitive("bool_not", Bool, boolInputs1, func(args []*Node, ctx *Context) Value {
		return !evalBool(args[0], ctx)
	})
	BoolAnd = primitive("bool_and", Bool, boolInputs2, func(args []*Node, ctx *Context) Value {
		left := evalBool(args[0], ctx)
		right := evalBool(args[1], ctx)
		return left && right
	})
	BoolOr = primitive("bool_or", Bool, boolInputs2, func(args []*Node, ctx *Context) Value {
		left := evalBool(args[0], ctx)
		right := evalBool(args[1], ctx)
		return left || right
	})
	BoolXor = primitive("bool_xor", Bool, boolInputs2, func(args []*Node, ctx *Context) Value {
		return evalBool(args[0], ctx) != evalBool(args[1], ctx)
	})
	GreaterThan = primitive("greater_than", Bool, floatInputs2, func(args []*Node, ctx *Context) Value {
		return evalFloat(args[0], ctx) > evalFloat(args[1], ctx)
	})
	LessThan = primitive("less_than", Bool, floatInputs2, func(args []*Node, ctx *Context) Value {
		return evalFloat(args[0], ctx) < evalFloat(args[1], ctx)
	})
)

// IfElse evaluates the condition, then only the selected branch subtree.
var IfElse = primitive("if_else", Float, []Type{Bool, Float, Float}, func(args []*Node, ctx *Context) Value {
	if evalBool(args[0], ctx) {
		return args[1].Evaluate(ctx)
	}
	return args[2].Evaluate(ctx)
})
