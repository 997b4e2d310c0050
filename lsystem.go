package arbor

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
)

// Base dimensions of an L-system tree before per-branch scaling.
const (
	lsysSegmentLength = 1.0
	lsysRadiusFactor  = 0.005
	lsysLeafSize      = 0.3
)

// Rewrite expands axiom through depth left-to-right rewrite passes. Each
// pass substitutes every symbol at most once; replacement text is not
// re-expanded until the next pass. Symbols without a rule are copied through
// unchanged. The expansion is deterministic.
func Rewrite(axiom string, rules map[byte]string, depth int) string {
	current := axiom
	var b strings.Builder
	for pass := 0; pass < depth; pass++ {
		b.Reset()
		b.Grow(len(current) * 2)
		for i := 0; i < len(current); i++ {
			if repl, ok := rules[current[i]]; ok {
				b.WriteString(repl)
			} else {
				b.WriteByte(current[i])
			}
		}
		current = b.String()
	}
	return current
}

// --- Turtle ---

// turtle is the interpreter state for one branch level: position, an
// orthonormal frame (heading is the direction F moves), and the cumulative
// branch scale.
type turtle struct {
	pos     math32.Vector3
	heading math32.Vector3
	right   math32.Vector3
	up      math32.Vector3
	scale   float32
}

// newTurtle starts at the origin heading straight up.
func newTurtle() turtle {
	return turtle{
		heading: math32.Vec3(0, 1, 0),
		right:   math32.Vec3(1, 0, 0),
		up:      math32.Vec3(0, 0, 1),
		scale:   1,
	}
}

// yaw rotates heading and right about the up axis.
func (t *turtle) yaw(angle float32) {
	q := math32.NewQuatAxisAngle(t.up, angle)
	t.heading = t.heading.MulQuat(q)
	t.right = t.right.MulQuat(q)
}

// pitch rotates heading and up about the right axis.
func (t *turtle) pitch(angle float32) {
	q := math32.NewQuatAxisAngle(t.right, angle)
	t.heading = t.heading.MulQuat(q)
	t.up = t.up.MulQuat(q)
}

// roll rotates right and up about the heading axis.
func (t *turtle) roll(angle float32) {
	q := math32.NewQuatAxisAngle(t.heading, angle)
	t.right = t.right.MulQuat(q)
	t.up = t.up.MulQuat(q)
}

// --- Interpretation ---

// generateLSystem expands the grammar and walks the symbol string with a 3D
// turtle, emitting one branch matrix per F and a fan of leaf matrices per L.
//
// Symbols: F move forward and draw, + - yaw, & ^ pitch, / \ roll, [ push
// state and shrink scale, ] pop, L emit leaves. Anything else is
// rewrite-only and ignored here.
func generateLSystem(p LSystemParams) (*Tree, error) {
	symbols := Rewrite(p.Axiom, p.Rules, p.Depth)

	rng := newGrowthRand(p.Seed)
	leafRange := IntRange{Min: p.MinLeafCount, Max: p.MaxLeafCount}
	radius := lsysRadiusFactor * p.BranchRadius

	state := newTurtle()
	var stack []turtle

	tree := &Tree{}
	for i := 0; i < len(symbols); i++ {
		switch symbols[i] {
		case 'F':
			from := state.pos
			state.pos = state.pos.Add(state.heading.MulScalar(lsysSegmentLength * state.scale))
			if m, ok := branchTransform(from, state.pos, radius*state.scale); ok {
				tree.Branches = append(tree.Branches, m)
			}
		case '+':
			state.yaw(p.Angle)
		case '-':
			state.yaw(-p.Angle)
		case '&':
			state.pitch(p.Angle)
		case '^':
			state.pitch(-p.Angle)
		case '/':
			state.roll(p.Angle)
		case '\\':
			state.roll(-p.Angle)
		case '[':
			stack = append(stack, state)
			state.scale *= p.ScaleFactor
		case ']':
			if len(stack) == 0 {
				return nil, fmt.Errorf("arbor: unbalanced ']' at symbol %d", i)
			}
			state = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case 'L':
			n := leafRange.Random(rng)
			size := lsysLeafSize * state.scale
			for k := 0; k < n; k++ {
				tree.Leaves = append(tree.Leaves, leafTransform(state.pos, state.heading, state.right, k, n, size))
			}
		default:
			// Rewrite-only symbol, no turtle effect.
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("arbor: %d unclosed '[' at end of symbol string", len(stack))
	}
	tree.Stats.Nodes = len(tree.Branches)
	return tree, nil
}
