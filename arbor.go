package arbor

import (
	"fmt"
	"math/rand/v2"

	"cogentcore.org/core/math32"
)

// Mode selects the growth algorithm Generate runs.
type Mode uint8

const (
	// ModeLSystem grows the tree by grammar rewriting and 3D turtle
	// interpretation of the expanded symbol string.
	ModeLSystem Mode = iota
	// ModeSpaceColonization grows the tree iteratively toward a lattice of
	// attraction points inside a box envelope.
	ModeSpaceColonization
)

// --- L-system parameters ---

// LSystemParams configures ModeLSystem generation.
type LSystemParams struct {
	// Axiom is the initial symbol string the rewriter expands.
	Axiom string
	// Rules maps a symbol to its replacement string. Symbols without a rule
	// are copied through unchanged.
	Rules map[byte]string
	// Depth is the number of rewrite passes applied to the axiom.
	Depth int
	// Angle is the turn angle in radians used by the rotation symbols
	// (+ - & ^ / \). Zero selects the default of pi/6.
	Angle float32
	// ScaleFactor multiplies the turtle's scale on every branch push,
	// shrinking nested branches geometrically. Must be positive.
	ScaleFactor float32
	// BranchRadius scales the thickness of emitted branch segments.
	BranchRadius float32
	// MinLeafCount and MaxLeafCount bound the number of leaves emitted per
	// L symbol. The count is drawn uniformly from the closed range.
	MinLeafCount int
	MaxLeafCount int
	// Seed seeds the leaf-count generator. Zero selects a fixed default, so
	// identical params always produce identical trees.
	Seed uint64
}

// withDefaults fills zero-valued optional fields.
func (p LSystemParams) withDefaults() LSystemParams {
	if p.Angle == 0 {
		p.Angle = math32.Pi / 6
	}
	if p.Seed == 0 {
		p.Seed = 1
	}
	return p
}

// validate rejects out-of-range parameters with a descriptive error.
// Values are never clamped.
func (p LSystemParams) validate() error {
	if p.Axiom == "" {
		return fmt.Errorf("arbor: l-system axiom must not be empty")
	}
	if p.Depth < 0 {
		return fmt.Errorf("arbor: l-system depth must not be negative, got %d", p.Depth)
	}
	if p.ScaleFactor <= 0 {
		return fmt.Errorf("arbor: l-system scale factor must be positive, got %v", p.ScaleFactor)
	}
	if p.BranchRadius <= 0 {
		return fmt.Errorf("arbor: l-system branch radius must be positive, got %v", p.BranchRadius)
	}
	if p.MinLeafCount < 0 || p.MaxLeafCount < p.MinLeafCount {
		return fmt.Errorf("arbor: l-system leaf count range [%d, %d] is invalid", p.MinLeafCount, p.MaxLeafCount)
	}
	return nil
}

// --- Space colonization parameters ---

// SpaceColonizationParams configures ModeSpaceColonization generation.
type SpaceColonizationParams struct {
	// EnvelopeHeight, EnvelopeWidth, and EnvelopeLength are the dimensions
	// of the box the attraction points fill. All must be positive.
	EnvelopeHeight float32
	EnvelopeWidth  float32
	EnvelopeLength float32
	// EnvelopeOffset raises the bottom of the envelope above the tree base,
	// leaving a bare trunk below the canopy.
	EnvelopeOffset float32
	// Density is the number of lattice steps per axis inside the envelope.
	// Each component must be at least 1.
	Density math32.Vector3i

	// RootCount is the number of initial branch nodes fanned around the
	// trunk axis. Zero selects the default of 7.
	RootCount int
	// BranchStep is the length of every grown branch segment. Zero selects
	// the default of 0.2.
	BranchStep float32
	// AttractionRadius is the distance within which a point pulls on its
	// nearest node. Zero selects the default of 0.5.
	AttractionRadius float32
	// KillRadius is the distance within which a point is consumed by its
	// nearest node. Zero selects the default of 0.2. Must stay below
	// AttractionRadius.
	KillRadius float32
	// MaxIterations bounds the growth loop. Zero selects the default of 200.
	MaxIterations int
}

// Space colonization defaults.
const (
	defaultRootCount        = 7
	defaultBranchStep       = 0.2
	defaultAttractionRadius = 0.5
	defaultKillRadius       = 0.2
	defaultMaxIterations    = 200
)

// withDefaults fills zero-valued optional fields.
func (p SpaceColonizationParams) withDefaults() SpaceColonizationParams {
	if p.RootCount == 0 {
		p.RootCount = defaultRootCount
	}
	if p.BranchStep == 0 {
		p.BranchStep = defaultBranchStep
	}
	if p.AttractionRadius == 0 {
		p.AttractionRadius = defaultAttractionRadius
	}
	if p.KillRadius == 0 {
		p.KillRadius = defaultKillRadius
	}
	if p.MaxIterations == 0 {
		p.MaxIterations = defaultMaxIterations
	}
	return p
}

// validate rejects out-of-range parameters with a descriptive error.
// Values are never clamped.
func (p SpaceColonizationParams) validate() error {
	if p.EnvelopeHeight <= 0 || p.EnvelopeWidth <= 0 || p.EnvelopeLength <= 0 {
		return fmt.Errorf("arbor: envelope dimensions must be positive, got %v x %v x %v",
			p.EnvelopeLength, p.EnvelopeHeight, p.EnvelopeWidth)
	}
	if p.Density.X < 1 || p.Density.Y < 1 || p.Density.Z < 1 {
		return fmt.Errorf("arbor: envelope density components must be at least 1, got %v", p.Density)
	}
	if p.RootCount < 1 {
		return fmt.Errorf("arbor: root count must be at least 1, got %d", p.RootCount)
	}
	if p.BranchStep <= 0 {
		return fmt.Errorf("arbor: branch step must be positive, got %v", p.BranchStep)
	}
	if p.KillRadius <= 0 || p.KillRadius >= p.AttractionRadius {
		return fmt.Errorf("arbor: kill radius %v must be positive and below attraction radius %v",
			p.KillRadius, p.AttractionRadius)
	}
	if p.MaxIterations < 1 {
		return fmt.Errorf("arbor: max iterations must be at least 1, got %d", p.MaxIterations)
	}
	return nil
}

// --- Config and result ---

// Config selects a growth mode and carries the parameters for it. Only the
// parameter set matching Mode is read.
type Config struct {
	Mode              Mode
	LSystem           LSystemParams
	SpaceColonization SpaceColonizationParams
}

// GrowthStats reports diagnostics from a generation run. For ModeLSystem
// only Nodes is populated; the other fields describe the space colonization
// growth loop.
type GrowthStats struct {
	// Iterations is the number of growth iterations executed.
	Iterations int
	// Converged is true when growth stopped on its own rather than hitting
	// MaxIterations. Non-convergence is not an error.
	Converged bool
	// Nodes is the number of branch nodes (segments) in the result.
	Nodes int
	// PointsRemaining is the number of attraction points never consumed.
	PointsRemaining int
}

// Tree is the generated result: one model matrix per branch segment and one
// per leaf, in emission order. Branch matrices map a unit cylinder (radius 1,
// height 1, Y-up, centered at the origin) onto its segment; leaf matrices
// place a unit leaf quad.
type Tree struct {
	Branches []math32.Matrix4
	Leaves   []math32.Matrix4
	Stats    GrowthStats
}

// Generate builds a tree from the given configuration. It is a pure function
// of cfg: no package state, full regeneration on every call. On error the
// returned tree is nil and no partial geometry is produced.
func Generate(cfg Config) (*Tree, error) {
	switch cfg.Mode {
	case ModeLSystem:
		p := cfg.LSystem.withDefaults()
		if err := p.validate(); err != nil {
			return nil, err
		}
		return generateLSystem(p)
	case ModeSpaceColonization:
		p := cfg.SpaceColonization.withDefaults()
		if err := p.validate(); err != nil {
			return nil, err
		}
		return generateSpaceColonization(p), nil
	default:
		return nil, fmt.Errorf("arbor: unknown mode %d", cfg.Mode)
	}
}

// --- Random ranges ---

// IntRange is an inclusive integer interval.
type IntRange struct {
	Min, Max int
}

// Random returns a uniformly distributed value in [Min, Max]. Returns Min
// when the range is empty or inverted.
func (r IntRange) Random(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

// newGrowthRand returns the deterministic generator used for leaf counts.
func newGrowthRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
