package arbor

import "cogentcore.org/core/math32"

// defaultRules is the full branching grammar shared by the tree presets.
// X drives the overall architecture, F extends and forks branches, Y adds
// asymmetric side growth, and L clusters leaves.
func defaultRules() map[byte]string {
	return map[byte]string{
		'X': `F[//+XXL][+++YXL][-&^FXL][&FXL][\^FXL][--^FXL][^&X]`,
		'F': `F[/+FL][-FL]`,
		'Y': `F[\+&FYL][/-+F^YL][/&F^Y*L][\^FYL][F++++YL]`,
		'L': `L[+L][-L][&L][^L]`,
	}
}

// plantRules is a pruned grammar with fewer forks per symbol, for small
// undergrowth.
func plantRules() map[byte]string {
	return map[byte]string{
		'X': `F[//+XXL][+++YXL][-&^FXL]`,
		'F': `F[/+FL][-FL]`,
		'Y': `F[\+&FYL][/-+F^YL]`,
		'L': `L[+L][-L][&L][^L]`,
	}
}

// DefaultLSystemParams returns the dense tree preset: three rewrite passes
// of the full grammar with heavy foliage.
func DefaultLSystemParams() LSystemParams {
	return LSystemParams{
		Axiom:        "X",
		Rules:        defaultRules(),
		Depth:        3,
		ScaleFactor:  0.75,
		BranchRadius: 15,
		MinLeafCount: 10,
		MaxLeafCount: 20,
	}
}

// PlantPreset returns a small undergrowth plant: two shallow passes of the
// pruned grammar with thin branches.
func PlantPreset() LSystemParams {
	return LSystemParams{
		Axiom:        "X",
		Rules:        plantRules(),
		Depth:        2,
		ScaleFactor:  0.5,
		BranchRadius: 5,
		MinLeafCount: 5,
		MaxLeafCount: 15,
	}
}

// AutumnPreset returns a tree grown from the pruned grammar at full depth
// and thickness but with sparse foliage, as after leaf fall.
func AutumnPreset() LSystemParams {
	return LSystemParams{
		Axiom:        "X",
		Rules:        plantRules(),
		Depth:        3,
		ScaleFactor:  0.75,
		BranchRadius: 15,
		MinLeafCount: 5,
		MaxLeafCount: 7,
	}
}

// DefaultSpaceColonizationParams returns a squat canopy envelope, two units
// across, raised one unit above the base.
func DefaultSpaceColonizationParams() SpaceColonizationParams {
	return SpaceColonizationParams{
		EnvelopeHeight: 1,
		EnvelopeWidth:  2,
		EnvelopeLength: 2,
		EnvelopeOffset: 1,
		Density:        math32.Vec3i(3, 3, 3),
	}
}
