// Package arbor procedurally generates the branching geometry of a 3D tree
// as ordered lists of per-instance model transforms, ready for instanced
// rendering.
//
// Two growth algorithms are provided, selected by [Config.Mode]:
//
//   - [ModeLSystem]: a grammar rewriter expands an axiom string through
//     production rules, and a 3D turtle interprets the result as movement,
//     rotation, branch push/pop, and leaf commands.
//   - [ModeSpaceColonization]: branches grow iteratively toward a lattice
//     of attraction points inside a box envelope, consuming points as they
//     are reached.
//
// # Quick start
//
// Build a configuration (or start from a preset) and call [Generate]:
//
//	tree, err := arbor.Generate(arbor.Config{
//		Mode:    arbor.ModeLSystem,
//		LSystem: arbor.DefaultLSystemParams(),
//	})
//
// The returned [Tree] holds one model matrix per branch segment and one per
// leaf. Draw one instance of a unit cylinder per branch transform and one
// unit leaf quad per leaf transform; [NewCylinder] and [NewLeaf] build
// matching vertex/index buffers.
//
// Generation is pure and synchronous: every call to [Generate] rebuilds the
// full transform lists from the given configuration, with no package-level
// state and no incremental updates. Invalid parameters and malformed
// grammars are reported as errors and produce no partial geometry.
//
// # Rendering
//
// The generation core never touches a rendering API. For convenience the
// package includes [Renderer], a software-projected instanced renderer for
// [Ebitengine], and [OrbitCamera]; see examples/viewer for a complete
// interactive program and examples/colonize for a step-by-step view of the
// space-colonization simulation.
//
// [Ebitengine]: https://ebitengine.org
package arbor
