package arbor

import "cogentcore.org/core/math32"

// Colonization exposes the space colonization simulation one iteration at a
// time, for visualization and debugging. Generate runs the same loop to
// completion internally; stepping by hand produces the identical tree.
type Colonization struct {
	params SpaceColonizationParams
	field  *pointField
	arena  *nodeArena

	iterations int
	converged  bool
	done       bool
}

// NewColonization validates the parameters, builds the attraction lattice
// and root fan, and links the points once so the first Step can grow.
func NewColonization(p SpaceColonizationParams) (*Colonization, error) {
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return nil, err
	}
	return newColonization(p), nil
}

func newColonization(p SpaceColonizationParams) *Colonization {
	c := &Colonization{
		params: p,
		field:  newPointField(p),
		arena:  newNodeArena(p.RootCount, p.BranchStep, p.EnvelopeOffset),
	}
	c.field.updateLinks(c.arena, p.AttractionRadius, p.KillRadius)
	return c
}

// Step runs one growth iteration: grow a child from every attracted node,
// then relink the remaining points. Reports whether the simulation can
// still advance; once it returns false, further calls do nothing.
func (c *Colonization) Step() bool {
	if c.done {
		return false
	}
	c.iterations++
	if !c.arena.growNewNodes(c.params.BranchStep) {
		c.done = true
		c.converged = true
		return false
	}
	c.field.updateLinks(c.arena, c.params.AttractionRadius, c.params.KillRadius)
	if c.iterations >= c.params.MaxIterations {
		c.done = true
	}
	return !c.done
}

// Done reports whether growth has stopped, either by convergence or by
// exhausting the iteration budget.
func (c *Colonization) Done() bool {
	return c.done
}

// Points returns the positions of the attraction points not yet consumed.
// The slice is freshly allocated on every call.
func (c *Colonization) Points() []math32.Vector3 {
	out := make([]math32.Vector3, len(c.field.points))
	for i, pt := range c.field.points {
		out[i] = pt.Pos
	}
	return out
}

// Nodes returns the positions of every branch node grown so far, in growth
// order. The slice is freshly allocated on every call.
func (c *Colonization) Nodes() []math32.Vector3 {
	out := make([]math32.Vector3, len(c.arena.nodes))
	for i := range c.arena.nodes {
		out[i] = c.arena.nodes[i].Pos
	}
	return out
}

// Tree snapshots the branches grown so far into a result tree. Space
// colonization emits no leaves.
func (c *Colonization) Tree() *Tree {
	return &Tree{
		Branches: emitColonizationBranches(c.arena),
		Stats: GrowthStats{
			Iterations:      c.iterations,
			Converged:       c.converged,
			Nodes:           len(c.arena.nodes),
			PointsRemaining: len(c.field.points),
		},
	}
}

// generateSpaceColonization runs the simulation to completion.
func generateSpaceColonization(p SpaceColonizationParams) *Tree {
	c := newColonization(p)
	for c.Step() {
	}
	return c.Tree()
}
