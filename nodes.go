package arbor

import "cogentcore.org/core/math32"

// treeNode is one grown branch endpoint. Parent indexes into the arena;
// roots carry -1.
type treeNode struct {
	Pos    math32.Vector3
	Parent int

	accum math32.Vector3 // sum of unit pulls from attracting points
	links int            // points attracting this node this iteration
}

// nodeArena is the append-only store of branch nodes. Nodes are never
// removed or reordered, so parent indices stay valid for the lifetime of
// the arena and slice order is growth order.
type nodeArena struct {
	origin math32.Vector3
	nodes  []treeNode
}

// newNodeArena seeds count root branches fanned evenly around the trunk
// axis with a strong upward bias. Each branch is a chain of nodes spaced
// one step apart, climbing from the origin until it clears reach, so the
// canopy envelope is within attraction range before growth starts. Nodes
// that attract no points never grow, so the seed chains are the only way
// into an envelope raised above the base.
func newNodeArena(count int, step, reach float32) *nodeArena {
	a := &nodeArena{}
	for i := 0; i < count; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(count)
		dir := math32.Vec3(0.5*math32.Cos(theta), 1, 0.5*math32.Sin(theta)).Normal()

		segs := 1 + int(math32.Ceil(reach/(step*dir.Y)))
		parent := -1
		for j := 1; j <= segs; j++ {
			a.nodes = append(a.nodes, treeNode{
				Pos:    a.origin.Add(dir.MulScalar(step * float32(j))),
				Parent: parent,
			})
			parent = len(a.nodes) - 1
		}
	}
	return a
}

// addRoot appends a parentless node at pos.
func (a *nodeArena) addRoot(pos math32.Vector3) {
	a.nodes = append(a.nodes, treeNode{Pos: pos, Parent: -1})
}

// growNewNodes appends one child per node that accumulated attraction this
// iteration, one step along the normalized accumulator, and clears every
// accumulator. Children appended here do not grow until the next call.
// Reports whether any node grew.
func (a *nodeArena) growNewNodes(step float32) bool {
	grew := false
	count := len(a.nodes)
	for i := 0; i < count; i++ {
		linked := a.nodes[i].links > 0
		accum := a.nodes[i].accum
		a.nodes[i].links = 0
		a.nodes[i].accum = math32.Vector3{}

		if !linked {
			continue
		}
		length := accum.Length()
		if length < 1e-6 {
			// Opposing pulls cancelled out; nowhere to grow.
			continue
		}
		a.nodes = append(a.nodes, treeNode{
			Pos:    a.nodes[i].Pos.Add(accum.DivScalar(length).MulScalar(step)),
			Parent: i,
		})
		grew = true
	}
	return grew
}
