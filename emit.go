package arbor

import "cogentcore.org/core/math32"

// yAxis is the long axis of the unit branch and leaf meshes.
var yAxis = math32.Vec3(0, 1, 0)

// branchTransform builds the model matrix mapping the unit cylinder onto a
// segment: rotate +Y onto the segment direction, stretch Y to the segment
// length, scale XZ to the radius, and translate to the midpoint. Reports
// false for near zero-length segments, which emit nothing.
func branchTransform(from, to math32.Vector3, radius float32) (math32.Matrix4, bool) {
	var m math32.Matrix4
	seg := to.Sub(from)
	length := seg.Length()
	if length < 1e-6 {
		return m, false
	}
	var q math32.Quat
	q.SetFromUnitVectors(yAxis, seg.DivScalar(length))
	mid := from.Add(to).MulScalar(0.5)
	m.SetTransform(mid, q, math32.Vec3(radius, length, radius))
	return m, true
}

// leafTransform places the k-th of n leaves at pos, drooped away from the
// branch heading and fanned evenly around it. The fan is deterministic:
// only the leaf count is random.
func leafTransform(pos, heading, right math32.Vector3, k, n int, size float32) math32.Matrix4 {
	dir := heading.MulQuat(math32.NewQuatAxisAngle(right, math32.Pi/4))
	dir = dir.MulQuat(math32.NewQuatAxisAngle(heading, 2*math32.Pi*float32(k)/float32(n)))

	var q math32.Quat
	q.SetFromUnitVectors(yAxis, dir)
	var m math32.Matrix4
	m.SetTransform(pos.Add(dir.MulScalar(size*0.5)), q, math32.Vec3(size, size, size))
	return m
}

// Space colonization branch dimensions. Segments are drawn slightly longer
// than the growth step so consecutive cylinders overlap at the joints.
const (
	colonizeRadius  = 0.05
	colonizeOverlap = 0.04
)

// emitColonizationBranches walks the node arena in growth order and emits
// one branch matrix per edge: root nodes connect back to the arena origin,
// grown nodes to their parent.
func emitColonizationBranches(a *nodeArena) []math32.Matrix4 {
	branches := make([]math32.Matrix4, 0, len(a.nodes))
	for i := range a.nodes {
		n := &a.nodes[i]
		from := a.origin
		if n.Parent >= 0 {
			from = a.nodes[n.Parent].Pos
		}
		seg := n.Pos.Sub(from)
		length := seg.Length()
		if length < 1e-6 {
			continue
		}
		to := from.Add(seg.DivScalar(length).MulScalar(length + colonizeOverlap))
		if m, ok := branchTransform(from, to, colonizeRadius); ok {
			branches = append(branches, m)
		}
	}
	return branches
}
