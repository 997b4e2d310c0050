package arbor

import (
	"math"

	"cogentcore.org/core/math32"
)

// attractionBase anchors the lattice slightly off the trunk axis so growth
// never degenerates into a perfectly symmetric tree.
var attractionBase = math32.Vec3(0.1, 0, 0.2)

// attractionPoint is one unconsumed growth marker in the envelope.
type attractionPoint struct {
	Pos math32.Vector3
}

// pointField holds the remaining attraction points. Points are only ever
// removed, never added, so the count is monotonically non-increasing.
type pointField struct {
	points []attractionPoint
}

// newPointField builds the deterministic lattice of attraction points for
// the given envelope. Rows stack upward from the envelope offset; columns
// extend symmetrically either side of the trunk axis, so each axis holds
// 2*density+1 columns over the envelope footprint.
func newPointField(p SpaceColonizationParams) *pointField {
	dx, dy, dz := p.Density.X, p.Density.Y, p.Density.Z
	xi := p.EnvelopeLength / float32(2*dx)
	yi := p.EnvelopeHeight / float32(dy)
	zi := p.EnvelopeWidth / float32(2*dz)

	base := attractionBase
	base.Y += p.EnvelopeOffset

	f := &pointField{points: make([]attractionPoint, 0, int(dy+1)*int(2*dx+1)*int(2*dz+1))}
	for iy := int32(0); iy <= dy; iy++ {
		for ix := -dx; ix <= dx; ix++ {
			for iz := -dz; iz <= dz; iz++ {
				f.points = append(f.points, attractionPoint{
					Pos: base.Add(math32.Vec3(float32(ix)*xi, float32(iy)*yi, float32(iz)*zi)),
				})
			}
		}
	}
	return f
}

// updateLinks associates every remaining point with its nearest node.
// Points within killRadius are consumed and contribute nothing. Points
// within attractionRadius add a unit pull toward themselves to the nearest
// node's accumulator. Farther points are kept for later iterations.
//
// The scan is a plain nearest-neighbor loop over all nodes per point. At
// lattice scales (hundreds of points, a few thousand nodes) this finishes
// well within a frame and needs no spatial index.
func (f *pointField) updateLinks(a *nodeArena, attractionRadius, killRadius float32) {
	kill2 := killRadius * killRadius
	attract2 := attractionRadius * attractionRadius

	kept := f.points[:0]
	for _, pt := range f.points {
		nearest := -1
		best := float32(math.MaxFloat32)
		for i := range a.nodes {
			if d := pt.Pos.DistanceToSquared(a.nodes[i].Pos); d < best {
				best = d
				nearest = i
			}
		}
		if nearest >= 0 && best <= kill2 {
			continue // consumed
		}
		if nearest >= 0 && best <= attract2 {
			n := &a.nodes[nearest]
			n.accum.SetAdd(pt.Pos.Sub(n.Pos).Normal())
			n.links++
		}
		kept = append(kept, pt)
	}
	f.points = kept
}
