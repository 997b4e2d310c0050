package arbor

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Flush submits triangles in batches that keep vertex indices inside the
// uint16 range DrawTriangles requires.
const maxBatchVertices = 63000

// Shared untextured source: the center pixel of a 3x3 white image, inset so
// texture filtering never samples past the edge.
var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// ensureWhitePixel lazily creates the white source image on first use.
// Deferred past package init so importing the package never touches the
// graphics device.
func ensureWhitePixel() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Color is a flat RGB instance color, with components in [0, 1].
type Color struct {
	R, G, B float32
}

// shadedTri is one projected, lit triangle awaiting the depth sort.
type shadedTri struct {
	x, y    [3]float32
	depth   float32 // clip-space w at the centroid; larger is farther
	r, g, b float32
}

// Renderer draws instanced MeshBuffers through a software projection
// pipeline onto an ebiten.Image. Triangles from all draws in a frame are
// lit, depth-sorted far to near, and submitted together, so instances from
// different meshes occlude each other correctly.
type Renderer struct {
	// LightDir1 and LightDir2 are directional light directions, pointing
	// from the scene toward each light. Normalized at draw time.
	LightDir1, LightDir2 math32.Vector3
	// Intensity1 and Intensity2 weight the two lights.
	Intensity1, Intensity2 float32
	// Ambient is the minimum light level.
	Ambient float32
	// CullBackfaces skips triangles wound away from the camera. Closed
	// opaque meshes render identically either way under the depth sort.
	CullBackfaces bool

	vp           math32.Matrix4
	halfW, halfH float32

	tris    []shadedTri
	sortBuf []shadedTri
	verts   []ebiten.Vertex
	indices []uint16
}

// NewRenderer creates a renderer with a two-light rig: a warm key light
// from above and a dim fill from the opposite side.
func NewRenderer() *Renderer {
	return &Renderer{
		LightDir1:  math32.Vec3(1, 2, 1),
		LightDir2:  math32.Vec3(-1, 0.5, -0.5),
		Intensity1: 0.7,
		Intensity2: 0.25,
		Ambient:    0.3,
	}
}

// BeginFrame clears the triangle queue and captures the camera matrices for
// the given viewport size. Call once per frame before any Draw.
func (r *Renderer) BeginFrame(cam *OrbitCamera, width, height int) {
	proj := cam.ProjectionMatrix(float32(width) / float32(height))
	r.vp.MulMatrices(proj, cam.ViewMatrix())
	r.halfW = float32(width) / 2
	r.halfH = float32(height) / 2
	r.tris = r.tris[:0]
}

// Draw projects, lights, and queues one instance of mesh per transform.
// Triangles crossing behind the near plane are dropped rather than clipped.
func (r *Renderer) Draw(mesh *MeshBuffers, transforms []math32.Matrix4, clr Color) {
	l1 := r.LightDir1.Normal()
	l2 := r.LightDir2.Normal()

	for ti := range transforms {
		model := &transforms[ti]
		var mvp math32.Matrix4
		mvp.MulMatrices(&r.vp, model)

		// Inverse transpose keeps normals perpendicular under the
		// non-uniform scales branch transforms carry.
		var nm math32.Matrix3
		if err := nm.SetNormalMatrix(model); err != nil {
			nm = math32.Matrix3FromMatrix4(model)
		}

		for i := 0; i+2 < len(mesh.Index); i += 3 {
			var tri shadedTri
			var wSum float32
			var normSum math32.Vector3
			behind := false
			for c := 0; c < 3; c++ {
				vi := int(mesh.Index[i+c]) * 3
				p := math32.Vector4{
					X: mesh.Vertex[vi], Y: mesh.Vertex[vi+1], Z: mesh.Vertex[vi+2], W: 1,
				}.MulMatrix4(&mvp)
				if p.W <= 0 {
					behind = true
					break
				}
				ndc := p.PerspDiv()
				tri.x[c] = (ndc.X + 1) * r.halfW
				tri.y[c] = (1 - ndc.Y) * r.halfH
				wSum += p.W

				n := math32.Vec3(mesh.Normal[vi], mesh.Normal[vi+1], mesh.Normal[vi+2])
				normSum.SetAdd(n.MulMatrix3(&nm))
			}
			if behind {
				continue
			}
			if r.CullBackfaces {
				area := (tri.x[1]-tri.x[0])*(tri.y[2]-tri.y[0]) - (tri.x[2]-tri.x[0])*(tri.y[1]-tri.y[0])
				if area >= 0 {
					continue
				}
			}

			n := normSum.Normal()
			light := r.Ambient +
				r.Intensity1*math32.Max(0, n.Dot(l1)) +
				r.Intensity2*math32.Max(0, n.Dot(l2))
			light = math32.Min(light, 1)

			tri.depth = wSum / 3
			tri.r = clr.R * light
			tri.g = clr.G * light
			tri.b = clr.B * light
			r.tris = append(r.tris, tri)
		}
	}
}

// Flush depth-sorts the queued triangles far to near and submits them to
// dst. Call once per frame after all Draw calls.
func (r *Renderer) Flush(dst *ebiten.Image) {
	r.sortTris()

	white := ensureWhitePixel()
	r.verts = r.verts[:0]
	r.indices = r.indices[:0]

	for i := range r.tris {
		if len(r.verts)+3 > maxBatchVertices {
			r.submit(dst, white)
		}
		tri := &r.tris[i]
		base := uint16(len(r.verts))
		for c := 0; c < 3; c++ {
			r.verts = append(r.verts, ebiten.Vertex{
				DstX: tri.x[c], DstY: tri.y[c],
				SrcX: 1, SrcY: 1,
				ColorR: tri.r, ColorG: tri.g, ColorB: tri.b, ColorA: 1,
			})
		}
		r.indices = append(r.indices, base, base+1, base+2)
	}
	r.submit(dst, white)
}

// submit draws the batched vertices and resets the batch buffers, keeping
// their capacity.
func (r *Renderer) submit(dst *ebiten.Image, src *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}
	dst.DrawTriangles(r.verts, r.indices, src, &ebiten.DrawTrianglesOptions{})
	r.verts = r.verts[:0]
	r.indices = r.indices[:0]
}

// --- Depth sort ---

// triFartherOrEqual reports whether a draws before or with b. Using >=
// keeps the sort stable, so equal-depth triangles stay in emission order.
func triFartherOrEqual(a, b *shadedTri) bool {
	return a.depth >= b.depth
}

// sortTris sorts the queued triangles far to near with a bottom-up merge
// sort. Zero allocations once the scratch buffer reaches its high-water
// mark.
func (r *Renderer) sortTris() {
	n := len(r.tris)
	if n <= 1 {
		return
	}
	if cap(r.sortBuf) < n {
		r.sortBuf = make([]shadedTri, n)
	}
	r.sortBuf = r.sortBuf[:n]

	a := r.tris
	b := r.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeTris(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(r.tris, r.sortBuf)
	}
}

// mergeTris merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeTris(src, dst []shadedTri, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if triFartherOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
