package arbor

import (
	"testing"

	"cogentcore.org/core/math32"
)

// Projection and sorting never touch the graphics device, so they are
// testable headless. Flush is exercised by the example programs.

func identityTransforms(n int) []math32.Matrix4 {
	out := make([]math32.Matrix4, n)
	for i := range out {
		out[i].SetIdentity()
	}
	return out
}

func TestRendererQueuesAllTriangles(t *testing.T) {
	r := NewRenderer()
	cam := NewOrbitCamera(math32.Vector3{}, 5)
	r.BeginFrame(cam, 640, 480)

	mesh := NewCylinder(1, 1, 6)
	r.Draw(mesh, identityTransforms(3), Color{R: 1, G: 1, B: 1})

	want := 3 * mesh.NumTriangles()
	if len(r.tris) != want {
		t.Errorf("queued %d triangles, want %d", len(r.tris), want)
	}
}

func TestRendererDropsGeometryBehindCamera(t *testing.T) {
	r := NewRenderer()
	cam := NewOrbitCamera(math32.Vector3{}, 5)
	cam.Pitch = 0
	cam.MarkDirty()
	r.BeginFrame(cam, 640, 480)

	// The camera sits at (0,0,5) looking toward -Z; z=20 is behind it.
	var q math32.Quat
	q.SetIdentity()
	var m math32.Matrix4
	m.SetTransform(math32.Vec3(0, 0, 20), q, math32.Vec3(1, 1, 1))

	r.Draw(NewSphere(0.5, 4), []math32.Matrix4{m}, Color{R: 1})
	if len(r.tris) != 0 {
		t.Errorf("queued %d triangles for geometry behind the camera, want 0", len(r.tris))
	}
}

func TestRendererBeginFrameResetsQueue(t *testing.T) {
	r := NewRenderer()
	cam := NewOrbitCamera(math32.Vector3{}, 5)
	r.BeginFrame(cam, 640, 480)
	r.Draw(NewLeaf(), identityTransforms(1), Color{G: 1})
	if len(r.tris) == 0 {
		t.Fatal("expected queued triangles")
	}
	r.BeginFrame(cam, 640, 480)
	if len(r.tris) != 0 {
		t.Errorf("queue = %d after BeginFrame, want 0", len(r.tris))
	}
}

func TestRendererLightingWithinRange(t *testing.T) {
	r := NewRenderer()
	cam := NewOrbitCamera(math32.Vector3{}, 5)
	r.BeginFrame(cam, 640, 480)
	r.Draw(NewSphere(1, 8), identityTransforms(1), Color{R: 1, G: 0.5, B: 0.25})

	for i := range r.tris {
		tri := &r.tris[i]
		if tri.r < 0 || tri.r > 1 || tri.g < 0 || tri.g > 0.5+epsilon || tri.b < 0 || tri.b > 0.25+epsilon {
			t.Fatalf("triangle %d shade out of range: (%v, %v, %v)", i, tri.r, tri.g, tri.b)
		}
		if tri.r < r.Ambient*1-epsilon {
			t.Fatalf("triangle %d darker than ambient: %v", i, tri.r)
		}
	}
}

func TestRendererNormalsUnderNonUniformScale(t *testing.T) {
	r := NewRenderer()
	r.LightDir1 = math32.Vec3(0, 1, 0)
	r.Intensity1 = 1
	r.Intensity2 = 0
	r.Ambient = 0

	cam := NewOrbitCamera(math32.Vector3{}, 5)
	cam.Pitch = 0
	cam.MarkDirty()
	r.BeginFrame(cam, 640, 480)

	// One triangle whose normals face halfway between +X and +Y, stretched
	// 4x along X. The stretch tilts surface normals toward +Y, so the lit
	// value follows the inverse-transpose direction, not the scaled one.
	mesh := &MeshBuffers{}
	n := math32.Vec3(1, 1, 0).Normal()
	mesh.addVertex(math32.Vec3(-0.5, -0.5, 0), n, 0, 0)
	mesh.addVertex(math32.Vec3(0.5, -0.5, 0), n, 1, 0)
	mesh.addVertex(math32.Vec3(0, 0.5, 0), n, 0.5, 1)
	mesh.addTriangle(0, 1, 2)

	var q math32.Quat
	q.SetIdentity()
	var m math32.Matrix4
	m.SetTransform(math32.Vector3{}, q, math32.Vec3(4, 1, 1))

	r.Draw(mesh, []math32.Matrix4{m}, Color{R: 1})
	if len(r.tris) != 1 {
		t.Fatalf("queued %d triangles, want 1", len(r.tris))
	}
	want := math32.Vec3(0.25, 1, 0).Normal().Y
	assertNear(t, "lit value", r.tris[0].r, want)
}

// --- Depth sort ---

func TestSortTrisFarToNear(t *testing.T) {
	r := NewRenderer()
	depths := []float32{1, 9, 4, 4, 7, 2, 8, 3}
	for i, d := range depths {
		r.tris = append(r.tris, shadedTri{depth: d, r: float32(i)})
	}
	r.sortTris()

	for i := 1; i < len(r.tris); i++ {
		if r.tris[i].depth > r.tris[i-1].depth {
			t.Fatalf("tris[%d].depth = %v after tris[%d].depth = %v; want far to near",
				i, r.tris[i].depth, i-1, r.tris[i-1].depth)
		}
	}
}

func TestSortTrisStable(t *testing.T) {
	r := NewRenderer()
	// Equal depths must keep emission order.
	for i := 0; i < 6; i++ {
		r.tris = append(r.tris, shadedTri{depth: 5, r: float32(i)})
	}
	r.sortTris()
	for i := 0; i < 6; i++ {
		if r.tris[i].r != float32(i) {
			t.Fatalf("equal-depth order broken at %d: got tag %v", i, r.tris[i].r)
		}
	}
}

func BenchmarkRendererDraw(b *testing.B) {
	r := NewRenderer()
	cam := NewOrbitCamera(math32.Vector3{}, 8)
	mesh := NewCylinder(1, 1, 8)
	tree, err := Generate(Config{Mode: ModeLSystem, LSystem: PlantPreset()})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		r.BeginFrame(cam, 1280, 960)
		r.Draw(mesh, tree.Branches, Color{R: 0.5, G: 0.35, B: 0.2})
		r.sortTris()
	}
}
