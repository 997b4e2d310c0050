package arbor

import (
	"strings"
	"testing"

	"cogentcore.org/core/math32"
)

// --- Rewrite ---

func TestRewriteDepthZero(t *testing.T) {
	got := Rewrite("FX", map[byte]string{'F': "FF"}, 0)
	if got != "FX" {
		t.Errorf("depth 0 = %q, want axiom unchanged", got)
	}
}

func TestRewriteSinglePass(t *testing.T) {
	rules := map[byte]string{'X': "F[X]"}
	got := Rewrite("X", rules, 1)
	if got != "F[X]" {
		t.Errorf("pass 1 = %q, want %q", got, "F[X]")
	}
	// Replacement text is not re-expanded within the same pass.
	got = Rewrite("X", map[byte]string{'X': "XX"}, 1)
	if got != "XX" {
		t.Errorf("single pass = %q, want %q", got, "XX")
	}
}

func TestRewritePassThrough(t *testing.T) {
	got := Rewrite("F+[-]L*", nil, 3)
	if got != "F+[-]L*" {
		t.Errorf("unmapped symbols = %q, want unchanged", got)
	}
}

func TestRewriteDoubling(t *testing.T) {
	// Every F is replaced each pass: 1 -> 3 -> 9.
	rules := map[byte]string{'F': "F[+F][-F]"}
	got := Rewrite("F", rules, 2)
	if n := strings.Count(got, "F"); n != 9 {
		t.Errorf("depth 2 has %d F symbols, want 9", n)
	}
}

// --- Turtle ---

func TestTurtleFrameStaysOrthonormal(t *testing.T) {
	s := newTurtle()
	s.yaw(0.7)
	s.pitch(-1.1)
	s.roll(2.3)
	s.yaw(-0.2)

	assertNear(t, "heading length", s.heading.Length(), 1)
	assertNear(t, "right length", s.right.Length(), 1)
	assertNear(t, "up length", s.up.Length(), 1)
	assertNear(t, "heading.right", s.heading.Dot(s.right), 0)
	assertNear(t, "heading.up", s.heading.Dot(s.up), 0)
	assertNear(t, "right.up", s.right.Dot(s.up), 0)
}

func TestTurtleYawLeavesUpFixed(t *testing.T) {
	s := newTurtle()
	up := s.up
	s.yaw(1.3)
	assertVec3(t, "up after yaw", s.up, up)
}

// --- Interpretation ---

func TestLSystemSegmentCount(t *testing.T) {
	tree, err := Generate(Config{Mode: ModeLSystem, LSystem: LSystemParams{
		Axiom:        "F",
		Rules:        map[byte]string{'F': "F[+F][-F]"},
		Depth:        2,
		ScaleFactor:  0.5,
		BranchRadius: 1,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Branches) != 9 {
		t.Errorf("branches = %d, want 9", len(tree.Branches))
	}
	if len(tree.Leaves) != 0 {
		t.Errorf("leaves = %d, want 0", len(tree.Leaves))
	}
	if tree.Stats.Nodes != 9 {
		t.Errorf("stats nodes = %d, want 9", tree.Stats.Nodes)
	}
}

func TestLSystemTrunkSegment(t *testing.T) {
	tree, err := Generate(Config{Mode: ModeLSystem, LSystem: LSystemParams{
		Axiom:        "F",
		ScaleFactor:  0.5,
		BranchRadius: 1,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Branches) != 1 {
		t.Fatalf("branches = %d, want 1", len(tree.Branches))
	}

	// The single trunk segment maps the unit cylinder onto origin..(0,1,0).
	m := &tree.Branches[0]
	bottom := math32.Vec3(0, -0.5, 0).MulMatrix4AsVector4(m, 1)
	top := math32.Vec3(0, 0.5, 0).MulMatrix4AsVector4(m, 1)
	assertVec3(t, "trunk bottom", bottom, math32.Vec3(0, 0, 0))
	assertVec3(t, "trunk top", top, math32.Vec3(0, 1, 0))
}

func TestLSystemPushShrinksScale(t *testing.T) {
	tree, err := Generate(Config{Mode: ModeLSystem, LSystem: LSystemParams{
		Axiom:        "F[F]",
		ScaleFactor:  0.5,
		BranchRadius: 1,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Branches) != 2 {
		t.Fatalf("branches = %d, want 2", len(tree.Branches))
	}

	// The bracketed segment continues from (0,1,0) at half length.
	m := &tree.Branches[1]
	top := math32.Vec3(0, 0.5, 0).MulMatrix4AsVector4(m, 1)
	assertVec3(t, "nested top", top, math32.Vec3(0, 1.5, 0))
}

func TestLSystemPopRestoresState(t *testing.T) {
	// After [F] the turtle is back at the trunk tip, so the following F
	// continues at full scale from (0,1,0).
	tree, err := Generate(Config{Mode: ModeLSystem, LSystem: LSystemParams{
		Axiom:        "F[+F]F",
		ScaleFactor:  0.5,
		BranchRadius: 1,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Branches) != 3 {
		t.Fatalf("branches = %d, want 3", len(tree.Branches))
	}
	m := &tree.Branches[2]
	top := math32.Vec3(0, 0.5, 0).MulMatrix4AsVector4(m, 1)
	assertVec3(t, "post-pop top", top, math32.Vec3(0, 2, 0))
}

func TestLSystemUnbalancedPop(t *testing.T) {
	_, err := Generate(Config{Mode: ModeLSystem, LSystem: LSystemParams{
		Axiom:        "F]F",
		ScaleFactor:  0.5,
		BranchRadius: 1,
	}})
	if err == nil {
		t.Fatal("expected error for ']' on empty stack")
	}
}

func TestLSystemUnclosedPush(t *testing.T) {
	_, err := Generate(Config{Mode: ModeLSystem, LSystem: LSystemParams{
		Axiom:        "F[F",
		ScaleFactor:  0.5,
		BranchRadius: 1,
	}})
	if err == nil {
		t.Fatal("expected error for unclosed '['")
	}
}

func TestLSystemLeafCountRange(t *testing.T) {
	tree, err := Generate(Config{Mode: ModeLSystem, LSystem: LSystemParams{
		Axiom:        "FL",
		ScaleFactor:  0.5,
		BranchRadius: 1,
		MinLeafCount: 3,
		MaxLeafCount: 3,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Leaves) != 3 {
		t.Errorf("leaves = %d, want exactly 3 when min == max", len(tree.Leaves))
	}
}

func TestLSystemLeafSeedReproducible(t *testing.T) {
	cfg := Config{Mode: ModeLSystem, LSystem: LSystemParams{
		Axiom:        "FLFLFL",
		ScaleFactor:  0.5,
		BranchRadius: 1,
		MinLeafCount: 1,
		MaxLeafCount: 9,
		Seed:         42,
	}}
	a, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Leaves) != len(b.Leaves) {
		t.Errorf("leaf counts differ for same seed: %d vs %d", len(a.Leaves), len(b.Leaves))
	}
}

func TestLSystemIgnoresRewriteOnlySymbols(t *testing.T) {
	plain, err := Generate(Config{Mode: ModeLSystem, LSystem: LSystemParams{
		Axiom: "FF", ScaleFactor: 0.5, BranchRadius: 1,
	}})
	if err != nil {
		t.Fatal(err)
	}
	noisy, err := Generate(Config{Mode: ModeLSystem, LSystem: LSystemParams{
		Axiom: "XFY*FX", ScaleFactor: 0.5, BranchRadius: 1,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(plain.Branches) != len(noisy.Branches) {
		t.Errorf("rewrite-only symbols changed geometry: %d vs %d branches",
			len(plain.Branches), len(noisy.Branches))
	}
}
