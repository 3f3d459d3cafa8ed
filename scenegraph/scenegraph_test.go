// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scenegraph

import "testing"

// floatTraits treats the transformation's DataType and Matrix as the
// same float64, with composition as addition, so tests can check the
// tree/joint algorithms without pulling in the linear package.
type floatTraits struct{}

func (floatTraits) Identity() float64                { return 0 }
func (floatTraits) Compose(parent, child float64) float64 { return parent + child }
func (floatTraits) Inverted(x float64) float64       { return -x }
func (floatTraits) ToMatrix(x float64) float64       { return x }
func (floatTraits) FromMatrix(m float64) float64     { return m }

func chain(t *testing.T) (s *Scene[float64, float64], a, b, c *Object[float64, float64]) {
	t.Helper()
	s = NewScene[float64, float64](floatTraits{})
	a = NewObject[float64, float64](1)
	b = NewObject[float64, float64](2)
	c = NewObject[float64, float64](3)
	a.SetParent(&s.Object)
	b.SetParent(a)
	c.SetParent(b)
	return
}

func TestSetParentBasics(t *testing.T) {
	_, a, b, c := chain(t)
	if a.Parent() == nil {
		t.Fatal("a.Parent() is nil")
	}
	if b.Parent() != a {
		t.Fatal("b.Parent() != a")
	}
	if c.Parent() != b {
		t.Fatal("c.Parent() != b")
	}
	if !a.IsDirty() || !b.IsDirty() || !c.IsDirty() {
		t.Fatal("chain must be dirty after attaching")
	}
}

func TestSetParentCyclePrevention(t *testing.T) {
	_, a, b, _ := chain(t)
	// b is a's descendant; reparenting a under b would create a cycle.
	a.SetParent(b)
	if a.Parent() == b {
		t.Fatal("SetParent must reject making a a child of its own descendant")
	}
}

func TestSetParentSceneRootNoOp(t *testing.T) {
	s, a, _, _ := chain(t)
	s.SetParent(a)
	if s.Parent() != nil {
		t.Fatal("SetParent on a scene root must be a no-op")
	}
}

func TestAbsoluteTransformation(t *testing.T) {
	_, a, b, c := chain(t)
	tr := floatTraits{}
	if got := a.AbsoluteTransformation(tr); got != 1 {
		t.Fatalf("a.AbsoluteTransformation() = %v, want 1", got)
	}
	if got := b.AbsoluteTransformation(tr); got != 3 {
		t.Fatalf("b.AbsoluteTransformation() = %v, want 3", got)
	}
	if got := c.AbsoluteTransformation(tr); got != 6 {
		t.Fatalf("c.AbsoluteTransformation() = %v, want 6", got)
	}
}

func TestSceneDetachedIsNil(t *testing.T) {
	o := NewObject[float64, float64](0)
	if o.Scene() != nil {
		t.Fatal("a freshly created object must be detached")
	}
}

// recordingFeature captures the values delivered by Clean/CleanInverted.
type recordingFeature struct {
	want          FeatureWant
	matrix, inv   float64
	dirtyCalls    int
	cleanCalls    int
}

func (f *recordingFeature) Wants() FeatureWant { return f.want }
func (f *recordingFeature) Clean(m float64)    { f.matrix = m; f.cleanCalls++ }
func (f *recordingFeature) CleanInverted(m float64) { f.inv = m }
func (f *recordingFeature) MarkDirty()         { f.dirtyCalls++ }

func TestSingleObjectClean(t *testing.T) {
	_, a, b, c := chain(t)
	feat := &recordingFeature{want: WantAbsolute | WantInvertedAbsolute}
	c.AddFeature(feat)
	c.SetDirty() // already dirty from attaching; harmless no-op

	tr := floatTraits{}
	c.Clean(tr)

	if c.IsDirty() {
		t.Fatal("c must be clean after Clean()")
	}
	if feat.matrix != 6 {
		t.Fatalf("feat.matrix = %v, want 6", feat.matrix)
	}
	if feat.inv != -6 {
		t.Fatalf("feat.inv = %v, want -6", feat.inv)
	}
	_ = a
	_ = b
}

// Scenario 6 of the design's testable properties: a scene with root
// s and chain a -> b -> c, s.transformations([c, a], identity).
func TestBatchTransformationsSharedPath(t *testing.T) {
	s, a, b, c := chain(t)

	result, err := Transformations(s, []*Object[float64, float64]{c, a}, s.traits.Identity())
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 2 {
		t.Fatalf("len(result) = %d, want 2", len(result))
	}
	if result[0] != 6 {
		t.Fatalf("result[0] (c's absolute) = %v, want 6", result[0])
	}
	if result[1] != 1 {
		t.Fatalf("result[1] (a's absolute) = %v, want 1", result[1])
	}

	for _, o := range []*Object[float64, float64]{a, b, c, &s.Object} {
		if o.counter != counterSentinel {
			t.Errorf("counter = 0x%04X, want sentinel", o.counter)
		}
		if o.flags&(jointFlag|visitedFlag) != 0 {
			t.Errorf("flags = 0x%02X, want Joint and Visited clear", o.flags)
		}
	}
}

func TestBatchTransformationsDuplicateInput(t *testing.T) {
	s, a, _, c := chain(t)
	result, err := Transformations(s, []*Object[float64, float64]{c, c, a}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if result[0] != result[1] {
		t.Fatalf("duplicate inputs diverged: %v != %v", result[0], result[1])
	}
	if result[0] != 6 {
		t.Fatalf("result[0] = %v, want 6", result[0])
	}
}

func TestBatchTransformationsForeignObject(t *testing.T) {
	other := NewScene[float64, float64](floatTraits{})
	stray := NewObject[float64, float64](5)
	stray.SetParent(&other.Object)

	s := NewScene[float64, float64](floatTraits{})
	if _, err := Transformations(s, []*Object[float64, float64]{stray}, 0); err == nil {
		t.Fatal("want ForeignObject error for an object from a different scene")
	}
	// Restoration must still have happened. stray stays Dirty from
	// SetParent; only the Joint/Visited scratch flags must be clear.
	if stray.counter != counterSentinel || stray.flags&(jointFlag|visitedFlag) != 0 {
		t.Fatal("scratch state must be restored even on error")
	}
}

func TestSetCleanBatch(t *testing.T) {
	_, a, b, c := chain(t)
	feat := &recordingFeature{want: WantAbsolute}
	c.AddFeature(feat)

	if err := SetClean([]*Object[float64, float64]{a, b, c}); err != nil {
		t.Fatal(err)
	}
	if a.IsDirty() || b.IsDirty() || c.IsDirty() {
		t.Fatal("all objects must be clean after SetClean")
	}
	if feat.matrix != 6 {
		t.Fatalf("feat.matrix = %v, want 6", feat.matrix)
	}
}

func TestSetCleanDetached(t *testing.T) {
	o := NewObject[float64, float64](1)
	o.SetDirty()
	if err := SetClean([]*Object[float64, float64]{o}); err == nil {
		t.Fatal("want Detached error for an object with no scene")
	}
}
