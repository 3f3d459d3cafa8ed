// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package scenegraph implements a rooted tree of scene objects
// carrying a parameterized transformation type, with dirty-flag
// propagation and a batched clean algorithm that shares composed
// ancestor transformations across the objects being cleaned.
//
// The tree is an intrusive doubly-linked parent/child/sibling structure
// with a pluggable transformation algebra (TransformationTraits) and
// cached feature callbacks, in the style engine/skin.go composes a
// joint hierarchy from a flat, caller-supplied Joint array.
package scenegraph

import "github.com/gviegas/materialscene/diag"

// counterSentinel marks an object's scratch counter as unused
// outside of a Transformations call.
const counterSentinel uint16 = 0xFFFF

// maxObjects bounds a single Transformations call, so the scratch
// counter's 16 bits can address every possible joint slot.
const maxObjects = int(counterSentinel)

type flagWord uint8

const (
	dirtyFlag flagWord = 1 << iota
	visitedFlag
	jointFlag
)

// TransformationTraits is the capability set the tree needs from a
// caller-supplied transformation type D and its matrix form M.
// Compose is parent-first and need not be commutative.
type TransformationTraits[D, M any] interface {
	Identity() D
	Compose(parent, child D) D
	Inverted(x D) D
	ToMatrix(x D) M
	FromMatrix(m M) D
}

// FeatureWant reports which cached, absolute transformation forms a
// Feature wants delivered to it.
type FeatureWant uint8

// Feature wants.
const (
	WantAbsolute FeatureWant = 1 << iota
	WantInvertedAbsolute
)

// Feature is attached to an Object and receives its cached absolute
// transformation (as a matrix) whenever the object is cleaned.
type Feature[M any] interface {
	Wants() FeatureWant
	Clean(matrix M)
	CleanInverted(invertedMatrix M)
	MarkDirty()
}

// Object is a node in a scene graph: an intrusive tree of
// parent/child/sibling links carrying a local transformation, an
// opaque feature list, and the scratch flags/counter that
// Transformations uses transiently during a batch clean.
type Object[D, M any] struct {
	parent, next, prev, child *Object[D, M]
	scene                     *Scene[D, M] // non-nil only on a scene's own root object
	features                  []Feature[M]
	local                     D
	flags                     flagWord
	counter                   uint16
}

// Scene is the distinguished root of a tree of Objects.
type Scene[D, M any] struct {
	Object[D, M]
	traits TransformationTraits[D, M]

	// Scratch buffers reused across Transformations calls to avoid
	// reallocating the joint list and work queues every call; always
	// truncated to length 0 between calls.
	scratchJoints, scratchWork, scratchNext []*Object[D, M]
	scratchT                                []D
}

// NewObject creates a detached object with the given local
// transformation.
func NewObject[D, M any](local D) *Object[D, M] {
	return &Object[D, M]{local: local, counter: counterSentinel}
}

// NewScene creates a scene whose root object uses identity as its
// local transformation.
func NewScene[D, M any](traits TransformationTraits[D, M]) *Scene[D, M] {
	s := &Scene[D, M]{traits: traits}
	s.local = traits.Identity()
	s.counter = counterSentinel
	s.scene = s
	return s
}

// Parent returns o's parent, or nil if o is detached or a scene root.
func (o *Object[D, M]) Parent() *Object[D, M] { return o.parent }

// Child returns o's first child, or nil if it has none.
func (o *Object[D, M]) Child() *Object[D, M] { return o.child }

// NextSibling returns the next of o's siblings, or nil if o is the
// last child of its parent.
func (o *Object[D, M]) NextSibling() *Object[D, M] { return o.next }

// Local returns o's local transformation.
func (o *Object[D, M]) Local() D { return o.local }

// SetLocal replaces o's local transformation and marks o dirty.
func (o *Object[D, M]) SetLocal(local D) {
	o.local = local
	o.SetDirty()
}

// AddFeature attaches f to o.
func (o *Object[D, M]) AddFeature(f Feature[M]) { o.features = append(o.features, f) }

// RemoveFeature detaches f from o, if attached.
func (o *Object[D, M]) RemoveFeature(f Feature[M]) {
	for i, g := range o.features {
		if g == f {
			o.features = append(o.features[:i], o.features[i+1:]...)
			return
		}
	}
}

// isSceneRoot reports whether o is the root object of a scene.
func (o *Object[D, M]) isSceneRoot() bool { return o.scene != nil }

// Scene returns the scene o belongs to, or nil if o is detached
// (its root is not a scene).
func (o *Object[D, M]) Scene() *Scene[D, M] {
	root := o
	for root.parent != nil {
		root = root.parent
	}
	return root.scene
}

// isAncestorOf reports whether o is x or an ancestor of x.
func (o *Object[D, M]) isAncestorOf(x *Object[D, M]) bool {
	for p := x; p != nil; p = p.parent {
		if p == o {
			return true
		}
	}
	return false
}

// unlink removes o from its current parent's child list.
func (o *Object[D, M]) unlink() {
	if o.prev != nil {
		o.prev.next = o.next
	} else if o.parent != nil {
		o.parent.child = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	}
	o.parent = nil
	o.next = nil
	o.prev = nil
}

// SetParent reparents o under parent. It is a no-op if o is a scene
// root, if parent is already o's current parent, or if parent is o
// itself or one of o's descendants (which would introduce a cycle).
// A nil parent detaches o.
func (o *Object[D, M]) SetParent(parent *Object[D, M]) {
	if o.isSceneRoot() || parent == o.parent {
		return
	}
	if parent != nil && o.isAncestorOf(parent) {
		return
	}
	o.unlink()
	o.parent = parent
	if parent != nil {
		o.next = parent.child
		if parent.child != nil {
			parent.child.prev = o
		}
		parent.child = o
	}
	o.SetDirty()
}

// IsDirty reports whether o's absolute transformation is stale.
func (o *Object[D, M]) IsDirty() bool { return o.flags&dirtyFlag != 0 }

// SetDirty marks o and every descendant dirty, notifying every
// feature along the way. It is a no-op if o is already dirty, since
// dirtiness is already known to hold transitively for its subtree.
func (o *Object[D, M]) SetDirty() {
	if o.IsDirty() {
		return
	}
	for _, f := range o.features {
		f.MarkDirty()
	}
	for c := o.child; c != nil; c = c.next {
		c.SetDirty()
	}
	o.flags |= dirtyFlag
}

// AbsoluteTransformation computes o's absolute transformation by a
// naive recursive walk to the root, composing every local
// transformation along the way.
func (o *Object[D, M]) AbsoluteTransformation(tr TransformationTraits[D, M]) D {
	if o.parent == nil {
		return o.local
	}
	return tr.Compose(o.parent.AbsoluteTransformation(tr), o.local)
}

// applyAbsolute delivers absolute to every feature attached to o
// that wants it, computing the matrix and/or inverted matrix form at
// most once each, then clears o's dirty flag.
func applyAbsolute[D, M any](tr TransformationTraits[D, M], o *Object[D, M], absolute D) {
	var matrix, invMatrix M
	var haveMatrix, haveInv bool
	for _, f := range o.features {
		want := f.Wants()
		if want&WantAbsolute != 0 {
			if !haveMatrix {
				matrix = tr.ToMatrix(absolute)
				haveMatrix = true
			}
			f.Clean(matrix)
		}
		if want&WantInvertedAbsolute != 0 {
			if !haveInv {
				invMatrix = tr.ToMatrix(tr.Inverted(absolute))
				haveInv = true
			}
			f.CleanInverted(invMatrix)
		}
	}
	o.flags &^= dirtyFlag
}

// Clean cleans o and every dirty ancestor above it, delivering each
// one's absolute transformation to its features. The walk up stops at
// the nearest clean ancestor, whose absolute transformation (computed
// by AbsoluteTransformation, a walk to the root) serves as the base;
// objects do not store their absolute transformation.
func (o *Object[D, M]) Clean(tr TransformationTraits[D, M]) {
	if !o.IsDirty() {
		return
	}
	stack := []*Object[D, M]{o}
	base := tr.Identity()
	cur := o
	for {
		p := cur.parent
		if p == nil {
			break
		}
		if !p.IsDirty() {
			base = p.AbsoluteTransformation(tr)
			break
		}
		stack = append(stack, p)
		cur = p
	}
	for i := len(stack) - 1; i >= 0; i-- {
		n := stack[i]
		base = tr.Compose(base, n.local)
		applyAbsolute(tr, n, base)
	}
}

// SetClean cleans every dirty object in objects using a single
// batched Transformations call so joint ancestors are composed only
// once. Already-clean objects are skipped. The scene is taken from
// the first dirty object; it fails with diag.Detached if that object
// does not reach a scene.
func SetClean[D, M any](objects []*Object[D, M]) error {
	const op = "Object::setClean"
	var dirty []*Object[D, M]
	for _, o := range objects {
		if o.IsDirty() {
			dirty = append(dirty, o)
		}
	}
	if len(dirty) == 0 {
		return nil
	}
	sc := dirty[0].Scene()
	if sc == nil {
		return diag.Report(op, diag.Detached, "")
	}
	abs, err := Transformations(sc, dirty, sc.traits.Identity())
	if err != nil {
		return err
	}
	for i, o := range dirty {
		applyAbsolute[D, M](sc.traits, o, abs[i])
	}
	return nil
}
