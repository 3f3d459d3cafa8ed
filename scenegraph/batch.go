// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scenegraph

import "github.com/gviegas/materialscene/diag"

// Transformations computes the absolute transformation of every
// object in objects, in order, using joint-based path sharing: an
// ancestor that a path reaches after another path has already visited
// it becomes a joint whose composed transformation is computed exactly
// once and reused by every path through it. Paths that reach a common
// ancestor in the same step of the walk each climb through it and
// compose it separately.
//
// objects must belong to scene s. Duplicate entries in objects are
// permitted and resolved to the same result without recomputation.
// Transformations transiently mutates scratch flags and counters on
// every object it visits and fully restores them before returning,
// including on early-error returns.
func Transformations[D, M any](s *Scene[D, M], objects []*Object[D, M], initial D) ([]D, error) {
	const op = "Object::transformations"

	if len(objects) == 0 {
		return nil, nil
	}
	if len(objects) >= maxObjects {
		return nil, diag.Report(op, diag.TooManyObjects, "")
	}

	tr := s.traits

	// jointList mirrors objects position-for-position (duplicates and
	// all), then grows with every newly discovered ancestor joint. It
	// and the work queues below reuse the scene's scratch buffers so a
	// caller driving many Transformations calls (e.g. once per frame)
	// does not reallocate them each time.
	jointList := append(s.scratchJoints[:0], objects...)
	w := append(s.scratchWork[:0], objects...)
	next := s.scratchNext[:0]
	t := s.scratchT[:0]
	var touched []*Object[D, M]

	defer func() {
		s.scratchJoints = jointList[:0]
		s.scratchWork = w[:0]
		s.scratchNext = next[:0]
		s.scratchT = t[:0]
	}()

	restore := func() {
		for _, o := range touched {
			o.flags &^= jointFlag | visitedFlag
			o.counter = counterSentinel
		}
	}

	// Seed joints: dedup the input by counter. A later duplicate keeps
	// the counter its first occurrence assigned.
	for i, o := range objects {
		if o.counter == counterSentinel {
			o.counter = uint16(i)
			o.flags |= jointFlag
			touched = append(touched, o)
		}
	}

	// Walk up every path until it meets an already-known joint or the
	// scene root, marking Visited along the way and promoting the
	// first shared ancestor found on each path to a joint.
	for len(w) > 0 {
		next = next[:0]
		for _, o := range w {
			if o.flags&visitedFlag != 0 {
				continue // duplicate arrival, drop
			}
			o.flags |= visitedFlag
			touched = append(touched, o)

			parent := o.parent
			if parent == nil {
				if o.scene != s {
					restore()
					return nil, diag.Report(op, diag.ForeignObject, "")
				}
				continue // reached the scene root
			}
			if parent.flags&(visitedFlag|jointFlag) != 0 {
				if parent.flags&jointFlag == 0 {
					if len(jointList) >= maxObjects {
						restore()
						return nil, diag.Report(op, diag.TooManyObjects, "")
					}
					parent.flags |= jointFlag
					touched = append(touched, parent)
					parent.counter = uint16(len(jointList))
					jointList = append(jointList, parent)
				}
				continue // already a convergence point, drop
			}
			next = append(next, parent) // climb one step
		}
		w, next = next, w
	}

	// Compute every joint's composed transformation, sharing work
	// across paths that converge on the same ancestor.
	t = append(t, make([]D, len(jointList))...)
	var computeJoint func(i int) D
	computeJoint = func(i int) D {
		j := jointList[i]
		if j.flags&visitedFlag == 0 {
			return t[i] // already computed by an earlier call
		}
		j.flags &^= visitedFlag
		acc := j.local
		cur := j
		for {
			parent := cur.parent
			if parent == nil {
				acc = tr.Compose(initial, acc)
				break
			}
			if parent.flags&jointFlag != 0 {
				acc = tr.Compose(computeJoint(int(parent.counter)), acc)
				break
			}
			parent.flags &^= visitedFlag
			acc = tr.Compose(parent.local, acc)
			cur = parent
		}
		t[i] = acc
		return acc
	}
	for i := range jointList {
		computeJoint(i)
	}

	// Patch duplicate positions, then restore every touched flag/
	// counter to its quiescent state.
	result := make([]D, len(objects))
	for i := range objects {
		if jointList[i].counter != uint16(i) {
			result[i] = t[jointList[i].counter]
		} else {
			result[i] = t[i]
		}
	}
	restore()

	return result, nil
}
