// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

// Q is a quaternion of float32.
type Q struct {
	V V3
	R float32
}

// Mul sets q to contain l ⋅ r.
func (q *Q) Mul(l, r *Q) {
	v := ScaleV3(r.R, l.V)
	w := ScaleV3(l.R, r.V)
	v = AddV3(v, w)
	w = Cross(l.V, r.V)
	d := DotV3(l.V, r.V)
	q.V = AddV3(v, w)
	q.R = l.R*r.R - d
}
