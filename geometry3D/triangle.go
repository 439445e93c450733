package geometry3D

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// TriangleFeature is the part of a triangle holding the closest point
type TriangleFeature uint8

const (
	TriangleFace TriangleFeature = iota
	TriangleEdge
	TriangleVertex
)

// ClosestPointOnTriangle returns the point of tri closest to p. For a vertex
// feature I is the vertex index, for an edge feature I and J are its ends.
func ClosestPointOnTriangle(p r3.Vec, tri [3]r3.Vec) (q r3.Vec, feature TriangleFeature, I, J int) {
	var (
		a, b, c = tri[0], tri[1], tri[2]
		ab, ac  = r3.Sub(b, a), r3.Sub(c, a)
		ap      = r3.Sub(p, a)
		d1, d2  = r3.Dot(ab, ap), r3.Dot(ac, ap)
	)
	if d1 <= 0 && d2 <= 0 {
		return a, TriangleVertex, 0, 0
	}
	bp := r3.Sub(p, b)
	d3, d4 := r3.Dot(ab, bp), r3.Dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b, TriangleVertex, 1, 1
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return r3.Add(a, r3.Scale(v, ab)), TriangleEdge, 0, 1
	}
	cp := r3.Sub(p, c)
	d5, d6 := r3.Dot(ab, cp), r3.Dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c, TriangleVertex, 2, 2
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return r3.Add(a, r3.Scale(w, ac)), TriangleEdge, 0, 2
	}
	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return r3.Add(b, r3.Scale(w, r3.Sub(c, b))), TriangleEdge, 1, 2
	}
	denom := 1. / (va + vb + vc)
	v, w := vb*denom, vc*denom
	q = r3.Add(a, r3.Add(r3.Scale(v, ab), r3.Scale(w, ac)))
	feature = TriangleFace
	return
}

// ClipSegment returns the parameter range [t0, t1] of the segment a-b lying
// in the polyhedron. Each face plane is moved outward by shift(face), so a
// negative shift keeps the range strictly inside that face. ok is false when
// the segment misses the polyhedron.
func (ph *Polyhedron) ClipSegment(a, b r3.Vec, shift func(f Face) float64) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	for _, f := range ph.Faces {
		s := shift(f)
		da, db := f.Plane.Distance(a)-s, f.Plane.Distance(b)-s
		switch {
		case da > 0 && db > 0:
			return 0, 0, false
		case da <= 0 && db <= 0:
			continue
		}
		t := da / (da - db)
		if da > 0 {
			if t > t0 {
				t0 = t
			}
		} else if t < t1 {
			t1 = t
		}
		if t0 >= t1 {
			return 0, 0, false
		}
	}
	ok = true
	return
}
