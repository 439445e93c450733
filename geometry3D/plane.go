package geometry3D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Plane is the set of points x with N·x = D, N is unit length
type Plane struct {
	N r3.Vec
	D float64
}

// NewPlane returns the plane through a, b, c oriented by the right hand rule.
// ok is false when the three points are (numerically) collinear.
func NewPlane(a, b, c r3.Vec) (pl Plane, ok bool) {
	var (
		ab, ac = r3.Sub(b, a), r3.Sub(c, a)
		n      = r3.Cross(ab, ac)
		l      = r3.Norm(n)
	)
	if l == 0 || l <= 1.e-14*(r3.Norm2(ab)+r3.Norm2(ac)) {
		return
	}
	n = r3.Scale(1./l, n)
	pl = Plane{N: n, D: r3.Dot(n, a)}
	ok = true
	return
}

// NewPlaneNormal returns the plane with normal direction n passing through x
func NewPlaneNormal(n, x r3.Vec) (pl Plane) {
	n = r3.Unit(n)
	pl = Plane{N: n, D: r3.Dot(n, x)}
	return
}

func (pl Plane) Distance(x r3.Vec) float64 {
	return r3.Dot(pl.N, x) - pl.D
}

func (pl Plane) Flip() Plane {
	return Plane{N: r3.Scale(-1, pl.N), D: -pl.D}
}

func (pl Plane) Project(x r3.Vec) r3.Vec {
	return r3.Sub(x, r3.Scale(pl.Distance(x), pl.N))
}

// Coincident reports whether o describes the same geometric plane, and if so
// whether the normals agree (same) or oppose each other (opposite)
func (pl Plane) Coincident(o Plane, angTol, tol float64) (same, opposite bool) {
	var (
		c = r3.Dot(pl.N, o.N)
	)
	switch {
	case c >= 1.-angTol:
		same = math.Abs(pl.D-o.D) <= tol
	case c <= -1.+angTol:
		opposite = math.Abs(pl.D+o.D) <= tol
	}
	return
}

// Basis returns an orthonormal in-plane pair with u × v = N
func (pl Plane) Basis() (u, v r3.Vec) {
	var (
		a = r3.Vec{X: 1}
	)
	if math.Abs(pl.N.X) > 0.9 {
		a = r3.Vec{Y: 1}
	}
	u = r3.Unit(r3.Cross(pl.N, a))
	v = r3.Cross(pl.N, u)
	return
}

// classify returns -1, 0, +1 for below, on and above the plane within tol
func classify(d, tol float64) int {
	switch {
	case d > tol:
		return 1
	case d < -tol:
		return -1
	default:
		return 0
	}
}

func lessVec(a, b r3.Vec) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// edgeIntersection computes the plane crossing of segment a-b from the signed
// distances of its end points. The end points are put in a canonical order
// first, so both faces sharing the edge get the same point bit for bit.
func edgeIntersection(a, b r3.Vec, da, db float64) r3.Vec {
	if lessVec(b, a) {
		a, b = b, a
		da, db = db, da
	}
	t := da / (da - db)
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
