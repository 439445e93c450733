package quadrature

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Rule is a set of integration points and weights
type Rule struct {
	X []r3.Vec
	W []float64
}

func (r *Rule) Len() int { return len(r.W) }

func (r *Rule) Add(x r3.Vec, w float64) {
	r.X = append(r.X, x)
	r.W = append(r.W, w)
}

func (r *Rule) Append(o Rule) {
	r.X = append(r.X, o.X...)
	r.W = append(r.W, o.W...)
}

// Sum of the weights, the measure of the integration domain
func (r *Rule) Sum() float64 {
	return floats.Sum(r.W)
}

func (r *Rule) Integrate(f func(x r3.Vec) float64) (val float64) {
	for i, x := range r.X {
		val += r.W[i] * f(x)
	}
	return
}

// TriangleRule integrates exactly up to the given degree on the reference
// triangle (0,0), (1,0), (0,1). Points carry Z = 0.
func TriangleRule(degree int) (r Rule) {
	switch {
	case degree <= 1:
		r.Add(r3.Vec{X: 1. / 3., Y: 1. / 3.}, 0.5)
	case degree == 2:
		for _, p := range [][2]float64{{1. / 6., 1. / 6.}, {2. / 3., 1. / 6.}, {1. / 6., 2. / 3.}} {
			r.Add(r3.Vec{X: p[0], Y: p[1]}, 1./6.)
		}
	case degree <= 4:
		// Dunavant degree 4
		addTriOrbit(&r, 0.445948490915965, 0.5*0.223381589678011)
		addTriOrbit(&r, 0.091576213509771, 0.5*0.109951743655322)
	case degree == 5:
		// Dunavant degree 5
		s15 := math.Sqrt(15.)
		r.Add(r3.Vec{X: 1. / 3., Y: 1. / 3.}, 0.5*0.225)
		addTriOrbit(&r, (6.-s15)/21., 0.5*(155.-s15)/1200.)
		addTriOrbit(&r, (6.+s15)/21., 0.5*(155.+s15)/1200.)
	default:
		r = collapsedTriangle(PointsForDegree(degree))
	}
	return
}

// addTriOrbit adds the three points with barycentrics (a, a, 1-2a)
func addTriOrbit(r *Rule, a, w float64) {
	b := 1. - 2.*a
	r.Add(r3.Vec{X: a, Y: a}, w)
	r.Add(r3.Vec{X: b, Y: a}, w)
	r.Add(r3.Vec{X: a, Y: b}, w)
}

// collapsedTriangle is the Duffy collapsed tensor product rule
func collapsedTriangle(n int) (r Rule) {
	var (
		xu, wu = JacobiGQ(1, 0, n-1)
		xv, wv = GaussLegendre(n)
	)
	for i := range xu {
		u := 0.5 * (1. + xu[i])
		for j := range xv {
			v := 0.5 * (1. + xv[j])
			r.Add(r3.Vec{X: u, Y: (1. - u) * v}, 0.125*wu[i]*wv[j])
		}
	}
	return
}

// TetrahedronRule integrates exactly up to the given degree on the reference
// tetrahedron (0,0,0), (1,0,0), (0,1,0), (0,0,1)
func TetrahedronRule(degree int) (r Rule) {
	switch {
	case degree <= 1:
		r.Add(r3.Vec{X: 0.25, Y: 0.25, Z: 0.25}, 1./6.)
	case degree == 2:
		var (
			a = (5. + 3.*math.Sqrt(5.)) / 20.
			b = (5. - math.Sqrt(5.)) / 20.
		)
		for _, p := range []r3.Vec{{X: b, Y: b, Z: b}, {X: a, Y: b, Z: b}, {X: b, Y: a, Z: b}, {X: b, Y: b, Z: a}} {
			r.Add(p, 1./24.)
		}
	default:
		r = collapsedTetrahedron(PointsForDegree(degree))
	}
	return
}

func collapsedTetrahedron(n int) (r Rule) {
	var (
		xu, wu = JacobiGQ(2, 0, n-1)
		xv, wv = JacobiGQ(1, 0, n-1)
		xw, ww = GaussLegendre(n)
	)
	for i := range xu {
		u := 0.5 * (1. + xu[i])
		for j := range xv {
			v := 0.5 * (1. + xv[j])
			for k := range xw {
				w := 0.5 * (1. + xw[k])
				x := r3.Vec{X: u, Y: (1. - u) * v, Z: (1. - u) * (1. - v) * w}
				r.Add(x, wu[i]*wv[j]*ww[k]/64.)
			}
		}
	}
	return
}

// HexahedronRule is the n^3 point tensor Gauss-Legendre rule on [-1,1]^3
func HexahedronRule(n int) (r Rule) {
	x, w := GaussLegendre(n)
	for k := range x {
		for j := range x {
			for i := range x {
				r.Add(r3.Vec{X: x[i], Y: x[j], Z: x[k]}, w[i]*w[j]*w[k])
			}
		}
	}
	return
}

// MapTriangle maps the reference triangle rule onto the physical triangle a, b, c
func MapTriangle(a, b, c r3.Vec, degree int) (r Rule) {
	var (
		e1, e2 = r3.Sub(b, a), r3.Sub(c, a)
		jac    = r3.Norm(r3.Cross(e1, e2))
		ref    = TriangleRule(degree)
	)
	for i, p := range ref.X {
		x := r3.Add(a, r3.Add(r3.Scale(p.X, e1), r3.Scale(p.Y, e2)))
		r.Add(x, ref.W[i]*jac)
	}
	return
}

// MapTetrahedron maps the reference tetrahedron rule onto the physical tet
func MapTetrahedron(tet [4]r3.Vec, degree int) (r Rule) {
	var (
		e1, e2, e3 = r3.Sub(tet[1], tet[0]), r3.Sub(tet[2], tet[0]), r3.Sub(tet[3], tet[0])
		jac        = math.Abs(r3.Dot(e1, r3.Cross(e2, e3)))
		ref        = TetrahedronRule(degree)
	)
	for i, p := range ref.X {
		x := r3.Add(tet[0], r3.Add(r3.Scale(p.X, e1), r3.Add(r3.Scale(p.Y, e2), r3.Scale(p.Z, e3))))
		r.Add(x, ref.W[i]*jac)
	}
	return
}
