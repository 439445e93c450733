package geometry3D

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Polygon is a planar, convex polygon with vertices in counter clockwise order
// about its normal
type Polygon []r3.Vec

// AreaVector is the Newell normal scaled by the polygon area
func (pg Polygon) AreaVector() (a r3.Vec) {
	var (
		n = len(pg)
	)
	if n < 3 {
		return
	}
	o := pg[0]
	for i := 1; i < n-1; i++ {
		a = r3.Add(a, r3.Cross(r3.Sub(pg[i], o), r3.Sub(pg[i+1], o)))
	}
	a = r3.Scale(0.5, a)
	return
}

func (pg Polygon) Area() float64 {
	return r3.Norm(pg.AreaVector())
}

func (pg Polygon) Normal() r3.Vec {
	a := pg.AreaVector()
	if r3.Norm(a) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(a)
}

// Centroid is the area weighted centroid, the vertex mean for degenerate polygons
func (pg Polygon) Centroid() (c r3.Vec) {
	var (
		aTot float64
		n    = pg.Normal()
	)
	for _, tri := range pg.Fan() {
		a := 0.5 * r3.Dot(n, r3.Cross(r3.Sub(tri[1], tri[0]), r3.Sub(tri[2], tri[0])))
		tc := r3.Scale(1./3., r3.Add(tri[0], r3.Add(tri[1], tri[2])))
		c = r3.Add(c, r3.Scale(a, tc))
		aTot += a
	}
	if aTot == 0 {
		return pg.vertexMean()
	}
	c = r3.Scale(1./aTot, c)
	return
}

func (pg Polygon) vertexMean() (c r3.Vec) {
	if len(pg) == 0 {
		return
	}
	for _, v := range pg {
		c = r3.Add(c, v)
	}
	c = r3.Scale(1./float64(len(pg)), c)
	return
}

// Fan triangulates the polygon from its first vertex
func (pg Polygon) Fan() (tris [][3]r3.Vec) {
	for i := 1; i < len(pg)-1; i++ {
		tris = append(tris, [3]r3.Vec{pg[0], pg[i], pg[i+1]})
	}
	return
}

func (pg Polygon) Reverse() (r Polygon) {
	r = make(Polygon, len(pg))
	for i, v := range pg {
		r[len(pg)-1-i] = v
	}
	return
}

// Clip keeps the part of the polygon on or below the plane
func (pg Polygon) Clip(pl Plane, tol float64) Polygon {
	below, _, _ := pg.split(pl, tol)
	return below
}

// split divides the polygon by the plane and returns the pieces below and
// above along with all points lying on the plane
func (pg Polygon) split(pl Plane, tol float64) (below, above Polygon, on []r3.Vec) {
	var (
		n      = len(pg)
		d      = make([]float64, n)
		s      = make([]int, n)
		nOn    int
		nBelow int
		nAbove int
	)
	for i, v := range pg {
		d[i] = pl.Distance(v)
		s[i] = classify(d[i], tol)
		switch s[i] {
		case 0:
			nOn++
		case -1:
			nBelow++
		case 1:
			nAbove++
		}
	}
	if nOn == n {
		on = append(on, pg...)
		return
	}
	if nAbove == 0 {
		below = append(Polygon{}, pg...)
		for i := range pg {
			if s[i] == 0 {
				on = append(on, pg[i])
			}
		}
		return
	}
	if nBelow == 0 {
		above = append(Polygon{}, pg...)
		for i := range pg {
			if s[i] == 0 {
				on = append(on, pg[i])
			}
		}
		return
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		switch s[i] {
		case -1:
			below = append(below, pg[i])
		case 1:
			above = append(above, pg[i])
		default:
			below = append(below, pg[i])
			above = append(above, pg[i])
			on = append(on, pg[i])
		}
		if s[i]*s[j] < 0 {
			p := edgeIntersection(pg[i], pg[j], d[i], d[j])
			below = append(below, p)
			above = append(above, p)
			on = append(on, p)
		}
	}
	below = below.clean(tol)
	above = above.clean(tol)
	return
}

// clean drops consecutive duplicate vertices, returns nil if fewer than three remain
func (pg Polygon) clean(tol float64) (r Polygon) {
	tol2 := tol * tol
	for _, v := range pg {
		if len(r) > 0 && r3.Norm2(r3.Sub(v, r[len(r)-1])) <= tol2 {
			continue
		}
		r = append(r, v)
	}
	for len(r) > 1 && r3.Norm2(r3.Sub(r[0], r[len(r)-1])) <= tol2 {
		r = r[:len(r)-1]
	}
	if len(r) < 3 {
		return nil
	}
	return
}

// Overlap returns the area shared by two coplanar convex polygons
func (pg Polygon) Overlap(o Polygon, tol float64) float64 {
	var (
		n    = o.Normal()
		clip = pg
	)
	if len(o) < 3 || len(pg) < 3 {
		return 0
	}
	for i := range o {
		a, b := o[i], o[(i+1)%len(o)]
		e := r3.Sub(b, a)
		if r3.Norm(e) == 0 {
			continue
		}
		clip = clip.Clip(NewPlaneNormal(r3.Cross(e, n), a), tol)
		if len(clip) < 3 {
			return 0
		}
	}
	return clip.Area()
}

// ConvexHullOnPlane orders a set of points lying on a plane into a convex
// polygon, counter clockwise about the plane normal. Duplicates within tol
// are merged.
func ConvexHullOnPlane(pts []r3.Vec, pl Plane, tol float64) (pg Polygon) {
	var (
		uniq []r3.Vec
		tol2 = tol * tol
	)
	for _, p := range pts {
		dup := false
		for _, q := range uniq {
			if r3.Norm2(r3.Sub(p, q)) <= tol2 {
				dup = true
				break
			}
		}
		if !dup {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 3 {
		return nil
	}
	c := Polygon(uniq).vertexMean()
	u, v := pl.Basis()
	ang := make([]float64, len(uniq))
	for i, p := range uniq {
		dp := r3.Sub(p, c)
		ang[i] = math.Atan2(r3.Dot(dp, v), r3.Dot(dp, u))
	}
	idx := make([]int, len(uniq))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return ang[idx[i]] < ang[idx[j]] })
	pg = make(Polygon, len(uniq))
	for i, k := range idx {
		pg[i] = uniq[k]
	}
	return
}
