package geometry3D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// FaceKind records where a polyhedron face came from
type FaceKind uint8

const (
	BoundaryFace FaceKind = iota // On the surface of the background element
	InteriorFace                 // Created by an auxiliary split plane
	CutFace                      // Lies on a cutter side
)

var faceKindNames = [...]string{"Boundary", "Interior", "Cut"}

func (k FaceKind) String() string {
	if int(k) >= len(faceKindNames) {
		return fmt.Sprintf("FaceKind(%d)", int(k))
	}
	return faceKindNames[k]
}

// Face is an outward oriented polyhedron face
type Face struct {
	Poly  Polygon
	Plane Plane
	Kind  FaceKind
	Side  int // Cutter side ID, only meaningful for CutFace
}

// NewFace computes the face plane from the polygon; ok is false for a
// degenerate polygon
func NewFace(poly Polygon, kind FaceKind, side int) (f Face, ok bool) {
	a := poly.AreaVector()
	if len(poly) < 3 || r3.Norm(a) == 0 {
		return
	}
	f = Face{
		Poly:  poly,
		Plane: NewPlaneNormal(a, poly.Centroid()),
		Kind:  kind,
		Side:  side,
	}
	ok = true
	return
}

// Polyhedron is a convex polyhedron bounded by planar faces
type Polyhedron struct {
	Faces []Face
}

// NewPolyhedron assembles a convex polyhedron, flipping faces as needed so
// every face normal points outward
func NewPolyhedron(faces []Face) (ph *Polyhedron) {
	ph = &Polyhedron{Faces: faces}
	c := ph.vertexMean()
	for i := range ph.Faces {
		f := &ph.Faces[i]
		if f.Plane.Distance(c) > 0 {
			f.Poly = f.Poly.Reverse()
			f.Plane = f.Plane.Flip()
		}
	}
	return
}

func (ph *Polyhedron) vertexMean() (c r3.Vec) {
	var (
		n int
	)
	for _, f := range ph.Faces {
		for _, v := range f.Poly {
			c = r3.Add(c, v)
			n++
		}
	}
	if n != 0 {
		c = r3.Scale(1./float64(n), c)
	}
	return
}

// Vertices returns the distinct vertices of the polyhedron
func (ph *Polyhedron) Vertices() (verts []r3.Vec) {
	seen := make(map[r3.Vec]struct{})
	for _, f := range ph.Faces {
		for _, v := range f.Poly {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			verts = append(verts, v)
		}
	}
	return
}

// Volume is computed from the divergence theorem over the faces
func (ph *Polyhedron) Volume() (vol float64) {
	c := ph.vertexMean()
	for _, f := range ph.Faces {
		vol += r3.Dot(r3.Sub(f.Poly[0], c), f.Poly.AreaVector())
	}
	vol /= 3.
	return
}

func (ph *Polyhedron) Centroid() (c r3.Vec) {
	var (
		vTot float64
	)
	for _, tet := range ph.Tetrahedra() {
		v := tet.Volume()
		c = r3.Add(c, r3.Scale(v, tet.Centroid()))
		vTot += v
	}
	if vTot == 0 {
		return ph.vertexMean()
	}
	c = r3.Scale(1./vTot, c)
	return
}

func (ph *Polyhedron) Bounds() AABB {
	return NewAABB(ph.Vertices()...)
}

// Classify counts the vertices below, on and above the plane
func (ph *Polyhedron) Classify(pl Plane, tol float64) (below, on, above int) {
	for _, v := range ph.Vertices() {
		switch classify(pl.Distance(v), tol) {
		case -1:
			below++
		case 0:
			on++
		case 1:
			above++
		}
	}
	return
}

// Contains reports whether x lies inside or on the boundary within tol
func (ph *Polyhedron) Contains(x r3.Vec, tol float64) bool {
	for _, f := range ph.Faces {
		if f.Plane.Distance(x) > tol {
			return false
		}
	}
	return true
}

// Split cuts the polyhedron with a plane. The new cap face on both pieces gets
// the given kind and side. ok is false if the plane does not pass through the
// interior, or if one of the pieces would be thinner than tol.
func (ph *Polyhedron) Split(pl Plane, kind FaceKind, side int, tol float64) (below, above *Polyhedron, ok bool) {
	var (
		bFaces, aFaces []Face
		capPts         []r3.Vec
	)
	nBelow, _, nAbove := ph.Classify(pl, tol)
	if nBelow == 0 || nAbove == 0 {
		return
	}
	for _, f := range ph.Faces {
		b, a, on := f.Poly.split(pl, tol)
		capPts = append(capPts, on...)
		if len(b) >= 3 && b.Area() > tol*tol {
			bFaces = append(bFaces, Face{Poly: b, Plane: f.Plane, Kind: f.Kind, Side: f.Side})
		}
		if len(a) >= 3 && a.Area() > tol*tol {
			aFaces = append(aFaces, Face{Poly: a, Plane: f.Plane, Kind: f.Kind, Side: f.Side})
		}
	}
	capPoly := ConvexHullOnPlane(capPts, pl, tol)
	if len(capPoly) < 3 {
		return
	}
	capArea := capPoly.Area()
	if capArea <= tol*tol || len(bFaces) < 3 || len(aFaces) < 3 {
		return
	}
	bFaces = append(bFaces, Face{Poly: capPoly, Plane: pl, Kind: kind, Side: side})
	aFaces = append(aFaces, Face{Poly: capPoly.Reverse(), Plane: pl.Flip(), Kind: kind, Side: side})
	below, above = &Polyhedron{Faces: bFaces}, &Polyhedron{Faces: aFaces}
	if below.Volume() <= tol*capArea || above.Volume() <= tol*capArea {
		return nil, nil, false
	}
	ok = true
	return
}

// TagCoplanar re-tags every face lying in the plane within tol and returns the
// number of faces changed
func (ph *Polyhedron) TagCoplanar(pl Plane, kind FaceKind, side int, tol float64) (n int) {
	for i := range ph.Faces {
		f := &ph.Faces[i]
		inPlane := true
		for _, v := range f.Poly {
			if math.Abs(pl.Distance(v)) > tol {
				inPlane = false
				break
			}
		}
		if inPlane {
			f.Kind = kind
			f.Side = side
			n++
		}
	}
	return
}

// Tetrahedra decomposes the polyhedron into tets fanned from its vertex mean
func (ph *Polyhedron) Tetrahedra() (tets []Tetrahedron) {
	c := ph.vertexMean()
	for _, f := range ph.Faces {
		for _, tri := range f.Poly.Fan() {
			tet := Tetrahedron{c, tri[0], tri[1], tri[2]}
			if tet.SignedVolume() <= 0 {
				continue
			}
			tets = append(tets, tet)
		}
	}
	return
}

// Tetrahedron vertices are ordered so that SignedVolume is positive when the
// last three wind counter clockwise seen from outside, looking back at the first
type Tetrahedron [4]r3.Vec

func (t Tetrahedron) SignedVolume() float64 {
	var (
		a = r3.Sub(t[1], t[0])
		b = r3.Sub(t[2], t[0])
		c = r3.Sub(t[3], t[0])
	)
	return r3.Dot(a, r3.Cross(b, c)) / 6.
}

func (t Tetrahedron) Volume() float64 {
	return math.Abs(t.SignedVolume())
}

func (t Tetrahedron) Centroid() r3.Vec {
	return r3.Scale(0.25, r3.Add(r3.Add(t[0], t[1]), r3.Add(t[2], t[3])))
}
