package cut

import (
	"math"

	"github.com/notargets/gocut/geometry3D"
	"github.com/notargets/gocut/quadrature"
	"gonum.org/v1/gonum/spatial/r3"
)

// VolumeCell is a connected region of an element on one side of the cutter
// surface, made of one or more convex pieces
type VolumeCell struct {
	ID            int
	Element       *Element
	Pieces        []*geometry3D.Polyhedron
	Facets        []geometry3D.Face // Boundary and cut faces enclosing the cell
	BoundaryCells []*BoundaryCell
	Position      Position
	Rule          quadrature.Rule // Set by CutFinalize

	volume           float64
	nodes            []*Node // Element nodes lying in or on the cell
	conflictingVotes bool
	skipped          bool
}

// BoundaryCell is a piece of a cutter side inside a volume cell, oriented
// along the side normal
type BoundaryCell struct {
	Side *Side
	Poly geometry3D.Polygon
	Rule quadrature.Rule
}

func (vc *VolumeCell) Volume() float64 { return vc.volume }

// Nodes are the element nodes lying in or on the cell
func (vc *VolumeCell) Nodes() []*Node { return vc.nodes }

// HasRule is false for inside cells skipped by CutFinalize
func (vc *VolumeCell) HasRule() bool { return !vc.skipped && vc.Rule.Len() > 0 }

func (vc *VolumeCell) Bounds() (b geometry3D.AABB) {
	for i, ph := range vc.Pieces {
		if i == 0 {
			b = ph.Bounds()
			continue
		}
		b = b.Union(ph.Bounds())
	}
	return
}

func (vc *VolumeCell) Centroid() (c r3.Vec) {
	if vc.volume == 0 {
		return
	}
	for _, ph := range vc.Pieces {
		c = r3.Add(c, r3.Scale(ph.Volume(), ph.Centroid()))
	}
	return r3.Scale(1./vc.volume, c)
}

// BoundaryArea is the total area of the cut faces of the cell
func (vc *VolumeCell) BoundaryArea() (a float64) {
	for _, bc := range vc.BoundaryCells {
		a += bc.Poly.Area()
	}
	return
}

func (vc *VolumeCell) assembleFacets(e *Element) {
	sides := make(map[int]*Side, len(e.cutSides))
	for _, s := range e.cutSides {
		sides[s.ID] = s
	}
	for _, ph := range vc.Pieces {
		for _, f := range ph.Faces {
			if f.Kind == geometry3D.InteriorFace {
				continue
			}
			vc.Facets = append(vc.Facets, f)
			if f.Kind != geometry3D.CutFace {
				continue
			}
			s := sides[f.Side]
			poly := f.Poly
			if r3.Dot(f.Plane.N, s.Normal()) < 0 {
				poly = poly.Reverse()
			}
			vc.BoundaryCells = append(vc.BoundaryCells, &BoundaryCell{Side: s, Poly: poly})
		}
	}
}

// cutAreas sums the cut faces by orientation: in counts faces whose outward
// normal runs along the side normal, out those running against it
func (vc *VolumeCell) cutAreas() (in, out float64) {
	for _, f := range vc.Facets {
		if f.Kind != geometry3D.CutFace {
			continue
		}
		var (
			a = f.Poly.Area()
			n r3.Vec
		)
		for _, bc := range vc.BoundaryCells {
			if bc.Side.ID == f.Side {
				n = bc.Side.Normal()
				break
			}
		}
		switch d := r3.Dot(f.Plane.N, n); {
		case d > 0:
			in += a
		case d < 0:
			out += a
		}
	}
	return
}

// votePosition weighs the cut faces by area: an outward normal along the side
// normal puts the cell behind the cutter surface
func (vc *VolumeCell) votePosition(minArea float64) Position {
	in, out := vc.cutAreas()
	switch {
	case in > minArea && out > minArea:
		vc.conflictingVotes = true
		return Undecided
	case in > minArea:
		return Inside
	case out > minArea:
		return Outside
	}
	return Undecided
}

// tessellationRule integrates over the tets of every piece. A cell too flat
// to hold a positive tet gets a single point at its centroid.
func (vc *VolumeCell) tessellationRule(order int) (r quadrature.Rule) {
	for _, ph := range vc.Pieces {
		for _, tet := range ph.Tetrahedra() {
			r.Append(quadrature.MapTetrahedron(tet, order))
		}
	}
	if r.Len() == 0 && vc.volume > 0 {
		r.Add(vc.Centroid(), vc.volume)
	}
	return
}

// directDivergenceRule integrates along x lines from a reference plane, using
// the divergence theorem over the given faces
func directDivergenceRule(faces []geometry3D.Face, x0 float64, order int) (r quadrature.Rule) {
	const eps = 1.e-12
	xi, wi := quadrature.GaussLegendre(quadrature.PointsForDegree(order))
	for _, f := range faces {
		nx := f.Plane.N.X
		if math.Abs(nx) <= eps {
			continue
		}
		for _, tri := range f.Poly.Fan() {
			fr := quadrature.MapTriangle(tri[0], tri[1], tri[2], order+1)
			for k, p := range fr.X {
				l := p.X - x0
				for i := range xi {
					x := r3.Vec{X: x0 + 0.5*l*(1.+xi[i]), Y: p.Y, Z: p.Z}
					r.Add(x, fr.W[k]*nx*wi[i]*0.5*l)
				}
			}
		}
	}
	return
}

func (vc *VolumeCell) directDivergence(order int, tol float64) quadrature.Rule {
	x0 := vc.Bounds().Min.X
	r := directDivergenceRule(vc.Facets, x0, order)
	if math.Abs(r.Sum()-vc.volume) <= tol {
		return r
	}
	var pr quadrature.Rule
	for _, ph := range vc.Pieces {
		pr.Append(directDivergenceRule(ph.Faces, ph.Bounds().Min.X, order))
	}
	if math.Abs(pr.Sum()-vc.volume) <= tol {
		return pr
	}
	return vc.tessellationRule(order)
}

func (bc *BoundaryCell) tessellationRule(order int) (r quadrature.Rule) {
	for _, tri := range bc.Poly.Fan() {
		r.Append(quadrature.MapTriangle(tri[0], tri[1], tri[2], order))
	}
	return
}
