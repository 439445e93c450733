package cut

import (
	"math"

	"github.com/notargets/gocut/geometry3D"
	"github.com/notargets/gocut/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Node is a mesh or cutter node. Cutter nodes that are not part of the
// background mesh carry negative IDs.
type Node struct {
	ID       int
	X        r3.Vec
	Position Position
}

// Side is a cutter facet
type Side struct {
	ID    int
	Shape mesh.CellType
	Nodes []*Node
	Tris  [][3]r3.Vec
}

func (s *Side) Bounds() geometry3D.AABB {
	var pts []r3.Vec
	for _, n := range s.Nodes {
		pts = append(pts, n.X)
	}
	return geometry3D.NewAABB(pts...)
}

// Normal is the area weighted unit normal, oriented by the node ordering
func (s *Side) Normal() r3.Vec {
	var a r3.Vec
	for _, tri := range s.Tris {
		a = r3.Add(a, geometry3D.Polygon(tri[:]).AreaVector())
	}
	if r3.Norm(a) == 0 {
		return a
	}
	return r3.Unit(a)
}

func (s *Side) Area() (a float64) {
	for _, tri := range s.Tris {
		a += geometry3D.Polygon(tri[:]).Area()
	}
	return
}

// Element is a background mesh element
type Element struct {
	ID    int
	Shape mesh.CellType
	Nodes []*Node

	cells    []*VolumeCell
	cutSides []*Side
	volume   float64
	tol      float64
	cracked  bool // an open cutter edge runs through the element
}

func (e *Element) X() (X []r3.Vec) {
	X = make([]r3.Vec, len(e.Nodes))
	for i, n := range e.Nodes {
		X[i] = n.X
	}
	return
}

func (e *Element) Bounds() geometry3D.AABB {
	return geometry3D.NewAABB(e.X()...)
}

// VolumeCells are available after the cut
func (e *Element) VolumeCells() []*VolumeCell { return e.cells }

// CutSides are the sides whose bounding boxes touch the element
func (e *Element) CutSides() []*Side { return e.cutSides }

// Volume of the element as seen by the cut, available after the cut
func (e *Element) Volume() float64 { return e.volume }

// IsCut reports whether any cutter side produced a cut face in the element
func (e *Element) IsCut() bool {
	for _, vc := range e.cells {
		if len(vc.BoundaryCells) > 0 {
			return true
		}
	}
	return false
}

// polyhedra returns the convex pieces describing the element: the element
// itself if all faces are planar and it is convex, a tet split otherwise
func (e *Element) polyhedra(tol float64) (phs []*geometry3D.Polyhedron) {
	var (
		X     = e.X()
		local = mesh.Faces(e.Shape, mesh.LocalIndices(e.Shape))
		faces []geometry3D.Face
	)
	for _, f := range local {
		var poly geometry3D.Polygon
		for _, i := range f {
			poly = append(poly, X[i])
		}
		face, ok := geometry3D.NewFace(poly, geometry3D.BoundaryFace, 0)
		if !ok {
			faces = nil
			break
		}
		faces = append(faces, face)
	}
	if len(faces) == len(local) {
		ph := geometry3D.NewPolyhedron(faces)
		if isConvex(ph, X, tol) {
			return []*geometry3D.Polyhedron{ph}
		}
	}
	if e.Shape != mesh.Hex8 {
		return nil
	}
	for _, tet := range mesh.Hex8Tets {
		var tf []geometry3D.Face
		for _, tri := range [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}} {
			var (
				ids  = [3]int{tet[tri[0]], tet[tri[1]], tet[tri[2]]}
				kind = geometry3D.InteriorFace
			)
			if onHexFace(local, ids) {
				kind = geometry3D.BoundaryFace
			}
			poly := geometry3D.Polygon{X[ids[0]], X[ids[1]], X[ids[2]]}
			if face, ok := geometry3D.NewFace(poly, kind, 0); ok {
				tf = append(tf, face)
			}
		}
		if len(tf) == 4 {
			phs = append(phs, geometry3D.NewPolyhedron(tf))
		}
	}
	return
}

// isConvex checks face planarity and that no vertex lies outside a face plane
func isConvex(ph *geometry3D.Polyhedron, X []r3.Vec, tol float64) bool {
	for _, f := range ph.Faces {
		for _, v := range f.Poly {
			if math.Abs(f.Plane.Distance(v)) > tol {
				return false
			}
		}
		for _, x := range X {
			if f.Plane.Distance(x) > tol {
				return false
			}
		}
	}
	return ph.Volume() > 0
}

func onHexFace(faces [][]int, ids [3]int) bool {
	for _, f := range faces {
		n := 0
		for _, id := range ids {
			for _, fi := range f {
				if fi == id {
					n++
					break
				}
			}
		}
		if n == 3 {
			return true
		}
	}
	return false
}
