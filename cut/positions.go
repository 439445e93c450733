package cut

import (
	"math"

	"github.com/notargets/gocut/geometry3D"
	"github.com/notargets/gocut/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// assignNodePositions copies decided cell positions to the element nodes
// they contain. A node claimed by cells of different positions, or lying on
// a cut face, is on the cut surface.
func (mi *MeshIntersection) assignNodePositions() {
	for _, e := range mi.elements {
		for _, vc := range e.cells {
			if !vc.Position.Decided() {
				continue
			}
			for _, n := range vc.nodes {
				setNodePosition(n, vc.Position)
			}
		}
		for _, n := range e.Nodes {
			if onCutFace(e, n, e.tol) {
				n.Position = OnCutSurface
			}
		}
	}
}

func setNodePosition(n *Node, p Position) {
	switch n.Position {
	case Undecided:
		n.Position = p
	case OnCutSurface:
	default:
		if n.Position != p {
			n.Position = OnCutSurface
		}
	}
}

func onCutFace(e *Element, n *Node, tol float64) bool {
	for _, vc := range e.cells {
		for _, bc := range vc.BoundaryCells {
			pl := geometry3D.NewPlaneNormal(bc.Poly.Normal(), bc.Poly[0])
			if math.Abs(pl.Distance(n.X)) > tol {
				continue
			}
			if insidePolygon(bc.Poly, pl, n.X, tol) {
				return true
			}
		}
	}
	return false
}

// insidePolygon tests a point already known to lie in the polygon plane
func insidePolygon(pg geometry3D.Polygon, pl geometry3D.Plane, x r3.Vec, tol float64) bool {
	for i := range pg {
		a, b := pg[i], pg[(i+1)%len(pg)]
		out := r3.Cross(r3.Sub(b, a), pl.N)
		if r3.Norm(out) == 0 {
			continue
		}
		if geometry3D.NewPlaneNormal(out, a).Distance(x) > tol {
			return false
		}
	}
	return true
}

// propagatePositions spreads decided node positions into undecided cells
// through the node to element incidence, until nothing changes
func (mi *MeshIntersection) propagatePositions() {
	var (
		nodeIndex = make(map[*Node]int)
		nodes     []*Node
		rows      = make([][]int, len(mi.elements))
	)
	for k, e := range mi.elements {
		for _, n := range e.Nodes {
			j, ok := nodeIndex[n]
			if !ok {
				j = len(nodes)
				nodeIndex[n] = j
				nodes = append(nodes, n)
			}
			rows[k] = append(rows[k], j)
		}
	}
	var (
		inc    = utils.NewIncidence(len(nodes), rows)
		queued = make([]bool, len(mi.elements))
		queue  []int
	)
	for k := range mi.elements {
		queue = append(queue, k)
		queued[k] = true
	}
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		queued[k] = false
		for _, vc := range mi.elements[k].cells {
			if vc.Position != Undecided {
				continue
			}
			p := Undecided
			for _, n := range vc.nodes {
				if n.Position.Decided() {
					p = n.Position
					break
				}
			}
			if p == Undecided {
				continue
			}
			vc.Position = p
			for _, n := range vc.nodes {
				if n.Position != Undecided {
					continue
				}
				n.Position = p
				for _, kk := range inc.Rows(nodeIndex[n]) {
					if !queued[kk] {
						queue = append(queue, kk)
						queued[kk] = true
					}
				}
			}
		}
	}
}
