package cut

import (
	"math"

	"github.com/notargets/gocut/geometry3D"
	"gonum.org/v1/gonum/spatial/r3"
)

// edgeKey orders the end points so both triangles sharing an edge find it
type edgeKey [2]r3.Vec

func newEdgeKey(a, b r3.Vec) edgeKey {
	if lessVec(b, a) {
		a, b = b, a
	}
	return edgeKey{a, b}
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

// surface is the cutter as a whole. The side of a point is the sign of its
// offset from the closest surface point, measured along the angle weighted
// pseudo normal of the closest feature. Side perimeter edges used by a
// single side are the open boundary of the cutter.
type surface struct {
	tree   *sideTree
	vertex map[r3.Vec]r3.Vec
	edge   map[edgeKey]r3.Vec
	open   map[*Side][][2]r3.Vec
}

func newSurface(sides []*Side, tree *sideTree) (sf *surface) {
	sf = &surface{
		tree:   tree,
		vertex: make(map[r3.Vec]r3.Vec),
		edge:   make(map[edgeKey]r3.Vec),
		open:   make(map[*Side][][2]r3.Vec),
	}
	perimeter := make(map[[2]int]int)
	for _, s := range sides {
		for _, tri := range s.Tris {
			n := geometry3D.Polygon(tri[:]).Normal()
			for i := range tri {
				var (
					a    = tri[i]
					u, w = r3.Sub(tri[(i+1)%3], a), r3.Sub(tri[(i+2)%3], a)
					ang  = math.Atan2(r3.Norm(r3.Cross(u, w)), r3.Dot(u, w))
					k    = newEdgeKey(a, tri[(i+1)%3])
				)
				sf.vertex[a] = r3.Add(sf.vertex[a], r3.Scale(ang, n))
				sf.edge[k] = r3.Add(sf.edge[k], n)
			}
		}
		for i := range s.Nodes {
			perimeter[nodePair(s.Nodes[i], s.Nodes[(i+1)%len(s.Nodes)])]++
		}
	}
	for _, s := range sides {
		for i, a := range s.Nodes {
			b := s.Nodes[(i+1)%len(s.Nodes)]
			if perimeter[nodePair(a, b)] == 1 {
				sf.open[s] = append(sf.open[s], [2]r3.Vec{a.X, b.X})
			}
		}
	}
	return
}

func nodePair(a, b *Node) [2]int {
	if b.ID < a.ID {
		return [2]int{b.ID, a.ID}
	}
	return [2]int{a.ID, b.ID}
}

// signedDistance is positive on the side the cutter normals point to. near
// are sides expected to hold the closest point, the side tree is searched
// for anything closer.
func (sf *surface) signedDistance(x r3.Vec, near []*Side) float64 {
	var (
		best    = math.Inf(1)
		closest r3.Vec
		normal  r3.Vec
	)
	scan := func(sides []*Side) {
		for _, s := range sides {
			for _, tri := range s.Tris {
				q, feature, i, j := geometry3D.ClosestPointOnTriangle(x, tri)
				d2 := r3.Norm2(r3.Sub(x, q))
				if d2 >= best {
					continue
				}
				best, closest = d2, q
				switch feature {
				case geometry3D.TriangleVertex:
					normal = sf.vertex[tri[i]]
				case geometry3D.TriangleEdge:
					normal = sf.edge[newEdgeKey(tri[i], tri[j])]
				default:
					normal = geometry3D.Polygon(tri[:]).AreaVector()
				}
			}
		}
	}
	scan(near)
	if sf.tree != nil {
		r := math.Sqrt(best)
		if math.IsInf(r, 1) {
			return r
		}
		scan(sf.tree.Overlapping(geometry3D.NewAABB(x), r))
	}
	d := math.Sqrt(best)
	if r3.Dot(r3.Sub(x, closest), normal) < 0 {
		d = -d
	}
	return d
}

// sideOf classifies a fragment by its centroid, falling back to the vertex
// farthest from the surface for fragments hugging it. Zero means the
// fragment lies on the surface within tol.
func (sf *surface) sideOf(ph *geometry3D.Polyhedron, near []*Side, tol float64) int {
	d := sf.signedDistance(ph.Centroid(), near)
	if math.Abs(d) <= tol {
		for _, v := range ph.Vertices() {
			if dv := sf.signedDistance(v, near); math.Abs(dv) > math.Abs(d) {
				d = dv
			}
		}
	}
	switch {
	case d > tol:
		return 1
	case d < -tol:
		return -1
	}
	return 0
}

// opensInside reports whether an open edge of the cutter passes through the
// interior of the element pieces, leaving both sides of the cutter connected
func (sf *surface) opensInside(sides []*Side, pieces []*geometry3D.Polyhedron, tol float64) bool {
	shift := func(f geometry3D.Face) float64 {
		if f.Kind == geometry3D.BoundaryFace {
			return -tol
		}
		return tol
	}
	for _, s := range sides {
		for _, seg := range sf.open[s] {
			l := r3.Norm(r3.Sub(seg[1], seg[0]))
			for _, ph := range pieces {
				if t0, t1, ok := ph.ClipSegment(seg[0], seg[1], shift); ok && (t1-t0)*l > tol {
					return true
				}
			}
		}
	}
	return false
}
