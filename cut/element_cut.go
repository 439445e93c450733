package cut

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/gocut/geometry3D"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/spatial/r3"
)

const angularTolerance = 1.e-8

// cut splits the element by the candidate sides and assembles the volume
// cells. Warnings about skipped degenerate geometry are returned, not printed,
// since elements are cut concurrently.
func (e *Element) cut(sides []*Side, sf *surface, opts Options) (warnings []string, err error) {
	var (
		diag = e.Bounds().Diagonal()
		tol  = opts.GeometricTolerance * diag
	)
	e.tol = tol
	e.cutSides = sides
	e.cells = nil
	e.cracked = false
	frags := e.polyhedra(tol)
	if len(frags) == 0 {
		err = errors.Errorf("element %d: degenerate %s geometry", e.ID, e.Shape)
		return
	}
	e.volume = 0
	for _, ph := range frags {
		e.volume += ph.Volume()
	}
	for _, s := range sides {
		for it, tri := range s.Tris {
			pl, ok := geometry3D.NewPlane(tri[0], tri[1], tri[2])
			if !ok {
				warnings = append(warnings,
					fmt.Sprintf("element %d: side %d triangle %d is degenerate, skipped", e.ID, s.ID, it))
				continue
			}
			frags = cutByTriangle(frags, tri, pl, s.ID, tol)
		}
	}
	var signs []int
	switch {
	case !hasCutFace(frags):
		// Edge plane splits alone leave the element whole
		frags = e.polyhedra(tol)
	case sf.opensInside(sides, e.polyhedra(tol), tol):
		e.cracked = true
		warnings = append(warnings, fmt.Sprintf("element %d: the cutter ends inside the element", e.ID))
	default:
		signs = make([]int, len(frags))
		for i, ph := range frags {
			signs[i] = sf.sideOf(ph, sides, tol)
		}
	}
	e.cells, warnings = e.buildVolumeCells(frags, signs, tol, diag, opts.VolumeTolerance*e.volume, warnings)
	return
}

func hasCutFace(frags []*geometry3D.Polyhedron) bool {
	for _, ph := range frags {
		for _, f := range ph.Faces {
			if f.Kind == geometry3D.CutFace {
				return true
			}
		}
	}
	return false
}

// cutByTriangle restricts the plane of the triangle to the prism above the
// triangle: fragments are split by the three edge planes first, and only the
// piece inside the prism is split by the triangle plane
func cutByTriangle(frags []*geometry3D.Polyhedron, tri [3]r3.Vec, pl geometry3D.Plane,
	sideID int, tol float64) (next []*geometry3D.Polyhedron) {
	var (
		box   = geometry3D.NewAABB(tri[:]...).Expand(tol)
		edges [3]geometry3D.Plane
	)
	for i := range tri {
		a, b := tri[i], tri[(i+1)%3]
		edges[i] = geometry3D.NewPlaneNormal(r3.Cross(r3.Sub(b, a), pl.N), a)
	}
	for _, f := range frags {
		if !f.Bounds().Overlaps(box) {
			next = append(next, f)
			continue
		}
		below, on, above := f.Classify(pl, tol)
		if (below == 0 || above == 0) && on < 3 {
			next = append(next, f)
			continue
		}
		inside := f
		for _, ep := range edges {
			b, a, ok := inside.Split(ep, geometry3D.InteriorFace, 0, tol)
			if ok {
				next = append(next, a)
				inside = b
				continue
			}
			if maxBelow, maxAbove := extents(inside, ep); maxAbove > maxBelow {
				next = append(next, inside)
				inside = nil
				break
			}
		}
		if inside == nil {
			continue
		}
		b, a, ok := inside.Split(pl, geometry3D.CutFace, sideID, tol)
		if ok {
			next = append(next, b, a)
			continue
		}
		maxBelow, maxAbove := extents(inside, pl)
		inside.TagCoplanar(pl, geometry3D.CutFace, sideID, math.Max(tol, math.Min(maxBelow, maxAbove)))
		next = append(next, inside)
	}
	return
}

// extents returns how far the polyhedron reaches below and above the plane
func extents(ph *geometry3D.Polyhedron, pl geometry3D.Plane) (maxBelow, maxAbove float64) {
	for _, v := range ph.Vertices() {
		d := pl.Distance(v)
		maxAbove = math.Max(maxAbove, d)
		maxBelow = math.Max(maxBelow, -d)
	}
	return
}

// fragGroup is a set of fragments forming one volume cell
type fragGroup struct {
	ids    []int
	sign   int
	volume float64
	area   float64
}

// buildVolumeCells joins fragments sharing interior faces into volume cells.
// With signs, only fragments on the same side of the cutter are joined and
// slivers are folded into a neighbor. Without signs, positions come from the
// orientation of the cut faces alone.
func (e *Element) buildVolumeCells(frags []*geometry3D.Polyhedron, signs []int, tol, diag, minVolume float64,
	warnings []string) (cells []*VolumeCell, warn []string) {
	warn = warnings
	g := simple.NewUndirectedGraph()
	for i := range frags {
		g.AddNode(simple.Node(i))
	}
	boxes := make([]geometry3D.AABB, len(frags))
	for i, f := range frags {
		boxes[i] = f.Bounds().Expand(tol)
	}
	for i := range frags {
		for j := i + 1; j < len(frags); j++ {
			if signs != nil && signs[i] != signs[j] {
				continue
			}
			if !boxes[i].Overlaps(boxes[j]) {
				continue
			}
			if sharesInteriorFace(frags[i], frags[j], tol, diag) {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}
	var groups []*fragGroup
	for _, cc := range topo.ConnectedComponents(g) {
		grp := &fragGroup{}
		for _, n := range cc {
			id := int(n.ID())
			grp.ids = append(grp.ids, id)
			grp.volume += frags[id].Volume()
			for _, f := range frags[id].Faces {
				grp.area += f.Poly.Area()
			}
		}
		sort.Ints(grp.ids)
		if signs != nil {
			grp.sign = signs[grp.ids[0]]
		}
		groups = append(groups, grp)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ids[0] < groups[j].ids[0] })
	if signs != nil {
		groups = mergeSlivers(frags, boxes, groups, tol, minVolume)
	}
	minArea := tol * diag
	for _, grp := range groups {
		vc := &VolumeCell{
			ID:      len(cells),
			Element: e,
		}
		for _, id := range grp.ids {
			vc.Pieces = append(vc.Pieces, frags[id])
			vc.volume += frags[id].Volume()
		}
		vc.assembleFacets(e)
		in, out := vc.cutAreas()
		switch {
		case signs == nil || grp.sign == 0:
			vc.Position = vc.votePosition(minArea)
		case grp.sign < 0:
			vc.Position = Inside
			vc.conflictingVotes = out > math.Max(minArea, 0.01*in)
		default:
			vc.Position = Outside
			vc.conflictingVotes = in > math.Max(minArea, 0.01*out)
		}
		if vc.conflictingVotes {
			warn = append(warn, fmt.Sprintf("element %d: volume cell %d has cut faces of both orientations",
				e.ID, vc.ID))
		}
		for _, n := range e.Nodes {
			for _, id := range grp.ids {
				if boxes[id].Contains(n.X, 0) && frags[id].Contains(n.X, tol) {
					vc.nodes = append(vc.nodes, n)
					break
				}
			}
		}
		cells = append(cells, vc)
	}
	return
}

// mergeSlivers folds groups thinner than tol, or smaller than minVolume, into
// the neighbor sharing the most face area, preferring a neighbor on the same
// side. Cut faces between a sliver and a neighbor on the other side become
// interior faces.
func mergeSlivers(frags []*geometry3D.Polyhedron, boxes []geometry3D.AABB, groups []*fragGroup,
	tol, minVolume float64) []*fragGroup {
	isSliver := func(grp *fragGroup) bool {
		return grp.volume <= minVolume || grp.volume <= tol*grp.area
	}
	for len(groups) > 1 {
		k := -1
		for i, grp := range groups {
			if isSliver(grp) && (k < 0 || grp.volume < groups[k].volume) {
				k = i
			}
		}
		if k < 0 {
			break
		}
		var (
			sliver     = groups[k]
			best       = -1
			bestShared float64
			bestSame   bool
		)
		for i, o := range groups {
			if i == k {
				continue
			}
			shared := sharedArea(frags, boxes, sliver.ids, o.ids, tol)
			same := o.sign == sliver.sign
			if best < 0 || betterNeighbor(shared, same, bestShared, bestSame) {
				best, bestShared, bestSame = i, shared, same
			}
		}
		o := groups[best]
		if !bestSame {
			uncutShared(frags, boxes, sliver.ids, o.ids, tol)
		}
		o.ids = append(o.ids, sliver.ids...)
		sort.Ints(o.ids)
		o.volume += sliver.volume
		o.area += sliver.area
		groups = append(groups[:k], groups[k+1:]...)
	}
	return groups
}

func betterNeighbor(shared float64, same bool, bestShared float64, bestSame bool) bool {
	if (shared > 0) != (bestShared > 0) {
		return shared > 0
	}
	if same != bestSame {
		return same
	}
	return shared > bestShared
}

// sharedArea sums the overlap of coincident, opposite faces between two sets
// of fragments
func sharedArea(frags []*geometry3D.Polyhedron, boxes []geometry3D.AABB, a, b []int, tol float64) (area float64) {
	for _, i := range a {
		for _, j := range b {
			if !boxes[i].Overlaps(boxes[j]) {
				continue
			}
			for _, fa := range frags[i].Faces {
				for _, fb := range frags[j].Faces {
					if _, opposite := fa.Plane.Coincident(fb.Plane, angularTolerance, tol); opposite {
						area += fa.Poly.Overlap(fb.Poly, tol)
					}
				}
			}
		}
	}
	return
}

func uncutShared(frags []*geometry3D.Polyhedron, boxes []geometry3D.AABB, a, b []int, tol float64) {
	for _, i := range a {
		for _, j := range b {
			if !boxes[i].Overlaps(boxes[j]) {
				continue
			}
			for ia := range frags[i].Faces {
				fa := &frags[i].Faces[ia]
				if fa.Kind != geometry3D.CutFace {
					continue
				}
				for ib := range frags[j].Faces {
					fb := &frags[j].Faces[ib]
					if fb.Kind != geometry3D.CutFace {
						continue
					}
					if _, opposite := fa.Plane.Coincident(fb.Plane, angularTolerance, tol); !opposite {
						continue
					}
					if fa.Poly.Overlap(fb.Poly, tol) > 0 {
						fa.Kind, fb.Kind = geometry3D.InteriorFace, geometry3D.InteriorFace
					}
				}
			}
		}
	}
}

func sharesInteriorFace(a, b *geometry3D.Polyhedron, tol, diag float64) bool {
	for _, fa := range a.Faces {
		if fa.Kind != geometry3D.InteriorFace {
			continue
		}
		for _, fb := range b.Faces {
			if fb.Kind != geometry3D.InteriorFace {
				continue
			}
			if _, opposite := fa.Plane.Coincident(fb.Plane, angularTolerance, tol); !opposite {
				continue
			}
			if fa.Poly.Overlap(fb.Poly, tol) > tol*diag {
				return true
			}
		}
	}
	return false
}
