package cut

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/notargets/gocut/geometry3D"
)

type sideEntry struct {
	side *Side
	rect rtreego.Rect
}

func (se *sideEntry) Bounds() rtreego.Rect { return se.rect }

// sideTree is a bounding box R-tree over the cutter sides
type sideTree struct {
	tree *rtreego.Rtree
}

func newSideTree(sides []*Side, tol float64) (st *sideTree, err error) {
	st = &sideTree{tree: rtreego.NewTree(3, 4, 16)}
	for _, s := range sides {
		var r rtreego.Rect
		if r, err = boxRect(s.Bounds(), tol); err != nil {
			return nil, err
		}
		st.tree.Insert(&sideEntry{side: s, rect: r})
	}
	return
}

// Overlapping returns the sides whose boxes touch b, ordered by side ID
func (st *sideTree) Overlapping(b geometry3D.AABB, tol float64) (sides []*Side) {
	r, err := boxRect(b, tol)
	if err != nil {
		return nil
	}
	for _, obj := range st.tree.SearchIntersect(r) {
		sides = append(sides, obj.(*sideEntry).side)
	}
	sort.Slice(sides, func(i, j int) bool { return sides[i].ID < sides[j].ID })
	return
}

// boxRect converts an expanded box into an rtree rect, which needs positive
// extents in every direction
func boxRect(b geometry3D.AABB, tol float64) (rtreego.Rect, error) {
	b = b.Expand(tol)
	var (
		p       = rtreego.Point{b.Min.X, b.Min.Y, b.Min.Z}
		lengths = []float64{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z}
	)
	for i := range lengths {
		lengths[i] = math.Max(lengths[i], math.SmallestNonzeroFloat32)
	}
	return rtreego.NewRect(p, lengths)
}
