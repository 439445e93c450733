package cut

import (
	"fmt"
	"math"

	"github.com/notargets/gocut/geometry3D"
	"github.com/notargets/gocut/mesh"
	"github.com/notargets/gocut/quadrature"
	"gonum.org/v1/gonum/spatial/r3"
)

type finalizeParams struct {
	vc           VCellGaussPts
	bc           BCellGaussPts
	tetCellsOnly bool
	includeInner bool
	opts         Options
}

// finalize computes the integration rules of every cell of the element
func (e *Element) finalize(fp finalizeParams) {
	tol := fp.opts.VolumeTolerance * e.volume
	for _, vc := range e.cells {
		vc.Rule = quadrature.Rule{}
		vc.skipped = !fp.includeInner && vc.Position == Inside
		for _, bc := range vc.BoundaryCells {
			bc.Rule = bc.tessellationRule(fp.opts.BoundaryOrder)
		}
		if vc.skipped {
			continue
		}
		switch {
		case !e.IsCut() && len(vc.Pieces) == 1 && !fp.tetCellsOnly:
			vc.Rule = e.standardRule(vc, fp.opts.VolumeOrder)
		case fp.tetCellsOnly || fp.vc == VCellGaussPtsTessellation:
			vc.Rule = vc.tessellationRule(fp.opts.VolumeOrder)
		default:
			vc.Rule = vc.directDivergence(fp.opts.VolumeOrder, tol)
		}
	}
}

// standardRule is the Gauss rule of an uncut element that is a single convex
// piece, so the mapped rule sees the same volume as the cut
func (e *Element) standardRule(vc *VolumeCell, order int) (r quadrature.Rule) {
	X := e.X()
	switch e.Shape {
	case mesh.Hex8:
		var hx [8]r3.Vec
		copy(hx[:], X)
		ref := quadrature.HexahedronRule(quadrature.PointsForDegree(order + 1))
		for i, p := range ref.X {
			x, detJ := mesh.Hex8Map(hx, p.X, p.Y, p.Z)
			r.Add(x, ref.W[i]*math.Abs(detJ))
		}
	case mesh.Tet4:
		r = quadrature.MapTetrahedron([4]r3.Vec{X[0], X[1], X[2], X[3]}, order)
	default:
		r = vc.tessellationRule(order)
	}
	return
}

// volumeErrors checks the cell volumes of a cut element against the element
// volume and each rule against its cell volume. Every cell that is not
// skipped needs integration points, and outside a cracked element no cell
// may carry cut faces of both orientations.
func (e *Element) volumeErrors(tol float64) (bad []string) {
	var (
		sum float64
		abs = tol * e.volume
	)
	if !e.IsCut() {
		return
	}
	for _, vc := range e.cells {
		sum += vc.volume
		if vc.conflictingVotes && !e.cracked {
			bad = append(bad, fmt.Sprintf("element %d cell %d: cut faces of both orientations", e.ID, vc.ID))
		}
		if vc.skipped {
			continue
		}
		if vc.Rule.Len() == 0 {
			bad = append(bad, fmt.Sprintf("element %d cell %d: no integration points", e.ID, vc.ID))
			continue
		}
		if math.Abs(vc.Rule.Sum()-vc.volume) > abs {
			bad = append(bad, fmt.Sprintf("element %d cell %d: rule weights %.12g, cell volume %.12g",
				e.ID, vc.ID, vc.Rule.Sum(), vc.volume))
		}
	}
	if math.Abs(sum-e.volume) > abs {
		bad = append(bad, fmt.Sprintf("element %d: cell volumes %.12g, element volume %.12g",
			e.ID, sum, e.volume))
	}
	return
}

func facetTriangles(faces []geometry3D.Face) (tris [][3]r3.Vec) {
	for _, f := range faces {
		tris = append(tris, f.Poly.Fan()...)
	}
	return
}
