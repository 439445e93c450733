package cut

import (
	"fmt"
	"io"
	"sort"

	"github.com/notargets/gocut/mesh"
)

// Status prints a summary of the cut
func (mi *MeshIntersection) Status(w io.Writer) {
	var (
		nCut, nBC int
		byPos     = make(map[Position]int)
		nodePos   = make(map[Position]int)
		vol       float64
	)
	for _, e := range mi.elements {
		if e.IsCut() {
			nCut++
		}
		for _, vc := range e.cells {
			byPos[vc.Position]++
			nBC += len(vc.BoundaryCells)
			vol += vc.volume
		}
	}
	for _, n := range mi.nodes {
		nodePos[n.Position]++
	}
	fmt.Fprintf(w, "Nodes = %d, Sides = %d, Elements = %d, Cut Elements = %d\n",
		len(mi.nodes), len(mi.sides), len(mi.elements), nCut)
	fmt.Fprintf(w, "Volume Cells: ")
	for _, p := range []Position{Outside, Inside, OnCutSurface, Undecided} {
		fmt.Fprintf(w, "%s = %d ", p, byPos[p])
	}
	fmt.Fprintf(w, "\nBoundary Cells = %d, Total Cell Volume = %.8g\n", nBC, vol)
	fmt.Fprintf(w, "Node Positions: ")
	for _, p := range []Position{Outside, Inside, OnCutSurface, Undecided} {
		fmt.Fprintf(w, "%s = %d ", p, nodePos[p])
	}
	fmt.Fprintf(w, "\n")
}

// DumpGmsh writes the cell facets, boundary cells and node positions as gmsh
// post processing views, valued by position
func (mi *MeshIntersection) DumpGmsh(w io.Writer) error {
	pw := mesh.NewPosWriter(w)
	pw.BeginView("volume cells")
	for _, vc := range mi.VolumeCells() {
		for _, tri := range facetTriangles(vc.Facets) {
			pw.Triangle(tri[0], tri[1], tri[2], float64(vc.Position))
		}
	}
	pw.EndView()
	pw.BeginView("boundary cells")
	for _, vc := range mi.VolumeCells() {
		for _, bc := range vc.BoundaryCells {
			for _, tri := range bc.Poly.Fan() {
				pw.Triangle(tri[0], tri[1], tri[2], float64(bc.Side.ID))
			}
		}
	}
	pw.EndView()
	pw.BeginView("node positions")
	ids := make([]int, 0, len(mi.nodes))
	for id := range mi.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		n := mi.nodes[id]
		pw.Point(n.X, float64(n.Position))
	}
	pw.EndView()
	return pw.Err()
}
