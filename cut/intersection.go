package cut

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/notargets/gocut/mesh"
	"github.com/notargets/gocut/utils"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

type stage uint8

const (
	stageBuild stage = iota
	stageCut
	stageFinalized
)

// MeshIntersection cuts a background mesh of volume elements by a surface of
// cutter sides
type MeshIntersection struct {
	opts     Options
	out      io.Writer
	stage    stage
	nodes    map[int]*Node
	sides    []*Side
	elements []*Element
	sideIdx  map[int]*Side
	elemIdx  map[int]*Element
	vcRule   VCellGaussPts
	bcRule   BCellGaussPts
	warnings []string
}

// NewMeshIntersection uses DefaultOptions unless options are given
func NewMeshIntersection(opts ...Options) (mi *MeshIntersection) {
	mi = &MeshIntersection{
		opts:    DefaultOptions(),
		out:     os.Stdout,
		nodes:   make(map[int]*Node),
		sideIdx: make(map[int]*Side),
		elemIdx: make(map[int]*Element),
	}
	if len(opts) > 0 {
		mi.opts = opts[0]
	}
	return
}

// Options can be changed until the cut is performed
func (mi *MeshIntersection) Options() *Options { return &mi.opts }

// SetOutput redirects screen output
func (mi *MeshIntersection) SetOutput(w io.Writer) { mi.out = w }

func (mi *MeshIntersection) Sides() []*Side { return mi.sides }

func (mi *MeshIntersection) Elements() []*Element { return mi.elements }

// Warnings collected by the last cut
func (mi *MeshIntersection) Warnings() []string { return mi.warnings }

func (mi *MeshIntersection) Side(id int) *Side { return mi.sideIdx[id] }

func (mi *MeshIntersection) Element(id int) *Element { return mi.elemIdx[id] }

func (mi *MeshIntersection) Node(id int) (n *Node, ok bool) {
	n, ok = mi.nodes[id]
	return
}

// VolumeCells of all elements, in element order
func (mi *MeshIntersection) VolumeCells() (cells []*VolumeCell) {
	for _, e := range mi.elements {
		cells = append(cells, e.cells...)
	}
	return
}

// node returns the node with the given ID, creating it on first use
func (mi *MeshIntersection) node(id int, x r3.Vec) (n *Node, err error) {
	var ok bool
	if n, ok = mi.nodes[id]; ok {
		tol := mi.opts.GeometricTolerance * math.Max(1, r3.Norm(x))
		if r3.Norm(r3.Sub(n.X, x)) > tol {
			err = errors.Wrapf(ErrNodeMismatch, "node %d: %v and %v", id, n.X, x)
		}
		return
	}
	n = &Node{ID: id, X: x}
	mi.nodes[id] = n
	return
}

func (mi *MeshIntersection) nodesFor(nodeIDs []int, xyze mat.Matrix, ct mesh.CellType) (nodes []*Node, err error) {
	if len(nodeIDs) != ct.NumNodes() {
		err = errors.Errorf("%s needs %d nodes, got %d", ct, ct.NumNodes(), len(nodeIDs))
		return
	}
	if r, c := xyze.Dims(); r != 3 || c != len(nodeIDs) {
		err = errors.Errorf("coordinates must be 3x%d, got %dx%d", len(nodeIDs), r, c)
		return
	}
	nodes = make([]*Node, len(nodeIDs))
	for i, id := range nodeIDs {
		x := r3.Vec{X: xyze.At(0, i), Y: xyze.At(1, i), Z: xyze.At(2, i)}
		if nodes[i], err = mi.node(id, x); err != nil {
			return nil, err
		}
	}
	return
}

// AddCutSide registers a cutter side. Quad4 sides are split into two
// triangles along the 0-2 diagonal.
func (mi *MeshIntersection) AddCutSide(sideID int, nodeIDs []int, xyze mat.Matrix, ct mesh.CellType) (s *Side, err error) {
	if mi.stage != stageBuild {
		return nil, ErrAlreadyCut
	}
	if _, dup := mi.sideIdx[sideID]; dup {
		return nil, errors.Errorf("duplicate cut side %d", sideID)
	}
	if ct != mesh.Tri3 && ct != mesh.Quad4 {
		return nil, errors.Wrapf(ErrUnsupportedShape, "cut side %d: %s", sideID, ct)
	}
	var nodes []*Node
	if nodes, err = mi.nodesFor(nodeIDs, xyze, ct); err != nil {
		return nil, errors.Wrapf(err, "cut side %d", sideID)
	}
	s = &Side{ID: sideID, Shape: ct, Nodes: nodes}
	s.Tris = append(s.Tris, [3]r3.Vec{nodes[0].X, nodes[1].X, nodes[2].X})
	if ct == mesh.Quad4 {
		s.Tris = append(s.Tris, [3]r3.Vec{nodes[0].X, nodes[2].X, nodes[3].X})
	}
	mi.sides = append(mi.sides, s)
	mi.sideIdx[sideID] = s
	return
}

// AddElement registers a background element. Node IDs must not be negative.
func (mi *MeshIntersection) AddElement(elementID int, nodeIDs []int, xyze mat.Matrix, ct mesh.CellType) (e *Element, err error) {
	if mi.stage != stageBuild {
		return nil, ErrAlreadyCut
	}
	if _, dup := mi.elemIdx[elementID]; dup {
		return nil, errors.Errorf("duplicate element %d", elementID)
	}
	if ct != mesh.Hex8 && ct != mesh.Tet4 {
		return nil, errors.Wrapf(ErrUnsupportedShape, "element %d: %s", elementID, ct)
	}
	for _, id := range nodeIDs {
		if id < 0 {
			return nil, errors.Errorf("element %d: negative node ID %d", elementID, id)
		}
	}
	var nodes []*Node
	if nodes, err = mi.nodesFor(nodeIDs, xyze, ct); err != nil {
		return nil, errors.Wrapf(err, "element %d", elementID)
	}
	e = &Element{ID: elementID, Shape: ct, Nodes: nodes}
	mi.elements = append(mi.elements, e)
	mi.elemIdx[elementID] = e
	return
}

// CutTestCut performs the cut and builds volume and boundary cells. The rule
// choices are kept as defaults for reporting. Cutting again recomputes the
// cells from scratch.
func (mi *MeshIntersection) CutTestCut(screenOutput bool, vc VCellGaussPts, bc BCellGaussPts) (err error) {
	mi.vcRule, mi.bcRule = vc, bc
	mi.warnings = nil
	for _, n := range mi.nodes {
		n.Position = Undecided
	}
	var st *sideTree
	if st, err = newSideTree(mi.sides, 0); err != nil {
		return errors.Wrap(err, "building side tree")
	}
	var (
		ne         = len(mi.elements)
		sf         = newSurface(mi.sides, st)
		candidates = make([][]*Side, ne)
		warnings   = make([][]string, ne)
		errs       = make([]error, ne)
	)
	for k, e := range mi.elements {
		b := e.Bounds()
		candidates[k] = st.Overlapping(b, mi.opts.GeometricTolerance*b.Diagonal())
	}
	utils.ParallelFor(mi.opts.Parallel, ne, func(k int) {
		warnings[k], errs[k] = mi.elements[k].cut(candidates[k], sf, mi.opts)
	})
	for k := range mi.elements {
		if errs[k] != nil {
			return errs[k]
		}
		mi.warnings = append(mi.warnings, warnings[k]...)
	}
	mi.assignNodePositions()
	mi.propagatePositions()
	mi.stage = stageCut
	if screenOutput {
		for _, w := range mi.warnings {
			fmt.Fprintf(mi.out, "Warning: %s\n", w)
		}
		mi.Status(mi.out)
	}
	return
}

// CutFinalize computes the integration rules of all cells. tetCellsOnly forces
// tessellation of cut cells, includeInner=false skips inside cells.
func (mi *MeshIntersection) CutFinalize(screenOutput bool, vc VCellGaussPts, bc BCellGaussPts,
	tetCellsOnly, includeInner bool) (err error) {
	if mi.stage == stageBuild {
		return ErrNotCut
	}
	fp := finalizeParams{
		vc:           vc,
		bc:           bc,
		tetCellsOnly: tetCellsOnly,
		includeInner: includeInner,
		opts:         mi.opts,
	}
	utils.ParallelFor(mi.opts.Parallel, len(mi.elements), func(k int) {
		mi.elements[k].finalize(fp)
	})
	mi.stage = stageFinalized
	if screenOutput {
		var np, nb int
		for _, c := range mi.VolumeCells() {
			np += c.Rule.Len()
			for _, b := range c.BoundaryCells {
				nb += b.Rule.Len()
			}
		}
		fmt.Fprintf(mi.out, "Finalize: %s volume cell points = %d, %s boundary cell points = %d\n",
			vc, np, bc, nb)
	}
	if !mi.opts.CheckVolumes {
		return
	}
	var bad []string
	for _, e := range mi.elements {
		bad = append(bad, e.volumeErrors(mi.opts.VolumeTolerance)...)
	}
	if len(bad) > 0 {
		if screenOutput {
			for _, b := range bad {
				fmt.Fprintf(mi.out, "Volume check: %s\n", b)
			}
		}
		err = errors.Wrapf(ErrVolumeCheck, "%d failures: %s", len(bad), strings.Join(bad, "; "))
	}
	return
}
