package mesh

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cell is one element of a mesh, nodes refer to the mesh node IDs
type Cell struct {
	ID    int
	Type  CellType
	Nodes []int
	Tag   int // Physical group
}

// Mesh is an unstructured mesh keyed by global node IDs
type Mesh struct {
	Nodes map[int]r3.Vec
	Cells []Cell
}

func NewMesh() *Mesh {
	return &Mesh{
		Nodes: make(map[int]r3.Vec),
	}
}

func (m *Mesh) AddNode(id int, x r3.Vec) {
	m.Nodes[id] = x
}

func (m *Mesh) AddCell(c Cell) {
	m.Cells = append(m.Cells, c)
}

// CellsOfDim returns the cells of the given parametric dimension
func (m *Mesh) CellsOfDim(dim int) (cells []Cell) {
	for _, c := range m.Cells {
		if c.Type.Dim() == dim {
			cells = append(cells, c)
		}
	}
	return
}

// Coordinates returns the 3 x nNodes coordinate matrix of a cell
func (m *Mesh) Coordinates(c Cell) (X *mat.Dense, err error) {
	X = mat.NewDense(3, len(c.Nodes), nil)
	for j, nid := range c.Nodes {
		x, ok := m.Nodes[nid]
		if !ok {
			return nil, fmt.Errorf("cell %d references missing node %d", c.ID, nid)
		}
		X.Set(0, j, x.X)
		X.Set(1, j, x.Y)
		X.Set(2, j, x.Z)
	}
	return
}

// NodeIDs returns the sorted node IDs
func (m *Mesh) NodeIDs() (ids []int) {
	ids = make([]int, 0, len(m.Nodes))
	for id := range m.Nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics() {
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Nodes: %d\n", len(m.Nodes))
	fmt.Printf("  Cells: %d\n", len(m.Cells))

	typeCounts := make(map[CellType]int)
	for _, c := range m.Cells {
		typeCounts[c.Type]++
	}
	types := make([]int, 0, len(typeCounts))
	for ct := range typeCounts {
		types = append(types, int(ct))
	}
	sort.Ints(types)
	fmt.Printf("  Cell types:\n")
	for _, ct := range types {
		fmt.Printf("    %s: %d\n", CellType(ct), typeCounts[CellType(ct)])
	}
}
