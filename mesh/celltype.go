package mesh

import (
	"fmt"
	"strings"
)

// CellType is the shape of a mesh cell
type CellType int

const (
	Point1 CellType = iota
	Line2
	Tri3
	Quad4
	Tet4
	Hex8
	Wedge6
	Pyramid5
)

var cellTypeNames = [...]string{"point1", "line2", "tri3", "quad4", "tet4", "hex8", "wedge6", "pyramid5"}

func (ct CellType) String() string {
	if ct < 0 || int(ct) >= len(cellTypeNames) {
		return fmt.Sprintf("CellType(%d)", int(ct))
	}
	return cellTypeNames[ct]
}

func ParseCellType(s string) (ct CellType, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range cellTypeNames {
		if name == s {
			return CellType(i), nil
		}
	}
	err = fmt.Errorf("unknown cell type: %q", s)
	return
}

func (ct CellType) NumNodes() int {
	return [...]int{1, 2, 3, 4, 4, 8, 6, 5}[ct]
}

// Dim is the parametric dimension of the cell
func (ct CellType) Dim() int {
	return [...]int{0, 1, 2, 2, 3, 3, 3, 3}[ct]
}

// Faces returns the local face connectivity of a volume cell, each face
// ordered counter clockwise seen from outside
func Faces(ct CellType, vertices []int) [][]int {
	switch ct {
	case Tet4:
		return [][]int{
			{vertices[0], vertices[2], vertices[1]},
			{vertices[0], vertices[1], vertices[3]},
			{vertices[1], vertices[2], vertices[3]},
			{vertices[0], vertices[3], vertices[2]},
		}
	case Hex8:
		return [][]int{
			{vertices[0], vertices[3], vertices[2], vertices[1]}, // bottom
			{vertices[4], vertices[5], vertices[6], vertices[7]}, // top
			{vertices[0], vertices[1], vertices[5], vertices[4]},
			{vertices[1], vertices[2], vertices[6], vertices[5]},
			{vertices[2], vertices[3], vertices[7], vertices[6]},
			{vertices[3], vertices[0], vertices[4], vertices[7]},
		}
	case Wedge6:
		return [][]int{
			{vertices[0], vertices[2], vertices[1]},
			{vertices[3], vertices[4], vertices[5]},
			{vertices[0], vertices[1], vertices[4], vertices[3]},
			{vertices[1], vertices[2], vertices[5], vertices[4]},
			{vertices[2], vertices[0], vertices[3], vertices[5]},
		}
	case Pyramid5:
		return [][]int{
			{vertices[0], vertices[3], vertices[2], vertices[1]},
			{vertices[0], vertices[1], vertices[4]},
			{vertices[1], vertices[2], vertices[4]},
			{vertices[2], vertices[3], vertices[4]},
			{vertices[3], vertices[0], vertices[4]},
		}
	default:
		return [][]int{}
	}
}

// LocalIndices is a convenience for Faces over 0..NumNodes-1
func LocalIndices(ct CellType) []int {
	idx := make([]int, ct.NumNodes())
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// Hex8Tets is the split of a hex8 into six tets sharing the 0-6 diagonal
var Hex8Tets = [6][4]int{
	{0, 1, 2, 6}, {0, 2, 3, 6}, {0, 3, 7, 6},
	{0, 7, 4, 6}, {0, 4, 5, 6}, {0, 5, 1, 6},
}
