package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const twoHexMsh = `$MeshFormat
2.2 0 8
$EndMeshFormat
$PhysicalNames
1
3 1 "fluid"
$EndPhysicalNames
$Nodes
12
1 0 0 0
2 1 0 0
3 1 1 0
4 0 1 0
5 0 0 1
6 1 0 1
7 1 1 1
8 0 1 1
9 2 0 0
10 2 1 0
11 2 0 1
12 2 1 1
$EndNodes
$Elements
3
1 5 2 1 1 1 2 3 4 5 6 7 8
2 5 2 1 1 2 9 10 3 6 11 12 7
3 2 2 2 7 1 2 3
$EndElements
`

func TestReadGmsh22(t *testing.T) {
	msh, err := ReadGmsh22(strings.NewReader(twoHexMsh))
	require.NoError(t, err)
	assert.Len(t, msh.Nodes, 12)
	require.Len(t, msh.Cells, 3)
	assert.Len(t, msh.CellsOfDim(3), 2)
	assert.Len(t, msh.CellsOfDim(2), 1)
	assert.Equal(t, Hex8, msh.Cells[0].Type)
	assert.Equal(t, []int{2, 9, 10, 3, 6, 11, 12, 7}, msh.Cells[1].Nodes)
	assert.Equal(t, 1, msh.Cells[1].Tag)
	assert.Equal(t, r3.Vec{X: 2, Y: 1, Z: 1}, msh.Nodes[12])

	X, err := msh.Coordinates(msh.Cells[1])
	require.NoError(t, err)
	r, c := X.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 8, c)
	assert.Equal(t, 2., X.At(0, 1))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, msh.NodeIDs())

	_, err = msh.Coordinates(Cell{ID: 9, Type: Tri3, Nodes: []int{1, 2, 99}})
	assert.Error(t, err)
}

func TestReadGmsh22Errors(t *testing.T) {
	_, err := ReadGmsh22(strings.NewReader("$MeshFormat\n4.1 0 8\n$EndMeshFormat\n"))
	assert.Error(t, err)
	_, err = ReadGmsh22(strings.NewReader("$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n2\n1 0 0 0\n"))
	assert.Error(t, err)
	_, err = ReadGmsh22(strings.NewReader("$Elements\n1\n1 5 0 1 2 3\n$EndElements\n"))
	assert.Error(t, err)
}

func TestCellType(t *testing.T) {
	ct, err := ParseCellType(" HEX8 ")
	require.NoError(t, err)
	assert.Equal(t, Hex8, ct)
	assert.Equal(t, 8, ct.NumNodes())
	assert.Equal(t, 3, ct.Dim())
	assert.Equal(t, "tri3", Tri3.String())
	_, err = ParseCellType("hex27")
	assert.Error(t, err)
	assert.Len(t, Faces(Hex8, LocalIndices(Hex8)), 6)
	assert.Len(t, Faces(Tri3, LocalIndices(Tri3)), 0)
}

func TestHex8Shape(t *testing.T) {
	var X [8]r3.Vec
	for i, p := range hex8Ref {
		// a 2 x 1 x 0.5 box
		X[i] = r3.Vec{X: 1 + p[0], Y: 0.5 * (1 + p[1]), Z: 0.25 * (1 + p[2])}
	}
	N := Hex8Shape(0.3, -0.2, 0.7)
	var sum float64
	for _, n := range N {
		sum += n
	}
	assert.InDelta(t, 1., sum, 1.e-14)
	x, detJ := Hex8Map(X, 0, 0, 0)
	assert.InDelta(t, 1., x.X, 1.e-14)
	assert.InDelta(t, 0.5, x.Y, 1.e-14)
	assert.InDelta(t, 0.25, x.Z, 1.e-14)
	// volume = 8 * detJ for an affine hex
	assert.InDelta(t, 1., 8*detJ, 1.e-14)
}

func TestPosWriter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPosWriter(&buf)
	p.BeginView("cells")
	p.Triangle(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1}, 2)
	p.Point(r3.Vec{Z: 1}, 3)
	p.EndView()
	require.NoError(t, p.Err())
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "View \"cells\" {\n"))
	assert.Contains(t, out, "ST(0,0,0,1,0,0,0,1,0){2,2,2};")
	assert.Contains(t, out, "SP(0,0,1){3};")
	assert.True(t, strings.HasSuffix(out, "};\n"))
}
