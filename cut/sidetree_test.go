package cut

import (
	"testing"

	"github.com/notargets/gocut/geometry3D"
	"github.com/notargets/gocut/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSideTree(t *testing.T) {
	var sides []*Side
	for i := 0; i < 10; i++ {
		x := float64(i)
		sides = append(sides, &Side{
			ID:    100 - i,
			Shape: mesh.Tri3,
			Nodes: []*Node{
				{ID: -3 * i, X: r3.Vec{X: x}},
				{ID: -3*i - 1, X: r3.Vec{X: x + 0.5}},
				{ID: -3*i - 2, X: r3.Vec{X: x, Y: 0.5}},
			},
		})
	}
	st, err := newSideTree(sides, 0)
	require.NoError(t, err)
	found := st.Overlapping(geometry3D.NewAABB(r3.Vec{X: 2.25, Y: -1, Z: -1}, r3.Vec{X: 3.25, Y: 1, Z: 1}), 0)
	require.Len(t, found, 2)
	// Sorted by ID
	assert.Equal(t, 97, found[0].ID)
	assert.Equal(t, 98, found[1].ID)
	assert.Empty(t, st.Overlapping(geometry3D.NewAABB(r3.Vec{Z: 1}, r3.Vec{X: 1, Y: 1, Z: 2}), 1.e-10))
}

func TestCutByTriangleConservesVolume(t *testing.T) {
	e := &Element{ID: 1, Shape: mesh.Hex8}
	X := []r3.Vec{
		{}, {X: 1}, {X: 1, Y: 1}, {Y: 1},
		{Z: 1}, {X: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {Y: 1, Z: 1},
	}
	for i, x := range X {
		e.Nodes = append(e.Nodes, &Node{ID: i, X: x})
	}
	frags := e.polyhedra(1.e-12)
	require.Len(t, frags, 1)
	tri := [3]r3.Vec{{X: 0.2, Y: 0.1, Z: 0.3}, {X: 0.9, Y: 0.4, Z: 0.6}, {X: 0.3, Y: 0.8, Z: 0.5}}
	pl, ok := geometry3D.NewPlane(tri[0], tri[1], tri[2])
	require.True(t, ok)
	frags = cutByTriangle(frags, tri, pl, 7, 1.e-12)
	var (
		vol     float64
		cutArea float64
	)
	for _, f := range frags {
		vol += f.Volume()
		for _, face := range f.Faces {
			if face.Kind == geometry3D.CutFace {
				assert.Equal(t, 7, face.Side)
				cutArea += face.Poly.Area()
			}
		}
	}
	assert.InDelta(t, 1., vol, 1.e-13)
	// The triangle lies inside the cube, so both sides of it are cut faces
	assert.InDelta(t, 2*geometry3D.Polygon(tri[:]).Area(), cutArea, 1.e-12)
}
