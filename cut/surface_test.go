package cut

import (
	"math"
	"testing"

	"github.com/notargets/gocut/geometry3D"
	"github.com/notargets/gocut/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func quadSurface(t *testing.T, x0, x1, y0, y1, z float64) (sf *surface, sides []*Side) {
	mi := newTestIntersection()
	s, err := mi.AddCutSide(1, []int{-1, -2, -3, -4}, horizontalQuad(x0, x1, y0, y1, z), mesh.Quad4)
	require.NoError(t, err)
	sides = []*Side{s}
	st, err := newSideTree(sides, 0)
	require.NoError(t, err)
	sf = newSurface(sides, st)
	return
}

func TestSignedDistance(t *testing.T) {
	sf, sides := quadSurface(t, 0, 1, 0, 1, 0.5)
	// Over the face
	assert.InDelta(t, 0.25, sf.signedDistance(r3.Vec{X: 0.3, Y: 0.6, Z: 0.75}, sides), 1.e-15)
	assert.InDelta(t, -0.5, sf.signedDistance(r3.Vec{X: 0.3, Y: 0.6}, sides), 1.e-15)
	// Beyond an edge and beyond a corner the sign follows the surface normal
	d := sf.signedDistance(r3.Vec{X: 1.5, Y: 0.5, Z: 0.6}, sides)
	assert.InDelta(t, math.Sqrt(0.25+0.01), d, 1.e-15)
	d = sf.signedDistance(r3.Vec{X: 1.5, Y: 0.5, Z: 0.4}, sides)
	assert.InDelta(t, -math.Sqrt(0.25+0.01), d, 1.e-15)
	d = sf.signedDistance(r3.Vec{X: -1, Y: -1, Z: 0.4}, sides)
	assert.Less(t, d, 0.)
	// A far side passed in still finds the closer one through the side tree
	far, err := newTestIntersection().AddCutSide(2, []int{-5, -6, -7, -8}, horizontalQuad(0, 1, 0, 1, 3), mesh.Quad4)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, sf.signedDistance(r3.Vec{X: 0.3, Y: 0.6, Z: 0.75}, []*Side{far}), 1.e-15)

	empty := newSurface(nil, nil)
	assert.True(t, math.IsInf(empty.signedDistance(r3.Vec{}, nil), 1))
}

func TestSignedDistanceRidge(t *testing.T) {
	// Two triangles folded along the y axis, ridge up
	mi := newTestIntersection()
	a, err := mi.AddCutSide(1, []int{-1, -2, -3}, coords(
		r3.Vec{X: -1, Y: -1}, r3.Vec{Y: -1, Z: 1}, r3.Vec{Y: 1, Z: 1}), mesh.Tri3)
	require.NoError(t, err)
	b, err := mi.AddCutSide(2, []int{-2, -4, -3}, coords(
		r3.Vec{Y: -1, Z: 1}, r3.Vec{X: 1, Y: -1}, r3.Vec{Y: 1, Z: 1}), mesh.Tri3)
	require.NoError(t, err)
	sides := []*Side{a, b}
	require.Greater(t, a.Normal().Z, 0.)
	require.Greater(t, b.Normal().Z, 0.)
	sf := newSurface(sides, nil)
	// Above the ridge the closest point is on the shared edge
	assert.InDelta(t, 0.5, sf.signedDistance(r3.Vec{Z: 1.5}, sides), 1.e-15)
	// Just under the ridge the closest point is on a face
	assert.Less(t, sf.signedDistance(r3.Vec{Z: 0.9}, sides), 0.)
	// The shared edge is not open, the outer edges are
	assert.Len(t, sf.open[a], 2)
	assert.Len(t, sf.open[b], 2)
}

func TestSideOf(t *testing.T) {
	var (
		sf, sides = quadSurface(t, -1, 2, -1, 2, 0.5)
		tol       = 1.e-10
	)
	slab := func(z0, z1 float64) *geometry3D.Polyhedron {
		return hexPolyhedron(t, r3.Vec{Z: z0}, r3.Vec{X: 1, Y: 1, Z: z1})
	}
	assert.Equal(t, -1, sf.sideOf(slab(0, 0.5), sides, tol))
	assert.Equal(t, 1, sf.sideOf(slab(0.5, 1), sides, tol))
	// A slab hugging the surface is classified by its farthest vertex
	assert.Equal(t, 1, sf.sideOf(slab(0.5-1.e-12, 0.5+1.5e-10), sides, tol))
	assert.Equal(t, 0, sf.sideOf(slab(0.5-1.e-12, 0.5+1.e-12), sides, tol))
}

func hexPolyhedron(t *testing.T, lo, hi r3.Vec) *geometry3D.Polyhedron {
	mi := newTestIntersection()
	e, err := mi.AddElement(1, []int{0, 1, 2, 3, 4, 5, 6, 7}, box(lo, hi), mesh.Hex8)
	require.NoError(t, err)
	phs := e.polyhedra(1.e-14)
	require.Len(t, phs, 1)
	return phs[0]
}

func TestOpensInside(t *testing.T) {
	var (
		hex = []*geometry3D.Polyhedron{hexPolyhedron(t, r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})}
		tol = 1.e-10
	)
	sf, sides := quadSurface(t, -0.5, 0.5, -0.5, 1.5, 0.5)
	assert.True(t, sf.opensInside(sides, hex, tol))
	// An open edge lying on the element boundary leaves the sides apart
	sf, sides = quadSurface(t, -0.5, 1, -0.5, 1.5, 0.5)
	assert.False(t, sf.opensInside(sides, hex, tol))
	sf, sides = quadSurface(t, -0.5, 1.5, -0.5, 1.5, 0.5)
	assert.False(t, sf.opensInside(sides, hex, tol))
}
