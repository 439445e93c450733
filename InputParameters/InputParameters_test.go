package InputParameters

import (
	"bytes"
	"math"
	"testing"

	"github.com/notargets/gocut/cut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCutParameters(t *testing.T) {
	var (
		cp   CutParameters
		data = []byte(`
Title: "plane cut"
VCellGaussPts: Tessellation
IncludeInner: false
VolumeOrder: 4
Parallel: 2
CutTests: true
`)
	)
	require.NoError(t, cp.Parse(data))
	assert.Equal(t, "plane cut", cp.Title)
	assert.False(t, cp.IncludeInner)
	opts := cp.Options()
	assert.Equal(t, 4, opts.VolumeOrder)
	assert.Equal(t, 2, opts.BoundaryOrder)
	assert.Equal(t, 2, opts.Parallel)
	assert.Equal(t, 1.e-11, opts.GeometricTolerance)
	vc, bc, err := cp.Rules()
	require.NoError(t, err)
	assert.Equal(t, cut.VCellGaussPtsTessellation, vc)
	assert.Equal(t, cut.BCellGaussPtsTessellation, bc)
	var buf bytes.Buffer
	cp.Print(&buf)
	assert.Contains(t, buf.String(), "plane cut")

	cp.VCellGaussPts = "moment fitting"
	_, _, err = cp.Rules()
	assert.Error(t, err)
}

func TestCutCaseParse(t *testing.T) {
	data := []byte(`
Title: single hex
Sides:
- ID: 1
  Shape: quad4
  Nodes: [-1, -2, -3, -4]
  XYZ:
  - [-0.5, -0.5, 0.25]
  - [1.5, -0.5, 0.25]
  - [1.5, 1.5, 0.25]
  - [-0.5, 1.5, 0.25]
Elements:
- ID: 7
  Shape: hex8
  Nodes: [1, 2, 3, 4, 5, 6, 7, 8]
  XYZ:
  - [0, 0, 0]
  - [1, 0, 0]
  - [1, 1, 0]
  - [0, 1, 0]
  - [0, 0, 1]
  - [1, 0, 1]
  - [1, 1, 1]
  - [0, 1, 1]
`)
	var cc CutCase
	require.NoError(t, cc.Parse(data))
	assert.Equal(t, "single hex", cc.Title)
	require.Len(t, cc.Sides, 1)
	require.Len(t, cc.Elements, 1)
	X, err := cc.Elements[0].Coordinates()
	require.NoError(t, err)
	r, c := X.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 8, c)
	assert.Equal(t, 1., X.At(2, 4))

	mi, err := cc.Build()
	require.NoError(t, err)
	mi.SetOutput(&bytes.Buffer{})
	vc, bc, err := cc.Rules()
	require.NoError(t, err)
	require.NoError(t, mi.CutTestCut(false, vc, bc))
	require.NoError(t, mi.CutFinalize(false, vc, bc, cc.TetCellsOnly, true))
	cells := mi.Element(7).VolumeCells()
	require.Len(t, cells, 2)
	assert.InDelta(t, 1., cells[0].Volume()+cells[1].Volume(), 1.e-12)

	cc.Elements[0].XYZ = cc.Elements[0].XYZ[:7]
	_, err = cc.Build()
	assert.Error(t, err)
	cc.Elements[0].Shape = "hex27"
	_, err = cc.Build()
	assert.Error(t, err)
}

func cutGenerated2010(t *testing.T, vc cut.VCellGaussPts, tetCellsOnly bool) *cut.MeshIntersection {
	cc, err := ReadCutCase("testdata/generated_2010.yaml")
	require.NoError(t, err)
	mi, err := cc.Build()
	require.NoError(t, err)
	mi.Options().InitForCutTests()
	var out bytes.Buffer
	mi.SetOutput(&out)
	require.NoError(t, mi.CutTestCut(true, vc, cut.BCellGaussPtsTessellation))
	require.NoError(t, mi.CutFinalize(true, vc, cut.BCellGaussPtsTessellation, tetCellsOnly, cc.IncludeInner))
	assert.Contains(t, out.String(), "Elements = 6")
	return mi
}

func cellAt(e *cut.Element, p cut.Position) *cut.VolumeCell {
	for _, vc := range e.VolumeCells() {
		if vc.Position == p {
			return vc
		}
	}
	return nil
}

func TestGenerated2010(t *testing.T) {
	cc, err := ReadCutCase("testdata/generated_2010.yaml")
	require.NoError(t, err)
	assert.Len(t, cc.Sides, 111)
	assert.Len(t, cc.Elements, 6)
	assert.True(t, cc.IncludeInner)

	mi := cutGenerated2010(t, cut.VCellGaussPtsDirectDivergence, false)
	var (
		hexVolume = math.Pow(0.05, 3)
		cellCount []int
		volumes   []float64
	)
	for _, e := range mi.Elements() {
		var sum float64
		for _, vc := range e.VolumeCells() {
			sum += vc.Volume()
			volumes = append(volumes, vc.Volume())
			assert.True(t, vc.HasRule())
			assert.InDelta(t, vc.Volume(), vc.Rule.Sum(), 1.e-9*hexVolume)
		}
		assert.InDelta(t, hexVolume, sum, 1.e-9*hexVolume, "element %d", e.ID)
		cellCount = append(cellCount, len(e.VolumeCells()))
	}

	// Volume fraction behind the cutter and cut area of each element it crosses
	for _, c := range []struct {
		id      int
		inside  float64
		cutArea float64
	}{
		{1910, 0.661069, 3.7242e-3},
		{2000, 0.819869, 3.2466e-3},
		{2009, 0.306356, 2.8412e-3},
		{2010, 0.661069, 0},
		{2011, 0.661069, 0},
	} {
		e := mi.Element(c.id)
		require.NotNil(t, e)
		require.Len(t, e.VolumeCells(), 2, "element %d", c.id)
		assert.True(t, e.IsCut())
		in, out := cellAt(e, cut.Inside), cellAt(e, cut.Outside)
		require.NotNil(t, in, "element %d", c.id)
		require.NotNil(t, out, "element %d", c.id)
		assert.InDelta(t, c.inside, in.Volume()/hexVolume, 1.e-5, "element %d", c.id)
		assert.InDelta(t, 1-c.inside, out.Volume()/hexVolume, 1.e-5, "element %d", c.id)
		assert.InDelta(t, in.BoundaryArea(), out.BoundaryArea(), 1.e-12, "element %d", c.id)
		if c.cutArea > 0 {
			assert.InDelta(t, c.cutArea, in.BoundaryArea(), 1.e-7, "element %d", c.id)
		}
	}
	e := mi.Element(2020)
	require.NotNil(t, e)
	assert.False(t, e.IsCut())
	require.Len(t, e.VolumeCells(), 1)
	assert.Equal(t, cut.Outside, e.VolumeCells()[0].Position)
	for _, w := range mi.Warnings() {
		assert.NotContains(t, w, "both orientations")
		assert.NotContains(t, w, "ends inside")
	}

	t.Run("Idempotent", func(t *testing.T) {
		again := cutGenerated2010(t, cut.VCellGaussPtsDirectDivergence, false)
		var (
			count []int
			vols  []float64
		)
		for _, e := range again.Elements() {
			count = append(count, len(e.VolumeCells()))
			for _, vc := range e.VolumeCells() {
				vols = append(vols, vc.Volume())
			}
		}
		assert.Equal(t, cellCount, count)
		assert.Equal(t, volumes, vols)
	})
	t.Run("Tessellation", func(t *testing.T) {
		tess := cutGenerated2010(t, cut.VCellGaussPtsTessellation, true)
		for _, vc := range tess.VolumeCells() {
			assert.InDelta(t, vc.Volume(), vc.Rule.Sum(), 1.e-9*hexVolume)
		}
	})
}
