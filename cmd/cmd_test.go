package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notargets/gocut/InputParameters"
	"github.com/notargets/gocut/cut"
	"github.com/notargets/gocut/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const backgroundMsh = `$MeshFormat
2.2 0 8
$EndMeshFormat
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
2
1 5 2 1 1 1 2 3 4 5 6 7 8
2 5 2 1 1 2 9 10 3 6 11 12 7
$EndElements
`

// Two triangles at z = 0.25 covering both hexes, normal up
const cutterMsh = `$MeshFormat
2.2 0 8
$EndMeshFormat
$Nodes
4
1 -1 -1 0.25
2 3 -1 0.25
3 3 2 0.25
4 -1 2 0.25
$EndNodes
$Elements
2
1 2 2 1 1 1 2 3
2 2 2 1 1 1 3 4
$EndElements
`

func TestNewMeshCut(t *testing.T) {
	background, err := mesh.ReadGmsh22(strings.NewReader(backgroundMsh))
	require.NoError(t, err)
	cutter, err := mesh.ReadGmsh22(strings.NewReader(cutterMsh))
	require.NoError(t, err)
	opts := cut.DefaultOptions()
	opts.InitForCutTests()
	mi, err := NewMeshCut(background, cutter, opts)
	require.NoError(t, err)
	assert.Len(t, mi.Sides(), 2)
	assert.Len(t, mi.Elements(), 2)
	_, ok := mi.Node(-3)
	assert.True(t, ok)

	var (
		out  bytes.Buffer
		dump = filepath.Join(t.TempDir(), "cells.pos")
		cp   = &InputParameters.CutParameters{IncludeInner: true}
	)
	require.NoError(t, RunCut(mi, cp, &CutRun{DumpFile: dump}, &out))
	assert.Contains(t, out.String(), "Cut Elements = 2")
	for _, e := range mi.Elements() {
		var inside float64
		for _, vc := range e.VolumeCells() {
			if vc.Position == cut.Inside {
				inside += vc.Volume()
			}
		}
		assert.InDelta(t, 0.25, inside, 1.e-12)
	}
	data, err := os.ReadFile(dump)
	require.NoError(t, err)
	assert.Contains(t, string(data), "View \"boundary cells\"")
}

func TestCutCommand(t *testing.T) {
	var (
		dir  = t.TempDir()
		file = filepath.Join(dir, "case.yaml")
	)
	require.NoError(t, os.WriteFile(file, []byte(exampleCase), 0644))
	cc, err := InputParameters.ReadCutCase(file)
	require.NoError(t, err)
	assert.Equal(t, "Single Hex", cc.Title)

	rootCmd.SetArgs([]string{"cut", "-I", file, "-q", "--config", filepath.Join(dir, "none.yaml")})
	assert.NoError(t, rootCmd.Execute())

	require.NoError(t, CutCmd.Flags().Set("inputFile", ""))
	rootCmd.SetArgs([]string{"cut", "-q", "--config", filepath.Join(dir, "none.yaml")})
	assert.Error(t, rootCmd.Execute())
}
