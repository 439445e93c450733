/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/notargets/gocut/InputParameters"
	"github.com/notargets/gocut/cut"
	"github.com/notargets/gocut/mesh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Cut a gmsh volume mesh with a gmsh surface mesh",
	Long: `
Reads a background volume mesh and a cutter surface mesh, both in gmsh 2.2
ASCII format. Cutter node IDs are negated so they never collide with the
background mesh nodes.

gocut mesh -F background.msh -C cutter.msh [-I params.yaml]`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			gridFile, cutterFile, paramFile string
			cr                              = &CutRun{
				Parallel: viper.GetInt("parallel"),
				Quiet:    viper.GetBool("quiet"),
			}
		)
		gridFile, _ = cmd.Flags().GetString("gridFile")
		cutterFile, _ = cmd.Flags().GetString("cutterFile")
		paramFile, _ = cmd.Flags().GetString("inputFile")
		cr.DumpFile, _ = cmd.Flags().GetString("dump")
		cr.Perf, _ = cmd.Flags().GetBool("perf")
		if len(gridFile) == 0 || len(cutterFile) == 0 {
			return fmt.Errorf("must supply a grid file (-F, --gridFile) and a cutter file (-C, --cutterFile) in gmsh format")
		}
		cp := &InputParameters.CutParameters{IncludeInner: true}
		if len(paramFile) != 0 {
			var data []byte
			if data, err = os.ReadFile(paramFile); err != nil {
				return
			}
			if err = cp.Parse(data); err != nil {
				return
			}
		}
		var background, cutter *mesh.Mesh
		if background, err = mesh.ReadGmsh22File(gridFile); err != nil {
			return
		}
		if cutter, err = mesh.ReadGmsh22File(cutterFile); err != nil {
			return
		}
		if !cr.Quiet {
			background.PrintStatistics()
			cutter.PrintStatistics()
		}
		var mi *cut.MeshIntersection
		if mi, err = NewMeshCut(background, cutter, cp.Options()); err != nil {
			return
		}
		return RunCut(mi, cp, cr, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().StringP("gridFile", "F", "", "background mesh in gmsh 2.2 (.msh) format")
	MeshCmd.Flags().StringP("cutterFile", "C", "", "cutter surface mesh in gmsh 2.2 (.msh) format")
	MeshCmd.Flags().StringP("inputFile", "I", "", "YAML file with cut parameters")
	MeshCmd.Flags().StringP("dump", "D", "", "write the cells to a gmsh .pos file")
	MeshCmd.Flags().Bool("perf", false, "count CPU instructions of the cut (linux)")
}

// NewMeshCut loads the 2D cells of the cutter mesh as sides and the 3D cells
// of the background mesh as elements
func NewMeshCut(background, cutter *mesh.Mesh, opts cut.Options) (mi *cut.MeshIntersection, err error) {
	mi = cut.NewMeshIntersection(opts)
	for _, c := range cutter.CellsOfDim(2) {
		X, err := cutter.Coordinates(c)
		if err != nil {
			return nil, err
		}
		nids := make([]int, len(c.Nodes))
		for i, id := range c.Nodes {
			nids[i] = -id
		}
		if _, err = mi.AddCutSide(c.ID, nids, X, c.Type); err != nil {
			return nil, err
		}
	}
	for _, c := range background.CellsOfDim(3) {
		X, err := background.Coordinates(c)
		if err != nil {
			return nil, err
		}
		if _, err = mi.AddElement(c.ID, c.Nodes, X, c.Type); err != nil {
			return nil, err
		}
	}
	return
}
