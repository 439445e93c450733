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
	"io"
	"os"
	"time"

	"github.com/notargets/gocut/InputParameters"
	"github.com/notargets/gocut/cut"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type CutRun struct {
	InputFile string
	DumpFile  string
	Perf      bool
	Parallel  int
	Quiet     bool
}

// CutCmd represents the cut command
var CutCmd = &cobra.Command{
	Use:   "cut",
	Short: "Cut a literal case of sides and elements read from a YAML file",
	Long: `
Runs the cut and finalize steps on a case file listing cutter sides and
background elements with their node IDs and coordinates.

gocut cut -I case.yaml [--dump cells.pos] [--perf]`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cr := &CutRun{
			Parallel: viper.GetInt("parallel"),
			Quiet:    viper.GetBool("quiet"),
		}
		if cr.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			return
		}
		cr.DumpFile, _ = cmd.Flags().GetString("dump")
		cr.Perf, _ = cmd.Flags().GetBool("perf")
		if len(cr.InputFile) == 0 {
			return fmt.Errorf("must supply a case file (-I, --inputFile) in YAML format, like:%s", exampleCase)
		}
		var cc *InputParameters.CutCase
		if cc, err = InputParameters.ReadCutCase(cr.InputFile); err != nil {
			return
		}
		var mi *cut.MeshIntersection
		if mi, err = cc.Build(); err != nil {
			return
		}
		return RunCut(mi, &cc.CutParameters, cr, os.Stdout)
	},
}

var exampleCase = `
########################################
Title: "Single Hex"
VCellGaussPts: DirectDivergence # Can be Tessellation
BCellGaussPts: Tessellation
IncludeInner: true
Sides:
- ID: 1
  Shape: tri3
  Nodes: [-1, -2, -3]
  XYZ: [[-1, -1, 0.5], [4, -1, 0.5], [-1, 4, 0.5]]
Elements:
- ID: 1
  Shape: hex8
  Nodes: [1, 2, 3, 4, 5, 6, 7, 8]
  XYZ: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0], [0, 0, 1], [1, 0, 1], [1, 1, 1], [0, 1, 1]]
########################################
`

func init() {
	rootCmd.AddCommand(CutCmd)
	CutCmd.Flags().StringP("inputFile", "I", "", "YAML case file with parameters, sides and elements")
	CutCmd.Flags().StringP("dump", "D", "", "write the cells to a gmsh .pos file")
	CutCmd.Flags().Bool("perf", false, "count CPU instructions of the cut (linux)")
}

// RunCut cuts and finalizes the intersection, then reports on w
func RunCut(mi *cut.MeshIntersection, cp *InputParameters.CutParameters, cr *CutRun, w io.Writer) (err error) {
	var (
		vc     cut.VCellGaussPts
		bc     cut.BCellGaussPts
		screen = !cr.Quiet
	)
	if vc, bc, err = cp.Rules(); err != nil {
		return
	}
	if cr.Parallel > 0 {
		mi.Options().Parallel = cr.Parallel
	}
	mi.SetOutput(w)
	if screen {
		cp.Print(w)
	}
	start := time.Now()
	run := func() error {
		if err := mi.CutTestCut(screen, vc, bc); err != nil {
			return err
		}
		return mi.CutFinalize(screen, vc, bc, cp.TetCellsOnly, cp.IncludeInner)
	}
	if cr.Perf {
		var instructions uint64
		if instructions, err = countInstructions(run); err != nil {
			return
		}
		fmt.Fprintf(w, "CPU instructions = %d\n", instructions)
	} else if err = run(); err != nil {
		return
	}
	if screen {
		fmt.Fprintf(w, "Elapsed time = %v\n", time.Since(start))
	}
	if len(cr.DumpFile) != 0 {
		var f *os.File
		if f, err = os.Create(cr.DumpFile); err != nil {
			return
		}
		defer f.Close()
		err = mi.DumpGmsh(f)
	}
	return
}
