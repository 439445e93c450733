package InputParameters

import (
	"fmt"
	"io"
	"os"

	"github.com/ghodss/yaml"
	"github.com/notargets/gocut/cut"
	"github.com/notargets/gocut/mesh"
	"gonum.org/v1/gonum/mat"
)

// Parameters obtained from the YAML input file
type CutParameters struct {
	Title              string  `yaml:"Title"`
	VCellGaussPts      string  `yaml:"VCellGaussPts"` // DirectDivergence or Tessellation
	BCellGaussPts      string  `yaml:"BCellGaussPts"`
	IncludeInner       bool    `yaml:"IncludeInner"`
	TetCellsOnly       bool    `yaml:"TetCellsOnly"`
	GeometricTolerance float64 `yaml:"GeometricTolerance"` // Zero keeps the default
	VolumeTolerance    float64 `yaml:"VolumeTolerance"`
	VolumeOrder        int     `yaml:"VolumeOrder"`
	BoundaryOrder      int     `yaml:"BoundaryOrder"`
	Parallel           int     `yaml:"Parallel"`
	CutTests           bool    `yaml:"CutTests"` // Use the tight cut test tolerances
}

func (cp *CutParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (cp *CutParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", cp.Title)
	fmt.Fprintf(w, "[%s]\t= Volume Cell Gauss Points\n", cp.VCellGaussPts)
	fmt.Fprintf(w, "[%s]\t\t= Boundary Cell Gauss Points\n", cp.BCellGaussPts)
	fmt.Fprintf(w, "[%v]\t\t\t= Include Inner\n", cp.IncludeInner)
	fmt.Fprintf(w, "[%v]\t\t\t= Tet Cells Only\n", cp.TetCellsOnly)
	fmt.Fprintf(w, "[%d,%d]\t\t\t= Volume, Boundary Order\n", cp.VolumeOrder, cp.BoundaryOrder)
}

// Options merges the parameters into the default cut options
func (cp *CutParameters) Options() (opts cut.Options) {
	opts = cut.DefaultOptions()
	if cp.CutTests {
		opts.InitForCutTests()
	}
	if cp.GeometricTolerance > 0 {
		opts.GeometricTolerance = cp.GeometricTolerance
	}
	if cp.VolumeTolerance > 0 {
		opts.VolumeTolerance = cp.VolumeTolerance
	}
	if cp.VolumeOrder > 0 {
		opts.VolumeOrder = cp.VolumeOrder
	}
	if cp.BoundaryOrder > 0 {
		opts.BoundaryOrder = cp.BoundaryOrder
	}
	if cp.Parallel > 0 {
		opts.Parallel = cp.Parallel
	}
	return
}

// Rules parses the integration rule names
func (cp *CutParameters) Rules() (vc cut.VCellGaussPts, bc cut.BCellGaussPts, err error) {
	if vc, err = cut.ParseVCellGaussPts(cp.VCellGaussPts); err != nil {
		return
	}
	bc, err = cut.ParseBCellGaussPts(cp.BCellGaussPts)
	return
}

// Entity is a literal cutter side or background element
type Entity struct {
	ID    int          `yaml:"ID"`
	Shape string       `yaml:"Shape"`
	Nodes []int        `yaml:"Nodes"`
	XYZ   [][3]float64 `yaml:"XYZ"` // One point per node
}

// Coordinates returns the 3 x NumNodes coordinate matrix
func (en *Entity) Coordinates() (X *mat.Dense, err error) {
	if len(en.XYZ) != len(en.Nodes) {
		err = fmt.Errorf("entity %d: %d nodes but %d points", en.ID, len(en.Nodes), len(en.XYZ))
		return
	}
	X = mat.NewDense(3, len(en.XYZ), nil)
	for j, p := range en.XYZ {
		for i := 0; i < 3; i++ {
			X.Set(i, j, p[i])
		}
	}
	return
}

// CutCase is a complete literal cut problem
type CutCase struct {
	CutParameters `yaml:",inline"`
	Sides         []Entity `yaml:"Sides"`
	Elements      []Entity `yaml:"Elements"`
}

func (cc *CutCase) Parse(data []byte) error {
	return yaml.Unmarshal(data, cc)
}

func ReadCutCase(fileName string) (cc *CutCase, err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	cc = &CutCase{}
	if err = cc.Parse(data); err != nil {
		return nil, fmt.Errorf("unable to parse cut case %s: %w", fileName, err)
	}
	return
}

// Build loads the case into a new mesh intersection
func (cc *CutCase) Build() (mi *cut.MeshIntersection, err error) {
	mi = cut.NewMeshIntersection(cc.Options())
	for _, s := range cc.Sides {
		if err = add(s, mi.AddCutSide); err != nil {
			return nil, err
		}
	}
	for _, e := range cc.Elements {
		if err = add(e, mi.AddElement); err != nil {
			return nil, err
		}
	}
	return
}

func add[T any](en Entity, addFunc func(int, []int, mat.Matrix, mesh.CellType) (T, error)) (err error) {
	var (
		ct mesh.CellType
		X  *mat.Dense
	)
	if ct, err = mesh.ParseCellType(en.Shape); err != nil {
		return
	}
	if X, err = en.Coordinates(); err != nil {
		return
	}
	_, err = addFunc(en.ID, en.Nodes, X, ct)
	return
}
