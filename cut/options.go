package cut

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotCut           = errors.New("cut has not been performed")
	ErrAlreadyCut       = errors.New("mesh intersection has already been cut")
	ErrUnsupportedShape = errors.New("unsupported cell type")
	ErrNodeMismatch     = errors.New("node coordinates differ from an earlier definition")
	ErrVolumeCheck      = errors.New("volume check failed")
)

// VCellGaussPts selects how integration points are generated for volume
// cells. The zero value is direct divergence, the same as an empty name.
type VCellGaussPts int

const (
	VCellGaussPtsDirectDivergence VCellGaussPts = iota
	VCellGaussPtsTessellation
)

func (v VCellGaussPts) String() string {
	switch v {
	case VCellGaussPtsTessellation:
		return "Tessellation"
	case VCellGaussPtsDirectDivergence:
		return "DirectDivergence"
	}
	return "Unknown"
}

func ParseVCellGaussPts(s string) (v VCellGaussPts, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "directdivergence", "dd":
		v = VCellGaussPtsDirectDivergence
	case "tessellation", "tess":
		v = VCellGaussPtsTessellation
	default:
		err = errors.Errorf("unknown volume cell integration rule %q", s)
	}
	return
}

// BCellGaussPts selects how integration points are generated for boundary cells
type BCellGaussPts int

const (
	BCellGaussPtsTessellation BCellGaussPts = iota
)

func (b BCellGaussPts) String() string {
	if b == BCellGaussPtsTessellation {
		return "Tessellation"
	}
	return "Unknown"
}

func ParseBCellGaussPts(s string) (b BCellGaussPts, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tessellation", "tess":
		b = BCellGaussPtsTessellation
	default:
		err = errors.Errorf("unknown boundary cell integration rule %q", s)
	}
	return
}

// Position of a volume cell or node relative to the cutter surface. Cutter
// side normals point toward Outside.
type Position int

const (
	Undecided Position = iota
	Outside
	Inside
	OnCutSurface
)

var positionNames = [...]string{"undecided", "outside", "inside", "oncutsurface"}

func (p Position) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return positionNames[p]
}

func (p Position) Decided() bool {
	return p == Outside || p == Inside
}

// Options control the tolerances and rule orders of the cut
type Options struct {
	// GeometricTolerance is relative to the bounding box diagonal of each element
	GeometricTolerance float64
	// VolumeTolerance is the relative error allowed in the volume checks
	VolumeTolerance float64
	// VolumeOrder and BoundaryOrder are the polynomial degrees integrated exactly
	VolumeOrder   int
	BoundaryOrder int
	// Parallel is the number of goroutines cutting elements, 0 uses all CPUs
	Parallel     int
	CheckVolumes bool
}

func DefaultOptions() Options {
	return Options{
		GeometricTolerance: 1.e-10,
		VolumeTolerance:    1.e-8,
		VolumeOrder:        2,
		BoundaryOrder:      2,
		Parallel:           0,
		CheckVolumes:       true,
	}
}

// InitForCutTests tightens the tolerances and runs single threaded, as used
// by the generated cut tests
func (o *Options) InitForCutTests() {
	o.GeometricTolerance = 1.e-11
	o.VolumeTolerance = 1.e-9
	o.CheckVolumes = true
	o.Parallel = 1
}
