package mesh

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// PosWriter writes gmsh post-processing views (.pos), keeping the first
// write error
type PosWriter struct {
	w   io.Writer
	err error
}

func NewPosWriter(w io.Writer) *PosWriter {
	return &PosWriter{w: w}
}

func (p *PosWriter) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *PosWriter) BeginView(name string) {
	p.printf("View \"%s\" {\n", name)
}

func (p *PosWriter) EndView() {
	p.printf("};\n")
}

// Triangle writes a scalar triangle with a constant value
func (p *PosWriter) Triangle(a, b, c r3.Vec, val float64) {
	p.printf("ST(%.16g,%.16g,%.16g,%.16g,%.16g,%.16g,%.16g,%.16g,%.16g){%g,%g,%g};\n",
		a.X, a.Y, a.Z, b.X, b.Y, b.Z, c.X, c.Y, c.Z, val, val, val)
}

// Point writes a scalar point
func (p *PosWriter) Point(x r3.Vec, val float64) {
	p.printf("SP(%.16g,%.16g,%.16g){%g};\n", x.X, x.Y, x.Z, val)
}

func (p *PosWriter) Err() error {
	return p.err
}
