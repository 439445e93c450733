package geometry3D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// AABB is an axis aligned bounding box
type AABB struct {
	Min, Max r3.Vec
}

func NewAABB(pts ...r3.Vec) (b AABB) {
	if len(pts) == 0 {
		return
	}
	b.Min, b.Max = pts[0], pts[0]
	for _, p := range pts[1:] {
		b.Min = r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
		b.Max = r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	}
	return
}

func (b AABB) Union(o AABB) AABB {
	return NewAABB(b.Min, b.Max, o.Min, o.Max)
}

func (b AABB) Expand(tol float64) AABB {
	d := r3.Vec{X: tol, Y: tol, Z: tol}
	return AABB{Min: r3.Sub(b.Min, d), Max: r3.Add(b.Max, d)}
}

func (b AABB) Overlaps(o AABB) bool {
	return !(b.Max.X < o.Min.X || b.Min.X > o.Max.X ||
		b.Max.Y < o.Min.Y || b.Min.Y > o.Max.Y ||
		b.Max.Z < o.Min.Z || b.Min.Z > o.Max.Z)
}

// Contains reports whether x lies in the box grown by tol
func (b AABB) Contains(x r3.Vec, tol float64) bool {
	return x.X >= b.Min.X-tol && x.X <= b.Max.X+tol &&
		x.Y >= b.Min.Y-tol && x.Y <= b.Max.Y+tol &&
		x.Z >= b.Min.Z-tol && x.Z <= b.Max.Z+tol
}

func (b AABB) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

func (b AABB) Diagonal() float64 {
	return r3.Norm(b.Size())
}
