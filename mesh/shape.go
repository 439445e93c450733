package mesh

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// hex8 reference node coordinates on [-1,1]^3
var hex8Ref = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// Hex8Shape evaluates the trilinear shape functions at (r, s, t)
func Hex8Shape(r, s, t float64) (N [8]float64) {
	for i, p := range hex8Ref {
		N[i] = 0.125 * (1 + p[0]*r) * (1 + p[1]*s) * (1 + p[2]*t)
	}
	return
}

// Hex8Deriv returns dN/d(r,s,t) as an 8x3 array
func Hex8Deriv(r, s, t float64) (dN [8][3]float64) {
	for i, p := range hex8Ref {
		dN[i][0] = 0.125 * p[0] * (1 + p[1]*s) * (1 + p[2]*t)
		dN[i][1] = 0.125 * (1 + p[0]*r) * p[1] * (1 + p[2]*t)
		dN[i][2] = 0.125 * (1 + p[0]*r) * (1 + p[1]*s) * p[2]
	}
	return
}

// Hex8Map returns the physical point and the Jacobian determinant at (r, s, t)
func Hex8Map(X [8]r3.Vec, r, s, t float64) (x r3.Vec, detJ float64) {
	var (
		N  = Hex8Shape(r, s, t)
		dN = Hex8Deriv(r, s, t)
		J  = mat.NewDense(3, 3, nil)
	)
	for i := 0; i < 8; i++ {
		x = r3.Add(x, r3.Scale(N[i], X[i]))
		xi := [3]float64{X[i].X, X[i].Y, X[i].Z}
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				J.Set(a, b, J.At(a, b)+xi[a]*dN[i][b])
			}
		}
	}
	detJ = mat.Det(J)
	return
}
