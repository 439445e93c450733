package quadrature

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// JacobiGQ computes the N+1 point Gauss quadrature for the Jacobi weight
// (1-x)^alpha (1+x)^beta on [-1,1], from the eigen decomposition of the
// symmetric Jacobi matrix (Golub-Welsch)
func JacobiGQ(alpha, beta float64, N int) (x, w []float64) {
	var (
		fac        float64
		h1, d0, d1 []float64
	)
	if N == 0 {
		x = []float64{-(alpha - beta) / (alpha + beta + 2.)}
		w = []float64{gamma0(alpha, beta)}
		return
	}

	h1 = make([]float64, N+1)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	// main diagonal: (beta^2-alpha^2)./(h1+2)./h1
	d0 = make([]float64, N+1)
	fac = beta*beta - alpha*alpha
	for i := 0; i < N+1; i++ {
		val := h1[i]
		d0[i] = fac / (val * (val + 2.))
	}
	// Handle division by zero, the first entry reduces to (beta-alpha)/(alpha+beta+2)
	eps := 1.e-16
	if math.Abs(alpha+beta) < 10*eps {
		d0[0] = (beta - alpha) / (alpha + beta + 2.)
	}

	// 1st upper diagonal
	var ip1 float64
	d1 = make([]float64, N)
	for i := 0; i < N; i++ {
		ip1 = float64(i + 1)
		val := h1[i]
		d1[i] = 2. / (val + 2.)
		d1[i] *= math.Sqrt(ip1 * (ip1 + alpha + beta) * (ip1 + alpha) * (ip1 + beta) / ((val + 1.) * (val + 3.)))
	}

	JJ := mat.NewSymDense(N+1, nil)
	for i := 0; i < N+1; i++ {
		JJ.SetSym(i, i, d0[i])
		if i < N {
			JJ.SetSym(i, i+1, d1[i])
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(nil)

	VV := mat.NewDense(N+1, N+1, nil)
	eig.VectorsTo(VV)
	g0 := gamma0(alpha, beta)
	w = make([]float64, N+1)
	for j := 0; j < N+1; j++ {
		v := VV.At(0, j)
		w[j] = v * v * g0
	}
	return
}

// gamma0 is the integral of the Jacobi weight over [-1,1]
func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Pow(2., ab1) / ab1 * math.Gamma(a1) * math.Gamma(b1) / math.Gamma(ab1)
}

// GaussLegendre returns the n point Gauss-Legendre rule on [-1,1], exact for
// polynomials of degree 2n-1
func GaussLegendre(n int) (x, w []float64) {
	if n < 1 {
		n = 1
	}
	return JacobiGQ(0, 0, n-1)
}

// PointsForDegree is the number of Gauss points per direction needed to
// integrate a polynomial of the given degree exactly
func PointsForDegree(degree int) int {
	if degree < 1 {
		return 1
	}
	return (degree + 2) / 2
}
