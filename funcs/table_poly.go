// SPDX-License-Identifier: MIT
// Package funcs: the poly.* namespace.
// Polynomials are coefficient rows, lowest degree first, so a fit result
// prints directly in polynomial mode. Root finding runs through the
// companion-matrix eigendecomposition.
package funcs

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matcli/coerce"
	"github.com/katalvlaran/matcli/dispatch"
	"github.com/katalvlaran/matcli/schema"
)

func polyTable() []*dispatch.Entry {
	return []*dispatch.Entry{
		{
			Name: "poly.polyval",
			Schema: &schema.CallSchema{
				Name: "poly.polyval",
				Pos:  posM("coeffs", "x"),
			},
			Syntax: "poly.polyval COEFFS X",
			Doc:    "Evaluate a polynomial (coefficients lowest degree first) at each element of X.",
			Fn:     polyPolyval,
		},
		{
			Name: "poly.polyfit",
			Schema: &schema.CallSchema{
				Name: "poly.polyfit",
				Pos:  []schema.Param{pp("x", coerce.Matrix), pp("y", coerce.Matrix), pp("deg", coerce.Int)},
			},
			Syntax: "poly.polyfit X Y DEG",
			Doc:    "Least-squares polynomial fit of degree DEG; coefficients lowest degree first.",
			Fn:     polyPolyfit,
		},
		{
			Name:   "poly.polyder",
			Schema: &schema.CallSchema{Name: "poly.polyder", Pos: posM("coeffs")},
			Syntax: "poly.polyder COEFFS",
			Doc:    "Derivative of a polynomial given as coefficients, lowest degree first.",
			Fn:     polyPolyder,
		},
		{
			Name:   "poly.roots",
			Schema: &schema.CallSchema{Name: "poly.roots", Pos: posM("coeffs")},
			Syntax: "poly.roots COEFFS",
			Doc:    "Complex roots of a polynomial via its companion matrix.",
			Fn:     polyRoots,
		},
	}
}

// coeffVector flattens a matrix argument expected to be a vector of
// polynomial coefficients and strips trailing (highest-degree) zeros.
func coeffVector(m *mat.Dense) ([]float64, error) {
	r, c := m.Dims()
	if r != 1 && c != 1 {
		return nil, fmt.Errorf("coefficients must be a vector, got %dx%d", r, c)
	}
	v := flattenDense(m)
	for len(v) > 1 && v[len(v)-1] == 0 {
		v = v[:len(v)-1]
	}

	return v, nil
}

func polyPolyval(pos []any, _ map[string]any) (any, error) {
	coeffs, err := coeffVector(denseArg(pos, 0))
	if err != nil {
		return nil, err
	}
	x := denseArg(pos, 1)
	r, c := x.Dims()

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, horner(coeffs, x.At(i, j)))
		}
	}

	return out, nil
}

// horner evaluates coeffs (lowest degree first) at x.
func horner(coeffs []float64, x float64) float64 {
	acc := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc*x + coeffs[i]
	}

	return acc
}

func polyPolyfit(pos []any, _ map[string]any) (any, error) {
	xs := flattenDense(denseArg(pos, 0))
	ys := flattenDense(denseArg(pos, 1))
	deg := intArg(pos, 2)

	if len(xs) != len(ys) {
		return nil, fmt.Errorf("polyfit: x has %d samples, y has %d", len(xs), len(ys))
	}
	if deg < 0 {
		return nil, fmt.Errorf("polyfit degree must be >= 0, got %d", deg)
	}
	if len(xs) < deg+1 {
		return nil, fmt.Errorf("polyfit needs at least %d samples for degree %d, got %d",
			deg+1, deg, len(xs))
	}

	// Vandermonde system, lowest degree first.
	vand := mat.NewDense(len(xs), deg+1, nil)
	for i, x := range xs {
		p := 1.0
		for j := 0; j <= deg; j++ {
			vand.Set(i, j, p)
			p *= x
		}
	}

	var qr mat.QR
	qr.Factorize(vand)
	var sol mat.Dense
	if err := qr.SolveTo(&sol, false, mat.NewDense(len(ys), 1, ys)); err != nil {
		return nil, err
	}

	coeffs := make([]float64, deg+1)
	for j := 0; j <= deg; j++ {
		coeffs[j] = sol.At(j, 0)
	}

	return coeffs, nil
}

func polyPolyder(pos []any, _ map[string]any) (any, error) {
	coeffs, err := coeffVector(denseArg(pos, 0))
	if err != nil {
		return nil, err
	}
	if len(coeffs) <= 1 {
		return []float64{0}, nil
	}

	out := make([]float64, len(coeffs)-1)
	for i := 1; i < len(coeffs); i++ {
		out[i-1] = coeffs[i] * float64(i)
	}

	return out, nil
}

func polyRoots(pos []any, _ map[string]any) (any, error) {
	coeffs, err := coeffVector(denseArg(pos, 0))
	if err != nil {
		return nil, err
	}
	n := len(coeffs) - 1 // degree
	if n < 1 {
		return nil, fmt.Errorf("roots wants a polynomial of degree >= 1")
	}

	// Companion matrix of the monic polynomial; its eigenvalues are the
	// roots.
	lead := coeffs[n]
	comp := mat.NewDense(n, n, nil)
	for i := 1; i < n; i++ {
		comp.Set(i, i-1, 1)
	}
	for i := 0; i < n; i++ {
		comp.Set(i, n-1, -coeffs[i]/lead)
	}

	var eig mat.Eigen
	if !eig.Factorize(comp, mat.EigenNone) {
		return nil, fmt.Errorf("companion eigendecomposition failed")
	}

	return eig.Values(nil), nil
}
