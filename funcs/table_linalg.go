// SPDX-License-Identifier: MIT
// Package funcs: the linalg.* namespace.
// Decompositions and solvers delegate to gonum's factorization types;
// multi-part results come back as render.Tuple in the factorization's
// natural order.
package funcs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matcli/coerce"
	"github.com/katalvlaran/matcli/dispatch"
	"github.com/katalvlaran/matcli/render"
	"github.com/katalvlaran/matcli/schema"
)

func linalgTable() []*dispatch.Entry {
	return []*dispatch.Entry{
		{
			Name:   "linalg.inv",
			Schema: &schema.CallSchema{Name: "linalg.inv", Pos: posM("m")},
			Syntax: "linalg.inv M",
			Doc:    "Inverse of a square non-singular matrix.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				var out mat.Dense
				if err := out.Inverse(denseArg(pos, 0)); err != nil {
					return nil, err
				}
				return &out, nil
			},
		},
		{
			Name:   "linalg.det",
			Schema: &schema.CallSchema{Name: "linalg.det", Pos: posM("m")},
			Syntax: "linalg.det M",
			Doc:    "Determinant of a square matrix.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				return mat.Det(denseArg(pos, 0)), nil
			},
		},
		{
			Name:   "linalg.solve",
			Schema: &schema.CallSchema{Name: "linalg.solve", Pos: posM("a", "b")},
			Syntax: "linalg.solve A B",
			Doc:    "Solve the square system A·x = B exactly.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				var out mat.Dense
				if err := out.Solve(denseArg(pos, 0), denseArg(pos, 1)); err != nil {
					return nil, err
				}
				return &out, nil
			},
		},
		{
			Name:   "linalg.lstsq",
			Schema: &schema.CallSchema{Name: "linalg.lstsq", Pos: posM("a", "b")},
			Syntax: "linalg.lstsq A B",
			Doc:    "Least-squares solution of the possibly overdetermined system A·x ≈ B.",
			Fn:     linalgLstsq,
		},
		{
			Name:   "linalg.eig",
			Schema: &schema.CallSchema{Name: "linalg.eig", Pos: posM("m")},
			Syntax: "linalg.eig M",
			Doc:    "Eigenvalues and right eigenvectors of a square matrix.",
			Fn:     linalgEig,
		},
		{
			Name:   "linalg.eigvals",
			Schema: &schema.CallSchema{Name: "linalg.eigvals", Pos: posM("m")},
			Syntax: "linalg.eigvals M",
			Doc:    "Eigenvalues of a square matrix, without eigenvectors.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				var eig mat.Eigen
				if !eig.Factorize(denseArg(pos, 0), mat.EigenNone) {
					return nil, fmt.Errorf("eigendecomposition failed")
				}
				return eig.Values(nil), nil
			},
		},
		{
			Name: "linalg.svd",
			Schema: &schema.CallSchema{
				Name: "linalg.svd",
				Pos:  posM("m"),
				Kw:   map[string]coerce.Func{"full_matrices": coerce.BoolStr},
			},
			Syntax: "linalg.svd M [full_matrices=BOOL]",
			Doc:    "Singular value decomposition: U, singular values, Vᵀ.",
			Fn:     linalgSVD,
		},
		{
			Name:   "linalg.qr",
			Schema: &schema.CallSchema{Name: "linalg.qr", Pos: posM("m")},
			Syntax: "linalg.qr M",
			Doc:    "QR decomposition: orthonormal Q and upper-triangular R.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				var qr mat.QR
				qr.Factorize(denseArg(pos, 0))
				var q, r mat.Dense
				qr.QTo(&q)
				qr.RTo(&r)
				return render.Tuple{&q, &r}, nil
			},
		},
		{
			Name:   "linalg.lu",
			Schema: &schema.CallSchema{Name: "linalg.lu", Pos: posM("m")},
			Syntax: "linalg.lu M",
			Doc:    "LU decomposition of a square matrix: unit-lower L and upper U.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				var lu mat.LU
				lu.Factorize(denseArg(pos, 0))
				var l, u mat.TriDense
				lu.LTo(&l)
				lu.UTo(&u)
				return render.Tuple{&l, &u}, nil
			},
		},
		{
			Name:   "linalg.cholesky",
			Schema: &schema.CallSchema{Name: "linalg.cholesky", Pos: posM("m")},
			Syntax: "linalg.cholesky M",
			Doc:    "Lower Cholesky factor of a symmetric positive-definite matrix.",
			Fn:     linalgCholesky,
		},
		{
			Name: "linalg.norm",
			Schema: &schema.CallSchema{
				Name: "linalg.norm",
				Pos:  posM("m"),
				Kw:   map[string]coerce.Func{"ord": coerce.Order},
			},
			Syntax: "linalg.norm M [ord=1|2|inf|fro]",
			Doc:    "Matrix norm; default is the Frobenius norm.",
			Fn:     linalgNorm,
		},
		{
			Name: "linalg.matrix_rank",
			Schema: &schema.CallSchema{
				Name: "linalg.matrix_rank",
				Pos:  posM("m"),
				Kw:   map[string]coerce.Func{"tol": coerce.Float},
			},
			Syntax: "linalg.matrix_rank M [tol=T]",
			Doc:    "Numerical rank: count of singular values above the tolerance.",
			Fn:     linalgMatrixRank,
		},
		{
			Name: "linalg.matrix_power",
			Schema: &schema.CallSchema{
				Name: "linalg.matrix_power",
				Pos:  []schema.Param{pp("m", coerce.Matrix), pp("n", coerce.Int)},
			},
			Syntax: "linalg.matrix_power M N",
			Doc:    "N-th matrix power of a square matrix; negative N inverts first.",
			Fn:     linalgMatrixPower,
		},
	}
}

func linalgLstsq(pos []any, _ map[string]any) (any, error) {
	a, b := denseArg(pos, 0), denseArg(pos, 1)

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, fmt.Errorf("SVD failed for least squares")
	}
	var x mat.Dense
	svd.SolveTo(&x, b, rankOf(&svd, -1))

	return &x, nil
}

func linalgEig(pos []any, _ map[string]any) (any, error) {
	var eig mat.Eigen
	if !eig.Factorize(denseArg(pos, 0), mat.EigenRight) {
		return nil, fmt.Errorf("eigendecomposition failed")
	}
	var vecs mat.CDense
	eig.VectorsTo(&vecs)

	return render.Tuple{eig.Values(nil), &vecs}, nil
}

func linalgSVD(pos []any, kw map[string]any) (any, error) {
	kind := mat.SVDThin
	if kwBool(kw, "full_matrices", false) {
		kind = mat.SVDFull
	}

	var svd mat.SVD
	if !svd.Factorize(denseArg(pos, 0), kind) {
		return nil, fmt.Errorf("SVD failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// Third element is Vᵀ to match the usual decomposition contract.
	return render.Tuple{&u, svd.Values(nil), mat.DenseCopyOf(v.T())}, nil
}

func linalgCholesky(pos []any, _ map[string]any) (any, error) {
	m := denseArg(pos, 0)
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("cholesky wants a square matrix, got %dx%d", r, c)
	}

	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < c; j++ {
			sym.SetSym(i, j, m.At(i, j))
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(sym) {
		return nil, fmt.Errorf("matrix is not positive definite")
	}
	var l mat.TriDense
	chol.LTo(&l)

	return &l, nil
}

func linalgNorm(pos []any, kw map[string]any) (any, error) {
	m := denseArg(pos, 0)

	ord, ok := kw["ord"]
	if !ok {
		return mat.Norm(m, 2), nil // Frobenius
	}
	switch o := ord.(type) {
	case int:
		switch o {
		case 1, 2:
			return mat.Norm(m, float64(o)), nil
		case -1, -2:
			return nil, fmt.Errorf("negative norm orders are not supported")
		}
		return nil, fmt.Errorf("unsupported norm order %d", o)
	case float64:
		if math.IsInf(o, 1) {
			return mat.Norm(m, math.Inf(1)), nil
		}
		return nil, fmt.Errorf("unsupported norm order %v", o)
	case string:
		if o == "fro" {
			return mat.Norm(m, 2), nil
		}
		return nil, fmt.Errorf("unsupported norm order %q", o)
	}

	return nil, fmt.Errorf("unsupported norm order %v", ord)
}

func linalgMatrixRank(pos []any, kw map[string]any) (any, error) {
	var svd mat.SVD
	if !svd.Factorize(denseArg(pos, 0), mat.SVDNone) {
		return nil, fmt.Errorf("SVD failed for rank")
	}

	return rankOf(&svd, kwFloat(kw, "tol", -1)), nil
}

// rankOf counts singular values above tol; tol < 0 picks the usual
// max(r,c)·eps·σ_max default.
func rankOf(svd *mat.SVD, tol float64) int {
	vals := svd.Values(nil)
	if len(vals) == 0 {
		return 0
	}
	if tol < 0 {
		tol = float64(len(vals)) * vals[0] * 2.220446049250313e-16
	}

	rank := 0
	for _, s := range vals {
		if s > tol {
			rank++
		}
	}

	return rank
}

func linalgMatrixPower(pos []any, _ map[string]any) (any, error) {
	m, n := denseArg(pos, 0), intArg(pos, 1)
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("matrix_power wants a square matrix, got %dx%d", r, c)
	}

	base := m
	if n < 0 {
		var inv mat.Dense
		if err := inv.Inverse(m); err != nil {
			return nil, err
		}
		base = &inv
		n = -n
	}

	var out mat.Dense
	out.Pow(base, n)

	return &out, nil
}
