// SPDX-License-Identifier: MIT
// Package funcs: the fft.* namespace, on gonum's dsp/fourier.
// Both directions run the complex transform so fft then ifft round-trips
// the input at the original length; the inverse applies the 1/n scale.
package funcs

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matcli/dispatch"
	"github.com/katalvlaran/matcli/schema"
)

func fftTable() []*dispatch.Entry {
	return []*dispatch.Entry{
		{
			Name:   "fft.fft",
			Schema: &schema.CallSchema{Name: "fft.fft", Pos: posM("m")},
			Syntax: "fft.fft V",
			Doc:    "Discrete Fourier transform of a real vector; full complex spectrum.",
			Fn:     fftForward,
		},
		{
			Name:   "fft.ifft",
			Schema: &schema.CallSchema{Name: "fft.ifft", Pos: posM("m")},
			Syntax: "fft.ifft V",
			Doc:    "Inverse DFT of a real spectrum; complex sequence scaled by 1/n.",
			Fn:     fftInverse,
		},
	}
}

func vectorOf(m *mat.Dense) ([]float64, error) {
	r, c := m.Dims()
	if r != 1 && c != 1 {
		return nil, fmt.Errorf("fft wants a vector, got %dx%d", r, c)
	}

	return flattenDense(m), nil
}

func toComplex(v []float64) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = complex(x, 0)
	}

	return out
}

func fftForward(pos []any, _ map[string]any) (any, error) {
	v, err := vectorOf(denseArg(pos, 0))
	if err != nil {
		return nil, err
	}

	return fourier.NewCmplxFFT(len(v)).Coefficients(nil, toComplex(v)), nil
}

func fftInverse(pos []any, _ map[string]any) (any, error) {
	v, err := vectorOf(denseArg(pos, 0))
	if err != nil {
		return nil, err
	}
	n := len(v)

	seq := fourier.NewCmplxFFT(n).Sequence(nil, toComplex(v))
	for i := range seq {
		seq[i] /= complex(float64(n), 0)
	}

	return seq, nil
}
