// Package dsp computes the spectral features stored with every pattern.
// All 2D outputs are time-major: one row per hop.
package dsp

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	magnitudeEpsilon = 1e-9
	logFloor         = 1e-5
)

// magnitudes returns |STFT| frames of x. The signal is reflect padded by
// (nFFT-hop)/2 on both sides and framed without centering, so a signal of
// n*hop samples yields n frames. The Hann window of length win sits in the
// middle of each nFFT frame.
func magnitudes(x []float64, nFFT, hop, win int) [][]float64 {
	padded := reflectPad(x, (nFFT-hop)/2)
	if len(padded) < nFFT {
		return nil
	}
	frames := 1 + (len(padded)-nFFT)/hop

	window := make([]float64, nFFT)
	offset := (nFFT - win) / 2
	for i := 0; i < win; i++ {
		window[offset+i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(win))
	}

	fft := fourier.NewFFT(nFFT)
	buf := make([]float64, nFFT)
	coeff := make([]complex128, nFFT/2+1)
	out := make([][]float64, frames)
	for f := range out {
		start := f * hop
		for k := range buf {
			buf[k] = padded[start+k] * window[k]
		}
		coeff = fft.Coefficients(coeff, buf)
		row := make([]float64, len(coeff))
		for k, c := range coeff {
			row[k] = math.Sqrt(real(c)*real(c) + imag(c)*imag(c) + magnitudeEpsilon)
		}
		out[f] = row
	}
	return out
}

// reflectPad mirrors x around its first and last samples, excluding the
// edge sample itself. Pads longer than the signal fall back to zeros.
func reflectPad(x []float64, pad int) []float64 {
	if pad <= 0 {
		return x
	}
	out := make([]float64, len(x)+2*pad)
	copy(out[pad:], x)
	if pad >= len(x) {
		return out
	}
	for i := 0; i < pad; i++ {
		out[pad-1-i] = x[i+1]
		out[pad+len(x)+i] = x[len(x)-2-i]
	}
	return out
}

func logCompress(v float64) float64 {
	return math.Log(math.Max(v, logFloor))
}
