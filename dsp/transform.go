package dsp

import "math"

// Transform computes log-magnitude spectrograms, log-mel spectrograms and
// frame energies. It is stateless and safe for concurrent use.
type Transform struct{}

func (Transform) Spectrogram(x []float64, nFFT, hop, win int) [][]float64 {
	mag := magnitudes(x, nFFT, hop, win)
	for _, row := range mag {
		for k, v := range row {
			row[k] = logCompress(v)
		}
	}
	return mag
}

func (Transform) Mel(x []float64, nFFT, melBins, sampleRate, hop, win int, fMin, fMax float64) [][]float64 {
	mag := magnitudes(x, nFFT, hop, win)
	bank := MelFilterbank(sampleRate, nFFT, melBins, fMin, fMax)
	out := make([][]float64, len(mag))
	for f, row := range mag {
		mel := make([]float64, melBins)
		for m, filter := range bank {
			var sum float64
			for k, w := range filter {
				sum += w * row[k]
			}
			mel[m] = logCompress(sum)
		}
		out[f] = mel
	}
	return out
}

// Energy is the L2 norm of each magnitude frame.
func (Transform) Energy(x []float64, nFFT, hop, win int) []float64 {
	mag := magnitudes(x, nFFT, hop, win)
	out := make([]float64, len(mag))
	for f, row := range mag {
		var sum float64
		for _, v := range row {
			sum += v * v
		}
		out[f] = math.Sqrt(sum)
	}
	return out
}
