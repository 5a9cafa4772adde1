package dsp

import "math"

// Slaney mel scale: linear below 1 kHz, logarithmic above.
const (
	melLinearStep = 200.0 / 3
	melBreakHz    = 1000.0
	melBreak      = melBreakHz / melLinearStep
)

var melLogStep = math.Log(6.4) / 27

func hzToMel(hz float64) float64 {
	if hz < melBreakHz {
		return hz / melLinearStep
	}
	return melBreak + math.Log(hz/melBreakHz)/melLogStep
}

func melToHz(mel float64) float64 {
	if mel < melBreak {
		return mel * melLinearStep
	}
	return melBreakHz * math.Exp(melLogStep*(mel-melBreak))
}

// MelFilterbank builds melBins triangular filters over the nFFT/2+1
// frequency bins, area normalized. fMax <= 0 means Nyquist.
func MelFilterbank(sampleRate, nFFT, melBins int, fMin, fMax float64) [][]float64 {
	if fMax <= 0 {
		fMax = float64(sampleRate) / 2
	}
	bins := nFFT/2 + 1
	freqs := make([]float64, bins)
	for k := range freqs {
		freqs[k] = float64(k) * float64(sampleRate) / float64(nFFT)
	}

	lo, hi := hzToMel(fMin), hzToMel(fMax)
	edges := make([]float64, melBins+2)
	for i := range edges {
		edges[i] = melToHz(lo + (hi-lo)*float64(i)/float64(melBins+1))
	}

	bank := make([][]float64, melBins)
	for m := range bank {
		left, center, right := edges[m], edges[m+1], edges[m+2]
		norm := 2 / (right - left)
		filter := make([]float64, bins)
		for k, f := range freqs {
			up := (f - left) / (center - left)
			down := (right - f) / (right - center)
			if w := math.Min(up, down); w > 0 {
				filter[k] = w * norm
			}
		}
		bank[m] = filter
	}
	return bank
}
