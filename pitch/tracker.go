// Package pitch estimates frame-level log fundamental frequency.
package pitch

import "math"

// Unvoiced is the log-F0 value of frames without a detected period.
const Unvoiced = -1e10

const (
	voicingThreshold = 0.45
	// Frames quieter than this fraction of the loudest frame are unvoiced.
	relativeFloor = 0.01
	// Absolute RMS floor in the 16-bit sample domain.
	absoluteFloor = 1.0
	// Lags within this fraction of the best correlation are preferred when
	// shorter, which keeps period doubling out of the contour.
	octaveTolerance = 0.9
)

// Tracker is a normalized cross-correlation pitch tracker. One value is
// produced per hop, len(x)/hop in total.
type Tracker struct{}

func (Tracker) LogF0(x []float64, sampleRate, hop int, f0Min, f0Max float64) []float64 {
	if hop <= 0 || f0Min <= 0 || f0Max <= f0Min {
		return nil
	}
	frames := len(x) / hop
	out := make([]float64, frames)

	minLag := int(math.Floor(float64(sampleRate) / f0Max))
	if minLag < 1 {
		minLag = 1
	}
	maxLag := int(math.Ceil(float64(sampleRate) / f0Min))
	size := maxLag

	sample := func(i int) float64 {
		if i < 0 || i >= len(x) {
			return 0
		}
		return x[i]
	}

	rms := make([]float64, frames)
	var loudest float64
	for f := range rms {
		start := f*hop + hop/2 - size/2
		var sum float64
		for j := 0; j < size; j++ {
			v := sample(start + j)
			sum += v * v
		}
		rms[f] = math.Sqrt(sum / float64(size))
		loudest = math.Max(loudest, rms[f])
	}

	corr := make([]float64, maxLag+2)
	for f := range out {
		out[f] = Unvoiced
		if rms[f] < absoluteFloor || rms[f] < loudest*relativeFloor {
			continue
		}
		start := f*hop + hop/2 - size/2

		var e0 float64
		for j := 0; j < size; j++ {
			v := sample(start + j)
			e0 += v * v
		}
		best := 0.0
		for lag := minLag - 1; lag <= maxLag+1; lag++ {
			if lag < 1 {
				continue
			}
			var num, e1 float64
			for j := 0; j < size; j++ {
				a, b := sample(start+j), sample(start+j+lag)
				num += a * b
				e1 += b * b
			}
			if e0 == 0 || e1 == 0 {
				corr[lag] = 0
				continue
			}
			corr[lag] = num / math.Sqrt(e0*e1)
			if lag >= minLag && lag <= maxLag {
				best = math.Max(best, corr[lag])
			}
		}
		if best < voicingThreshold {
			continue
		}

		pick := -1
		for lag := minLag; lag <= maxLag; lag++ {
			if corr[lag] < best*octaveTolerance {
				continue
			}
			if corr[lag] >= corr[lag-1] && corr[lag] >= corr[lag+1] {
				pick = lag
				break
			}
		}
		if pick < 0 {
			continue
		}

		period := float64(pick) + interpolate(corr[pick-1], corr[pick], corr[pick+1])
		out[f] = math.Log(float64(sampleRate) / period)
	}
	return out
}

// interpolate returns the offset of the parabola vertex through three
// equally spaced points, in [-0.5, 0.5].
func interpolate(left, center, right float64) float64 {
	denom := left - 2*center + right
	if denom == 0 {
		return 0
	}
	offset := 0.5 * (left - right) / denom
	return math.Max(-0.5, math.Min(0.5, offset))
}
