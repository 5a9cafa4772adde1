package audio

import "math"

// Analysis window used to find leading and trailing silence.
const (
	TrimFrameLength = 512
	TrimHopLength   = 256
)

// PeakScale is the full-scale fraction the normalized peak lands on.
const PeakScale = 0.95

// Trim removes leading and trailing audio quieter than topDB below the
// loudest analysis frame. Frames are centered on multiples of hopLength and
// zero padded at the edges. A fully silent signal is kept whole.
func Trim(x []float64, topDB float64, frameLength, hopLength int) []float64 {
	if len(x) == 0 {
		return x
	}
	frames := 1 + len(x)/hopLength
	power := make([]float64, frames)
	var peak float64
	for i := range power {
		start := i*hopLength - frameLength/2
		var sum float64
		for j := start; j < start+frameLength; j++ {
			if j >= 0 && j < len(x) {
				sum += x[j] * x[j]
			}
		}
		power[i] = sum / float64(frameLength)
		peak = math.Max(peak, power[i])
	}
	ref := toDB(peak)
	first, last := -1, -1
	for i, p := range power {
		if toDB(p)-ref > -topDB {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return x[:0]
	}
	end := (last + 1) * hopLength
	if end > len(x) {
		end = len(x)
	}
	return x[first*hopLength : end]
}

func toDB(power float64) float64 {
	return 10 * math.Log10(math.Max(power, 1e-10))
}

// PeakNormalize scales x so its largest magnitude equals scale. Silence is
// returned unchanged.
func PeakNormalize(x []float64, scale float64) []float64 {
	var peak float64
	for _, v := range x {
		peak = math.Max(peak, math.Abs(v))
	}
	out := make([]float64, len(x))
	if peak == 0 {
		copy(out, x)
		return out
	}
	for i, v := range x {
		out[i] = v / peak * scale
	}
	return out
}

// TruncateToHop drops trailing samples so len is a multiple of hop.
func TruncateToHop(x []float64, hop int) []float64 {
	return x[:len(x)-len(x)%hop]
}
