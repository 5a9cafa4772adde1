package pitch

import (
	"math"
	"testing"
)

func tone(n int, freq float64, rate int, amplitude float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return x
}

func TestLogF0Tone(t *testing.T) {
	const (
		rate = 16000
		hop  = 256
	)
	tests := []struct {
		name string
		freq float64
	}{
		{"low", 100},
		{"mid", 200},
		{"high", 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := tone(32*hop, tt.freq, rate, 0.9*32768)
			got := Tracker{}.LogF0(x, rate, hop, 40, 800)
			if len(got) != 32 {
				t.Fatalf("frames = %d, want 32", len(got))
			}
			// Edge frames see zero padding; check the interior.
			for f := 4; f < len(got)-4; f++ {
				if math.Abs(got[f]-math.Log(tt.freq)) > 0.02 {
					t.Errorf("frame %d: log f0 = %v (%.1f Hz), want %.1f Hz", f, got[f], math.Exp(got[f]), tt.freq)
				}
			}
		})
	}
}

func TestLogF0Silence(t *testing.T) {
	got := Tracker{}.LogF0(make([]float64, 4096), 16000, 256, 40, 800)
	if len(got) != 16 {
		t.Fatalf("frames = %d, want 16", len(got))
	}
	for f, v := range got {
		if v != Unvoiced {
			t.Errorf("frame %d = %v, want unvoiced", f, v)
		}
	}
}

func TestLogF0InvalidRange(t *testing.T) {
	if got := (Tracker{}).LogF0(make([]float64, 1024), 16000, 256, 800, 40); got != nil {
		t.Errorf("inverted range returned %d frames", len(got))
	}
}

func TestInterpolate(t *testing.T) {
	if got := interpolate(1, 2, 1); got != 0 {
		t.Errorf("symmetric peak offset = %v", got)
	}
	if got := interpolate(2, 2, 0); got >= 0 {
		t.Errorf("left-leaning peak offset = %v, want negative", got)
	}
}
