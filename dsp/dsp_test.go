package dsp

import (
	"math"
	"testing"
)

func sine(n int, freq, rate float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return x
}

func TestFrameCounts(t *testing.T) {
	const (
		nFFT = 1024
		hop  = 256
		win  = 1024
		rate = 22050
	)
	for _, frames := range []int{1, 2, 10, 87} {
		x := sine(frames*hop, 440, rate)
		var tr Transform
		spect := tr.Spectrogram(x, nFFT, hop, win)
		mel := tr.Mel(x, nFFT, 80, rate, hop, win, 0, 8000)
		energy := tr.Energy(x, nFFT, hop, win)
		if len(spect) != frames || len(mel) != frames || len(energy) != frames {
			t.Errorf("%d hops: spect=%d mel=%d energy=%d", frames, len(spect), len(mel), len(energy))
			continue
		}
		if len(spect[0]) != nFFT/2+1 {
			t.Errorf("spectrogram bins = %d, want %d", len(spect[0]), nFFT/2+1)
		}
		if len(mel[0]) != 80 {
			t.Errorf("mel bins = %d, want 80", len(mel[0]))
		}
	}
}

func TestSpectrogramPeak(t *testing.T) {
	const (
		nFFT = 1024
		rate = 16000
	)
	// Bin-centered tone: 40 * rate / nFFT Hz.
	x := sine(16*256, 40*float64(rate)/nFFT, rate)
	spect := Transform{}.Spectrogram(x, nFFT, 256, nFFT)
	row := spect[8]
	best := 0
	for k, v := range row {
		if v > row[best] {
			best = k
		}
	}
	if best != 40 {
		t.Errorf("peak bin = %d, want 40", best)
	}
}

func TestSilenceFloor(t *testing.T) {
	spect := Transform{}.Spectrogram(make([]float64, 1024), 1024, 256, 1024)
	for _, row := range spect {
		for _, v := range row {
			if v < math.Log(logFloor)-1e-12 {
				t.Fatalf("value %v below log floor", v)
			}
		}
	}
}

func TestMelFilterbank(t *testing.T) {
	bank := MelFilterbank(22050, 1024, 80, 0, 8000)
	if len(bank) != 80 {
		t.Fatalf("filters = %d", len(bank))
	}
	for m, filter := range bank {
		var nonzero int
		for k, w := range filter {
			if w < 0 {
				t.Fatalf("filter %d bin %d negative", m, k)
			}
			if w > 0 {
				nonzero++
			}
			if f := float64(k) * 22050 / 1024; w > 0 && f > 8000+22050.0/1024 {
				t.Errorf("filter %d has weight above fMax at %v Hz", m, f)
			}
		}
		if m > 10 && nonzero == 0 {
			t.Errorf("filter %d is empty", m)
		}
	}
}

func TestMelFilterbankNyquist(t *testing.T) {
	bank := MelFilterbank(22050, 1024, 80, 0, 0)
	var top float64
	for k, w := range bank[len(bank)-1] {
		if w > 0 {
			top = math.Max(top, float64(k)*22050/1024)
		}
	}
	if top < 10000 {
		t.Errorf("top filter ends at %v Hz, want close to 11025", top)
	}
}

func TestMelScaleRoundTrip(t *testing.T) {
	for _, hz := range []float64{0, 100, 999, 1000, 4000, 11025} {
		if got := melToHz(hzToMel(hz)); math.Abs(got-hz) > 1e-6 {
			t.Errorf("melToHz(hzToMel(%v)) = %v", hz, got)
		}
	}
}

func TestReflectPad(t *testing.T) {
	got := reflectPad([]float64{1, 2, 3, 4}, 2)
	want := []float64{3, 2, 1, 2, 3, 4, 3, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reflectPad = %v, want %v", got, want)
		}
	}
}

func TestEnergyIncreasesWithAmplitude(t *testing.T) {
	quiet := sine(4096, 440, 22050)
	loud := make([]float64, len(quiet))
	for i, v := range quiet {
		loud[i] = 2 * v
	}
	var tr Transform
	q, l := tr.Energy(quiet, 1024, 256, 1024), tr.Energy(loud, 1024, 256, 1024)
	for f := range q {
		if l[f] <= q[f] {
			t.Fatalf("frame %d: loud %v <= quiet %v", f, l[f], q[f])
		}
	}
}
