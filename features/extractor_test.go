package features

import (
	"bytes"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type fakeDecoder struct {
	samples []float64
	err     error
}

func (d fakeDecoder) Load(string, int) ([]float64, error) {
	return d.samples, d.err
}

// shortPitch drops the last frame to provoke a mismatch warning.
type shortPitch struct{ PitchTracker }

func (s shortPitch) LogF0(x []float64, sampleRate, hop int, f0Min, f0Max float64) []float64 {
	out := s.PitchTracker.LogF0(x, sampleRate, hop, f0Min, f0Max)
	return out[:len(out)-1]
}

func testParams() Params {
	return Params{
		NFFT:        1024,
		MelDim:      80,
		SampleRate:  16000,
		FrameShift:  256,
		FrameLength: 1024,
		MelFMax:     8000,
		F0Min:       40,
		F0Max:       800,
		TopDB:       60,
	}
}

func voiced(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 0.3 * math.Sin(2*math.Pi*200*float64(i)/16000)
	}
	return x
}

func TestExtractFrameInvariants(t *testing.T) {
	for _, n := range []int{5000, 8192, 12345} {
		e := NewExtractor(logrus.New())
		e.Decoder = fakeDecoder{samples: voiced(n)}

		f, err := e.Extract("tone.wav", testParams())
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(f.Audio)%256 != 0 {
			t.Errorf("n=%d: audio length %d not a multiple of hop", n, len(f.Audio))
		}
		frames := len(f.Audio) / 256
		if len(f.Spectrogram) != frames || len(f.Mel) != frames {
			t.Errorf("n=%d: spect=%d mel=%d, want %d", n, len(f.Spectrogram), len(f.Mel), frames)
		}
		if len(f.LogF0) != frames || len(f.Energy) != frames {
			t.Errorf("n=%d: f0=%d energy=%d, want %d", n, len(f.LogF0), len(f.Energy), frames)
		}
		var peak float64
		for _, v := range f.Audio {
			peak = math.Max(peak, math.Abs(v))
		}
		if peak > 0.95+1e-9 {
			t.Errorf("n=%d: peak %v above 0.95", n, peak)
		}
	}
}

func TestExtractDecodeError(t *testing.T) {
	e := NewExtractor(logrus.New())
	e.Decoder = fakeDecoder{err: errors.New("boom")}
	if _, err := e.Extract("bad.wav", testParams()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestExtractSilence(t *testing.T) {
	e := NewExtractor(logrus.New())
	e.Decoder = fakeDecoder{samples: make([]float64, 4096)}
	f, err := e.Extract("silence.wav", testParams())
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Audio) != 4096 || len(f.Mel) != 4096/256 {
		t.Errorf("audio %d samples, mel %d frames", len(f.Audio), len(f.Mel))
	}
}

func TestExtractShorterThanHop(t *testing.T) {
	e := NewExtractor(logrus.New())
	e.Decoder = fakeDecoder{samples: voiced(100)}
	_, err := e.Extract("click.wav", testParams())
	if !errors.Is(err, ErrEmptyAudio) {
		t.Fatalf("err = %v, want ErrEmptyAudio", err)
	}
}

func TestExtractMismatchLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	e := NewExtractor(log)
	e.Decoder = fakeDecoder{samples: voiced(8192)}
	e.Pitch = shortPitch{e.Pitch}

	f, err := e.Extract("tone.wav", testParams())
	if err != nil {
		t.Fatal(err)
	}
	if len(f.LogF0) == len(f.Mel) {
		t.Fatal("expected a frame mismatch")
	}
	if !bytes.Contains(buf.Bytes(), []byte("mel_frames")) {
		t.Errorf("mismatch not logged: %q", buf.String())
	}
}

func TestTopDB(t *testing.T) {
	tests := map[string]float64{
		"KSS":     35,
		"Emotion": 30,
		"AIHub":   30,
		"VCTK":    15,
		"Libri":   23,
		"LJ":      60,
		"Other":   60,
	}
	for dataset, want := range tests {
		if got := TopDB(dataset); got != want {
			t.Errorf("TopDB(%q) = %v, want %v", dataset, got, want)
		}
	}
}
