// Package features turns one audio file into the arrays stored in a pattern.
package features

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/speech-pattern-pipeline/audio"
	"github.com/maastricht-university/speech-pattern-pipeline/config"
	"github.com/maastricht-university/speech-pattern-pipeline/dsp"
	"github.com/maastricht-university/speech-pattern-pipeline/pitch"
)

// pitchScale maps [-1, 1] audio into the 16-bit range the tracker expects.
const pitchScale = 32768

// ErrEmptyAudio is returned when less than one hop is left after trimming.
var ErrEmptyAudio = errors.New("no audio left after trimming")

type Decoder interface {
	Load(path string, sampleRate int) ([]float64, error)
}

type Transform interface {
	Spectrogram(x []float64, nFFT, hop, win int) [][]float64
	Mel(x []float64, nFFT, melBins, sampleRate, hop, win int, fMin, fMax float64) [][]float64
	Energy(x []float64, nFFT, hop, win int) []float64
}

type PitchTracker interface {
	LogF0(x []float64, sampleRate, hop int, f0Min, f0Max float64) []float64
}

// Params selects the analysis settings for one extraction.
type Params struct {
	NFFT        int
	MelDim      int
	SampleRate  int
	FrameShift  int
	FrameLength int
	MelFMin     float64
	MelFMax     float64
	F0Min       float64
	F0Max       float64
	TopDB       float64
}

// ParamsFor builds extraction settings from the sound config and the
// dataset's silence threshold.
func ParamsFor(s config.Sound, dataset string) Params {
	return Params{
		NFFT:        s.NFFT,
		MelDim:      s.MelDim,
		SampleRate:  s.SampleRate,
		FrameShift:  s.FrameShift,
		FrameLength: s.FrameLength,
		MelFMin:     s.MelFMin,
		MelFMax:     s.MelFMax,
		F0Min:       s.F0Min,
		F0Max:       s.F0Max,
		TopDB:       TopDB(dataset),
	}
}

// TopDB is the trim threshold per corpus; unknown datasets use 60 dB.
func TopDB(dataset string) float64 {
	switch dataset {
	case "KSS":
		return 35
	case "Emotion", "AIHub":
		return 30
	case "VCTK":
		return 15
	case "Libri":
		return 23
	default:
		return 60
	}
}

type Features struct {
	Audio       []float64
	Spectrogram [][]float64
	Mel         [][]float64
	LogF0       []float64
	Energy      []float64
}

type Extractor struct {
	Decoder   Decoder
	Transform Transform
	Pitch     PitchTracker
	log       logrus.FieldLogger
}

// NewExtractor wires the default decoder, transforms and pitch tracker.
func NewExtractor(log logrus.FieldLogger) *Extractor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Extractor{
		Decoder:   audio.Decoder{},
		Transform: dsp.Transform{},
		Pitch:     pitch.Tracker{},
		log:       log,
	}
}

func (e *Extractor) Extract(path string, p Params) (*Features, error) {
	x, err := e.Decoder.Load(path, p.SampleRate)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	x = audio.Trim(x, p.TopDB, audio.TrimFrameLength, audio.TrimHopLength)
	x = audio.PeakNormalize(x, audio.PeakScale)
	x = audio.TruncateToHop(x, p.FrameShift)
	if len(x) == 0 {
		return nil, errors.Wrap(ErrEmptyAudio, path)
	}

	f := &Features{Audio: x}
	f.Spectrogram = e.Transform.Spectrogram(x, p.NFFT, p.FrameShift, p.FrameLength)
	f.Mel = e.Transform.Mel(x, p.NFFT, p.MelDim, p.SampleRate, p.FrameShift, p.FrameLength, p.MelFMin, p.MelFMax)

	scaled := make([]float64, len(x))
	for i, v := range x {
		scaled[i] = v * pitchScale
	}
	f.LogF0 = e.Pitch.LogF0(scaled, p.SampleRate, p.FrameShift, p.F0Min, p.F0Max)
	f.Energy = e.Transform.Energy(x, p.NFFT, p.FrameShift, p.FrameLength)

	if len(f.LogF0) != len(f.Mel) {
		e.log.WithFields(logrus.Fields{
			"path":       path,
			"samples":    len(x),
			"f0_frames":  len(f.LogF0),
			"mel_frames": len(f.Mel),
		}).Warn("pitch and mel frame counts differ")
	}
	return f, nil
}
