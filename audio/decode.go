// Package audio loads waveforms and applies the level preprocessing the
// feature extractor needs.
package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Decoder loads mono waveforms in [-1, 1] at a requested sample rate. WAV
// files at the requested rate are decoded in-process; anything else is
// converted by ffmpeg.
type Decoder struct{}

func (Decoder) Load(path string, sampleRate int) ([]float64, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		samples, rate, err := readWAV(path)
		if err != nil {
			return nil, err
		}
		if rate == sampleRate {
			return samples, nil
		}
	}
	return readFFmpeg(path, sampleRate)
}

func readWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "open audio")
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, errors.Errorf("audio: %s is not a valid wav file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, errors.Wrapf(err, "audio: read pcm %s", path)
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(dec.BitDepth)
	}
	scale := math.Pow(2, float64(depth-1))
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	// Downmix by averaging channels.
	out := make([]float64, len(buf.Data)/channels)
	for i := range out {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		out[i] = sum / float64(channels) / scale
	}
	return out, buf.Format.SampleRate, nil
}

// readFFmpeg asks ffmpeg for raw 16-bit mono PCM at the target rate.
func readFFmpeg(path string, sampleRate int) ([]float64, error) {
	var pcm bytes.Buffer
	err := ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"f":  "s16le",
			"ac": 1,
			"ar": sampleRate,
		}).
		WithOutput(&pcm).
		Silent(true).
		Run()
	if err != nil {
		return nil, errors.Wrapf(err, "audio: ffmpeg decode %s", path)
	}

	raw := pcm.Bytes()
	out := make([]float64, len(raw)/2)
	for i := range out {
		out[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768
	}
	return out, nil
}
