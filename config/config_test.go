package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimal = `
Sound:
  Sample_Rate: 24000
  F0_Min: 65
Train:
  Train_Pattern:
    Path: /tmp/train
  Eval_Pattern:
    Path: /tmp/eval
    Metadata_File: eval_meta.gob
Log_F0_Info_Path: info/log_f0.yaml
Language_and_Gender_Info_by_Speaker_Path: info/speakers.yaml
`

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, minimal))
	if err != nil {
		t.Fatal(err)
	}
	if c.Sound.SampleRate != 24000 || c.Sound.F0Min != 65 {
		t.Errorf("file values not applied: %+v", c.Sound)
	}
	if c.Sound.NFFT != 1024 || c.Sound.FrameShift != 256 || c.Sound.MelDim != 80 {
		t.Errorf("defaults not applied: %+v", c.Sound)
	}
	if c.Store(false).MetadataFile != "METADATA.GOB" || c.Store(true).MetadataFile != "eval_meta.gob" {
		t.Errorf("metadata files = %q, %q", c.Store(false).MetadataFile, c.Store(true).MetadataFile)
	}
	if c.Store(true).Path != "/tmp/eval" {
		t.Errorf("eval store = %q", c.Store(true).Path)
	}
	if c.LogF0InfoPath != "info/log_f0.yaml" || c.SpeakerAttributesPath != "info/speakers.yaml" {
		t.Errorf("table paths = %q, %q", c.LogF0InfoPath, c.SpeakerAttributesPath)
	}
	if c.Pipeline.LogLevel != "info" {
		t.Errorf("log level = %q", c.Pipeline.LogLevel)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PATTERN_SOUND_SAMPLE_RATE", "16000")
	c, err := Load(writeConfig(t, minimal))
	if err != nil {
		t.Fatal(err)
	}
	if c.Sound.SampleRate != 16000 {
		t.Errorf("sample rate = %d, want env override 16000", c.Sound.SampleRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Root {
		var r Root
		r.Sound = Sound{NFFT: 1024, MelDim: 80, FrameLength: 1024, FrameShift: 256, SampleRate: 22050, MelFMax: 8000, F0Min: 40, F0Max: 800}
		r.Train.TrainPattern.Path = "train"
		r.Train.EvalPattern.Path = "eval"
		return r
	}
	tests := []struct {
		name   string
		mutate func(*Root)
		ok     bool
	}{
		{"valid", func(*Root) {}, true},
		{"zero hop", func(r *Root) { r.Sound.FrameShift = 0 }, false},
		{"hop over window", func(r *Root) { r.Sound.FrameShift = 2048 }, false},
		{"window over fft", func(r *Root) { r.Sound.FrameLength = 2048 }, false},
		{"mel range", func(r *Root) { r.Sound.MelFMin, r.Sound.MelFMax = 9000, 8000 }, false},
		{"negative mel max", func(r *Root) { r.Sound.MelFMax = -1 }, false},
		{"mel max nyquist", func(r *Root) { r.Sound.MelFMax = 0 }, true},
		{"mel min over nyquist", func(r *Root) { r.Sound.MelFMin, r.Sound.MelFMax = 12000, 0 }, false},
		{"f0 range", func(r *Root) { r.Sound.F0Max = 10 }, false},
		{"no eval store", func(r *Root) { r.Train.EvalPattern.Path = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			if err := r.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
