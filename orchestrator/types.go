package orchestrator

import "github.com/maastricht-university/speech-pattern-pipeline/corpus"

// Pattern is the persisted record for one utterance. Arrays are time-major.
type Pattern struct {
	Audio       []float32
	Spectrogram [][]float32
	Mel         [][]float32
	LogF0       []float32
	Energy      []float32
	Speaker     string
	Emotion     string
	Language    string
	Gender      string
	Dataset     string
	Text        string
	Decomposed  []string
}

// WorkItem is one utterance scheduled for a split.
type WorkItem struct {
	Utterance corpus.Utterance
	Dataset   string
	Tag       string
	Eval      bool
}

type Status int

const (
	Written Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Written:
		return "written"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome reports what happened to a WorkItem. Fatal marks filesystem
// failures that must stop the run once the pool drains.
type Outcome struct {
	Item     WorkItem
	Identity string
	Status   Status
	Err      error
	Fatal    bool
}

// Report counts outcomes for one generator run.
type Report struct {
	Written int
	Skipped int
	Failed  int
}

// Metadata indexes one pattern store. Keys are slash-separated paths
// relative to the store root.
type Metadata struct {
	NFFT        int
	MelDim      int
	FrameShift  int
	FrameLength int
	SampleRate  int

	FileList          []string
	AudioLength       map[string]int
	SpectrogramLength map[string]int
	MelLength         map[string]int
	F0Length          map[string]int
	EnergyLength      map[string]int
	TextLength        map[string]int
	Speakers          map[string]string
	Emotions          map[string]string
	Datasets          map[string]string
	FilesBySpeaker    map[string][]string
}

type Range struct {
	Min float64 `yaml:"Min"`
	Max float64 `yaml:"Max"`
}

type Moments struct {
	Mean float64 `yaml:"Mean"`
	Std  float64 `yaml:"Std"`
}

type SpeakerAttributes struct {
	Language string `yaml:"Language"`
	Gender   string `yaml:"Gender"`
}

// Check is the validation result for one persisted pattern.
type Check struct {
	OK     bool
	Reason string
}

// Summary describes one aggregator pass.
type Summary struct {
	Files    int
	Skipped  int
	Speakers int
}
