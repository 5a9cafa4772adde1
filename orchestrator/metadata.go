package orchestrator

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/maastricht-university/speech-pattern-pipeline/config"
)

// Aggregator rebuilds the metadata index of a store and, for the train
// split, the normalization tables.
type Aggregator struct {
	cfg      *config.Root
	progress io.Writer
	log      logrus.FieldLogger
}

// NewAggregator returns an Aggregator. A nil progress writer hides the bar.
func NewAggregator(c *config.Root, progress io.Writer, log logrus.FieldLogger) *Aggregator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Aggregator{cfg: c, progress: progress, log: log}
}

// validate reports the first required field missing from p.
func validate(p *Pattern) Check {
	missing := func(field string) Check { return Check{Reason: "missing " + field} }
	switch {
	case len(p.Audio) == 0:
		return missing("Audio")
	case len(p.Spectrogram) == 0:
		return missing("Spectrogram")
	case len(p.Mel) == 0:
		return missing("Mel")
	case p.LogF0 == nil:
		return missing("LogF0")
	case p.Energy == nil:
		return missing("Energy")
	case p.Speaker == "":
		return missing("Speaker")
	case p.Emotion == "":
		return missing("Emotion")
	case p.Language == "":
		return missing("Language")
	case p.Gender == "":
		return missing("Gender")
	case p.Dataset == "":
		return missing("Dataset")
	case p.Text == "":
		return missing("Text")
	case p.Decomposed == nil:
		return missing("Decomposed")
	}
	return Check{OK: true}
}

// patternFiles lists every pattern under root, following symlinked
// directories once each.
func patternFiles(root string) ([]string, error) {
	var out []string
	visited := map[string]bool{}
	var walk func(dir string) error
	walk = func(dir string) error {
		resolved, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return err
		}
		if visited[resolved] {
			return nil
		}
		visited[resolved] = true

		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			isDir := e.IsDir()
			if e.Type()&os.ModeSymlink != 0 {
				info, err := os.Stat(path)
				if err != nil {
					continue
				}
				isDir = info.IsDir()
			}
			if isDir {
				if err := walk(path); err != nil {
					return err
				}
				continue
			}
			if strings.HasSuffix(e.Name(), PatternExt) {
				out = append(out, path)
			}
		}
		return nil
	}
	return out, walk(root)
}

type speakerStats struct {
	spectrogram *Range
	mel         *Range
	logF0       []float64
	energy      []float64
}

func (a *Aggregator) Run(eval bool) (Summary, error) {
	store := a.cfg.Store(eval)
	name := "Train_Pattern"
	if eval {
		name = "Eval_Pattern"
	}
	log := a.log.WithField("store", name)

	if err := os.MkdirAll(store.Path, 0o755); err != nil {
		return Summary{}, errors.Wrap(err, "create pattern store")
	}
	files, err := patternFiles(store.Path)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "walk %s", store.Path)
	}

	s := a.cfg.Sound
	meta := &Metadata{
		NFFT:              s.NFFT,
		MelDim:            s.MelDim,
		FrameShift:        s.FrameShift,
		FrameLength:       s.FrameLength,
		SampleRate:        s.SampleRate,
		FileList:          []string{},
		AudioLength:       map[string]int{},
		SpectrogramLength: map[string]int{},
		MelLength:         map[string]int{},
		F0Length:          map[string]int{},
		EnergyLength:      map[string]int{},
		TextLength:        map[string]int{},
		Speakers:          map[string]string{},
		Emotions:          map[string]string{},
		Datasets:          map[string]string{},
		FilesBySpeaker:    map[string][]string{},
	}
	stats := map[string]*speakerStats{}
	attributes := map[string]SpeakerAttributes{}
	emotions := map[string]struct{}{}
	languages := map[string]struct{}{}
	genders := map[string]struct{}{}

	var bar *mpb.Bar
	var p *mpb.Progress
	if a.progress != nil && len(files) > 0 {
		p = mpb.New(mpb.WithWidth(64), mpb.WithOutput(a.progress))
		bar = p.AddBar(int64(len(files)),
			mpb.PrependDecorators(decor.Name(name+": "), decor.CountersNoUnit("%d / %d")),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	var sum Summary
	for _, path := range files {
		if bar != nil {
			bar.Increment()
		}
		rel, err := filepath.Rel(store.Path, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		pat, err := readPattern(path)
		if err != nil {
			log.WithFields(logrus.Fields{"file": rel, "reason": err}).Warn("not a pattern file, ignored")
			sum.Skipped++
			continue
		}
		if c := validate(pat); !c.OK {
			log.WithFields(logrus.Fields{"file": rel, "reason": c.Reason}).Warn("not a pattern file, ignored")
			sum.Skipped++
			continue
		}

		meta.FileList = append(meta.FileList, rel)
		meta.AudioLength[rel] = len(pat.Audio)
		meta.SpectrogramLength[rel] = len(pat.Spectrogram)
		meta.MelLength[rel] = len(pat.Mel)
		meta.F0Length[rel] = len(pat.LogF0)
		meta.EnergyLength[rel] = len(pat.Energy)
		meta.TextLength[rel] = len([]rune(pat.Text))
		meta.Speakers[rel] = pat.Speaker
		meta.Emotions[rel] = pat.Emotion
		meta.Datasets[rel] = pat.Dataset
		meta.FilesBySpeaker[pat.Speaker] = append(meta.FilesBySpeaker[pat.Speaker], rel)

		st, ok := stats[pat.Speaker]
		if !ok {
			st = &speakerStats{spectrogram: emptyRange(), mel: emptyRange()}
			stats[pat.Speaker] = st
		}
		st.spectrogram.update(pat.Spectrogram)
		st.mel.update(pat.Mel)
		st.logF0 = voicedLogF0(st.logF0, pat.LogF0)
		for _, v := range pat.Energy {
			st.energy = append(st.energy, float64(v))
		}

		emotions[pat.Emotion] = struct{}{}
		languages[pat.Language] = struct{}{}
		genders[pat.Gender] = struct{}{}
		attributes[pat.Speaker] = SpeakerAttributes{Language: pat.Language, Gender: pat.Gender}
		sum.Files++
	}
	if p != nil {
		bar.SetTotal(-1, true)
		p.Wait()
	}
	sum.Speakers = len(stats)

	metaPath := filepath.Join(store.Path, strings.ToUpper(store.MetadataFile))
	if err := replace(metaPath, meta); err != nil {
		return sum, err
	}
	log.WithFields(logrus.Fields{"files": sum.Files, "skipped": sum.Skipped, "speakers": sum.Speakers}).Info("metadata generated")
	if eval {
		return sum, nil
	}
	return sum, a.writeTables(stats, attributes, emotions, languages, genders, log)
}

func (a *Aggregator) writeTables(stats map[string]*speakerStats, attributes map[string]SpeakerAttributes,
	emotions, languages, genders map[string]struct{}, log logrus.FieldLogger) error {
	spectrogram := map[string]*Range{}
	mel := map[string]*Range{}
	logF0 := map[string]Moments{}
	energy := map[string]Moments{}
	speakers := map[string]struct{}{}
	for speaker, st := range stats {
		spectrogram[speaker] = st.spectrogram
		mel[speaker] = st.mel
		if len(st.logF0) == 0 {
			log.WithField("speaker", speaker).Warn("no voiced frames, log-F0 stats set to zero")
		}
		logF0[speaker] = moments(st.logF0)
		energy[speaker] = moments(st.energy)
		speakers[speaker] = struct{}{}
	}

	tables := []struct {
		path string
		v    any
	}{
		{a.cfg.SpectrogramRangePath, spectrogram},
		{a.cfg.MelRangePath, mel},
		{a.cfg.LogF0InfoPath, logF0},
		{a.cfg.EnergyInfoPath, energy},
		{a.cfg.SpeakerInfoPath, sortedIndex(speakers)},
		{a.cfg.EmotionInfoPath, sortedIndex(emotions)},
		{a.cfg.LanguageInfoPath, sortedIndex(languages)},
		{a.cfg.GenderInfoPath, sortedIndex(genders)},
		{a.cfg.SpeakerAttributesPath, attributes},
	}
	for _, t := range tables {
		if t.path == "" {
			continue
		}
		if err := writeYAML(t.path, t.v); err != nil {
			return errors.Wrapf(err, "write %s", t.path)
		}
	}
	return nil
}
