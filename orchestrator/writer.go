package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/speech-pattern-pipeline/config"
	"github.com/maastricht-university/speech-pattern-pipeline/features"
)

type Extractor interface {
	Extract(path string, p features.Params) (*features.Features, error)
}

// Identity is the record name of an utterance: the speaker, prefixed with
// the dataset unless it already contains it, an optional tag and the source
// file stem, upper-cased.
func Identity(dataset, speaker, tag, path string) string {
	name := speaker
	if !strings.Contains(speaker, dataset) {
		name = dataset + "." + speaker
	}
	name += "."
	if tag != "" {
		name += tag + "."
	}
	base := filepath.Base(path)
	name += strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToUpper(name)
}

// Writer materializes patterns at most once across both stores.
type Writer struct {
	cfg       *config.Root
	extractor Extractor
	log       logrus.FieldLogger

	// claims holds store-relative paths taken by this process.
	claims sync.Map
}

func NewWriter(c *config.Root, ex Extractor, log logrus.FieldLogger) *Writer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Writer{cfg: c, extractor: ex, log: log}
}

func (w *Writer) exists(rel string) bool {
	for _, root := range []string{w.cfg.Train.EvalPattern.Path, w.cfg.Train.TrainPattern.Path} {
		if _, err := os.Stat(filepath.Join(root, rel)); err == nil {
			return true
		}
	}
	return false
}

func (w *Writer) Write(ctx context.Context, item WorkItem) Outcome {
	u := item.Utterance
	id := Identity(item.Dataset, u.Speaker, item.Tag, u.Path)
	out := Outcome{Item: item, Identity: id}
	rel := filepath.Join(item.Dataset, u.Speaker, id+PatternExt)
	log := w.log.WithFields(logrus.Fields{"identity": id, "path": u.Path})

	if w.exists(rel) {
		log.Debug("pattern exists")
		out.Status = Skipped
		return out
	}
	if _, taken := w.claims.LoadOrStore(rel, struct{}{}); taken {
		log.Debug("pattern claimed by another worker")
		out.Status = Skipped
		return out
	}
	if err := ctx.Err(); err != nil {
		w.claims.Delete(rel)
		out.Status, out.Err = Failed, err
		return out
	}

	f, err := w.extractor.Extract(u.Path, features.ParamsFor(w.cfg.Sound, item.Dataset))
	if err != nil {
		out.Status, out.Err = Failed, err
		return out
	}

	dir := filepath.Join(w.cfg.Store(item.Eval).Path, item.Dataset, u.Speaker)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		out.Status, out.Err, out.Fatal = Failed, errors.Wrap(err, "create pattern directory"), true
		return out
	}
	err = publish(filepath.Join(dir, id+PatternExt), newPattern(f, item))
	switch {
	case errors.Is(err, os.ErrExist):
		log.Debug("pattern published concurrently")
		out.Status = Skipped
	case err != nil:
		out.Status, out.Err, out.Fatal = Failed, err, true
	default:
		out.Status = Written
	}
	return out
}

func newPattern(f *features.Features, item WorkItem) *Pattern {
	u := item.Utterance
	return &Pattern{
		Audio:       toFloat32(f.Audio),
		Spectrogram: toFloat32Matrix(f.Spectrogram),
		Mel:         toFloat32Matrix(f.Mel),
		LogF0:       toFloat32(f.LogF0),
		Energy:      toFloat32(f.Energy),
		Speaker:     u.Speaker,
		Emotion:     u.Emotion,
		Language:    u.Language,
		Gender:      u.Gender,
		Dataset:     item.Dataset,
		Text:        u.Text,
		Decomposed:  u.Decomposed,
	}
}
