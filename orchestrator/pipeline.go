package orchestrator

import (
	"context"
	"io"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	cfg "github.com/maastricht-university/speech-pattern-pipeline/config"
	"github.com/maastricht-university/speech-pattern-pipeline/corpus"
	"github.com/maastricht-university/speech-pattern-pipeline/features"
	"github.com/maastricht-university/speech-pattern-pipeline/text"
)

// Source is one corpus selected for a run.
type Source struct {
	Dataset string
	Tag     string
	Root    string
	Load    corpus.Loader
}

type Options struct {
	EvalRatio    float64
	EvalMin      int
	MaxWorker    int
	Seed         int64 // 0 leaves the split unseeded
	MetadataOnly bool
	Progress     io.Writer
	Log          logrus.FieldLogger
}

// Result collects what a run did to each split.
type Result struct {
	Train, Eval               Report
	TrainSummary, EvalSummary Summary
}

type Pipeline struct {
	cfg  *cfg.Root
	opts Options
	log  logrus.FieldLogger

	// Extractor computes features for the writer. NewPipeline installs the
	// default decoder, transforms and pitch tracker.
	Extractor Extractor
}

func NewPipeline(c *cfg.Root, opts Options) *Pipeline {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{cfg: c, opts: opts, log: log, Extractor: features.NewExtractor(log)}
}

// Run loads and splits every source, writes the token dictionary, generates
// train then eval patterns and finally rebuilds both metadata indexes.
func (p *Pipeline) Run(ctx context.Context, sources []Source) (Result, error) {
	var res Result

	if !p.opts.MetadataOnly {
		train, eval, err := p.plan(sources)
		if err != nil {
			return res, err
		}
		if p.cfg.TokenPath != "" {
			if _, err := text.WriteTokenDictionary(p.cfg.TokenPath); err != nil {
				return res, err
			}
		}

		gen := NewGenerator(NewWriter(p.cfg, p.Extractor, p.log), p.opts.MaxWorker, p.opts.Progress, p.log)
		if res.Train, err = gen.Run(ctx, train); err != nil {
			return res, errors.Wrap(err, "train patterns")
		}
		if res.Eval, err = gen.Run(ctx, eval); err != nil {
			return res, errors.Wrap(err, "eval patterns")
		}
		p.log.WithFields(logrus.Fields{
			"written": res.Train.Written + res.Eval.Written,
			"skipped": res.Train.Skipped + res.Eval.Skipped,
			"failed":  res.Train.Failed + res.Eval.Failed,
		}).Info("pattern generation done")
	}

	agg := NewAggregator(p.cfg, p.opts.Progress, p.log)
	var err error
	if res.TrainSummary, err = agg.Run(false); err != nil {
		return res, errors.Wrap(err, "train metadata")
	}
	if res.EvalSummary, err = agg.Run(true); err != nil {
		return res, errors.Wrap(err, "eval metadata")
	}
	return res, nil
}

func (p *Pipeline) plan(sources []Source) (train, eval []WorkItem, err error) {
	if len(sources) == 0 {
		p.log.Warn("no corpus selected, generating nothing")
	}
	var rng *rand.Rand
	if p.opts.Seed != 0 {
		rng = rand.New(rand.NewSource(p.opts.Seed))
	}
	for _, s := range sources {
		utts, err := s.Load(s.Root, p.log.WithField("dataset", s.Dataset))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "load %s", s.Dataset)
		}
		tr, ev := corpus.Split(utts, p.opts.EvalRatio, p.opts.EvalMin, rng)
		for _, u := range tr {
			train = append(train, WorkItem{Utterance: u, Dataset: s.Dataset, Tag: s.Tag})
		}
		for _, u := range ev {
			eval = append(eval, WorkItem{Utterance: u, Dataset: s.Dataset, Tag: s.Tag, Eval: true})
		}
	}
	return train, eval, nil
}
