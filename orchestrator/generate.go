package orchestrator

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Generator runs the writer over a list of work items with a bounded pool.
type Generator struct {
	writer   *Writer
	workers  int
	progress io.Writer
	log      logrus.FieldLogger
}

// NewGenerator returns a Generator with workers goroutines (at least one).
// A nil progress writer hides the bar.
func NewGenerator(w *Writer, workers int, progress io.Writer, log logrus.FieldLogger) *Generator {
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{writer: w, workers: workers, progress: progress, log: log}
}

// Run processes items and returns once every dispatched item has an
// outcome. A failed item never stops the others. Filesystem failures and
// cancellation are returned after the pool drains.
func (g *Generator) Run(ctx context.Context, items []WorkItem) (Report, error) {
	var rep Report
	if len(items) == 0 {
		return rep, nil
	}

	var p *mpb.Progress
	var bar *mpb.Bar
	if g.progress != nil {
		name := "Train_Pattern"
		if items[0].Eval {
			name = "Eval_Pattern"
		}
		p = mpb.NewWithContext(ctx, mpb.WithWidth(64), mpb.WithOutput(g.progress))
		bar = p.AddBar(int64(len(items)),
			mpb.PrependDecorators(
				decor.Name(name+": "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(
				decor.Percentage(),
				decor.EwmaETA(decor.ET_STYLE_GO, 60),
			),
		)
	}

	jobs := make(chan WorkItem)
	results := make(chan Outcome)

	var wg sync.WaitGroup
	for i := 0; i < g.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range jobs {
				results <- g.do(ctx, it)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, it := range items {
			select {
			case <-ctx.Done():
				return
			case jobs <- it:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var fatal error
	for o := range results {
		if bar != nil {
			bar.Increment()
		}
		switch o.Status {
		case Written:
			rep.Written++
		case Skipped:
			rep.Skipped++
		case Failed:
			rep.Failed++
			g.log.WithFields(logrus.Fields{
				"path":     o.Item.Utterance.Path,
				"identity": o.Identity,
			}).WithError(o.Err).Error("pattern generation failed")
			if o.Fatal && fatal == nil {
				fatal = o.Err
			}
		}
	}

	if p != nil {
		bar.SetTotal(-1, true)
		p.Wait()
	}
	if fatal != nil {
		return rep, errors.Wrap(fatal, "pattern store")
	}
	return rep, ctx.Err()
}

// do runs one item, turning a panic into a failed outcome.
func (g *Generator) do(ctx context.Context, it WorkItem) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Item: it, Status: Failed, Err: errors.Errorf("panic: %v", r)}
		}
	}()
	return g.writer.Write(ctx, it)
}
