package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/maastricht-university/speech-pattern-pipeline/config"
	"github.com/maastricht-university/speech-pattern-pipeline/corpus"
	"github.com/maastricht-university/speech-pattern-pipeline/orchestrator"
)

type flags struct {
	config       string
	emotion      string
	kss          string
	aihub        string
	vctk         string
	libri        string
	lj           string
	basic        []string
	evalRatio    float64
	evalMin      int
	maxWorker    int
	seed         int64
	logLevel     string
	metadataOnly bool
	quiet        bool
}

func main() {
	var f flags
	cmd := &cobra.Command{
		Use:           "speech-patterns",
		Short:         "Build TTS pattern stores and normalization tables from speech corpora",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "hyper-parameter YAML file")
	fl.StringVar(&f.emotion, "emotion", "", "Korean emotional speech corpus root")
	fl.StringVar(&f.kss, "kss", "", "KSS corpus root")
	fl.StringVar(&f.aihub, "aihub", "", "AIHub emotional speech corpus root")
	fl.StringVar(&f.vctk, "vctk", "", "VCTK corpus root")
	fl.StringVar(&f.libri, "libri", "", "LibriTTS corpus root")
	fl.StringVar(&f.lj, "lj", "", "LJSpeech corpus root")
	fl.StringArrayVar(&f.basic, "basic", nil, "generic corpus: label=path[,language=X][,gender=Y][,tag=T]; X and Y may be SPK:value;SPK:value")
	fl.Float64Var(&f.evalRatio, "eval-ratio", 0.001, "fraction of each corpus held out for eval")
	fl.IntVar(&f.evalMin, "eval-min", 1, "minimum eval utterances per corpus")
	fl.IntVar(&f.maxWorker, "max-worker", 2, "parallel pattern workers")
	fl.Int64Var(&f.seed, "seed", 0, "split seed (0 = random)")
	fl.StringVar(&f.logLevel, "log-level", "", "override Pipeline.Log_Level")
	fl.BoolVar(&f.metadataOnly, "metadata-only", false, "skip generation and rebuild metadata from the existing stores")
	fl.BoolVar(&f.quiet, "quiet", false, "hide progress bars")
	_ = cmd.MarkFlagRequired("config")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	conf, err := cfg.Load(f.config)
	if err != nil {
		return err
	}

	level := conf.Pipeline.LogLevel
	if f.logLevel != "" {
		level = f.logLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	sources, err := f.sources()
	if err != nil {
		return err
	}

	var progress io.Writer = os.Stderr
	if f.quiet {
		progress = nil
	}
	p := orchestrator.NewPipeline(conf, orchestrator.Options{
		EvalRatio:    f.evalRatio,
		EvalMin:      f.evalMin,
		MaxWorker:    f.maxWorker,
		Seed:         f.seed,
		MetadataOnly: f.metadataOnly,
		Progress:     progress,
		Log:          logrus.StandardLogger(),
	})
	res, err := p.Run(ctx, sources)
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

func (f flags) sources() ([]orchestrator.Source, error) {
	named := []struct {
		dataset string
		root    string
		load    corpus.Loader
	}{
		{"Emotion", f.emotion, corpus.LoadEmotion},
		{"KSS", f.kss, corpus.LoadKSS},
		{"AIHub", f.aihub, corpus.LoadAIHub},
		{"VCTK", f.vctk, corpus.LoadVCTK},
		{"Libri", f.libri, corpus.LoadLibri},
		{"LJ", f.lj, corpus.LoadLJ},
	}
	var out []orchestrator.Source
	for _, n := range named {
		if n.root == "" {
			continue
		}
		out = append(out, orchestrator.Source{Dataset: n.dataset, Root: n.root, Load: n.load})
	}
	for _, arg := range f.basic {
		s, err := parseBasic(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func printResult(res orchestrator.Result) {
	fmt.Println(titleStyle.Render("Pattern generation done"))
	row := func(k string, v any) {
		fmt.Printf("%s %s\n", keyStyle.Render(fmt.Sprintf("%-16s", k)), valueStyle.Render(fmt.Sprint(v)))
	}
	row("train written", res.Train.Written)
	row("eval written", res.Eval.Written)
	row("skipped", res.Train.Skipped+res.Eval.Skipped)
	row("failed", res.Train.Failed+res.Eval.Failed)
	row("train patterns", res.TrainSummary.Files)
	row("eval patterns", res.EvalSummary.Files)
	row("speakers", res.TrainSummary.Speakers)
}
