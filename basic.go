package main

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/maastricht-university/speech-pattern-pipeline/corpus"
	"github.com/maastricht-university/speech-pattern-pipeline/orchestrator"
)

// parseBasic reads a --basic value: label=path followed by optional
// language=, gender= and tag= options. Language and gender take either one
// value or a SPEAKER:value;SPEAKER:value table.
func parseBasic(arg string) (orchestrator.Source, error) {
	parts := strings.Split(arg, ",")
	label, root, ok := strings.Cut(parts[0], "=")
	if !ok || label == "" || root == "" {
		return orchestrator.Source{}, errors.Errorf("--basic %q: want label=path", arg)
	}

	b := corpus.Basic{Label: label}
	src := orchestrator.Source{Dataset: label, Root: root}
	for _, opt := range parts[1:] {
		key, value, ok := strings.Cut(opt, "=")
		if !ok {
			return orchestrator.Source{}, errors.Errorf("--basic %q: option %q is not key=value", arg, opt)
		}
		switch strings.ToLower(key) {
		case "language":
			b.Language = parseAttribute(value)
		case "gender":
			b.Gender = parseAttribute(value)
		case "tag":
			src.Tag = value
		default:
			return orchestrator.Source{}, errors.Errorf("--basic %q: unknown option %q", arg, key)
		}
	}
	src.Load = b.Load
	return src, nil
}

func parseAttribute(value string) corpus.Attribute {
	if !strings.Contains(value, ":") {
		return corpus.Attribute{Value: value}
	}
	table := map[string]string{}
	for _, pair := range strings.Split(value, ";") {
		speaker, v, _ := strings.Cut(pair, ":")
		table[strings.ToUpper(strings.TrimSpace(speaker))] = strings.TrimSpace(v)
	}
	return corpus.Attribute{BySpeaker: table}
}
