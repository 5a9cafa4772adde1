package text

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	StartToken = "<S>"
	EndToken   = "<E>"
)

var punctuation = []string{",", ".", "?", "!", "'", "-", " "}

// Tokens lists every symbol the decomposer and normalizer can produce,
// in index order.
func Tokens() []string {
	tokens := []string{StartToken, EndToken}
	tokens = append(tokens, Onsets...)
	tokens = append(tokens, Nuclei...)
	for _, c := range Codas {
		tokens = append(tokens, c+CodaPlaceholder)
	}
	for r := 'A'; r <= 'Z'; r++ {
		tokens = append(tokens, string(r))
	}
	return append(tokens, punctuation...)
}

func TokenDictionary() map[string]int {
	dict := map[string]int{}
	for i, t := range Tokens() {
		dict[t] = i
	}
	return dict
}

// WriteTokenDictionary writes the token table to path as YAML. The output
// depends only on the symbol inventory.
func WriteTokenDictionary(path string) (map[string]int, error) {
	dict := TokenDictionary()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "token dictionary")
	}
	b, err := yaml.Marshal(dict)
	if err != nil {
		return nil, errors.Wrap(err, "token dictionary")
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return nil, errors.Wrap(err, "token dictionary")
	}
	return dict, nil
}
