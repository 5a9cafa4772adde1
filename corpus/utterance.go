// Package corpus reads raw speech corpora into Utterance records.
package corpus

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/speech-pattern-pipeline/text"
)

// Utterance is one audio file with its resolved transcript and labels.
type Utterance struct {
	Path       string
	Text       string
	Decomposed []string
	Speaker    string
	Emotion    string
	Language   string
	Gender     string
}

const (
	Neutral = "Neutral"
	Korean  = "Korean"
	English = "English"
	Female  = "Female"
	Male    = "Male"
)

var audioExtensions = map[string]bool{".WAV": true, ".M4A": true, ".FLAC": true}

// IsAudio reports whether path has one of the recognized audio extensions.
func IsAudio(path string) bool {
	return audioExtensions[strings.ToUpper(filepath.Ext(path))]
}

// Loader reads one corpus rooted at a directory.
type Loader func(root string, log logrus.FieldLogger) ([]Utterance, error)

func newUtterance(path, raw string) (Utterance, bool) {
	t, err := text.Normalize(raw)
	if err != nil {
		return Utterance{}, false
	}
	return Utterance{Path: filepath.ToSlash(path), Text: t, Decomposed: text.Decompose(t)}, true
}

// audioFiles walks root in lexical order and returns every audio file.
func audioFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsAudio(path) {
			out = append(out, filepath.ToSlash(path))
		}
		return nil
	})
	return out, errors.Wrapf(err, "walk %s", root)
}

// readLines returns the lines of a UTF-8 text file with any BOM stripped.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "transcript")
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		lines = append(lines, line)
	}
	return lines, errors.Wrapf(sc.Err(), "read %s", path)
}

func firstLine(path string) (string, error) {
	lines, err := readLines(path)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.TrimSpace(lines[0]), nil
}

// pathElement returns the n-th element counted from the end, 1 being the file.
func pathElement(path string, n int) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if n > len(parts) {
		return ""
	}
	return parts[len(parts)-n]
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func logLoaded(log logrus.FieldLogger, dataset string, n int) {
	log.WithFields(logrus.Fields{"dataset": dataset, "utterances": n}).Infof("%s info generated: %d", dataset, n)
}
