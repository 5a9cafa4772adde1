package corpus

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Unknown fills language or gender when a generic corpus does not say.
const Unknown = "Unknown"

// Attribute is a language or gender assignment for a generic corpus: one
// value for every speaker, or a per-speaker table.
type Attribute struct {
	Value     string
	BySpeaker map[string]string
}

func (a Attribute) resolve(speaker string) (string, bool) {
	if a.BySpeaker != nil {
		v, ok := a.BySpeaker[speaker]
		return v, ok
	}
	if a.Value == "" {
		return Unknown, true
	}
	return a.Value, true
}

// Basic describes a corpus following the generic layout: audio files
// anywhere under the root and a scripts.txt TSV with the header
// file, text, speaker, emotion.
type Basic struct {
	Label    string
	Language Attribute
	Gender   Attribute
}

func (b Basic) Load(root string, log logrus.FieldLogger) ([]Utterance, error) {
	lines, err := readLines(filepath.Join(root, "scripts.txt"))
	if err != nil {
		return nil, err
	}

	var out []Utterance
	for n, line := range lines {
		if n == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) != 4 {
			return nil, errors.Errorf("%s scripts.txt line %d: expected 4 fields, got %d", b.Label, n+1, len(fields))
		}
		if !IsAudio(fields[0]) {
			continue
		}
		u, ok := newUtterance(filepath.Join(root, fields[0]), fields[1])
		if !ok {
			continue
		}
		u.Speaker = strings.ToUpper(strings.TrimSpace(fields[2]))
		u.Emotion = strings.TrimSpace(fields[3])
		if u.Language, ok = b.Language.resolve(u.Speaker); !ok {
			return nil, &ErrUnknownSpeaker{Dataset: b.Label, Speaker: u.Speaker}
		}
		if u.Gender, ok = b.Gender.resolve(u.Speaker); !ok {
			return nil, &ErrMissingGender{Dataset: b.Label, Speaker: u.Speaker}
		}
		out = append(out, u)
	}

	logLoaded(log, b.Label, len(out))
	return out, nil
}
