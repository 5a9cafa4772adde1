package corpus

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// p315 ships without transcripts.
const vctkMissingText = "P315"

var vctkMic = regexp.MustCompile(`_mic[12]$`)

// LoadVCTK reads VCTK from <root>/wav48/<speaker>/*, with transcripts in the
// parallel txt/ tree.
func LoadVCTK(root string, log logrus.FieldLogger) ([]Utterance, error) {
	wavDir := filepath.Join(root, "wav48")
	paths, err := audioFiles(wavDir)
	if err != nil {
		return nil, err
	}

	var out []Utterance
	for _, path := range paths {
		if strings.Contains(strings.ToUpper(path), vctkMissingText) {
			continue
		}
		line, err := firstLine(vctkTranscript(root, wavDir, path))
		if err != nil {
			return nil, err
		}
		u, ok := newUtterance(path, line)
		if !ok {
			continue
		}
		dir := strings.ToUpper(strings.TrimSpace(pathElement(path, 2)))
		gender, known := vctkGenders[dir]
		if !known {
			return nil, &ErrMissingGender{Dataset: "VCTK", Speaker: dir}
		}
		u.Speaker = "VCTK." + dir
		u.Emotion, u.Language, u.Gender = Neutral, English, gender
		out = append(out, u)
	}

	logLoaded(log, "VCTK", len(out))
	return out, nil
}

// vctkTranscript maps wav48/p225/p225_001_mic1.flac to txt/p225/p225_001.txt.
// Older releases keep the mic-less name on the audio file too.
func vctkTranscript(root, wavDir, path string) string {
	rel, err := filepath.Rel(wavDir, filepath.FromSlash(path))
	if err != nil {
		rel = filepath.Join(pathElement(path, 2), filepath.Base(path))
	}
	name := vctkMic.ReplaceAllString(stem(path), "")
	return filepath.Join(root, "txt", filepath.Dir(rel), name+".txt")
}

// LoadLibri reads LibriTTS: <root>/<split>/<speaker>/<chapter>/<id>.wav with
// <id>.normalized.txt next to each file and a Gender.txt table at the root.
func LoadLibri(root string, log logrus.FieldLogger) ([]Utterance, error) {
	genders, err := libriGenders(filepath.Join(root, "Gender.txt"))
	if err != nil {
		return nil, err
	}
	paths, err := audioFiles(root)
	if err != nil {
		return nil, err
	}

	var out []Utterance
	for _, path := range paths {
		line, err := firstLine(strings.TrimSuffix(path, filepath.Ext(path)) + ".normalized.txt")
		if err != nil {
			return nil, err
		}
		u, ok := newUtterance(path, line)
		if !ok {
			continue
		}
		if u.Speaker, err = libriSpeaker(pathElement(path, 3)); err != nil {
			return nil, err
		}
		gender, known := genders[u.Speaker]
		if !known {
			return nil, &ErrMissingGender{Dataset: "Libri", Speaker: u.Speaker}
		}
		u.Emotion, u.Language, u.Gender = Neutral, English, gender
		out = append(out, u)
	}

	logLoaded(log, "Libri", len(out))
	return out, nil
}

func libriSpeaker(id string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return "", errors.Wrapf(err, "libri speaker id %q", id)
	}
	return fmt.Sprintf("Libri.%04d", n), nil
}

func libriGenders(path string) (map[string]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	genders := map[string]string{}
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) < 2 {
			return nil, errors.Errorf("%s line %d: expected speaker and gender", path, i+1)
		}
		speaker, err := libriSpeaker(fields[0])
		if err != nil {
			return nil, err
		}
		genders[speaker] = strings.TrimSpace(fields[1])
	}
	return genders, nil
}

// LoadLJ reads LJSpeech from metadata.csv (id|text|normalized text).
func LoadLJ(root string, log logrus.FieldLogger) ([]Utterance, error) {
	lines, err := readLines(filepath.Join(root, "metadata.csv"))
	if err != nil {
		return nil, err
	}

	var out []Utterance
	for n, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(strings.TrimSpace(line), "|")
		if len(fields) < 3 {
			return nil, errors.Errorf("lj metadata line %d: expected 3 fields, got %d", n+1, len(fields))
		}
		u, ok := newUtterance(filepath.Join(root, "wavs", fields[0]+".wav"), fields[2])
		if !ok {
			continue
		}
		u.Speaker, u.Emotion, u.Language, u.Gender = "LJ", Neutral, English, Female
		out = append(out, u)
	}

	logLoaded(log, "LJ", len(out))
	return out, nil
}
