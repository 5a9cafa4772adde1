package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	emotionExcluded = []string{"lmy04282", "lmy07365"}

	// Speakers recorded in neutral style only.
	neutralSpeakers = map[string]bool{
		"LMY": true, "AVA": true, "AVB": true, "AVC": true, "AVD": true,
		"ADA": true, "ADB": true, "ADC": true, "ADD": true,
	}
	// Speakers whose sessions encode emotion in the last five digits of the
	// file name: 1-100 neutral, 101-200 happy, 201-300 sad, 301-400 angry.
	indexedSpeakers = map[string]bool{
		"EMA": true, "EMB": true, "EMF": true, "EMG": true, "EMH": true,
		"NEA": true, "NEB": true, "NEC": true, "NED": true, "NEE": true,
		"NEK": true, "NEL": true, "NEM": true, "NEN": true, "NEO": true,
	}
	emotionBuckets = []string{Neutral, "Happy", "Sad", "Angry"}
)

func emotionFromIndex(speaker, stem string) (string, error) {
	digits := stem
	if len(digits) > 5 {
		digits = digits[len(digits)-5:]
	}
	index, err := strconv.Atoi(digits)
	if err != nil {
		return "", errors.Wrapf(err, "emotion index of %s", stem)
	}
	if index < 1 || index > 100*len(emotionBuckets) {
		return "", &ErrUnknownEmotionIndex{Speaker: speaker, Index: index}
	}
	return emotionBuckets[(index-1)/100], nil
}

// LoadEmotion reads the Korean emotional speech corpus. Transcripts live in a
// transcript/ tree mirroring wav/, and the speaker is the directory two
// levels above the file.
func LoadEmotion(root string, log logrus.FieldLogger) ([]Utterance, error) {
	paths, err := audioFiles(root)
	if err != nil {
		return nil, err
	}

	var out []Utterance
	for _, path := range paths {
		if containsAny(path, emotionExcluded) {
			continue
		}
		transcript := strings.ReplaceAll(strings.ReplaceAll(path, "/wav/", "/transcript/"), ".wav", ".txt")
		line, err := firstLine(transcript)
		if err != nil {
			return nil, err
		}
		u, ok := newUtterance(path, line)
		if !ok {
			continue
		}

		u.Speaker = strings.ToUpper(strings.TrimSpace(pathElement(path, 3)))
		switch {
		case neutralSpeakers[u.Speaker]:
			u.Emotion = Neutral
		case indexedSpeakers[u.Speaker]:
			if u.Emotion, err = emotionFromIndex(u.Speaker, stem(path)); err != nil {
				return nil, err
			}
		default:
			return nil, &ErrUnknownSpeaker{Dataset: "Emotion", Speaker: u.Speaker}
		}
		u.Language = Korean
		u.Gender = emotionGenders[u.Speaker]
		out = append(out, u)
	}

	logLoaded(log, "Emotion", len(out))
	return out, nil
}

// LoadKSS reads the single-speaker Korean corpus listed in transcript.v.1.4.txt.
func LoadKSS(root string, log logrus.FieldLogger) ([]Utterance, error) {
	lines, err := readLines(filepath.Join(root, "transcript.v.1.4.txt"))
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
			return nil, errors.Errorf("kss transcript line %d: expected at least 3 fields, got %d", n+1, len(fields))
		}
		u, ok := newUtterance(filepath.Join(root, "kss", strings.TrimSpace(fields[0])), fields[2])
		if !ok {
			continue
		}
		u.Speaker, u.Emotion, u.Language, u.Gender = "KSS", Neutral, Korean, Female
		out = append(out, u)
	}

	logLoaded(log, "KSS", len(out))
	return out, nil
}

var aihubEmotions = map[string]string{
	"Neutrality": Neutral,
}

type aihubInfo struct {
	Transcription struct {
		Text string `json:"TransLabelText"`
	} `json:"전사정보"`
	Speaker struct {
		Name    string `json:"SpeakerName"`
		Gender  string `json:"Gender"`
		Emotion string `json:"Emotion"`
	} `json:"화자정보"`
}

// LoadAIHub reads the AIHub multi-speaker corpus: every <key>.wav has a
// <key>.json sidecar with transcript and speaker information.
func LoadAIHub(root string, log logrus.FieldLogger) ([]Utterance, error) {
	wavs := map[string]string{}
	infos := map[string]Utterance{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		key := stem(path)
		switch strings.ToUpper(filepath.Ext(path)) {
		case ".WAV":
			wavs[key] = filepath.ToSlash(path)
		case ".JSON":
			u, ok, err := readAIHubInfo(path)
			if err != nil {
				return err
			}
			if ok {
				infos[key] = u
			}
		default:
			return &ErrUnsupportedFile{Dataset: "AIHub", Path: filepath.ToSlash(path)}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}

	keys := make([]string, 0, len(infos))
	for key := range infos {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []Utterance
	for _, key := range keys {
		path, ok := wavs[key]
		if !ok {
			log.WithField("key", key).Warn("aihub: metadata without audio, skipped")
			continue
		}
		u := infos[key]
		u.Path = path
		out = append(out, u)
	}

	logLoaded(log, "AIHub", len(out))
	return out, nil
}

func readAIHubInfo(path string) (Utterance, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Utterance{}, false, errors.Wrap(err, "aihub")
	}
	b = []byte(strings.TrimPrefix(string(b), "\ufeff"))

	var info aihubInfo
	if err := json.Unmarshal(b, &info); err != nil {
		return Utterance{}, false, errors.Wrapf(err, "aihub: decode %s", path)
	}
	u, ok := newUtterance("", strings.ReplaceAll(info.Transcription.Text, "/xa0", " "))
	if !ok {
		return Utterance{}, false, nil
	}
	emotion, known := aihubEmotions[info.Speaker.Emotion]
	if !known {
		return Utterance{}, false, &ErrUnknownLabel{Dataset: "AIHub", Label: info.Speaker.Emotion}
	}
	u.Speaker = "AIHub_" + info.Speaker.Name
	u.Gender = info.Speaker.Gender
	u.Emotion = emotion
	u.Language = Korean
	return u, true, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
