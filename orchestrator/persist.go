package orchestrator

import (
	"encoding/gob"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PatternExt is the file extension of persisted patterns.
const PatternExt = ".PATTERN"

// writeTemp gob-encodes v into a uniquely named hidden file next to path.
func writeTemp(path string, v any) (string, error) {
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}

// publish writes v to path only if path does not exist yet. Readers never
// observe a partially written file. A lost race returns an error matching
// os.ErrExist.
func publish(path string, v any) error {
	tmp, err := writeTemp(path, v)
	if err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	defer os.Remove(tmp)

	err = os.Link(tmp, path)
	if err == nil || errors.Is(err, os.ErrExist) {
		return err
	}
	// Filesystems without hard links.
	if _, serr := os.Stat(path); serr == nil {
		return os.ErrExist
	}
	return errors.Wrapf(os.Rename(tmp, path), "publish %s", path)
}

// replace atomically overwrites path with v.
func replace(path string, v any) error {
	tmp, err := writeTemp(path, v)
	if err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}

func readPattern(path string) (*Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var p Pattern
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ReadMetadata loads the index written by the aggregator.
func ReadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var m Metadata
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return &m, nil
}

func writeYAML(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return encodeYAML(f, v)
}

// encodeYAML writes v to w and closes w. A failed close is reported.
func encodeYAML(w io.WriteCloser, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(v)
	if err == nil {
		err = enc.Close()
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}
