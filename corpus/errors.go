package corpus

import "fmt"

// The errors below mean the corpus does not match what the loader knows
// about it. Loaders stop on them instead of mislabelling utterances.

type ErrUnknownEmotionIndex struct {
	Speaker string
	Index   int
}

func (e *ErrUnknownEmotionIndex) Error() string {
	return fmt.Sprintf("corpus: unknown emotion index %d for speaker %s", e.Index, e.Speaker)
}

type ErrUnknownSpeaker struct {
	Dataset string
	Speaker string
}

func (e *ErrUnknownSpeaker) Error() string {
	return fmt.Sprintf("corpus: unknown %s speaker %q", e.Dataset, e.Speaker)
}

type ErrUnknownLabel struct {
	Dataset string
	Label   string
}

func (e *ErrUnknownLabel) Error() string {
	return fmt.Sprintf("corpus: unknown %s label %q", e.Dataset, e.Label)
}

type ErrMissingGender struct {
	Dataset string
	Speaker string
}

func (e *ErrMissingGender) Error() string {
	return fmt.Sprintf("corpus: no gender known for %s speaker %q", e.Dataset, e.Speaker)
}

type ErrUnsupportedFile struct {
	Dataset string
	Path    string
}

func (e *ErrUnsupportedFile) Error() string {
	return fmt.Sprintf("corpus: unsupported %s file type: %s", e.Dataset, e.Path)
}
