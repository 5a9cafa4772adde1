// Package text cleans corpus transcripts and turns them into the phoneme
// symbols the pattern store keeps.
package text

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// ErrRejectedText is returned when a transcript cannot be reduced to the
// permitted character set. Callers drop the utterance.
var ErrRejectedText = errors.New("text: transcript rejected")

var (
	permitted = regexp.MustCompile(`^[가-힣A-Z,.?!'\-\s\p{Zs}]+$`)

	removed = []string{"(", ")", "\"", "[", "]", ":", ";"}

	quotes = strings.NewReplacer("“", "", "”", "", "’", "'")
)

// Normalize upper-cases and cleans a raw transcript line. The whole result
// must consist of Hangul syllables, A-Z, whitespace and , . ? ! ' -
func Normalize(s string) (string, error) {
	s = norm.NFC.String(s)
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, r := range removed {
		s = strings.ReplaceAll(s, r, "")
	}
	s = quotes.Replace(s)
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	s = strings.ReplaceAll(s, " ,", ",")
	s = strings.ReplaceAll(s, "' ", "'")
	s = strings.TrimSpace(s)

	if !permitted.MatchString(s) || strings.HasPrefix(s, "'") {
		return "", ErrRejectedText
	}
	return s, nil
}
