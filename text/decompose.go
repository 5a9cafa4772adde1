package text

import "strings"

// CodaPlaceholder is appended to every coda symbol.
const CodaPlaceholder = "_"

const (
	syllableBase = 0xAC00
	syllableLast = 0xD7A3
	nucleusCount = 21
	codaCount    = 28
	perOnset     = nucleusCount * codaCount
)

// Compatibility jamo, in Unicode syllable composition order.
var (
	Onsets = []string{
		"ㄱ", "ㄲ", "ㄴ", "ㄷ", "ㄸ", "ㄹ", "ㅁ", "ㅂ", "ㅃ", "ㅅ",
		"ㅆ", "ㅇ", "ㅈ", "ㅉ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ",
	}
	Nuclei = []string{
		"ㅏ", "ㅐ", "ㅑ", "ㅒ", "ㅓ", "ㅔ", "ㅕ", "ㅖ", "ㅗ", "ㅘ", "ㅙ",
		"ㅚ", "ㅛ", "ㅜ", "ㅝ", "ㅞ", "ㅟ", "ㅠ", "ㅡ", "ㅢ", "ㅣ",
	}
	// Codas starts with the empty coda.
	Codas = []string{
		"", "ㄱ", "ㄲ", "ㄳ", "ㄴ", "ㄵ", "ㄶ", "ㄷ", "ㄹ", "ㄺ",
		"ㄻ", "ㄼ", "ㄽ", "ㄾ", "ㄿ", "ㅀ", "ㅁ", "ㅂ", "ㅄ", "ㅅ",
		"ㅆ", "ㅇ", "ㅈ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ",
	}
)

func isSyllable(r rune) bool { return r >= syllableBase && r <= syllableLast }

// Decompose splits every Hangul syllable into onset, nucleus and coda
// symbols. The coda symbol always carries CodaPlaceholder, so an open
// syllable yields a bare "_". Other runes pass through as one symbol each.
func Decompose(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		if !isSyllable(r) {
			out = append(out, string(r))
			continue
		}
		code := int(r - syllableBase)
		out = append(out,
			Onsets[code/perOnset],
			Nuclei[(code%perOnset)/codaCount],
			Codas[code%codaCount]+CodaPlaceholder,
		)
	}
	return out
}

// Compose rebuilds one syllable from its decomposed symbols.
func Compose(onset, nucleus, coda string) (rune, bool) {
	o, n := indexOf(Onsets, onset), indexOf(Nuclei, nucleus)
	c := indexOf(Codas, strings.TrimSuffix(coda, CodaPlaceholder))
	if o < 0 || n < 0 || c < 0 || !strings.HasSuffix(coda, CodaPlaceholder) {
		return 0, false
	}
	return rune(syllableBase + o*perOnset + n*codaCount + c), true
}

// Recompose is the inverse of Decompose.
func Recompose(symbols []string) string {
	var b strings.Builder
	for i := 0; i < len(symbols); i++ {
		if i+2 < len(symbols) {
			if r, ok := Compose(symbols[i], symbols[i+1], symbols[i+2]); ok {
				b.WriteRune(r)
				i += 2
				continue
			}
		}
		b.WriteString(symbols[i])
	}
	return b.String()
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
