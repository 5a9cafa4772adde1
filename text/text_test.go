package text

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"korean", "  안녕하세요.  ", "안녕하세요."},
		{"uppercase", "hello, world!", "HELLO, WORLD!"},
		{"brackets removed", "(hello) [there]: \"you\";", "HELLO THERE YOU"},
		{"double space", "A   B    C", "A B C"},
		{"space before comma", "YES , NO", "YES, NO"},
		{"smart quotes", "“it’s”", "IT'S"},
		{"quote removal space", "A “ B", "A B"},
		{"apostrophe space", "ROCK ' N ROLL", "ROCK 'N ROLL"},
		{"mixed", "그래요? OK-DOKEY", "그래요? OK-DOKEY"},
		{"decomposed jamo input", "\u1100\u1161", "가"},
		{"no-break space", "안녕\u00a0하세요", "안녕\u00a0하세요"},
		{"ideographic space", "안녕\u3000하세요", "안녕\u3000하세요"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"HELLO #1",
		"PRICE 100",
		"'TWAS THE NIGHT",
		"日本語",
		"ABC@",
	} {
		if got, err := Normalize(in); !errors.Is(err, ErrRejectedText) {
			t.Errorf("Normalize(%q) = %q, %v; want ErrRejectedText", in, got, err)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{
		"안녕, 세상!",
		"a “quoted”   thing , here",
		"ROCK ' N ' ROLL",
		"WHAT?  WHO'S   THERE",
		"Dear  (sir)  ,  hello",
	} {
		once, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", in, err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(%q) second pass: %v", once, err)
		}
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestDecompose(t *testing.T) {
	got := Decompose("각 A")
	want := []string{"ㄱ", "ㅏ", "ㄱ_", " ", "A"}
	if len(got) != len(want) {
		t.Fatalf("Decompose = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol %d = %q, want %q", i, got[i], want[i])
		}
	}

	open := Decompose("가")
	if open[2] != CodaPlaceholder {
		t.Errorf("open syllable coda = %q, want %q", open[2], CodaPlaceholder)
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	for _, in := range []string{
		"안녕하세요, 반갑습니다.",
		"닭 값이 얼마예요?",
		"HELLO 세상!",
		"가힣",
	} {
		s, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", in, err)
		}
		if got := Recompose(Decompose(s)); got != s {
			t.Errorf("Recompose(Decompose(%q)) = %q", s, got)
		}
	}
}

func TestDecomposeEverySyllable(t *testing.T) {
	for r := rune(syllableBase); r <= syllableLast; r++ {
		sym := Decompose(string(r))
		if len(sym) != 3 {
			t.Fatalf("%q decomposed into %d symbols", r, len(sym))
		}
		back, ok := Compose(sym[0], sym[1], sym[2])
		if !ok || back != r {
			t.Fatalf("Compose(%q) = %q, %v; want %q", sym, back, ok, r)
		}
	}
}

func TestTokenDictionary(t *testing.T) {
	dict := TokenDictionary()
	if want := 2 + 19 + 21 + 28 + 26 + 7; len(dict) != want {
		t.Fatalf("dictionary size = %d, want %d", len(dict), want)
	}
	if dict[StartToken] != 0 || dict[EndToken] != 1 {
		t.Errorf("start/end = %d/%d", dict[StartToken], dict[EndToken])
	}
	if dict["ㄱ"] != 2 {
		t.Errorf("first onset index = %d, want 2", dict["ㄱ"])
	}
	for _, s := range Decompose("닭 값이 얼마예요? OK!") {
		if _, ok := dict[s]; !ok {
			t.Errorf("symbol %q missing from dictionary", s)
		}
	}
}

func TestWriteTokenDictionaryPure(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a", "token.yaml")
	b := filepath.Join(dir, "b", "token.yaml")
	if _, err := WriteTokenDictionary(a); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteTokenDictionary(b); err != nil {
		t.Fatal(err)
	}
	ba, _ := os.ReadFile(a)
	bb, _ := os.ReadFile(b)
	if len(ba) == 0 || !bytes.Equal(ba, bb) {
		t.Errorf("token dictionary output differs between runs")
	}
}
