package tokenize

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Token
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "twoWords",
			text: "Hi there",
			want: []Token{
				{Raw: "Hi", Core: "Hi"},
				{Raw: " ", Space: true},
				{Raw: "there", Core: "there"},
			},
		},
		{
			name: "punctuation",
			text: "\"Hello,\" she said.",
			want: []Token{
				{Raw: "\"Hello,\"", Leading: "\"", Core: "Hello", Trailing: ",\""},
				{Raw: " ", Space: true},
				{Raw: "she", Core: "she"},
				{Raw: " ", Space: true},
				{Raw: "said.", Core: "said", Trailing: "."},
			},
		},
		{
			name: "loneDash",
			text: "—",
			want: []Token{
				{Raw: "—", Leading: "—"},
			},
		},
		{
			name: "apostropheAndHyphen",
			text: "don't well-known",
			want: []Token{
				{Raw: "don't", Core: "don't"},
				{Raw: " ", Space: true},
				{Raw: "well-known", Core: "well-known"},
			},
		},
		{
			name: "interiorPunctuation",
			text: "U.S.A.",
			want: []Token{
				{Raw: "U.S.A.", Core: "U.S.A", Trailing: "."},
			},
		},
		{
			name: "leadingAndTrailingWhitespace",
			text: "  \tgo\n\n",
			want: []Token{
				{Raw: "  \t", Space: true},
				{Raw: "go", Core: "go"},
				{Raw: "\n\n", Space: true},
			},
		},
		{
			name: "unicodeLetters",
			text: "¿Qué? 東京2024!",
			want: []Token{
				{Raw: "¿Qué?", Leading: "¿", Core: "Qué", Trailing: "?"},
				{Raw: " ", Space: true},
				{Raw: "東京2024!", Core: "東京2024", Trailing: "!"},
			},
		},
		{
			name: "combiningMarkOnLastLetter",
			text: "cafe\u0301, nai\u0308",
			want: []Token{
				{Raw: "cafe\u0301,", Core: "cafe\u0301", Trailing: ","},
				{Raw: " ", Space: true},
				{Raw: "nai\u0308", Core: "nai\u0308"},
			},
		},
		{
			name: "devanagariVowelSign",
			text: "नमस्ते।",
			want: []Token{
				{Raw: "नमस्ते।", Core: "नमस्ते", Trailing: "।"},
			},
		},
		{
			name: "markOnPunctuation",
			text: "ok.\u0301",
			want: []Token{
				{Raw: "ok.\u0301", Core: "ok", Trailing: ".\u0301"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"Hello, world!",
		"multiple   spaces\t\tand\n\nnewlines ",
		"— … ?! ...",
		"émigré naïve café — ünïcödé",
		"日本語のテキスト、句読点。",
		"mixed nbsp em-space",
		"'quoted' (parens) [brackets] {braces}",
	}

	for _, in := range inputs {
		var sb strings.Builder
		for _, tok := range Tokenize(in) {
			sb.WriteString(tok.Raw)
			if !tok.Space && tok.Leading+tok.Core+tok.Trailing != tok.Raw {
				t.Errorf("token %q: leading+core+trailing = %q", tok.Raw, tok.Leading+tok.Core+tok.Trailing)
			}
		}
		if sb.String() != in {
			t.Errorf("round trip of %q produced %q", in, sb.String())
		}
	}
}

func TestTokenizeAlternates(t *testing.T) {
	tokens := Tokenize("a  b\tc - d")
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Space == tokens[i-1].Space {
			t.Errorf("tokens %d and %d are both space=%v", i-1, i, tokens[i].Space)
		}
	}
}

func TestCountable(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"word", true},
		{"42", true},
		{"—", false},
		{"...", false},
		{"'", false},
		{"(a)", true},
	}

	for _, tt := range tests {
		tokens := Tokenize(tt.raw)
		if len(tokens) != 1 {
			t.Fatalf("Tokenize(%q) returned %d tokens", tt.raw, len(tokens))
		}
		if got := tokens[0].Countable(); got != tt.want {
			t.Errorf("Countable(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	if (Token{Raw: " ", Space: true}).Countable() {
		t.Error("whitespace token should not be countable")
	}
}

func TestCountableWords(t *testing.T) {
	got := CountableWords("Wait — what?! It's 5 o'clock...")
	want := []string{"Wait", "what", "It's", "5", "o'clock"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountableWords = %q, want %q", got, want)
	}

	if words := CountableWords("— — …"); len(words) != 0 {
		t.Errorf("punctuation-only text gave %q", words)
	}
}
