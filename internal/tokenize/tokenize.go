package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one whitespace run or one whitespace-free chunk of the source text.
type Token struct {
	Raw      string
	Leading  string
	Core     string
	Trailing string
	Space    bool
}

// Countable reports whether the token takes part in timing and highlighting.
func (t Token) Countable() bool {
	if t.Space {
		return false
	}
	return strings.IndexFunc(t.Core, isWordRune) >= 0
}

// Tokenize splits text into alternating whitespace and non-whitespace runs.
// Joining the Raw fields of the result reproduces text exactly.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	var tokens []Token
	start := 0
	inSpace := false

	for i, r := range text {
		space := unicode.IsSpace(r)
		if i == 0 {
			inSpace = space
			continue
		}
		if space != inSpace {
			tokens = append(tokens, newToken(text[start:i], inSpace))
			start = i
			inSpace = space
		}
	}
	tokens = append(tokens, newToken(text[start:], inSpace))

	return tokens
}

func newToken(raw string, space bool) Token {
	if space {
		return Token{Raw: raw, Space: true}
	}

	lead := leadingPunct(raw)
	if lead == len(raw) {
		return Token{Raw: raw, Leading: raw}
	}
	trail := trailingPunct(raw[lead:])

	return Token{
		Raw:      raw,
		Leading:  raw[:lead],
		Core:     raw[lead : len(raw)-trail],
		Trailing: raw[len(raw)-trail:],
	}
}

// leadingPunct returns the byte length of the prefix holding no letter or number.
func leadingPunct(s string) int {
	if i := strings.IndexFunc(s, isWordRune); i >= 0 {
		return i
	}
	return len(s)
}

// trailingPunct returns the byte length of the suffix holding no letter or
// number. Combining marks on the last letter stay with the word.
func trailingPunct(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		if isWordRune(r) || (unicode.IsMark(r) && markOnWord(s[:len(s)-size])) {
			break
		}
		n += size
		s = s[:len(s)-size]
	}
	return n
}

// markOnWord reports whether s ends in a letter or number, skipping any
// further combining marks.
func markOnWord(s string) bool {
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		if !unicode.IsMark(r) {
			return isWordRune(r)
		}
		s = s[:len(s)-size]
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Words returns the cores of the countable tokens in order of appearance.
func Words(tokens []Token) []string {
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Countable() {
			words = append(words, t.Core)
		}
	}
	return words
}

// CountableWords tokenizes text and returns its countable cores.
func CountableWords(text string) []string {
	return Words(Tokenize(text))
}
