package ats

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// token is a normalized word plus the layout facts the extractor needs.
type token struct {
	text          string // lower-cased
	capitalized   bool   // first rune upper-case in the source text
	sentenceStart bool   // first token of a line or sentence
	boundary      bool   // punctuation other than spaces separates it from the previous token
}

// foldDiacritics maps "Résumé" to "Resume". A fresh transformer is built per call
// since transform chains carry state.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// prepare folds diacritics and rewrites technology aliases while keeping the
// original capitalisation of everything else.
func prepare(text string) string {
	text = foldDiacritics(text)
	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		// byte offsets would not line up; give up on case information
		text = lower
	}
	for _, a := range aliases {
		text, lower = replaceBounded(text, lower, a.from, a.to)
	}
	return text
}

// replaceBounded replaces case-insensitive occurrences of from that are not glued
// to a letter or digit on either side. lower must be strings.ToLower(s).
func replaceBounded(s, lower, from, to string) (string, string) {
	if !strings.Contains(lower, from) {
		return s, lower
	}
	var b, lb strings.Builder
	i := 0
	for {
		j := strings.Index(lower[i:], from)
		if j < 0 {
			break
		}
		j += i
		end := j + len(from)
		if isWordBoundary(lower, j, end) {
			b.WriteString(s[i:j])
			lb.WriteString(lower[i:j])
			b.WriteString(to)
			lb.WriteString(to)
		} else {
			b.WriteString(s[i:end])
			lb.WriteString(lower[i:end])
		}
		i = end
	}
	b.WriteString(s[i:])
	lb.WriteString(lower[i:])
	return b.String(), lb.String()
}

func isWordBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '\n' || r == '\r' || r == ';' || r == '•'
}

// scan walks prepared text and yields tokens. Hyphens survive only between two
// word runes, so "front-end" stays whole and "-foo-" becomes "foo".
func scan(text string) iter.Seq[token] {
	return func(yield func(token) bool) {
		var word strings.Builder
		var cur token
		sentenceStart, boundary := true, false
		prevHyphen := false

		flush := func() bool {
			if word.Len() == 0 {
				return true
			}
			cur.text = strings.ToLower(word.String())
			word.Reset()
			ok := yield(cur)
			cur = token{}
			return ok
		}

		rs := []rune(text)
		for i, r := range rs {
			switch {
			case isWordRune(r):
				if word.Len() == 0 {
					cur.capitalized = unicode.IsUpper(r)
					cur.sentenceStart = sentenceStart
					cur.boundary = boundary
					sentenceStart, boundary = false, false
				} else if prevHyphen {
					word.WriteRune('-')
				}
				prevHyphen = false
				word.WriteRune(r)
			case r == '-' && word.Len() > 0 && !prevHyphen && i+1 < len(rs) && isWordRune(rs[i+1]):
				prevHyphen = true
			default:
				prevHyphen = false
				if !flush() {
					return
				}
				if isSentenceEnd(r) {
					sentenceStart = true
				}
				if !unicode.IsSpace(r) || r == '\n' {
					boundary = true
				}
			}
		}
		flush()
	}
}

// Terms lazily yields the normalized tokens of text.
func Terms(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for t := range scan(prepare(text)) {
			if !yield(t.text) {
				return
			}
		}
	}
}

// Tokenize returns every normalized token of text.
func Tokenize(text string) []string {
	var out []string
	for t := range Terms(text) {
		out = append(out, t)
	}
	return out
}

// Normalize lower-cases text, strips diacritics and punctuation, and joins the
// resulting tokens with single spaces.
func Normalize(text string) string {
	return strings.Join(Tokenize(text), " ")
}

// Bullets segments text into sentence-like units: one per line, split again on
// sentence terminators. Leading bullet glyphs and list numbers are dropped.
func Bullets(text string) []string {
	var out []string
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' || r == '•' }) {
		line = trimBulletMarker(strings.TrimSpace(line))
		for _, s := range splitSentences(line) {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func trimBulletMarker(line string) string {
	line = strings.TrimLeft(line, "-*▪◦‣–·>→ \t")
	// numbered lists: "1. Did x" or "2) Did y"
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < 3 && i+1 < len(line) && (line[i] == '.' || line[i] == ')') && line[i+1] == ' ' {
		line = line[i+2:]
	}
	return strings.TrimSpace(line)
}

// splitSentences breaks on . ! ? followed by whitespace, so "3.5x" stays intact.
func splitSentences(line string) []string {
	var out []string
	start := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		if (c == '.' || c == '!' || c == '?') && (i+1 == len(line) || line[i+1] == ' ' || line[i+1] == '\t') {
			out = append(out, line[start:i+1])
			start = i + 1
		}
	}
	if start < len(line) {
		out = append(out, line[start:])
	}
	return out
}

var stemSuffixes = []struct{ suffix, replace string }{
	{"ations", ""},
	{"ation", ""},
	{"ments", ""},
	{"ment", ""},
	{"ings", ""},
	{"ing", ""},
	{"ies", "y"},
	{"ied", "y"},
	{"ers", ""},
	{"er", ""},
	{"ed", ""},
	{"es", ""},
	{"s", ""},
}

// Stem strips common English inflections so "manage", "managed" and "managing"
// share a key. Short words and words containing digits are left alone.
func Stem(word string) string {
	if utf8.RuneCountInString(word) <= 3 || strings.ContainsFunc(word, unicode.IsDigit) {
		return word
	}
	if strings.HasSuffix(word, "ss") || strings.HasSuffix(word, "us") || strings.HasSuffix(word, "is") {
		return word
	}
	for _, s := range stemSuffixes {
		if strings.HasSuffix(word, s.suffix) && utf8.RuneCountInString(word)-len(s.suffix) >= 3 {
			word = strings.TrimSuffix(word, s.suffix) + s.replace
			break
		}
	}
	if utf8.RuneCountInString(word) > 4 && strings.HasSuffix(word, "e") {
		word = strings.TrimSuffix(word, "e")
	}
	return word
}

// stemKey turns a normalized term (possibly multi-word) into its match key.
func stemKey(term string) string {
	words := strings.Fields(term)
	for i, w := range words {
		words[i] = Stem(w)
	}
	return strings.Join(words, " ")
}
