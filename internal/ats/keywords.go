package ats

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// maxPhraseWords bounds known-term lookups and capitalized runs.
const maxPhraseWords = 3

type unitKind int

const (
	unitWord unitKind = iota
	unitKnown
	unitCapitalized
)

// unit is a span of job-text tokens treated as one candidate term.
type unit struct {
	kind  unitKind
	words []string
}

func (u unit) term() string { return strings.Join(u.words, " ") }

type keywordBuilder struct {
	byKey map[string]int
	list  []Keyword
}

func newKeywordBuilder() *keywordBuilder {
	return &keywordBuilder{byKey: make(map[string]int)}
}

func (b *keywordBuilder) has(key string) bool {
	_, ok := b.byKey[key]
	return ok
}

// add records one occurrence of term. Repeated terms keep their first surface form
// and position; a higher weight replaces the weight, source and category.
func (b *keywordBuilder) add(term string, weight float64, cat Category, src Source) {
	key := stemKey(term)
	if key == "" {
		return
	}
	if i, ok := b.byKey[key]; ok {
		k := &b.list[i]
		k.Occurrences++
		if weight > k.Weight {
			k.Weight, k.Source, k.Category = weight, src, cat
		}
		return
	}
	b.byKey[key] = len(b.list)
	b.list = append(b.list, Keyword{
		Term:        term,
		Weight:      weight,
		Category:    cat,
		Source:      src,
		Occurrences: 1,
		key:         key,
		first:       len(b.list),
	})
}

func (b *keywordBuilder) set() KeywordSet {
	ks := KeywordSet(b.list)
	slices.SortStableFunc(ks, func(x, y Keyword) int {
		if c := cmp.Compare(y.Weight, x.Weight); c != 0 {
			return c
		}
		return cmp.Compare(x.first, y.first)
	})
	return ks
}

// ExtractKeywords derives the weighted KeywordSet of a job description. Explicit
// required and preferred skills come first in occurrence order; free text adds
// recurring technical terms and capitalized phrases at weight 1.0 and every other
// content word at 0.3.
func ExtractKeywords(job JobDescription) (KeywordSet, error) {
	b := newKeywordBuilder()
	addExplicit(b, job.RequiredSkills, WeightRequired, SourceRequired)
	addExplicit(b, job.PreferredSkills, WeightPreferred, SourcePreferred)

	text := job.Text
	if t := strings.TrimSpace(job.Title); t != "" {
		text = t + "\n" + text
	}
	addFreeText(b, text)

	if len(b.list) == 0 {
		return nil, ErrEmptyKeywordSet
	}
	return b.set(), nil
}

func addExplicit(b *keywordBuilder, skills []string, weight float64, src Source) {
	for _, s := range skills {
		term := Normalize(s)
		if term == "" {
			continue
		}
		cat := categorize(term)
		if cat == CategoryGeneric {
			cat = CategoryHardSkill
		}
		b.add(term, weight, cat, src)
	}
}

func addFreeText(b *keywordBuilder, text string) {
	var toks []token
	for t := range scan(prepare(text)) {
		toks = append(toks, t)
	}
	units := segment(toks)

	counts := make(map[string]int)
	for _, u := range units {
		if u.kind != unitWord {
			counts[stemKey(u.term())]++
		}
	}

	// Components of multi-word phrases that will be kept whole are not emitted
	// as separate words.
	covered := make(map[string]bool)
	for _, k := range b.list {
		coverComponents(covered, k.Term)
	}
	for _, u := range units {
		if u.kind != unitWord && len(u.words) > 1 && counts[stemKey(u.term())] >= 2 {
			coverComponents(covered, u.term())
		}
	}

	for _, u := range units {
		term := u.term()
		key := stemKey(term)
		switch {
		case u.kind != unitWord && (counts[key] >= 2 || b.has(key)):
			w := WeightContent
			if counts[key] >= 2 {
				w = WeightRecurring
			}
			b.add(term, w, categorize(term), SourceText)
		default:
			for _, w := range u.words {
				if !isContentWord(w) || covered[Stem(w)] {
					continue
				}
				b.add(w, WeightContent, categorize(w), SourceText)
			}
		}
	}
}

func coverComponents(covered map[string]bool, term string) {
	words := strings.Fields(term)
	if len(words) < 2 {
		return
	}
	for _, w := range words {
		covered[Stem(w)] = true
	}
}

// segment groups tokens into known-term spans (longest match first), runs of
// capitalized words, and single words.
func segment(toks []token) []unit {
	var units []unit
	for i := 0; i < len(toks); {
		if n := knownTermAt(toks, i); n > 0 {
			units = append(units, unit{kind: unitKnown, words: texts(toks[i : i+n])})
			i += n
			continue
		}
		if n := capitalizedRunAt(toks, i); n > 0 {
			words := trimNonContent(texts(toks[i : i+n]))
			if len(words) > 0 {
				units = append(units, unit{kind: unitCapitalized, words: words})
			}
			i += n
			continue
		}
		units = append(units, unit{kind: unitWord, words: []string{toks[i].text}})
		i++
	}
	return units
}

func texts(toks []token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.text
	}
	return out
}

func knownTermAt(toks []token, i int) int {
	for n := maxPhraseWords; n >= 1; n-- {
		if i+n > len(toks) {
			continue
		}
		if n > 1 && hasBoundary(toks[i+1:i+n]) {
			continue
		}
		term := strings.Join(texts(toks[i:i+n]), " ")
		if technicalTerms[term] || softSkills[term] {
			return n
		}
	}
	return 0
}

// capitalizedRunAt returns the length of the run of capitalized tokens starting at
// i. A lone capitalized word opening a sentence is grammar, not a name, and does
// not count.
func capitalizedRunAt(toks []token, i int) int {
	if !toks[i].capitalized {
		return 0
	}
	n := 1
	for i+n < len(toks) && n < maxPhraseWords && toks[i+n].capitalized && !toks[i+n].boundary && !toks[i+n].sentenceStart {
		n++
	}
	if n == 1 && toks[i].sentenceStart {
		return 0
	}
	return n
}

func hasBoundary(toks []token) bool {
	for _, t := range toks {
		if t.boundary || t.sentenceStart {
			return true
		}
	}
	return false
}

func trimNonContent(words []string) []string {
	for len(words) > 0 && !isContentWord(words[0]) {
		words = words[1:]
	}
	for len(words) > 0 && !isContentWord(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return words
}

// isContentWord reports whether w may become a keyword on its own.
func isContentWord(w string) bool {
	if isStopWord(w) {
		return false
	}
	if _, ok := seniorityWords[w]; ok {
		return false
	}
	if strings.IndexFunc(w, func(r rune) bool { return r < '0' || r > '9' }) < 0 {
		return false // pure number
	}
	if utf8.RuneCountInString(w) < 2 && !technicalTerms[w] {
		return false
	}
	return true
}
