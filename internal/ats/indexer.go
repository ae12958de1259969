package ats

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// maxIndexedNGram bounds the phrase length a résumé can match. Explicit skills
// longer than this never match.
const maxIndexedNGram = 6

// Word-count limits for a readable résumé body.
const (
	MinResumeWords = 50
	MaxResumeWords = 1200
)

// Formatting issue codes.
const (
	IssueMissingContact = "missing_contact"
	IssueNoSections     = "no_section_headers"
	IssueTooShort       = "too_short"
	IssueTooLong        = "too_long"
	IssueLongParagraphs = "long_paragraphs"
	IssueWeakPhrasing   = "weak_phrasing"
)

const (
	longParagraphWords   = 50
	maxLongParagraphs    = 3
	shortLineMaxTokens   = 10
	maxPlausibleYearsExp = 50
)

var (
	emailRe      = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe      = regexp.MustCompile(`(\+?\d{1,3}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	quantifiedRe = regexp.MustCompile(`\d|%|[$€£¥₹]`)
	yearsRe      = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b`)
)

// FormattingIssue is one structural problem found in a résumé.
type FormattingIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResumeIndex is the searchable form of a résumé.
type ResumeIndex struct {
	WordCount         int
	Bullets           []string
	QuantifiedBullets []string
	Issues            []FormattingIssue
	YearsExperience   int
	Level             Tier

	ngrams map[string]int
}

// Contains reports whether the keyword appears in the résumé at stem level.
func (ix *ResumeIndex) Contains(k Keyword) bool {
	return ix.ngrams[k.Key()] > 0
}

// IndexResume builds the term index, bullet statistics, formatting issues and
// seniority signals of a résumé. Words inside a span matching one of
// jobKeywords are not read as seniority signals and do not count toward the
// length limits.
func IndexResume(text string, jobKeywords ...Keyword) *ResumeIndex {
	ix := &ResumeIndex{
		ngrams:    make(map[string]int),
		WordCount: len(strings.Fields(text)),
		Bullets:   Bullets(text),
	}

	var stems []string
	for t := range Terms(text) {
		stems = append(stems, Stem(t))
	}
	for i := range stems {
		for n := 1; n <= maxIndexedNGram && i+n <= len(stems); n++ {
			ix.ngrams[strings.Join(stems[i:i+n], " ")]++
		}
	}

	for _, b := range ix.Bullets {
		if isContactLine(b) {
			continue
		}
		if quantifiedRe.MatchString(b) {
			ix.QuantifiedBullets = append(ix.QuantifiedBullets, b)
		}
	}

	lines := splitLines(text, jobKeywords)
	ix.Issues = formattingIssues(text, ix.WordCount, lines)
	ix.YearsExperience = maxYearsMentioned(text)
	ix.Level = resumeTier(lines, ix.YearsExperience)
	return ix
}

// resumeLine is one résumé line as normalized tokens. keyword[i] is set when
// token i lies inside a span matching a job keyword.
type resumeLine struct {
	words   []string
	keyword []bool
}

// ownWords counts the tokens that are not part of a job keyword.
func (l resumeLine) ownWords() int {
	n := 0
	for _, kw := range l.keyword {
		if !kw {
			n++
		}
	}
	return n
}

// hasPhrase reports whether phrase occurs on the line outside job keywords.
func (l resumeLine) hasPhrase(phrase []string) bool {
	for i := 0; i+len(phrase) <= len(l.words); i++ {
		if slices.Equal(l.words[i:i+len(phrase)], phrase) && !slices.Contains(l.keyword[i:i+len(phrase)], true) {
			return true
		}
	}
	return false
}

func splitLines(text string, jobKeywords []Keyword) []resumeLine {
	keys := make(map[string]bool, len(jobKeywords))
	for _, k := range jobKeywords {
		if key := k.Key(); key != "" {
			keys[key] = true
		}
	}

	raw := strings.Split(text, "\n")
	lines := make([]resumeLine, 0, len(raw))
	for _, line := range raw {
		words := Tokenize(line)
		l := resumeLine{words: words, keyword: make([]bool, len(words))}
		if len(keys) > 0 {
			stems := make([]string, len(words))
			for i, w := range words {
				stems[i] = Stem(w)
			}
			for i := range stems {
				for n := 1; n <= maxIndexedNGram && i+n <= len(stems); n++ {
					if keys[strings.Join(stems[i:i+n], " ")] {
						for j := i; j < i+n; j++ {
							l.keyword[j] = true
						}
					}
				}
			}
		}
		lines = append(lines, l)
	}
	return lines
}

func formattingIssues(text string, wordCount int, lines []resumeLine) []FormattingIssue {
	var issues []FormattingIssue
	if !isContactLine(text) {
		issues = append(issues, FormattingIssue{IssueMissingContact,
			"Add a contact line with a professional email address or phone number."})
	}

	headers, longParas, bodyWords := 0, 0, 0
	for _, l := range lines {
		if isSectionHeader(l.words) {
			headers++
		}
		own := l.ownWords()
		if own > longParagraphWords {
			longParas++
		}
		bodyWords += own
	}
	if headers == 0 {
		issues = append(issues, FormattingIssue{IssueNoSections,
			"Add clear section headers such as Experience, Education and Skills so ATS parsers can find your content."})
	}

	switch {
	case wordCount < MinResumeWords:
		issues = append(issues, FormattingIssue{IssueTooShort,
			"Your résumé is too short (under " + strconv.Itoa(MinResumeWords) + " words); describe your projects and experience in more detail."})
	case bodyWords > MaxResumeWords:
		issues = append(issues, FormattingIssue{IssueTooLong,
			"Your résumé is too long (over " + strconv.Itoa(MaxResumeWords) + " words); trim older or less relevant entries."})
	}

	if longParas > maxLongParagraphs {
		issues = append(issues, FormattingIssue{IssueLongParagraphs,
			"Use bullet points instead of long paragraphs."})
	}

weak:
	for _, p := range weakPhrases {
		phrase := strings.Fields(p)
		for _, l := range lines {
			if l.hasPhrase(phrase) {
				issues = append(issues, FormattingIssue{IssueWeakPhrasing,
					"Replace weak phrases like \"" + p + "\" with strong action verbs (built, led, improved)."})
				break weak
			}
		}
	}
	return issues
}

func isContactLine(s string) bool {
	return emailRe.MatchString(s) || phoneRe.MatchString(s)
}

func isSectionHeader(words []string) bool {
	if len(words) == 0 || len(words) > 4 {
		return false
	}
	if sectionHeaders[strings.Join(words, " ")] {
		return true
	}
	for _, w := range words {
		if sectionHeaders[w] {
			return true
		}
	}
	return false
}

func maxYearsMentioned(text string) int {
	best := 0
	for _, m := range yearsRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > maxPlausibleYearsExp {
			continue
		}
		best = max(best, n)
	}
	return best
}

// resumeTier combines years of experience with seniority words found on short,
// title-like lines. A résumé without any signal counts as junior.
func resumeTier(lines []resumeLine, years int) Tier {
	tier := tierForYears(years)
	for _, l := range lines {
		if own := l.ownWords(); own == 0 || own > shortLineMaxTokens {
			continue
		}
		for i, w := range l.words {
			if l.keyword[i] {
				continue
			}
			if t, ok := seniorityWords[w]; ok && t > tier {
				tier = t
			}
		}
	}
	if tier == TierUnknown {
		return TierJunior
	}
	return tier
}
