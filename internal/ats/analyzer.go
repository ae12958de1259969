package ats

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxInputRunes bounds the résumé and job text accepted by Analyze.
const DefaultMaxInputRunes = 100_000

// Options configures an Analyzer.
type Options struct {
	// MaxInputRunes limits résumé and job text length. Zero means DefaultMaxInputRunes.
	MaxInputRunes int
}

// Analyzer scores résumés against job descriptions. It holds no mutable state and
// is safe for concurrent use.
type Analyzer struct {
	maxRunes int
}

func NewAnalyzer(opts Options) *Analyzer {
	n := opts.MaxInputRunes
	if n <= 0 {
		n = DefaultMaxInputRunes
	}
	return &Analyzer{maxRunes: n}
}

var defaultAnalyzer = NewAnalyzer(Options{})

// Analyze runs the default Analyzer.
func Analyze(resumeText string, job JobDescription) (*AnalysisResult, error) {
	return defaultAnalyzer.Analyze(resumeText, job)
}

// Analyze compares one résumé with one job description.
func (a *Analyzer) Analyze(resumeText string, job JobDescription) (*AnalysisResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("%w: résumé text is empty", ErrInvalidInput)
	}
	if utf8.RuneCountInString(resumeText) > a.maxRunes {
		return nil, fmt.Errorf("%w: résumé is over %d characters", ErrInputTooLarge, a.maxRunes)
	}
	if utf8.RuneCountInString(job.Text)+utf8.RuneCountInString(job.Title) > a.maxRunes {
		return nil, fmt.Errorf("%w: job description is over %d characters", ErrInputTooLarge, a.maxRunes)
	}

	if strings.TrimSpace(job.Text) == "" {
		return nil, fmt.Errorf("%w: %w: job description is empty", ErrEmptyKeywordSet, ErrInvalidInput)
	}

	ks, err := ExtractKeywords(job)
	if err != nil {
		return nil, err
	}

	ix := IndexResume(resumeText, ks...)
	s := score(ks, ix, JobTier(job))

	res := &AnalysisResult{
		ATSScore:        ATSScore(s.detailed),
		StrongKeywords:  s.strong.Terms(),
		MissingKeywords: s.missing.Terms(),
		Suggestions:     Suggest(s.detailed, s.missing, ix.Issues),
		Detailed:        s.detailed,
		Keywords:        ks,
	}
	return res, nil
}
