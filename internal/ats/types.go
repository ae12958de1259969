package ats

// Category classifies a job keyword.
type Category string

const (
	CategoryHardSkill Category = "hard-skill"
	CategorySoftSkill Category = "soft-skill"
	CategoryGeneric   Category = "generic"
)

// Source records where a keyword came from in the job description.
type Source string

const (
	SourceRequired  Source = "required"
	SourcePreferred Source = "preferred"
	SourceText      Source = "text"
)

// Keyword weights assigned by the extractor.
const (
	WeightRequired  = 2.0
	WeightPreferred = 1.5
	WeightRecurring = 1.0
	WeightContent   = 0.3
)

// JobDescription is the job side of an analysis.
type JobDescription struct {
	Title           string
	Text            string
	RequiredSkills  []string
	PreferredSkills []string
	ExperienceLevel string
}

// Keyword is one weighted term of a KeywordSet.
type Keyword struct {
	Term        string   `json:"term"`
	Weight      float64  `json:"weight"`
	Category    Category `json:"category"`
	Source      Source   `json:"source"`
	Occurrences int      `json:"occurrences"`

	key   string
	first int
}

// Key is the stem-level match key of the keyword.
func (k Keyword) Key() string {
	if k.key != "" {
		return k.key
	}
	return stemKey(Normalize(k.Term))
}

// KeywordSet is ordered by weight descending, ties by first occurrence.
type KeywordSet []Keyword

// Terms returns the keyword terms in set order.
func (ks KeywordSet) Terms() []string {
	terms := make([]string, len(ks))
	for i, k := range ks {
		terms[i] = k.Term
	}
	return terms
}

// TotalWeight sums the weight of every keyword.
func (ks KeywordSet) TotalWeight() float64 {
	var total float64
	for _, k := range ks {
		total += k.Weight
	}
	return total
}

// DetailedAnalysis holds the named sub-scores, each in [0,1], plus the diagnostics
// they were computed from.
type DetailedAnalysis struct {
	KeywordDensity       float64 `json:"keyword_density"`
	IndustryAlignment    float64 `json:"industry_alignment"`
	ExperienceLevelMatch float64 `json:"experience_level_match"`
	QuantificationScore  float64 `json:"quantification_score"`
	FormattingScore      float64 `json:"formatting_score"`

	TotalKeywordsFound    int      `json:"total_keywords_found"`
	TotalKeywordsExpected int      `json:"total_keywords_expected"`
	MatchRatio            float64  `json:"match_ratio"`
	QuantifiedBullets     int      `json:"quantified_bullets"`
	FormattingIssues      []string `json:"formatting_issues"`
	ResumeLevel           string   `json:"resume_level"`
	JobLevel              string   `json:"job_level"`
	StrengthAreas         []string `json:"strength_areas"`
	WeaknessAreas         []string `json:"weakness_areas"`
}

// AnalysisResult is the outcome of one résumé/job comparison. It is built once and
// not modified afterwards.
type AnalysisResult struct {
	ATSScore        int              `json:"ats_score"`
	StrongKeywords  []string         `json:"strong_keywords"`
	MissingKeywords []string         `json:"missing_keywords"`
	Suggestions     []string         `json:"suggestions"`
	Detailed        DetailedAnalysis `json:"detailed_analysis"`
	Keywords        KeywordSet       `json:"keywords"`
}
