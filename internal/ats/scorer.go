package ats

import "math"

// Aggregate weights of the ATS score. They sum to 1 and are fixed.
const (
	WeightKeywordDensity       = 0.40
	WeightIndustryAlignment    = 0.20
	WeightExperienceLevelMatch = 0.15
	WeightQuantification       = 0.15
	WeightFormatting           = 0.10
)

const (
	// QuantifiedBulletTarget is the number of quantified bullets that earns a full
	// quantification score.
	QuantifiedBulletTarget = 5
	// FormattingPenalty is subtracted from the formatting score per issue.
	FormattingPenalty = 0.2

	maxAreas = 5
)

// alignmentEmphasis weights keywords for industry_alignment so that explicit
// skills and hard skills dominate generic vocabulary.
func alignmentEmphasis(k Keyword) float64 {
	switch {
	case k.Source == SourceRequired:
		return 3
	case k.Source == SourcePreferred:
		return 2
	case k.Category == CategoryHardSkill:
		return 1.5
	case k.Category == CategorySoftSkill:
		return 1
	default:
		return 0.25
	}
}

// scored is the per-dimension outcome before suggestions are attached.
type scored struct {
	detailed DetailedAnalysis
	strong   KeywordSet
	missing  KeywordSet
}

func score(ks KeywordSet, ix *ResumeIndex, jobTier Tier) scored {
	var s scored
	var found, total, alignFound, alignTotal float64
	for _, k := range ks {
		emph := alignmentEmphasis(k)
		total += k.Weight
		alignTotal += emph * k.Weight
		if ix.Contains(k) {
			found += k.Weight
			alignFound += emph * k.Weight
			s.strong = append(s.strong, k)
		} else {
			s.missing = append(s.missing, k)
		}
	}

	d := &s.detailed
	d.KeywordDensity = ratio(found, total)
	d.IndustryAlignment = ratio(alignFound, alignTotal)
	d.ExperienceLevelMatch = levelMatch(ix.Level, jobTier)
	d.QuantificationScore = math.Min(1, float64(len(ix.QuantifiedBullets))/QuantifiedBulletTarget)
	d.FormattingScore = math.Max(0, 1-float64(len(ix.Issues))*FormattingPenalty)

	d.TotalKeywordsFound = len(s.strong)
	d.TotalKeywordsExpected = len(ks)
	d.MatchRatio = ratio(float64(len(s.strong)), float64(len(ks)))
	d.QuantifiedBullets = len(ix.QuantifiedBullets)
	d.FormattingIssues = make([]string, 0, len(ix.Issues))
	for _, is := range ix.Issues {
		d.FormattingIssues = append(d.FormattingIssues, is.Code)
	}
	d.ResumeLevel = ix.Level.String()
	d.JobLevel = jobTier.String()
	d.StrengthAreas = hardSkills(s.strong, maxAreas)
	d.WeaknessAreas = hardSkills(s.missing, maxAreas)
	return s
}

// ATSScore combines the sub-scores with the fixed weights into a 0–100 integer.
func ATSScore(d DetailedAnalysis) int {
	v := WeightKeywordDensity*d.KeywordDensity +
		WeightIndustryAlignment*d.IndustryAlignment +
		WeightExperienceLevelMatch*d.ExperienceLevelMatch +
		WeightQuantification*d.QuantificationScore +
		WeightFormatting*d.FormattingScore
	n := int(math.Round(100 * v))
	return min(100, max(0, n))
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return math.Min(1, num/den)
}

func hardSkills(ks KeywordSet, limit int) []string {
	out := []string{}
	for _, k := range ks {
		if k.Category != CategoryHardSkill {
			continue
		}
		out = append(out, k.Term)
		if len(out) == limit {
			break
		}
	}
	return out
}
