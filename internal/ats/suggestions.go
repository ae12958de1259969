package ats

import (
	"fmt"
	"math"
	"strings"
)

// Suggestion thresholds and markers. The markers are matched verbatim by clients.
const (
	CriticalDensityThreshold = 0.4
	ActionQuantThreshold     = 0.5
	TopMissingKeywords       = 5

	MarkerCritical = "CRITICAL"
	MarkerAction   = "ACTION:"
)

// Suggest turns the gaps of an analysis into ordered suggestions, most critical
// first. Rules run in priority order and several may fire; affirmative feedback
// is only given when none do. A missing required skill is always critical, even
// when overall density clears the threshold.
func Suggest(d DetailedAnalysis, missing KeywordSet, issues []FormattingIssue) []string {
	var out []string

	if d.KeywordDensity < CriticalDensityThreshold || missesRequired(missing) {
		top := missing
		if len(top) > TopMissingKeywords {
			top = top[:TopMissingKeywords]
		}
		msg := fmt.Sprintf("%s: Your résumé covers only %d%% of this job's keyword weight.",
			MarkerCritical, percent(d.KeywordDensity))
		if len(top) > 0 {
			msg += " Add these missing high-priority keywords where they genuinely apply: " +
				strings.Join(top.Terms(), ", ") + "."
		}
		out = append(out, msg)
	}

	if d.QuantificationScore < ActionQuantThreshold {
		out = append(out, fmt.Sprintf(
			"%s Add measurable outcomes to your experience bullets (numbers, percentages or dollar amounts). %d of the %d expected bullets are quantified.",
			MarkerAction, d.QuantifiedBullets, QuantifiedBulletTarget))
	}

	for _, is := range issues {
		out = append(out, is.Message)
	}

	if len(out) == 0 {
		name, v := weakest(d)
		out = append(out, fmt.Sprintf(
			"Strong match for this role. Your weakest area is %s at %d%%; improving it will raise your ATS score further.",
			name, percent(v)))
	}
	return out
}

func missesRequired(missing KeywordSet) bool {
	for _, k := range missing {
		if k.Source == SourceRequired {
			return true
		}
	}
	return false
}

// weakest returns the lowest sub-score, earliest in aggregate-weight order on ties.
func weakest(d DetailedAnalysis) (string, float64) {
	dims := []struct {
		name string
		v    float64
	}{
		{"keyword density", d.KeywordDensity},
		{"industry alignment", d.IndustryAlignment},
		{"experience level match", d.ExperienceLevelMatch},
		{"quantification", d.QuantificationScore},
		{"formatting", d.FormattingScore},
	}
	best := dims[0]
	for _, dim := range dims[1:] {
		if dim.v < best.v {
			best = dim
		}
	}
	return best.name, best.v
}

func percent(v float64) int { return int(math.Round(v * 100)) }
