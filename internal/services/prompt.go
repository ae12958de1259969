package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-ats/internal/models"
)

// maxPromptResumeRunes keeps long résumés from crowding out the instructions.
const maxPromptResumeRunes = 12000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCoachingPrompt asks the model to explain a stored analysis and rewrite the
// weakest bullets. The engine's numbers are given as facts; the model must not
// rescore.
func (pb *PromptBuilder) BuildCoachingPrompt(a *models.Analysis) string {
	d := a.Detailed.Data()
	title := a.JobTitle
	if title == "" {
		title = "the target"
	}

	return fmt.Sprintf(`You are an expert career coach helping a candidate tailor their résumé for %s position%s.

An applicant tracking system already scored this résumé. Treat these results as fixed facts:
- ATS score: %d/100
- Keyword density: %.0f%%
- Industry alignment: %.0f%%
- Experience level match: %.0f%% (résumé level: %s, job level: %s)
- Quantification: %.0f%% (%d quantified bullets)
- Formatting: %.0f%% (issues: %s)
- Matched keywords: %s
- Missing keywords: %s

Engine suggestions:
%s

JOB DESCRIPTION:
%s

CANDIDATE RÉSUMÉ:
%s

Return your response in the following JSON format:
{
  "summary": "<3-4 sentences on how well the résumé fits and what matters most>",
  "priority_actions": ["<concrete action>", "..."],
  "bullet_rewrites": [{"original": "<bullet from the résumé>", "improved": "<stronger, quantified version>"}]
}

Give at most 5 priority actions and 3 bullet rewrites. Only suggest keywords the candidate can honestly claim.`,
		title, companySuffix(a.CompanyName),
		a.ATSScore,
		d.KeywordDensity*100,
		d.IndustryAlignment*100,
		d.ExperienceLevelMatch*100, d.ResumeLevel, d.JobLevel,
		d.QuantificationScore*100, d.QuantifiedBullets,
		d.FormattingScore*100, listOrNone(d.FormattingIssues),
		listOrNone(a.StrongKeywords),
		listOrNone(a.MissingKeywords),
		numbered(a.Suggestions),
		a.JobDescription,
		truncateRunes(a.ResumeText, maxPromptResumeRunes),
	)
}

func companySuffix(company string) string {
	if company == "" {
		return ""
	}
	return " at " + company
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func numbered(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = fmt.Sprintf("%d. %s", i+1, s)
	}
	return strings.Join(parts, "\n")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "\n[truncated]"
}
