package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ats/internal/models"
	"alfredoptarigan/resume-ats/internal/repositories"
)

const coachingTemperature = 0.4

// CoachService turns a stored analysis into LLM coaching. Nothing is persisted.
type CoachService interface {
	Coach(ctx context.Context, userID string, analysisID uuid.UUID) (*models.CoachingResponse, error)
}

type coachService struct {
	analysisRepo  repositories.AnalysisRepository
	generator     TextGenerator
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewCoachService(analysisRepo repositories.AnalysisRepository, generator TextGenerator, maxRetries int) CoachService {
	return &coachService{
		analysisRepo:  analysisRepo,
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

func (c *coachService) Coach(ctx context.Context, userID string, analysisID uuid.UUID) (*models.CoachingResponse, error) {
	analysis, err := c.analysisRepo.FindForUser(userID, analysisID)
	if err != nil {
		return nil, err
	}

	prompt := c.promptBuilder.BuildCoachingPrompt(analysis)
	slog.DebugContext(ctx, "📝 coaching prompt built", "analysis_id", analysisID, "chars", len(prompt))

	response, err := c.generator.GenerateTextWithRetry(ctx, prompt, coachingTemperature, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate coaching: %w", err)
	}

	report, err := parseCoachingReport(response)
	if err != nil {
		slog.WarnContext(ctx, "⚠️ coaching response was not JSON, returning it as summary", "error", err)
		report = &models.CoachingReport{Summary: strings.TrimSpace(response)}
	}

	return &models.CoachingResponse{
		AnalysisID: analysis.ID.String(),
		ATSScore:   analysis.ATSScore,
		Coaching:   report,
	}, nil
}

func parseCoachingReport(response string) (*models.CoachingReport, error) {
	var report models.CoachingReport
	if err := json.Unmarshal([]byte(extractJSON(response)), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if report.Summary == "" && len(report.PriorityActions) == 0 {
		return nil, fmt.Errorf("coaching response has no content")
	}
	return &report, nil
}

// extractJSON strips markdown fences and anything around the outermost JSON object.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return text
}
