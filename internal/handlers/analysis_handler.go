package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-ats/internal/models"
	"alfredoptarigan/resume-ats/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalysisHandler struct {
	analysisService services.AnalysisService
	coachService    services.CoachService
}

// NewAnalysisHandler builds the handler. coachService may be nil when no LLM is
// configured; coaching requests then answer 503.
func NewAnalysisHandler(analysisService services.AnalysisService, coachService services.CoachService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		coachService:    coachService,
	}
}

// HandleCreate handles POST /analyses
func (h *AnalysisHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	analysis, err := h.analysisService.Analyze(c.UserContext(), UserID(c), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(analysis)
}

// HandleList handles GET /analyses
func (h *AnalysisHandler) HandleList(c *fiber.Ctx) error {
	analyses, err := h.analysisService.List(UserID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	summaries := make([]models.AnalysisSummary, len(analyses))
	for i := range analyses {
		summaries[i] = analyses[i].Summary()
	}
	return c.JSON(fiber.Map{
		"analyses": summaries,
		"total":    len(summaries),
	})
}

// HandleGet handles GET /analyses/:id
func (h *AnalysisHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisService.Get(UserID(c), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(analysis)
}

// HandleDelete handles DELETE /analyses/:id
func (h *AnalysisHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	if err := h.analysisService.Delete(UserID(c), id); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleExport handles GET /analyses/export
func (h *AnalysisHandler) HandleExport(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.analysisService.Export(UserID(c), &buf); err != nil {
		return errorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="analyses_%s.xlsx"`, time.Now().Format("20060102")))
	return c.Send(buf.Bytes())
}

// HandleCoaching handles GET /analyses/:id/coaching
func (h *AnalysisHandler) HandleCoaching(c *fiber.Ctx) error {
	if h.coachService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "coaching is not configured",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	resp, err := h.coachService.Coach(c.UserContext(), UserID(c), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}
