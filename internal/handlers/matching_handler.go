package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-ats/internal/services"
)

type MatchingHandler struct {
	matcher      services.Matcher
	defaultLimit int
}

func NewMatchingHandler(matcher services.Matcher, defaultLimit int) *MatchingHandler {
	return &MatchingHandler{
		matcher:      matcher,
		defaultLimit: defaultLimit,
	}
}

// HandleMatchPair handles POST /matching/resume/:rid/job/:jid
func (h *MatchingHandler) HandleMatchPair(c *fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("rid"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}
	jobID, err := uuid.Parse(c.Params("jid"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	match, err := h.matcher.MatchJob(c.UserContext(), UserID(c), resumeID, jobID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(match)
}

// HandleCandidates handles GET /matching/job/:id/candidates
func (h *MatchingHandler) HandleCandidates(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	limit := c.QueryInt("limit", h.defaultLimit)
	if limit <= 0 || limit > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "limit must be between 1 and 100",
		})
	}

	resp, err := h.matcher.RankCandidates(c.UserContext(), UserID(c), jobID, limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}
