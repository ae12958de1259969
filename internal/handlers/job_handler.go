package handlers

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-ats/internal/models"
	"alfredoptarigan/resume-ats/internal/repositories"
	"alfredoptarigan/resume-ats/internal/services"
)

type JobHandler struct {
	jobRepo repositories.JobRepository
	index   services.JobIndex
}

// NewJobHandler builds the handler. index may be nil when semantic search is off.
func NewJobHandler(jobRepo repositories.JobRepository, index services.JobIndex) *JobHandler {
	return &JobHandler{
		jobRepo: jobRepo,
		index:   index,
	}
}

// HandleCreate handles POST /jobs
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Title) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}
	if strings.TrimSpace(req.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "description is required",
		})
	}

	job := models.Job{
		ID:              uuid.New(),
		PostedBy:        UserID(c),
		Title:           req.Title,
		CompanyName:     req.CompanyName,
		Location:        req.Location,
		Description:     req.Description,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
		ExperienceLevel: req.ExperienceLevel,
		IsActive:        true,
	}
	if err := h.jobRepo.Create(&job); err != nil {
		return errorResponse(c, err)
	}

	indexed := false
	if h.index != nil {
		if err := h.index.IndexJob(c.UserContext(), &job); err != nil {
			slog.Warn("⚠️ failed to index job", "job_id", job.ID, "error", err)
		} else {
			indexed = true
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"job":     job,
		"indexed": indexed,
	})
}

// HandleList handles GET /jobs
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.ListActive(c.QueryInt("limit", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// HandleGet handles GET /jobs/:id
func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(job)
}

// HandleMyPosted handles GET /jobs/my/posted
func (h *JobHandler) HandleMyPosted(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.ListByPoster(UserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// HandleUpdate handles PUT /jobs/:id
func (h *JobHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	var req models.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	job, err := h.jobRepo.FindForPoster(UserID(c), id)
	if err != nil {
		return errorResponse(c, err)
	}
	job.Apply(&req)
	if err := h.jobRepo.Update(job); err != nil {
		return errorResponse(c, err)
	}

	indexed := false
	if h.index != nil && job.IsActive {
		if err := h.index.IndexJob(c.UserContext(), job); err != nil {
			slog.Warn("⚠️ failed to reindex job", "job_id", job.ID, "error", err)
		} else {
			indexed = true
		}
	}

	return c.JSON(fiber.Map{
		"job":     job,
		"indexed": indexed,
	})
}

// HandleDeactivate handles DELETE /jobs/:id
func (h *JobHandler) HandleDeactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if err := h.jobRepo.Deactivate(UserID(c), id); err != nil {
		return errorResponse(c, err)
	}
	if h.index != nil {
		if err := h.index.RemoveJob(c.UserContext(), id); err != nil {
			slog.Warn("⚠️ failed to remove job from index", "job_id", id, "error", err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
