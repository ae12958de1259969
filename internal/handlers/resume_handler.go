package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-ats/internal/models"
	"alfredoptarigan/resume-ats/internal/repositories"
	"alfredoptarigan/resume-ats/internal/services"
)

type ResumeHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	worker         services.Worker
	matcher        services.Matcher
	maxFileSize    int64
	matchLimit     int
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	worker services.Worker,
	matcher services.Matcher,
	maxFileSize int64,
	matchLimit int,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		worker:         worker,
		matcher:        matcher,
		maxFileSize:    maxFileSize,
		matchLimit:     matchLimit,
	}
}

// HandleUpload handles POST /resumes
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "multipart field 'resume' is required (pdf, docx or txt)",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": fmt.Sprintf("resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	fileType, err := services.FileType(file.Filename)
	if err != nil {
		return errorResponse(c, err)
	}

	filename, filePath, err := h.storageService.SaveFile(file, "resume")
	if err != nil {
		return errorResponse(c, err)
	}

	resume := models.Resume{
		ID:               uuid.New(),
		UserID:           UserID(c),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FileType:         fileType,
		FilePath:         filePath,
		FileSize:         file.Size,
		Status:           models.StatusPending,
	}

	if err := h.resumeRepo.Create(&resume); err != nil {
		if derr := h.storageService.DeleteFile(filename); derr != nil {
			log.Printf("⚠️  Failed to clean up %s: %v\n", filename, derr)
		}
		return errorResponse(c, err)
	}

	h.worker.Enqueue(resume.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.UploadResponse{
		ID:           resume.ID.String(),
		Filename:     resume.Filename,
		OriginalName: resume.OriginalFileName,
		FileType:     resume.FileType,
		Status:       resume.Status,
	})
}

// HandleList handles GET /resumes
func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	resumes, err := h.resumeRepo.ListByUser(UserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"resumes": resumes,
		"total":   len(resumes),
	})
}

// HandleGet handles GET /resumes/:id
func (h *ResumeHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	resume, err := h.resumeRepo.FindForUser(UserID(c), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resume)
}

// HandleDelete handles DELETE /resumes/:id
func (h *ResumeHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	userID := UserID(c)
	resume, err := h.resumeRepo.FindForUser(userID, id)
	if err != nil {
		return errorResponse(c, err)
	}
	if err := h.resumeRepo.Delete(userID, id); err != nil {
		return errorResponse(c, err)
	}
	if err := h.storageService.DeleteFile(resume.Filename); err != nil {
		log.Printf("⚠️  Failed to delete file of resume %s: %v\n", id, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleMatches handles GET /resumes/:id/matches
func (h *ResumeHandler) HandleMatches(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	limit := c.QueryInt("limit", h.matchLimit)
	if limit <= 0 || limit > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "limit must be between 1 and 100",
		})
	}

	resp, err := h.matcher.Match(c.UserContext(), UserID(c), id, limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}
