package handlers

import "github.com/gofiber/fiber/v2"

// Register mounts every API route under /api/v1.
func Register(app *fiber.App, resumes *ResumeHandler, analyses *AnalysisHandler, jobs *JobHandler, matching *MatchingHandler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "resume-ats",
		})
	})

	api := app.Group("/api/v1", RequireUser)

	api.Post("/resumes", resumes.HandleUpload)
	api.Get("/resumes", resumes.HandleList)
	api.Get("/resumes/:id", resumes.HandleGet)
	api.Delete("/resumes/:id", resumes.HandleDelete)
	api.Get("/resumes/:id/matches", resumes.HandleMatches)

	api.Post("/analyses", analyses.HandleCreate)
	api.Get("/analyses", analyses.HandleList)
	api.Get("/analyses/export", analyses.HandleExport)
	api.Get("/analyses/:id", analyses.HandleGet)
	api.Delete("/analyses/:id", analyses.HandleDelete)
	api.Get("/analyses/:id/coaching", analyses.HandleCoaching)

	api.Post("/jobs", jobs.HandleCreate)
	api.Get("/jobs", jobs.HandleList)
	api.Get("/jobs/my/posted", jobs.HandleMyPosted)
	api.Get("/jobs/:id", jobs.HandleGet)
	api.Put("/jobs/:id", jobs.HandleUpdate)
	api.Delete("/jobs/:id", jobs.HandleDeactivate)

	api.Post("/matching/resume/:rid/job/:jid", matching.HandleMatchPair)
	api.Get("/matching/job/:id/candidates", matching.HandleCandidates)
}
