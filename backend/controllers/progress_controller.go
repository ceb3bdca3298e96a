package controllers

import (
	"edusync/backend/config"
	"edusync/backend/events"
	"edusync/backend/models"
	"edusync/backend/store"
	"edusync/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Progress *store.ProgressRecorder
	Cfg      *config.Config
	Events   *events.Publisher
}

func NewProgressController(progress *store.ProgressRecorder, cfg *config.Config, pub *events.Publisher) *ProgressController {
	return &ProgressController{Progress: progress, Cfg: cfg, Events: pub}
}

// GetCourseProgress godoc
// @Summary Get completion state for one course
// @Description Returns the per-content completion map and rounded percentage
// @Tags progress
// @Produce json
// @Success 200 {object} models.CourseProgress
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/progress [get]
func (pc *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserFromToken(c, pc.Cfg); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := models.ParseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	progress, err := pc.Progress.CourseProgress(courseID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	return c.JSON(progress)
}

// UpdateCourseProgress godoc
// @Summary Toggle a content item's completion flag
// @Description Marks content complete or incomplete and refreshes derived progress
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} models.CourseProgress
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/progress [post]
func (pc *ProgressController) UpdateCourseProgress(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := models.ParseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var input struct {
		ContentID models.ID `json:"contentId"`
		Completed bool      `json:"completed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := pc.Progress.SetContentCompleted(input.ContentID, courseID, input.Completed); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	if err := pc.Progress.RecordUserPercent(user.ID, courseID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record progress",
		})
	}

	if input.Completed {
		pc.Events.Publish("content.completed", fiber.Map{
			"userId":    user.ID,
			"courseId":  courseID,
			"contentId": input.ContentID,
		})
	}

	progress, err := pc.Progress.CourseProgress(courseID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	return c.JSON(progress)
}

func (pc *ProgressController) GetUserProgress(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	return c.JSON(fiber.Map{
		"progress": pc.Progress.UserProgress(user.ID),
	})
}
