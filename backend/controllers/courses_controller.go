package controllers

import (
	"errors"
	"strings"

	"edusync/backend/config"
	"edusync/backend/events"
	"edusync/backend/models"
	"edusync/backend/store"
	"edusync/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CoursesController struct {
	Courses     *store.CourseRepository
	Enrollments *store.EnrollmentStore
	Progress    *store.ProgressRecorder
	Cfg         *config.Config
	Events      *events.Publisher
}

func NewCoursesController(courses *store.CourseRepository, enrollments *store.EnrollmentStore, progress *store.ProgressRecorder, cfg *config.Config, pub *events.Publisher) *CoursesController {
	return &CoursesController{Courses: courses, Enrollments: enrollments, Progress: progress, Cfg: cfg, Events: pub}
}

func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserFromToken(c, cc.Cfg); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	title := c.Query("title")
	instructor := c.Query("instructor")

	courses := cc.Courses.LoadAll()
	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		if title != "" && !strings.Contains(strings.ToLower(course.Title), strings.ToLower(title)) {
			continue
		}
		if instructor != "" && course.InstructorEmail != instructor {
			continue
		}

		result = append(result, fiber.Map{
			"id":             course.ID,
			"title":          course.Title,
			"description":    course.Description,
			"videoUrl":       course.VideoURL,
			"instructorName": course.InstructorName,
			"contentCount":   len(course.Contents),
			"quizCount":      len(course.Quizzes),
			"enrolledCount":  len(course.EnrolledStudents),
			"createdAt":      course.CreatedAt,
		})
	}

	return c.JSON(result)
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserFromToken(c, cc.Cfg); err != nil {
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

	course, err := cc.Courses.Get(courseID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	progress, _ := cc.Progress.CourseProgress(courseID)

	return c.JSON(fiber.Map{
		"course":   course,
		"progress": progress,
	})
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		VideoURL    string `json:"videoUrl"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title == "" || input.Description == "" {
		return utils.ValidationError(c, map[string]string{
			"title":       "required",
			"description": "required",
		})
	}

	course := cc.Courses.Add(models.Course{
		Title:           input.Title,
		Description:     input.Description,
		VideoURL:        input.VideoURL,
		InstructorEmail: user.Email,
		InstructorName:  user.Name,
	})

	cc.Events.Publish("course.created", course)

	return c.JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, cc.Cfg)
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
		Title       string `json:"title"`
		Description string `json:"description"`
		VideoURL    string `json:"videoUrl"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	course, err := cc.Courses.Get(courseID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	if course.InstructorEmail != user.Email {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to edit this course",
		})
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.VideoURL != "" {
		course.VideoURL = input.VideoURL
	}

	if err := cc.Courses.Update(course); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update course",
		})
	}

	cc.Events.Publish("course.updated", course)

	return c.JSON(fiber.Map{
		"message": "Course updated",
		"course":  course,
	})
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, cc.Cfg)
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

	course, err := cc.Courses.Get(courseID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	if course.InstructorEmail != user.Email {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to delete this course",
		})
	}

	if err := cc.Courses.Delete(courseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete course",
		})
	}

	cc.Events.Publish("course.deleted", fiber.Map{"courseId": courseID})

	return c.JSON(fiber.Map{
		"message": "Course deleted",
	})
}

func (cc *CoursesController) AddContent(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, cc.Cfg)
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
		Type        string `json:"type"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if fieldErrors := validateContent(input.Type, input.Title, input.URL); len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	course, err := cc.Courses.Get(courseID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}
	if course.InstructorEmail != user.Email {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to add content to this course",
		})
	}

	content, err := cc.Courses.AddContent(courseID, models.Content{
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		URL:         input.URL,
	})
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Content added",
		"content": content,
	})
}

func (cc *CoursesController) GetContents(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserFromToken(c, cc.Cfg); err != nil {
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

	course, err := cc.Courses.Get(courseID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	return c.JSON(course.Contents)
}

func validateContent(contentType, title, url string) map[string]string {
	fieldErrors := map[string]string{}
	if title == "" {
		fieldErrors["title"] = "required"
	}
	switch contentType {
	case models.ContentTypeVideo, models.ContentTypeLink:
		if url == "" {
			fieldErrors["url"] = "required for video and link content"
		}
	case models.ContentTypeFile:
	default:
		fieldErrors["type"] = "must be video, link or file"
	}
	return fieldErrors
}
