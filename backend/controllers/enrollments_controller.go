package controllers

import (
	"errors"
	"fmt"

	"edusync/backend/config"
	"edusync/backend/events"
	"edusync/backend/models"
	"edusync/backend/store"
	"edusync/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type EnrollmentsController struct {
	Enrollments   *store.EnrollmentStore
	Courses       *store.CourseRepository
	Users         *store.UserStore
	Notifications *store.NotificationStore
	Progress      *store.ProgressRecorder
	Cfg           *config.Config
	Events        *events.Publisher
}

func NewEnrollmentsController(enrollments *store.EnrollmentStore, courses *store.CourseRepository, users *store.UserStore, notifications *store.NotificationStore, progress *store.ProgressRecorder, cfg *config.Config, pub *events.Publisher) *EnrollmentsController {
	return &EnrollmentsController{
		Enrollments:   enrollments,
		Courses:       courses,
		Users:         users,
		Notifications: notifications,
		Progress:      progress,
		Cfg:           cfg,
		Events:        pub,
	}
}

func (ec *EnrollmentsController) Enroll(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		CourseID models.ID `json:"courseId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	course, err := ec.Courses.Get(input.CourseID)
	if err != nil {
		return utils.NotFound(c, "Course not found")
	}

	if err := ec.Enrollments.Enroll(user.ID, user.Name, input.CourseID); err != nil {
		return utils.NotFound(c, "Course not found")
	}

	// Уведомляем преподавателя о новом студенте
	if instructor, err := ec.Users.FindByEmail(course.InstructorEmail); err == nil {
		ec.Notifications.Push(instructor.ID, models.Notification{
			Type:     models.NotificationEnrollment,
			CourseID: course.ID,
			Message:  fmt.Sprintf("%s enrolled in %s", user.Name, course.Title),
		})
	}

	ec.Events.Publish("enrollment.created", fiber.Map{
		"userId":   user.ID,
		"courseId": course.ID,
	})

	return c.JSON(fiber.Map{
		"message":       "Enrolled",
		"courseId":      course.ID,
		"enrolledCount": ec.Enrollments.RecountEnrollments(course.ID),
	})
}

func (ec *EnrollmentsController) ListEnrollments(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	result := make([]fiber.Map, 0)
	for _, courseID := range ec.Enrollments.List(user.ID) {
		course, err := ec.Courses.Get(courseID)
		if err != nil {
			// A stale id can outlive its course; skip it rather than fail.
			continue
		}

		percent, _ := ec.Progress.CourseProgressPercent(courseID)
		result = append(result, fiber.Map{
			"id":             course.ID,
			"title":          course.Title,
			"description":    course.Description,
			"instructorName": course.InstructorName,
			"progress":       percent,
			"contentCount":   len(course.Contents),
			"quizCount":      len(course.Quizzes),
		})
	}

	return c.JSON(result)
}

func (ec *EnrollmentsController) Unenroll(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := models.ParseID(c.Params("courseId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	if err := ec.Enrollments.Unenroll(user.ID, user.Name, courseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Enrollment not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}

	ec.Events.Publish("enrollment.removed", fiber.Map{
		"userId":   user.ID,
		"courseId": courseID,
	})

	return c.JSON(fiber.Map{
		"message": "Unenrolled",
	})
}
