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

type QuizzesController struct {
	Courses       *store.CourseRepository
	Results       *store.QuizResultStore
	Notifications *store.NotificationStore
	Cfg           *config.Config
	Events        *events.Publisher
}

func NewQuizzesController(courses *store.CourseRepository, results *store.QuizResultStore, notifications *store.NotificationStore, cfg *config.Config, pub *events.Publisher) *QuizzesController {
	return &QuizzesController{Courses: courses, Results: results, Notifications: notifications, Cfg: cfg, Events: pub}
}

func (qc *QuizzesController) GetQuizzes(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserFromToken(c, qc.Cfg); err != nil {
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

	course, err := qc.Courses.Get(courseID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	return c.JSON(course.Quizzes)
}

func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, qc.Cfg)
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
		Title        string            `json:"title"`
		Description  string            `json:"description"`
		PassingScore int               `json:"passingScore"`
		Questions    []models.Question `json:"questions"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if fieldErrors := validateQuiz(input.Title, input.Questions); len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	course, err := qc.Courses.Get(courseID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}
	if course.InstructorEmail != user.Email {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to add quizzes to this course",
		})
	}

	quiz, err := qc.Courses.AddQuiz(courseID, models.Quiz{
		Title:        input.Title,
		Description:  input.Description,
		PassingScore: input.PassingScore,
		Questions:    input.Questions,
	})
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Quiz created",
		"quiz":    quiz,
	})
}

// SubmitAttempt validates, scores and records one quiz submission. Nothing
// is written when validation fails: a submission with any unanswered
// question leaves the store untouched.
func (qc *QuizzesController) SubmitAttempt(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := models.ParseID(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}
	quizID, err := models.ParseID(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz ID",
		})
	}

	var input struct {
		// null answers count as unanswered, matching the client's form state
		Answers map[int]*int `json:"answers"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	quiz, err := qc.Courses.FindQuiz(courseID, quizID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quiz not found",
		})
	}

	answers := make(map[int]int, len(input.Answers))
	for index, answer := range input.Answers {
		if answer != nil {
			answers[index] = *answer
		}
	}

	result, err := store.Score(quiz, answers)
	if err != nil {
		if errors.Is(err, store.ErrUnanswered) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please answer all questions before submitting",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not score submission",
		})
	}
	result.CourseID = courseID

	result = qc.Results.RecordAttempt(user.ID, result)

	qc.Notifications.Push(user.ID, models.Notification{
		Type:     models.NotificationQuizCompleted,
		CourseID: courseID,
		Message:  fmt.Sprintf("You scored %d/%d on %s", result.Score, result.TotalMarks, quiz.Title),
	})
	qc.Events.Publish("quiz.completed", result)

	return c.JSON(fiber.Map{
		"message": "Attempt recorded",
		"result":  result,
	})
}

func (qc *QuizzesController) GetAttempts(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	quizID, err := models.ParseID(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz ID",
		})
	}

	attempts := qc.Results.AttemptsForQuiz(user.ID, quizID)
	if attempts == nil {
		attempts = []models.QuizAttempt{}
	}
	return c.JSON(attempts)
}

func (qc *QuizzesController) GetBestScore(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	quizID, err := models.ParseID(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz ID",
		})
	}

	best, ok := qc.Results.BestScore(user.ID, quizID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No attempts recorded for this quiz",
		})
	}

	return c.JSON(fiber.Map{
		"quizId":         quizID,
		"bestPercentage": best,
	})
}

func (qc *QuizzesController) GetResult(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	quizID, err := models.ParseID(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz ID",
		})
	}

	result, ok := qc.Results.LatestResult(user.ID, quizID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No result recorded for this quiz",
		})
	}

	return c.JSON(result)
}

func validateQuiz(title string, questions []models.Question) map[string]string {
	fieldErrors := map[string]string{}
	if title == "" {
		fieldErrors["title"] = "required"
	}
	if len(questions) == 0 {
		fieldErrors["questions"] = "at least one question is required"
		return fieldErrors
	}
	for i, q := range questions {
		if q.Question == "" {
			fieldErrors[fmt.Sprintf("questions[%d].question", i)] = "required"
		}
		if len(q.Options) != 4 {
			fieldErrors[fmt.Sprintf("questions[%d].options", i)] = "exactly four options are required"
		} else {
			for j, option := range q.Options {
				if option == "" {
					fieldErrors[fmt.Sprintf("questions[%d].options[%d]", i, j)] = "required"
				}
			}
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			fieldErrors[fmt.Sprintf("questions[%d].correctAnswer", i)] = "must be an option index 0-3"
		}
		if q.Marks <= 0 {
			fieldErrors[fmt.Sprintf("questions[%d].marks", i)] = "must be positive"
		}
	}
	return fieldErrors
}
