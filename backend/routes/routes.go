package routes

import (
	"edusync/backend/config"
	"edusync/backend/controllers"
	"edusync/backend/events"
	"edusync/backend/middleware"
	"edusync/backend/store"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, kv store.KV, cfg *config.Config, pub *events.Publisher) {
	courseRepo := store.NewCourseRepository(kv)
	progressRec := store.NewProgressRecorder(kv, courseRepo)
	resultStore := store.NewQuizResultStore(kv)
	enrollStore := store.NewEnrollmentStore(kv, courseRepo)
	notifStore := store.NewNotificationStore(kv)
	userStore := store.NewUserStore(kv)

	// Auth routes
	authController := controllers.NewAuthController(userStore, enrollStore, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/logout", authController.Logout)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	instructorMiddleware := middleware.InstructorMiddleware(cfg)

	// User routes
	app.Get("/api/user/profile", authMiddleware, authController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, authController.UpdateProfile)

	// Courses routes
	coursesController := controllers.NewCoursesController(courseRepo, enrollStore, progressRec, cfg, pub)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/", instructorMiddleware, coursesController.CreateCourse)
	courses.Put("/:id", instructorMiddleware, coursesController.UpdateCourse)
	courses.Delete("/:id", instructorMiddleware, coursesController.DeleteCourse)
	courses.Get("/:id/contents", coursesController.GetContents)
	courses.Post("/:id/contents", instructorMiddleware, coursesController.AddContent)

	// Quiz routes
	quizzesController := controllers.NewQuizzesController(courseRepo, resultStore, notifStore, cfg, pub)
	courses.Get("/:id/quizzes", quizzesController.GetQuizzes)
	courses.Post("/:id/quizzes", instructorMiddleware, quizzesController.CreateQuiz)
	courses.Post("/:courseId/quizzes/:quizId/attempts", quizzesController.SubmitAttempt)
	courses.Get("/:courseId/quizzes/:quizId/attempts", quizzesController.GetAttempts)
	courses.Get("/:courseId/quizzes/:quizId/attempts/best", quizzesController.GetBestScore)
	courses.Get("/:courseId/quizzes/:quizId/result", quizzesController.GetResult)

	// Progress routes
	progressController := controllers.NewProgressController(progressRec, cfg, pub)
	courses.Get("/:id/progress", progressController.GetCourseProgress)
	courses.Post("/:id/progress", progressController.UpdateCourseProgress)
	app.Get("/api/progress", authMiddleware, progressController.GetUserProgress)

	// Enrollment routes
	enrollmentsController := controllers.NewEnrollmentsController(enrollStore, courseRepo, userStore, notifStore, progressRec, cfg, pub)
	app.Post("/api/enrollments", authMiddleware, enrollmentsController.Enroll)
	app.Get("/api/enrollments", authMiddleware, enrollmentsController.ListEnrollments)
	app.Delete("/api/enrollments/:courseId", authMiddleware, enrollmentsController.Unenroll)

	// Notification routes
	notificationsController := controllers.NewNotificationsController(notifStore, cfg)
	app.Get("/api/notifications", authMiddleware, notificationsController.List)
	app.Put("/api/notifications/:id/read", authMiddleware, notificationsController.MarkRead)
}
