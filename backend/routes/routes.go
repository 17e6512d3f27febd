package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gigacademy/backend/config"
	"gigacademy/backend/controllers"
	"gigacademy/backend/middleware"
	"gigacademy/backend/renderer"
	"gigacademy/backend/repository"
	"gigacademy/backend/training"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	// Training core wiring
	content := repository.NewCourseRepo(db)
	store := repository.NewProgressStore(db)
	tracker := training.NewTracker(content, store, logger)
	issuer := training.NewIssuer(store, renderer.NewPNG(cfg.CertDir, cfg.CertFont), logger)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, content, tracker, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)

	// Training routes
	trainingController := controllers.NewTrainingController(tracker, issuer, content, cfg)
	courses.Post("/:id/lessons/:lessonId/watch", trainingController.RecordWatch)
	courses.Get("/:id/lessons/:lessonId/access", trainingController.QuizAccess)
	courses.Post("/:id/lessons/:lessonId/submit", trainingController.SubmitQuiz)
	courses.Post("/:id/lessons/:lessonId/complete", trainingController.MarkCompleted)
	app.Get("/api/progress", authMiddleware, trainingController.GetProgress)
	app.Get("/api/certificates", authMiddleware, trainingController.GetCertificates)
	app.Delete("/api/certificates/:certId", authMiddleware, trainingController.DeleteCertificate)

	// Admin routes for course content
	adminCourses := app.Group("/api/admin/courses", authMiddleware, adminMiddleware)
	adminCourses.Post("/", coursesController.CreateCourse)
	adminCourses.Post("/:id/lessons", coursesController.AddLesson)
	adminCourses.Put("/:id/lessons/:lessonId", coursesController.UpdateLesson)
	adminCourses.Post("/:id/lessons/:lessonId/questions", coursesController.AddQuestion)

	// Admin dashboard overview
	overviewController := controllers.NewOverviewController(db, cfg)
	app.Get("/api/admin/overview", authMiddleware, adminMiddleware, overviewController.GetTrainingOverview)
}
