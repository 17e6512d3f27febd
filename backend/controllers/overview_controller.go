package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gigacademy/backend/config"
	"gigacademy/backend/models"
)

// OverviewController backs the admin dashboard's training panel with lightly
// aggregated counts. Everything here is presentation glue; the training core
// never depends on it.
type OverviewController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewOverviewController(db *gorm.DB, cfg *config.Config) *OverviewController {
	return &OverviewController{DB: db, Cfg: cfg}
}

// GetTrainingOverview returns platform-wide training aggregates.
func (oc *OverviewController) GetTrainingOverview(c *fiber.Ctx) error {
	var totalUsers int64
	oc.DB.Model(&models.User{}).Count(&totalUsers)

	var totalCourses int64
	oc.DB.Model(&models.Course{}).Count(&totalCourses)

	var totalLessons int64
	oc.DB.Model(&models.Lesson{}).Count(&totalLessons)

	var certificatesIssued int64
	oc.DB.Model(&models.Certificate{}).Count(&certificatesIssued)

	var lessonsCompleted int64
	oc.DB.Model(&models.Progress{}).Where("completed = ?", true).Count(&lessonsCompleted)

	var avgBestScore float64
	oc.DB.Model(&models.Progress{}).
		Select("COALESCE(AVG(best_score), 0)").
		Where("attempts > 0").
		Scan(&avgBestScore)

	return c.JSON(fiber.Map{
		"total_users":         totalUsers,
		"total_courses":       totalCourses,
		"total_lessons":       totalLessons,
		"lessons_completed":   lessonsCompleted,
		"certificates_issued": certificatesIssued,
		"avg_best_score":      avgBestScore,
	})
}
