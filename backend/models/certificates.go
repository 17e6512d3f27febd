package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is minted once per passing quiz submission and never mutated
// afterwards; the owning user may delete it. CourseName and Score are
// denormalized snapshots taken at issue time.
type Certificate struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index" json:"user_id"`
	CourseID    uint           `json:"course_id"`
	CourseName  string         `json:"course_name"`
	Score       float64        `json:"score"`
	Badge       string         `json:"badge"` // gold, silver, bronze
	ArtifactURL string         `json:"artifact_url"`
	IssuedAt    time.Time      `json:"issued_at"`
	ExpiresAt   time.Time      `json:"expires_at"` // issued + 365 days
	CreatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
