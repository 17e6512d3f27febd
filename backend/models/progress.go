package models

import (
	"time"

	"gorm.io/gorm"
)

// Progress is one user's state for one lesson. BestScore never decreases and
// Completed is never reset once achieved; Attempts counts quiz submissions
// only, not watch events or manual unlocks.
type Progress struct {
	gorm.Model    `json:"-"`
	UserID        uint       `gorm:"index:idx_progress_key,unique" json:"user_id"`
	CourseID      uint       `gorm:"index:idx_progress_key,unique" json:"course_id"`
	LessonID      uint       `gorm:"index:idx_progress_key,unique" json:"lesson_id"`
	Watched       bool       `json:"watched"`
	Completed     bool       `json:"completed"`
	BestScore     float64    `json:"best_score"` // 0-100
	Attempts      int        `json:"attempts"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
}
