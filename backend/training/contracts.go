// Package training is the assessment and certification core: it scores quiz
// submissions, tracks per-user lesson progress, gates quiz entry on video
// completion and issues completion certificates. Content, persistence and
// artifact rendering are collaborators injected through the interfaces below.
package training

import (
	"time"

	"gigacademy/backend/models"
)

// ContentProvider supplies immutable course definitions. Implementations must
// return fresh copies on every call; callers may mutate the result freely.
type ContentProvider interface {
	GetCourse(id uint) (*models.Course, error)
	GetCourses() ([]models.Course, error)
}

// Store persists per-user progress and certificate collections. Progress is
// written back whole (last write wins, no field-level update); there are no
// transactional guarantees beyond that.
type Store interface {
	GetProgress(userID uint) ([]models.Progress, error)
	SaveProgress(userID uint, records []models.Progress) error
	GetCertificates(userID uint) ([]models.Certificate, error)
	SaveCertificate(userID uint, cert models.Certificate) error
	DeleteCertificate(userID uint, certID string) error
}

// DocumentRenderer produces the visual certificate artifact and returns a
// reference to it. It may fail independently of scoring and progress.
type DocumentRenderer interface {
	Render(userID uint, courseName string, score float64, issuedAt time.Time) (string, error)
}
