package training

import (
	"log"
	"time"

	"github.com/google/uuid"

	"gigacademy/backend/models"
)

// certificateValidity is how long an issued certificate stays valid.
const certificateValidity = 365 * 24 * time.Hour

// Issuer mints completion certificates. Every passing submission produces a
// new certificate with a fresh id; there is no dedup against earlier
// certificates for the same course.
type Issuer struct {
	store    Store
	renderer DocumentRenderer
	logger   *log.Logger
}

func NewIssuer(store Store, renderer DocumentRenderer, logger *log.Logger) *Issuer {
	return &Issuer{store: store, renderer: renderer, logger: logger}
}

// CreateCertificate builds, renders and persists a certificate for a passing
// score. A renderer failure is logged and the certificate is stored without
// an artifact reference; the pass outcome already granted to the user is
// never suppressed by it.
func (is *Issuer) CreateCertificate(userID, courseID uint, courseName string, score float64) (*models.Certificate, error) {
	now := time.Now().UTC()
	cert := models.Certificate{
		ID:         uuid.NewString(),
		UserID:     userID,
		CourseID:   courseID,
		CourseName: courseName,
		Score:      score,
		Badge:      badgeForScore(score),
		IssuedAt:   now,
		ExpiresAt:  now.Add(certificateValidity),
	}

	ref, err := is.renderer.Render(userID, courseName, score, now)
	if err != nil {
		is.logger.Printf("certificate %s for user %d: %v", cert.ID, userID, &RenderError{Err: err})
	} else {
		cert.ArtifactURL = ref
	}

	if err := is.store.SaveCertificate(userID, cert); err != nil {
		return nil, &StorageError{Op: "save certificate", Err: err}
	}
	return &cert, nil
}

// Certificates returns all certificates owned by the user.
func (is *Issuer) Certificates(userID uint) ([]models.Certificate, error) {
	certs, err := is.store.GetCertificates(userID)
	if err != nil {
		return nil, &StorageError{Op: "load certificates", Err: err}
	}
	return certs, nil
}

// DeleteCertificate removes one of the user's certificates.
func (is *Issuer) DeleteCertificate(userID uint, certID string) error {
	return is.store.DeleteCertificate(userID, certID)
}

func badgeForScore(score float64) string {
	switch {
	case score >= 95:
		return "gold"
	case score >= 90:
		return "silver"
	default:
		return "bronze"
	}
}
