package repository

import (
	"gorm.io/gorm"

	"gigacademy/backend/models"
	"gigacademy/backend/training"
)

// ProgressStore is the per-user key-value store adapter. SaveProgress replaces
// the user's whole collection (last write wins), matching the tracker's
// read-modify-write cycle; nothing stronger is guaranteed.
type ProgressStore struct {
	DB *gorm.DB
}

func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{DB: db}
}

func (s *ProgressStore) GetProgress(userID uint) ([]models.Progress, error) {
	var records []models.Progress
	if err := s.DB.Where("user_id = ?", userID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *ProgressStore) SaveProgress(userID uint, records []models.Progress) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		// Hard delete: soft-deleted rows would collide with the unique
		// (user, course, lesson) index on re-insert.
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Progress{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

func (s *ProgressStore) GetCertificates(userID uint) ([]models.Certificate, error) {
	var certs []models.Certificate
	err := s.DB.Where("user_id = ?", userID).Order("issued_at DESC").Find(&certs).Error
	if err != nil {
		return nil, err
	}
	return certs, nil
}

func (s *ProgressStore) SaveCertificate(userID uint, cert models.Certificate) error {
	cert.UserID = userID
	return s.DB.Create(&cert).Error
}

func (s *ProgressStore) DeleteCertificate(userID uint, certID string) error {
	res := s.DB.Where("user_id = ? AND id = ?", userID, certID).Delete(&models.Certificate{})
	if res.Error != nil {
		return &training.StorageError{Op: "delete certificate", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return training.NotFound("certificate", certID)
	}
	return nil
}
