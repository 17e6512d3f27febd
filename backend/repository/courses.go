// Package repository implements the training collaborator contracts on GORM.
package repository

import (
	"errors"

	"gorm.io/gorm"

	"gigacademy/backend/models"
	"gigacademy/backend/training"
)

// CourseRepo serves immutable course definitions. Every read loads fresh rows
// into new structs, so callers never alias the repository's storage.
type CourseRepo struct {
	DB *gorm.DB
}

func NewCourseRepo(db *gorm.DB) *CourseRepo {
	return &CourseRepo{DB: db}
}

func (r *CourseRepo) GetCourse(id uint) (*models.Course, error) {
	var course models.Course
	err := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order")
		}).
		Preload("Lessons.Quiz").
		Preload("Lessons.Quiz.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order")
		}).
		Preload("Lessons.Quiz.Questions.Options").
		First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, training.NotFound("course", id)
		}
		return nil, &training.StorageError{Op: "load course", Err: err}
	}
	return &course, nil
}

func (r *CourseRepo) GetCourses() ([]models.Course, error) {
	var courses []models.Course
	err := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order")
		}).
		Find(&courses).Error
	if err != nil {
		return nil, &training.StorageError{Op: "load courses", Err: err}
	}
	return courses, nil
}
