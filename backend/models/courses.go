package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string
	Description string
	Category    string // safety, delivery, customer-service, compliance
	Lessons     []Lesson
}

type Lesson struct {
	gorm.Model
	CourseID      uint
	Title         string
	VideoURL      string
	Duration      int // seconds
	SequenceOrder int
	Quiz          Quiz // exactly one; a quiz with zero questions means "no quiz yet"
}
