package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// DefaultPassThreshold applies when a quiz does not set its own threshold.
const DefaultPassThreshold = 85.0

const (
	QuestionSingleChoice = "single"
	QuestionMultiChoice  = "multi"
	QuestionFreeText     = "text"
)

type Quiz struct {
	gorm.Model
	LessonID      uint
	Title         string
	PassThreshold *float64 // percentage; nil means unset (default 85), 0 is a real threshold
	Questions     []Question
}

// EffectiveThreshold returns the quiz threshold, falling back to the default
// when none is set. An explicit 0 means every attempt passes.
func (q *Quiz) EffectiveThreshold() float64 {
	if q.PassThreshold == nil {
		return DefaultPassThreshold
	}
	return *q.PassThreshold
}

type Question struct {
	gorm.Model
	QuizID          uint
	Text            string
	Type            string  // single, multi, text
	Weight          float64 // relative contribution to the total score
	SequenceOrder   int
	Options         []Option // single/multi only
	AcceptedAnswers string   // JSON array of strings, text questions only
}

// EffectiveWeight returns the question weight, defaulting to 1 when unset.
func (q *Question) EffectiveWeight() float64 {
	if q.Weight <= 0 {
		return 1
	}
	return q.Weight
}

// AcceptedList decodes the stored accepted-answer strings.
func (q *Question) AcceptedList() []string {
	var answers []string
	json.Unmarshal([]byte(q.AcceptedAnswers), &answers)
	return answers
}

type Option struct {
	gorm.Model
	QuestionID uint
	Text       string
	IsCorrect  bool
}
