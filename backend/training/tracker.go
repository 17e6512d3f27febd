package training

import (
	"log"
	"time"

	"gigacademy/backend/models"
)

// Tracker turns watch events, quiz submissions and manual completions into
// progress updates. Every operation reads the user's whole progress
// collection, mutates the one relevant record and writes the collection back.
// Two concurrent submissions for the same user therefore race and the second
// write wins in full; acceptable for the single-user dashboard pattern, a
// known lost-update hazard on any multi-session backend.
type Tracker struct {
	content ContentProvider
	store   Store
	logger  *log.Logger
}

func NewTracker(content ContentProvider, store Store, logger *log.Logger) *Tracker {
	return &Tracker{content: content, store: store, logger: logger}
}

// Submission is the outcome of one quiz submission.
type Submission struct {
	Score    float64 `json:"score"`
	Passed   bool    `json:"passed"`
	Attempts int     `json:"attempts"`
}

// RecordWatch marks a lesson's video as watched. Idempotent; does not touch
// attempts, best score or completion.
func (t *Tracker) RecordWatch(userID, courseID, lessonID uint) error {
	if _, err := t.lesson(courseID, lessonID); err != nil {
		return err
	}

	records, err := t.store.GetProgress(userID)
	if err != nil {
		return &StorageError{Op: "load progress", Err: err}
	}

	records, rec := upsertProgress(records, userID, courseID, lessonID)
	rec.Watched = true

	if err := t.store.SaveProgress(userID, records); err != nil {
		return &StorageError{Op: "save progress", Err: err}
	}
	return nil
}

// SubmitQuiz scores an answer set and folds the outcome into progress:
// attempts increments, best score keeps its maximum, watched is forced true
// (submitting implies having watched) and completion, once achieved, is never
// reset by a later failing attempt.
func (t *Tracker) SubmitQuiz(userID, courseID, lessonID uint, answers map[uint]Answer) (Submission, error) {
	lesson, err := t.lesson(courseID, lessonID)
	if err != nil {
		return Submission{}, err
	}

	result := ScoreQuiz(&lesson.Quiz, answers)

	records, err := t.store.GetProgress(userID)
	if err != nil {
		return Submission{}, &StorageError{Op: "load progress", Err: err}
	}

	records, rec := upsertProgress(records, userID, courseID, lessonID)
	rec.Attempts++
	rec.Watched = true
	if result.Score > rec.BestScore {
		rec.BestScore = result.Score
	}
	if result.Passed {
		rec.Completed = true
	}
	now := time.Now().UTC()
	rec.LastAttemptAt = &now

	if err := t.store.SaveProgress(userID, records); err != nil {
		return Submission{}, &StorageError{Op: "save progress", Err: err}
	}

	t.logger.Printf("user %d submitted quiz for lesson %d: score=%.2f passed=%t attempt=%d",
		userID, lessonID, result.Score, result.Passed, rec.Attempts)

	return Submission{Score: result.Score, Passed: result.Passed, Attempts: rec.Attempts}, nil
}

// MarkCompleted is the manual fallback for lessons whose video embed cannot
// signal end of playback: it sets completed and watched without counting a
// scored attempt.
func (t *Tracker) MarkCompleted(userID, courseID, lessonID uint) error {
	if _, err := t.lesson(courseID, lessonID); err != nil {
		return err
	}

	records, err := t.store.GetProgress(userID)
	if err != nil {
		return &StorageError{Op: "load progress", Err: err}
	}

	records, rec := upsertProgress(records, userID, courseID, lessonID)
	rec.Watched = true
	rec.Completed = true

	if err := t.store.SaveProgress(userID, records); err != nil {
		return &StorageError{Op: "save progress", Err: err}
	}
	return nil
}

// Progress returns the user's full progress collection.
func (t *Tracker) Progress(userID uint) ([]models.Progress, error) {
	records, err := t.store.GetProgress(userID)
	if err != nil {
		return nil, &StorageError{Op: "load progress", Err: err}
	}
	return records, nil
}

// QuizAccess returns the unlock gate for a lesson, seeded from stored
// progress: a lesson already watched re-enters directly unlocked.
func (t *Tracker) QuizAccess(userID, courseID, lessonID uint) (*LessonGate, error) {
	if _, err := t.lesson(courseID, lessonID); err != nil {
		return nil, err
	}

	records, err := t.store.GetProgress(userID)
	if err != nil {
		return nil, &StorageError{Op: "load progress", Err: err}
	}

	watched := false
	for i := range records {
		if records[i].CourseID == courseID && records[i].LessonID == lessonID {
			watched = records[i].Watched
			break
		}
	}
	return NewLessonGate(watched), nil
}

func (t *Tracker) lesson(courseID, lessonID uint) (*models.Lesson, error) {
	course, err := t.content.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	for i := range course.Lessons {
		if course.Lessons[i].ID == lessonID {
			return &course.Lessons[i], nil
		}
	}
	return nil, NotFound("lesson", lessonID)
}

// upsertProgress finds the record for (user, course, lesson) or appends a new
// one, returning the collection and a pointer into it.
func upsertProgress(records []models.Progress, userID, courseID, lessonID uint) ([]models.Progress, *models.Progress) {
	for i := range records {
		if records[i].CourseID == courseID && records[i].LessonID == lessonID {
			return records, &records[i]
		}
	}
	records = append(records, models.Progress{
		UserID:   userID,
		CourseID: courseID,
		LessonID: lessonID,
	})
	return records, &records[len(records)-1]
}
