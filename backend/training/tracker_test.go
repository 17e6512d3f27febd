package training

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gigacademy/backend/models"
)

var errBoom = errors.New("boom")

type fakeContent struct {
	courses map[uint]*models.Course
}

func (f *fakeContent) GetCourse(id uint) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, NotFound("course", id)
	}
	return course, nil
}

func (f *fakeContent) GetCourses() ([]models.Course, error) {
	var out []models.Course
	for _, c := range f.courses {
		out = append(out, *c)
	}
	return out, nil
}

type fakeStore struct {
	progress map[uint][]models.Progress
	certs    map[uint][]models.Certificate

	failGetProgress bool
	failSave        bool
	failSaveCert    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		progress: make(map[uint][]models.Progress),
		certs:    make(map[uint][]models.Certificate),
	}
}

func (f *fakeStore) GetProgress(userID uint) ([]models.Progress, error) {
	if f.failGetProgress {
		return nil, errBoom
	}
	return append([]models.Progress(nil), f.progress[userID]...), nil
}

func (f *fakeStore) SaveProgress(userID uint, records []models.Progress) error {
	if f.failSave {
		return errBoom
	}
	f.progress[userID] = append([]models.Progress(nil), records...)
	return nil
}

func (f *fakeStore) GetCertificates(userID uint) ([]models.Certificate, error) {
	return append([]models.Certificate(nil), f.certs[userID]...), nil
}

func (f *fakeStore) SaveCertificate(userID uint, cert models.Certificate) error {
	if f.failSaveCert {
		return errBoom
	}
	f.certs[userID] = append(f.certs[userID], cert)
	return nil
}

func (f *fakeStore) DeleteCertificate(userID uint, certID string) error {
	certs := f.certs[userID]
	for i := range certs {
		if certs[i].ID == certID {
			f.certs[userID] = append(certs[:i], certs[i+1:]...)
			return nil
		}
	}
	return NotFound("certificate", certID)
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// deliveryCourse is course 10 with lesson 100 carrying the mixed quiz and
// lesson 200 with an empty quiz.
func deliveryCourse() *fakeContent {
	course := &models.Course{
		Model: gorm.Model{ID: 10},
		Title: "Safe Delivery Basics",
		Lessons: []models.Lesson{
			{Model: gorm.Model{ID: 100}, CourseID: 10, Title: "Road safety", Quiz: *mixedQuiz()},
			{Model: gorm.Model{ID: 200}, CourseID: 10, Title: "No quiz yet", Quiz: models.Quiz{}},
		},
	}
	return &fakeContent{courses: map[uint]*models.Course{10: course}}
}

func allCorrect() map[uint]Answer {
	return map[uint]Answer{
		1: SingleAnswer(11),
		2: MultiAnswer(21, 22, 23),
		3: TextAnswer("red"),
	}
}

func allWrong() map[uint]Answer {
	return map[uint]Answer{
		1: SingleAnswer(12),
		2: MultiAnswer(24),
		3: TextAnswer("blue"),
	}
}

func TestRecordWatchIdempotent(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(deliveryCourse(), store, testLogger())

	require.NoError(t, tracker.RecordWatch(7, 10, 100))
	first := store.progress[7]

	require.NoError(t, tracker.RecordWatch(7, 10, 100))
	second := store.progress[7]

	assert.Equal(t, first, second)
	require.Len(t, second, 1)
	assert.True(t, second[0].Watched)
	assert.False(t, second[0].Completed)
	assert.Equal(t, 0, second[0].Attempts)
	assert.Nil(t, second[0].LastAttemptAt)
}

func TestRecordWatchUnknownLesson(t *testing.T) {
	tracker := NewTracker(deliveryCourse(), newFakeStore(), testLogger())

	assert.True(t, IsNotFound(tracker.RecordWatch(7, 10, 999)))
	assert.True(t, IsNotFound(tracker.RecordWatch(7, 999, 100)))
}

func TestSubmitQuizCountsAttemptsAndKeepsBestScore(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(deliveryCourse(), store, testLogger())

	first, err := tracker.SubmitQuiz(7, 10, 100, allWrong())
	require.NoError(t, err)
	assert.Equal(t, 0.00, first.Score)
	assert.False(t, first.Passed)
	assert.Equal(t, 1, first.Attempts)

	second, err := tracker.SubmitQuiz(7, 10, 100, allCorrect())
	require.NoError(t, err)
	assert.Equal(t, 100.00, second.Score)
	assert.True(t, second.Passed)
	assert.Equal(t, 2, second.Attempts)

	third, err := tracker.SubmitQuiz(7, 10, 100, allWrong())
	require.NoError(t, err)
	assert.Equal(t, 3, third.Attempts)

	rec := store.progress[7][0]
	assert.Equal(t, 100.00, rec.BestScore)
	assert.Equal(t, 3, rec.Attempts)
	assert.True(t, rec.Watched) // submitting implies having watched
	require.NotNil(t, rec.LastAttemptAt)
}

func TestSubmitQuizCompletionIsMonotonic(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(deliveryCourse(), store, testLogger())

	_, err := tracker.SubmitQuiz(7, 10, 100, allCorrect())
	require.NoError(t, err)
	assert.True(t, store.progress[7][0].Completed)

	// A failing re-attempt does not take completion away.
	sub, err := tracker.SubmitQuiz(7, 10, 100, allWrong())
	require.NoError(t, err)
	assert.False(t, sub.Passed)
	assert.True(t, store.progress[7][0].Completed)
	assert.Equal(t, 100.00, store.progress[7][0].BestScore)
}

func TestSubmitQuizEmptyQuizNeverPasses(t *testing.T) {
	tracker := NewTracker(deliveryCourse(), newFakeStore(), testLogger())

	sub, err := tracker.SubmitQuiz(7, 10, 200, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.00, sub.Score)
	assert.False(t, sub.Passed)
	assert.Equal(t, 1, sub.Attempts)
}

func TestSubmitQuizUnknownLesson(t *testing.T) {
	tracker := NewTracker(deliveryCourse(), newFakeStore(), testLogger())

	_, err := tracker.SubmitQuiz(7, 10, 999, allCorrect())
	assert.True(t, IsNotFound(err))
}

func TestSubmitQuizStorageFailures(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(deliveryCourse(), store, testLogger())

	store.failGetProgress = true
	_, err := tracker.SubmitQuiz(7, 10, 100, allCorrect())
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.ErrorIs(t, err, errBoom)

	store.failGetProgress = false
	store.failSave = true
	_, err = tracker.SubmitQuiz(7, 10, 100, allCorrect())
	require.ErrorAs(t, err, &storageErr)

	// Nothing was persisted along the failed paths.
	assert.Empty(t, store.progress[7])
}

func TestMarkCompletedSkipsAttempts(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(deliveryCourse(), store, testLogger())

	require.NoError(t, tracker.MarkCompleted(7, 10, 100))

	rec := store.progress[7][0]
	assert.True(t, rec.Completed)
	assert.True(t, rec.Watched)
	assert.Equal(t, 0, rec.Attempts)
	assert.Equal(t, 0.00, rec.BestScore)
}

func TestProgressKeyedPerLesson(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(deliveryCourse(), store, testLogger())

	require.NoError(t, tracker.RecordWatch(7, 10, 100))
	require.NoError(t, tracker.RecordWatch(7, 10, 200))

	records, err := tracker.Progress(7)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestQuizAccessGate(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(deliveryCourse(), store, testLogger())

	gate, err := tracker.QuizAccess(7, 10, 100)
	require.NoError(t, err)
	assert.Equal(t, GateLocked, gate.State())
	assert.False(t, gate.QuizAllowed())

	require.NoError(t, tracker.RecordWatch(7, 10, 100))

	// Re-entering a watched lesson starts unlocked.
	gate, err = tracker.QuizAccess(7, 10, 100)
	require.NoError(t, err)
	assert.Equal(t, GateUnlocked, gate.State())
	assert.True(t, gate.QuizAllowed())

	_, err = tracker.QuizAccess(7, 10, 999)
	assert.True(t, IsNotFound(err))
}

func TestQuizAccessAfterManualCompletion(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(deliveryCourse(), store, testLogger())

	require.NoError(t, tracker.MarkCompleted(7, 10, 100))

	gate, err := tracker.QuizAccess(7, 10, 100)
	require.NoError(t, err)
	assert.True(t, gate.QuizAllowed())
}
