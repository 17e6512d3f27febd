package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"gigacademy/backend/models"
)

func question(id uint, qType string, weight float64) models.Question {
	return models.Question{
		Model:  gorm.Model{ID: id},
		Text:   "q",
		Type:   qType,
		Weight: weight,
	}
}

func option(id uint, correct bool) models.Option {
	return models.Option{
		Model:     gorm.Model{ID: id},
		Text:      "opt",
		IsCorrect: correct,
	}
}

func threshold(v float64) *float64 { return &v }

// mixedQuiz has one of each question type: single (option 11 correct),
// multi (21/22/23 correct out of four, weight 2) and free-text.
func mixedQuiz() *models.Quiz {
	single := question(1, models.QuestionSingleChoice, 1)
	single.Options = []models.Option{option(11, true), option(12, false), option(13, false)}

	multi := question(2, models.QuestionMultiChoice, 2)
	multi.Options = []models.Option{option(21, true), option(22, true), option(23, true), option(24, false)}

	text := question(3, models.QuestionFreeText, 1)
	text.AcceptedAnswers = `["red","Red "]`

	return &models.Quiz{
		Title:     "Road safety quiz",
		Questions: []models.Question{single, multi, text},
	}
}

func TestScoreQuizAllCorrect(t *testing.T) {
	result := ScoreQuiz(mixedQuiz(), map[uint]Answer{
		1: SingleAnswer(11),
		2: MultiAnswer(21, 22, 23),
		3: TextAnswer("red"),
	})

	assert.Equal(t, 100.00, result.Score)
	assert.True(t, result.Passed)
}

func TestScoreQuizNoAnswers(t *testing.T) {
	result := ScoreQuiz(mixedQuiz(), nil)

	assert.Equal(t, 0.00, result.Score)
	assert.False(t, result.Passed)
}

func TestScoreQuizNoAnswersZeroThreshold(t *testing.T) {
	quiz := mixedQuiz()
	quiz.PassThreshold = threshold(0)

	result := ScoreQuiz(quiz, nil)

	assert.Equal(t, 0.00, result.Score)
	assert.True(t, result.Passed)
}

func TestScoreQuizEmptyQuiz(t *testing.T) {
	quiz := &models.Quiz{Title: "no questions yet"}

	result := ScoreQuiz(quiz, map[uint]Answer{1: SingleAnswer(11)})
	assert.Equal(t, 0.00, result.Score)
	assert.False(t, result.Passed)

	quiz.PassThreshold = threshold(0)
	assert.True(t, ScoreQuiz(quiz, nil).Passed)
}

func TestScoreQuizHalfRight(t *testing.T) {
	q1 := question(1, models.QuestionSingleChoice, 1)
	q1.Options = []models.Option{option(11, true), option(12, false)}
	q2 := question(2, models.QuestionSingleChoice, 1)
	q2.Options = []models.Option{option(21, true), option(22, false)}
	quiz := &models.Quiz{Questions: []models.Question{q1, q2}}

	result := ScoreQuiz(quiz, map[uint]Answer{
		1: SingleAnswer(11),
		2: SingleAnswer(22),
	})

	assert.Equal(t, 50.00, result.Score)
	assert.False(t, result.Passed) // default threshold is 85
}

func TestScoreQuizMultiChoicePartialCredit(t *testing.T) {
	multi := question(2, models.QuestionMultiChoice, 2)
	multi.Options = []models.Option{option(21, true), option(22, true), option(23, true), option(24, false)}
	quiz := &models.Quiz{Questions: []models.Question{multi}}

	// 2 correct + 1 incorrect out of T=3: credit = 2*max(0,2-1)/3, score = (2/3)/2.
	result := ScoreQuiz(quiz, map[uint]Answer{2: MultiAnswer(21, 22, 24)})

	assert.Equal(t, 33.33, result.Score)
}

func TestScoreQuizMultiChoiceNetClampedAtZero(t *testing.T) {
	multi := question(2, models.QuestionMultiChoice, 2)
	multi.Options = []models.Option{option(21, true), option(22, false), option(23, false)}
	quiz := &models.Quiz{Questions: []models.Question{multi}}

	result := ScoreQuiz(quiz, map[uint]Answer{2: MultiAnswer(21, 22, 23)})

	assert.Equal(t, 0.00, result.Score)
}

func TestScoreQuizMultiChoiceDedupesAndRejectsUnknownIDs(t *testing.T) {
	multi := question(2, models.QuestionMultiChoice, 1)
	multi.Options = []models.Option{option(21, true), option(22, true), option(23, false)}
	quiz := &models.Quiz{Questions: []models.Question{multi}, PassThreshold: threshold(0)}

	// Duplicate picks count once.
	duped := ScoreQuiz(quiz, map[uint]Answer{2: MultiAnswer(21, 21)})
	once := ScoreQuiz(quiz, map[uint]Answer{2: MultiAnswer(21)})
	assert.Equal(t, once.Score, duped.Score)

	// An id that names no option of the question is an incorrect pick.
	result := ScoreQuiz(quiz, map[uint]Answer{2: MultiAnswer(21, 22, 99)})
	assert.Equal(t, 50.00, result.Score) // (2-1)/2
}

func TestScoreQuizMultiChoiceNoCorrectOptions(t *testing.T) {
	multi := question(2, models.QuestionMultiChoice, 1)
	multi.Options = []models.Option{option(21, false), option(22, false)}
	quiz := &models.Quiz{Questions: []models.Question{multi}}

	result := ScoreQuiz(quiz, map[uint]Answer{2: MultiAnswer(21)})

	assert.Equal(t, 0.00, result.Score)
}

func TestScoreQuizFreeTextNormalization(t *testing.T) {
	text := question(3, models.QuestionFreeText, 1)
	text.AcceptedAnswers = `["red","Red "]`
	quiz := &models.Quiz{Questions: []models.Question{text}, PassThreshold: threshold(50)}

	assert.True(t, ScoreQuiz(quiz, map[uint]Answer{3: TextAnswer(" RED")}).Passed)
	assert.False(t, ScoreQuiz(quiz, map[uint]Answer{3: TextAnswer("blue")}).Passed)
}

func TestScoreQuizKindMismatchEarnsNothing(t *testing.T) {
	quiz := mixedQuiz()

	result := ScoreQuiz(quiz, map[uint]Answer{
		1: TextAnswer("red"), // text payload against a single-choice question
		2: MultiAnswer(21, 22, 23),
		3: TextAnswer("red"),
	})

	// Only the multi (weight 2) and text (weight 1) questions score.
	assert.Equal(t, 75.00, result.Score)
}

func TestScoreQuizUntaggedAnswerResolvedByQuestionType(t *testing.T) {
	quiz := mixedQuiz()

	result := ScoreQuiz(quiz, map[uint]Answer{
		1: {OptionID: 11},
		2: {OptionIDs: []uint{21, 22, 23}},
		3: {Text: "red"},
	})

	assert.Equal(t, 100.00, result.Score)
}

func TestScoreQuizMissingAnswerStillWeighted(t *testing.T) {
	quiz := mixedQuiz()

	// Single (1/4 of total weight) answered correctly, rest missing.
	result := ScoreQuiz(quiz, map[uint]Answer{1: SingleAnswer(11)})

	assert.Equal(t, 25.00, result.Score)
	assert.False(t, result.Passed)
}

func TestScoreQuizRoundsAtTotalStageOnly(t *testing.T) {
	single := question(1, models.QuestionSingleChoice, 1)
	single.Options = []models.Option{option(11, true)}
	multi := question(2, models.QuestionMultiChoice, 1)
	multi.Options = []models.Option{option(21, true), option(22, true), option(23, true)}
	quiz := &models.Quiz{Questions: []models.Question{single, multi}}

	// Credit 1 + 2/3 over weight 2: 83.333... rounds to 83.33.
	result := ScoreQuiz(quiz, map[uint]Answer{
		1: SingleAnswer(11),
		2: MultiAnswer(21, 22),
	})

	assert.Equal(t, 83.33, result.Score)
}

func TestScoreQuizDefaultWeightAndThreshold(t *testing.T) {
	q := question(1, models.QuestionSingleChoice, 0) // unset weight defaults to 1
	q.Options = []models.Option{option(11, true)}
	quiz := &models.Quiz{Questions: []models.Question{q}}

	result := ScoreQuiz(quiz, map[uint]Answer{1: SingleAnswer(11)})

	assert.Equal(t, 100.00, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, models.DefaultPassThreshold, quiz.EffectiveThreshold())
}

func TestScoreQuizBounds(t *testing.T) {
	quiz := mixedQuiz()
	answerSets := []map[uint]Answer{
		nil,
		{1: SingleAnswer(12), 2: MultiAnswer(24), 3: TextAnswer("nope")},
		{1: SingleAnswer(11), 2: MultiAnswer(21, 24), 3: TextAnswer("Red")},
		{2: MultiAnswer(21, 22, 23, 24)},
	}

	for _, answers := range answerSets {
		result := ScoreQuiz(quiz, answers)
		assert.GreaterOrEqual(t, result.Score, 0.00)
		assert.LessOrEqual(t, result.Score, 100.00)
		assert.Equal(t, result.Score >= quiz.EffectiveThreshold(), result.Passed)
	}
}
