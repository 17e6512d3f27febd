package training

import (
	"math"
	"strings"

	"gigacademy/backend/models"
)

// AnswerKind tags the payload shape of a submitted answer. It must match the
// question type it answers; a mismatched kind earns no credit.
type AnswerKind string

const (
	AnswerSingle AnswerKind = "single"
	AnswerMulti  AnswerKind = "multi"
	AnswerText   AnswerKind = "text"
)

// Answer is a tagged variant: exactly one payload field is meaningful,
// selected by Kind. An empty Kind is accepted and resolved from the question
// type, for clients that send only the payload.
type Answer struct {
	Kind      AnswerKind `json:"kind,omitempty"`
	OptionID  uint       `json:"option_id,omitempty"`
	OptionIDs []uint     `json:"option_ids,omitempty"`
	Text      string     `json:"text,omitempty"`
}

func SingleAnswer(optionID uint) Answer {
	return Answer{Kind: AnswerSingle, OptionID: optionID}
}

func MultiAnswer(optionIDs ...uint) Answer {
	return Answer{Kind: AnswerMulti, OptionIDs: optionIDs}
}

func TextAnswer(text string) Answer {
	return Answer{Kind: AnswerText, Text: text}
}

type Result struct {
	Score  float64 `json:"score"`
	Passed bool    `json:"passed"`
}

// ScoreQuiz grades one answer set against a quiz definition. Answers are keyed
// by question id; a missing entry contributes zero credit while its weight
// still counts. The total is a percentage rounded to two decimals; rounding
// happens only at the total stage, per-question credit stays fractional.
func ScoreQuiz(quiz *models.Quiz, answers map[uint]Answer) Result {
	var totalWeight, totalCredit float64
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		totalWeight += q.EffectiveWeight()
		if answer, ok := answers[q.ID]; ok {
			totalCredit += questionCredit(q, answer)
		}
	}

	score := 0.0
	if totalWeight > 0 {
		score = math.Round(totalCredit/totalWeight*10000) / 100
	}
	return Result{
		Score:  score,
		Passed: score >= quiz.EffectiveThreshold(),
	}
}

func questionCredit(q *models.Question, a Answer) float64 {
	if a.Kind != "" && a.Kind != kindForType(q.Type) {
		return 0
	}

	switch q.Type {
	case models.QuestionSingleChoice:
		return singleChoiceCredit(q, a)
	case models.QuestionMultiChoice:
		return multiChoiceCredit(q, a)
	case models.QuestionFreeText:
		return freeTextCredit(q, a)
	}
	return 0
}

func kindForType(questionType string) AnswerKind {
	switch questionType {
	case models.QuestionSingleChoice:
		return AnswerSingle
	case models.QuestionMultiChoice:
		return AnswerMulti
	case models.QuestionFreeText:
		return AnswerText
	}
	return ""
}

// singleChoiceCredit awards full weight when the selected option is correct.
func singleChoiceCredit(q *models.Question, a Answer) float64 {
	for i := range q.Options {
		if q.Options[i].ID == a.OptionID && q.Options[i].IsCorrect {
			return q.EffectiveWeight()
		}
	}
	return 0
}

// multiChoiceCredit awards weight * max(0, correct-incorrect)/total partial
// credit. Selections are deduplicated first; an id that names no option of
// the question counts as an incorrect pick.
func multiChoiceCredit(q *models.Question, a Answer) float64 {
	total := 0
	correctByID := make(map[uint]bool, len(q.Options))
	for i := range q.Options {
		correctByID[q.Options[i].ID] = q.Options[i].IsCorrect
		if q.Options[i].IsCorrect {
			total++
		}
	}
	if total == 0 {
		return 0
	}

	seen := make(map[uint]bool, len(a.OptionIDs))
	correct, incorrect := 0, 0
	for _, id := range a.OptionIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if isCorrect, ok := correctByID[id]; ok && isCorrect {
			correct++
		} else {
			incorrect++
		}
	}

	net := correct - incorrect
	if net < 0 {
		net = 0
	}
	return q.EffectiveWeight() * float64(net) / float64(total)
}

// freeTextCredit awards full weight on an exact match of any accepted answer
// after trimming whitespace and case-folding both sides.
func freeTextCredit(q *models.Question, a Answer) float64 {
	submitted := normalizeText(a.Text)
	for _, accepted := range q.AcceptedList() {
		if submitted == normalizeText(accepted) {
			return q.EffectiveWeight()
		}
	}
	return 0
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
