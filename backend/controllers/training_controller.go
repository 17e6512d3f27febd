package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"gigacademy/backend/config"
	"gigacademy/backend/training"
	"gigacademy/backend/utils"
)

// TrainingController exposes the assessment core: watch events, quiz access,
// quiz submission, manual completion and the user's certificates.
type TrainingController struct {
	Tracker *training.Tracker
	Issuer  *training.Issuer
	Content training.ContentProvider
	Cfg     *config.Config
}

func NewTrainingController(tracker *training.Tracker, issuer *training.Issuer, content training.ContentProvider, cfg *config.Config) *TrainingController {
	return &TrainingController{Tracker: tracker, Issuer: issuer, Content: content, Cfg: cfg}
}

// trainingError maps the training error taxonomy onto HTTP statuses. Storage
// and other internal failures get a generic retry prompt.
func trainingError(c *fiber.Ctx, err error) error {
	if training.IsNotFound(err) {
		return utils.NotFound(c, err.Error())
	}
	return utils.InternalServerError(c, "Could not complete the request, please try again")
}

func lessonParams(c *fiber.Ctx) (uint, uint, error) {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid course ID")
	}
	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid lesson ID")
	}
	return uint(courseID), uint(lessonID), nil
}

// RecordWatch handles the video-ended signal for a lesson.
func (tc *TrainingController) RecordWatch(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, lessonID, err := lessonParams(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if err := tc.Tracker.RecordWatch(userID, courseID, lessonID); err != nil {
		return trainingError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Watch recorded",
	})
}

// QuizAccess reports whether the user may enter the lesson's quiz.
func (tc *TrainingController) QuizAccess(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, lessonID, err := lessonParams(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	gate, err := tc.Tracker.QuizAccess(userID, courseID, lessonID)
	if err != nil {
		return trainingError(c, err)
	}

	return c.JSON(fiber.Map{
		"state":        gate.State(),
		"quiz_allowed": gate.QuizAllowed(),
	})
}

// SubmitQuiz godoc
// @Summary Submit quiz answers for a lesson
// @Description Scores the answer set, updates progress and, on a pass, issues
// @Description a completion certificate. A certificate failure never hides
// @Description the pass outcome.
// @Tags training
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /courses/{id}/lessons/{lessonId}/submit [post]
func (tc *TrainingController) SubmitQuiz(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, lessonID, err := lessonParams(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	type AnswerInput struct {
		QuestionID uint                `json:"question_id"`
		Kind       training.AnswerKind `json:"kind"`
		OptionID   uint                `json:"option_id"`
		OptionIDs  []uint              `json:"option_ids"`
		Text       string              `json:"text"`
	}
	type SubmitInput struct {
		Answers []AnswerInput `json:"answers"`
	}

	var input SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	answers := make(map[uint]training.Answer, len(input.Answers))
	for _, a := range input.Answers {
		answers[a.QuestionID] = training.Answer{
			Kind:      a.Kind,
			OptionID:  a.OptionID,
			OptionIDs: a.OptionIDs,
			Text:      a.Text,
		}
	}

	sub, err := tc.Tracker.SubmitQuiz(userID, courseID, lessonID, answers)
	if err != nil {
		return trainingError(c, err)
	}

	response := fiber.Map{
		"score":    sub.Score,
		"passed":   sub.Passed,
		"attempts": sub.Attempts,
	}

	// Certificate issuance is best-effort: the user already earned the pass.
	if sub.Passed {
		if course, err := tc.Content.GetCourse(courseID); err == nil {
			if cert, err := tc.Issuer.CreateCertificate(userID, courseID, course.Title, sub.Score); err == nil {
				response["certificate"] = cert
			}
		}
	}

	return c.JSON(response)
}

// MarkCompleted is the manual-unlock fallback for lessons whose video player
// never fires an end-of-playback callback.
func (tc *TrainingController) MarkCompleted(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, lessonID, err := lessonParams(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if err := tc.Tracker.MarkCompleted(userID, courseID, lessonID); err != nil {
		return trainingError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Lesson completed",
	})
}

// GetProgress returns the user's full progress collection.
func (tc *TrainingController) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	records, err := tc.Tracker.Progress(userID)
	if err != nil {
		return trainingError(c, err)
	}

	return c.JSON(fiber.Map{
		"progress": records,
	})
}

// GetCertificates lists the user's certificates, newest first.
func (tc *TrainingController) GetCertificates(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	certs, err := tc.Issuer.Certificates(userID)
	if err != nil {
		return trainingError(c, err)
	}

	return c.JSON(fiber.Map{
		"certificates": certs,
	})
}

// DeleteCertificate removes one of the user's own certificates.
func (tc *TrainingController) DeleteCertificate(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if err := tc.Issuer.DeleteCertificate(userID, c.Params("certId")); err != nil {
		return trainingError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Certificate deleted",
	})
}
