package controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gigacademy/backend/config"
	"gigacademy/backend/models"
	"gigacademy/backend/training"
	"gigacademy/backend/utils"
)

// CoursesController serves the course catalog to learners and the content
// CRUD to dashboard admins. Reads go through the content provider; admin
// writes go straight to the database, the provider's copy-on-read keeps the
// two from aliasing.
type CoursesController struct {
	DB      *gorm.DB
	Content training.ContentProvider
	Tracker *training.Tracker
	Cfg     *config.Config
}

func NewCoursesController(db *gorm.DB, content training.ContentProvider, tracker *training.Tracker, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Content: content, Tracker: tracker, Cfg: cfg}
}

// GetCourses lists the catalog with a per-course progress summary.
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courses, err := cc.Content.GetCourses()
	if err != nil {
		return trainingError(c, err)
	}

	records, err := cc.Tracker.Progress(userID)
	if err != nil {
		return trainingError(c, err)
	}
	completedByCourse := make(map[uint]int)
	for _, rec := range records {
		if rec.Completed {
			completedByCourse[rec.CourseID]++
		}
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":                course.ID,
			"title":             course.Title,
			"description":       course.Description,
			"category":          course.Category,
			"lessons":           len(course.Lessons),
			"lessons_completed": completedByCourse[course.ID],
		})
	}

	return c.JSON(result)
}

// GetCourseDetails returns one course with per-lesson progress and the quiz
// entry gate state for each lesson.
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	course, err := cc.Content.GetCourse(uint(courseID))
	if err != nil {
		return trainingError(c, err)
	}

	records, err := cc.Tracker.Progress(userID)
	if err != nil {
		return trainingError(c, err)
	}
	progressByLesson := make(map[uint]models.Progress)
	for _, rec := range records {
		if rec.CourseID == course.ID {
			progressByLesson[rec.LessonID] = rec
		}
	}

	lessons := make([]fiber.Map, 0, len(course.Lessons))
	for _, lesson := range course.Lessons {
		rec := progressByLesson[lesson.ID]
		gate := training.NewLessonGate(rec.Watched)

		questions := make([]fiber.Map, 0, len(lesson.Quiz.Questions))
		for _, q := range lesson.Quiz.Questions {
			options := make([]fiber.Map, 0, len(q.Options))
			for _, opt := range q.Options {
				// Correctness flags stay server-side.
				options = append(options, fiber.Map{
					"id":   opt.ID,
					"text": opt.Text,
				})
			}
			questions = append(questions, fiber.Map{
				"id":      q.ID,
				"text":    q.Text,
				"type":    q.Type,
				"weight":  q.EffectiveWeight(),
				"options": options,
				"order":   q.SequenceOrder,
			})
		}

		lessons = append(lessons, fiber.Map{
			"id":        lesson.ID,
			"title":     lesson.Title,
			"video_url": lesson.VideoURL,
			"duration":  lesson.Duration,
			"order":     lesson.SequenceOrder,
			"quiz": fiber.Map{
				"id":             lesson.Quiz.ID,
				"title":          lesson.Quiz.Title,
				"pass_threshold": lesson.Quiz.EffectiveThreshold(),
				"questions":      questions,
			},
			"progress":     rec,
			"gate":         gate.State(),
			"quiz_allowed": gate.QuizAllowed(),
		})
	}

	return c.JSON(fiber.Map{
		"course": fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"category":    course.Category,
			"lessons":     lessons,
		},
	})
}

// CreateCourse godoc
// @Summary Create a course (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /admin/courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}

	course := models.Course{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
	}
	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return c.JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

// AddLesson appends a lesson to a course. Every lesson owns exactly one quiz,
// created empty alongside it.
func (cc *CoursesController) AddLesson(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		Title         string   `json:"title"`
		VideoURL      string   `json:"video_url"`
		Duration      int      `json:"duration"`
		QuizTitle     string   `json:"quiz_title"`
		PassThreshold *float64 `json:"pass_threshold"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}
	if input.PassThreshold != nil && (*input.PassThreshold < 0 || *input.PassThreshold > 100) {
		return utils.BadRequest(c, "Pass threshold must be between 0 and 100")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var lessonCount int64
	cc.DB.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&lessonCount)

	quizTitle := input.QuizTitle
	if quizTitle == "" {
		quizTitle = input.Title + " quiz"
	}

	lesson := models.Lesson{
		CourseID:      course.ID,
		Title:         input.Title,
		VideoURL:      input.VideoURL,
		Duration:      input.Duration,
		SequenceOrder: int(lessonCount) + 1,
		Quiz: models.Quiz{
			Title:         quizTitle,
			PassThreshold: input.PassThreshold,
		},
	}
	if err := cc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}

	return c.JSON(fiber.Map{
		"message": "Lesson added",
		"lesson":  lesson,
	})
}

// UpdateLesson updates lesson metadata and quiz settings.
func (cc *CoursesController) UpdateLesson(c *fiber.Ctx) error {
	courseID, lessonID, err := lessonParams(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var input struct {
		Title         string   `json:"title"`
		VideoURL      string   `json:"video_url"`
		Duration      int      `json:"duration"`
		SequenceOrder int      `json:"sequence_order"`
		PassThreshold *float64 `json:"pass_threshold"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var lesson models.Lesson
	if err := cc.DB.Preload("Quiz").Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		lesson.Title = input.Title
	}
	if input.VideoURL != "" {
		lesson.VideoURL = input.VideoURL
	}
	if input.Duration > 0 {
		lesson.Duration = input.Duration
	}
	if input.SequenceOrder != 0 {
		lesson.SequenceOrder = input.SequenceOrder
	}
	if err := cc.DB.Save(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not update lesson")
	}

	if input.PassThreshold != nil {
		if *input.PassThreshold < 0 || *input.PassThreshold > 100 {
			return utils.BadRequest(c, "Pass threshold must be between 0 and 100")
		}
		lesson.Quiz.PassThreshold = input.PassThreshold
		if err := cc.DB.Save(&lesson.Quiz).Error; err != nil {
			return utils.InternalServerError(c, "Could not update quiz settings")
		}
	}

	return c.JSON(fiber.Map{
		"message": "Lesson updated",
		"lesson":  lesson,
	})
}

// AddQuestion appends a typed question to a lesson's quiz.
func (cc *CoursesController) AddQuestion(c *fiber.Ctx) error {
	courseID, lessonID, err := lessonParams(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	type OptionInput struct {
		Text      string `json:"text"`
		IsCorrect bool   `json:"is_correct"`
	}
	var input struct {
		Text            string        `json:"text"`
		Type            string        `json:"type"`
		Weight          float64       `json:"weight"`
		Options         []OptionInput `json:"options"`
		AcceptedAnswers []string      `json:"accepted_answers"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Weight < 0 {
		return utils.BadRequest(c, "Weight must be positive")
	}

	switch input.Type {
	case models.QuestionSingleChoice:
		correct := 0
		for _, opt := range input.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if len(input.Options) < 2 || correct != 1 {
			return utils.BadRequest(c, "Single-choice questions need at least two options with exactly one correct")
		}
	case models.QuestionMultiChoice:
		correct := 0
		for _, opt := range input.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return utils.BadRequest(c, "Multi-choice questions need at least one correct option")
		}
	case models.QuestionFreeText:
		if len(input.AcceptedAnswers) == 0 {
			return utils.BadRequest(c, "Free-text questions need at least one accepted answer")
		}
	default:
		return utils.BadRequest(c, "Unknown question type")
	}

	var lesson models.Lesson
	if err := cc.DB.Preload("Quiz").Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var questionCount int64
	cc.DB.Model(&models.Question{}).Where("quiz_id = ?", lesson.Quiz.ID).Count(&questionCount)

	question := models.Question{
		QuizID:        lesson.Quiz.ID,
		Text:          input.Text,
		Type:          input.Type,
		Weight:        input.Weight,
		SequenceOrder: int(questionCount) + 1,
	}
	for _, opt := range input.Options {
		question.Options = append(question.Options, models.Option{
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
		})
	}
	if input.Type == models.QuestionFreeText {
		acceptedJson, err := json.Marshal(input.AcceptedAnswers)
		if err != nil {
			return utils.InternalServerError(c, "Could not encode accepted answers")
		}
		question.AcceptedAnswers = string(acceptedJson)
	}

	if err := cc.DB.Create(&question).Error; err != nil {
		return utils.InternalServerError(c, "Could not create question")
	}

	return c.JSON(fiber.Map{
		"message":  "Question added",
		"question": question,
	})
}
