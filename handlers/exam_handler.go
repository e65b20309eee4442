package handlers

import (
	"time"

	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/anjiri1684/english_academy/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuestionRequest struct {
	QuestionText  string `json:"question_text" validate:"required"`
	QuestionType  string `json:"question_type" validate:"required"`
	Options       string `json:"options"`
	CorrectAnswer string `json:"correct_answer" validate:"required"`
}

func CreateQuestion(c *fiber.Ctx) error {
	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	question := models.Question{
		QuestionText:  req.QuestionText,
		QuestionType:  req.QuestionType,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
	}

	if err := database.DB.Create(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create question"})
	}

	return c.Status(fiber.StatusCreated).JSON(question)
}

func ListQuestions(c *fiber.Ctx) error {
	var questions []models.Question
	database.DB.Find(&questions)
	return c.JSON(questions)
}

func GetQuestion(c *fiber.Ctx) error {
	questionID := c.Params("questionId")
	var question models.Question
	if err := database.DB.First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}
	return c.JSON(question)
}

func UpdateQuestion(c *fiber.Ctx) error {
	questionID := c.Params("questionId")
	var question models.Question
	if err := database.DB.First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	question.QuestionText = req.QuestionText
	question.QuestionType = req.QuestionType
	question.Options = req.Options
	question.CorrectAnswer = req.CorrectAnswer
	database.DB.Save(&question)

	return c.JSON(question)
}

func DeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Params("questionId")
	result := database.DB.Delete(&models.Question{}, "id = ?", questionID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete question"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type ExamRequest struct {
	CourseID        uint   `json:"course_id" validate:"required"`
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	PassMark        float64 `json:"pass_mark" validate:"omitempty,gte=0,lte=100"`
	QuestionIDs     []uint `json:"question_ids" validate:"required,min=1"`
}

func CreateExam(c *fiber.Ctx) error {
	var req ExamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var questions []*models.Question
	if err := database.DB.Where("id IN ?", req.QuestionIDs).Find(&questions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to find questions"})
	}
	if len(questions) != len(req.QuestionIDs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "One or more provided question IDs are invalid"})
	}

	exam := models.Exam{
		CourseID:        req.CourseID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Questions:       questions,
	}
	if req.PassMark > 0 {
		exam.PassMark = req.PassMark
	}

	if err := database.DB.Create(&exam).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create exam"})
	}

	return c.Status(fiber.StatusCreated).JSON(exam)
}

func ListExams(c *fiber.Ctx) error {
	var exams []models.Exam
	database.DB.Preload("Questions").Find(&exams)
	return c.JSON(exams)
}

func GetExam(c *fiber.Ctx) error {
	examID := c.Params("examId")
	var exam models.Exam
	if err := database.DB.Preload("Questions").First(&exam, "id = ?", examID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}
	return c.JSON(exam)
}

func UpdateExam(c *fiber.Ctx) error {
	examID := c.Params("examId")
	var req ExamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var exam models.Exam
	if err := database.DB.First(&exam, "id = ?", examID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}

	var newQuestions []*models.Question
	if err := database.DB.Where("id IN ?", req.QuestionIDs).Find(&newQuestions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to find new questions"})
	}
	if len(newQuestions) != len(req.QuestionIDs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "One or more new question IDs are invalid"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		exam.Title = req.Title
		exam.Description = req.Description
		exam.DurationMinutes = req.DurationMinutes
		if req.PassMark > 0 {
			exam.PassMark = req.PassMark
		}

		if err := tx.Save(&exam).Error; err != nil {
			return err
		}
		return tx.Model(&exam).Association("Questions").Replace(newQuestions)
	})

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update exam"})
	}

	return c.Status(fiber.StatusOK).JSON(exam)
}

func DeleteExam(c *fiber.Ctx) error {
	examID := c.Params("examId")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var exam models.Exam
		if err := tx.Preload("Questions").First(&exam, "id = ?", examID).Error; err != nil {
			return err
		}
		if err := tx.Model(&exam).Association("Questions").Clear(); err != nil {
			return err
		}
		return tx.Delete(&exam).Error
	})

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete exam"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func StartExamAttempt(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student record not found"})
	}
	examID := c.Params("examId")

	var exam models.Exam
	if err := database.DB.Preload("Questions").First(&exam, "id = ?", examID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}

	var enrollment models.Enrollment
	if err := database.DB.Where("student_id = ? AND course_id = ?", student.ID, exam.CourseID).First(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You must be enrolled in this course to take its exam"})
	}

	attempt := models.ExamAttempt{
		StudentID: student.ID,
		ExamID:    exam.ID,
		StartTime: time.Now(),
	}
	if err := database.DB.Create(&attempt).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start exam attempt"})
	}

	type QuestionForStudent struct {
		ID           uint   `json:"id"`
		QuestionText string `json:"question_text"`
		QuestionType string `json:"question_type"`
		Options      string `json:"options"`
	}

	questionsForStudent := make([]QuestionForStudent, len(exam.Questions))
	for i, q := range exam.Questions {
		questionsForStudent[i] = QuestionForStudent{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Options:      q.Options,
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"attempt_id":       attempt.ID,
		"exam_title":       exam.Title,
		"duration_minutes": exam.DurationMinutes,
		"questions":        questionsForStudent,
	})
}

type SubmitAnswersRequest struct {
	Answers []SubmittedAnswer `json:"answers" validate:"required,min=1"`
}

type SubmittedAnswer struct {
	QuestionID     uint   `json:"question_id" validate:"required"`
	SelectedAnswer string `json:"selected_answer" validate:"required"`
}

func SubmitExamAttempt(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student record not found"})
	}
	attemptID := c.Params("attemptId")

	var req SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var attempt models.ExamAttempt
	if err := database.DB.Preload("Exam.Questions").First(&attempt, "id = ? AND student_id = ?", attemptID, student.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam attempt not found"})
	}

	if attempt.EndTime != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Exam has already been submitted"})
	}

	score, answers := GradeAttempt(attempt.Exam.Questions, req.Answers)
	for i := range answers {
		answers[i].ExamAttemptID = attempt.ID
	}

	now := time.Now()
	passed := score >= attempt.Exam.PassMark
	attempt.EndTime = &now
	attempt.Score = &score
	attempt.Passed = &passed

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}
		return tx.Create(&answers).Error
	})

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save results"})
	}

	if passed {
		go services.CheckAndGenerateCertificate(student.ID, attempt.Exam.CourseID)
	}

	return c.JSON(fiber.Map{
		"message": "Exam submitted successfully",
		"score":   score,
		"passed":  passed,
		"results": answers,
	})
}

// GradeAttempt scores submitted answers against the exam's question set.
// Unanswered questions count against the score; answers to questions outside
// the exam are marked wrong rather than rejected.
func GradeAttempt(questions []*models.Question, submitted []SubmittedAnswer) (float64, []models.AttemptAnswer) {
	correctAnswers := make(map[uint]string, len(questions))
	for _, q := range questions {
		correctAnswers[q.ID] = q.CorrectAnswer
	}

	correctCount := 0
	answers := make([]models.AttemptAnswer, 0, len(submitted))
	for _, answer := range submitted {
		expected, known := correctAnswers[answer.QuestionID]
		isCorrect := known && expected == answer.SelectedAnswer
		if isCorrect {
			correctCount++
		}
		answers = append(answers, models.AttemptAnswer{
			QuestionID:     answer.QuestionID,
			SelectedAnswer: answer.SelectedAnswer,
			IsCorrect:      isCorrect,
		})
	}

	if len(questions) == 0 {
		return 0, answers
	}
	score := (float64(correctCount) / float64(len(questions))) * 100
	return score, answers
}
