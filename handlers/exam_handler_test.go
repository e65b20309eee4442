package handlers_test

import (
	"testing"

	"github.com/anjiri1684/english_academy/handlers"
	"github.com/anjiri1684/english_academy/models"
	"github.com/stretchr/testify/assert"
)

func questionSet() []*models.Question {
	return []*models.Question{
		{ID: 1, CorrectAnswer: "went"},
		{ID: 2, CorrectAnswer: "has been"},
		{ID: 3, CorrectAnswer: "their"},
		{ID: 4, CorrectAnswer: "an"},
	}
}

func TestGradeAttempt_AllCorrect(t *testing.T) {
	score, answers := handlers.GradeAttempt(questionSet(), []handlers.SubmittedAnswer{
		{QuestionID: 1, SelectedAnswer: "went"},
		{QuestionID: 2, SelectedAnswer: "has been"},
		{QuestionID: 3, SelectedAnswer: "their"},
		{QuestionID: 4, SelectedAnswer: "an"},
	})

	assert.Equal(t, 100.0, score)
	assert.Len(t, answers, 4)
	for _, a := range answers {
		assert.True(t, a.IsCorrect)
	}
}

func TestGradeAttempt_PartiallyCorrect(t *testing.T) {
	score, answers := handlers.GradeAttempt(questionSet(), []handlers.SubmittedAnswer{
		{QuestionID: 1, SelectedAnswer: "went"},
		{QuestionID: 2, SelectedAnswer: "was"},
		{QuestionID: 3, SelectedAnswer: "their"},
		{QuestionID: 4, SelectedAnswer: "a"},
	})

	assert.Equal(t, 50.0, score)
	assert.True(t, answers[0].IsCorrect)
	assert.False(t, answers[1].IsCorrect)
}

func TestGradeAttempt_UnansweredQuestionsCountAgainstScore(t *testing.T) {
	score, answers := handlers.GradeAttempt(questionSet(), []handlers.SubmittedAnswer{
		{QuestionID: 1, SelectedAnswer: "went"},
	})

	assert.Equal(t, 25.0, score)
	assert.Len(t, answers, 1)
}

func TestGradeAttempt_UnknownQuestionIsWrong(t *testing.T) {
	score, answers := handlers.GradeAttempt(questionSet(), []handlers.SubmittedAnswer{
		{QuestionID: 99, SelectedAnswer: "went"},
	})

	assert.Equal(t, 0.0, score)
	assert.False(t, answers[0].IsCorrect)
}

func TestGradeAttempt_EmptyExam(t *testing.T) {
	score, answers := handlers.GradeAttempt(nil, []handlers.SubmittedAnswer{
		{QuestionID: 1, SelectedAnswer: "went"},
	})

	assert.Equal(t, 0.0, score)
	assert.Len(t, answers, 1)
}
