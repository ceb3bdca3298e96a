package store

import (
	"testing"

	"edusync/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuiz() models.Quiz {
	return models.Quiz{
		ID:    1001,
		Title: "Checkpoint",
		Questions: []models.Question{
			{Question: "First", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1, Marks: 10},
			{Question: "Second", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0, Marks: 5},
		},
		TotalMarks: 15,
	}
}

func TestScoreAllCorrect(t *testing.T) {
	result, err := Score(sampleQuiz(), map[int]int{0: 1, 1: 0})
	require.NoError(t, err)

	assert.Equal(t, 15, result.Score)
	assert.Equal(t, 15, result.TotalMarks)
	assert.Equal(t, 100.0, result.Percentage)
}

func TestScorePartiallyCorrect(t *testing.T) {
	result, err := Score(sampleQuiz(), map[int]int{0: 1, 1: 3})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Score)
	assert.InDelta(t, 66.67, result.Percentage, 0.01)
}

func TestScoreRejectsUnanswered(t *testing.T) {
	_, err := Score(sampleQuiz(), map[int]int{0: 1})
	assert.ErrorIs(t, err, ErrUnanswered)
}

func TestScoreZeroTotalMarks(t *testing.T) {
	quiz := models.Quiz{Questions: []models.Question{
		{Question: "Freebie", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0, Marks: 0},
	}}
	result, err := Score(quiz, map[int]int{0: 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Percentage)
}

func TestRejectedSubmissionLeavesStoreUntouched(t *testing.T) {
	kv := NewMemoryKV()
	results := NewQuizResultStore(kv)
	userID := models.ID(42)

	_, err := Score(sampleQuiz(), map[int]int{0: 1})
	require.ErrorIs(t, err, ErrUnanswered)

	// Score failed before anything could be recorded
	assert.Empty(t, results.Attempts(userID))
	assert.Empty(t, kv.Keys())
}

func TestRecordAttemptKeepsHistoryAndLatest(t *testing.T) {
	kv := NewMemoryKV()
	results := NewQuizResultStore(kv)
	userID := models.ID(42)
	quizID := models.ID(1001)

	results.RecordAttempt(userID, models.QuizResult{QuizID: quizID, Score: 9, TotalMarks: 15, Percentage: 60})
	results.RecordAttempt(userID, models.QuizResult{QuizID: quizID, Score: 13, TotalMarks: 15, Percentage: 85})
	latest := results.RecordAttempt(userID, models.QuizResult{QuizID: quizID, Score: 6, TotalMarks: 15, Percentage: 40})

	assert.NotEmpty(t, latest.CompletedAt)

	attempts := results.AttemptsForQuiz(userID, quizID)
	require.Len(t, attempts, 3)
	assert.Equal(t, 60.0, attempts[0].Percentage)
	assert.Equal(t, 40.0, attempts[2].Percentage)

	stored, ok := results.LatestResult(userID, quizID)
	require.True(t, ok)
	assert.Equal(t, 40.0, stored.Percentage)
}

func TestBestScore(t *testing.T) {
	kv := NewMemoryKV()
	results := NewQuizResultStore(kv)
	userID := models.ID(42)
	quizID := models.ID(1001)

	results.RecordAttempt(userID, models.QuizResult{QuizID: quizID, Percentage: 60})
	results.RecordAttempt(userID, models.QuizResult{QuizID: quizID, Percentage: 85})
	results.RecordAttempt(userID, models.QuizResult{QuizID: quizID, Percentage: 40})

	best, ok := results.BestScore(userID, quizID)
	require.True(t, ok)
	assert.Equal(t, 85.0, best)

	_, ok = results.BestScore(userID, quizID+1)
	assert.False(t, ok)

	_, ok = results.BestScore(models.ID(7), quizID)
	assert.False(t, ok)
}

func TestAttemptsSeparatePerUser(t *testing.T) {
	kv := NewMemoryKV()
	results := NewQuizResultStore(kv)

	results.RecordAttempt(1, models.QuizResult{QuizID: 1001, Percentage: 50})
	results.RecordAttempt(2, models.QuizResult{QuizID: 1001, Percentage: 90})

	assert.Len(t, results.Attempts(1), 1)
	assert.Len(t, results.Attempts(2), 1)

	best, ok := results.BestScore(1, 1001)
	require.True(t, ok)
	assert.Equal(t, 50.0, best)
}
