package store

import (
	"encoding/json"
	"errors"

	"edusync/backend/models"
)

// ErrUnanswered rejects a submission with any question left blank. No
// partial submissions: the store is not touched when this is returned.
var ErrUnanswered = errors.New("all questions must be answered before submitting")

// QuizResultStore keeps both views of a user's quiz outcomes: the full
// attempt history under "quiz_attempts_<userId>" and the latest result per
// quiz under "quiz_results_<userId>".
type QuizResultStore struct {
	kv KV
}

func NewQuizResultStore(kv KV) *QuizResultStore {
	return &QuizResultStore{kv: kv}
}

// Score grades a submission. An answer is correct iff the selected option
// index equals the question's correct answer; correct answers award the
// question's marks, wrong ones award nothing. Every question must have an
// answer or the submission is rejected before anything is computed.
func Score(quiz models.Quiz, answers map[int]int) (models.QuizResult, error) {
	for i := range quiz.Questions {
		if _, ok := answers[i]; !ok {
			return models.QuizResult{}, ErrUnanswered
		}
	}

	score := 0
	totalMarks := 0
	for i, question := range quiz.Questions {
		totalMarks += question.Marks
		if answers[i] == question.CorrectAnswer {
			score += question.Marks
		}
	}

	percentage := 0.0
	if totalMarks > 0 {
		percentage = 100 * float64(score) / float64(totalMarks)
	}

	return models.QuizResult{
		QuizID:     quiz.ID,
		Score:      score,
		TotalMarks: totalMarks,
		Percentage: percentage,
		Answers:    answers,
	}, nil
}

// RecordAttempt appends the result to the user's attempt history and
// overwrites the latest result for that quiz.
func (s *QuizResultStore) RecordAttempt(userID models.ID, result models.QuizResult) models.QuizResult {
	now := nowRFC3339()
	result.CompletedAt = now

	attempts := s.Attempts(userID)
	attempts = append(attempts, models.QuizAttempt{
		QuizResult:  result,
		UserID:      userID,
		AttemptedAt: now,
	})
	if raw, err := json.Marshal(attempts); err == nil {
		s.kv.Set(quizAttemptsKey(userID), string(raw))
	}

	results := s.results(userID)
	results[result.QuizID] = result
	if raw, err := json.Marshal(results); err == nil {
		s.kv.Set(quizResultsKey(userID), string(raw))
	}

	return result
}

// Attempts returns the user's full attempt history, oldest first.
func (s *QuizResultStore) Attempts(userID models.ID) []models.QuizAttempt {
	raw, ok := s.kv.Get(quizAttemptsKey(userID))
	if !ok {
		return []models.QuizAttempt{}
	}
	var attempts []models.QuizAttempt
	if err := json.Unmarshal([]byte(raw), &attempts); err != nil {
		return []models.QuizAttempt{}
	}
	return attempts
}

// AttemptsForQuiz filters the history down to one quiz.
func (s *QuizResultStore) AttemptsForQuiz(userID, quizID models.ID) []models.QuizAttempt {
	var filtered []models.QuizAttempt
	for _, attempt := range s.Attempts(userID) {
		if attempt.QuizID == quizID {
			filtered = append(filtered, attempt)
		}
	}
	return filtered
}

// LatestResult returns the most recently stored result for a quiz.
func (s *QuizResultStore) LatestResult(userID, quizID models.ID) (models.QuizResult, bool) {
	result, ok := s.results(userID)[quizID]
	return result, ok
}

// BestScore returns the highest percentage across the user's attempts for a
// quiz, or false when there are none.
func (s *QuizResultStore) BestScore(userID, quizID models.ID) (float64, bool) {
	best := 0.0
	found := false
	for _, attempt := range s.Attempts(userID) {
		if attempt.QuizID != quizID {
			continue
		}
		if !found || attempt.Percentage > best {
			best = attempt.Percentage
		}
		found = true
	}
	return best, found
}

func (s *QuizResultStore) results(userID models.ID) map[models.ID]models.QuizResult {
	raw, ok := s.kv.Get(quizResultsKey(userID))
	if !ok {
		return map[models.ID]models.QuizResult{}
	}
	var results map[models.ID]models.QuizResult
	if err := json.Unmarshal([]byte(raw), &results); err != nil || results == nil {
		return map[models.ID]models.QuizResult{}
	}
	return results
}
