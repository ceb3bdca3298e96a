package models

type Quiz struct {
	ID           ID         `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Questions    []Question `json:"questions"`
	TotalMarks   int        `json:"totalMarks"`
	PassingScore int        `json:"passingScore,omitempty"`
	CreatedAt    string     `json:"createdAt"`
}

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Marks         int      `json:"marks"`
}

// QuizResult is the latest stored outcome for one quiz, keyed by quiz id in
// the per-user results document.
type QuizResult struct {
	CourseID    ID          `json:"courseId"`
	QuizID      ID          `json:"quizId"`
	Score       int         `json:"score"`
	TotalMarks  int         `json:"totalMarks"`
	Percentage  float64     `json:"percentage"`
	Answers     map[int]int `json:"answers"`
	CompletedAt string      `json:"completedAt"`
}

// QuizAttempt is one entry of the per-user attempt history.
type QuizAttempt struct {
	QuizResult
	UserID      ID     `json:"userId"`
	AttemptedAt string `json:"attemptedAt"`
}
