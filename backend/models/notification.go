package models

const (
	NotificationEnrollment    = "enrollment"
	NotificationQuizCompleted = "quiz_completed"
	NotificationCourseUpdated = "course_updated"
)

type Notification struct {
	ID        ID     `json:"id"`
	Type      string `json:"type"`
	CourseID  ID     `json:"courseId"`
	Message   string `json:"message"`
	IsRead    bool   `json:"isRead"`
	Timestamp string `json:"timestamp"`
}
