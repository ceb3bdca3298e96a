package store

import (
	"time"

	"edusync/backend/models"
)

// Key layout of the store. This is a compatibility surface: the shapes match
// what the browser client persisted, so the same blobs can be read back.
const (
	keyCourses       = "courses"
	keyNotifications = "notifications"
	keyUsers         = "users"
	keySession       = "user"

	enrollmentsPrefix = "enrollments_"
)

func contentCompletedKey(contentID models.ID) string {
	return "content_" + contentID.String() + "_completed"
}

func courseProgressKey(courseID models.ID) string {
	return "course_" + courseID.String() + "_progress"
}

func enrollmentsKey(userID models.ID) string {
	return enrollmentsPrefix + userID.String()
}

func userProgressKey(userID models.ID) string {
	return "progress_" + userID.String()
}

func quizAttemptsKey(userID models.ID) string {
	return "quiz_attempts_" + userID.String()
}

func quizResultsKey(userID models.ID) string {
	return "quiz_results_" + userID.String()
}

// mintID assigns the current time in milliseconds, bumped past any id already
// taken so that two records created in the same millisecond stay distinct.
func mintID(taken func(models.ID) bool) models.ID {
	id := models.ID(time.Now().UnixMilli())
	for taken(id) {
		id++
	}
	return id
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
