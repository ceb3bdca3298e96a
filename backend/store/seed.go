package store

import "edusync/backend/models"

// InitializeCourses seeds the starter catalog the first time the store is
// opened. An existing "courses" key, even an empty array, is left alone.
func InitializeCourses(kv KV) {
	if _, ok := kv.Get(keyCourses); ok {
		return
	}

	repo := NewCourseRepository(kv)
	seed := []models.Course{
		{
			Title:       "Introduction to Web Development",
			Description: "Learn the fundamentals of HTML, CSS, and JavaScript to build modern websites.",
		},
		{
			Title:       "React.js Fundamentals",
			Description: "Master the basics of React.js and build interactive user interfaces.",
		},
		{
			Title:       "Python Programming",
			Description: "Learn Python programming from scratch and build real-world applications.",
		},
	}

	for _, course := range seed {
		repo.Add(course)
	}
}
