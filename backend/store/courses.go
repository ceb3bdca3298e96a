package store

import (
	"encoding/json"

	"edusync/backend/models"
)

// CourseRepository reads and writes the single "courses" document. Every
// mutation is a whole-collection read-modify-write; two concurrent writers
// race with last-write-wins on the entire collection. That inconsistency
// window is part of the contract, not a bug to fix here.
type CourseRepository struct {
	kv KV
}

func NewCourseRepository(kv KV) *CourseRepository {
	return &CourseRepository{kv: kv}
}

// LoadAll returns the full course collection. An absent or malformed
// document yields an empty slice: corruption degrades silently to "no data",
// matching how the web client treats an unreadable store.
func (r *CourseRepository) LoadAll() []models.Course {
	raw, ok := r.kv.Get(keyCourses)
	if !ok {
		return []models.Course{}
	}

	var courses []models.Course
	if err := json.Unmarshal([]byte(raw), &courses); err != nil {
		return []models.Course{}
	}
	return courses
}

func (r *CourseRepository) SaveAll(courses []models.Course) {
	raw, err := json.Marshal(courses)
	if err != nil {
		return
	}
	r.kv.Set(keyCourses, string(raw))
}

// Get finds a course by id with a linear scan over the collection.
func (r *CourseRepository) Get(id models.ID) (models.Course, error) {
	for _, course := range r.LoadAll() {
		if course.ID == id {
			return course, nil
		}
	}
	return models.Course{}, ErrNotFound
}

// Add mints an id, stamps the creation time and appends the course.
func (r *CourseRepository) Add(course models.Course) models.Course {
	courses := r.LoadAll()

	course.ID = mintID(func(id models.ID) bool {
		for _, c := range courses {
			if c.ID == id {
				return true
			}
		}
		return false
	})
	course.CreatedAt = nowRFC3339()
	if course.Contents == nil {
		course.Contents = []models.Content{}
	}
	if course.Quizzes == nil {
		course.Quizzes = []models.Quiz{}
	}
	if course.EnrolledStudents == nil {
		course.EnrolledStudents = []models.StudentRef{}
	}

	courses = append(courses, course)
	r.SaveAll(courses)
	return course
}

// Update replaces the stored course with the same id.
func (r *CourseRepository) Update(course models.Course) error {
	courses := r.LoadAll()
	for i := range courses {
		if courses[i].ID == course.ID {
			courses[i] = course
			r.SaveAll(courses)
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes exactly one course and leaves the rest untouched.
func (r *CourseRepository) Delete(id models.ID) error {
	courses := r.LoadAll()
	kept := make([]models.Course, 0, len(courses))
	found := false
	for _, course := range courses {
		if course.ID == id && !found {
			found = true
			continue
		}
		kept = append(kept, course)
	}
	if !found {
		return ErrNotFound
	}
	r.SaveAll(kept)
	return nil
}

// AddContent appends a content item to the course's embedded list. Content
// ids are unique only within the parent course.
func (r *CourseRepository) AddContent(courseID models.ID, content models.Content) (models.Content, error) {
	courses := r.LoadAll()
	for i := range courses {
		if courses[i].ID != courseID {
			continue
		}

		content.ID = mintID(func(id models.ID) bool {
			for _, c := range courses[i].Contents {
				if c.ID == id {
					return true
				}
			}
			return false
		})
		content.CreatedAt = nowRFC3339()

		courses[i].Contents = append(courses[i].Contents, content)
		r.SaveAll(courses)
		return content, nil
	}
	return models.Content{}, ErrNotFound
}

// AddQuiz appends a quiz to the course's embedded list and recomputes its
// total marks from the questions.
func (r *CourseRepository) AddQuiz(courseID models.ID, quiz models.Quiz) (models.Quiz, error) {
	courses := r.LoadAll()
	for i := range courses {
		if courses[i].ID != courseID {
			continue
		}

		quiz.ID = mintID(func(id models.ID) bool {
			for _, q := range courses[i].Quizzes {
				if q.ID == id {
					return true
				}
			}
			return false
		})
		quiz.CreatedAt = nowRFC3339()

		total := 0
		for _, q := range quiz.Questions {
			total += q.Marks
		}
		quiz.TotalMarks = total

		courses[i].Quizzes = append(courses[i].Quizzes, quiz)
		r.SaveAll(courses)
		return quiz, nil
	}
	return models.Quiz{}, ErrNotFound
}

// FindQuiz locates a quiz inside a course.
func (r *CourseRepository) FindQuiz(courseID, quizID models.ID) (models.Quiz, error) {
	course, err := r.Get(courseID)
	if err != nil {
		return models.Quiz{}, err
	}
	for _, quiz := range course.Quizzes {
		if quiz.ID == quizID {
			return quiz, nil
		}
	}
	return models.Quiz{}, ErrNotFound
}
