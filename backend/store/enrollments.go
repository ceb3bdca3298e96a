package store

import (
	"encoding/json"
	"strings"

	"edusync/backend/models"
)

// EnrollmentStore keeps the per-user list of joined course ids and mirrors a
// StudentRef into each course's enrolledStudents list. The mirror is rebuilt
// remove-then-add on every save, so a stale entry never survives an
// unenrollment.
type EnrollmentStore struct {
	kv      KV
	courses *CourseRepository
}

func NewEnrollmentStore(kv KV, courses *CourseRepository) *EnrollmentStore {
	return &EnrollmentStore{kv: kv, courses: courses}
}

// List returns the course ids the user has joined.
func (e *EnrollmentStore) List(userID models.ID) []models.ID {
	raw, ok := e.kv.Get(enrollmentsKey(userID))
	if !ok {
		return []models.ID{}
	}
	var ids []models.ID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return []models.ID{}
	}
	return ids
}

// Enroll adds the course to the user's list. Enrolling twice is a no-op.
func (e *EnrollmentStore) Enroll(userID models.ID, name string, courseID models.ID) error {
	if _, err := e.courses.Get(courseID); err != nil {
		return err
	}

	ids := e.List(userID)
	for _, id := range ids {
		if id == courseID {
			return nil
		}
	}
	ids = append(ids, courseID)
	e.save(userID, name, ids)
	return nil
}

// Unenroll drops the course from the user's list and from the mirror.
func (e *EnrollmentStore) Unenroll(userID models.ID, name string, courseID models.ID) error {
	ids := e.List(userID)
	kept := make([]models.ID, 0, len(ids))
	found := false
	for _, id := range ids {
		if id == courseID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return ErrNotFound
	}
	e.save(userID, name, kept)
	return nil
}

// save writes the enrollment list, then rebuilds the student's mirror entry
// across the whole course collection.
func (e *EnrollmentStore) save(userID models.ID, name string, ids []models.ID) {
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	e.kv.Set(enrollmentsKey(userID), string(raw))

	enrolled := make(map[models.ID]bool, len(ids))
	for _, id := range ids {
		enrolled[id] = true
	}

	courses := e.courses.LoadAll()
	for i := range courses {
		kept := make([]models.StudentRef, 0, len(courses[i].EnrolledStudents))
		for _, student := range courses[i].EnrolledStudents {
			if student.ID != userID {
				kept = append(kept, student)
			}
		}
		if enrolled[courses[i].ID] {
			kept = append(kept, models.StudentRef{ID: userID, Name: name})
		}
		courses[i].EnrolledStudents = kept
	}
	e.courses.SaveAll(courses)
}

// RecountEnrollments scans every "enrollments_*" document and counts how
// many users currently list the course.
func (e *EnrollmentStore) RecountEnrollments(courseID models.ID) int {
	count := 0
	for _, key := range e.kv.Keys() {
		if !strings.HasPrefix(key, enrollmentsPrefix) {
			continue
		}
		raw, ok := e.kv.Get(key)
		if !ok {
			continue
		}
		var ids []models.ID
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			continue
		}
		for _, id := range ids {
			if id == courseID {
				count++
				break
			}
		}
	}
	return count
}

// InitializeUserData seeds the user's enrollment, progress and result
// documents when they do not exist yet.
func (e *EnrollmentStore) InitializeUserData(userID models.ID) {
	if _, ok := e.kv.Get(enrollmentsKey(userID)); !ok {
		e.kv.Set(enrollmentsKey(userID), "[]")
	}
	if _, ok := e.kv.Get(userProgressKey(userID)); !ok {
		e.kv.Set(userProgressKey(userID), "{}")
	}
	if _, ok := e.kv.Get(quizResultsKey(userID)); !ok {
		e.kv.Set(quizResultsKey(userID), "{}")
	}
}

// CleanupUserData removes every per-user document, mirroring the web
// client's logout cleanup.
func (e *EnrollmentStore) CleanupUserData(userID models.ID) {
	e.kv.Remove(enrollmentsKey(userID))
	e.kv.Remove(userProgressKey(userID))
	e.kv.Remove(quizResultsKey(userID))
	e.kv.Remove(quizAttemptsKey(userID))
}
