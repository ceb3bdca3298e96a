package store

import (
	"testing"

	"edusync/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollMirrorsStudentRef(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewCourseRepository(kv)
	enrollments := NewEnrollmentStore(kv, repo)

	course := repo.Add(models.Course{Title: "Course"})
	other := repo.Add(models.Course{Title: "Other"})

	require.NoError(t, enrollments.Enroll(42, "Alice", course.ID))

	assert.Equal(t, []models.ID{course.ID}, enrollments.List(42))

	stored, _ := repo.Get(course.ID)
	require.Len(t, stored.EnrolledStudents, 1)
	assert.Equal(t, models.StudentRef{ID: 42, Name: "Alice"}, stored.EnrolledStudents[0])

	untouched, _ := repo.Get(other.ID)
	assert.Empty(t, untouched.EnrolledStudents)
}

func TestEnrollTwiceIsNoop(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewCourseRepository(kv)
	enrollments := NewEnrollmentStore(kv, repo)

	course := repo.Add(models.Course{Title: "Course"})

	require.NoError(t, enrollments.Enroll(42, "Alice", course.ID))
	require.NoError(t, enrollments.Enroll(42, "Alice", course.ID))

	assert.Len(t, enrollments.List(42), 1)
	stored, _ := repo.Get(course.ID)
	assert.Len(t, stored.EnrolledStudents, 1)
}

func TestEnrollUnknownCourse(t *testing.T) {
	kv := NewMemoryKV()
	enrollments := NewEnrollmentStore(kv, NewCourseRepository(kv))

	assert.ErrorIs(t, enrollments.Enroll(42, "Alice", 999), ErrNotFound)
	assert.Empty(t, enrollments.List(42))
}

func TestUnenrollRemovesMirrorEntry(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewCourseRepository(kv)
	enrollments := NewEnrollmentStore(kv, repo)

	course := repo.Add(models.Course{Title: "Course"})
	require.NoError(t, enrollments.Enroll(42, "Alice", course.ID))
	require.NoError(t, enrollments.Enroll(43, "Bob", course.ID))

	require.NoError(t, enrollments.Unenroll(42, "Alice", course.ID))

	assert.Empty(t, enrollments.List(42))
	stored, _ := repo.Get(course.ID)
	require.Len(t, stored.EnrolledStudents, 1)
	assert.Equal(t, models.ID(43), stored.EnrolledStudents[0].ID)

	assert.ErrorIs(t, enrollments.Unenroll(42, "Alice", course.ID), ErrNotFound)
}

func TestRecountEnrollments(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewCourseRepository(kv)
	enrollments := NewEnrollmentStore(kv, repo)

	course := repo.Add(models.Course{Title: "Course"})
	require.NoError(t, enrollments.Enroll(1, "Alice", course.ID))
	require.NoError(t, enrollments.Enroll(2, "Bob", course.ID))
	require.NoError(t, enrollments.Enroll(3, "Carol", course.ID))
	require.NoError(t, enrollments.Unenroll(2, "Bob", course.ID))

	assert.Equal(t, 2, enrollments.RecountEnrollments(course.ID))
	assert.Equal(t, 0, enrollments.RecountEnrollments(course.ID+1))
}

func TestInitializeAndCleanupUserData(t *testing.T) {
	kv := NewMemoryKV()
	enrollments := NewEnrollmentStore(kv, NewCourseRepository(kv))
	userID := models.ID(42)

	enrollments.InitializeUserData(userID)

	for _, key := range []string{"enrollments_42", "progress_42", "quiz_results_42"} {
		raw, ok := kv.Get(key)
		require.True(t, ok, key)
		assert.NotEmpty(t, raw)
	}

	// Re-initializing keeps existing data
	kv.Set("enrollments_42", "[1]")
	enrollments.InitializeUserData(userID)
	raw, _ := kv.Get("enrollments_42")
	assert.Equal(t, "[1]", raw)

	enrollments.CleanupUserData(userID)
	_, ok := kv.Get("enrollments_42")
	assert.False(t, ok)
	_, ok = kv.Get("progress_42")
	assert.False(t, ok)
}
