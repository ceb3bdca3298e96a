package store

import (
	"testing"

	"edusync/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCourseWithContents(t *testing.T, repo *CourseRepository, n int) (models.Course, []models.Content) {
	t.Helper()
	course := repo.Add(models.Course{Title: "Course"})
	contents := make([]models.Content, 0, n)
	for i := 0; i < n; i++ {
		content, err := repo.AddContent(course.ID, models.Content{
			Type:  models.ContentTypeLink,
			Title: "Item",
			URL:   "https://example.com",
		})
		require.NoError(t, err)
		contents = append(contents, content)
	}
	return course, contents
}

func TestCourseProgressPercent(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewCourseRepository(kv)
	rec := NewProgressRecorder(kv, repo)

	course, contents := seedCourseWithContents(t, repo, 3)

	pct, err := rec.CourseProgressPercent(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, pct)

	require.NoError(t, rec.SetContentCompleted(contents[0].ID, course.ID, true))
	pct, _ = rec.CourseProgressPercent(course.ID)
	assert.Equal(t, 33, pct) // round(100*1/3)

	require.NoError(t, rec.SetContentCompleted(contents[1].ID, course.ID, true))
	pct, _ = rec.CourseProgressPercent(course.ID)
	assert.Equal(t, 67, pct) // round(100*2/3)

	require.NoError(t, rec.SetContentCompleted(contents[2].ID, course.ID, true))
	pct, _ = rec.CourseProgressPercent(course.ID)
	assert.Equal(t, 100, pct)

	// Un-completing moves the flag back
	require.NoError(t, rec.SetContentCompleted(contents[2].ID, course.ID, false))
	pct, _ = rec.CourseProgressPercent(course.ID)
	assert.Equal(t, 67, pct)
}

func TestCourseProgressPercentEmptyCourse(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewCourseRepository(kv)
	rec := NewProgressRecorder(kv, repo)

	course := repo.Add(models.Course{Title: "Empty"})

	pct, err := rec.CourseProgressPercent(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, pct)
}

func TestSetContentCompletedWritesCanonicalKey(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewCourseRepository(kv)
	rec := NewProgressRecorder(kv, repo)

	course, contents := seedCourseWithContents(t, repo, 2)
	require.NoError(t, rec.SetContentCompleted(contents[0].ID, course.ID, true))

	// Canonical flag
	raw, ok := kv.Get("content_" + contents[0].ID.String() + "_completed")
	require.True(t, ok)
	assert.Equal(t, "true", raw)

	// Derived per-course map stays in sync with the canonical flags
	raw, ok = kv.Get("course_" + course.ID.String() + "_progress")
	require.True(t, ok)
	assert.JSONEq(t,
		`{"`+contents[0].ID.String()+`":true,"`+contents[1].ID.String()+`":false}`,
		raw)

	// Embedded copy inside the course document is refreshed too
	stored, err := repo.Get(course.ID)
	require.NoError(t, err)
	assert.True(t, stored.Progress[contents[0].ID])
	assert.False(t, stored.Progress[contents[1].ID])
}

func TestSetContentCompletedUnknownCourse(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewCourseRepository(kv)
	rec := NewProgressRecorder(kv, repo)

	err := rec.SetContentCompleted(1, 999, true)
	assert.ErrorIs(t, err, ErrNotFound)

	// The canonical flag is still set; the course update is best-effort.
	assert.True(t, rec.IsContentCompleted(1))
}

func TestRecordUserPercent(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewCourseRepository(kv)
	rec := NewProgressRecorder(kv, repo)

	course, contents := seedCourseWithContents(t, repo, 2)
	userID := models.ID(42)

	require.NoError(t, rec.SetContentCompleted(contents[0].ID, course.ID, true))
	require.NoError(t, rec.RecordUserPercent(userID, course.ID))

	progress := rec.UserProgress(userID)
	assert.Equal(t, 50, progress[course.ID])

	assert.Empty(t, rec.UserProgress(models.ID(7)))
}
