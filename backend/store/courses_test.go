package store

import (
	"testing"

	"edusync/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllAbsentKey(t *testing.T) {
	repo := NewCourseRepository(NewMemoryKV())
	assert.Empty(t, repo.LoadAll())
}

func TestLoadAllCorruptDocument(t *testing.T) {
	// Corruption degrades silently to "no data": callers never see a
	// parse error.
	kv := NewMemoryKV()
	kv.Set("courses", "{not valid json")

	repo := NewCourseRepository(kv)
	assert.Empty(t, repo.LoadAll())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewCourseRepository(kv)

	repo.Add(models.Course{Title: "Go", Description: "Basics"})
	repo.Add(models.Course{Title: "SQL", Description: "Joins"})

	before, ok := kv.Get("courses")
	require.True(t, ok)

	repo.SaveAll(repo.LoadAll())

	after, _ := kv.Get("courses")
	assert.JSONEq(t, before, after)
}

func TestAddMintsUniqueIDs(t *testing.T) {
	repo := NewCourseRepository(NewMemoryKV())

	var ids []models.ID
	for i := 0; i < 5; i++ {
		course := repo.Add(models.Course{Title: "Course"})
		for _, existing := range ids {
			assert.NotEqual(t, existing, course.ID)
		}
		ids = append(ids, course.ID)
	}
}

func TestAddInitializesEmbeddedLists(t *testing.T) {
	repo := NewCourseRepository(NewMemoryKV())
	course := repo.Add(models.Course{Title: "Course"})

	assert.NotNil(t, course.Contents)
	assert.NotNil(t, course.Quizzes)
	assert.NotNil(t, course.EnrolledStudents)
	assert.NotEmpty(t, course.CreatedAt)
}

func TestGetNormalizesLookup(t *testing.T) {
	repo := NewCourseRepository(NewMemoryKV())
	created := repo.Add(models.Course{Title: "Course"})

	// Route parameters arrive as strings; the lookup goes through ParseID.
	id, err := models.ParseID(created.ID.String())
	require.NoError(t, err)

	found, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, created.Title, found.Title)

	_, err = repo.Get(created.ID + 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	repo := NewCourseRepository(NewMemoryKV())
	first := repo.Add(models.Course{Title: "First"})
	second := repo.Add(models.Course{Title: "Second"})
	third := repo.Add(models.Course{Title: "Third"})

	require.NoError(t, repo.Delete(second.ID))

	remaining := repo.LoadAll()
	require.Len(t, remaining, 2)
	assert.Equal(t, first.ID, remaining[0].ID)
	assert.Equal(t, third.ID, remaining[1].ID)

	assert.ErrorIs(t, repo.Delete(second.ID), ErrNotFound)
}

func TestAddContentAndQuiz(t *testing.T) {
	repo := NewCourseRepository(NewMemoryKV())
	course := repo.Add(models.Course{Title: "Course"})

	content, err := repo.AddContent(course.ID, models.Content{
		Type:  models.ContentTypeVideo,
		Title: "Intro",
		URL:   "https://example.com/intro",
	})
	require.NoError(t, err)
	assert.NotZero(t, content.ID)

	quiz, err := repo.AddQuiz(course.ID, models.Quiz{
		Title: "Checkpoint",
		Questions: []models.Question{
			{Question: "?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1, Marks: 10},
			{Question: "??", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0, Marks: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 15, quiz.TotalMarks)

	stored, err := repo.Get(course.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Contents, 1)
	assert.Len(t, stored.Quizzes, 1)

	_, err = repo.AddContent(course.ID+1, models.Content{Title: "Orphan"})
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := repo.FindQuiz(course.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.Title, found.Title)

	_, err = repo.FindQuiz(course.ID, quiz.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}
