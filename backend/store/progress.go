package store

import (
	"encoding/json"
	"math"

	"edusync/backend/models"
)

// ProgressRecorder tracks per-content completion flags. The dedicated
// "content_<id>_completed" key is the canonical representation; the
// "course_<id>_progress" map and the course's embedded progress field are
// derived views rewritten on every change, so the two never drift apart.
type ProgressRecorder struct {
	kv      KV
	courses *CourseRepository
}

func NewProgressRecorder(kv KV, courses *CourseRepository) *ProgressRecorder {
	return &ProgressRecorder{kv: kv, courses: courses}
}

func (p *ProgressRecorder) IsContentCompleted(contentID models.ID) bool {
	value, ok := p.kv.Get(contentCompletedKey(contentID))
	return ok && value == "true"
}

// SetContentCompleted writes the canonical flag, then rebuilds the derived
// per-course map and the embedded copy inside the course document. The
// course update is best-effort: an unknown course still leaves the flag set.
func (p *ProgressRecorder) SetContentCompleted(contentID, courseID models.ID, completed bool) error {
	if completed {
		p.kv.Set(contentCompletedKey(contentID), "true")
	} else {
		p.kv.Set(contentCompletedKey(contentID), "false")
	}

	course, err := p.courses.Get(courseID)
	if err != nil {
		return err
	}

	progress := make(map[models.ID]bool, len(course.Contents))
	for _, content := range course.Contents {
		progress[content.ID] = p.IsContentCompleted(content.ID)
	}

	raw, err := json.Marshal(progress)
	if err == nil {
		p.kv.Set(courseProgressKey(courseID), string(raw))
	}

	course.Progress = progress
	return p.courses.Update(course)
}

// CourseProgress returns the completion map and percentage for one course.
// A course with no content items is 0% complete.
func (p *ProgressRecorder) CourseProgress(courseID models.ID) (models.CourseProgress, error) {
	course, err := p.courses.Get(courseID)
	if err != nil {
		return models.CourseProgress{}, err
	}

	completed := make(map[models.ID]bool, len(course.Contents))
	done := 0
	for _, content := range course.Contents {
		ok := p.IsContentCompleted(content.ID)
		completed[content.ID] = ok
		if ok {
			done++
		}
	}

	return models.CourseProgress{
		CourseID:  courseID,
		Percent:   percent(done, len(course.Contents)),
		Completed: completed,
	}, nil
}

// CourseProgressPercent is the rounded completion percentage, 0..100.
func (p *ProgressRecorder) CourseProgressPercent(courseID models.ID) (int, error) {
	progress, err := p.CourseProgress(courseID)
	if err != nil {
		return 0, err
	}
	return progress.Percent, nil
}

// RecordUserPercent refreshes the per-user "progress_<userId>" document with
// the user's current percentage for one course.
func (p *ProgressRecorder) RecordUserPercent(userID, courseID models.ID) error {
	pct, err := p.CourseProgressPercent(courseID)
	if err != nil {
		return err
	}

	progress := p.UserProgress(userID)
	progress[courseID] = pct

	raw, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	p.kv.Set(userProgressKey(userID), string(raw))
	return nil
}

// UserProgress returns the per-user map of course id to completion
// percentage. Absent or malformed documents read as empty.
func (p *ProgressRecorder) UserProgress(userID models.ID) map[models.ID]int {
	raw, ok := p.kv.Get(userProgressKey(userID))
	if !ok {
		return map[models.ID]int{}
	}
	var progress map[models.ID]int
	if err := json.Unmarshal([]byte(raw), &progress); err != nil || progress == nil {
		return map[models.ID]int{}
	}
	return progress
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}
