package models

const (
	ContentTypeVideo = "video"
	ContentTypeLink  = "link"
	ContentTypeFile  = "file"
)

type Course struct {
	ID               ID           `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	VideoURL         string       `json:"videoUrl,omitempty"`
	InstructorEmail  string       `json:"instructorEmail,omitempty"`
	InstructorName   string       `json:"instructorName,omitempty"`
	Contents         []Content    `json:"contents"`
	Quizzes          []Quiz       `json:"quizzes"`
	EnrolledStudents []StudentRef `json:"enrolledStudents"`
	Progress         map[ID]bool  `json:"progress,omitempty"`
	CreatedAt        string       `json:"createdAt"`
}

type Content struct {
	ID          ID     `json:"id"`
	Type        string `json:"type"` // video, link, file
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type StudentRef struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// CourseProgress is the per-course completion summary returned to consumers.
type CourseProgress struct {
	CourseID  ID          `json:"courseId"`
	Percent   int         `json:"percent"`
	Completed map[ID]bool `json:"completed"`
}
