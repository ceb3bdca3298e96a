package models

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

type User struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Role         string `json:"role"`
	CreatedAt    string `json:"createdAt"`
}

// SessionUser is the document kept under the "user" key after login.
type SessionUser struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}
