package store

import (
	"encoding/json"

	"edusync/backend/models"
)

// UserStore persists registered users under the "users" key and the current
// session document under "user". The session document carries what the web
// client reads back on load: id, name, email, role and the bearer token.
type UserStore struct {
	kv KV
}

func NewUserStore(kv KV) *UserStore {
	return &UserStore{kv: kv}
}

func (u *UserStore) All() []models.User {
	raw, ok := u.kv.Get(keyUsers)
	if !ok {
		return []models.User{}
	}
	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return []models.User{}
	}
	return users
}

func (u *UserStore) FindByEmail(email string) (models.User, error) {
	for _, user := range u.All() {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (u *UserStore) FindByID(id models.ID) (models.User, error) {
	for _, user := range u.All() {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

// Create mints an id and appends the user. The caller hashes the password.
func (u *UserStore) Create(user models.User) models.User {
	users := u.All()

	user.ID = mintID(func(id models.ID) bool {
		for _, existing := range users {
			if existing.ID == id {
				return true
			}
		}
		return false
	})
	user.CreatedAt = nowRFC3339()

	users = append(users, user)
	if raw, err := json.Marshal(users); err == nil {
		u.kv.Set(keyUsers, string(raw))
	}
	return user
}

// Update replaces the stored user with the same id.
func (u *UserStore) Update(user models.User) error {
	users := u.All()
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			if raw, err := json.Marshal(users); err == nil {
				u.kv.Set(keyUsers, string(raw))
			}
			return nil
		}
	}
	return ErrNotFound
}

// SetSession writes the "user" document for the logged-in user.
func (u *UserStore) SetSession(user models.User, token string) {
	session := models.SessionUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}
	if raw, err := json.Marshal(session); err == nil {
		u.kv.Set(keySession, string(raw))
	}
}

// Session returns the current session document, if any.
func (u *UserStore) Session() (models.SessionUser, bool) {
	raw, ok := u.kv.Get(keySession)
	if !ok {
		return models.SessionUser{}, false
	}
	var session models.SessionUser
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return models.SessionUser{}, false
	}
	return session, true
}

// ClearSession drops the "user" document on logout.
func (u *UserStore) ClearSession() {
	u.kv.Remove(keySession)
}
