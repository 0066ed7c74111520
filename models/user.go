package models

import "time"

// DefaultUsername and DefaultEmail identify the user seeded on an empty store.
const (
	DefaultUsername = "default_user"
	DefaultEmail    = "default@example.com"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// Todo is a row of the legacy demo table kept in the schema.
type Todo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
