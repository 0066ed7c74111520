package services

import "holdings/models"

// PositionRepository defines the interface for position data access
type PositionRepository interface {
	EnsureDefaultUser() (*models.User, error)
	ListPositionsForUser(userID int64) ([]models.Position, error)
	GetPosition(id int64) (*models.Position, error)
	AddPosition(p models.NewPosition) ([]models.Position, error)
	UpdatePosition(id int64, u models.PositionUpdate) error
	DeletePosition(id int64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	CreateUser(username, email string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	EnsureDefaultUser() (*models.User, error)
}

// TodoRepository defines the interface for the legacy demo rows
type TodoRepository interface {
	ListTodos() ([]models.Todo, error)
}
