package services

import (
	"holdings/database"
	"holdings/models"
)

// UserService handles business logic for users
type UserService struct {
	repo UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Create registers a new user. Username or email collisions map to ErrUserExists.
func (us *UserService) Create(username, email string) (*models.User, error) {
	user, err := us.repo.CreateUser(username, email)
	if database.IsConstraintViolation(err) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (us *UserService) Get(id int64) (*models.User, error) {
	user, err := us.repo.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (us *UserService) GetByUsername(username string) (*models.User, error) {
	user, err := us.repo.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Default returns the default user, creating it when needed
func (us *UserService) Default() (*models.User, error) {
	return us.repo.EnsureDefaultUser()
}
