package services

import "errors"

// Common service-level errors
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	// Position errors
	ErrPositionNotFound = errors.New("position not found")
	ErrUnknownOwner     = errors.New("position owner does not exist")
)
