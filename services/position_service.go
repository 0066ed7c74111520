package services

import (
	"holdings/database"
	"holdings/models"
)

// PositionService scopes position operations to the default user,
// the single account the record-management UI works with.
type PositionService struct {
	repo PositionRepository
}

// NewPositionService creates a new position service
func NewPositionService(repo PositionRepository) *PositionService {
	return &PositionService{repo: repo}
}

// List returns the default user's positions
func (ps *PositionService) List() ([]models.Position, error) {
	user, err := ps.repo.EnsureDefaultUser()
	if err != nil {
		return nil, err
	}

	return ps.repo.ListPositionsForUser(user.ID)
}

// Add stores a position for the default user and returns the refreshed list.
// Any user_id in the request is overridden.
func (ps *PositionService) Add(p models.NewPosition) ([]models.Position, error) {
	user, err := ps.repo.EnsureDefaultUser()
	if err != nil {
		return nil, err
	}

	p.UserID = user.ID
	positions, err := ps.repo.AddPosition(p)
	if database.IsForeignKeyViolation(err) {
		return nil, ErrUnknownOwner
	}
	return positions, err
}

// Update applies a sparse update and returns the row as stored afterwards.
// An empty update only reads the row back.
func (ps *PositionService) Update(id int64, u models.PositionUpdate) (*models.Position, error) {
	if !u.IsEmpty() {
		if err := ps.repo.UpdatePosition(id, u); err != nil {
			return nil, err
		}
	}

	position, err := ps.repo.GetPosition(id)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, ErrPositionNotFound
	}

	return position, nil
}

// Delete removes a position and returns the default user's refreshed list
func (ps *PositionService) Delete(id int64) ([]models.Position, error) {
	if err := ps.repo.DeletePosition(id); err != nil {
		return nil, err
	}

	return ps.List()
}
