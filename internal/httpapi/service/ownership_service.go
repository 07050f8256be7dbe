package service

import (
	"context"
	"errors"

	"carshare/internal/httpapi/models"
	"carshare/internal/httpapi/repository"
)

var (
	ErrAlreadyAttached = errors.New("car already attached to this user")
	ErrNotAttached     = errors.New("car is not attached to this user")
	ErrAlreadyShared   = errors.New("user already has access to this car")
	ErrNoAccess        = errors.New("no rights over this car")
	ErrUserNotFound    = errors.New("user not found")
)

// OwnershipService decides who may do what with a car and mutates the
// user/car association accordingly. The acting user is always an explicit
// argument; nothing here reads ambient session state.
type OwnershipService interface {
	HasAccess(ctx context.Context, carID int64, userID string) (bool, error)
	Attach(ctx context.Context, carID int64, userID string) error
	Detach(ctx context.Context, carID int64, userID string) error
	Share(ctx context.Context, carID int64, grantorID, recipientEmail string) (*models.User, error)
	CarUsers(ctx context.Context, carID int64) ([]models.User, error)
}

type ownershipService struct {
	ownerships repository.OwnershipRepository
	users      repository.UserRepository
}

func NewOwnershipService(ownerships repository.OwnershipRepository, users repository.UserRepository) OwnershipService {
	return &ownershipService{ownerships: ownerships, users: users}
}

// HasAccess reports whether an association row exists for (user, car).
// An empty userID stands for an unauthenticated caller and is never granted.
func (s *ownershipService) HasAccess(ctx context.Context, carID int64, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.ownerships.Exists(ctx, userID, carID)
}

// Attach lets the acting user claim the car for themselves. Any
// authenticated user may attach any existing car; unlike Share there is no
// prior-rights requirement.
func (s *ownershipService) Attach(ctx context.Context, carID int64, userID string) error {
	attached, err := s.HasAccess(ctx, carID, userID)
	if err != nil {
		return err
	}
	if attached {
		return ErrAlreadyAttached
	}

	if err := s.ownerships.Attach(ctx, userID, carID); err != nil {
		// A concurrent attach may win between the check and the insert; the
		// loser sees the uniqueness violation and reports the same conflict.
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyAttached
		}
		return err
	}
	return nil
}

// Detach removes the acting user's own association. Other users' rows for
// the same car are untouched.
func (s *ownershipService) Detach(ctx context.Context, carID int64, userID string) error {
	attached, err := s.HasAccess(ctx, carID, userID)
	if err != nil {
		return err
	}
	if !attached {
		return ErrNotAttached
	}

	if err := s.ownerships.Detach(ctx, userID, carID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotAttached
		}
		return err
	}
	return nil
}

// Share grants the recipient an association row. The grantor must already
// hold access; this is a delegation of an existing right, not a self-claim.
// Returns the recipient so callers can echo their public identity.
func (s *ownershipService) Share(ctx context.Context, carID int64, grantorID, recipientEmail string) (*models.User, error) {
	granted, err := s.HasAccess(ctx, carID, grantorID)
	if err != nil {
		return nil, err
	}
	if !granted {
		return nil, ErrNoAccess
	}

	recipient, err := s.users.FindByEmail(ctx, recipientEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	already, err := s.HasAccess(ctx, carID, recipient.ID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, ErrAlreadyShared
	}

	if err := s.ownerships.Attach(ctx, recipient.ID, carID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyShared
		}
		return nil, err
	}
	return recipient, nil
}

// CarUsers lists every user associated with the car in the association
// table's natural order. Access is the caller's concern; this is always
// invoked after a successful HasAccess check.
func (s *ownershipService) CarUsers(ctx context.Context, carID int64) ([]models.User, error) {
	return s.ownerships.UsersForCar(ctx, carID)
}
