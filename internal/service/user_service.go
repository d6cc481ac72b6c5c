// Package service implements the application's business logic.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// UserService resolves external identities to user records and manages
// profile data.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ResolveOrCreate looks up the user for the given identity, creating the
// record on first login. Repeat calls never create duplicates. When the
// identity provider reports a changed display name, the stored name is
// refreshed; nothing else is touched on an existing record.
func (s *UserService) ResolveOrCreate(ctx context.Context, identity models.Identity) (*models.User, error) {
	if !identity.Authenticated() {
		return nil, models.NewUnauthenticatedError("called storeUser without authentication present")
	}

	name := identity.Name
	if name == "" {
		name = models.AnonymousName
	}

	existing, err := s.userRepo.GetByToken(ctx, identity.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Name != name {
			if err := s.userRepo.UpdateFields(ctx, existing.ID, map[string]interface{}{"name": name}); err != nil {
				return nil, err
			}
			existing.Name = name
		}
		return existing, nil
	}

	user := &models.User{
		TokenIdentifier: identity.TokenIdentifier,
		Name:            name,
		Email:           identity.Email,
		ImageURL:        identity.PictureURL,
	}
	err = s.userRepo.Create(ctx, user)
	if err == nil {
		return user, nil
	}

	// Two first-login requests can race; the loser re-reads the row the
	// winner inserted.
	if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeConflict {
		winner, fetchErr := s.userRepo.GetByToken(ctx, identity.TokenIdentifier)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if winner != nil {
			return winner, nil
		}
	}
	return nil, err
}

// GetCurrent returns the stored user for the identity. An identity that
// has never been stored reads as missing.
func (s *UserService) GetCurrent(ctx context.Context, identity models.Identity) (*models.User, error) {
	if !identity.Authenticated() {
		return nil, models.NewUnauthenticatedError("")
	}
	user, err := s.userRepo.GetByToken(ctx, identity.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", identity.TokenIdentifier)
	}
	return user, nil
}

// SetUsername claims a unique handle for the current user and refreshes
// the activity timestamp.
func (s *UserService) SetUsername(ctx context.Context, identity models.Identity, username string) (*models.User, error) {
	if !identity.Authenticated() {
		return nil, models.NewUnauthenticatedError("")
	}
	user, err := s.userRepo.GetByToken(ctx, identity.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("User not found")
	}

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	// Idempotent re-claim of the user's own handle.
	if user.Username != nil && *user.Username == username {
		return user, nil
	}

	holder, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if holder != nil && holder.ID != user.ID {
		return nil, models.NewConflictError("Username already taken")
	}

	if err := s.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"username":       username,
		"last_active_at": nowFunc(),
	}); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, user.ID)
}

// GetPublicProfile returns the public view of a user by username.
func (s *UserService) GetPublicProfile(ctx context.Context, username string) (*models.PublicUser, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return s.userRepo.GetPublicProfile(ctx, username)
}
