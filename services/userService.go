package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/ezelectronics-api/models"
	"github.com/Kariqs/ezelectronics-api/repository"
	"gorm.io/gorm"
)

type UserService struct {
	users *repository.UserRepository
	now   func() time.Time
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users, now: time.Now}
}

// EnsureUser registers an authenticated caller the first time it is seen.
func (s *UserService) EnsureUser(ctx context.Context, user models.User) error {
	if err := s.users.Upsert(ctx, user); err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	return nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

// GetUserByUsername lets callers read their own account; Admins read any.
func (s *UserService) GetUserByUsername(ctx context.Context, caller models.User, username string) (*models.User, error) {
	if caller.Username != username && !caller.IsAdmin() {
		return nil, ErrUnauthorizedUser
	}
	return s.find(ctx, username)
}

// DeleteUser removes username. Non-Admins may only delete themselves and an
// Admin may not delete another Admin.
func (s *UserService) DeleteUser(ctx context.Context, caller models.User, username string) error {
	target, err := s.find(ctx, username)
	if err != nil {
		return err
	}
	if err := authorizeChange(caller, target); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *UserService) DeleteAllUsers(ctx context.Context) error {
	if err := s.users.DeleteAllNonAdmin(ctx); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}

// UpdateUserInfo replaces the profile fields of username under the same
// rules as DeleteUser and returns the stored result.
func (s *UserService) UpdateUserInfo(ctx context.Context, caller models.User, username string, info models.User) (*models.User, error) {
	target, err := s.find(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := authorizeChange(caller, target); err != nil {
		return nil, err
	}

	birthdate, err := time.Parse(time.DateOnly, info.Birthdate)
	if err != nil || birthdate.Format(time.DateOnly) > s.now().Format(time.DateOnly) {
		return nil, ErrInvalidBirthdate
	}

	if err := s.users.UpdateInfo(ctx, username, info); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.find(ctx, username)
}

func (s *UserService) find(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func authorizeChange(caller models.User, target *models.User) error {
	if caller.Username == target.Username {
		return nil
	}
	if !caller.IsAdmin() {
		return ErrUserNotAdmin
	}
	if target.IsAdmin() {
		return ErrUserIsAdmin
	}
	return nil
}
