// Package facade holds the application services behind the inbound ports.
// Each service validates input, calls storage and, once a mutation has
// succeeded, publishes the matching event.
package facade

import (
	"context"
	"fmt"
	"strings"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/logger"
	"go-blog-api/internal/port/inbound"
	"go-blog-api/internal/port/outbound"
)

type UserApplicationService struct {
	users   outbound.UserRepository
	avatars outbound.AvatarStore
	events  UserEvents
	logger  logger.Logger
}

var _ inbound.UserUseCase = (*UserApplicationService)(nil)

func NewUserApplicationService(
	users outbound.UserRepository,
	avatars outbound.AvatarStore,
	events UserEvents,
	log logger.Logger,
) *UserApplicationService {
	return &UserApplicationService{
		users:   users,
		avatars: avatars,
		events:  events,
		logger:  log.WithField("service", "user"),
	}
}

func (s *UserApplicationService) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateNewUser(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.events.Changed.Publish(ctx, domain.EventUserCreated, *user)
	return user, nil
}

func (s *UserApplicationService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateUser applies the non-nil fields of changes. A new password is hashed
// before it is stored.
func (s *UserApplicationService) UpdateUser(ctx context.Context, id int64, changes domain.UserChanges) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if changes.Empty() {
		return user, nil
	}

	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		user.Name = name
	}
	if changes.Email != nil {
		email := strings.TrimSpace(*changes.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if changes.Role != nil {
		if err := validateRole(*changes.Role); err != nil {
			return nil, err
		}
		user.Role = *changes.Role
	}
	if changes.Password != nil {
		if err := validatePassword(*changes.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*changes.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.events.Changed.Publish(ctx, domain.EventUserUpdated, *user)
	return user, nil
}

// DeleteUser removes the user and their posts, then drops the stored avatar.
func (s *UserApplicationService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	if user.Avatar != nil {
		s.removeAvatar(ctx, *user.Avatar)
	}

	s.events.Deleted.Publish(ctx, domain.EventUserDeleted, domain.UserDeleted{ID: id})
	return nil
}

// UploadAvatar stores the image, points the user at it and removes the
// previous image. The new object is removed again if the user row cannot
// be updated.
func (s *UserApplicationService) UploadAvatar(ctx context.Context, id int64, file outbound.AvatarFile) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.avatars.Upload(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	previous := user.Avatar
	user.Avatar = &url
	if err := s.users.Update(ctx, user); err != nil {
		s.removeAvatar(ctx, url)
		return nil, err
	}

	if previous != nil && *previous != url {
		s.removeAvatar(ctx, *previous)
	}

	s.events.Avatar.Publish(ctx, domain.EventUserAvatarUpdated, domain.AvatarUpdated{ID: user.ID, Avatar: url})
	return user, nil
}

func (s *UserApplicationService) removeAvatar(ctx context.Context, url string) {
	if err := s.avatars.Delete(ctx, url); err != nil {
		s.logger.WithError(err).Warnf("Failed to delete avatar %s", url)
	}
}
