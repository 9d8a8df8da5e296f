package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"user-presence-api/internal/application/ports"
	"user-presence-api/internal/domain/errs"
	domain "user-presence-api/internal/domain/user_status"
)

type UserStatusService struct {
	userStatusRepository domain.Repository
	onlineWindow         time.Duration
	now                  func() time.Time
}

func NewUserStatusService(
	userStatusRepository domain.Repository,
	onlineWindow time.Duration,
) ports.UserStatusService {
	if onlineWindow <= 0 {
		onlineWindow = domain.DefaultOnlineWindow
	}
	return &UserStatusService{
		userStatusRepository: userStatusRepository,
		onlineWindow:         onlineWindow,
		now:                  time.Now,
	}
}

// Create is called by the user aggregate only, right after the user row is written.
func (uss *UserStatusService) Create(
	ctx context.Context,
	userID uuid.UUID,
	lastActiveAt time.Time,
) (*domain.UserStatus, error) {
	existing, err := uss.userStatusRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user %s: %w", userID, errs.ErrStatusExists)
	}

	now := uss.now().UTC()
	return uss.userStatusRepository.Save(ctx, domain.UserStatus{
		ID:           uuid.New(),
		UserID:       userID,
		LastActiveAt: lastActiveAt.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (uss *UserStatusService) Find(ctx context.Context, id uuid.UUID) (*domain.UserStatus, error) {
	s, err := uss.userStatusRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("user status %s: %w", id, errs.ErrNotFound)
	}

	return s, nil
}

func (uss *UserStatusService) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserStatus, error) {
	s, err := uss.userStatusRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("user status for user %s: %w", userID, errs.ErrNotFound)
	}

	return s, nil
}

func (uss *UserStatusService) FindAll(ctx context.Context) (domain.UserStatuses, error) {
	ss, err := uss.userStatusRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if ss == nil {
		ss = domain.UserStatuses{}
	}

	return ss, nil
}

func (uss *UserStatusService) Update(
	ctx context.Context,
	id uuid.UUID,
	lastActiveAt time.Time,
) (*domain.UserStatus, error) {
	s, err := uss.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	return uss.touch(ctx, s, lastActiveAt)
}

func (uss *UserStatusService) UpdateByUserID(
	ctx context.Context,
	userID uuid.UUID,
	lastActiveAt time.Time,
) (*domain.UserStatus, error) {
	s, err := uss.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return uss.touch(ctx, s, lastActiveAt)
}

func (uss *UserStatusService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := uss.Find(ctx, id); err != nil {
		return err
	}

	return uss.userStatusRepository.DeleteByID(ctx, id)
}

// DeleteByUserID is part of the user delete cascade and does not fail on a missing status.
func (uss *UserStatusService) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return uss.userStatusRepository.DeleteByUserID(ctx, userID)
}

func (uss *UserStatusService) IsOnline(s domain.UserStatus) bool {
	return s.IsOnline(uss.now(), uss.onlineWindow)
}

func (uss *UserStatusService) touch(
	ctx context.Context,
	s *domain.UserStatus,
	lastActiveAt time.Time,
) (*domain.UserStatus, error) {
	now := uss.now()
	if lastActiveAt.After(now) {
		return nil, fmt.Errorf("%w: last active time %s is in the future", errs.ErrValidation, lastActiveAt.UTC().Format(time.RFC3339))
	}
	s.LastActiveAt = lastActiveAt.UTC()
	s.UpdatedAt = now.UTC()

	return uss.userStatusRepository.Save(ctx, *s)
}
