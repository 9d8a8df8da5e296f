package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"user-presence-api/internal/application/ports"
	"user-presence-api/internal/domain/errs"
	domain "user-presence-api/internal/domain/user"
	"user-presence-api/internal/domain/user_status"
	"user-presence-api/internal/infrastructure/metrics"
	"user-presence-api/internal/infrastructure/mq"
)

type UserService struct {
	userRepository       domain.Repository
	userStatusService    ports.UserStatusService
	binaryContentService ports.BinaryContentService
	tx                   ports.TxManager
	mq                   ports.RabbitMQ
	mCounter             *prometheus.CounterVec
	logger               *zap.Logger
	onlineWindow         time.Duration
	now                  func() time.Time
	hashCost             int
}

func NewUserService(
	userRepository domain.Repository,
	userStatusService ports.UserStatusService,
	binaryContentService ports.BinaryContentService,
	tx ports.TxManager,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
	onlineWindow time.Duration,
) ports.UserService {
	if onlineWindow <= 0 {
		onlineWindow = user_status.DefaultOnlineWindow
	}
	return &UserService{
		userRepository:       userRepository,
		userStatusService:    userStatusService,
		binaryContentService: binaryContentService,
		tx:                   tx,
		mq:                   mq,
		mCounter:             mCounter,
		logger:               logger,
		onlineWindow:         onlineWindow,
		now:                  time.Now,
		hashCost:             bcrypt.DefaultCost,
	}
}

// Create checks uniqueness before any write, then stores the profile image,
// the user and its status in one transaction.
func (us *UserService) Create(ctx context.Context, req ports.UserCreateRequest) (*domain.View, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", errs.ErrValidation)
	}
	if err := us.ensureUnique(ctx, email, username); err != nil {
		return nil, err
	}
	hash, err := us.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := us.now().UTC()
	var (
		created *domain.User
		status  *user_status.UserStatus
	)
	err = us.tx.WithTx(ctx, func(ctx context.Context) error {
		u := domain.User{
			ID:           uuid.New(),
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if !req.ProfileImage.IsEmpty() {
			c, err := us.binaryContentService.Create(ctx, *req.ProfileImage)
			if err != nil {
				return err
			}
			u.ProfileID = &c.ID
		}

		var err error
		if created, err = us.userRepository.Save(ctx, u); err != nil {
			return err
		}
		status, err = us.userStatusService.Create(ctx, created.ID, now)

		return err
	})
	if err != nil {
		return nil, err
	}

	v := domain.ToView(*created, status, us.now(), us.onlineWindow)
	us.publish(mq.UserCreated, v)
	us.mCounter.WithLabelValues(metrics.UserCreated).Inc()

	return &v, nil
}

func (us *UserService) Find(ctx context.Context, id domain.UUID) (*domain.View, error) {
	u, err := us.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	st, err := us.statusOf(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	v := domain.ToView(*u, st, us.now(), us.onlineWindow)

	return &v, nil
}

func (us *UserService) FindAll(ctx context.Context) ([]domain.View, error) {
	users, err := us.userRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return []domain.View{}, nil
	}

	statuses, err := us.userStatusService.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byUser := make(map[uuid.UUID]*user_status.UserStatus, len(statuses))
	for _, s := range statuses {
		byUser[s.UserID] = s
	}

	now := us.now()
	vs := make([]domain.View, len(users))
	for idx, u := range users {
		vs[idx] = domain.ToView(*u, byUser[u.ID], now, us.onlineWindow)
	}

	return vs, nil
}

func (us *UserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := us.userRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %q: %w", username, errs.ErrNotFound)
	}

	return u, nil
}

// Update re-checks only the fields that actually change, so resubmitting the
// current email or username is not reported as a duplicate. A new profile
// image replaces the old one: the old content is deleted before the new one
// is created.
func (us *UserService) Update(ctx context.Context, id domain.UUID, req ports.UserUpdateRequest) (*domain.View, error) {
	u, err := us.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	newEmail := changed(req.NewEmail, u.Email)
	newUsername := changed(req.NewUsername, u.Username)
	if err = us.ensureUnique(ctx, newEmail, newUsername); err != nil {
		return nil, err
	}
	var newHash string
	if req.NewPassword != "" {
		if newHash, err = us.hashPassword(req.NewPassword); err != nil {
			return nil, err
		}
	}

	var (
		updated *domain.User
		status  *user_status.UserStatus
	)
	err = us.tx.WithTx(ctx, func(ctx context.Context) error {
		if !req.NewProfileImage.IsEmpty() {
			if u.ProfileID != nil {
				if err := us.binaryContentService.Delete(ctx, *u.ProfileID); err != nil && !errors.Is(err, errs.ErrNotFound) {
					return err
				}
			}
			c, err := us.binaryContentService.Create(ctx, *req.NewProfileImage)
			if err != nil {
				return err
			}
			u.ProfileID = &c.ID
		}

		if newEmail != "" {
			u.Email = newEmail
		}
		if newUsername != "" {
			u.Username = newUsername
		}
		if newHash != "" {
			u.PasswordHash = newHash
		}
		u.UpdatedAt = us.now().UTC()

		var err error
		if updated, err = us.userRepository.Save(ctx, *u); err != nil {
			return err
		}
		status, err = us.statusOf(ctx, updated.ID)

		return err
	})
	if err != nil {
		return nil, err
	}

	v := domain.ToView(*updated, status, us.now(), us.onlineWindow)
	us.publish(mq.UserUpdated, v)
	us.mCounter.WithLabelValues(metrics.UserUpdated).Inc()

	return &v, nil
}

// Delete removes the dependents before the user row: profile image, status, user.
func (us *UserService) Delete(ctx context.Context, id domain.UUID) error {
	u, err := us.findUser(ctx, id)
	if err != nil {
		return err
	}

	err = us.tx.WithTx(ctx, func(ctx context.Context) error {
		if u.ProfileID != nil {
			if err := us.binaryContentService.Delete(ctx, *u.ProfileID); err != nil && !errors.Is(err, errs.ErrNotFound) {
				return err
			}
		}
		if err := us.userStatusService.DeleteByUserID(ctx, u.ID); err != nil {
			return err
		}

		return us.userRepository.DeleteByID(ctx, u.ID)
	})
	if err != nil {
		return err
	}

	us.publish(mq.UserDeleted, domain.ToView(*u, nil, us.now(), us.onlineWindow))
	us.mCounter.WithLabelValues(metrics.UserDeleted).Inc()

	return nil
}

func (us *UserService) findUser(ctx context.Context, id domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", id, errs.ErrNotFound)
	}

	return u, nil
}

// statusOf returns nil without error when the user has no status record.
func (us *UserService) statusOf(ctx context.Context, userID domain.UUID) (*user_status.UserStatus, error) {
	st, err := us.userStatusService.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return st, nil
}

// ensureUnique checks email first, then username. Empty values are skipped.
func (us *UserService) ensureUnique(ctx context.Context, email, username string) error {
	if email != "" {
		exists, err := us.userRepository.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateEmail, email)
		}
	}
	if username != "" {
		exists, err := us.userRepository.ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateUsername, username)
		}
	}

	return nil
}

func (us *UserService) hashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is required", errs.ErrValidation)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), us.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %v", errs.ErrValidation, err)
		}
		return "", err
	}

	return string(h), nil
}

// publish never blocks the request: with a full buffer the event is dropped.
func (us *UserService) publish(action string, v domain.View) {
	if us.mq == nil {
		return
	}
	select {
	case us.mq.GetInputChan() <- mq.NewEvent(action, v):
	default:
		us.mCounter.WithLabelValues(metrics.EventDropped).Inc()
		us.logger.Warn("mq buffer full, event dropped",
			zap.String("action", action),
			zap.String("user_id", v.ID.String()),
		)
	}
}

// changed returns next when it is set and differs from cur, "" otherwise.
func changed(next, cur string) string {
	next = strings.TrimSpace(next)
	if next == "" || next == cur {
		return ""
	}
	return next
}
