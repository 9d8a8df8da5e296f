package user_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"user-presence-api/internal/domain/errs"
	domain "user-presence-api/internal/domain/user_status"
	"user-presence-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) domain.Repository {
	return &Repository{db: db}
}

func scan(row pgx.Row, s *UserStatus) error {
	return row.Scan(
		&s.ID,
		&s.UserID,
		&s.LastActiveAt,

		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

func (r *Repository) FindAll(ctx context.Context) (domain.UserStatuses, error) {
	rows, err := postgres.Conn(ctx, r.db).Query(ctx, SelectUserStatuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ss := UserStatuses{}
	for rows.Next() {
		s := new(UserStatus)
		if err = scan(rows, s); err != nil {
			return nil, err
		}
		ss = append(ss, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(ss), nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UserStatus, error) {
	return r.findOne(ctx, SelectUserStatusByID, id)
}

func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserStatus, error) {
	return r.findOne(ctx, SelectUserStatusByUserID, userID)
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*domain.UserStatus, error) {
	s := new(UserStatus)
	if err := scan(postgres.Conn(ctx, r.db).QueryRow(ctx, query, arg), s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(s), nil
}

// Save inserts or updates by id. A second status for the same user is rejected.
func (r *Repository) Save(ctx context.Context, req domain.UserStatus) (*domain.UserStatus, error) {
	s := new(UserStatus)
	err := scan(postgres.Conn(ctx, r.db).QueryRow(
		ctx,
		UpsertUserStatus,
		req.ID, req.UserID, req.LastActiveAt, req.CreatedAt, req.UpdatedAt,
	), s)
	if err != nil {
		if constraint, ok := postgres.UniqueViolation(err); ok && constraint == userIDConstraint {
			return nil, fmt.Errorf("user %s: %w", req.UserID, errs.ErrStatusExists)
		}
		return nil, err
	}

	return fromDBModel(s), nil
}

func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := postgres.Conn(ctx, r.db).Exec(ctx, DeleteUserStatusByID, id)
	return err
}

func (r *Repository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := postgres.Conn(ctx, r.db).Exec(ctx, DeleteUserStatusByUserID, userID)
	return err
}
