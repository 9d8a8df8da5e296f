package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"user-presence-api/internal/domain/errs"
	"user-presence-api/internal/domain/user"
	"user-presence-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) user.Repository {
	return &Repository{db: db}
}

func scan(row pgx.Row, u *User) error {
	return row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.ProfileID,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

func (r *Repository) FindAll(ctx context.Context) (user.Users, error) {
	rows, err := postgres.Conn(ctx, r.db).Query(ctx, SelectUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := Users{}
	for rows.Next() {
		u := new(User)
		if err = scan(rows, u); err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(us), nil
}

func (r *Repository) FindByID(ctx context.Context, id user.UUID) (*user.User, error) {
	return r.findOne(ctx, SelectUserByID, id)
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, SelectUserByUsername, username)
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	u := new(User)
	if err := scan(postgres.Conn(ctx, r.db).QueryRow(ctx, query, arg), u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

// Save inserts or updates by id. Unique violations are reported as duplicate errors.
func (r *Repository) Save(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)
	err := scan(postgres.Conn(ctx, r.db).QueryRow(
		ctx,
		UpsertUser,
		req.ID, req.Username, req.Email, req.PasswordHash, req.ProfileID, req.CreatedAt, req.UpdatedAt,
	), u)
	if err != nil {
		if constraint, ok := postgres.UniqueViolation(err); ok {
			switch constraint {
			case emailConstraint:
				return nil, fmt.Errorf("%w: %s", errs.ErrDuplicateEmail, req.Email)
			case usernameConstraint:
				return nil, fmt.Errorf("%w: %s", errs.ErrDuplicateUsername, req.Username)
			}
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, ExistsByEmail, email)
}

func (r *Repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, ExistsByUsername, username)
}

func (r *Repository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *Repository) DeleteByID(ctx context.Context, id user.UUID) error {
	_, err := postgres.Conn(ctx, r.db).Exec(ctx, DeleteUserByID, id)
	return err
}
