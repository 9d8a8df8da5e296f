package binary_content

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "user-presence-api/internal/domain/binary_content"
	"user-presence-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) domain.Repository {
	return &Repository{db: db}
}

func scan(row pgx.Row, c *BinaryContent) error {
	return row.Scan(
		&c.ID,
		&c.FileName,
		&c.SizeBytes,
		&c.ContentType,
		&c.Bucket,
		&c.StorageKey,

		&c.CreatedAt,
	)
}

// Save inserts only: binary contents are never edited in place.
func (r *Repository) Save(ctx context.Context, req domain.BinaryContent) (*domain.BinaryContent, error) {
	c := new(BinaryContent)
	if err := scan(postgres.Conn(ctx, r.db).QueryRow(
		ctx,
		InsertBinaryContent,
		req.ID, req.FileName, req.Size, req.ContentType, req.Bucket, req.StorageKey, req.CreatedAt,
	), c); err != nil {
		return nil, err
	}

	return fromDBModel(c), nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*domain.BinaryContent, error) {
	c := new(BinaryContent)
	if err := scan(postgres.Conn(ctx, r.db).QueryRow(ctx, SelectBinaryContentByID, id), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(c), nil
}

func (r *Repository) FindAllByIDIn(ctx context.Context, ids []uuid.UUID) (domain.BinaryContents, error) {
	if len(ids) == 0 {
		return domain.BinaryContents{}, nil
	}

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, SelectBinaryContentsByIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cs := BinaryContents{}
	for rows.Next() {
		c := new(BinaryContent)
		if err = scan(rows, c); err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(cs), nil
}

func (r *Repository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	if err := postgres.Conn(ctx, r.db).QueryRow(ctx, ExistsBinaryContentByID, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := postgres.Conn(ctx, r.db).Exec(ctx, DeleteBinaryContentByID, id)
	return err
}
