package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"user-presence-api/internal/application/ports"
	domain "user-presence-api/internal/domain/binary_content"
	"user-presence-api/internal/domain/errs"
	"user-presence-api/internal/infrastructure/metrics"
)

type BinaryContentService struct {
	s3                      ports.S3Client
	binaryContentRepository domain.Repository
	tx                      ports.TxManager
	mCounter                *prometheus.CounterVec
	now                     func() time.Time
}

func NewBinaryContentService(
	s3 ports.S3Client,
	binaryContentRepository domain.Repository,
	tx ports.TxManager,
	mCounter *prometheus.CounterVec,
) ports.BinaryContentService {
	return &BinaryContentService{
		s3:                      s3,
		binaryContentRepository: binaryContentRepository,
		tx:                      tx,
		mCounter:                mCounter,
		now:                     time.Now,
	}
}

// Create uploads the payload and stores its metadata. When the surrounding
// transaction rolls back the uploaded object is removed again.
func (bcs *BinaryContentService) Create(
	ctx context.Context,
	req ports.BinaryContentCreateRequest,
) (*domain.BinaryContent, error) {
	b, err := readPayload(req)
	if err != nil {
		return nil, err
	}

	now := bcs.now().UTC()
	c := domain.BinaryContent{
		ID:          uuid.New(),
		FileName:    sanitizeFileName(req.FileName),
		Size:        int64(len(b)),
		ContentType: contentTypeOf(req.ContentType, req.FileName),
		Bucket:      bcs.s3.GetBucket(),
		CreatedAt:   now,
	}
	c.StorageKey = genStorageKey(c.ID, c.FileName, now)

	var out *domain.BinaryContent
	err = bcs.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := bcs.s3.PutObject(ctx, c.StorageKey, c.ContentType, b); err != nil {
			return fmt.Errorf("put object %s: %w", c.StorageKey, err)
		}
		key := c.StorageKey
		bcs.tx.OnRollback(ctx, func(ctx context.Context) error {
			return bcs.s3.DeleteObject(ctx, key)
		})
		bcs.tx.AfterCommit(ctx, func(context.Context) error {
			bcs.mCounter.WithLabelValues(metrics.BinaryContentCreated).Inc()
			return nil
		})

		saved, err := bcs.binaryContentRepository.Save(ctx, c)
		if err != nil {
			return err
		}
		out = saved

		return nil
	})
	if err != nil {
		return nil, err
	}
	out.Bytes = b

	return out, nil
}

// Find returns the metadata together with the stored bytes.
func (bcs *BinaryContentService) Find(ctx context.Context, id uuid.UUID) (*domain.BinaryContent, error) {
	c, err := bcs.FindMetadata(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.Bytes, err = bcs.s3.GetObject(ctx, c.StorageKey); err != nil {
		return nil, fmt.Errorf("get object %s: %w", c.StorageKey, err)
	}

	return c, nil
}

// FindMetadata returns the stored row only; the object is not downloaded.
func (bcs *BinaryContentService) FindMetadata(ctx context.Context, id uuid.UUID) (*domain.BinaryContent, error) {
	c, err := bcs.binaryContentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("binary content %s: %w", id, errs.ErrNotFound)
	}

	return c, nil
}

// FindAllByIDs returns the contents with their bytes. Unknown ids and rows
// whose object is gone are skipped.
func (bcs *BinaryContentService) FindAllByIDs(ctx context.Context, ids []uuid.UUID) (domain.BinaryContents, error) {
	cs, err := bcs.FindAllMetadataByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make(domain.BinaryContents, 0, len(cs))
	for _, c := range cs {
		c.Bytes, err = bcs.s3.GetObject(ctx, c.StorageKey)
		if errors.Is(err, errs.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get object %s: %w", c.StorageKey, err)
		}
		out = append(out, c)
	}

	return out, nil
}

// FindAllMetadataByIDs returns the rows of the known ids without their bytes.
func (bcs *BinaryContentService) FindAllMetadataByIDs(ctx context.Context, ids []uuid.UUID) (domain.BinaryContents, error) {
	if len(ids) == 0 {
		return domain.BinaryContents{}, nil
	}

	cs, err := bcs.binaryContentRepository.FindAllByIDIn(ctx, ids)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		cs = domain.BinaryContents{}
	}

	return cs, nil
}

func (bcs *BinaryContentService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return bcs.binaryContentRepository.ExistsByID(ctx, id)
}

// Delete removes the metadata row; the stored object goes after commit.
func (bcs *BinaryContentService) Delete(ctx context.Context, id uuid.UUID) error {
	return bcs.tx.WithTx(ctx, func(ctx context.Context) error {
		c, err := bcs.binaryContentRepository.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("binary content %s: %w", id, errs.ErrNotFound)
		}

		if err = bcs.binaryContentRepository.DeleteByID(ctx, id); err != nil {
			return err
		}
		key := c.StorageKey
		bcs.tx.AfterCommit(ctx, func(ctx context.Context) error {
			bcs.mCounter.WithLabelValues(metrics.BinaryContentDeleted).Inc()
			return bcs.s3.DeleteObject(ctx, key)
		})

		return nil
	})
}

func readPayload(req ports.BinaryContentCreateRequest) ([]byte, error) {
	if req.Open == nil {
		return nil, fmt.Errorf("%w: no content source", errs.ErrInvalidPayload)
	}

	f, err := req.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", errs.ErrInvalidPayload, req.FileName, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", errs.ErrInvalidPayload, req.FileName, err)
	}

	return b, nil
}
