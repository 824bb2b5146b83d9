package postimage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"peoplematching/internal/storage"
)

const (
	MaxFileSize = 10 * 1024 * 1024 // 10 MiB

	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Payload is one uploaded file as declared by the client.
type Payload struct {
	Name string
	Size int64
	Body io.Reader
}

type Option func(*Service)

// WithMaxFileSize lowers the upload limit. Values outside (0, MaxFileSize] are ignored.
func WithMaxFileSize(n int64) Option {
	return func(s *Service) {
		if n > 0 && n <= MaxFileSize {
			s.maxSize = n
		}
	}
}

// WithIDGenerator replaces the random token used for stored file names.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Service validates uploads, writes them to storage and records them.
type Service struct {
	repo    Repository
	storage storage.Storage
	log     *zap.Logger
	maxSize int64
	newID   func() string
}

func NewService(repo Repository, st storage.Storage, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		repo:    repo,
		storage: st,
		log:     log,
		maxSize: MaxFileSize,
		newID:   newUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate runs the payload checks in order; the first failure wins.
func (s *Service) Validate(p *Payload) error {
	if p == nil || p.Body == nil {
		return ErrMissingFile
	}
	if p.Size <= 0 {
		return ErrEmptyFile
	}
	if p.Size > s.maxSize {
		return ErrFileTooLarge
	}
	if _, ok := Extension(p.Name); !ok {
		return ErrUnsupportedFileType
	}
	return nil
}

// Ingest stores the payload and records it. The record is only created after
// the file write succeeded; if the commit fails the file is removed again.
func (s *Service) Ingest(ctx context.Context, p *Payload) (*PostImage, error) {
	if err := s.Validate(p); err != nil {
		return nil, err
	}

	name, err := NewFileName(p.Name, s.newID)
	if err != nil {
		return nil, err
	}
	log := s.log.With(zap.String("file_name", name), zap.Int64("declared_size", p.Size))

	// the declared size is client input; cap the real stream as well
	body := storage.NewMaxSizeReader(p.Body, s.maxSize)
	if err := s.storage.Save(ctx, name, body); err != nil {
		var limitErr *storage.ReachLimitError
		if errors.As(err, &limitErr) {
			log.Info("upload stream exceeded limit", zap.Int64("limit", limitErr.MaxBytes))
			return nil, ErrFileTooLarge
		}
		log.Error("failed to write upload", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	img := &PostImage{FileName: name}
	uow := s.repo.Begin()
	uow.Add(img)
	if err := uow.Save(ctx); err != nil {
		log.Error("failed to commit post image", zap.Error(err), zap.String("sqlstate", sqlState(err)))
		if rmErr := s.storage.Remove(context.WithoutCancel(ctx), name); rmErr != nil {
			log.Error("failed to remove orphaned upload", zap.Error(rmErr))
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistenceCommit, err)
	}

	log.Info("post image stored", zap.Int64("id", img.ID))
	return img, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*PostImage, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*PostImage, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
