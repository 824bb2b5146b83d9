package post

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	p := &Post{
		Title:     strings.TrimSpace(req.Title),
		Body:      req.Body,
		Author:    strings.TrimSpace(req.Author),
		Remark:    req.Remark,
		LastField: s.now().UTC(),
	}
	if p.Title == "" || p.Author == "" {
		return nil, ErrValidation
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// 22001: string_data_right_truncation
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "22001" {
			return nil, ErrValidation
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.log.Info("post created", zap.Int64("id", p.ID), zap.String("author", p.Author))
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Post, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
