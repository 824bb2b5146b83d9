package postimage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// UnitOfWork batches pending inserts until Save commits them together.
// A UnitOfWork belongs to a single call and is not safe for concurrent use.
type UnitOfWork interface {
	Add(img *PostImage)
	Save(ctx context.Context) error
}

type Repository interface {
	Begin() UnitOfWork
	GetByID(ctx context.Context, id int64) (*PostImage, error)
	List(ctx context.Context, limit, offset int) ([]*PostImage, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Begin() UnitOfWork {
	return &unitOfWork{db: r.db}
}

func (r *repository) GetByID(ctx context.Context, id int64) (*PostImage, error) {
	var img PostImage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]*PostImage, error) {
	var imgs []*PostImage
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Offset(offset).Find(&imgs).Error
	return imgs, err
}

type unitOfWork struct {
	db      *gorm.DB
	pending []*PostImage
}

func (u *unitOfWork) Add(img *PostImage) {
	u.pending = append(u.pending, img)
}

func (u *unitOfWork) Save(ctx context.Context) error {
	if len(u.pending) == 0 {
		return nil
	}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, img := range u.pending {
			if err := tx.Create(img).Error; err != nil {
				return fmt.Errorf("insert post image %q: %w", img.FileName, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	u.pending = nil
	return nil
}
