package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/types"
)

type ImageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, images []*types.Image) ([]*types.Image, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) ([]*types.Image, error)
	GetByPartIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) ([]*types.Image, error)
	GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Image, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) error
	CountByPartID(ctx context.Context, tx *gorm.DB, partID uuid.UUID) (int64, error)
}

type imageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewImageRepo(db *gorm.DB, baseLog *logger.Logger) ImageRepo {
	return &imageRepo{db: db, log: baseLog.With("repo", "ImageRepo")}
}

func (r *imageRepo) Create(ctx context.Context, tx *gorm.DB, images []*types.Image) ([]*types.Image, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(images) == 0 {
		return []*types.Image{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepo) GetByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) ([]*types.Image, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Image
	if len(imageIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", imageIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *imageRepo) GetByPartIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) ([]*types.Image, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Image
	if len(partIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("part_id IN ?", partIDs).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *imageRepo) GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Image, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Image
	if len(projectIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *imageRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(imageIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", imageIDs).
		Delete(&types.Image{}).Error
}

func (r *imageRepo) CountByPartID(ctx context.Context, tx *gorm.DB, partID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Image{}).
		Where("part_id = ?", partID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
