package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/types"
)

type ClipRepo interface {
	Create(ctx context.Context, tx *gorm.DB, clips []*types.Clip) ([]*types.Clip, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, clipIDs []uuid.UUID) ([]*types.Clip, error)
	GetByPartIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) ([]*types.Clip, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, clipIDs []uuid.UUID) error
	CountByPartID(ctx context.Context, tx *gorm.DB, partID uuid.UUID) (int64, error)
}

type clipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClipRepo(db *gorm.DB, baseLog *logger.Logger) ClipRepo {
	return &clipRepo{db: db, log: baseLog.With("repo", "ClipRepo")}
}

func (r *clipRepo) Create(ctx context.Context, tx *gorm.DB, clips []*types.Clip) ([]*types.Clip, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(clips) == 0 {
		return []*types.Clip{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&clips).Error; err != nil {
		return nil, err
	}
	return clips, nil
}

func (r *clipRepo) GetByIDs(ctx context.Context, tx *gorm.DB, clipIDs []uuid.UUID) ([]*types.Clip, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Clip
	if len(clipIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", clipIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *clipRepo) GetByPartIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) ([]*types.Clip, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Clip
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

func (r *clipRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, clipIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(clipIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", clipIDs).
		Delete(&types.Clip{}).Error
}

func (r *clipRepo) CountByPartID(ctx context.Context, tx *gorm.DB, partID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Clip{}).
		Where("part_id = ?", partID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
