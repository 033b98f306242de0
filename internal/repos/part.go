package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/types"
)

type PartRepo interface {
	Create(ctx context.Context, tx *gorm.DB, parts []*types.Part) ([]*types.Part, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) ([]*types.Part, error)
	GetByEpisodeIDs(ctx context.Context, tx *gorm.DB, episodeIDs []uuid.UUID) ([]*types.Part, error)
	Update(ctx context.Context, tx *gorm.DB, part *types.Part) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) error
}

type partRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPartRepo(db *gorm.DB, baseLog *logger.Logger) PartRepo {
	return &partRepo{db: db, log: baseLog.With("repo", "PartRepo")}
}

func (r *partRepo) Create(ctx context.Context, tx *gorm.DB, parts []*types.Part) ([]*types.Part, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(parts) == 0 {
		return []*types.Part{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *partRepo) GetByIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) ([]*types.Part, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Part
	if len(partIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", partIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *partRepo) GetByEpisodeIDs(ctx context.Context, tx *gorm.DB, episodeIDs []uuid.UUID) ([]*types.Part, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Part
	if len(episodeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("episode_id IN ?", episodeIDs).
		Order("part_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *partRepo) Update(ctx context.Context, tx *gorm.DB, part *types.Part) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(part).Error
}

func (r *partRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(partIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", partIDs).
		Delete(&types.Part{}).Error
}
