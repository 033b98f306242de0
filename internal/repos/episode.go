package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/types"
)

type EpisodeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, episodes []*types.Episode) ([]*types.Episode, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, episodeIDs []uuid.UUID) ([]*types.Episode, error)
	GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Episode, error)
	Update(ctx context.Context, tx *gorm.DB, episode *types.Episode) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, episodeIDs []uuid.UUID) error
}

type episodeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEpisodeRepo(db *gorm.DB, baseLog *logger.Logger) EpisodeRepo {
	return &episodeRepo{db: db, log: baseLog.With("repo", "EpisodeRepo")}
}

func (r *episodeRepo) Create(ctx context.Context, tx *gorm.DB, episodes []*types.Episode) ([]*types.Episode, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(episodes) == 0 {
		return []*types.Episode{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&episodes).Error; err != nil {
		return nil, err
	}
	return episodes, nil
}

func (r *episodeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, episodeIDs []uuid.UUID) ([]*types.Episode, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Episode
	if len(episodeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", episodeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *episodeRepo) GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Episode, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Episode
	if len(projectIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Order("episode_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *episodeRepo) Update(ctx context.Context, tx *gorm.DB, episode *types.Episode) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(episode).Error
}

func (r *episodeRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, episodeIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(episodeIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", episodeIDs).
		Delete(&types.Episode{}).Error
}
