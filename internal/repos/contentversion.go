package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/types"
)

type ContentVersionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, versions []*types.ContentVersion) ([]*types.ContentVersion, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ContentVersion, error)
	GetByPartID(ctx context.Context, tx *gorm.DB, partID uuid.UUID, kind string) ([]*types.ContentVersion, error)
	GetByPartIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) ([]*types.ContentVersion, error)
	MaxVersionNo(ctx context.Context, tx *gorm.DB, partID uuid.UUID, kind string) (int, error)
	UnselectSiblings(ctx context.Context, tx *gorm.DB, partID uuid.UUID, kind string, keepID uuid.UUID) error
	Update(ctx context.Context, tx *gorm.DB, version *types.ContentVersion) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	CountByPartID(ctx context.Context, tx *gorm.DB, partID uuid.UUID, kind string) (int64, error)
}

type contentVersionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentVersionRepo(db *gorm.DB, baseLog *logger.Logger) ContentVersionRepo {
	return &contentVersionRepo{db: db, log: baseLog.With("repo", "ContentVersionRepo")}
}

func (r *contentVersionRepo) Create(ctx context.Context, tx *gorm.DB, versions []*types.ContentVersion) ([]*types.ContentVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(versions) == 0 {
		return []*types.ContentVersion{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *contentVersionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ContentVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ContentVersion
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentVersionRepo) GetByPartID(ctx context.Context, tx *gorm.DB, partID uuid.UUID, kind string) ([]*types.ContentVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ContentVersion
	if err := transaction.WithContext(ctx).
		Where("part_id = ? AND kind = ?", partID, kind).
		Order("version_no ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentVersionRepo) GetByPartIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) ([]*types.ContentVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ContentVersion
	if len(partIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("part_id IN ?", partIDs).
		Order("version_no ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentVersionRepo) MaxVersionNo(ctx context.Context, tx *gorm.DB, partID uuid.UUID, kind string) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var max *int
	if err := transaction.WithContext(ctx).
		Model(&types.ContentVersion{}).
		Where("part_id = ? AND kind = ?", partID, kind).
		Select("MAX(version_no)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// UnselectSiblings clears the selected flag on every version of the same
// part and kind except keepID. Combined with marking keepID selected inside
// the same transaction this upholds the at-most-one-selected invariant.
func (r *contentVersionRepo) UnselectSiblings(ctx context.Context, tx *gorm.DB, partID uuid.UUID, kind string, keepID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.ContentVersion{}).
		Where("part_id = ? AND kind = ? AND id <> ? AND selected = ?", partID, kind, keepID, true).
		Updates(map[string]interface{}{"selected": false}).Error
}

func (r *contentVersionRepo) Update(ctx context.Context, tx *gorm.DB, version *types.ContentVersion) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(version).Error
}

func (r *contentVersionRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.ContentVersion{}).Error
}

func (r *contentVersionRepo) CountByPartID(ctx context.Context, tx *gorm.DB, partID uuid.UUID, kind string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ContentVersion{}).
		Where("part_id = ? AND kind = ?", partID, kind).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
