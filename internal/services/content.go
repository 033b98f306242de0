package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/repos"
	"github.com/loqostudio/loqo-backend/internal/types"
	"github.com/loqostudio/loqo-backend/internal/versions"
)

type ContentService interface {
	Create(ctx context.Context, partID uuid.UUID, kind string, content string) (*types.ContentVersion, error)
	Update(ctx context.Context, docID uuid.UUID, content string) (*types.ContentVersion, error)
	Delete(ctx context.Context, docID uuid.UUID) error
	Select(ctx context.Context, docID uuid.UUID) (*types.ContentVersion, error)
	ListByPart(ctx context.Context, partID uuid.UUID, kind string) ([]versions.GroupedVersion, error)
}

type contentService struct {
	db          *gorm.DB
	log         *logger.Logger
	partSvc     PartService
	contentRepo repos.ContentVersionRepo
	notifier    StudioNotifier
	cache       StudioCache
}

func NewContentService(db *gorm.DB, log *logger.Logger, partSvc PartService, contentRepo repos.ContentVersionRepo, notifier StudioNotifier, cache StudioCache) ContentService {
	serviceLog := log.With("service", "ContentService")
	return &contentService{
		db:          db,
		log:         serviceLog,
		partSvc:     partSvc,
		contentRepo: contentRepo,
		notifier:    notifier,
		cache:       cache,
	}
}

// GroupRecords maps stored rows into the grouping input shape.
func GroupRecords(records []*types.ContentVersion) []versions.GroupedVersion {
	docs := make([]versions.VersionDoc, 0, len(records))
	for _, rec := range records {
		kind, err := versions.ParseKind(rec.Kind)
		if err != nil {
			continue
		}
		docs = append(docs, versions.VersionDoc{
			ID:        rec.ID,
			Kind:      kind,
			Content:   rec.Content,
			VersionNo: rec.VersionNo,
			Edited:    rec.Edited,
			Selected:  rec.Selected,
		})
	}
	return versions.GroupVersions(docs)
}

// Create stores a new generation pass as the next version of its kind and
// makes it the selected one.
func (cs *contentService) Create(ctx context.Context, partID uuid.UUID, kind string, content string) (*types.ContentVersion, error) {
	parsedKind, kErr := versions.ParseKind(kind)
	if kErr != nil {
		return nil, kErr
	}
	part, err := cs.partSvc.Get(ctx, partID)
	if err != nil {
		return nil, err
	}
	orgID, _, err := scope(ctx)
	if err != nil {
		return nil, err
	}

	var doc *types.ContentVersion
	txErr := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		maxNo, mErr := cs.contentRepo.MaxVersionNo(ctx, tx, part.ID, string(parsedKind))
		if mErr != nil {
			return fmt.Errorf("error finding max version number: %w", mErr)
		}
		doc = &types.ContentVersion{
			ID:             uuid.New(),
			OrganizationID: orgID,
			ProjectID:      part.ProjectID,
			EpisodeID:      part.EpisodeID,
			PartID:         part.ID,
			Kind:           string(parsedKind),
			Content:        content,
			VersionNo:      maxNo + 1,
			Edited:         false,
			Selected:       true,
		}
		if _, cErr := cs.contentRepo.Create(ctx, tx, []*types.ContentVersion{doc}); cErr != nil {
			return fmt.Errorf("error creating content version: %w", cErr)
		}
		if uErr := cs.contentRepo.UnselectSiblings(ctx, tx, part.ID, string(parsedKind), doc.ID); uErr != nil {
			return fmt.Errorf("error unselecting sibling versions: %w", uErr)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	cs.invalidate(ctx, part.ID)
	cs.notifier.ContentCreated(part.ID, string(parsedKind), doc.ID, doc.VersionNo)
	return doc, nil
}

// Update replaces the payload of one version in place and marks it edited.
// The version keeps its number and its selected flag.
func (cs *contentService) Update(ctx context.Context, docID uuid.UUID, content string) (*types.ContentVersion, error) {
	doc, err := cs.getOwned(ctx, docID)
	if err != nil {
		return nil, err
	}
	doc.Content = content
	doc.Edited = true
	doc.UpdatedAt = time.Now()
	if uErr := cs.contentRepo.Update(ctx, nil, doc); uErr != nil {
		return nil, fmt.Errorf("error updating content version: %w", uErr)
	}
	cs.invalidate(ctx, doc.PartID)
	return doc, nil
}

func (cs *contentService) Delete(ctx context.Context, docID uuid.UUID) error {
	doc, err := cs.getOwned(ctx, docID)
	if err != nil {
		return err
	}
	if dErr := cs.contentRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{doc.ID}); dErr != nil {
		return fmt.Errorf("error deleting content version: %w", dErr)
	}
	cs.invalidate(ctx, doc.PartID)
	cs.notifier.ContentDeleted(doc.PartID, doc.Kind, []uuid.UUID{doc.ID})
	return nil
}

// Select makes one version current. Siblings of the same part and kind lose
// their selected flag in the same transaction so the at-most-one invariant
// holds no matter what state the rows were in. Callers refetch the list
// afterwards instead of patching local state.
func (cs *contentService) Select(ctx context.Context, docID uuid.UUID) (*types.ContentVersion, error) {
	doc, err := cs.getOwned(ctx, docID)
	if err != nil {
		return nil, err
	}
	txErr := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if uErr := cs.contentRepo.UnselectSiblings(ctx, tx, doc.PartID, doc.Kind, doc.ID); uErr != nil {
			return fmt.Errorf("error unselecting sibling versions: %w", uErr)
		}
		doc.Selected = true
		doc.UpdatedAt = time.Now()
		if uErr := cs.contentRepo.Update(ctx, tx, doc); uErr != nil {
			return fmt.Errorf("error selecting content version: %w", uErr)
		}
		return nil
	})
	if txErr != nil {
		cs.log.Warn("Select version failed", "docID", docID, "error", txErr)
		return nil, txErr
	}
	cs.invalidate(ctx, doc.PartID)
	cs.notifier.ContentSelected(doc.PartID, doc.Kind, doc.ID)
	return doc, nil
}

func (cs *contentService) ListByPart(ctx context.Context, partID uuid.UUID, kind string) ([]versions.GroupedVersion, error) {
	parsedKind, kErr := versions.ParseKind(kind)
	if kErr != nil {
		return nil, kErr
	}
	if _, err := cs.partSvc.Get(ctx, partID); err != nil {
		return nil, err
	}
	records, rErr := cs.contentRepo.GetByPartID(ctx, nil, partID, string(parsedKind))
	if rErr != nil {
		return nil, fmt.Errorf("error listing content versions: %w", rErr)
	}
	return GroupRecords(records), nil
}

func (cs *contentService) getOwned(ctx context.Context, docID uuid.UUID) (*types.ContentVersion, error) {
	found, fErr := cs.contentRepo.GetByIDs(ctx, nil, []uuid.UUID{docID})
	if fErr != nil {
		return nil, fmt.Errorf("error fetching content version: %w", fErr)
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	doc := found[0]
	if _, err := cs.partSvc.Get(ctx, doc.PartID); err != nil {
		return nil, err
	}
	return doc, nil
}

func (cs *contentService) invalidate(ctx context.Context, partID uuid.UUID) {
	if cs.cache == nil {
		return
	}
	if err := cs.cache.InvalidatePart(ctx, partID); err != nil {
		cs.log.Warn("Failed to invalidate studio cache", "partID", partID, "error", err)
	}
}
