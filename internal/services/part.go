package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/normalization"
	"github.com/loqostudio/loqo-backend/internal/repos"
	"github.com/loqostudio/loqo-backend/internal/types"
)

type PartService interface {
	Create(ctx context.Context, episodeID uuid.UUID, partNumber int, title, scriptText string) (*types.Part, error)
	ListByEpisode(ctx context.Context, episodeID uuid.UUID) ([]*types.Part, error)
	Get(ctx context.Context, partID uuid.UUID) (*types.Part, error)
	Update(ctx context.Context, partID uuid.UUID, partNumber *int, title, scriptText *string) (*types.Part, error)
	Delete(ctx context.Context, partID uuid.UUID) error
}

type partService struct {
	db         *gorm.DB
	log        *logger.Logger
	episodeSvc EpisodeService
	partRepo   repos.PartRepo
}

func NewPartService(db *gorm.DB, log *logger.Logger, episodeSvc EpisodeService, partRepo repos.PartRepo) PartService {
	serviceLog := log.With("service", "PartService")
	return &partService{
		db:         db,
		log:        serviceLog,
		episodeSvc: episodeSvc,
		partRepo:   partRepo,
	}
}

func (ps *partService) Create(ctx context.Context, episodeID uuid.UUID, partNumber int, title, scriptText string) (*types.Part, error) {
	episode, err := ps.episodeSvc.Get(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if partNumber < 1 {
		return nil, fmt.Errorf("part number must be positive")
	}
	title = normalization.TrimInputString(title)
	if title == "" {
		return nil, fmt.Errorf("part title is required")
	}
	_, userID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	part := &types.Part{
		ID:         uuid.New(),
		ProjectID:  episode.ProjectID,
		EpisodeID:  episode.ID,
		PartNumber: partNumber,
		Title:      title,
		ScriptText: scriptText,
		CreatedBy:  userID,
	}
	if _, cErr := ps.partRepo.Create(ctx, nil, []*types.Part{part}); cErr != nil {
		return nil, fmt.Errorf("error creating part: %w", cErr)
	}
	return part, nil
}

func (ps *partService) ListByEpisode(ctx context.Context, episodeID uuid.UUID) ([]*types.Part, error) {
	if _, err := ps.episodeSvc.Get(ctx, episodeID); err != nil {
		return nil, err
	}
	parts, pErr := ps.partRepo.GetByEpisodeIDs(ctx, nil, []uuid.UUID{episodeID})
	if pErr != nil {
		return nil, fmt.Errorf("error listing parts: %w", pErr)
	}
	return parts, nil
}

func (ps *partService) Get(ctx context.Context, partID uuid.UUID) (*types.Part, error) {
	found, pErr := ps.partRepo.GetByIDs(ctx, nil, []uuid.UUID{partID})
	if pErr != nil {
		return nil, fmt.Errorf("error fetching part: %w", pErr)
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	part := found[0]
	if _, err := ps.episodeSvc.Get(ctx, part.EpisodeID); err != nil {
		return nil, err
	}
	return part, nil
}

func (ps *partService) Update(ctx context.Context, partID uuid.UUID, partNumber *int, title, scriptText *string) (*types.Part, error) {
	part, err := ps.Get(ctx, partID)
	if err != nil {
		return nil, err
	}
	if partNumber != nil {
		if *partNumber < 1 {
			return nil, fmt.Errorf("part number must be positive")
		}
		part.PartNumber = *partNumber
	}
	if title != nil {
		trimmed := normalization.TrimInputString(*title)
		if trimmed == "" {
			return nil, fmt.Errorf("part title cannot be empty")
		}
		part.Title = trimmed
	}
	if scriptText != nil {
		part.ScriptText = *scriptText
	}
	if uErr := ps.partRepo.Update(ctx, nil, part); uErr != nil {
		return nil, fmt.Errorf("error updating part: %w", uErr)
	}
	return part, nil
}

func (ps *partService) Delete(ctx context.Context, partID uuid.UUID) error {
	part, err := ps.Get(ctx, partID)
	if err != nil {
		return err
	}
	if dErr := ps.partRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{part.ID}); dErr != nil {
		return fmt.Errorf("error deleting part: %w", dErr)
	}
	return nil
}
