package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/repos"
	"github.com/loqostudio/loqo-backend/internal/types"
)

type EpisodeService interface {
	Create(ctx context.Context, projectID uuid.UUID, episodeNumber int, bibleText string) (*types.Episode, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*types.Episode, error)
	Get(ctx context.Context, episodeID uuid.UUID) (*types.Episode, error)
	Update(ctx context.Context, episodeID uuid.UUID, episodeNumber *int, bibleText *string) (*types.Episode, error)
	Delete(ctx context.Context, episodeID uuid.UUID) error
}

type episodeService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectSvc  ProjectService
	episodeRepo repos.EpisodeRepo
	partRepo    repos.PartRepo
}

func NewEpisodeService(db *gorm.DB, log *logger.Logger, projectSvc ProjectService, episodeRepo repos.EpisodeRepo, partRepo repos.PartRepo) EpisodeService {
	serviceLog := log.With("service", "EpisodeService")
	return &episodeService{
		db:          db,
		log:         serviceLog,
		projectSvc:  projectSvc,
		episodeRepo: episodeRepo,
		partRepo:    partRepo,
	}
}

func (es *episodeService) Create(ctx context.Context, projectID uuid.UUID, episodeNumber int, bibleText string) (*types.Episode, error) {
	if _, err := es.projectSvc.Get(ctx, projectID); err != nil {
		return nil, err
	}
	if episodeNumber < 1 {
		return nil, fmt.Errorf("episode number must be positive")
	}
	_, userID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	episode := &types.Episode{
		ID:            uuid.New(),
		ProjectID:     projectID,
		EpisodeNumber: episodeNumber,
		BibleText:     bibleText,
		CreatedBy:     userID,
	}
	if _, cErr := es.episodeRepo.Create(ctx, nil, []*types.Episode{episode}); cErr != nil {
		return nil, fmt.Errorf("error creating episode: %w", cErr)
	}
	return episode, nil
}

func (es *episodeService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*types.Episode, error) {
	if _, err := es.projectSvc.Get(ctx, projectID); err != nil {
		return nil, err
	}
	episodes, eErr := es.episodeRepo.GetByProjectIDs(ctx, nil, []uuid.UUID{projectID})
	if eErr != nil {
		return nil, fmt.Errorf("error listing episodes: %w", eErr)
	}
	return episodes, nil
}

// Get loads the episode and verifies the owning project belongs to the
// caller's organization.
func (es *episodeService) Get(ctx context.Context, episodeID uuid.UUID) (*types.Episode, error) {
	found, eErr := es.episodeRepo.GetByIDs(ctx, nil, []uuid.UUID{episodeID})
	if eErr != nil {
		return nil, fmt.Errorf("error fetching episode: %w", eErr)
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	episode := found[0]
	if _, err := es.projectSvc.Get(ctx, episode.ProjectID); err != nil {
		return nil, err
	}
	return episode, nil
}

func (es *episodeService) Update(ctx context.Context, episodeID uuid.UUID, episodeNumber *int, bibleText *string) (*types.Episode, error) {
	episode, err := es.Get(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if episodeNumber != nil {
		if *episodeNumber < 1 {
			return nil, fmt.Errorf("episode number must be positive")
		}
		episode.EpisodeNumber = *episodeNumber
	}
	if bibleText != nil {
		episode.BibleText = *bibleText
	}
	if uErr := es.episodeRepo.Update(ctx, nil, episode); uErr != nil {
		return nil, fmt.Errorf("error updating episode: %w", uErr)
	}
	return episode, nil
}

func (es *episodeService) Delete(ctx context.Context, episodeID uuid.UUID) error {
	episode, err := es.Get(ctx, episodeID)
	if err != nil {
		return err
	}
	return es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parts, pErr := es.partRepo.GetByEpisodeIDs(ctx, tx, []uuid.UUID{episode.ID})
		if pErr != nil {
			return fmt.Errorf("error fetching parts for delete: %w", pErr)
		}
		partIDs := make([]uuid.UUID, 0, len(parts))
		for _, p := range parts {
			partIDs = append(partIDs, p.ID)
		}
		if len(partIDs) > 0 {
			if dErr := es.partRepo.SoftDeleteByIDs(ctx, tx, partIDs); dErr != nil {
				return fmt.Errorf("error deleting parts: %w", dErr)
			}
		}
		if dErr := es.episodeRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{episode.ID}); dErr != nil {
			return fmt.Errorf("error deleting episode: %w", dErr)
		}
		return nil
	})
}
