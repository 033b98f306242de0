package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/normalization"
	"github.com/loqostudio/loqo-backend/internal/repos"
	"github.com/loqostudio/loqo-backend/internal/requestdata"
	"github.com/loqostudio/loqo-backend/internal/types"
)

var ErrNotFound = fmt.Errorf("not found")

type ProjectService interface {
	Create(ctx context.Context, name, description string) (*types.Project, error)
	List(ctx context.Context) ([]*types.Project, error)
	Get(ctx context.Context, projectID uuid.UUID) (*types.Project, error)
	Update(ctx context.Context, projectID uuid.UUID, name, description *string) (*types.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
}

type projectService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectRepo repos.ProjectRepo
	episodeRepo repos.EpisodeRepo
	partRepo    repos.PartRepo
}

func NewProjectService(db *gorm.DB, log *logger.Logger, projectRepo repos.ProjectRepo, episodeRepo repos.EpisodeRepo, partRepo repos.PartRepo) ProjectService {
	serviceLog := log.With("service", "ProjectService")
	return &projectService{
		db:          db,
		log:         serviceLog,
		projectRepo: projectRepo,
		episodeRepo: episodeRepo,
		partRepo:    partRepo,
	}
}

// scope returns the caller's organization and user id from request data.
func scope(ctx context.Context) (uuid.UUID, uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("request data not set in context")
	}
	if rd.UserID == uuid.Nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("user id not set in request data")
	}
	if rd.OrganizationID == uuid.Nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("organization id not set in request data")
	}
	return rd.OrganizationID, rd.UserID, nil
}

func (ps *projectService) Create(ctx context.Context, name, description string) (*types.Project, error) {
	orgID, userID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	name = normalization.TrimInputString(name)
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	project := &types.Project{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           name,
		Description:    normalization.TrimInputString(description),
		CreatedBy:      userID,
	}
	if _, cErr := ps.projectRepo.Create(ctx, nil, []*types.Project{project}); cErr != nil {
		return nil, fmt.Errorf("error creating project: %w", cErr)
	}
	return project, nil
}

func (ps *projectService) List(ctx context.Context) ([]*types.Project, error) {
	orgID, _, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	projects, pErr := ps.projectRepo.GetByOrganizationIDs(ctx, nil, []uuid.UUID{orgID})
	if pErr != nil {
		return nil, fmt.Errorf("error listing projects: %w", pErr)
	}
	return projects, nil
}

func (ps *projectService) Get(ctx context.Context, projectID uuid.UUID) (*types.Project, error) {
	orgID, _, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	found, pErr := ps.projectRepo.GetByIDs(ctx, nil, []uuid.UUID{projectID})
	if pErr != nil {
		return nil, fmt.Errorf("error fetching project: %w", pErr)
	}
	if len(found) == 0 || found[0].OrganizationID != orgID {
		return nil, ErrNotFound
	}
	return found[0], nil
}

func (ps *projectService) Update(ctx context.Context, projectID uuid.UUID, name, description *string) (*types.Project, error) {
	project, err := ps.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := normalization.TrimInputString(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("project name cannot be empty")
		}
		project.Name = trimmed
	}
	if description != nil {
		project.Description = normalization.TrimInputString(*description)
	}
	if uErr := ps.projectRepo.Update(ctx, nil, project); uErr != nil {
		return nil, fmt.Errorf("error updating project: %w", uErr)
	}
	return project, nil
}

func (ps *projectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	project, err := ps.Get(ctx, projectID)
	if err != nil {
		return err
	}
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		episodes, eErr := ps.episodeRepo.GetByProjectIDs(ctx, tx, []uuid.UUID{project.ID})
		if eErr != nil {
			return fmt.Errorf("error fetching episodes for delete: %w", eErr)
		}
		episodeIDs := make([]uuid.UUID, 0, len(episodes))
		for _, e := range episodes {
			episodeIDs = append(episodeIDs, e.ID)
		}
		if len(episodeIDs) > 0 {
			parts, pErr := ps.partRepo.GetByEpisodeIDs(ctx, tx, episodeIDs)
			if pErr != nil {
				return fmt.Errorf("error fetching parts for delete: %w", pErr)
			}
			partIDs := make([]uuid.UUID, 0, len(parts))
			for _, p := range parts {
				partIDs = append(partIDs, p.ID)
			}
			if len(partIDs) > 0 {
				if dErr := ps.partRepo.SoftDeleteByIDs(ctx, tx, partIDs); dErr != nil {
					return fmt.Errorf("error deleting parts: %w", dErr)
				}
			}
			if dErr := ps.episodeRepo.SoftDeleteByIDs(ctx, tx, episodeIDs); dErr != nil {
				return fmt.Errorf("error deleting episodes: %w", dErr)
			}
		}
		if dErr := ps.projectRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{project.ID}); dErr != nil {
			return fmt.Errorf("error deleting project: %w", dErr)
		}
		return nil
	})
}
