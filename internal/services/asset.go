package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/normalization"
	"github.com/loqostudio/loqo-backend/internal/repos"
	"github.com/loqostudio/loqo-backend/internal/types"
)

var validAssetKinds = map[string]struct{}{
	"character": {},
	"location":  {},
	"prop":      {},
}

type CreateAssetInput struct {
	ProjectID uuid.UUID      `json:"project_id"`
	Kind      string         `json:"kind"`
	Name      string         `json:"name"`
	Category  string         `json:"category,omitempty"`
	Content   string         `json:"content"`
	ImageIDs  datatypes.JSON `json:"image_ids,omitempty"`
}

type UpdateAssetInput struct {
	Name     *string         `json:"name,omitempty"`
	Category *string         `json:"category,omitempty"`
	Content  *string         `json:"content,omitempty"`
	ImageIDs *datatypes.JSON `json:"image_ids,omitempty"`
}

type AssetService interface {
	Create(ctx context.Context, input CreateAssetInput) (*types.Asset, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, kind string) ([]*types.Asset, error)
	Get(ctx context.Context, assetID uuid.UUID) (*types.Asset, error)
	Update(ctx context.Context, assetID uuid.UUID, input UpdateAssetInput) (*types.Asset, error)
	Delete(ctx context.Context, assetID uuid.UUID) error
}

type assetService struct {
	db         *gorm.DB
	log        *logger.Logger
	projectSvc ProjectService
	assetRepo  repos.AssetRepo
}

func NewAssetService(db *gorm.DB, log *logger.Logger, projectSvc ProjectService, assetRepo repos.AssetRepo) AssetService {
	serviceLog := log.With("service", "AssetService")
	return &assetService{
		db:         db,
		log:        serviceLog,
		projectSvc: projectSvc,
		assetRepo:  assetRepo,
	}
}

func (as *assetService) Create(ctx context.Context, input CreateAssetInput) (*types.Asset, error) {
	kind := normalization.ParseInputString(input.Kind)
	if _, ok := validAssetKinds[kind]; !ok {
		return nil, fmt.Errorf("unknown asset kind %q", kind)
	}
	name := normalization.TrimInputString(input.Name)
	if name == "" {
		return nil, fmt.Errorf("asset name is required")
	}
	project, pErr := as.projectSvc.Get(ctx, input.ProjectID)
	if pErr != nil {
		return nil, pErr
	}
	orgID, _, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	asset := &types.Asset{
		ID:             uuid.New(),
		OrganizationID: orgID,
		ProjectID:      project.ID,
		Kind:           kind,
		Name:           name,
		Category:       normalization.ParseInputString(input.Category),
		Content:        input.Content,
		ImageIDs:       input.ImageIDs,
		ScopeProject:   true,
	}
	if _, cErr := as.assetRepo.Create(ctx, nil, []*types.Asset{asset}); cErr != nil {
		return nil, fmt.Errorf("error creating asset: %w", cErr)
	}
	return asset, nil
}

func (as *assetService) ListByProject(ctx context.Context, projectID uuid.UUID, kind string) ([]*types.Asset, error) {
	if kind != "" {
		kind = normalization.ParseInputString(kind)
		if _, ok := validAssetKinds[kind]; !ok {
			return nil, fmt.Errorf("unknown asset kind %q", kind)
		}
	}
	project, pErr := as.projectSvc.Get(ctx, projectID)
	if pErr != nil {
		return nil, pErr
	}
	assets, aErr := as.assetRepo.GetByProjectID(ctx, nil, project.ID, kind)
	if aErr != nil {
		return nil, fmt.Errorf("error listing assets: %w", aErr)
	}
	return assets, nil
}

func (as *assetService) Get(ctx context.Context, assetID uuid.UUID) (*types.Asset, error) {
	found, fErr := as.assetRepo.GetByIDs(ctx, nil, []uuid.UUID{assetID})
	if fErr != nil {
		return nil, fmt.Errorf("error fetching asset: %w", fErr)
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	asset := found[0]
	if _, err := as.projectSvc.Get(ctx, asset.ProjectID); err != nil {
		return nil, err
	}
	return asset, nil
}

func (as *assetService) Update(ctx context.Context, assetID uuid.UUID, input UpdateAssetInput) (*types.Asset, error) {
	asset, err := as.Get(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		trimmed := normalization.TrimInputString(*input.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("asset name cannot be empty")
		}
		asset.Name = trimmed
	}
	if input.Category != nil {
		asset.Category = normalization.ParseInputString(*input.Category)
	}
	if input.Content != nil {
		asset.Content = *input.Content
	}
	if input.ImageIDs != nil {
		asset.ImageIDs = *input.ImageIDs
	}
	if uErr := as.assetRepo.Update(ctx, nil, asset); uErr != nil {
		return nil, fmt.Errorf("error updating asset: %w", uErr)
	}
	return asset, nil
}

func (as *assetService) Delete(ctx context.Context, assetID uuid.UUID) error {
	asset, err := as.Get(ctx, assetID)
	if err != nil {
		return err
	}
	if dErr := as.assetRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{asset.ID}); dErr != nil {
		return fmt.Errorf("error deleting asset: %w", dErr)
	}
	return nil
}
