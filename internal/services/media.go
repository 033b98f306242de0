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
	"github.com/loqostudio/loqo-backend/internal/versions"
)

type CreateImageInput struct {
	ProjectID uuid.UUID  `json:"project_id"`
	PartID    *uuid.UUID `json:"part_id,omitempty"`
	ShotID    *uuid.UUID `json:"shot_id,omitempty"`
	Name      string     `json:"name"`
	ImageURL  string     `json:"imageUrl"`
	Category  string     `json:"category"`
}

type CreateClipInput struct {
	PartID  uuid.UUID  `json:"part_id"`
	ShotID  *uuid.UUID `json:"shot_id,omitempty"`
	Name    string     `json:"name"`
	ClipURL string     `json:"clipUrl"`
}

// PartMedia is the folder-grouped media view for one part.
type PartMedia struct {
	Images []versions.MediaFolder `json:"images"`
	Clips  []versions.MediaFolder `json:"clips"`
}

var validImageCategories = map[string]struct{}{
	"shot":      {},
	"character": {},
	"location":  {},
	"props":     {},
}

type MediaService interface {
	CreateImage(ctx context.Context, input CreateImageInput) (*types.Image, error)
	CreateClip(ctx context.Context, input CreateClipInput) (*types.Clip, error)
	ListByPart(ctx context.Context, partID uuid.UUID) (*PartMedia, error)
	DeleteImage(ctx context.Context, imageID uuid.UUID) error
	DeleteClip(ctx context.Context, clipID uuid.UUID) error
	DeleteMedia(ctx context.Context, mediaID uuid.UUID) error
}

type mediaService struct {
	db         *gorm.DB
	log        *logger.Logger
	projectSvc ProjectService
	partSvc    PartService
	imageRepo  repos.ImageRepo
	clipRepo   repos.ClipRepo
	notifier   StudioNotifier
	cache      StudioCache
}

func NewMediaService(db *gorm.DB, log *logger.Logger, projectSvc ProjectService, partSvc PartService, imageRepo repos.ImageRepo, clipRepo repos.ClipRepo, notifier StudioNotifier, cache StudioCache) MediaService {
	serviceLog := log.With("service", "MediaService")
	return &mediaService{
		db:         db,
		log:        serviceLog,
		projectSvc: projectSvc,
		partSvc:    partSvc,
		imageRepo:  imageRepo,
		clipRepo:   clipRepo,
		notifier:   notifier,
		cache:      cache,
	}
}

func (ms *mediaService) CreateImage(ctx context.Context, input CreateImageInput) (*types.Image, error) {
	input.ImageURL = normalization.TrimInputString(input.ImageURL)
	if input.ImageURL == "" {
		return nil, fmt.Errorf("image url is required")
	}
	category := normalization.ParseInputString(input.Category)
	if category == "" {
		category = "shot"
	}
	if _, ok := validImageCategories[category]; !ok {
		return nil, fmt.Errorf("unknown image category %q", category)
	}

	orgID, _, err := scope(ctx)
	if err != nil {
		return nil, err
	}

	image := &types.Image{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           normalization.TrimInputString(input.Name),
		ImageURL:       input.ImageURL,
		Category:       category,
		ShotID:         input.ShotID,
		VersionNo:      1,
		Selected:       true,
	}
	if input.PartID != nil {
		part, pErr := ms.partSvc.Get(ctx, *input.PartID)
		if pErr != nil {
			return nil, pErr
		}
		image.ProjectID = part.ProjectID
		image.EpisodeID = &part.EpisodeID
		image.PartID = &part.ID
	} else {
		project, pErr := ms.projectSvc.Get(ctx, input.ProjectID)
		if pErr != nil {
			return nil, pErr
		}
		image.ProjectID = project.ID
	}

	if _, cErr := ms.imageRepo.Create(ctx, nil, []*types.Image{image}); cErr != nil {
		return nil, fmt.Errorf("error creating image: %w", cErr)
	}
	if image.PartID != nil {
		ms.invalidate(ctx, *image.PartID)
		ms.notifier.MediaCreated(*image.PartID, "image", image.ID)
	}
	return image, nil
}

func (ms *mediaService) CreateClip(ctx context.Context, input CreateClipInput) (*types.Clip, error) {
	input.ClipURL = normalization.TrimInputString(input.ClipURL)
	if input.ClipURL == "" {
		return nil, fmt.Errorf("clip url is required")
	}
	part, pErr := ms.partSvc.Get(ctx, input.PartID)
	if pErr != nil {
		return nil, pErr
	}
	orgID, _, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	clip := &types.Clip{
		ID:             uuid.New(),
		OrganizationID: orgID,
		ProjectID:      part.ProjectID,
		EpisodeID:      part.EpisodeID,
		PartID:         part.ID,
		ShotID:         input.ShotID,
		Name:           normalization.TrimInputString(input.Name),
		ClipURL:        input.ClipURL,
		VersionNo:      1,
		Selected:       true,
	}
	if _, cErr := ms.clipRepo.Create(ctx, nil, []*types.Clip{clip}); cErr != nil {
		return nil, fmt.Errorf("error creating clip: %w", cErr)
	}
	ms.invalidate(ctx, part.ID)
	ms.notifier.MediaCreated(part.ID, "clip", clip.ID)
	return clip, nil
}

// ListByPart returns the part's images and clips grouped into shot folders,
// ordered by the number embedded in the folder name.
func (ms *mediaService) ListByPart(ctx context.Context, partID uuid.UUID) (*PartMedia, error) {
	part, err := ms.partSvc.Get(ctx, partID)
	if err != nil {
		return nil, err
	}
	images, iErr := ms.imageRepo.GetByPartIDs(ctx, nil, []uuid.UUID{part.ID})
	if iErr != nil {
		return nil, fmt.Errorf("error listing images: %w", iErr)
	}
	clips, cErr := ms.clipRepo.GetByPartIDs(ctx, nil, []uuid.UUID{part.ID})
	if cErr != nil {
		return nil, fmt.Errorf("error listing clips: %w", cErr)
	}
	return &PartMedia{
		Images: versions.GroupByShotFolder(ImageRefs(images)),
		Clips:  versions.GroupByShotFolder(ClipRefs(clips)),
	}, nil
}

func (ms *mediaService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	found, fErr := ms.imageRepo.GetByIDs(ctx, nil, []uuid.UUID{imageID})
	if fErr != nil {
		return fmt.Errorf("error fetching image: %w", fErr)
	}
	if len(found) == 0 {
		return ErrNotFound
	}
	image := found[0]
	if _, err := ms.projectSvc.Get(ctx, image.ProjectID); err != nil {
		return err
	}
	if dErr := ms.imageRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{image.ID}); dErr != nil {
		return fmt.Errorf("error deleting image: %w", dErr)
	}
	if image.PartID != nil {
		ms.invalidate(ctx, *image.PartID)
		ms.notifier.MediaDeleted(*image.PartID, "image", image.ID)
	}
	return nil
}

func (ms *mediaService) DeleteClip(ctx context.Context, clipID uuid.UUID) error {
	found, fErr := ms.clipRepo.GetByIDs(ctx, nil, []uuid.UUID{clipID})
	if fErr != nil {
		return fmt.Errorf("error fetching clip: %w", fErr)
	}
	if len(found) == 0 {
		return ErrNotFound
	}
	clip := found[0]
	if _, err := ms.projectSvc.Get(ctx, clip.ProjectID); err != nil {
		return err
	}
	if dErr := ms.clipRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{clip.ID}); dErr != nil {
		return fmt.Errorf("error deleting clip: %w", dErr)
	}
	ms.invalidate(ctx, clip.PartID)
	ms.notifier.MediaDeleted(clip.PartID, "clip", clip.ID)
	return nil
}

// DeleteMedia removes whichever media record carries the id. Images are
// checked first; ids are uuids so a double hit cannot happen in practice.
func (ms *mediaService) DeleteMedia(ctx context.Context, mediaID uuid.UUID) error {
	if err := ms.DeleteImage(ctx, mediaID); err == nil {
		return nil
	} else if err != ErrNotFound {
		return err
	}
	return ms.DeleteClip(ctx, mediaID)
}

func (ms *mediaService) invalidate(ctx context.Context, partID uuid.UUID) {
	if ms.cache == nil {
		return
	}
	if err := ms.cache.InvalidatePart(ctx, partID); err != nil {
		ms.log.Warn("Failed to invalidate studio cache", "partID", partID, "error", err)
	}
}

// ImageRefs maps image rows into the folder-grouping input shape.
func ImageRefs(images []*types.Image) []versions.MediaRef {
	refs := make([]versions.MediaRef, 0, len(images))
	for _, img := range images {
		refs = append(refs, versions.MediaRef{ID: img.ID, Name: img.Name, URL: img.ImageURL})
	}
	return refs
}

// ClipRefs maps clip rows into the folder-grouping input shape.
func ClipRefs(clips []*types.Clip) []versions.MediaRef {
	refs := make([]versions.MediaRef, 0, len(clips))
	for _, c := range clips {
		refs = append(refs, versions.MediaRef{ID: c.ID, Name: c.Name, URL: c.ClipURL})
	}
	return refs
}
