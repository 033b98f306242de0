package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/repos"
	"github.com/loqostudio/loqo-backend/internal/types"
	"github.com/loqostudio/loqo-backend/internal/versions"
)

// PartStudio is everything a studio view needs for one part, assembled in a
// single call so the frontend does not fan out a request per resource.
type PartStudio struct {
	Part            *types.Part                `json:"part"`
	Episode         *types.Episode             `json:"episode"`
	Characters      []*types.Asset             `json:"characters"`
	Locations       []*types.Asset             `json:"locations"`
	Props           []*types.Asset             `json:"props"`
	Beats           []versions.GroupedVersion  `json:"beats"`
	Shots           []versions.GroupedVersion  `json:"shots"`
	Storyboards     []versions.GroupedVersion  `json:"storyboards"`
	SelectedShots   []versions.ShotItem        `json:"selectedShots"`
	ShotImages      []versions.MediaFolder     `json:"shotImages"`
	CharacterImages []versions.MediaFolder     `json:"characterImages"`
	Clips           []versions.MediaFolder     `json:"clips"`
}

type PartSummary struct {
	Part        *types.Part `json:"part"`
	BeatCount   int64       `json:"beatCount"`
	ShotCount   int64       `json:"shotCount"`
	ImageCount  int64       `json:"imageCount"`
	ClipCount   int64       `json:"clipCount"`
}

type EpisodeFull struct {
	Episode *types.Episode `json:"episode"`
	Parts   []PartSummary  `json:"parts"`
}

type EpisodeSummary struct {
	Episode   *types.Episode `json:"episode"`
	PartCount int            `json:"partCount"`
}

type ProjectOverview struct {
	Project        *types.Project   `json:"project"`
	Episodes       []EpisodeSummary `json:"episodes"`
	CharacterCount int              `json:"characterCount"`
	LocationCount  int              `json:"locationCount"`
	PropCount      int              `json:"propCount"`
}

type StudioService interface {
	GetPartStudio(ctx context.Context, partID uuid.UUID) (*PartStudio, error)
	GetEpisodeFull(ctx context.Context, episodeID uuid.UUID) (*EpisodeFull, error)
	GetProjectOverview(ctx context.Context, projectID uuid.UUID) (*ProjectOverview, error)
}

type studioService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectSvc  ProjectService
	episodeSvc  EpisodeService
	partSvc     PartService
	episodeRepo repos.EpisodeRepo
	partRepo    repos.PartRepo
	contentRepo repos.ContentVersionRepo
	imageRepo   repos.ImageRepo
	clipRepo    repos.ClipRepo
	assetRepo   repos.AssetRepo
	cache       StudioCache
}

func NewStudioService(
	db *gorm.DB,
	log *logger.Logger,
	projectSvc ProjectService,
	episodeSvc EpisodeService,
	partSvc PartService,
	episodeRepo repos.EpisodeRepo,
	partRepo repos.PartRepo,
	contentRepo repos.ContentVersionRepo,
	imageRepo repos.ImageRepo,
	clipRepo repos.ClipRepo,
	assetRepo repos.AssetRepo,
	cache StudioCache,
) StudioService {
	serviceLog := log.With("service", "StudioService")
	return &studioService{
		db:          db,
		log:         serviceLog,
		projectSvc:  projectSvc,
		episodeSvc:  episodeSvc,
		partSvc:     partSvc,
		episodeRepo: episodeRepo,
		partRepo:    partRepo,
		contentRepo: contentRepo,
		imageRepo:   imageRepo,
		clipRepo:    clipRepo,
		assetRepo:   assetRepo,
		cache:       cache,
	}
}

func (ss *studioService) GetPartStudio(ctx context.Context, partID uuid.UUID) (*PartStudio, error) {
	part, err := ss.partSvc.Get(ctx, partID)
	if err != nil {
		return nil, err
	}

	if ss.cache != nil {
		var cached PartStudio
		hit, cErr := ss.cache.GetStudio(ctx, part.ID, &cached)
		if cErr != nil {
			ss.log.Warn("Studio cache read failed", "partID", part.ID, "error", cErr)
		}
		if hit {
			return &cached, nil
		}
	}

	episodes, eErr := ss.episodeRepo.GetByIDs(ctx, nil, []uuid.UUID{part.EpisodeID})
	if eErr != nil {
		return nil, fmt.Errorf("error fetching episode: %w", eErr)
	}
	if len(episodes) == 0 {
		return nil, ErrNotFound
	}
	episode := episodes[0]

	records, rErr := ss.contentRepo.GetByPartIDs(ctx, nil, []uuid.UUID{part.ID})
	if rErr != nil {
		return nil, fmt.Errorf("error fetching content versions: %w", rErr)
	}
	byKind := map[string][]*types.ContentVersion{}
	for _, rec := range records {
		byKind[rec.Kind] = append(byKind[rec.Kind], rec)
	}
	beats := GroupRecords(byKind[string(versions.KindBeat)])
	shots := GroupRecords(byKind[string(versions.KindShot)])
	storyboards := GroupRecords(byKind[string(versions.KindStoryboard)])

	var selectedShots []versions.ShotItem
	if sel := versions.SelectedVersion(shots); sel != nil {
		selectedShots = versions.FlattenShots(versions.DecodeBeatsWithShots(sel.Items))
	}

	images, iErr := ss.imageRepo.GetByPartIDs(ctx, nil, []uuid.UUID{part.ID})
	if iErr != nil {
		return nil, fmt.Errorf("error fetching images: %w", iErr)
	}
	var shotImages, characterImages []*types.Image
	for _, img := range images {
		if img.Category == "character" {
			characterImages = append(characterImages, img)
		} else {
			shotImages = append(shotImages, img)
		}
	}

	clips, cErr := ss.clipRepo.GetByPartIDs(ctx, nil, []uuid.UUID{part.ID})
	if cErr != nil {
		return nil, fmt.Errorf("error fetching clips: %w", cErr)
	}

	assets, aErr := ss.assetRepo.GetByProjectID(ctx, nil, part.ProjectID, "")
	if aErr != nil {
		return nil, fmt.Errorf("error fetching assets: %w", aErr)
	}
	var characters, locations, props []*types.Asset
	for _, asset := range assets {
		switch asset.Kind {
		case "character":
			characters = append(characters, asset)
		case "location":
			locations = append(locations, asset)
		case "prop":
			props = append(props, asset)
		}
	}

	studio := &PartStudio{
		Part:            part,
		Episode:         episode,
		Characters:      characters,
		Locations:       locations,
		Props:           props,
		Beats:           beats,
		Shots:           shots,
		Storyboards:     storyboards,
		SelectedShots:   selectedShots,
		ShotImages:      versions.GroupByShotFolder(ImageRefs(shotImages)),
		CharacterImages: versions.GroupByCharacterFolder(ImageRefs(characterImages)),
		Clips:           versions.GroupByShotFolder(ClipRefs(clips)),
	}

	if ss.cache != nil {
		if sErr := ss.cache.SetStudio(ctx, part.ID, studio); sErr != nil {
			ss.log.Warn("Studio cache write failed", "partID", part.ID, "error", sErr)
		}
	}
	return studio, nil
}

func (ss *studioService) GetEpisodeFull(ctx context.Context, episodeID uuid.UUID) (*EpisodeFull, error) {
	episode, err := ss.episodeSvc.Get(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	parts, pErr := ss.partRepo.GetByEpisodeIDs(ctx, nil, []uuid.UUID{episode.ID})
	if pErr != nil {
		return nil, fmt.Errorf("error fetching parts: %w", pErr)
	}
	summaries := make([]PartSummary, 0, len(parts))
	for _, part := range parts {
		beatCount, bErr := ss.contentRepo.CountByPartID(ctx, nil, part.ID, string(versions.KindBeat))
		if bErr != nil {
			return nil, fmt.Errorf("error counting beats: %w", bErr)
		}
		shotCount, sErr := ss.contentRepo.CountByPartID(ctx, nil, part.ID, string(versions.KindShot))
		if sErr != nil {
			return nil, fmt.Errorf("error counting shots: %w", sErr)
		}
		imageCount, iErr := ss.imageRepo.CountByPartID(ctx, nil, part.ID)
		if iErr != nil {
			return nil, fmt.Errorf("error counting images: %w", iErr)
		}
		clipCount, cErr := ss.clipRepo.CountByPartID(ctx, nil, part.ID)
		if cErr != nil {
			return nil, fmt.Errorf("error counting clips: %w", cErr)
		}
		summaries = append(summaries, PartSummary{
			Part:       part,
			BeatCount:  beatCount,
			ShotCount:  shotCount,
			ImageCount: imageCount,
			ClipCount:  clipCount,
		})
	}
	return &EpisodeFull{Episode: episode, Parts: summaries}, nil
}

func (ss *studioService) GetProjectOverview(ctx context.Context, projectID uuid.UUID) (*ProjectOverview, error) {
	project, err := ss.projectSvc.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	episodes, eErr := ss.episodeRepo.GetByProjectIDs(ctx, nil, []uuid.UUID{project.ID})
	if eErr != nil {
		return nil, fmt.Errorf("error fetching episodes: %w", eErr)
	}
	episodeIDs := make([]uuid.UUID, 0, len(episodes))
	for _, e := range episodes {
		episodeIDs = append(episodeIDs, e.ID)
	}
	partsByEpisode := map[uuid.UUID]int{}
	if len(episodeIDs) > 0 {
		parts, pErr := ss.partRepo.GetByEpisodeIDs(ctx, nil, episodeIDs)
		if pErr != nil {
			return nil, fmt.Errorf("error fetching parts: %w", pErr)
		}
		for _, part := range parts {
			partsByEpisode[part.EpisodeID]++
		}
	}
	summaries := make([]EpisodeSummary, 0, len(episodes))
	for _, e := range episodes {
		summaries = append(summaries, EpisodeSummary{Episode: e, PartCount: partsByEpisode[e.ID]})
	}

	assets, aErr := ss.assetRepo.GetByProjectID(ctx, nil, project.ID, "")
	if aErr != nil {
		return nil, fmt.Errorf("error fetching assets: %w", aErr)
	}
	overview := &ProjectOverview{Project: project, Episodes: summaries}
	for _, asset := range assets {
		switch asset.Kind {
		case "character":
			overview.CharacterCount++
		case "location":
			overview.LocationCount++
		case "prop":
			overview.PropCount++
		}
	}
	return overview, nil
}
