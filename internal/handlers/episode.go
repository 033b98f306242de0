package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loqostudio/loqo-backend/internal/services"
)

type EpisodeHandler struct {
	episodeService services.EpisodeService
	studioService  services.StudioService
}

func NewEpisodeHandler(episodeService services.EpisodeService, studioService services.StudioService) *EpisodeHandler {
	return &EpisodeHandler{episodeService: episodeService, studioService: studioService}
}

func (eh *EpisodeHandler) Create(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		EpisodeNumber int    `json:"episode_number"`
		BibleText     string `json:"bible_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	episode, err := eh.episodeService.Create(c.Request.Context(), projectID, req.EpisodeNumber, req.BibleText)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, episode)
}

func (eh *EpisodeHandler) ListByProject(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	episodes, err := eh.episodeService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, episodes)
}

func (eh *EpisodeHandler) Get(c *gin.Context) {
	episodeID, ok := parseUUIDParam(c, "episodeId")
	if !ok {
		return
	}
	episode, err := eh.episodeService.Get(c.Request.Context(), episodeID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, episode)
}

func (eh *EpisodeHandler) Update(c *gin.Context) {
	episodeID, ok := parseUUIDParam(c, "episodeId")
	if !ok {
		return
	}
	var req struct {
		EpisodeNumber *int    `json:"episode_number,omitempty"`
		BibleText     *string `json:"bible_text,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	episode, err := eh.episodeService.Update(c.Request.Context(), episodeID, req.EpisodeNumber, req.BibleText)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, episode)
}

func (eh *EpisodeHandler) Delete(c *gin.Context) {
	episodeID, ok := parseUUIDParam(c, "episodeId")
	if !ok {
		return
	}
	if err := eh.episodeService.Delete(c.Request.Context(), episodeID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": episodeID})
}

// Full returns the episode with per-part content and media counts.
func (eh *EpisodeHandler) Full(c *gin.Context) {
	episodeID, ok := parseUUIDParam(c, "episodeId")
	if !ok {
		return
	}
	full, err := eh.studioService.GetEpisodeFull(c.Request.Context(), episodeID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, full)
}
