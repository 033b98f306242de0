package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loqostudio/loqo-backend/internal/services"
)

type PartHandler struct {
	partService   services.PartService
	studioService services.StudioService
}

func NewPartHandler(partService services.PartService, studioService services.StudioService) *PartHandler {
	return &PartHandler{partService: partService, studioService: studioService}
}

func (ph *PartHandler) Create(c *gin.Context) {
	episodeID, ok := parseUUIDParam(c, "episodeId")
	if !ok {
		return
	}
	var req struct {
		PartNumber int    `json:"part_number"`
		Title      string `json:"title"`
		ScriptText string `json:"script_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	part, err := ph.partService.Create(c.Request.Context(), episodeID, req.PartNumber, req.Title, req.ScriptText)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, part)
}

func (ph *PartHandler) ListByEpisode(c *gin.Context) {
	episodeID, ok := parseUUIDParam(c, "episodeId")
	if !ok {
		return
	}
	parts, err := ph.partService.ListByEpisode(c.Request.Context(), episodeID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, parts)
}

func (ph *PartHandler) Get(c *gin.Context) {
	partID, ok := parseUUIDParam(c, "partId")
	if !ok {
		return
	}
	part, err := ph.partService.Get(c.Request.Context(), partID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, part)
}

func (ph *PartHandler) Update(c *gin.Context) {
	partID, ok := parseUUIDParam(c, "partId")
	if !ok {
		return
	}
	var req struct {
		PartNumber *int    `json:"part_number,omitempty"`
		Title      *string `json:"title,omitempty"`
		ScriptText *string `json:"script_text,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	part, err := ph.partService.Update(c.Request.Context(), partID, req.PartNumber, req.Title, req.ScriptText)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, part)
}

func (ph *PartHandler) Delete(c *gin.Context) {
	partID, ok := parseUUIDParam(c, "partId")
	if !ok {
		return
	}
	if err := ph.partService.Delete(c.Request.Context(), partID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": partID})
}

// Studio returns the single-call aggregate for the studio view.
func (ph *PartHandler) Studio(c *gin.Context) {
	partID, ok := parseUUIDParam(c, "partId")
	if !ok {
		return
	}
	studio, err := ph.studioService.GetPartStudio(c.Request.Context(), partID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, studio)
}
