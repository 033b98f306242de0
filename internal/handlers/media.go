package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loqostudio/loqo-backend/internal/services"
)

type MediaHandler struct {
	mediaService services.MediaService
}

func NewMediaHandler(mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (mh *MediaHandler) Create(c *gin.Context) {
	var req struct {
		Type  string                     `json:"type"` // image|clip
		Image *services.CreateImageInput `json:"image,omitempty"`
		Clip  *services.CreateClipInput  `json:"clip,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	switch req.Type {
	case "image":
		if req.Image == nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("missing image payload"))
			return
		}
		image, err := mh.mediaService.CreateImage(c.Request.Context(), *req.Image)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, image)
	case "clip":
		if req.Clip == nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("missing clip payload"))
			return
		}
		clip, err := mh.mediaService.CreateClip(c.Request.Context(), *req.Clip)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, clip)
	default:
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("unknown media type %q", req.Type))
	}
}

func (mh *MediaHandler) ListByPart(c *gin.Context) {
	partID, ok := parseUUIDParam(c, "partId")
	if !ok {
		return
	}
	media, err := mh.mediaService.ListByPart(c.Request.Context(), partID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, media)
}

func (mh *MediaHandler) DeleteMedia(c *gin.Context) {
	mediaID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := mh.mediaService.DeleteMedia(c.Request.Context(), mediaID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": mediaID})
}

func (mh *MediaHandler) DeleteImage(c *gin.Context) {
	imageID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := mh.mediaService.DeleteImage(c.Request.Context(), imageID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": imageID})
}

func (mh *MediaHandler) DeleteClip(c *gin.Context) {
	clipID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := mh.mediaService.DeleteClip(c.Request.Context(), clipID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": clipID})
}
