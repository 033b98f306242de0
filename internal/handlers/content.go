package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loqostudio/loqo-backend/internal/services"
)

type ContentHandler struct {
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (ch *ContentHandler) Create(c *gin.Context) {
	var req struct {
		PartID  uuid.UUID `json:"part_id"`
		Kind    string    `json:"kind"`
		Content string    `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	doc, err := ch.contentService.Create(c.Request.Context(), req.PartID, req.Kind, req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": doc.ID, "kind": doc.Kind, "metadata": doc.Metadata()})
}

func (ch *ContentHandler) Update(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	doc, err := ch.contentService.Update(c.Request.Context(), docID, req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": doc.ID, "kind": doc.Kind, "metadata": doc.Metadata()})
}

func (ch *ContentHandler) Delete(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := ch.contentService.Delete(c.Request.Context(), docID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": docID})
}

func (ch *ContentHandler) Select(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	doc, err := ch.contentService.Select(c.Request.Context(), docID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": doc.ID, "kind": doc.Kind, "metadata": doc.Metadata()})
}

// ListByPart returns the grouped version list for one part and kind,
// selected version first.
func (ch *ContentHandler) ListByPart(c *gin.Context) {
	partID, ok := parseUUIDParam(c, "partId")
	if !ok {
		return
	}
	kind := c.Query("kind")
	groups, err := ch.contentService.ListByPart(c.Request.Context(), partID, kind)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"versions": groups})
}
