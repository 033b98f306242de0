package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loqostudio/loqo-backend/internal/services"
)

type AssetHandler struct {
	assetService services.AssetService
}

func NewAssetHandler(assetService services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

func (ah *AssetHandler) Create(c *gin.Context) {
	var req services.CreateAssetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	asset, err := ah.assetService.Create(c.Request.Context(), req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, asset)
}

func (ah *AssetHandler) ListByProject(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId")
	if !ok {
		return
	}
	assets, err := ah.assetService.ListByProject(c.Request.Context(), projectID, c.Query("kind"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, assets)
}

func (ah *AssetHandler) Get(c *gin.Context) {
	assetID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	asset, err := ah.assetService.Get(c.Request.Context(), assetID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, asset)
}

func (ah *AssetHandler) Update(c *gin.Context) {
	assetID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateAssetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	asset, err := ah.assetService.Update(c.Request.Context(), assetID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, asset)
}

func (ah *AssetHandler) Delete(c *gin.Context) {
	assetID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := ah.assetService.Delete(c.Request.Context(), assetID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": assetID})
}
