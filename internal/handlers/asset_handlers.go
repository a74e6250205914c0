package handlers

import (
	"net/http"

	"craftfolio/internal/assets"

	"github.com/labstack/echo/v4"
)

// AssetHandlers exposes asset-store administrative endpoints
type AssetHandlers struct {
	store assets.AssetStore
}

// NewAssetHandlers creates a new asset handlers instance
func NewAssetHandlers(store assets.AssetStore) *AssetHandlers {
	return &AssetHandlers{store: store}
}

// UsageStats reports object count and total bytes held in the asset store
func (h *AssetHandlers) UsageStats(c echo.Context) error {
	usage, err := h.store.UsageStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"usage":   usage,
	})
}
