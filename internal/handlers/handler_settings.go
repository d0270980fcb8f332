package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := &settingsHandler{settingsService: settingsService}
	rg.GET("/settings", h.getSettings)
	rg.PUT("/settings", h.updateSettings)
}

// getSettings godoc
// @Summary Get company settings
// @Description Returns the caller's settings, creating defaults on first access.
// @Tags settings
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Security BearerAuth
// @Router /api/v1/settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	settings, err := h.settingsService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// updateSettings godoc
// @Summary Update company settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.UpdateSettingsRequest true "Settings"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/settings [put]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}
