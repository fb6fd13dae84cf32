package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/app/models/dto"
	"github.com/braxton0054/eavisystem/internal/middleware"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
)

// SettingsService reads and changes campus settings.
type SettingsService interface {
	Get(ctx context.Context, campusKey string) (*models.CampusSettings, error)
	Update(ctx context.Context, campusKey string, upd models.SettingsUpdate) (*models.CampusSettings, error)
}

// SettingsController handles campus settings
type SettingsController struct {
	settingsService SettingsService
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(settingsService SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// GetSettings returns the campus settings
// @Summary Get campus settings
// @Tags settings
// @Produce json
// @Param campus path string true "Campus key"
// @Success 200 {object} dto.StructuredResponse{data=models.CampusSettings}
// @Failure 404 {object} dto.ErrorResponse "Campus not found"
// @Router /{campus}/settings [get]
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	settings, err := c.settingsService.Get(ctx.Request.Context(), ctx.Param(campusParam))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, settings, "Settings retrieved successfully")
}

// UpdateSettings applies an administrator's settings change
// @Summary Update campus settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param campus path string true "Campus key"
// @Param request body dto.UpdateSettingsRequest true "Settings"
// @Success 200 {object} dto.StructuredResponse{data=models.CampusSettings}
// @Failure 400 {object} dto.ErrorResponse "Rejected field"
// @Router /{campus}/settings [put]
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	upd, err := settingsUpdate(&req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	settings, err := c.settingsService.Update(ctx.Request.Context(), ctx.Param(campusParam), upd)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, settings, "Settings updated successfully")
}

func settingsUpdate(req *dto.UpdateSettingsRequest) (models.SettingsUpdate, error) {
	upd := models.SettingsUpdate{
		AdmissionNumberFormat: req.AdmissionNumberFormat,
		StartingSequence:      req.StartingSequence,
	}
	for i, raw := range [3]string{req.Term1ReportingDate, req.Term2ReportingDate, req.Term3ReportingDate} {
		if raw == "" {
			continue
		}
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return upd, apperrors.NewValidationError(fmt.Sprintf("term%dReportingDate", i+1), "Reporting date must be YYYY-MM-DD")
		}
		upd.ReportingDates[i] = &d
	}
	return upd, nil
}
