package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/P0llen/speaker-detector/internal/api/middleware"
	"github.com/P0llen/speaker-detector/internal/api/v1/dto"
	"github.com/P0llen/speaker-detector/internal/api/v1/services"
)

// FeedbackHandler handles labeling correction HTTP requests
type FeedbackHandler struct {
	service services.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(service services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Correct handles POST /api/v1/corrections
//
// @Summary Apply a labeling correction
// @Description Moves a mislabeled sample to the right speaker, rebuilds both aggregates and records the correction
// @Tags corrections
// @Accept json
// @Produce json
// @Param correction body dto.CorrectionRequest true "Correction data"
// @Success 201 {object} model.FeedbackRecord "Applied correction"
// @Failure 404 {object} errors.APIError "Sample not found"
// @Failure 409 {object} errors.APIError "Filename collision on target speaker"
// @Failure 422 {object} errors.APIError "Validation error"
// @Router /corrections [post]
func (h *FeedbackHandler) Correct(c *gin.Context) {
	var req dto.CorrectionRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	record, err := h.service.Correct(c.Request.Context(), req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// History handles GET /api/v1/corrections
//
// @Summary List applied corrections
// @Tags corrections
// @Produce json
// @Success 200 {array} model.FeedbackRecord "Corrections in append order"
// @Router /corrections [get]
func (h *FeedbackHandler) History(c *gin.Context) {
	records, err := h.service.History(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
