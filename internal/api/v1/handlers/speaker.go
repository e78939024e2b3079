package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/P0llen/speaker-detector/internal/api/middleware"
	"github.com/P0llen/speaker-detector/internal/api/v1/dto"
	"github.com/P0llen/speaker-detector/internal/api/v1/services"
)

// SpeakerHandler handles speaker profile HTTP requests
type SpeakerHandler struct {
	service services.SpeakerService
}

// NewSpeakerHandler creates a new speaker handler
func NewSpeakerHandler(service services.SpeakerService) *SpeakerHandler {
	return &SpeakerHandler{service: service}
}

// Enroll handles POST /api/v1/speakers/:id/samples
//
// @Summary Enroll a reference sample for a speaker
// @Description Stores the uploaded audio as the speaker's next reference sample and refreshes the aggregate fingerprint
// @Tags speakers
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Speaker ID"
// @Param file formData file true "Audio sample"
// @Success 201 {object} dto.EnrollResponse "Sample stored"
// @Failure 400 {object} errors.APIError "Invalid audio"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /speakers/{id}/samples [post]
func (h *SpeakerHandler) Enroll(c *gin.Context) {
	path, cleanup, err := saveUpload(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer cleanup()

	response, err := h.service.Enroll(c.Request.Context(), c.Param("id"), path)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// List handles GET /api/v1/speakers
//
// @Summary List enrolled speakers
// @Tags speakers
// @Produce json
// @Success 200 {object} dto.SpeakerListResponse "Enrolled speakers"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /speakers [get]
func (h *SpeakerHandler) List(c *gin.Context) {
	response, err := h.service.List(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Recordings handles GET /api/v1/speakers/recordings
//
// @Summary List stored reference recordings per speaker
// @Tags speakers
// @Produce json
// @Success 200 {object} dto.RecordingsResponse "Sample filenames keyed by speaker"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /speakers/recordings [get]
func (h *SpeakerHandler) Recordings(c *gin.Context) {
	response, err := h.service.Recordings(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Rename handles PUT /api/v1/speakers/:id
//
// @Summary Rename a speaker
// @Description Renames the profile directory; all samples and the aggregate move with it
// @Tags speakers
// @Accept json
// @Produce json
// @Param id path string true "Current speaker ID"
// @Param rename body dto.RenameRequest true "New speaker ID"
// @Success 200 {object} map[string]string "Renamed"
// @Failure 404 {object} errors.APIError "Speaker not found"
// @Failure 409 {object} errors.APIError "Target name taken"
// @Router /speakers/{id} [put]
func (h *SpeakerHandler) Rename(c *gin.Context) {
	var req dto.RenameRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if err := h.service.Rename(c.Request.Context(), c.Param("id"), req.NewID); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"speaker": req.NewID})
}

// Delete handles DELETE /api/v1/speakers/:id
//
// @Summary Delete a speaker profile
// @Tags speakers
// @Produce json
// @Param id path string true "Speaker ID"
// @Success 200 {object} dto.DeleteSpeakerResponse "Deletion outcome"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /speakers/{id} [delete]
func (h *SpeakerHandler) Delete(c *gin.Context) {
	response, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Improve handles POST /api/v1/speakers/:id/improve
//
// @Summary Improve a speaker's profile with one more sample
// @Description Enrolls the uploaded audio as an additional reference sample and recomputes the cached mean fingerprint
// @Tags speakers
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Speaker ID"
// @Param file formData file true "Additional audio sample"
// @Success 200 {object} dto.ImproveResponse "Rebuilt aggregate"
// @Failure 400 {object} errors.APIError "Invalid audio"
// @Failure 404 {object} errors.APIError "Speaker not found"
// @Router /speakers/{id}/improve [post]
func (h *SpeakerHandler) Improve(c *gin.Context) {
	path, cleanup, err := saveUpload(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer cleanup()

	response, err := h.service.Improve(c.Request.Context(), c.Param("id"), path)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Identify handles POST /api/v1/identify
//
// @Summary Identify the speaker of an audio probe
// @Description Matches the uploaded audio against all enrolled profiles and returns the closest one
// @Tags identify
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Probe audio"
// @Success 200 {object} dto.IdentifyResponse "Match result"
// @Failure 400 {object} errors.APIError "Missing upload"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /identify [post]
func (h *SpeakerHandler) Identify(c *gin.Context) {
	path, cleanup, err := saveUpload(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer cleanup()

	response, err := h.service.Identify(c.Request.Context(), path)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Export handles GET /api/v1/speakers/export
//
// @Summary Export enrolled profiles
// @Description Exports all profiles as JSON (default) or as an xlsx spreadsheet
// @Tags speakers
// @Produce json
// @Param format query string false "Export format" Enums(json, xlsx)
// @Success 200 "Profile snapshot"
// @Failure 400 {object} errors.APIError "Unknown format"
// @Router /speakers/export [get]
func (h *SpeakerHandler) Export(c *gin.Context) {
	switch c.DefaultQuery("format", "json") {
	case "json":
		c.Header("Content-Type", "application/json")
		if err := h.service.ExportJSON(c.Request.Context(), c.Writer); err != nil {
			middleware.HandleError(c, err)
		}
	case "xlsx":
		tmpDir, err := os.MkdirTemp("", "export-")
		if err != nil {
			middleware.HandleError(c, err)
			return
		}
		defer os.RemoveAll(tmpDir)

		path := filepath.Join(tmpDir, "speakers.xlsx")
		if err := h.service.ExportExcel(c.Request.Context(), path); err != nil {
			middleware.HandleError(c, err)
			return
		}
		c.FileAttachment(path, "speakers.xlsx")
	default:
		middleware.HandleError(c, apiBadFormat())
	}
}
