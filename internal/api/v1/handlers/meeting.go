package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/P0llen/speaker-detector/internal/api/errors"
	"github.com/P0llen/speaker-detector/internal/api/middleware"
	"github.com/P0llen/speaker-detector/internal/api/v1/dto"
	"github.com/P0llen/speaker-detector/internal/api/v1/services"
)

// MeetingHandler handles meeting HTTP requests
type MeetingHandler struct {
	service services.MeetingService
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service services.MeetingService) *MeetingHandler {
	return &MeetingHandler{service: service}
}

// UploadChunk handles POST /api/v1/meetings/:id/chunks
//
// @Summary Upload one meeting audio chunk
// @Description Stores an audio chunk under the meeting; chunks merge in filename order at summary time
// @Tags meetings
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Meeting ID"
// @Param file formData file true "Audio chunk"
// @Success 201 {object} dto.ChunkUploadResponse "Chunk stored"
// @Failure 400 {object} errors.APIError "Missing upload"
// @Router /meetings/{id}/chunks [post]
func (h *MeetingHandler) UploadChunk(c *gin.Context) {
	fileHeader, err := c.FormFile(uploadField)
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("missing 'file' form field"))
		return
	}

	path, cleanup, err := saveUpload(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.SaveChunk(c.Request.Context(), c.Param("id"), fileHeader.Filename, data)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// List handles GET /api/v1/meetings
//
// @Summary List known meetings
// @Tags meetings
// @Produce json
// @Success 200 {object} dto.MeetingListResponse "Meetings"
// @Router /meetings [get]
func (h *MeetingHandler) List(c *gin.Context) {
	response, err := h.service.List(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Summary handles POST /api/v1/meetings/:id/summary
//
// @Summary Generate the labeled transcript of a meeting
// @Description Merges the meeting's chunks, transcribes them and labels every segment with a speaker
// @Tags meetings
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} model.MeetingSummary "Labeled transcript"
// @Failure 400 {object} errors.APIError "Meeting has no audio"
// @Failure 500 {object} errors.APIError "Merge failed"
// @Failure 503 {object} errors.APIError "Transcription backend unavailable"
// @Router /meetings/{id}/summary [post]
func (h *MeetingHandler) Summary(c *gin.Context) {
	response, err := h.service.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/v1/meetings/:id
//
// @Summary Delete a meeting
// @Description Archives the meeting's audio to object storage when configured, then removes it locally
// @Tags meetings
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} dto.DeleteMeetingResponse "Deletion outcome"
// @Failure 500 {object} errors.APIError "Archive or delete failed"
// @Router /meetings/{id} [delete]
func (h *MeetingHandler) Delete(c *gin.Context) {
	response, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// History handles GET /api/v1/meetings/history
//
// @Summary List recent summary runs
// @Tags meetings
// @Produce json
// @Param meeting_id query string false "Filter by meeting"
// @Param limit query int false "Maximum rows"
// @Success 200 {array} model.SummaryRun "Summary runs"
// @Router /meetings/history [get]
func (h *MeetingHandler) History(c *gin.Context) {
	var query dto.HistoryQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	runs, err := h.service.History(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, runs)
}
