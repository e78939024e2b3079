package test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/P0llen/speaker-detector/internal/api/errors"
	"github.com/P0llen/speaker-detector/internal/api/v1/dto"
	"github.com/P0llen/speaker-detector/internal/api/v1/routes"
	"github.com/P0llen/speaker-detector/internal/app/apperrors"
	"github.com/P0llen/speaker-detector/internal/app/model"
	"github.com/P0llen/speaker-detector/internal/app/testutil"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *testutil.MockServices) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	mockServices := testutil.NewMockServices(t)

	v1 := router.Group("/api/v1")
	routes.RegisterRoutes(v1, &routes.ServiceContainer{
		SpeakerService:  mockServices.SpeakerService,
		MeetingService:  mockServices.MeetingService,
		FeedbackService: mockServices.FeedbackService,
	})
	return router, mockServices
}

func audioUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSpeakerHandler_Enroll(t *testing.T) {
	router, ms := setupTestRouter(t)

	ms.SpeakerService.On("Enroll", mock.Anything, "alice", mock.Anything).
		Return(&dto.EnrollResponse{Speaker: "alice", SampleIndex: 3, SampleCount: 3}, nil)

	body, contentType := audioUpload(t, "take.wav", []byte("audio bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/speakers/alice/samples", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp dto.EnrollResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.SampleIndex)
	ms.AssertExpectations(t)
}

func TestSpeakerHandler_EnrollMissingFile(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/speakers/alice/samples", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr errors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, errors.KindBadRequest, apiErr.Kind)
}

func TestSpeakerHandler_Identify(t *testing.T) {
	tests := []struct {
		name     string
		response *dto.IdentifyResponse
	}{
		{
			name:     "matched speaker",
			response: &dto.IdentifyResponse{Speaker: "alice", Score: 0.873},
		},
		{
			name:     "no enrolled speakers",
			response: &dto.IdentifyResponse{Speaker: "unknown", Score: 0},
		},
		{
			name:     "unreadable probe",
			response: &dto.IdentifyResponse{Speaker: "error", Score: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ms := setupTestRouter(t)
			ms.SpeakerService.On("Identify", mock.Anything, mock.Anything).Return(tt.response, nil)

			body, contentType := audioUpload(t, "probe.wav", []byte("probe"))
			req := httptest.NewRequest(http.MethodPost, "/api/v1/identify", body)
			req.Header.Set("Content-Type", contentType)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			var resp dto.IdentifyResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.response.Speaker, resp.Speaker)
			assert.Equal(t, tt.response.Score, resp.Score)
		})
	}
}

func TestSpeakerHandler_RenameValidation(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
	}{
		{
			name: "successful rename",
			body: `{"new_id": "alice-m"}`,
			setupMocks: func(ms *testutil.MockServices) {
				ms.SpeakerService.On("Rename", mock.Anything, "alice", "alice-m").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing new_id",
			body:           `{}`,
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "reserved label",
			body:           `{"new_id": "unknown"}`,
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "target name taken",
			body: `{"new_id": "bob"}`,
			setupMocks: func(ms *testutil.MockServices) {
				ms.SpeakerService.On("Rename", mock.Anything, "alice", "bob").
					Return(apperrors.Wrap(apperrors.ErrConflict, "speaker bob"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "unknown speaker",
			body: `{"new_id": "carol"}`,
			setupMocks: func(ms *testutil.MockServices) {
				ms.SpeakerService.On("Rename", mock.Anything, "alice", "carol").
					Return(apperrors.Wrap(apperrors.ErrNotFound, "speaker alice"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ms := setupTestRouter(t)
			tt.setupMocks(ms)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/speakers/alice", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			ms.AssertExpectations(t)
		})
	}
}

func TestSpeakerHandler_List(t *testing.T) {
	router, ms := setupTestRouter(t)

	ms.SpeakerService.On("List", mock.Anything).Return(&dto.SpeakerListResponse{
		Speakers: []model.ProfileInfo{
			{ID: "alice", SampleCount: 3},
			{ID: "bob", SampleCount: 1},
		},
		Total: 2,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/speakers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.SpeakerListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "alice", resp.Speakers[0].ID)
}

func TestSpeakerHandler_Improve(t *testing.T) {
	router, ms := setupTestRouter(t)

	ms.SpeakerService.On("Improve", mock.Anything, "alice", mock.Anything).
		Return(&dto.ImproveResponse{Speaker: "alice", SampleCount: 4, Dimension: 192}, nil)

	body, contentType := audioUpload(t, "extra.wav", []byte("more alice"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/speakers/alice/improve", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ImproveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Speaker)
	assert.Equal(t, 4, resp.SampleCount)
}

func TestSpeakerHandler_ImproveMissingFile(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/speakers/alice/improve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpeakerHandler_Recordings(t *testing.T) {
	router, ms := setupTestRouter(t)

	ms.SpeakerService.On("Recordings", mock.Anything).Return(&dto.RecordingsResponse{
		Recordings: map[string][]string{
			"alice": {"1.wav", "2.wav"},
			"bob":   {"1.wav"},
		},
		Total: 3,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/speakers/recordings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.RecordingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, []string{"1.wav", "2.wav"}, resp.Recordings["alice"])
}

func TestMeetingHandler_Summary(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
	}{
		{
			name: "successful summary",
			setupMocks: func(ms *testutil.MockServices) {
				ms.MeetingService.On("Summary", mock.Anything, "standup").
					Return(&model.MeetingSummary{
						MeetingID:  "standup",
						Transcript: "hello",
						Segments: []model.LabeledSegment{
							{Start: 0, End: 2, Speaker: "alice", Score: 0.91, Text: "hello"},
						},
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "meeting without audio",
			setupMocks: func(ms *testutil.MockServices) {
				ms.MeetingService.On("Summary", mock.Anything, "standup").
					Return(nil, apperrors.Wrap(apperrors.ErrNoAudio, "meeting standup"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "transcription backend down",
			setupMocks: func(ms *testutil.MockServices) {
				ms.MeetingService.On("Summary", mock.Anything, "standup").
					Return(nil, apperrors.Wrap(apperrors.ErrTranscriptionFailed, "backend"))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ms := setupTestRouter(t)
			tt.setupMocks(ms)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/meetings/standup/summary", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			ms.AssertExpectations(t)
		})
	}
}

func TestMeetingHandler_UploadChunk(t *testing.T) {
	router, ms := setupTestRouter(t)

	ms.MeetingService.On("SaveChunk", mock.Anything, "standup", "chunk_001.webm", []byte("chunk data")).
		Return(&dto.ChunkUploadResponse{Meeting: "standup", Chunk: "chunk_001.wav"}, nil)

	body, contentType := audioUpload(t, "chunk_001.webm", []byte("chunk data"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/meetings/standup/chunks", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	ms.AssertExpectations(t)
}

func TestFeedbackHandler_Correct(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
	}{
		{
			name: "successful correction",
			body: `{"old_speaker": "alice", "correct_speaker": "bob", "filename": "2.wav"}`,
			setupMocks: func(ms *testutil.MockServices) {
				ms.FeedbackService.On("Correct", mock.Anything, dto.CorrectionRequest{
					OldSpeaker: "alice", CorrectSpeaker: "bob", Filename: "2.wav",
				}).Return(&model.FeedbackRecord{
					OldSpeaker: "alice", CorrectSpeaker: "bob", Filename: "2.wav",
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "keep original copy",
			body: `{"old_speaker": "alice", "correct_speaker": "bob", "filename": "2.wav", "delete_original": false}`,
			setupMocks: func(ms *testutil.MockServices) {
				ms.FeedbackService.On("Correct", mock.Anything, mock.MatchedBy(func(req dto.CorrectionRequest) bool {
					return !req.ShouldDeleteOriginal()
				})).Return(&model.FeedbackRecord{
					OldSpeaker: "alice", CorrectSpeaker: "bob", Filename: "2.wav",
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "same speaker on both sides",
			body:           `{"old_speaker": "alice", "correct_speaker": "alice", "filename": "2.wav"}`,
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "missing filename",
			body:           `{"old_speaker": "alice", "correct_speaker": "bob"}`,
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "sample not found",
			body: `{"old_speaker": "alice", "correct_speaker": "bob", "filename": "9.wav"}`,
			setupMocks: func(ms *testutil.MockServices) {
				ms.FeedbackService.On("Correct", mock.Anything, mock.Anything).
					Return(nil, apperrors.Wrap(apperrors.ErrNotFound, "sample 9.wav"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ms := setupTestRouter(t)
			tt.setupMocks(ms)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/corrections", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			ms.AssertExpectations(t)
		})
	}
}
