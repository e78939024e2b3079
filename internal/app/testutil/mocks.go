package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/P0llen/speaker-detector/internal/api/v1/dto"
	"github.com/P0llen/speaker-detector/internal/app/model"
)

// MockSpeakerService is a testify mock of services.SpeakerService
type MockSpeakerService struct {
	mock.Mock
}

func (m *MockSpeakerService) Enroll(ctx context.Context, speakerID, audioPath string) (*dto.EnrollResponse, error) {
	args := m.Called(ctx, speakerID, audioPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EnrollResponse), args.Error(1)
}

func (m *MockSpeakerService) List(ctx context.Context) (*dto.SpeakerListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SpeakerListResponse), args.Error(1)
}

func (m *MockSpeakerService) Recordings(ctx context.Context) (*dto.RecordingsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecordingsResponse), args.Error(1)
}

func (m *MockSpeakerService) Rename(ctx context.Context, oldID, newID string) error {
	args := m.Called(ctx, oldID, newID)
	return args.Error(0)
}

func (m *MockSpeakerService) Delete(ctx context.Context, speakerID string) (*dto.DeleteSpeakerResponse, error) {
	args := m.Called(ctx, speakerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeleteSpeakerResponse), args.Error(1)
}

func (m *MockSpeakerService) Improve(ctx context.Context, speakerID, audioPath string) (*dto.ImproveResponse, error) {
	args := m.Called(ctx, speakerID, audioPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImproveResponse), args.Error(1)
}

func (m *MockSpeakerService) Identify(ctx context.Context, audioPath string) (*dto.IdentifyResponse, error) {
	args := m.Called(ctx, audioPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.IdentifyResponse), args.Error(1)
}

func (m *MockSpeakerService) ExportJSON(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockSpeakerService) ExportExcel(ctx context.Context, outputPath string) error {
	args := m.Called(ctx, outputPath)
	return args.Error(0)
}

// MockMeetingService is a testify mock of services.MeetingService
type MockMeetingService struct {
	mock.Mock
}

func (m *MockMeetingService) SaveChunk(ctx context.Context, meetingID, chunkName string, data []byte) (*dto.ChunkUploadResponse, error) {
	args := m.Called(ctx, meetingID, chunkName, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChunkUploadResponse), args.Error(1)
}

func (m *MockMeetingService) List(ctx context.Context) (*dto.MeetingListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MeetingListResponse), args.Error(1)
}

func (m *MockMeetingService) Summary(ctx context.Context, meetingID string) (*model.MeetingSummary, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MeetingSummary), args.Error(1)
}

func (m *MockMeetingService) Delete(ctx context.Context, meetingID string) (*dto.DeleteMeetingResponse, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeleteMeetingResponse), args.Error(1)
}

func (m *MockMeetingService) History(ctx context.Context, query dto.HistoryQuery) ([]model.SummaryRun, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SummaryRun), args.Error(1)
}

// MockFeedbackService is a testify mock of services.FeedbackService
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) Correct(ctx context.Context, req dto.CorrectionRequest) (*model.FeedbackRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeedbackRecord), args.Error(1)
}

func (m *MockFeedbackService) History(ctx context.Context) ([]model.FeedbackRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FeedbackRecord), args.Error(1)
}

// MockServices bundles all service mocks for handler tests
type MockServices struct {
	SpeakerService  *MockSpeakerService
	MeetingService  *MockMeetingService
	FeedbackService *MockFeedbackService
}

// NewMockServices creates a fresh set of service mocks
func NewMockServices(t *testing.T) *MockServices {
	t.Helper()
	return &MockServices{
		SpeakerService:  &MockSpeakerService{},
		MeetingService:  &MockMeetingService{},
		FeedbackService: &MockFeedbackService{},
	}
}

// AssertExpectations verifies all mock expectations
func (ms *MockServices) AssertExpectations(t *testing.T) {
	ms.SpeakerService.AssertExpectations(t)
	ms.MeetingService.AssertExpectations(t)
	ms.FeedbackService.AssertExpectations(t)
}
