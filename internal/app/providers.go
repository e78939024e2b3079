package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/P0llen/speaker-detector/internal/api/v1/routes"
	"github.com/P0llen/speaker-detector/internal/api/v1/services"
	"github.com/P0llen/speaker-detector/internal/app/archive"
	"github.com/P0llen/speaker-detector/internal/app/audio"
	"github.com/P0llen/speaker-detector/internal/app/encoder"
	"github.com/P0llen/speaker-detector/internal/app/feedback"
	"github.com/P0llen/speaker-detector/internal/app/history"
	historypg "github.com/P0llen/speaker-detector/internal/app/history/pg"
	historysqlite "github.com/P0llen/speaker-detector/internal/app/history/sqlite"
	"github.com/P0llen/speaker-detector/internal/app/identify"
	"github.com/P0llen/speaker-detector/internal/app/logging"
	"github.com/P0llen/speaker-detector/internal/app/meeting"
	"github.com/P0llen/speaker-detector/internal/app/store"
	"github.com/P0llen/speaker-detector/internal/app/transcriber"
	"github.com/P0llen/speaker-detector/internal/config"
)

// Application bundles the wired object graph of the process.
type Application struct {
	Settings    *config.Settings
	Logger      *zap.Logger
	SlogLogger  *slog.Logger
	Profiles    *store.ProfileStore
	Meetings    *store.MeetingStore
	Engine      *identify.Engine
	Pipeline    *meeting.Pipeline
	Corrections *feedback.Service
	History     history.SummaryRunDAO
	Archiver    archive.Archiver
	Container   *routes.ServiceContainer
}

// Close releases held resources, currently only the history database.
func (a *Application) Close() error {
	return a.History.Close()
}

func provideLogger(settings *config.Settings) *zap.Logger {
	return logging.MustNewLogger(settings.Development)
}

func provideSlogLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// provideBackends loads the optional YAML backend selection file named by
// the settings. Without one the defaults apply.
func provideBackends(settings *config.Settings) (*config.BackendsConfig, error) {
	if settings.BackendsFile == "" {
		return config.DefaultBackends(), nil
	}
	return config.LoadBackendsConfig(settings.BackendsFile)
}

// provideEncoder selects the embedding backend, environment settings winning
// over backends-file values. Without a URL from either source the
// deterministic local encoder is used, which keeps enrollment and matching
// functional for development and tests.
func provideEncoder(settings *config.Settings, backends *config.BackendsConfig) (encoder.Encoder, error) {
	url := settings.EncoderURL
	if url == "" && backends.Encoder.Type == "http" {
		url = backends.Encoder.URL
	}
	if url == "" {
		return encoder.NewMockEncoder(192), nil
	}

	opts := []encoder.HTTPEncoderOption{}
	if key := firstNonEmpty(settings.EncoderAPIKey, backends.Encoder.APIKey()); key != "" {
		opts = append(opts, encoder.WithAPIKey(key))
	}
	if model := firstNonEmpty(settings.EncoderModel, backends.Encoder.Model); model != "" {
		opts = append(opts, encoder.WithModel(model, 192))
	}
	if backends.Encoder.TimeoutSec > 0 {
		opts = append(opts, encoder.WithTimeout(time.Duration(backends.Encoder.TimeoutSec)*time.Second))
	}
	return encoder.NewHTTPEncoder(url, opts...)
}

func provideAudioProcessor() audio.Processor {
	return audio.NewFFmpeg()
}

// provideTranscriber selects the transcription backend, environment settings
// winning over backends-file values. Without an OpenAI key the summary
// pipeline is still constructible; it fails at transcription time with a
// provider failure.
func provideTranscriber(settings *config.Settings, backends *config.BackendsConfig) transcriber.Transcriber {
	if backends.Transcriber.Type == "mock" {
		return &transcriber.MockTranscriber{}
	}
	key := firstNonEmpty(settings.OpenAIAPIKey, backends.Transcriber.APIKey())
	return transcriber.NewWhisperTranscriber(openai.NewClient(key))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func provideHistoryDAO(settings *config.Settings) (history.SummaryRunDAO, error) {
	switch settings.HistoryDriver {
	case "postgres":
		return historypg.NewPostgresDB(settings.HistoryDSN)
	case "none":
		return history.NewNopDAO(), nil
	default:
		return historysqlite.NewSQLiteDB(filepath.Join(settings.DataDir, "history.db"))
	}
}

func provideArchiver(settings *config.Settings, logger *zap.Logger) (archive.Archiver, error) {
	if settings.MinioEndpoint == "" {
		return archive.NopArchiver{}, nil
	}
	return archive.NewMinioArchiver(context.Background(), archive.Config{
		Endpoint:  settings.MinioEndpoint,
		AccessKey: settings.MinioAccessKey,
		SecretKey: settings.MinioSecretKey,
		Bucket:    settings.MinioBucket,
		UseSSL:    settings.MinioUseSSL,
	}, logger)
}

func provideProfileStore(settings *config.Settings, enc encoder.Encoder, logger *zap.Logger) (*store.ProfileStore, error) {
	return store.NewProfileStore(settings.DataDir, enc, logger)
}

func provideMeetingStore(settings *config.Settings, logger *zap.Logger) (*store.MeetingStore, error) {
	return store.NewMeetingStore(settings.DataDir, logger)
}

func provideAuditLog(settings *config.Settings) *feedback.AuditLog {
	return feedback.NewAuditLog(settings.DataDir)
}

func provideContainer(profiles *store.ProfileStore, engine *identify.Engine, proc audio.Processor,
	meetings *store.MeetingStore, pipeline *meeting.Pipeline, archiver archive.Archiver,
	runs history.SummaryRunDAO, corrections *feedback.Service, logger *zap.Logger) *routes.ServiceContainer {
	return &routes.ServiceContainer{
		SpeakerService:  services.NewSpeakerService(profiles, engine, proc, corrections),
		MeetingService:  services.NewMeetingService(meetings, pipeline, proc, archiver, runs, logger),
		FeedbackService: services.NewFeedbackService(corrections),
	}
}
