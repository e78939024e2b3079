//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/P0llen/speaker-detector/internal/app/feedback"
	"github.com/P0llen/speaker-detector/internal/app/identify"
	"github.com/P0llen/speaker-detector/internal/app/meeting"
	"github.com/P0llen/speaker-detector/internal/app/store"
	"github.com/P0llen/speaker-detector/internal/config"
)

// InitializeApplication wires the full object graph from the settings.
func InitializeApplication(settings *config.Settings) (*Application, error) {
	wire.Build(
		provideLogger,
		provideSlogLogger,
		provideBackends,
		provideEncoder,
		provideAudioProcessor,
		provideTranscriber,
		provideHistoryDAO,
		provideArchiver,
		provideProfileStore,
		provideMeetingStore,
		provideAuditLog,
		provideContainer,
		identify.NewEngine,
		meeting.NewPipeline,
		feedback.NewService,
		wire.Bind(new(identify.AggregateSource), new(*store.ProfileStore)),
		wire.Bind(new(meeting.Identifier), new(*identify.Engine)),
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
