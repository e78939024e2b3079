package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/P0llen/speaker-detector/internal/app/encoder"
	"github.com/P0llen/speaker-detector/internal/app/transcriber"
	"github.com/P0llen/speaker-detector/internal/config"
)

func writeBackendsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backends.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProvideBackendsDefaultsWithoutFile(t *testing.T) {
	backends, err := provideBackends(&config.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "mock", backends.Encoder.Type)
	assert.Equal(t, "whisper", backends.Transcriber.Type)
}

func TestProvideEncoderFromBackendsFile(t *testing.T) {
	settings := &config.Settings{
		BackendsFile: writeBackendsFile(t, `
encoder:
  type: http
  url: http://127.0.0.1:9000/embed
  model: file-model
transcriber:
  type: mock
`),
	}

	backends, err := provideBackends(settings)
	require.NoError(t, err)

	enc, err := provideEncoder(settings, backends)
	require.NoError(t, err)
	require.IsType(t, &encoder.HTTPEncoder{}, enc)
	assert.Equal(t, "file-model", enc.Info().Model)

	tr := provideTranscriber(settings, backends)
	assert.IsType(t, &transcriber.MockTranscriber{}, tr)
}

func TestProvideEncoderEnvWinsOverFile(t *testing.T) {
	settings := &config.Settings{
		EncoderModel: "env-model",
		EncoderURL:   "http://127.0.0.1:9100/embed",
		BackendsFile: writeBackendsFile(t, `
encoder:
  type: http
  url: http://127.0.0.1:9000/embed
  model: file-model
`),
	}

	backends, err := provideBackends(settings)
	require.NoError(t, err)

	enc, err := provideEncoder(settings, backends)
	require.NoError(t, err)
	assert.Equal(t, "env-model", enc.Info().Model)
}

func TestProvideEncoderFallsBackToMock(t *testing.T) {
	backends, err := provideBackends(&config.Settings{})
	require.NoError(t, err)

	enc, err := provideEncoder(&config.Settings{}, backends)
	require.NoError(t, err)
	assert.IsType(t, &encoder.MockEncoder{}, enc)
}
