package encoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/P0llen/speaker-detector/internal/app/apperrors"
)

func writeTempAudio(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestMockEncoderDeterministic(t *testing.T) {
	enc := NewMockEncoder(192)
	path := writeTempAudio(t, "sample.wav", []byte("RIFF fake audio payload"))

	first, err := enc.Encode(context.Background(), path)
	require.NoError(t, err)
	second, err := enc.Encode(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 192, first.Dimension())
	for _, v := range first {
		assert.GreaterOrEqual(t, v, float32(-1))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestMockEncoderDifferentContent(t *testing.T) {
	enc := NewMockEncoder(64)
	a := writeTempAudio(t, "a.wav", []byte("voice of alice"))
	b := writeTempAudio(t, "b.wav", []byte("voice of bob"))

	fpA, err := enc.Encode(context.Background(), a)
	require.NoError(t, err)
	fpB, err := enc.Encode(context.Background(), b)
	require.NoError(t, err)

	assert.NotEqual(t, fpA, fpB)
}

func TestMockEncoderInvalidAudio(t *testing.T) {
	enc := NewMockEncoder(16)

	t.Run("empty file", func(t *testing.T) {
		path := writeTempAudio(t, "empty.wav", nil)
		_, err := enc.Encode(context.Background(), path)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAudio)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := enc.Encode(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidAudio)
	})
}

func TestHTTPEncoder(t *testing.T) {
	testCases := []struct {
		name          string
		response      string
		status        int
		expectErr     error
		expectDim     int
		errorContains string
	}{
		{
			name:      "successful encode",
			response:  `{"embedding": [0.1, -0.2, 0.3]}`,
			status:    http.StatusOK,
			expectDim: 3,
		},
		{
			name:          "service error body",
			response:      `{"error": "model not loaded"}`,
			status:        http.StatusOK,
			expectErr:     apperrors.ErrProviderFailure,
			errorContains: "model not loaded",
		},
		{
			name:      "server failure",
			response:  `backend unavailable`,
			status:    http.StatusInternalServerError,
			expectErr: apperrors.ErrProviderFailure,
		},
		{
			name:      "empty embedding",
			response:  `{"embedding": []}`,
			status:    http.StatusOK,
			expectErr: apperrors.ErrProviderFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				require.NoError(t, r.ParseMultipartForm(1<<20))
				_, _, err := r.FormFile("file")
				assert.NoError(t, err)

				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.response))
			}))
			defer server.Close()

			enc, err := NewHTTPEncoder(server.URL)
			require.NoError(t, err)

			path := writeTempAudio(t, "probe.wav", []byte("probe audio"))
			fp, err := enc.Encode(context.Background(), path)

			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				if tc.errorContains != "" {
					assert.Contains(t, err.Error(), tc.errorContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectDim, fp.Dimension())
		})
	}
}

func TestHTTPEncoderRejectsEmptyAudioLocally(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	enc, err := NewHTTPEncoder(server.URL)
	require.NoError(t, err)

	path := writeTempAudio(t, "empty.wav", nil)
	_, err = enc.Encode(context.Background(), path)

	assert.ErrorIs(t, err, apperrors.ErrInvalidAudio)
	assert.False(t, called, "empty audio must not reach the backend")
}

func TestNewHTTPEncoderRequiresEndpoint(t *testing.T) {
	_, err := NewHTTPEncoder("")
	assert.Error(t, err)
}
