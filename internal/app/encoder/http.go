package encoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/P0llen/speaker-detector/internal/app/apperrors"
	"github.com/P0llen/speaker-detector/internal/app/model"
	"github.com/P0llen/speaker-detector/internal/observability"
)

// HTTPEncoder talks to an embedding service (a speechbrain ECAPA model behind
// an HTTP endpoint) that accepts a multipart audio upload and returns a JSON
// body with an "embedding" array.
type HTTPEncoder struct {
	endpoint  string
	apiKey    string
	modelName string
	dimension int
	client    *http.Client
}

// HTTPEncoderOption configures an HTTPEncoder.
type HTTPEncoderOption func(*HTTPEncoder)

// WithAPIKey sets a bearer token sent with every request.
func WithAPIKey(key string) HTTPEncoderOption {
	return func(e *HTTPEncoder) { e.apiKey = key }
}

// WithTimeout overrides the default 2 minute request timeout.
func WithTimeout(timeout time.Duration) HTTPEncoderOption {
	return func(e *HTTPEncoder) { e.client.Timeout = timeout }
}

// WithModel overrides the reported model name and dimension.
func WithModel(name string, dimension int) HTTPEncoderOption {
	return func(e *HTTPEncoder) {
		e.modelName = name
		e.dimension = dimension
	}
}

// NewHTTPEncoder creates an encoder client for the given endpoint.
func NewHTTPEncoder(endpoint string, opts ...HTTPEncoderOption) (*HTTPEncoder, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("http encoder requires an endpoint")
	}

	e := &HTTPEncoder{
		endpoint:  endpoint,
		modelName: "spkrec-ecapa-voxceleb",
		dimension: 192,
		client:    &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error,omitempty"`
}

// Encode uploads the audio file and returns the fingerprint.
func (e *HTTPEncoder) Encode(ctx context.Context, audioPath string) (model.Fingerprint, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidAudio, "unreadable audio %s: %v", audioPath, err)
	}
	if info.Size() == 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidAudio, "empty audio %s", audioPath)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidAudio, "open audio %s: %v", audioPath, err)
	}
	defer file.Close()

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, &requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	started := time.Now()
	resp, err := e.client.Do(req)
	observability.ObserveEncoderLatency(time.Since(started).Seconds())
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrProviderFailure, "encoder request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrProviderFailure, "failed to read encoder response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Wrapf(apperrors.ErrProviderFailure,
			"encoder returned %d: %s", resp.StatusCode, string(body))
	}

	var result embeddingResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrProviderFailure, "invalid encoder response: %v", err)
	}
	if result.Error != "" {
		return nil, apperrors.Wrapf(apperrors.ErrProviderFailure, "encoder error: %s", result.Error)
	}
	if len(result.Embedding) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrProviderFailure, "encoder returned empty embedding")
	}

	return model.Fingerprint(result.Embedding), nil
}

// Info returns metadata about the encoder backend.
func (e *HTTPEncoder) Info() BackendInfo {
	return BackendInfo{
		Name:      "speechbrain-http",
		Model:     e.modelName,
		Dimension: e.dimension,
	}
}
