package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings is the process configuration, loaded from the environment with an
// optional .env overlay.
type Settings struct {
	// DataDir is the root of the persisted layout (speakers/, meetings/,
	// feedback.log, history db).
	DataDir string

	// HTTPAddr is the listen address of the API server.
	HTTPAddr string

	// Development switches logging to the human-readable development sink.
	Development bool

	// EncoderURL points at the voice embedding backend. EncoderAPIKey and
	// EncoderModel are optional.
	EncoderURL    string
	EncoderAPIKey string
	EncoderModel  string

	// OpenAIAPIKey authenticates transcription calls.
	OpenAIAPIKey string

	// BackendsFile optionally points at the YAML backend selection file.
	// Environment settings win over file values.
	BackendsFile string

	// HistoryDriver selects the summary history backend: "sqlite",
	// "postgres" or "none". HistoryDSN is the postgres connection string.
	HistoryDriver string
	HistoryDSN    string

	// Object storage archive settings. Archiving is disabled when the
	// endpoint is empty.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// LoadEnv loads variables from the first .env file found. Absence of a .env
// file is not an error; system-wide variables still apply.
func LoadEnv() error {
	envPaths := []string{".env", ".env.local", "../.env"}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// FromEnv builds the settings from the current environment, applying
// defaults where a variable is unset.
func FromEnv() (*Settings, error) {
	s := &Settings{
		DataDir:        getenvDefault("SPKD_DATA_DIR", "data"),
		HTTPAddr:       getenvDefault("SPKD_HTTP_ADDR", ":8000"),
		Development:    boolEnv("SPKD_DEV"),
		EncoderURL:     strings.TrimSpace(os.Getenv("SPKD_ENCODER_URL")),
		EncoderAPIKey:  strings.TrimSpace(os.Getenv("SPKD_ENCODER_API_KEY")),
		EncoderModel:   strings.TrimSpace(os.Getenv("SPKD_ENCODER_MODEL")),
		OpenAIAPIKey:   strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		BackendsFile:   strings.TrimSpace(os.Getenv("SPKD_BACKENDS_FILE")),
		HistoryDriver:  getenvDefault("SPKD_HISTORY_DRIVER", "sqlite"),
		HistoryDSN:     strings.TrimSpace(os.Getenv("SPKD_HISTORY_DSN")),
		MinioEndpoint:  strings.TrimSpace(os.Getenv("MINIO_ENDPOINT")),
		MinioAccessKey: getenvDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getenvDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getenvDefault("MINIO_BUCKET", "spkd-meetings"),
		MinioUseSSL:    boolEnv("MINIO_USE_SSL"),
	}

	if s.OpenAIAPIKey != "" && !strings.HasPrefix(s.OpenAIAPIKey, "sk-") {
		return nil, fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
	}
	switch s.HistoryDriver {
	case "sqlite", "none":
	case "postgres":
		if s.HistoryDSN == "" {
			return nil, fmt.Errorf("SPKD_HISTORY_DRIVER=postgres requires SPKD_HISTORY_DSN")
		}
	default:
		return nil, fmt.Errorf("unknown SPKD_HISTORY_DRIVER %q", s.HistoryDriver)
	}
	return s, nil
}

// Load is the main configuration entry point: .env overlay plus environment.
func Load() (*Settings, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}
	return FromEnv()
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func boolEnv(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
