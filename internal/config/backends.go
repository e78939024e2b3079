package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BackendsConfig is the optional YAML file selecting the embedding and
// transcription backends. Environment settings win over file values, so the
// file only needs the parts that differ from the defaults.
type BackendsConfig struct {
	Encoder     BackendConfig `yaml:"encoder"`
	Transcriber BackendConfig `yaml:"transcriber"`
}

// BackendConfig describes one remote backend.
type BackendConfig struct {
	// Type is "http" or "mock" for the encoder, "whisper" or "mock" for
	// the transcriber.
	Type       string `yaml:"type"`
	URL        string `yaml:"url,omitempty"`
	Model      string `yaml:"model,omitempty"`
	APIKeyEnv  string `yaml:"api_key_env,omitempty"`
	TimeoutSec int    `yaml:"timeout_sec,omitempty"`
}

// LoadBackendsConfig parses the backend selection file. The path may contain
// environment variables.
func LoadBackendsConfig(configPath string) (*BackendsConfig, error) {
	configPath = os.ExpandEnv(configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read backends config: %w", err)
	}

	var cfg BackendsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse backends config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid backends config: %w", err)
	}
	return &cfg, nil
}

// DefaultBackends is the selection used when no backends file is configured:
// the deterministic local encoder and the whisper transcriber keyed from the
// environment.
func DefaultBackends() *BackendsConfig {
	return &BackendsConfig{
		Encoder:     BackendConfig{Type: "mock"},
		Transcriber: BackendConfig{Type: "whisper", APIKeyEnv: "OPENAI_API_KEY"},
	}
}

// APIKey resolves the backend's key from the environment variable the config
// names.
func (b BackendConfig) APIKey() string {
	if b.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(b.APIKeyEnv)
}

func (c *BackendsConfig) setDefaults() {
	if c.Encoder.Type == "" {
		c.Encoder.Type = "http"
	}
	if c.Transcriber.Type == "" {
		c.Transcriber.Type = "whisper"
	}
	if c.Transcriber.APIKeyEnv == "" {
		c.Transcriber.APIKeyEnv = "OPENAI_API_KEY"
	}
}

func (c *BackendsConfig) validate() error {
	switch c.Encoder.Type {
	case "http":
		if c.Encoder.URL == "" {
			return fmt.Errorf("encoder of type http needs a url")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown encoder type %q", c.Encoder.Type)
	}
	switch c.Transcriber.Type {
	case "whisper", "mock":
	default:
		return fmt.Errorf("unknown transcriber type %q", c.Transcriber.Type)
	}
	return nil
}
