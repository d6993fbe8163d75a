package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.GeneratorHost)
	assert.Equal(t, 384, cfg.EmbeddingDim)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://model-server:8080"),
		WithEmbeddingModel("embeddinggemma"),
		WithGeneratorModel("gpt-4o-mini"),
		WithEmbeddingDim(768),
		WithInferenceEndpoint("https://inference.example.com/minilm"),
		WithInferenceToken("secret"),
		WithFallbackServiceURL("http://localhost:9000/embed"),
	)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://model-server:8080/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://model-server:8080/v1", cfg.GeneratorHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.GeneratorModel)
	assert.Equal(t, 768, cfg.EmbeddingDim)
	assert.Equal(t, "secret", cfg.InferenceToken)
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already normalized", "http://localhost:11434/v1", "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.GeneratorHost)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"zero dimension", func(c *Config) { c.EmbeddingDim = 0 }},
		{"missing inference endpoint", func(c *Config) { c.InferenceEndpoint = "" }},
		{"missing fallback service", func(c *Config) { c.FallbackServiceURL = "" }},
		{"missing generator host", func(c *Config) { c.GeneratorHost = "" }},
		{"missing generator model", func(c *Config) { c.GeneratorModel = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
