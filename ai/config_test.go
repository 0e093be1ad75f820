package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float64(0), cfg.JudgeTemperature)
	assert.Equal(t, 1024, cfg.JudgeMaxTokens)
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://llm.internal:8000"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithJudgeModel("gpt-4o-mini"),
		WithJudgeTemperature(0.2),
		WithJudgeMaxTokens(512),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://llm.internal:8000/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://llm.internal:8000/v1", cfg.JudgeHost)
	assert.Equal(t, "gpt-4o-mini", cfg.JudgeModel)
	assert.Equal(t, 0.2, cfg.JudgeTemperature)
}

func TestNormalizeAddsV1Suffix(t *testing.T) {
	cfg := NewConfig(WithEmbeddingHost("http://localhost:11434/"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)

	// Already normalized hosts are untouched
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Run("missing embedding model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EmbeddingModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative temperature", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.JudgeTemperature = -0.5
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero max tokens", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.JudgeMaxTokens = 0
		assert.Error(t, cfg.Validate())
	})
}
