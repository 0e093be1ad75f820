// Copyright 2025 Maiven Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// JudgeHost is the base URL for the judge (chat completion) service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	JudgeHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// JudgeModel is the model identifier to use for relevance scoring.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	JudgeModel string

	// JudgeTemperature is the sampling temperature for judge calls.
	// Default: 0, so repeated calls on identical input are expected to be
	// stable. The judge remains an external black box, so stability is an
	// expectation, not a guarantee.
	JudgeTemperature float64

	// JudgeMaxTokens bounds the length of a judge response.
	// Default: 1024
	JudgeMaxTokens int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithJudgeHost sets the judge service host URL.
func WithJudgeHost(host string) ConfigOption {
	return func(c *Config) {
		c.JudgeHost = host
	}
}

// WithHost sets both embedding and judge hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.JudgeHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithJudgeModel sets the judge model identifier.
func WithJudgeModel(model string) ConfigOption {
	return func(c *Config) {
		c.JudgeModel = model
	}
}

// WithJudgeTemperature sets the judge sampling temperature.
func WithJudgeTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.JudgeTemperature = temperature
	}
}

// WithJudgeMaxTokens sets the judge response token limit.
func WithJudgeMaxTokens(maxTokens int) ConfigOption {
	return func(c *Config) {
		c.JudgeMaxTokens = maxTokens
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services. By default, both embedding and judge use the
// same host, and the judge samples at temperature zero.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:    defaultHost,
		JudgeHost:        defaultHost,
		EmbeddingModel:   "embeddinggemma",
		JudgeModel:       "qwen2.5:3b",
		JudgeTemperature: 0,
		JudgeMaxTokens:   1024,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434/v1"),
//	    ai.WithEmbeddingModel("text-embedding-3-small"),
//	    ai.WithJudgeModel("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
	if c.JudgeHost != "" && !strings.HasSuffix(c.JudgeHost, "/v1") {
		c.JudgeHost = strings.TrimSuffix(c.JudgeHost, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.JudgeHost == "" {
		return errors.New("ai config: JudgeHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.JudgeModel == "" {
		return errors.New("ai config: JudgeModel is required")
	}
	if c.JudgeTemperature < 0 || c.JudgeTemperature > 2 {
		return errors.New("ai config: JudgeTemperature must be between 0 and 2")
	}
	if c.JudgeMaxTokens < 1 {
		return errors.New("ai config: JudgeMaxTokens must be positive")
	}
	return nil
}
