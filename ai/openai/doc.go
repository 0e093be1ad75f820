// Package openai implements the ai service interfaces against
// OpenAI-compatible HTTP APIs (OpenAI itself, Ollama, LocalAI, vLLM).
//
// The embedder and judge share a Config but may target different hosts and
// models. The judge is invoked at the configured sampling temperature
// (zero by default) so that repeated calls on identical input are expected
// to produce stable scores.
package openai
