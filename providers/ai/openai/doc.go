// Package openai implements the [ai.Provider] interface for OpenAI-compatible
// /v1/chat/completions APIs (OpenAI, Azure, Ollama, OpenRouter).
//
// The main entry point is [New], which reads OPENAI_API_KEY and
// OPENAI_API_BASE_URL from the environment. Use [OpenAIProvider.WithAPIKey]
// and [OpenAIProvider.WithBaseURL] to override these values programmatically.
package openai
