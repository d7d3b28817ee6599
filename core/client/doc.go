// Package client sits between the analyzer and a raw LLM provider. It fixes
// the model, system prompt and response format for every request, threads
// each call through a middleware chain (see the middleware subpackage), and
// keeps no conversation state.
//
// The primary entry point is [New], which accepts an [ai.Provider] and a set
// of functional options such as [WithModel], [WithSystemPrompt] and
// [WithMiddleware].
package client
