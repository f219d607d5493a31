// Package openai implements the ai capability interfaces against any
// OpenAI-compatible API (Ollama, LocalAI, vLLM, OpenAI itself) using
// langchaingo clients. Refinement runs in JSON mode at temperature 0
// with response repair for the malformed output small local models
// occasionally produce.
package openai
