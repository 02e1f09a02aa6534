// Package gemini streams live turn events from the Google Gemini
// API. It wraps the google.golang.org/genai SDK with thought
// summaries enabled, converting thought text and function calls into
// fold events.
package gemini

const defaultModel = "gemini-3.1-pro-preview"
