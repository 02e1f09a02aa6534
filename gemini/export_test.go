package gemini

import (
	"iter"

	"google.golang.org/genai"

	"github.com/fwojciec/fold"
)

// ConvertStream exposes convertStream for tests.
func ConvertStream(it iter.Seq2[*genai.GenerateContentResponse, error], onEvent func(fold.Event)) error {
	return convertStream(it, onEvent)
}
