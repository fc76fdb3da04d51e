package contracts

import "context"

// IGenerationProvider is the single capability the documentation engine
// needs from an AI backend: turn a prompt into text. Implementations may
// fail per call; callers treat each failure as local to the unit of work
// that issued the prompt.
type IGenerationProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
