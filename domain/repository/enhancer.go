package repository

import "context"

// IChatCompleter is the language-model capability behind content enhancement.
type IChatCompleter interface {
	Complete(ctx context.Context, apiKey, systemPrompt, userPrompt string) (string, error)
}
