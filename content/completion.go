package content

import (
	"context"
	"fmt"
)

// CompletionOptions are passed through to the completion provider.
type CompletionOptions struct {
	Model       string  `json:"model,omitempty" yaml:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty" yaml:"maxTokens,omitempty"`
}

// CompletionResult is the provider's answer. Output is set on success, Error otherwise.
type CompletionResult struct {
	Success bool   `json:"success"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Completer generates text from a prompt and a system prompt file. Implementations
// live outside this package.
type Completer interface {
	Complete(ctx context.Context, prompt, systemPromptFile string, opts CompletionOptions) (CompletionResult, error)
}

// ComposeFromCompletion asks the completer for Markdown and normalizes the answer
// to canonical Delta JSON.
func (n *Normalizer) ComposeFromCompletion(ctx context.Context, c Completer, prompt, systemPromptFile string, opts CompletionOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result, err := c.Complete(ctx, prompt, systemPromptFile, opts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}
	if !result.Success {
		reason := result.Error
		if reason == "" {
			reason = "provider reported failure without details"
		}
		return "", fmt.Errorf("%w: %s", ErrCompletionFailed, reason)
	}

	return n.Normalize(Submission{Format: FormatMarkdown, Content: result.Output})
}
