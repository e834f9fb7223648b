// Package llm provides the text-completion capability used for both
// translation and SQL generation. One prompt in, one plain-text completion
// out; no streaming and no structured output mode.
package llm

import "context"

// Client is the text generation capability. A transport or model error is
// returned as a non-nil error so callers can tell an errored call apart from
// a model that produced empty text; callers that fail closed map either case
// to an empty completion themselves.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
