// Package assistant abstracts the hosted generative AI chat gateway behind a
// narrow Completer interface so services can be tested without network access
// and the vendor SDK stays confined to one adapter.
package assistant

import "context"

// Turn is one prior exchange in a conversation, as the client accumulated it.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// Completer produces one completion per call from a system instruction, the
// prior turns, and the current prompt. Implementations return the completion
// text verbatim; they do not stream.
type Completer interface {
	Complete(ctx context.Context, system string, history []Turn, prompt string) (string, error)
}
