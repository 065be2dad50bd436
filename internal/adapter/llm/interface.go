// Package llm provides the client used to query council models through an
// OpenAI-compatible gateway.
package llm

import (
	"context"

	"github.com/xiaot623/council/internal/domain"
)

// QueryResult is the successful outcome of one model call.
type QueryResult struct {
	Content   string
	Reasoning string
}

// QueryClient defines the model query operations the council needs. Kept
// narrow so deliberation tests can substitute a scripted implementation.
type QueryClient interface {
	// Query sends a chat completion request to a single model and returns
	// its answer plus any reasoning trace the provider exposed.
	Query(ctx context.Context, model string, messages []ChatMessage, effort domain.EffortLevel) (*QueryResult, error)

	// ListModels retrieves the list of models available behind the gateway.
	ListModels(ctx context.Context) ([]Model, error)
}

// Ensure Client implements QueryClient interface.
var _ QueryClient = (*Client)(nil)
