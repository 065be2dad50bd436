package council

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xiaot623/council/internal/adapter/llm"
	"github.com/xiaot623/council/internal/domain"
)

// scriptedClient routes each call through a handler function so tests can
// script per-model behavior. Calls are recorded in arrival order.
type scriptedClient struct {
	mu     sync.Mutex
	calls  []scriptedCall
	handle func(model, prompt string) (*llm.QueryResult, error)
}

type scriptedCall struct {
	Model  string
	Prompt string
}

func (c *scriptedClient) Query(ctx context.Context, model string, messages []llm.ChatMessage, effort domain.EffortLevel) (*llm.QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prompt := ""
	if len(messages) > 0 {
		prompt = messages[len(messages)-1].Content
	}
	c.mu.Lock()
	c.calls = append(c.calls, scriptedCall{Model: model, Prompt: prompt})
	c.mu.Unlock()
	result, err := c.handle(model, prompt)
	// A real client surfaces the deadline; scripted handlers just sleep.
	if err == nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return result, err
}

func (c *scriptedClient) ListModels(ctx context.Context) ([]llm.Model, error) {
	return nil, nil
}

func (c *scriptedClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// answerClient answers every model with a distinct canned response.
func answerClient() *scriptedClient {
	return &scriptedClient{
		handle: func(model, prompt string) (*llm.QueryResult, error) {
			return &llm.QueryResult{Content: fmt.Sprintf("answer from %s", model)}, nil
		},
	}
}

// staggered wraps a handler with a per-model delay so completion order
// differs from roster order.
func staggered(delays map[string]time.Duration, handle func(model, prompt string) (*llm.QueryResult, error)) func(string, string) (*llm.QueryResult, error) {
	return func(model, prompt string) (*llm.QueryResult, error) {
		time.Sleep(delays[model])
		return handle(model, prompt)
	}
}
