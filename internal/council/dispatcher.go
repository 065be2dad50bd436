// Package council implements the three-stage deliberation pipeline:
// independent answering, anonymized peer ranking, and chairman synthesis.
package council

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/xiaot623/council/internal/adapter/llm"
	"github.com/xiaot623/council/internal/domain"
)

// ErrAllCallsFailed is reported when every call in a stage failed, leaving
// the next stage with no input.
var ErrAllCallsFailed = errors.New("all model calls failed")

// PromptBuilder builds the prompt sent to one roster member.
type PromptBuilder func(model string) string

// Dispatch fans a prompt out to every roster member concurrently and waits
// for all calls to complete. The result slice always matches roster order:
// each goroutine writes only its own slot, so completion order never matters
// and no locking is needed. A call that errors or times out yields a
// StageResponse with Failed=true; only the case where every call failed is
// surfaced as an error.
func Dispatch(ctx context.Context, client llm.QueryClient, roster []string, build PromptBuilder, effort domain.EffortLevel, timeout time.Duration) ([]domain.StageResponse, error) {
	responses := make([]domain.StageResponse, len(roster))

	var wg sync.WaitGroup
	for i, model := range roster {
		wg.Add(1)
		go func(i int, model string) {
			defer wg.Done()

			callCtx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			messages := []llm.ChatMessage{{Role: "user", Content: build(model)}}
			result, err := client.Query(callCtx, model, messages, effort)
			if err != nil {
				log.Printf("WARN: model %s failed: %v", model, err)
				responses[i] = domain.StageResponse{Model: model, Failed: true}
				return
			}
			responses[i] = domain.StageResponse{
				Model:     model,
				Content:   result.Content,
				Reasoning: result.Reasoning,
			}
		}(i, model)
	}
	wg.Wait()

	failed := 0
	for _, r := range responses {
		if r.Failed {
			failed++
		}
	}
	if len(roster) > 0 && failed == len(roster) {
		return responses, ErrAllCallsFailed
	}

	return responses, nil
}
