package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xiaot623/council/internal/domain"
)

// MockClient is a mock implementation of QueryClient for testing and for
// running the service without a gateway.
type MockClient struct{}

// NewMockClient creates a new mock query client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements QueryClient interface.
var _ QueryClient = (*MockClient)(nil)

var mockLabelPattern = regexp.MustCompile(`Response ([A-Z]+)`)

// Query returns a deterministic mock response. Evaluation prompts get a
// ranking block over the labels found in the prompt so the full pipeline
// works offline; everything else gets a canned answer.
func (m *MockClient) Query(ctx context.Context, model string, messages []ChatMessage, effort domain.EffortLevel) (*QueryResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var lastUserMessage string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			lastUserMessage = messages[i].Content
			break
		}
	}

	if strings.Contains(lastUserMessage, "FINAL RANKING") {
		return &QueryResult{Content: m.mockRanking(lastUserMessage)}, nil
	}

	return &QueryResult{
		Content: fmt.Sprintf("[MOCK %s] This is a mock answer to: %q", model, truncate(lastUserMessage, 100)),
	}, nil
}

// mockRanking ranks the labels in their order of appearance in the prompt.
func (m *MockClient) mockRanking(prompt string) string {
	seen := make(map[string]bool)
	var labels []string
	for _, match := range mockLabelPattern.FindAllStringSubmatch(prompt, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			labels = append(labels, match[1])
		}
	}

	var b strings.Builder
	b.WriteString("The responses are all reasonable.\n\nFINAL RANKING:\n")
	for i, label := range labels {
		fmt.Fprintf(&b, "%d. Response %s\n", i+1, label)
	}
	return b.String()
}

// ListModels returns a list of mock models.
func (m *MockClient) ListModels(ctx context.Context) ([]Model, error) {
	return []Model{
		{
			ID:      "mock/gpt-4o",
			Object:  "model",
			Created: time.Now().Unix(),
			OwnedBy: "mock",
		},
		{
			ID:      "mock/claude-3-5-sonnet",
			Object:  "model",
			Created: time.Now().Unix(),
			OwnedBy: "mock",
		},
	}, nil
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
