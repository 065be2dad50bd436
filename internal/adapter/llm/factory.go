package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvCouncilMode is the environment variable name for mode selection.
	EnvCouncilMode = "COUNCIL_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewQueryClient creates a query client based on the COUNCIL_MODE environment
// variable. If COUNCIL_MODE=MOCK, returns a MockClient; otherwise returns a
// real gateway Client.
func NewQueryClient(baseURL, apiKey string, timeout time.Duration) QueryClient {
	mode := os.Getenv(EnvCouncilMode)

	if mode == ModeMock {
		log.Println("COUNCIL_MODE=MOCK detected, using mock query client")
		return NewMockClient()
	}

	return NewClient(baseURL, apiKey, timeout)
}
