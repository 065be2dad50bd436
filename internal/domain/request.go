package domain

// QueryRequest represents a client request to put a query to the council.
type QueryRequest struct {
	Query  string      `json:"query"`
	Effort EffortLevel `json:"effort,omitempty"`
}

// DeliberationRequest carries everything the orchestrator needs for one
// deliberation. Roster and chairman travel with the request rather than
// living in process-wide state, so concurrent deliberations may use
// different councils.
type DeliberationRequest struct {
	Query    string      `json:"query"`
	Roster   []string    `json:"roster"`
	Chairman string      `json:"chairman"`
	Effort   EffortLevel `json:"effort,omitempty"`
}

// QueryResponse is the API response for a completed deliberation.
type QueryResponse struct {
	ConversationID string        `json:"conversation_id"`
	MessageID      string        `json:"message_id"`
	Deliberation   *Deliberation `json:"deliberation"`
}
