// Package domain defines the core domain models for the council.
package domain

// EffortLevel controls how much internal reasoning a queried model performs.
type EffortLevel string

const (
	EffortNone   EffortLevel = "none"
	EffortLow    EffortLevel = "low"
	EffortMedium EffortLevel = "medium"
	EffortHigh   EffortLevel = "high"
)

// Valid reports whether the effort level is one of the known values.
func (e EffortLevel) Valid() bool {
	switch e {
	case EffortNone, EffortLow, EffortMedium, EffortHigh:
		return true
	}
	return false
}

// Stage identifies one of the three deliberation stages.
type Stage string

const (
	StageAnswers   Stage = "STAGE1"
	StageRankings  Stage = "STAGE2"
	StageSynthesis Stage = "STAGE3"
)

// MessageRole represents the role of a conversation message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)
