// Package policy gates deliberation requests through an OPA policy.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.council_policy.decision"),
		rego.Module("council_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks a deliberation request against the policy.
// Input should be a map with keys: roster, chairman, effort.
// Returns: decision (allow or block), error
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy is expected to define a default decision.
		return "allow", nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}

	return "allow", nil
}

// DefaultPolicy is the default admission policy: block oversized rosters,
// duplicate members, empty rosters, and a missing chairman.
const DefaultPolicy = `
package council_policy

default decision := "allow"

decision := "block" if {
	count(input.roster) == 0
}

decision := "block" if {
	count(input.roster) > 16
}

decision := "block" if {
	count({m | some m in input.roster}) < count(input.roster)
}

decision := "block" if {
	input.chairman == ""
}
`
