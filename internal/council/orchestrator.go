package council

import (
	"context"
	"fmt"
	"time"

	"github.com/xiaot623/council/internal/adapter/llm"
	"github.com/xiaot623/council/internal/domain"
)

// StageError is a stage-fatal deliberation error. It carries whatever
// partial deliberation was assembled before the stage failed, so callers can
// still inspect the earlier stages.
type StageError struct {
	Stage        domain.Stage
	Err          error
	Deliberation *domain.Deliberation
}

func (e *StageError) Error() string {
	return fmt.Sprintf("deliberation failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Orchestrator runs deliberations. It holds no per-deliberation state, so a
// single Orchestrator serves concurrent deliberations with different rosters.
type Orchestrator struct {
	client      llm.QueryClient
	callTimeout time.Duration
}

// New creates an Orchestrator. callTimeout bounds each individual model
// call; zero means no per-call timeout beyond the parent context.
func New(client llm.QueryClient, callTimeout time.Duration) *Orchestrator {
	return &Orchestrator{client: client, callTimeout: callTimeout}
}

// Run executes the three deliberation stages in order. Stage boundaries are
// hard barriers: no stage-2 call is issued before every stage-1 call has
// completed, and likewise for stage 3. Only two conditions are fatal: every
// stage-1 call failing, and the chairman call failing. Both surface as a
// *StageError with the partial deliberation attached; everything else
// degrades to smaller label maps or fewer rankings.
func (o *Orchestrator) Run(ctx context.Context, req domain.DeliberationRequest) (*domain.Deliberation, error) {
	d := &domain.Deliberation{
		Query:    req.Query,
		Chairman: req.Chairman,
	}

	// Stage 1: every council member answers independently.
	stage1, err := Dispatch(ctx, o.client, req.Roster, func(string) string {
		return stage1Prompt(req.Query)
	}, req.Effort, o.callTimeout)
	d.Stage1 = stage1
	if err != nil {
		return d, &StageError{Stage: domain.StageAnswers, Err: err, Deliberation: d}
	}

	d.LabelMap = Anonymize(stage1)
	d.Labels = d.LabelMap.ToMap()

	// Stage 2: every member ranks the anonymized answers. Stage-2 failures
	// are never fatal; an evaluator that fails or produces unparseable text
	// simply contributes no ranking.
	evalPrompt := stage2Prompt(req.Query, stage1, d.LabelMap)
	stage2, _ := Dispatch(ctx, o.client, req.Roster, func(string) string {
		return evalPrompt
	}, req.Effort, o.callTimeout)

	for _, r := range stage2 {
		if r.Failed {
			continue
		}
		ranking := ParseRanking(r.Content, d.LabelMap)
		ranking.EvaluatorModel = r.Model
		d.Rankings = append(d.Rankings, ranking)
	}

	d.Aggregate = Aggregate(d.Rankings, d.LabelMap)

	// Stage 3: one call to the chairman with identities restored.
	synthesis, err := o.queryChairman(ctx, req, d)
	if err != nil {
		return d, &StageError{Stage: domain.StageSynthesis, Err: err, Deliberation: d}
	}
	d.Stage3 = synthesis

	return d, nil
}

func (o *Orchestrator) queryChairman(ctx context.Context, req domain.DeliberationRequest, d *domain.Deliberation) (string, error) {
	if o.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.callTimeout)
		defer cancel()
	}

	messages := []llm.ChatMessage{{Role: "user", Content: stage3Prompt(d)}}
	result, err := o.client.Query(ctx, req.Chairman, messages, req.Effort)
	if err != nil {
		return "", fmt.Errorf("chairman %s: %w", req.Chairman, err)
	}
	return result.Content, nil
}
