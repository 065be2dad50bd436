package council

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/xiaot623/council/internal/adapter/llm"
	"github.com/xiaot623/council/internal/domain"
)

func deliberationRequest(roster ...string) domain.DeliberationRequest {
	return domain.DeliberationRequest{
		Query:    "What is the best way to learn Go?",
		Roster:   roster,
		Chairman: "gemini/gemini-1.5-pro",
		Effort:   domain.EffortNone,
	}
}

// councilClient runs a full scripted deliberation: distinct stage-1 answers,
// a fixed ranking from every evaluator, and a chairman synthesis.
func councilClient(ranking string) *scriptedClient {
	return &scriptedClient{
		handle: func(model, prompt string) (*llm.QueryResult, error) {
			switch {
			case strings.Contains(prompt, "FINAL RANKING"):
				return &llm.QueryResult{Content: ranking}, nil
			case strings.Contains(prompt, "chairman"):
				return &llm.QueryResult{Content: "synthesized answer"}, nil
			default:
				return &llm.QueryResult{Content: fmt.Sprintf("answer from %s", model)}, nil
			}
		},
	}
}

func TestRunFullDeliberation(t *testing.T) {
	client := councilClient("FINAL RANKING:\n1. Response B\n2. Response A\n3. Response C")
	orch := New(client, 0)

	d, err := orch.Run(context.Background(), deliberationRequest("gpt", "claude", "gemini"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(d.Stage1) != 3 {
		t.Fatalf("expected 3 stage-1 responses, got %d", len(d.Stage1))
	}
	if d.LabelMap.Len() != 3 {
		t.Fatalf("expected 3 labels, got %d", d.LabelMap.Len())
	}
	if len(d.Rankings) != 3 {
		t.Fatalf("expected a ranking per evaluator, got %d", len(d.Rankings))
	}
	for _, r := range d.Rankings {
		if !r.WellFormed {
			t.Fatalf("evaluator %s not well-formed", r.EvaluatorModel)
		}
	}
	if len(d.Aggregate) != 3 {
		t.Fatalf("expected 3 aggregate entries, got %d", len(d.Aggregate))
	}
	// Every evaluator put B first.
	if d.Aggregate[0].Label != "B" || d.Aggregate[0].AveragePosition != 1.0 {
		t.Fatalf("expected B to lead: %+v", d.Aggregate[0])
	}
	if d.Stage3 != "synthesized answer" {
		t.Fatalf("unexpected synthesis: %q", d.Stage3)
	}
	// 3 stage-1 + 3 stage-2 + 1 chairman.
	if client.callCount() != 7 {
		t.Fatalf("expected 7 calls, got %d", client.callCount())
	}
}

func TestRunProceedsWithPartialStage1(t *testing.T) {
	client := councilClient("FINAL RANKING:\n1. Response A\n2. Response B")
	base := client.handle
	client.handle = func(model, prompt string) (*llm.QueryResult, error) {
		if model == "claude" && !strings.Contains(prompt, "FINAL RANKING") && !strings.Contains(prompt, "chairman") {
			return nil, errors.New("overloaded")
		}
		return base(model, prompt)
	}
	orch := New(client, 0)

	d, err := orch.Run(context.Background(), deliberationRequest("gpt", "claude", "gemini"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(d.Stage1) != 3 {
		t.Fatalf("failed response must keep its slot, got %d", len(d.Stage1))
	}
	if !d.Stage1[1].Failed {
		t.Fatalf("expected claude's stage-1 slot to be failed")
	}
	// Only 2 models answered, so only 2 labels exist.
	if d.LabelMap.Len() != 2 {
		t.Fatalf("expected 2 labels, got %d", d.LabelMap.Len())
	}
	if model, _ := d.LabelMap.Model("B"); model != "gemini" {
		t.Fatalf("label B should map to gemini, got %s", model)
	}
}

func TestRunAbortsWhenAllStage1Fail(t *testing.T) {
	client := &scriptedClient{
		handle: func(model, prompt string) (*llm.QueryResult, error) {
			return nil, errors.New("down")
		},
	}
	orch := New(client, 0)

	d, err := orch.Run(context.Background(), deliberationRequest("gpt", "claude", "gemini"))

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if stageErr.Stage != domain.StageAnswers {
		t.Fatalf("expected failure at %s, got %s", domain.StageAnswers, stageErr.Stage)
	}
	if d == nil || len(d.Stage1) != 3 {
		t.Fatalf("partial deliberation should carry the failed stage-1 placeholders")
	}
	// No stage-2 or chairman calls may be issued after a stage-1 abort.
	if client.callCount() != 3 {
		t.Fatalf("expected exactly 3 calls, got %d", client.callCount())
	}
}

func TestRunChairmanFailureIsFatalButPartial(t *testing.T) {
	client := councilClient("FINAL RANKING:\n1. Response A\n2. Response B\n3. Response C")
	base := client.handle
	client.handle = func(model, prompt string) (*llm.QueryResult, error) {
		if strings.Contains(prompt, "chairman") {
			return nil, errors.New("chairman down")
		}
		return base(model, prompt)
	}
	orch := New(client, 0)

	_, err := orch.Run(context.Background(), deliberationRequest("gpt", "claude", "gemini"))

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if stageErr.Stage != domain.StageSynthesis {
		t.Fatalf("expected failure at %s, got %s", domain.StageSynthesis, stageErr.Stage)
	}
	d := stageErr.Deliberation
	if d == nil || len(d.Stage1) != 3 || len(d.Rankings) != 3 || len(d.Aggregate) != 3 {
		t.Fatalf("chairman failure should preserve earlier stages: %+v", d)
	}
	if d.Stage3 != "" {
		t.Fatalf("no synthesis should be recorded on chairman failure")
	}
}

func TestRunToleratesUnparseableRankings(t *testing.T) {
	client := councilClient("I liked them all equally and refuse to rank.")
	orch := New(client, 0)

	d, err := orch.Run(context.Background(), deliberationRequest("gpt", "claude"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, r := range d.Rankings {
		if r.WellFormed || len(r.OrderedLabels) != 0 {
			t.Fatalf("expected empty fallback ranking, got %+v", r)
		}
	}
	// Aggregate degrades to all-unranked but stage 3 still runs.
	for _, e := range d.Aggregate {
		if e.Ranked() {
			t.Fatalf("no entry should be ranked: %+v", e)
		}
	}
	if d.Stage3 != "synthesized answer" {
		t.Fatalf("stage 3 should still run, got %q", d.Stage3)
	}
}
