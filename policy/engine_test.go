package policy

import (
	"context"
	"testing"
)

func testInput(roster []string, chairman string) map[string]interface{} {
	return map[string]interface{}{
		"roster":   roster,
		"chairman": chairman,
		"effort":   "none",
	}
}

func TestDefaultPolicyAllows(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	decision, err := engine.Evaluate(ctx, testInput([]string{"openai/gpt-4o", "anthropic/claude"}, "gemini/gemini-1.5-pro"))
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != "allow" {
		t.Fatalf("expected allow, got %s", decision)
	}
}

func TestDefaultPolicyBlocks(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	cases := map[string]map[string]interface{}{
		"empty roster":      testInput([]string{}, "chair"),
		"duplicate members": testInput([]string{"a", "a"}, "chair"),
		"missing chairman":  testInput([]string{"a", "b"}, ""),
	}
	for name, input := range cases {
		decision, err := engine.Evaluate(ctx, input)
		if err != nil {
			t.Fatalf("%s: Evaluate failed: %v", name, err)
		}
		if decision != "block" {
			t.Errorf("%s: expected block, got %s", name, decision)
		}
	}
}
