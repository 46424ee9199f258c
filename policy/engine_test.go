package policy

import (
	"context"
	"strings"
	"testing"
)

func TestDefaultPolicyAllows(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	decision, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"prompt_length": len([]rune("Екілік жүйе деген не?")),
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != DecisionAllow {
		t.Fatalf("expected allow, got %q", decision)
	}
}

func TestDefaultPolicyBlocksOversized(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	decision, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"prompt_length": len(strings.Repeat("a", 4001)),
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != DecisionBlock {
		t.Fatalf("expected block, got %q", decision)
	}
}

func TestNewEngineInvalidPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "this is not rego")
	if err == nil {
		t.Fatalf("expected error for invalid policy")
	}
}
