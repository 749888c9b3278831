package usage

import (
	"context"
	"testing"
)

func TestRecordAndTotals(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Record(ctx, "user-1", "explain", 120); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := s.Record(ctx, "user-1", "explain", 80); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := s.Record(ctx, "user-1", "simplify", 50); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := s.Record(ctx, "user-2", "implication", 10); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	totals, err := s.UserTotals(ctx, "user-1")
	if err != nil {
		t.Fatalf("UserTotals() error: %v", err)
	}
	if totals["explain"] != 2 || totals["simplify"] != 1 {
		t.Errorf("totals = %v, want explain:2 simplify:1", totals)
	}
	if _, ok := totals["implication"]; ok {
		t.Error("user-1 totals include another user's mode")
	}
}
