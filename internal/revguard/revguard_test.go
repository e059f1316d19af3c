package revguard

import (
	"context"
	"testing"
)

func TestCheckRequiresIfRevisionWhenPolicyOn(t *testing.T) {
	ctx := context.Background()
	detail := Check(ctx, Policy{RequireRevision: true}, nil, "rev_a")
	if detail == nil || detail.Code != "invalid_state" {
		t.Fatalf("expected invalid_state for a missing ifRevision, got %v", detail)
	}
}

func TestCheckPassesWhenRevisionMatches(t *testing.T) {
	ctx := context.Background()
	rev := "rev_a"
	if detail := Check(ctx, Policy{RequireRevision: true}, &rev, "rev_a"); detail != nil {
		t.Fatalf("unexpected error: %v", detail)
	}
}

func TestCheckRejectsMismatchedRevision(t *testing.T) {
	ctx := context.Background()
	stale := "rev_old"
	detail := Check(ctx, Policy{RequireRevision: true}, &stale, "rev_new")
	if detail == nil || detail.Code != "invalid_state_revision_mismatch" {
		t.Fatalf("expected invalid_state_revision_mismatch, got %v", detail)
	}
	if detail.Details["expected"] != "rev_old" || detail.Details["currentRevision"] != "rev_new" {
		t.Fatalf("expected mismatch details populated, got %+v", detail.Details)
	}
}

func TestCheckAlwaysProceedsInsideBypassScope(t *testing.T) {
	ctx := context.Background()
	err := RunWithoutRevisionGuard(ctx, func(inner context.Context) error {
		if detail := Check(inner, Policy{RequireRevision: true}, nil, "rev_a"); detail != nil {
			t.Fatalf("expected bypass scope to always proceed, got %v", detail)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBypassScopeIsReentrant(t *testing.T) {
	ctx := context.Background()
	_ = RunWithoutRevisionGuard(ctx, func(outer context.Context) error {
		if !Bypassed(outer) {
			t.Fatalf("expected outer scope to be bypassed")
		}
		return RunWithoutRevisionGuard(outer, func(inner context.Context) error {
			if !Bypassed(inner) {
				t.Fatalf("expected nested scope to remain bypassed")
			}
			return nil
		})
	})
}

func TestPolicyOffAlwaysProceeds(t *testing.T) {
	ctx := context.Background()
	if detail := Check(ctx, Policy{RequireRevision: false}, nil, "rev_a"); detail != nil {
		t.Fatalf("expected disabled policy to always proceed, got %v", detail)
	}
}
