// Package revguard implements the revision guard gating table (spec.md
// §4.4): every mutating tool call is checked against the project's current
// revision before the tool service runs. Bypass depth travels on the
// request's context.Context rather than a package-level counter, so
// concurrent sessions each carry their own nesting without interfering with
// one another — the teacher's handlers thread a context through the same
// way for cancellation.
package revguard

import (
	"context"

	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

type bypassKey struct{}

func bypassDepth(ctx context.Context) int {
	if v, ok := ctx.Value(bypassKey{}).(int); ok {
		return v
	}
	return 0
}

// Bypassed reports whether ctx is inside a RunWithoutRevisionGuard scope.
func Bypassed(ctx context.Context) bool {
	return bypassDepth(ctx) > 0
}

// RunWithoutRevisionGuard runs fn with the bypass depth incremented by one,
// so Check always proceeds for any call made with the context passed to
// fn — used by composite proxy tools applying several sub-mutations
// under one outer revision assertion (spec.md §9 "proxy tools apply N
// sub-mutations").
func RunWithoutRevisionGuard(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(context.WithValue(ctx, bypassKey{}, bypassDepth(ctx)+1))
}

// Policy controls whether the guard is enforced at all.
type Policy struct {
	RequireRevision bool
}

// Check implements the gating table in spec.md §4.4. ifRevision is nil when
// the tool call omitted the argument.
func Check(ctx context.Context, policy Policy, ifRevision *string, currentRevision string) *toolerr.Detail {
	if Bypassed(ctx) {
		return nil
	}
	if !policy.RequireRevision {
		return nil
	}
	if ifRevision == nil {
		return toolerr.RevisionRequired()
	}
	if *ifRevision != currentRevision {
		return toolerr.RevisionMismatch(*ifRevision, currentRevision)
	}
	return nil
}
