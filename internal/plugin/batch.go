package plugin

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/goatkit/adminshell/internal/apierrors"
)

// BatchResult is the outcome of one id in a batch operation.
type BatchResult struct {
	ID   string `json:"id"`
	Err  error  `json:"-"`
	Code string `json:"code,omitempty"`
}

// OK reports whether the operation succeeded for this id.
func (b BatchResult) OK() bool {
	return b.Err == nil
}

// ActivateMany activates each id through the regular serialized path.
// A failure for one id does not affect the others. Results follow the
// order of ids.
func (r *Registry) ActivateMany(ctx context.Context, ids []string) []BatchResult {
	return r.runBatch(ctx, ids, r.Activate)
}

// DeactivateMany deactivates each id; see ActivateMany.
func (r *Registry) DeactivateMany(ctx context.Context, ids []string) []BatchResult {
	return r.runBatch(ctx, ids, r.Deactivate)
}

func (r *Registry) runBatch(ctx context.Context, ids []string, fn func(context.Context, string) error) []BatchResult {
	results := make([]BatchResult, len(ids))

	var g errgroup.Group
	g.SetLimit(r.batchLimit)
	for i, id := range ids {
		g.Go(func() error {
			err := fn(ctx, id)
			results[i] = BatchResult{ID: id, Err: err, Code: apierrors.CodeFor(err)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Failed returns the failed results of a batch.
func Failed(results []BatchResult) []BatchResult {
	var failed []BatchResult
	for _, res := range results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}
