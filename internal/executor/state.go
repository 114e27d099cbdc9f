package executor

import (
	"context"
	"sync"
	"time"

	"github.com/mediagraph/mediagraph/internal/model"
)

// runState is the mutable state of one run: the append-only results arena
// and the failed-or-skipped set. Each node writes its own results entry
// exactly once; the lock serializes map access and callback emission. The
// state is created at run start and discarded at run end.
type runState struct {
	mu        sync.Mutex
	callbacks Callbacks

	results map[string]model.Result
	blocked map[string]struct{}

	confirmed int
	failed    int
	skipped   int
	reused    int
	totalCost float64
}

func newRunState(callbacks Callbacks) *runState {
	return &runState{
		callbacks: callbacks,
		results:   make(map[string]model.Result),
		blocked:   make(map[string]struct{}),
	}
}

// result looks up a node's result; used as the resolver's lookup function.
func (st *runState) result(nodeID string) (model.Result, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	res, ok := st.results[nodeID]
	return res, ok
}

// seed injects a reused result without emitting any status transition.
func (st *runState) seed(nodeID string, res model.Result) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.results[nodeID] = res
	st.reused++
}

// blockedDependency reports the first direct dependency within the subset
// that failed or was skipped. Called between levels only, but takes the lock
// for consistency with concurrent readers.
func (st *runState) blockedDependency(deps []string, subset map[string]struct{}) (string, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, dep := range deps {
		if _, inSubset := subset[dep]; !inSubset {
			continue
		}
		if _, blocked := st.blocked[dep]; blocked {
			return dep, true
		}
	}
	return "", false
}

func (st *runState) markConfirmed(ctx context.Context, nodeID string, res model.Result, completion model.Completion) {
	st.mu.Lock()
	st.results[nodeID] = res
	st.confirmed++
	st.totalCost += completion.Cost
	st.mu.Unlock()

	st.emitStatus(ctx, nodeID, model.StatusConfirmed, "")
	st.emitComplete(ctx, nodeID, completion)
}

func (st *runState) markFailed(ctx context.Context, nodeID, message string) {
	st.mu.Lock()
	st.blocked[nodeID] = struct{}{}
	st.failed++
	st.mu.Unlock()

	st.emitStatus(ctx, nodeID, model.StatusError, message)
}

func (st *runState) markSkipped(ctx context.Context, nodeID string) {
	st.mu.Lock()
	st.blocked[nodeID] = struct{}{}
	st.skipped++
	st.mu.Unlock()

	st.emitStatus(ctx, nodeID, model.StatusSkipped, UpstreamFailedMessage)
}

// emitStatus forwards a status transition unless the run has been cancelled;
// cancellation discards further callbacks.
func (st *runState) emitStatus(ctx context.Context, nodeID, status, message string) {
	if ctx.Err() != nil || st.callbacks.OnNodeStatus == nil {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.callbacks.OnNodeStatus(nodeID, status, message)
}

func (st *runState) emitProgress(ctx context.Context, nodeID string, percent float64, message string) {
	if ctx.Err() != nil || st.callbacks.OnProgress == nil {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.callbacks.OnProgress(nodeID, percent, message)
}

func (st *runState) emitComplete(ctx context.Context, nodeID string, completion model.Completion) {
	if ctx.Err() != nil || st.callbacks.OnNodeComplete == nil {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.callbacks.OnNodeComplete(nodeID, completion)
}

func (st *runState) summary(duration time.Duration) *Summary {
	st.mu.Lock()
	defer st.mu.Unlock()

	return &Summary{
		Confirmed: st.confirmed,
		Failed:    st.failed,
		Skipped:   st.skipped,
		Reused:    st.reused,
		TotalCost: st.totalCost,
		Duration:  duration,
	}
}
