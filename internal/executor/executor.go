// Package executor orchestrates workflow runs: subset selection, level-by-
// level concurrent execution, failure propagation, cancellation, and
// callback emission.
package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mediagraph/mediagraph/internal/graph"
	"github.com/mediagraph/mediagraph/internal/handler"
	"github.com/mediagraph/mediagraph/internal/logger"
	"github.com/mediagraph/mediagraph/internal/model"
	"github.com/mediagraph/mediagraph/internal/registry"
	"github.com/mediagraph/mediagraph/internal/resolve"
	"github.com/mediagraph/mediagraph/internal/validate"
	mgerrors "github.com/mediagraph/mediagraph/pkg/errors"
)

// ErrRunCancelled terminates a cancelled run. Cancellation is a property of
// the whole run, never attributed to any single node.
var ErrRunCancelled = errors.New("run cancelled")

// UpstreamFailedMessage is the reason reported for nodes skipped because an
// ancestor in the active subset failed.
const UpstreamFailedMessage = "upstream failed"

// Callbacks receive status, progress, and completion events during a run.
// Any field may be nil. Callbacks are invoked from the goroutines executing
// a level, serialized by the executor.
type Callbacks struct {
	OnNodeStatus   func(nodeID, status, message string)
	OnProgress     func(nodeID string, percent float64, message string)
	OnNodeComplete func(nodeID string, completion model.Completion)
}

// RunOptions select the node subset and wire the caller's callbacks.
// RunOnlyNodeID and ContinueFromNodeID are mutually exclusive; leaving both
// empty runs the full graph. ExistingResults supplies cached primary values
// for the skip-and-reuse set of a continue-from run.
type RunOptions struct {
	RunOnlyNodeID      string
	ContinueFromNodeID string
	ExistingResults    map[string]any
	Callbacks          Callbacks
}

// Summary aggregates the outcome of one run.
type Summary struct {
	Confirmed int
	Failed    int
	Skipped   int
	Reused    int
	TotalCost float64
	Duration  time.Duration
}

// Executor runs workflow graphs against a node type catalog and a handler
// dispatch table. It holds no per-run state; one Executor serves any number
// of sequential or concurrent runs.
type Executor struct {
	types    *registry.Registry
	handlers *handler.Registry
	log      *logger.Logger
}

// New creates an executor.
func New(types *registry.Registry, handlers *handler.Registry, log *logger.Logger) *Executor {
	return &Executor{types: types, handlers: handlers, log: log}
}

// Plan computes the execution plan (ordered levels) for the subset selected
// by opts, without running anything.
func (e *Executor) Plan(wf *model.Workflow, opts RunOptions) (*graph.Plan, error) {
	subset, _, err := selectSubset(wf, opts)
	if err != nil {
		return nil, err
	}
	return graph.Levels(subset, wf.Edges)
}

// Run executes the workflow to completion and returns a summary. Node
// failures do not fail the run as a whole; they propagate as skips to
// descendants while independent branches continue. The returned error is
// non-nil only for definition problems (unknown target, cycle) or
// cancellation.
func (e *Executor) Run(ctx context.Context, wf *model.Workflow, opts RunOptions) (*Summary, error) {
	start := time.Now()

	subset, skipReuse, err := selectSubset(wf, opts)
	if err != nil {
		return nil, err
	}

	plan, err := graph.Levels(subset, wf.Edges)
	if err != nil {
		return nil, err
	}

	ix := graph.NewIndex(wf.NodeIDs(), wf.Edges)
	st := newRunState(opts.Callbacks)

	e.seedReusedResults(wf, skipReuse, opts.ExistingResults, st)

	e.log.WithFields(map[string]any{
		"workflow": wf.Name,
		"nodes":    len(subset),
		"levels":   len(plan.Levels),
		"reused":   st.reused,
	}).Info("run started")

	for _, level := range plan.Levels {
		if ctx.Err() != nil {
			e.log.Warn("run cancelled at level boundary")
			return st.summary(time.Since(start)), ErrRunCancelled
		}

		var wg sync.WaitGroup
		for _, nodeID := range level {
			if _, reused := skipReuse[nodeID]; reused {
				continue
			}

			if blockedDep, blocked := st.blockedDependency(ix.Dependencies(nodeID), subset); blocked {
				st.markSkipped(ctx, nodeID)
				e.log.WithNode(nodeID).Debug("skipped, upstream " + blockedDep + " failed")
				continue
			}

			node, ok := wf.Node(nodeID)
			if !ok {
				st.markFailed(ctx, nodeID, fmt.Sprintf("node %s not found in workflow", nodeID))
				continue
			}

			wg.Add(1)
			go func(node model.Node) {
				defer wg.Done()
				e.runNode(ctx, wf, node, subset, st)
			}(node)
		}
		wg.Wait()
	}

	summary := st.summary(time.Since(start))
	e.log.WithFields(map[string]any{
		"confirmed": summary.Confirmed,
		"failed":    summary.Failed,
		"skipped":   summary.Skipped,
	}).Info("run finished")
	return summary, nil
}

// runNode resolves, validates, and dispatches a single node. Each node
// writes only its own results entry, so concurrent siblings never contend
// beyond the state lock.
func (e *Executor) runNode(ctx context.Context, wf *model.Workflow, node model.Node, subset map[string]struct{}, st *runState) {
	st.emitStatus(ctx, node.ID, model.StatusRunning, "")

	incoming := wf.Incoming(node.ID, subset)
	resolved := resolve.Inputs(node, incoming, st.result)

	entry, known := e.types.Get(node.Type)
	if missing := validate.MissingFields(entry, known, node, resolved); len(missing) > 0 {
		st.markFailed(ctx, node.ID, "missing required fields: "+strings.Join(missing, ", "))
		return
	}

	progress := func(percent float64, message string) {
		st.emitProgress(ctx, node.ID, percent, message)
	}

	started := time.Now()
	result, err := e.handlers.Execute(ctx, node.Type, resolved.Params, resolved.Inputs, progress)
	if err != nil {
		st.markFailed(ctx, node.ID, err.Error())
		e.log.WithNode(node.ID).Error(err, "handler failed")
		return
	}

	st.markConfirmed(ctx, node.ID, result, model.Completion{
		Values:   result.Outputs,
		Cost:     entry.Cost,
		Duration: time.Since(started),
	})
}

// seedReusedResults injects cached outputs for the skip-and-reuse set so
// downstream edges resolve without re-executing pure ancestors. The cached
// value comes from the caller's ExistingResults map, falling back to a value
// embedded in the node's own params under the primary output key. Nodes with
// no recoverable value stay unseeded; their dependents surface the gap as a
// missing-field validation error.
func (e *Executor) seedReusedResults(wf *model.Workflow, skipReuse map[string]struct{}, existing map[string]any, st *runState) {
	for nodeID := range skipReuse {
		if value, ok := existing[nodeID]; ok && !validate.Empty(value) {
			st.seed(nodeID, model.NewResult(value, nil))
			continue
		}
		node, ok := wf.Node(nodeID)
		if !ok {
			continue
		}
		if value, ok := node.Params[model.PrimaryOutput]; ok && !validate.Empty(value) {
			st.seed(nodeID, model.NewResult(value, nil))
		}
	}
}

// selectSubset builds the active node subset for the run mode and, for
// continue-from, the skip-and-reuse set (pure ancestors of the target).
func selectSubset(wf *model.Workflow, opts RunOptions) (subset, skipReuse map[string]struct{}, err error) {
	if opts.RunOnlyNodeID != "" && opts.ContinueFromNodeID != "" {
		return nil, nil, mgerrors.NewValidationError("run", "run-only and continue-from are mutually exclusive", nil)
	}

	ix := graph.NewIndex(wf.NodeIDs(), wf.Edges)

	switch {
	case opts.RunOnlyNodeID != "":
		target := opts.RunOnlyNodeID
		if _, ok := wf.Node(target); !ok {
			return nil, nil, mgerrors.NewValidationError("run", fmt.Sprintf("run-only target %q not found", target), nil)
		}
		return ix.Ancestors(target), nil, nil

	case opts.ContinueFromNodeID != "":
		target := opts.ContinueFromNodeID
		if _, ok := wf.Node(target); !ok {
			return nil, nil, mgerrors.NewValidationError("run", fmt.Sprintf("continue-from target %q not found", target), nil)
		}
		ancestors := ix.Ancestors(target)
		descendants := ix.Descendants(target)

		subset = make(map[string]struct{}, len(ancestors)+len(descendants))
		for id := range ancestors {
			subset[id] = struct{}{}
		}
		for id := range descendants {
			subset[id] = struct{}{}
		}

		skipReuse = make(map[string]struct{}, len(ancestors))
		for id := range ancestors {
			if _, isDescendant := descendants[id]; !isDescendant {
				skipReuse[id] = struct{}{}
			}
		}
		return subset, skipReuse, nil

	default:
		subset = make(map[string]struct{}, len(wf.Nodes))
		for _, n := range wf.Nodes {
			subset[n.ID] = struct{}{}
		}
		return subset, nil, nil
	}
}
