package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mediagraph/mediagraph/internal/model"
	mgerrors "github.com/mediagraph/mediagraph/pkg/errors"
)

// Plan is an ordered list of execution levels. Every node in a level has all
// of its dependencies in earlier levels, so the nodes of one level are
// mutually independent and can execute concurrently.
type Plan struct {
	Levels [][]string
}

// Levels groups the given node subset into topological levels using Kahn's
// algorithm over the edges restricted to the subset. Every node lands in
// exactly one level. A cyclic subset fails fast with a CycleError rather
// than looping or silently dropping nodes.
func Levels(subset map[string]struct{}, edges []model.Edge) (*Plan, error) {
	indegree := make(map[string]int, len(subset))
	forward := make(map[string][]string, len(subset))
	for id := range subset {
		indegree[id] = 0
	}

	seen := make(map[[2]string]struct{}, len(edges))
	for _, e := range edges {
		if _, ok := subset[e.Source]; !ok {
			continue
		}
		if _, ok := subset[e.Target]; !ok {
			continue
		}
		pair := [2]string{e.Source, e.Target}
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		forward[e.Source] = append(forward[e.Source], e.Target)
		indegree[e.Target]++
	}

	var queue []string
	for id, degree := range indegree {
		if degree == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	processed := 0
	var levels [][]string

	for len(queue) > 0 {
		currentLevel := queue
		levels = append(levels, append([]string(nil), currentLevel...))

		var nextLevel []string
		for _, id := range currentLevel {
			processed++
			for _, dependent := range forward[id] {
				indegree[dependent]--
				if indegree[dependent] == 0 {
					nextLevel = append(nextLevel, dependent)
				}
			}
		}

		sort.Strings(nextLevel)
		queue = nextLevel
	}

	if processed != len(subset) {
		var remaining []string
		for id, degree := range indegree {
			if degree > 0 {
				remaining = append(remaining, id)
			}
		}
		sort.Strings(remaining)
		return nil, mgerrors.NewCycleError(remaining)
	}

	return &Plan{Levels: levels}, nil
}

// LevelOf returns the level index containing id, or -1.
func (p *Plan) LevelOf(id string) int {
	for i, level := range p.Levels {
		for _, candidate := range level {
			if candidate == id {
				return i
			}
		}
	}
	return -1
}

// String renders a human readable summary of the plan.
func (p *Plan) String() string {
	if p == nil {
		return ""
	}

	var b strings.Builder
	for i, level := range p.Levels {
		fmt.Fprintf(&b, "Level %d (%d nodes): %s\n", i, len(level), strings.Join(level, ", "))
	}
	return b.String()
}
