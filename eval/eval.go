// Package eval implements incremental evaluation over a dependency graph.
//
// An Evaluator walks the schedule produced by graph.DependencyOrder and
// recomputes only the nodes whose inputs moved since the last pass. Change
// detection is signature based: a node's signature digests its own param
// version plus the identity and output version of every direct upstream, and
// a matching signature means the cached output is reused. Failures do not
// abort the pass; the failed node's dependents are skipped and everything
// off the failure path still cooks.
package eval

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/lathehq/lathe/graph"
)

// ComputeFunc cooks a single node. The evaluator calls it once per cache
// miss; ctx is handed through untouched so computes can honor cancellation
// on their own schedule.
type ComputeFunc func(ctx context.Context, call *Call) error

// Evaluator drives incremental passes over one graph.
type Evaluator struct {
	g    *graph.Graph
	log  *slog.Logger
	sink ProgressSink
}

// New creates an evaluator for the given graph
func New(g *graph.Graph, opts ...Option) *Evaluator {
	e := &Evaluator{
		g:    g,
		log:  NullLogger(),
		sink: nopSink{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate brings target up to date, recomputing stale nodes in dependency
// order and reusing cached outputs everywhere else. The pass never aborts on
// a compute error: the failed node's dependents are skipped with an
// UpstreamError and the rest of the schedule still runs. The report carries
// the full outcome; the returned error is reserved for structural problems
// (missing target, cycles), in which case the report is nil.
//
// st accumulates across calls, that is what makes repeat passes cheap. The
// caller must not share one State between concurrently running passes.
func (e *Evaluator) Evaluate(ctx context.Context, target graph.NodeID, st *State, fn ComputeFunc) (*Report, error) {
	start := time.Now()

	order, err := e.g.DependencyOrder(target)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", target, err)
	}

	report := &Report{
		Target: target,
		Order:  order,
		Nodes:  make([]NodeReport, 0, len(order)),
	}

	failed := mapset.NewThreadUnsafeSet[graph.NodeID]()
	total := len(order)
	attempts := 0

	for _, id := range order {
		n, ok := e.g.Node(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s vanished mid-pass", graph.ErrMissingNode, id)
		}

		// A failed or skipped upstream poisons this node: its inputs
		// are stale, so it neither computes nor touches its cache.
		if bad := failedUpstreams(e.g, id, failed); len(bad) > 0 {
			uerr := &UpstreamError{Node: id, Upstream: bad}
			report.Errors = append(report.Errors, uerr)
			report.Nodes = append(report.Nodes, NodeReport{
				Node:   id,
				Status: StatusSkipped,
				Err:    uerr,
			})
			failed.Add(id)
			e.log.Warn("Skipping node, upstream failed", "node", id, "upstream", bad)
			continue
		}

		// Versions are read mid-pass so upstreams recomputed moments
		// ago contribute their fresh output versions.
		ups := e.upstreamPairs(st, id)
		upstreamSig := upstreamSignatureOf(ups)
		sig := signatureOf(n.ParamVersion(), ups)

		en := st.get(id)
		if en.initialized && en.lastSignature == sig {
			// Keep the classifier inputs in step with the combined
			// signature; they are separate fields and would drift
			// otherwise.
			en.lastParamVersion = n.ParamVersion()
			en.lastUpstreamSignature = upstreamSig
			st.hits++
			report.CacheHits++
			report.Nodes = append(report.Nodes, NodeReport{
				Node:          id,
				Status:        StatusHit,
				Reason:        ReasonNone,
				OutputVersion: en.outputVersion,
			})
			e.log.Debug("Cache hit", "node", id, "version", en.outputVersion)
			continue
		}

		reason := classify(en, n.ParamVersion(), upstreamSig)
		st.misses++
		report.CacheMisses++

		call := &Call{node: id, name: n.Name, params: n.Params(), sink: e.sink}
		e.sink.NodeStarted(id, attempts, total)
		attempts++

		nodeStart := time.Now()
		cerr := fn(ctx, call)
		elapsed := time.Since(nodeStart)
		e.sink.NodeFinished(id, cerr)

		if cerr != nil {
			nerr := &NodeError{Node: id, Err: cerr}
			report.Errors = append(report.Errors, nerr)
			report.Nodes = append(report.Nodes, NodeReport{
				Node:    id,
				Status:  StatusFailed,
				Reason:  reason,
				Elapsed: elapsed,
				Err:     nerr,
			})
			failed.Add(id)
			e.log.Error("node compute failed", "node", id, "reason", reason, "error", cerr)
			continue
		}

		en.lastSignature = sig
		en.lastParamVersion = n.ParamVersion()
		en.lastUpstreamSignature = upstreamSig
		en.initialized = true
		en.outputVersion++

		report.Computed = append(report.Computed, id)
		report.Nodes = append(report.Nodes, NodeReport{
			Node:          id,
			Status:        StatusComputed,
			Reason:        reason,
			OutputVersion: en.outputVersion,
			Elapsed:       elapsed,
		})
		e.log.Debug("Computed node", "node", id, "reason", reason, "version", en.outputVersion, "took", elapsed)
	}

	report.OutputValid = len(report.Errors) == 0
	report.Elapsed = time.Since(start)

	e.log.Info("Evaluated",
		"target", target,
		"nodes", total,
		"computed", len(report.Computed),
		"hits", report.CacheHits,
		"misses", report.CacheMisses,
		"valid", report.OutputValid,
		"took", report.Elapsed)

	return report, nil
}

// upstreamPairs gathers (id, output version) for every direct upstream of
// id, ascending by ID. Nodes that never computed successfully contribute
// version 0.
func (e *Evaluator) upstreamPairs(st *State, id graph.NodeID) []upstreamPair {
	ids := sortedSet(e.g.UpstreamNodes(id))
	if len(ids) == 0 {
		return nil
	}
	ups := make([]upstreamPair, 0, len(ids))
	for _, up := range ids {
		var version uint64
		if en, ok := st.entries[up]; ok && en.initialized {
			version = en.outputVersion
		}
		ups = append(ups, upstreamPair{id: up, version: version})
	}
	return ups
}

// failedUpstreams returns id's direct upstreams that failed or were skipped
// this pass, ascending by ID.
func failedUpstreams(g *graph.Graph, id graph.NodeID, failed mapset.Set[graph.NodeID]) []graph.NodeID {
	bad := g.UpstreamNodes(id).Intersect(failed)
	if bad.Cardinality() == 0 {
		return nil
	}
	return sortedSet(bad)
}

func sortedSet(s mapset.Set[graph.NodeID]) []graph.NodeID {
	ids := s.ToSlice()
	slices.Sort(ids)
	return ids
}
