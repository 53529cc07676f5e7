package lathe

import (
	"context"
	"log/slog"

	"github.com/lathehq/lathe/eval"
	"github.com/lathehq/lathe/graph"
	"golang.org/x/sync/errgroup"
)

// Engine ties one graph to one evaluation cache and drives incremental
// passes over it. It is the host-facing entry point: editors keep a single
// Engine alive for the lifetime of a scene and call Evaluate after every
// edit.
type Engine struct {
	g    *graph.Graph
	st   *eval.State
	ev   *eval.Evaluator
	log  *slog.Logger
	sink eval.ProgressSink

	workers int
}

// New creates an engine for the given graph
func New(g *graph.Graph, opts ...Option) *Engine {
	e := &Engine{
		g:       g,
		st:      eval.NewState(),
		log:     NullLogger(),
		workers: 1,
	}

	for _, opt := range opts {
		opt(e)
	}

	evOpts := []eval.Option{eval.WithLog(e.log)}
	if e.sink != nil {
		evOpts = append(evOpts, eval.WithProgress(e.sink))
	}
	e.ev = eval.New(g, evOpts...)

	return e
}

// Graph returns the graph the engine evaluates.
func (e *Engine) Graph() *graph.Graph { return e.g }

// State returns the engine's evaluation cache.
func (e *Engine) State() *eval.State { return e.st }

// Reset drops the evaluation cache. The next pass recomputes everything.
func (e *Engine) Reset() {
	e.st = eval.NewState()
}

// Evaluate brings target up to date against the engine's cache. See
// eval.Evaluator.Evaluate for the full contract.
func (e *Engine) Evaluate(ctx context.Context, target graph.NodeID, fn eval.ComputeFunc) (*eval.Report, error) {
	return e.ev.Evaluate(ctx, target, e.st, fn)
}

// EvaluateAll cooks several targets concurrently, up to the configured
// worker count at a time. Each pass runs against its own fresh cache, so
// this is a cold batch tool for exports and renders, not a substitute for
// the engine's incremental single-target path. The graph must not be
// mutated while the call runs, and progress events from different passes
// interleave.
//
// The returned slice has one report per target, in target order. The first
// structural error cancels the remaining passes.
func (e *Engine) EvaluateAll(ctx context.Context, targets []graph.NodeID, fn eval.ComputeFunc) ([]*eval.Report, error) {
	reports := make([]*eval.Report, len(targets))

	eg, ctx := errgroup.WithContext(ctx)
	if e.workers > 0 {
		eg.SetLimit(e.workers)
	}

	for i, target := range targets {
		i, target := i, target
		eg.Go(func() error {
			r, err := e.ev.Evaluate(ctx, target, eval.NewState(), fn)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
