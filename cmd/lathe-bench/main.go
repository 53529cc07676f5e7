package main

import (
	"context"
	"flag"
	"time"

	"github.com/lathehq/lathe"
	"github.com/lathehq/lathe/eval"
	"github.com/lathehq/lathe/graph"
	"github.com/lathehq/lathe/ops"
	"github.com/lathehq/lathe/pkg/log"
)

// lathe-bench times cold, warm and single-edit passes over a synthetic
// graph: fan parallel chains of the given depth, all merged into one
// output node.
func main() {
	depth := flag.Int("depth", 50, "nodes per chain")
	fan := flag.Int("fan", 8, "number of parallel chains")
	flag.Parse()

	logger := log.New()

	g := graph.New()
	merge := g.AddNode(ops.Merge(*fan))
	mergeNode, _ := g.Node(merge)

	var firstTail graph.NodeID
	for i := 0; i < *fan; i++ {
		prev := g.AddNode(ops.Grid())
		for j := 1; j < *depth; j++ {
			next := g.AddNode(ops.Transform())
			src, _ := g.Node(prev)
			dst, _ := g.Node(next)
			if _, err := g.AddLink(src.Outputs[0], dst.Inputs[0]); err != nil {
				logger.Fatal().Err(err).Msg("link failed")
			}
			prev = next
		}
		tail, _ := g.Node(prev)
		if _, err := g.AddLink(tail.Outputs[0], mergeNode.Inputs[i]); err != nil {
			logger.Fatal().Err(err).Msg("merge link failed")
		}
		if i == 0 {
			firstTail = prev
		}
	}

	total := g.Len()
	engine := lathe.New(g, lathe.WithLog(lathe.NullLogger()))
	noop := func(context.Context, *eval.Call) error { return nil }
	ctx := context.Background()

	start := time.Now()
	r, err := engine.Evaluate(ctx, merge, noop)
	if err != nil {
		logger.Fatal().Err(err).Msg("cold pass failed")
	}
	logger.Info().
		Int("nodes", total).
		Int("computed", len(r.Computed)).
		Dur("took", time.Since(start)).
		Msg("cold pass")

	start = time.Now()
	r, err = engine.Evaluate(ctx, merge, noop)
	if err != nil {
		logger.Fatal().Err(err).Msg("warm pass failed")
	}
	logger.Info().
		Int("hits", r.CacheHits).
		Dur("took", time.Since(start)).
		Msg("warm pass")

	// Dirty one chain tail; the edit pass recomputes that tail and the
	// merge, everything else hits.
	if err := g.SetParam(firstTail, "uniform_scale", graph.NewFloat(2)); err != nil {
		logger.Fatal().Err(err).Msg("set param failed")
	}

	start = time.Now()
	r, err = engine.Evaluate(ctx, merge, noop)
	if err != nil {
		logger.Fatal().Err(err).Msg("edit pass failed")
	}
	logger.Info().
		Int("computed", len(r.Computed)).
		Int("hits", r.CacheHits).
		Dur("took", time.Since(start)).
		Msg("edit pass")
}
