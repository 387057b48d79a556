package objective

import (
	"cmp"
	"context"
	"iter"
	"slices"

	"github.com/OCAP2/planner/pkg/core"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type scored[T any] struct {
	item  T
	score core.Distance
}

// rankByRange orders targets by their distance to the nearest friendly
// control point, closest first.
func rankByRange[T core.MissionTarget](f *Finder, operation string, targets iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		friendly := slices.Collect(f.FriendlyControlPoints())
		var buf []scored[T]
		for t := range targets {
			buf = append(buf, scored[T]{item: t, score: closestDistance(t, friendly)})
		}
		for _, s := range sortScored(f, operation, buf) {
			if !yield(s.item) {
				return
			}
		}
	}
}

// closestDistance is +Inf when there are no control points to measure
// against, so such targets keep their input order.
func closestDistance(target core.MissionTarget, controlPoints []*core.ControlPoint) core.Distance {
	best := core.InfiniteDistance()
	for _, cp := range controlPoints {
		best = min(best, core.DistanceBetween(target, cp))
	}
	return best
}

// sortScored stable sorts ascending and records the ranking metrics.
func sortScored[T any](f *Finder, operation string, buf []scored[T]) []scored[T] {
	slices.SortStableFunc(buf, func(a, b scored[T]) int {
		return cmp.Compare(a.score, b.score)
	})

	attrs := metric.WithAttributes(attribute.String("operation", operation))
	f.rankings.Add(context.Background(), 1, attrs)
	f.candidates.Add(context.Background(), int64(len(buf)), attrs)
	f.logger.Debug("ranked candidates", "operation", operation, "side", f.side, "count", len(buf))
	return buf
}
