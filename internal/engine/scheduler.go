package engine

import (
	"context"

	"github.com/vk/flowgrid/internal/plan"
)

// Scheduler decides how a plan's node contexts are walked. The runner only
// ever uses the sequential implementation today; the abstraction exists so a
// concurrent scheduler can dispatch independent branches later without
// touching the data model.
type Scheduler interface {
	Schedule(ctx context.Context, contexts []plan.Context, run func(context.Context, plan.Context))
}

// sequential walks the contexts one at a time, strictly in plan order.
type sequential struct{}

func (sequential) Schedule(ctx context.Context, contexts []plan.Context, run func(context.Context, plan.Context)) {
	for _, c := range contexts {
		run(ctx, c)
	}
}
