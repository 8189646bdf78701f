package miniruntime

import (
	"context"

	"github.com/volodymyrd/tokio-tutorial/core"
)

// Spawn submits fut to the runtime active on ctx, returning a handle to
// its eventual result. It panics when ctx carries no active runtime.
func Spawn[T any](ctx context.Context, fut core.Future[T]) *core.JoinHandle[T] {
	return core.Spawn(ctx, fut)
}

// BlockOn drives fut to completion on the calling goroutine and returns
// its result. It must not be called from within a runtime.
func BlockOn[T any](rt *Runtime, ctx context.Context, fut core.Future[T]) T {
	return core.BlockOn(rt, ctx, fut)
}
