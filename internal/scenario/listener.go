package scenario

import "context"

// Listener observes scenario attempts. Failure callbacks run before the
// attempt's session is closed, so the session can still be inspected.
type Listener interface {
	OnStart(ctx context.Context, sc *Context)
	OnSuccess(ctx context.Context, sc *Context)
	OnFailure(ctx context.Context, sc *Context, err error)
	OnFinish(ctx context.Context, res *Result)
}

// NopListener implements Listener with no-ops; embed it to override a subset
type NopListener struct{}

func (NopListener) OnStart(context.Context, *Context)          {}
func (NopListener) OnSuccess(context.Context, *Context)        {}
func (NopListener) OnFailure(context.Context, *Context, error) {}
func (NopListener) OnFinish(context.Context, *Result)          {}
