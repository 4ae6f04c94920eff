// Package requestctx carries the per-request correlation ID through a
// context.Context so handlers, middleware and logs agree on it.
package requestctx

import "context"

type ctxKey int

const keyRequestID ctxKey = iota

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// GetRequestID returns the request ID stored on the context, or the
// empty string when none was attached.
func GetRequestID(ctx context.Context) string {
	value, _ := ctx.Value(keyRequestID).(string)
	return value
}
