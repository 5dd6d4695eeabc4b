// Package requestctx carries the per-request correlation ID through
// context so logs, audit rows, and responses can share it.
package requestctx

import "context"

type ctxKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func GetRequestID(ctx context.Context) string {
	value, _ := ctx.Value(ctxKey{}).(string)
	return value
}
