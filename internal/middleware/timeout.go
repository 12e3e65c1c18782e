package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
)

// TimeoutInterceptor bounds every RPC handler with a deadline of d.
// A zero or negative d disables the bound.
func TimeoutInterceptor(d time.Duration) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		if d <= 0 {
			return next
		}
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, req)
		}
	}
}
