package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/metrics"
)

// MetricsInterceptor counts RPCs by procedure and code and records their
// latency.
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			metrics.RPCDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			metrics.RPCRequests.WithLabelValues(procedure, Code(err)).Inc()
			return resp, err
		}
	}
}

// Code is the metric label for an RPC outcome.
func Code(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}
