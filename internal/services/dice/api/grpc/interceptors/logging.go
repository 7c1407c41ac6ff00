// Package interceptors holds unary interceptors for the dice service.
package interceptors

import (
	"context"
	"log"
	"strings"
	"time"

	grpcmeta "github.com/louisbranch/dicebag/internal/services/dice/api/grpc/metadata"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Logf matches log.Printf.
type Logf func(format string, args ...any)

// LoggingInterceptor writes one line per unary call with the method, status
// code, latency, request ID and, when tracing is on, the trace ID.
func LoggingInterceptor(logf Logf) grpc.UnaryServerInterceptor {
	if logf == nil {
		logf = log.Printf
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := codes.OK
		if err != nil {
			code = codes.Unknown
			if st, ok := status.FromError(err); ok {
				code = st.Code()
			}
		}

		fields := []string{
			"method=" + info.FullMethod,
			"code=" + code.String(),
			"duration=" + time.Since(start).Round(time.Microsecond).String(),
		}
		if requestID := grpcmeta.RequestIDFromContext(ctx); requestID != "" {
			fields = append(fields, "request_id="+requestID)
		}
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			fields = append(fields, "trace_id="+sc.TraceID().String())
		}
		logf("grpc %s", strings.Join(fields, " "))

		return resp, err
	}
}
