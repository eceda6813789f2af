package interceptors

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	grpcmeta "github.com/louisbranch/homerun/internal/services/round/api/grpc/metadata"
)

// LoggingInterceptor logs one line per unary call.
func LoggingInterceptor(logf func(string, ...any)) grpc.UnaryServerInterceptor {
	if logf == nil {
		logf = log.Printf
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		caller, _ := grpcmeta.CallerFromContext(ctx)
		logf("grpc %s request_id=%s caller=%s code=%s duration=%s",
			info.FullMethod,
			grpcmeta.RequestIDFromContext(ctx),
			caller,
			status.Code(err),
			time.Since(start).Round(time.Microsecond),
		)
		return resp, err
	}
}
