// Package interceptors resolves caller identity and logs round service calls.
package interceptors

import (
	"context"

	"google.golang.org/grpc"

	apperrors "github.com/louisbranch/homerun/internal/platform/errors"
	grpcmeta "github.com/louisbranch/homerun/internal/services/round/api/grpc/metadata"
	"github.com/louisbranch/homerun/internal/services/round/callerauth"
	"github.com/louisbranch/homerun/internal/services/round/domain"
)

// CallerInterceptor stores the caller identity in context.
//
// With token verification enabled the identity comes from the bearer token
// subject and the caller header is ignored. Otherwise the caller header is
// trusted as set by an authenticating proxy. Calls without any identity pass
// through; handlers that need one reject them.
func CallerInterceptor(cfg callerauth.Config) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		caller, err := resolveCaller(ctx, cfg)
		if err != nil {
			return nil, apperrors.HandleError(err, grpcmeta.AcceptLanguageFromContext(ctx))
		}
		if !caller.IsZero() {
			ctx = grpcmeta.WithCaller(ctx, caller)
		}
		return handler(ctx, req)
	}
}

func resolveCaller(ctx context.Context, cfg callerauth.Config) (domain.Identity, error) {
	if cfg.Enabled() {
		token := grpcmeta.BearerTokenFromContext(ctx)
		if token == "" {
			return "", nil
		}
		claims, err := callerauth.Verify(token, cfg)
		if err != nil {
			return "", err
		}
		return claims.Caller, nil
	}

	raw := grpcmeta.ValueFromIncomingContext(ctx, grpcmeta.CallerIDHeader)
	if raw == "" {
		return "", nil
	}
	return domain.ParseIdentity(raw)
}
