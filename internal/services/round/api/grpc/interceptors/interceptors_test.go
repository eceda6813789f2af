package interceptors

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	grpcmeta "github.com/louisbranch/homerun/internal/services/round/api/grpc/metadata"
	"github.com/louisbranch/homerun/internal/services/round/callerauth"
	"github.com/louisbranch/homerun/internal/services/round/domain"
)

var playInfo = &grpc.UnaryServerInfo{FullMethod: "/homerun.round.v1.RoundService/Play"}

func incoming(pairs ...string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(pairs...))
}

func captureCaller(t *testing.T, interceptor grpc.UnaryServerInterceptor, ctx context.Context) (domain.Identity, error) {
	t.Helper()
	var seen domain.Identity
	_, err := interceptor(ctx, nil, playInfo, func(ctx context.Context, _ any) (any, error) {
		seen, _ = grpcmeta.CallerFromContext(ctx)
		return nil, nil
	})
	return seen, err
}

func TestCallerInterceptorTrustedHeader(t *testing.T) {
	interceptor := CallerInterceptor(callerauth.Config{})

	caller, err := captureCaller(t, interceptor, incoming(grpcmeta.CallerIDHeader, "alice"))
	if err != nil {
		t.Fatalf("intercept: %v", err)
	}
	if caller != "alice" {
		t.Fatalf("caller = %q, want alice", caller)
	}

	caller, err = captureCaller(t, interceptor, context.Background())
	if err != nil || caller != "" {
		t.Fatalf("anonymous call = %q, %v", caller, err)
	}

	_, err = captureCaller(t, interceptor, incoming(grpcmeta.CallerIDHeader, "round:custody"))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.InvalidArgument)
	}
}

func TestCallerInterceptorBearerToken(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	cfg := callerauth.Config{Issuer: "issuer", Audience: "round", Key: pub, Now: func() time.Time { return now }}
	token, err := callerauth.Mint(priv, callerauth.MintRequest{
		Caller: "bob", Issuer: "issuer", Audience: "round", JWTID: "j1", IssuedAt: now, TTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	interceptor := CallerInterceptor(cfg)

	// The header is ignored once tokens are configured.
	caller, err := captureCaller(t, interceptor, incoming(
		grpcmeta.AuthorizationHeader, "Bearer "+token,
		grpcmeta.CallerIDHeader, "mallory",
	))
	if err != nil {
		t.Fatalf("intercept: %v", err)
	}
	if caller != "bob" {
		t.Fatalf("caller = %q, want bob", caller)
	}

	caller, err = captureCaller(t, interceptor, incoming(grpcmeta.CallerIDHeader, "mallory"))
	if err != nil || caller != "" {
		t.Fatalf("header-only call = %q, %v", caller, err)
	}

	_, err = captureCaller(t, interceptor, incoming(grpcmeta.AuthorizationHeader, "Bearer "+token+"x"))
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.Unauthenticated)
	}
}

func TestLoggingInterceptor(t *testing.T) {
	var lines []string
	logf := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}
	ctx := grpcmeta.WithCaller(grpcmeta.WithRequestID(context.Background(), "req-1"), "alice")
	_, err := LoggingInterceptor(logf)(ctx, nil, playInfo, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.FailedPrecondition, "paused")
	})
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.FailedPrecondition)
	}
	if len(lines) != 1 {
		t.Fatalf("log lines = %d, want 1", len(lines))
	}
	for _, want := range []string{playInfo.FullMethod, "request_id=req-1", "caller=alice", "code=FailedPrecondition"} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("log line %q missing %q", lines[0], want)
		}
	}
}
