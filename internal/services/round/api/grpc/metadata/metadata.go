// Package metadata defines the headers that carry caller identity and
// request correlation across the round service boundary.
package metadata

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/homerun/internal/services/round/domain"
)

// RequestIDHeader is the gRPC metadata key for request correlation IDs.
const RequestIDHeader = "x-homerun-request-id"

// CallerIDHeader names the caller when the service sits behind an
// authenticating proxy. Ignored when caller tokens are configured.
const CallerIDHeader = "x-homerun-caller-id"

// AuthorizationHeader carries "Bearer <caller token>".
const AuthorizationHeader = "authorization"

// AcceptLanguageHeader selects the locale of error messages.
const AcceptLanguageHeader = "accept-language"

type contextKey string

const (
	requestIDContextKey contextKey = "homerun-request-id"
	callerContextKey    contextKey = "homerun-caller"
)

// NewRequestID returns a random request ID.
func NewRequestID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// RequestIDFromContext returns the request ID stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey).(string)
	return value
}

// WithRequestID stores the request ID in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// CallerFromContext returns the authenticated caller, if any.
func CallerFromContext(ctx context.Context) (domain.Identity, bool) {
	if ctx == nil {
		return "", false
	}
	caller, ok := ctx.Value(callerContextKey).(domain.Identity)
	return caller, ok && !caller.IsZero()
}

// WithCaller stores the authenticated caller in context.
func WithCaller(ctx context.Context, caller domain.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, callerContextKey, caller)
}

// AcceptLanguageFromContext returns the accept-language header of the call.
func AcceptLanguageFromContext(ctx context.Context) string {
	return ValueFromIncomingContext(ctx, AcceptLanguageHeader)
}

// BearerTokenFromContext returns the bearer token of the call, if any.
func BearerTokenFromContext(ctx context.Context) string {
	value := ValueFromIncomingContext(ctx, AuthorizationHeader)
	scheme, token, ok := strings.Cut(value, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// OutgoingContext attaches client headers to ctx. Empty values are skipped.
func OutgoingContext(ctx context.Context, caller, token, requestID, locale string) context.Context {
	var pairs []string
	if caller != "" {
		pairs = append(pairs, CallerIDHeader, caller)
	}
	if token != "" {
		pairs = append(pairs, AuthorizationHeader, "Bearer "+token)
	}
	if requestID != "" {
		pairs = append(pairs, RequestIDHeader, requestID)
	}
	if locale != "" {
		pairs = append(pairs, AcceptLanguageHeader, locale)
	}
	if len(pairs) == 0 {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}

// IsPrintableASCII reports whether a string contains only printable ASCII characters.
func IsPrintableASCII(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] > 0x7e {
			return false
		}
	}
	return true
}

// FirstMetadataValue returns the first printable ASCII metadata value for a key.
func FirstMetadataValue(md metadata.MD, key string) string {
	for mdKey, values := range md {
		if !strings.EqualFold(mdKey, key) {
			continue
		}
		for _, value := range values {
			if IsPrintableASCII(value) {
				return value
			}
		}
	}
	return ""
}

// ValueFromIncomingContext returns the first printable value of header.
func ValueFromIncomingContext(ctx context.Context, header string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	return FirstMetadataValue(md, header)
}

// UnaryServerInterceptor makes sure every call carries a request ID and
// echoes it in the response headers.
func UnaryServerInterceptor(idGenerator func() (string, error)) grpc.UnaryServerInterceptor {
	if idGenerator == nil {
		idGenerator = NewRequestID
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := ValueFromIncomingContext(ctx, RequestIDHeader)
		if requestID == "" {
			generated, err := idGenerator()
			if err != nil {
				return nil, status.Errorf(codes.Internal, "generate request id: %v", err)
			}
			requestID = generated
		}
		ctx = WithRequestID(ctx, requestID)
		if err := grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			return nil, status.Errorf(codes.Internal, "set response metadata: %v", err)
		}
		return handler(ctx, req)
	}
}
