// Package grpc contains the round service transport.
//
//   - metadata/: header names and request-scoped context values
//   - interceptors/: caller resolution and call logging
//   - round/: the RoundService implementation
package grpc
