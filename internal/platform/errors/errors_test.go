package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("play: %w", New(CodeGamePaused, "round is paused"))
	if !stderrors.Is(err, New(CodeGamePaused, "")) {
		t.Fatal("expected wrapped error to match by code")
	}
	if stderrors.Is(err, New(CodeGameNotPaused, "")) {
		t.Fatal("expected different code not to match")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeUnknown, "save round", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(fmt.Errorf("x: %w", New(CodePoolEmpty, "empty"))); got != CodePoolEmpty {
		t.Fatalf("code = %v, want %v", got, CodePoolEmpty)
	}
	if got := GetCode(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("code = %v, want %v", got, CodeUnknown)
	}
	if !IsCode(New(CodeNotAdmin, "x"), CodeNotAdmin) {
		t.Fatal("expected IsCode match")
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeScoreOutOfRange, codes.InvalidArgument},
		{CodeGamePaused, codes.FailedPrecondition},
		{CodeKillWithPool, codes.FailedPrecondition},
		{CodeNotAdmin, codes.PermissionDenied},
		{CodeNotWinnerInGracePeriod, codes.PermissionDenied},
		{CodeRoundNotInitialized, codes.NotFound},
		{CodeRoundAlreadyInitialized, codes.AlreadyExists},
		{CodeArithmeticOverflow, codes.OutOfRange},
		{CodeUnknown, codes.Internal},
	}
	for _, tc := range tests {
		if got := tc.code.GRPCCode(); got != tc.want {
			t.Fatalf("%s grpc code = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestHandleErrorLocalizesMessage(t *testing.T) {
	err := HandleError(New(CodeGamePaused, "round is paused"), "pt-BR")
	st, ok := status.FromError(err)
	if !ok {
		t.Fatal("expected grpc status")
	}
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("code = %v, want %v", st.Code(), codes.FailedPrecondition)
	}
	if st.Message() != "round is paused" {
		t.Fatalf("message = %q, want internal message", st.Message())
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.Reason != string(CodeGamePaused) || info.Domain != Domain {
		t.Fatalf("error info = %v", info)
	}
	if localized == nil || localized.Locale != "pt-BR" || localized.Message != "Jogo pausado" {
		t.Fatalf("localized = %v", localized)
	}
}

func TestHandleErrorUnknown(t *testing.T) {
	if HandleError(nil, "") != nil {
		t.Fatal("expected nil for nil error")
	}
	st, _ := status.FromError(HandleError(stderrors.New("boom"), ""))
	if st.Code() != codes.Internal {
		t.Fatalf("code = %v, want %v", st.Code(), codes.Internal)
	}
}
