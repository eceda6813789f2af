package roundv1

import (
	"context"
	"math"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type stubServer struct {
	UnimplementedRoundServiceServer
	gotScore int64
}

func (s *stubServer) Score(_ context.Context, in *ScoreRequest) (*CommandResponse, error) {
	s.gotScore = in.Value
	return &CommandResponse{
		Round:    &Round{Initialized: true, Winner: "alice", Score: uint32(in.Value), Pool: math.MaxUint64},
		EventSeq: 7,
	}, nil
}

func startServer(t *testing.T, srv RoundServiceServer) RoundServiceClient {
	t.Helper()
	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	RegisterRoundServiceServer(server, srv)
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufconn: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewRoundServiceClient(conn)
}

func TestClientServerOverJSONCodec(t *testing.T) {
	stub := &stubServer{}
	client := startServer(t, stub)

	resp, err := client.Score(context.Background(), &ScoreRequest{Value: 420})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if stub.gotScore != 420 {
		t.Fatalf("server score = %d, want 420", stub.gotScore)
	}
	if resp.EventSeq != 7 || resp.Round.Winner != "alice" || resp.Round.Score != 420 {
		t.Fatalf("response = %+v round = %+v", resp, resp.Round)
	}
	if resp.Round.Pool != math.MaxUint64 {
		t.Fatalf("pool = %d, want max uint64", resp.Round.Pool)
	}
}

func TestUnimplementedMethods(t *testing.T) {
	client := startServer(t, &stubServer{})

	_, err := client.Kill(context.Background(), &CommandRequest{})
	if status.Code(err) != codes.Unimplemented {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.Unimplemented)
	}
}

func TestCodecName(t *testing.T) {
	if got := (jsonCodec{}).Name(); got != ContentSubtype {
		t.Fatalf("codec name = %q, want %q", got, ContentSubtype)
	}
	var out GetBalanceResponse
	if err := (jsonCodec{}).Unmarshal([]byte(`{"account":"alice","balance":"18446744073709551615"}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Balance != math.MaxUint64 {
		t.Fatalf("balance = %d, want max uint64", out.Balance)
	}
	if err := (jsonCodec{}).Unmarshal([]byte(`{"balance":1`), &out); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}
