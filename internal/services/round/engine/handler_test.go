package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/louisbranch/homerun/internal/platform/errors"
	"github.com/louisbranch/homerun/internal/services/round/domain"
	"github.com/louisbranch/homerun/internal/services/round/integrity"
	"github.com/louisbranch/homerun/internal/services/round/storage"
	"github.com/louisbranch/homerun/internal/services/round/storage/sqlite"
)

const (
	admin domain.Identity = "admin"
	alice domain.Identity = "alice"
	bob   domain.Identity = "bob"

	fee     uint64 = 1_000_000
	reserve uint64 = 1_586_880
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testConfig() domain.Config {
	return domain.Config{Fee: fee, RoundDuration: time.Minute, RentReserve: reserve}
}

func newTestHandler(t *testing.T, store storage.Store) (*Handler, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	h, err := NewHandler(store, testConfig(), clock.Now)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return h, clock
}

func execute(t *testing.T, h *Handler, typ domain.CommandType, caller domain.Identity) Result {
	t.Helper()
	result, err := h.Execute(context.Background(), Request{Type: typ, Caller: caller})
	if err != nil {
		t.Fatalf("%s by %s: %v", typ, caller, err)
	}
	return result
}

func assertCode(t *testing.T, err error, want apperrors.Code) {
	t.Helper()
	if got := apperrors.GetCode(err); got != want {
		t.Fatalf("code = %s, want %s (err: %v)", got, want, err)
	}
}

func fund(t *testing.T, store storage.Store, account domain.Identity, amount uint64) {
	t.Helper()
	if _, err := store.Credit(context.Background(), account, amount); err != nil {
		t.Fatalf("credit %s: %v", account, err)
	}
}

func TestNewHandlerValidation(t *testing.T) {
	if _, err := NewHandler(nil, testConfig(), nil); err == nil {
		t.Fatal("expected error for missing store")
	}
	if _, err := NewHandler(newFakeStore(), domain.Config{}, nil); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestExecuteInitializeDepositsReserve(t *testing.T) {
	store := newFakeStore()
	fund(t, store, admin, reserve)
	h, _ := newTestHandler(t, store)

	result := execute(t, h, domain.CommandInitialize, admin)
	if result.Moved != reserve {
		t.Fatalf("moved = %d, want %d", result.Moved, reserve)
	}
	if store.balances[domain.CustodyAccount] != reserve || store.balances[admin] != 0 {
		t.Fatalf("balances = %v", store.balances)
	}
	if len(store.events) != 1 || store.events[0].Event.Type != domain.EventInitialized {
		t.Fatalf("events = %+v", store.events)
	}
}

func TestExecuteInitializeWithoutFundsFails(t *testing.T) {
	store := newFakeStore()
	h, _ := newTestHandler(t, store)

	_, err := h.Execute(context.Background(), Request{Type: domain.CommandInitialize, Caller: admin})
	assertCode(t, err, apperrors.CodeInsufficientFunds)
	if !errors.Is(err, storage.ErrInsufficientFunds) {
		t.Fatal("expected storage cause in chain")
	}
	if store.exists || len(store.events) != 0 {
		t.Fatal("expected no state after failed initialize")
	}
}

func TestExecutePlayWithoutFundsLeavesStateUntouched(t *testing.T) {
	store := newFakeStore()
	fund(t, store, admin, reserve)
	h, _ := newTestHandler(t, store)
	execute(t, h, domain.CommandInitialize, admin)
	before := store.round

	fund(t, store, alice, fee-1)
	_, err := h.Execute(context.Background(), Request{Type: domain.CommandPlay, Caller: alice})
	assertCode(t, err, apperrors.CodeInsufficientFunds)
	if store.round != before {
		t.Fatalf("round = %+v, want %+v", store.round, before)
	}
	if store.balances[alice] != fee-1 {
		t.Fatalf("alice balance = %d, want %d", store.balances[alice], fee-1)
	}
	if len(store.events) != 1 {
		t.Fatalf("events = %d, want 1", len(store.events))
	}
}

func TestExecuteRollsBackWhenJournalFails(t *testing.T) {
	store := newFakeStore()
	fund(t, store, admin, reserve)
	fund(t, store, alice, fee)
	h, _ := newTestHandler(t, store)
	execute(t, h, domain.CommandInitialize, admin)

	store.appendErr = errFake
	if _, err := h.Execute(context.Background(), Request{Type: domain.CommandPlay, Caller: alice}); !errors.Is(err, errFake) {
		t.Fatalf("err = %v, want %v", err, errFake)
	}
	if store.round.Pool != 0 || store.balances[alice] != fee {
		t.Fatalf("expected rollback, round = %+v balances = %v", store.round, store.balances)
	}
}

func TestExecuteRejectsCustodyShortfall(t *testing.T) {
	store := newFakeStore()
	fund(t, store, admin, reserve)
	h, _ := newTestHandler(t, store)
	execute(t, h, domain.CommandInitialize, admin)

	// Pool owed without matching custody value.
	store.round.Deadline = h.clock().Unix() + 10
	store.round.Pool = reserve * 10
	fund(t, store, alice, fee)
	_, err := h.Execute(context.Background(), Request{Type: domain.CommandPlay, Caller: alice})
	if err == nil {
		t.Fatal("expected custody invariant error")
	}
	if store.balances[alice] != fee {
		t.Fatalf("alice balance = %d, want %d", store.balances[alice], fee)
	}
}

// Full cycle: every unit of value stays accounted for across the ledger.
func TestExecuteRoundLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	fund(t, store, admin, reserve)
	fund(t, store, alice, 2*fee)
	fund(t, store, bob, fee)
	total := reserve + 3*fee

	h, clock := newTestHandler(t, store)
	execute(t, h, domain.CommandInitialize, admin)
	execute(t, h, domain.CommandPlay, alice)
	if _, err := h.Execute(ctx, Request{Type: domain.CommandScore, Caller: alice, Score: 100}); err != nil {
		t.Fatalf("score: %v", err)
	}
	execute(t, h, domain.CommandPlay, bob)
	if _, err := h.Execute(ctx, Request{Type: domain.CommandScore, Caller: bob, Score: 50}); err != nil {
		t.Fatalf("score: %v", err)
	}

	status, err := h.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Phase != domain.PhasePlaying || status.Round.Winner != alice {
		t.Fatalf("status = %+v", status)
	}
	if status.Custody != reserve+2*fee {
		t.Fatalf("custody = %d, want %d", status.Custody, reserve+2*fee)
	}

	clock.Advance(time.Minute + time.Second)
	if status, _ = h.Status(ctx); status.Phase != domain.PhaseGraceClaim {
		t.Fatalf("phase = %s, want grace_claim", status.Phase)
	}
	_, err = h.Execute(ctx, Request{Type: domain.CommandClaim, Caller: bob})
	assertCode(t, err, apperrors.CodeNotWinnerInGracePeriod)

	claimed := execute(t, h, domain.CommandClaim, alice)
	if claimed.Moved != 1_800_000 {
		t.Fatalf("claimed = %d, want 1800000", claimed.Moved)
	}
	if store.balances[alice] != fee+1_800_000 {
		t.Fatalf("alice balance = %d", store.balances[alice])
	}

	execute(t, h, domain.CommandPause, admin)
	_, err = h.Execute(ctx, Request{Type: domain.CommandPlay, Caller: alice})
	assertCode(t, err, apperrors.CodeGamePaused)

	profit := execute(t, h, domain.CommandProfit, admin)
	if profit.Moved != 200_000 {
		t.Fatalf("profit = %d, want 200000", profit.Moved)
	}

	killed := execute(t, h, domain.CommandKill, admin)
	if !killed.Closed || killed.Moved != reserve {
		t.Fatalf("kill result = %+v, want reserve swept", killed)
	}
	if store.exists {
		t.Fatal("expected round record destroyed")
	}
	if store.balances[domain.CustodyAccount] != 0 {
		t.Fatalf("custody = %d, want 0", store.balances[domain.CustodyAccount])
	}

	var sum uint64
	for _, balance := range store.balances {
		sum += balance
	}
	if sum != total {
		t.Fatalf("ledger total = %d, want %d", sum, total)
	}

	_, err = h.Status(ctx)
	assertCode(t, err, apperrors.CodeRoundNotInitialized)
	_, err = h.Execute(ctx, Request{Type: domain.CommandPlay, Caller: alice})
	assertCode(t, err, apperrors.CodeRoundNotInitialized)
}

func TestExecuteWithSQLiteStore(t *testing.T) {
	ctx := context.Background()
	ring, err := integrity.NewKeyring(map[string][]byte{"v1": []byte("secret")}, "v1")
	if err != nil {
		t.Fatalf("new keyring: %v", err)
	}
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "round.db"), ring)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	fund(t, store, admin, reserve)
	fund(t, store, alice, fee)
	h, clock := newTestHandler(t, store)

	execute(t, h, domain.CommandInitialize, admin)
	execute(t, h, domain.CommandPlay, alice)
	clock.Advance(3 * time.Minute)
	_, err = h.Execute(ctx, Request{Type: domain.CommandPlay, Caller: alice})
	assertCode(t, err, apperrors.CodePlayInClaimingPhase)

	result, err := h.Execute(ctx, Request{Type: domain.CommandClaim, Caller: bob, RequestID: "req-claim"})
	if err != nil {
		t.Fatalf("open-window claim: %v", err)
	}
	if result.Event.RequestID != "req-claim" {
		t.Fatalf("request id = %q, want req-claim", result.Event.RequestID)
	}
	if got, _ := store.Balance(ctx, bob); got != 900_000 {
		t.Fatalf("bob balance = %d, want 900000", got)
	}

	report, err := store.VerifyJournal(ctx)
	if err != nil {
		t.Fatalf("verify journal: %v", err)
	}
	if report.Entries != 3 {
		t.Fatalf("journal entries = %d, want 3", report.Entries)
	}
}

func TestStatusReadsRecordAndCustodyInOneTransaction(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	fund(t, store, admin, reserve)
	h, _ := newTestHandler(t, store)
	execute(t, h, domain.CommandInitialize, admin)

	before := store.txCount
	status, err := h.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if store.txCount != before+1 {
		t.Fatalf("transactions = %d, want %d", store.txCount, before+1)
	}
	if status.Custody != reserve {
		t.Fatalf("custody = %d, want %d", status.Custody, reserve)
	}

	store.balanceErr = errFake
	if _, err := h.Status(ctx); !errors.Is(err, errFake) {
		t.Fatalf("status err = %v, want %v", err, errFake)
	}
}

func TestExecuteRejectsReservedCaller(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	fund(t, store, admin, reserve)
	h, _ := newTestHandler(t, store)
	execute(t, h, domain.CommandInitialize, admin)

	_, err := h.Execute(ctx, Request{Type: domain.CommandPlay, Caller: domain.CustodyAccount})
	assertCode(t, err, apperrors.CodeIdentityInvalid)
	if store.round.Pool != 0 || store.round.Commission != 0 {
		t.Fatalf("round = %+v, want empty pool and commission", store.round)
	}
	if store.balances[domain.CustodyAccount] != reserve {
		t.Fatalf("custody = %d, want %d", store.balances[domain.CustodyAccount], reserve)
	}
	if len(store.events) != 1 {
		t.Fatalf("events = %d, want 1", len(store.events))
	}
}
