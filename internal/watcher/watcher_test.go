package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chainart-registry-go/internal/database"
	"chainart-registry-go/internal/ledger"
	"chainart-registry-go/internal/models"
	"chainart-registry-go/internal/store"
)

type fakeSubscription struct {
	errChan chan error
	once    sync.Once
}

func (s *fakeSubscription) Err() <-chan error { return s.errChan }

func (s *fakeSubscription) Unsubscribe() {
	s.once.Do(func() { close(s.errChan) })
}

// fakeGateway hands out scripted subscriptions and a static signed-view.
type fakeGateway struct {
	mu         sync.Mutex
	sink       chan<- models.CreatorSignedEvent
	sub        *fakeSubscription
	watchCalls int
	signedView map[string]bool
}

func (f *fakeGateway) SignCreator(_ context.Context, _, _ string) (string, error) {
	return "", errors.New("not supported in fake")
}

func (f *fakeGateway) RecordArtifact(_ context.Context, _, _, _, _ string) (string, error) {
	return "", errors.New("not supported in fake")
}

func (f *fakeGateway) CreatorSigned(_ context.Context, wallet string) (*models.LedgerCreator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.LedgerCreator{Signed: f.signedView[wallet]}, nil
}

func (f *fakeGateway) WatchCreatorSigned(_ context.Context, sink chan<- models.CreatorSignedEvent) (ledger.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watchCalls++
	f.sink = sink
	f.sub = &fakeSubscription{errChan: make(chan error, 1)}
	return f.sub, nil
}

func (f *fakeGateway) Close() {}

// emit waits for an active subscription so tests can fire events right
// after Start without racing the watch loop.
func (f *fakeGateway) emit(event models.CreatorSignedEvent) {
	for {
		f.mu.Lock()
		sink := f.sink
		f.mu.Unlock()
		if sink != nil {
			sink <- event
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func (f *fakeGateway) failSubscription(err error) {
	for {
		f.mu.Lock()
		sub := f.sub
		f.mu.Unlock()
		if sub != nil {
			sub.errChan <- err
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func (f *fakeGateway) subscriptionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.watchCalls
}

const (
	walletA = "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	walletB = "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
)

func setupWatcherTest(t *testing.T, gateway *fakeGateway) (*Watcher, *database.Service, func()) {
	db, err := database.NewService(context.Background(), models.DatabaseConfig{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	w := NewWatcher(db, gateway, models.WatcherConfig{
		EventBuffer:      8,
		ResubscribeDelay: 10 * time.Millisecond,
	})
	return w, db, db.Close
}

func mustCreateAccount(t *testing.T, db *database.Service, wallet, username, role string) *models.Account {
	account, err := db.CreateAccount(context.Background(), store.CreateAccountParams{
		WalletAddress: wallet,
		Username:      username,
		Contact:       username + "@example.com",
		Role:          role,
	})
	if err != nil {
		t.Fatalf("Failed to create account %s: %v", username, err)
	}
	return account
}

func waitForRole(t *testing.T, db *database.Service, accountId, role string) *models.Account {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		account, err := db.GetAccountById(context.Background(), accountId)
		if err != nil {
			t.Fatalf("GetAccountById failed: %v", err)
		}
		if account.Role == role {
			return account
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Account %s never reached role %s", accountId, role)
	return nil
}

func TestWatcher_PromotesOnConfirmedEvent(t *testing.T) {
	gateway := &fakeGateway{}
	w, db, cleanup := setupWatcherTest(t, gateway)
	defer cleanup()

	account := mustCreateAccount(t, db, walletA, "artist", models.RoleUser)

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	gateway.emit(models.CreatorSignedEvent{
		WalletAddress: walletA,
		TxHash:        "0x111",
		BlockNumber:   42,
	})

	promoted := waitForRole(t, db, account.Id, models.RoleCreator)
	if !promoted.ApprovalRequested {
		t.Error("Expected approval_requested set on promotion")
	}
}

func TestWatcher_DuplicateDeliveryIsIdempotent(t *testing.T) {
	gateway := &fakeGateway{}
	w, db, cleanup := setupWatcherTest(t, gateway)
	defer cleanup()

	account := mustCreateAccount(t, db, walletA, "artist", models.RoleUser)

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	event := models.CreatorSignedEvent{WalletAddress: walletA, TxHash: "0x111", BlockNumber: 42}
	gateway.emit(event)
	gateway.emit(event)
	gateway.emit(event)

	promoted := waitForRole(t, db, account.Id, models.RoleCreator)
	if promoted.Role != models.RoleCreator {
		t.Errorf("Expected role %s, got %s", models.RoleCreator, promoted.Role)
	}
}

func TestWatcher_UnknownWalletIgnored(t *testing.T) {
	gateway := &fakeGateway{}
	w, db, cleanup := setupWatcherTest(t, gateway)
	defer cleanup()

	account := mustCreateAccount(t, db, walletA, "artist", models.RoleUser)

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Signed wallet with no local account: logged and skipped.
	gateway.emit(models.CreatorSignedEvent{WalletAddress: walletB, TxHash: "0x222", BlockNumber: 43})

	time.Sleep(50 * time.Millisecond)
	w.Stop()

	current, err := db.GetAccountById(context.Background(), account.Id)
	if err != nil {
		t.Fatalf("GetAccountById failed: %v", err)
	}
	if current.Role != models.RoleUser {
		t.Errorf("Unrelated account was promoted to %s", current.Role)
	}
}

func TestWatcher_ResubscribesAfterSubscriptionError(t *testing.T) {
	gateway := &fakeGateway{}
	w, db, cleanup := setupWatcherTest(t, gateway)
	defer cleanup()

	account := mustCreateAccount(t, db, walletA, "artist", models.RoleUser)

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	gateway.failSubscription(errors.New("websocket closed"))

	deadline := time.Now().Add(2 * time.Second)
	for gateway.subscriptionCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if gateway.subscriptionCount() < 2 {
		t.Fatal("Watcher never resubscribed after subscription error")
	}

	// Events on the fresh subscription still converge state.
	gateway.emit(models.CreatorSignedEvent{WalletAddress: walletA, TxHash: "0x333", BlockNumber: 44})
	waitForRole(t, db, account.Id, models.RoleCreator)
}

func TestWatcher_StartupRecoveryPromotesSignedAccounts(t *testing.T) {
	gateway := &fakeGateway{signedView: map[string]bool{walletA: true}}
	w, db, cleanup := setupWatcherTest(t, gateway)
	defer cleanup()

	signed := mustCreateAccount(t, db, walletA, "artist", models.RoleUser)
	unsigned := mustCreateAccount(t, db, walletB, "other", models.RoleUser)

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	waitForRole(t, db, signed.Id, models.RoleCreator)

	current, err := db.GetAccountById(context.Background(), unsigned.Id)
	if err != nil {
		t.Fatalf("GetAccountById failed: %v", err)
	}
	if current.Role != models.RoleUser {
		t.Errorf("Unsigned account was promoted to %s", current.Role)
	}
}
