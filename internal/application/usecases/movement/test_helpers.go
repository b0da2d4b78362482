package movement

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gametech/walletledger/internal/domain/entities"
	"github.com/gametech/walletledger/internal/domain/errors"
	domainevents "github.com/gametech/walletledger/internal/domain/events"
)

// In-memory fakes for engine unit tests. The fakes enforce the same
// uniqueness rules as the real store so the integrity-violation paths
// can be exercised without a database. Override hooks allow individual
// tests to script failures.

type walletKey struct {
	userID      int64
	assetTypeID int
}

type fakeAssetRepo struct {
	byCode map[string]*entities.AssetType
}

func newFakeAssetRepo(assets ...*entities.AssetType) *fakeAssetRepo {
	r := &fakeAssetRepo{byCode: make(map[string]*entities.AssetType)}
	for _, a := range assets {
		r.byCode[a.Code] = a
	}
	return r
}

func (r *fakeAssetRepo) FindByCode(_ context.Context, code string) (*entities.AssetType, error) {
	if a, ok := r.byCode[code]; ok {
		return a, nil
	}
	return nil, errors.NewAssetUnknown(code)
}

func (r *fakeAssetRepo) FindByID(_ context.Context, id int) (*entities.AssetType, error) {
	for _, a := range r.byCode {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errors.ErrAssetUnknown
}

func (r *fakeAssetRepo) List(_ context.Context) ([]*entities.AssetType, error) {
	result := make([]*entities.AssetType, 0, len(r.byCode))
	for _, a := range r.byCode {
		result = append(result, a)
	}
	return result, nil
}

type fakeWalletRepo struct {
	mu      sync.Mutex
	wallets map[walletKey]*entities.Wallet
	nextID  int64

	createFunc func(ctx context.Context, wallet *entities.Wallet) error
}

func newFakeWalletRepo(wallets ...*entities.Wallet) *fakeWalletRepo {
	r := &fakeWalletRepo{wallets: make(map[walletKey]*entities.Wallet), nextID: 1}
	for _, w := range wallets {
		if w.ID == 0 {
			w.ID = r.nextID
		}
		if w.ID >= r.nextID {
			r.nextID = w.ID + 1
		}
		r.wallets[walletKey{w.UserID, w.AssetTypeID}] = w
	}
	return r
}

func (r *fakeWalletRepo) Find(_ context.Context, userID int64, assetTypeID int) (*entities.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.wallets[walletKey{userID, assetTypeID}]; ok {
		return w, nil
	}
	return nil, errors.ErrWalletNotFound
}

func (r *fakeWalletRepo) FindForUpdate(ctx context.Context, userID int64, assetTypeID int) (*entities.Wallet, error) {
	return r.Find(ctx, userID, assetTypeID)
}

func (r *fakeWalletRepo) Create(ctx context.Context, wallet *entities.Wallet) error {
	if r.createFunc != nil {
		return r.createFunc(ctx, wallet)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := walletKey{wallet.UserID, wallet.AssetTypeID}
	if _, exists := r.wallets[key]; exists {
		return fmt.Errorf("wallet exists: %w", errors.ErrIntegrityViolation)
	}
	wallet.ID = r.nextID
	r.nextID++
	wallet.CreatedAt = time.Now().UTC()
	r.wallets[key] = wallet
	return nil
}

func (r *fakeWalletRepo) SetBalance(_ context.Context, walletID int64, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wallets {
		if w.ID == walletID {
			w.Balance = balance
			return nil
		}
	}
	return errors.ErrWalletNotFound
}

func (r *fakeWalletRepo) ListByUser(_ context.Context, userID int64) ([]*entities.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entities.Wallet
	for _, w := range r.wallets {
		if w.UserID == userID {
			result = append(result, w)
		}
	}
	return result, nil
}

func (r *fakeWalletRepo) get(userID int64, assetTypeID int) *entities.Wallet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wallets[walletKey{userID, assetTypeID}]
}

type fakeTransactionRepo struct {
	mu     sync.Mutex
	byKey  map[string]*entities.Transaction
	byID   map[string]*entities.Transaction
	nextID int64

	createFunc  func(ctx context.Context, tx *entities.Transaction) error
	findByKey   func(ctx context.Context, key string) (*entities.Transaction, error)
	failedMarks []string
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{
		byKey:  make(map[string]*entities.Transaction),
		byID:   make(map[string]*entities.Transaction),
		nextID: 1,
	}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, tx *entities.Transaction) error {
	if r.createFunc != nil {
		return r.createFunc(ctx, tx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byKey[tx.IdempotencyKey]; exists {
		return fmt.Errorf("duplicate idempotency key: %w", errors.ErrIntegrityViolation)
	}
	tx.ID = r.nextID
	r.nextID++
	tx.CreatedAt = time.Now().UTC()
	r.byKey[tx.IdempotencyKey] = tx
	r.byID[tx.TransactionID] = tx
	return nil
}

func (r *fakeTransactionRepo) FindByTransactionID(_ context.Context, transactionID string) (*entities.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx, ok := r.byID[transactionID]; ok {
		return tx, nil
	}
	return nil, errors.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) FindByIdempotencyKey(ctx context.Context, key string) (*entities.Transaction, error) {
	if r.findByKey != nil {
		return r.findByKey(ctx, key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx, ok := r.byKey[key]; ok {
		return tx, nil
	}
	return nil, errors.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) MarkCompleted(_ context.Context, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.byID[transactionID]
	if !ok {
		return errors.ErrTransactionNotFound
	}
	now := time.Now().UTC()
	tx.Status = entities.TransactionStatusCompleted
	tx.CompletedAt = &now
	return nil
}

func (r *fakeTransactionRepo) MarkFailed(_ context.Context, transactionID string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failedMarks = append(r.failedMarks, transactionID)
	tx, ok := r.byID[transactionID]
	if !ok {
		return errors.ErrTransactionNotFound
	}
	tx.Status = entities.TransactionStatusFailed
	tx.ErrorMessage = &reason
	return nil
}

func (r *fakeTransactionRepo) ListByUser(_ context.Context, userID int64, offset, limit int) ([]*entities.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entities.Transaction
	for _, tx := range r.byKey {
		if tx.UserID == userID {
			result = append(result, tx)
		}
	}
	return result, nil
}

type fakeLedgerRepo struct {
	mu      sync.Mutex
	entries []*entities.LedgerEntry

	appendFunc func(ctx context.Context, entries []*entities.LedgerEntry) error
}

func (r *fakeLedgerRepo) Append(ctx context.Context, entries []*entities.LedgerEntry) error {
	if r.appendFunc != nil {
		return r.appendFunc(ctx, entries)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *fakeLedgerRepo) ListByTransaction(_ context.Context, transactionID string) ([]*entities.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entities.LedgerEntry
	for _, e := range r.entries {
		if e.TransactionID == transactionID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeLedgerRepo) ListByWallet(_ context.Context, walletID int64, offset, limit int) ([]*entities.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entities.LedgerEntry
	for _, e := range r.entries {
		if e.WalletID == walletID {
			result = append(result, e)
		}
	}
	return result, nil
}

// fakeUnitOfWork runs the function directly. Rollback is not
// simulated; tests that exercise failure paths assert on the outward
// error, not on store state.
type fakeUnitOfWork struct{}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (u *fakeUnitOfWork) ExecuteWithResult(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	return fn(ctx)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domainevents.DomainEvent
}

func (p *fakePublisher) Publish(_ context.Context, event domainevents.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}

// testFixture bundles the fakes and the engine under test.
type testFixture struct {
	assets    *fakeAssetRepo
	wallets   *fakeWalletRepo
	txs       *fakeTransactionRepo
	ledger    *fakeLedgerRepo
	publisher *fakePublisher
	engine    *Engine
}

func systemWallet(kind entities.SystemWalletKind, assetTypeID int, balance string) *entities.Wallet {
	k := kind
	return &entities.Wallet{
		UserID:         kind.SystemUserID(),
		AssetTypeID:    assetTypeID,
		Balance:        decimal.RequireFromString(balance),
		IsSystemWallet: true,
		SystemKind:     &k,
	}
}

func newTestFixture(wallets ...*entities.Wallet) *testFixture {
	f := &testFixture{
		assets: newFakeAssetRepo(
			&entities.AssetType{ID: 1, Code: "COINS", DisplayName: "Coins", IsActive: true},
			&entities.AssetType{ID: 2, Code: "GEMS", DisplayName: "Gems", IsActive: true},
		),
		wallets:   newFakeWalletRepo(wallets...),
		txs:       newFakeTransactionRepo(),
		ledger:    &fakeLedgerRepo{},
		publisher: &fakePublisher{},
	}
	f.engine = NewEngine(
		f.assets, f.wallets, f.txs, f.ledger,
		&fakeUnitOfWork{}, f.publisher,
		slog.New(slog.DiscardHandler),
	)
	return f
}
