// Package movement implements the atomic two-party movement protocol
// shared by topup, bonus and spend.
//
// Every movement debits exactly one wallet and credits exactly one
// wallet within a single database transaction: deduplicate by
// idempotency key, lock both wallet rows in deterministic order,
// validate, mutate both balances, append the balancing ledger entries,
// commit. Any failure rolls the whole scope back.
package movement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gametech/walletledger/internal/application/dtos"
	"github.com/gametech/walletledger/internal/application/ports"
	"github.com/gametech/walletledger/internal/domain/entities"
	"github.com/gametech/walletledger/internal/domain/errors"
	"github.com/gametech/walletledger/internal/domain/events"
)

// movementSpec parameterizes the protocol for one transaction kind.
// The system wallet is one party of every movement; the user wallet is
// the other.
type movementSpec struct {
	kind           entities.TransactionType
	systemKind     entities.SystemWalletKind
	systemIsSource bool // system -> user (topup, bonus) or user -> system (spend)
	checkFunds     bool // source balance must cover the amount
	debitDesc      func(userID int64, amount, asset string) string
	creditDesc     func(userID int64, amount, asset string) string
}

// Engine orchestrates the movement protocol. The per-kind use cases
// (Topup, Bonus, Spend) are thin wrappers that select a movementSpec.
type Engine struct {
	assetRepo  ports.AssetTypeRepository
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	ledgerRepo ports.LedgerRepository
	uow        ports.UnitOfWork
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewEngine wires the engine with its collaborators.
func NewEngine(
	assetRepo ports.AssetTypeRepository,
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	ledgerRepo ports.LedgerRepository,
	uow ports.UnitOfWork,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		assetRepo:  assetRepo,
		walletRepo: walletRepo,
		txRepo:     txRepo,
		ledgerRepo: ledgerRepo,
		uow:        uow,
		publisher:  publisher,
		logger:     logger,
	}
}

// process runs the protocol for one movement command.
func (e *Engine) process(ctx context.Context, spec movementSpec, cmd dtos.MovementCommand) (*dtos.TransactionDTO, error) {
	amount, err := parseAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	var createdWallet *entities.Wallet
	var transactionID string

	result, err := e.uow.ExecuteWithResult(ctx, func(txCtx context.Context) (any, error) {
		// Advisory idempotency pre-check. The unique constraint on
		// idempotency_key is the authoritative guard; this lookup just
		// short-circuits the common retry case.
		existing, err := e.txRepo.FindByIdempotencyKey(txCtx, cmd.IdempotencyKey)
		if err != nil && !errors.IsNotFound(err) {
			return nil, fmt.Errorf("idempotency check: %w", err)
		}
		if existing != nil {
			return existing, nil
		}

		asset, err := e.assetRepo.FindByCode(txCtx, cmd.AssetType)
		if err != nil {
			if errors.IsAssetUnknown(err) {
				return nil, errors.NewAssetUnknown(cmd.AssetType)
			}
			return nil, fmt.Errorf("resolve asset: %w", err)
		}

		// Lock both rows in ascending (asset, owner) order. System
		// owner ids are negative, so the system wallet always locks
		// first regardless of kind.
		systemWallet, err := e.walletRepo.FindForUpdate(txCtx, spec.systemKind.SystemUserID(), asset.ID)
		if err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.NewSystemWalletMissing(string(spec.systemKind), asset.Code)
			}
			return nil, fmt.Errorf("lock %s wallet: %w", spec.systemKind, err)
		}

		userWallet, err := e.lockOrCreateUserWallet(txCtx, cmd.UserID, asset.ID, &createdWallet)
		if err != nil {
			return nil, err
		}

		source, destination := systemWallet, userWallet
		if !spec.systemIsSource {
			source, destination = userWallet, systemWallet
		}

		if spec.checkFunds && !source.CanCover(amount) {
			return nil, errors.NewInsufficientFunds(source.Balance.String(), amount.String())
		}

		tx := &entities.Transaction{
			TransactionID:  uuid.NewString(),
			IdempotencyKey: cmd.IdempotencyKey,
			Type:           spec.kind,
			UserID:         cmd.UserID,
			AssetTypeID:    asset.ID,
			Amount:         amount,
			Status:         entities.TransactionStatusPending,
			Metadata:       cmd.Metadata,
		}
		if err := e.txRepo.Create(txCtx, tx); err != nil {
			return nil, fmt.Errorf("create transaction: %w", err)
		}
		transactionID = tx.TransactionID

		if err := e.postDoubleEntry(txCtx, spec, tx, source, destination, amount, asset.Code); err != nil {
			return nil, err
		}

		if err := e.txRepo.MarkCompleted(txCtx, tx.TransactionID); err != nil {
			return nil, fmt.Errorf("complete transaction: %w", err)
		}
		tx.Status = entities.TransactionStatusCompleted
		now := time.Now().UTC()
		tx.CompletedAt = &now

		return tx, nil
	})

	if err != nil {
		replayed, recErr := e.recover(ctx, cmd, transactionID, err)
		if recErr != nil {
			return nil, recErr
		}
		dto := dtos.ToTransactionDTO(replayed)
		return &dto, nil
	}

	tx := result.(*entities.Transaction)
	// Publish only for a movement this run actually performed; an
	// idempotent replay of a prior transaction changed nothing.
	if tx.TransactionID == transactionID {
		e.publishEvents(ctx, tx, createdWallet)
	}

	dto := dtos.ToTransactionDTO(tx)
	return &dto, nil
}

// lockOrCreateUserWallet takes the row lock on the user wallet,
// creating it with a zero balance first if it does not exist yet. A
// create race with a concurrent movement surfaces as an integrity
// violation and is resolved by the caller's recovery path.
func (e *Engine) lockOrCreateUserWallet(ctx context.Context, userID int64, assetTypeID int, created **entities.Wallet) (*entities.Wallet, error) {
	wallet, err := e.walletRepo.FindForUpdate(ctx, userID, assetTypeID)
	if err == nil {
		return wallet, nil
	}
	if !errors.IsNotFound(err) {
		return nil, fmt.Errorf("lock user wallet: %w", err)
	}

	wallet = &entities.Wallet{
		UserID:      userID,
		AssetTypeID: assetTypeID,
		Balance:     decimal.Zero,
	}
	if err := e.walletRepo.Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("create user wallet: %w", err)
	}
	*created = wallet

	// Re-read under lock so the balance mutation below holds the row.
	wallet, err = e.walletRepo.FindForUpdate(ctx, userID, assetTypeID)
	if err != nil {
		return nil, fmt.Errorf("lock created wallet: %w", err)
	}
	return wallet, nil
}

// postDoubleEntry mutates both balances and appends the balancing
// ledger entry pair. Must run with both row locks held.
func (e *Engine) postDoubleEntry(
	ctx context.Context,
	spec movementSpec,
	tx *entities.Transaction,
	source, destination *entities.Wallet,
	amount decimal.Decimal,
	assetCode string,
) error {
	srcBefore := source.Balance
	dstBefore := destination.Balance
	srcAfter := srcBefore.Sub(amount)
	dstAfter := dstBefore.Add(amount)

	if err := e.walletRepo.SetBalance(ctx, source.ID, srcAfter); err != nil {
		return fmt.Errorf("debit source wallet: %w", err)
	}
	if err := e.walletRepo.SetBalance(ctx, destination.ID, dstAfter); err != nil {
		return fmt.Errorf("credit destination wallet: %w", err)
	}
	source.Balance = srcAfter
	destination.Balance = dstAfter

	entries := []*entities.LedgerEntry{
		{
			TransactionID: tx.TransactionID,
			WalletID:      source.ID,
			EntryType:     entities.EntryTypeDebit,
			Amount:        amount.Neg(),
			BalanceBefore: srcBefore,
			BalanceAfter:  srcAfter,
			Description:   spec.debitDesc(tx.UserID, amount.String(), assetCode),
		},
		{
			TransactionID: tx.TransactionID,
			WalletID:      destination.ID,
			EntryType:     entities.EntryTypeCredit,
			Amount:        amount,
			BalanceBefore: dstBefore,
			BalanceAfter:  dstAfter,
			Description:   spec.creditDesc(tx.UserID, amount.String(), assetCode),
		},
	}
	if err := e.ledgerRepo.Append(ctx, entries); err != nil {
		return fmt.Errorf("append ledger entries: %w", err)
	}
	return nil
}

// recover maps a rolled-back protocol run to its outward error.
//
// An integrity violation usually means a concurrent movement with the
// same idempotency key won the insert race: a second lookup now sees
// the committed row and the movement degrades to the idempotent-replay
// path. Any other error is surfaced as-is after a best-effort FAILED
// mark; the PENDING row was rolled back with the scope, so the mark
// normally finds nothing to update.
func (e *Engine) recover(ctx context.Context, cmd dtos.MovementCommand, transactionID string, cause error) (*entities.Transaction, error) {
	if errors.IsIntegrityViolation(cause) {
		existing, lookupErr := e.txRepo.FindByIdempotencyKey(ctx, cmd.IdempotencyKey)
		if lookupErr == nil && existing != nil {
			return existing, nil
		}
		return nil, errors.NewDuplicateTransaction(cmd.IdempotencyKey)
	}

	if transactionID != "" {
		if markErr := e.txRepo.MarkFailed(ctx, transactionID, cause.Error()); markErr != nil {
			e.logger.WarnContext(ctx, "failed to mark transaction FAILED",
				slog.String("transaction_id", transactionID),
				slog.String("error", markErr.Error()))
		}
	}
	return nil, cause
}

// publishEvents emits post-commit events. Best effort: a publish
// failure is logged, never returned.
func (e *Engine) publishEvents(ctx context.Context, tx *entities.Transaction, createdWallet *entities.Wallet) {
	if createdWallet != nil {
		if err := e.publisher.Publish(ctx, events.NewWalletCreated(createdWallet)); err != nil {
			e.logger.WarnContext(ctx, "failed to publish wallet.created",
				slog.Int64("wallet_id", createdWallet.ID),
				slog.String("error", err.Error()))
		}
	}

	if err := e.publisher.Publish(ctx, events.NewMovementCompleted(tx)); err != nil {
		e.logger.WarnContext(ctx, "failed to publish movement.completed",
			slog.String("transaction_id", tx.TransactionID),
			slog.String("error", err.Error()))
	}
}

// parseAmount validates and parses a decimal-string amount.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, errors.ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("invalid decimal: %v", err),
		}
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, errors.ValidationError{
			Field:   "amount",
			Message: "must be greater than zero",
		}
	}
	return amount, nil
}
