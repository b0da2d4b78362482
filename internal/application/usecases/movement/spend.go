package movement

import (
	"context"
	"fmt"

	"github.com/gametech/walletledger/internal/application/dtos"
	"github.com/gametech/walletledger/internal/domain/entities"
)

// SpendUseCase moves funds from a user wallet to the revenue pool. If
// the user wallet does not exist it is created with a zero balance and
// the movement fails the funds check.
type SpendUseCase struct {
	engine *Engine
}

// NewSpendUseCase creates the spend use case.
func NewSpendUseCase(engine *Engine) *SpendUseCase {
	return &SpendUseCase{engine: engine}
}

// Execute runs a SPEND movement.
func (uc *SpendUseCase) Execute(ctx context.Context, cmd dtos.MovementCommand) (*dtos.TransactionDTO, error) {
	return uc.engine.process(ctx, movementSpec{
		kind:           entities.TransactionTypeSpend,
		systemKind:     entities.SystemWalletRevenue,
		systemIsSource: false,
		checkFunds:     true,
		debitDesc: func(userID int64, amount, asset string) string {
			return fmt.Sprintf("User %d spent %s %s", userID, amount, asset)
		},
		creditDesc: func(userID int64, amount, asset string) string {
			return fmt.Sprintf("Revenue from user %d spend", userID)
		},
	}, cmd)
}
