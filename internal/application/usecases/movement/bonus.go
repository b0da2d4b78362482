package movement

import (
	"context"
	"fmt"

	"github.com/gametech/walletledger/internal/application/dtos"
	"github.com/gametech/walletledger/internal/domain/entities"
)

// BonusUseCase moves funds from the marketing pool to a user wallet.
// Unlike topup, the marketing wallet must cover the amount.
type BonusUseCase struct {
	engine *Engine
}

// NewBonusUseCase creates the bonus use case.
func NewBonusUseCase(engine *Engine) *BonusUseCase {
	return &BonusUseCase{engine: engine}
}

// Execute runs a BONUS movement.
func (uc *BonusUseCase) Execute(ctx context.Context, cmd dtos.MovementCommand) (*dtos.TransactionDTO, error) {
	return uc.engine.process(ctx, movementSpec{
		kind:           entities.TransactionTypeBonus,
		systemKind:     entities.SystemWalletMarketing,
		systemIsSource: true,
		checkFunds:     true,
		debitDesc: func(userID int64, amount, asset string) string {
			return fmt.Sprintf("Bonus granted to user %d", userID)
		},
		creditDesc: func(userID int64, amount, asset string) string {
			return fmt.Sprintf("Received %s %s bonus", amount, asset)
		},
	}, cmd)
}
