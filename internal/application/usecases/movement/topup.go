package movement

import (
	"context"
	"fmt"

	"github.com/gametech/walletledger/internal/application/dtos"
	"github.com/gametech/walletledger/internal/domain/entities"
)

// TopupUseCase moves funds from the treasury to a user wallet. The
// treasury is exempt from the funds check and may run negative.
type TopupUseCase struct {
	engine *Engine
}

// NewTopupUseCase creates the topup use case.
func NewTopupUseCase(engine *Engine) *TopupUseCase {
	return &TopupUseCase{engine: engine}
}

// Execute runs a TOPUP movement.
func (uc *TopupUseCase) Execute(ctx context.Context, cmd dtos.MovementCommand) (*dtos.TransactionDTO, error) {
	return uc.engine.process(ctx, movementSpec{
		kind:           entities.TransactionTypeTopup,
		systemKind:     entities.SystemWalletTreasury,
		systemIsSource: true,
		checkFunds:     false,
		debitDesc: func(userID int64, amount, asset string) string {
			return fmt.Sprintf("User %d purchased %s %s", userID, amount, asset)
		},
		creditDesc: func(userID int64, amount, asset string) string {
			return fmt.Sprintf("Purchased %s %s", amount, asset)
		},
	}, cmd)
}
