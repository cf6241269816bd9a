package credit

import (
	"context"

	"github.com/avetrov/facilityhub/internal/domain"
	"github.com/avetrov/facilityhub/internal/repository"
	"github.com/shopspring/decimal"
)

type CreditUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Balance(ctx context.Context, accountID int64) (decimal.Decimal, error)
	RestoreWeeklyAllowance(ctx context.Context) (int64, error)
}

type RegisterInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreditService struct {
	accounts  repository.AccountRepository
	allowance decimal.Decimal
}

// NewCreditService takes the weekly allowance every account is created
// with and reset to.
func NewCreditService(accounts repository.AccountRepository, allowance decimal.Decimal) *CreditService {
	return &CreditService{accounts: accounts, allowance: allowance}
}

func (s *CreditService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	account := &domain.Account{
		Name:          input.Name,
		Email:         input.Email,
		CreditBalance: s.allowance,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *CreditService) Balance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	return s.accounts.Balance(ctx, accountID)
}

// RestoreWeeklyAllowance is the parameterless entry point the weekly timer
// fires. One bulk update, idempotent per run, no booking-path lock.
func (s *CreditService) RestoreWeeklyAllowance(ctx context.Context) (int64, error) {
	return s.accounts.RestoreAll(ctx, s.allowance)
}

var _ CreditUseCase = (*CreditService)(nil)
