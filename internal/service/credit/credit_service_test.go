package credit

import (
	"context"
	"testing"

	"github.com/avetrov/facilityhub/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Balance(ctx context.Context, id int64) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) CheckAndDeduct(ctx context.Context, id int64, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, id, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Refund(ctx context.Context, id int64, amount decimal.Decimal) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) RestoreAll(ctx context.Context, amount decimal.Decimal) (int64, error) {
	args := m.Called(ctx, amount)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreditService_Register_StartsWithAllowance(t *testing.T) {
	repo := &MockAccountRepository{}
	service := NewCreditService(repo, decimal.NewFromInt(300))

	ctx := context.Background()
	repo.On("Create", ctx, mock.MatchedBy(func(a *domain.Account) bool {
		return a.CreditBalance.Equal(decimal.NewFromInt(300))
	})).Return(nil).Once()

	account, err := service.Register(ctx, RegisterInput{Name: "Sam", Email: "sam@example.com"})

	assert.NoError(t, err)
	assert.True(t, account.CreditBalance.Equal(decimal.NewFromInt(300)))
	repo.AssertExpectations(t)
}

func TestCreditService_RestoreWeeklyAllowance(t *testing.T) {
	repo := &MockAccountRepository{}
	service := NewCreditService(repo, decimal.NewFromInt(300))

	ctx := context.Background()
	repo.On("RestoreAll", ctx, decimal.NewFromInt(300)).Return(int64(42), nil).Once()

	restored, err := service.RestoreWeeklyAllowance(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), restored)
}

// Running the restoration twice must leave the same end state as once: the
// reset writes the same fixed amount, so the second run is a no-op in
// effect.
func TestCreditService_RestoreWeeklyAllowance_Idempotent(t *testing.T) {
	repo := &MockAccountRepository{}
	service := NewCreditService(repo, decimal.NewFromInt(300))

	ctx := context.Background()
	repo.On("RestoreAll", ctx, decimal.NewFromInt(300)).Return(int64(42), nil).Twice()

	_, err := service.RestoreWeeklyAllowance(ctx)
	assert.NoError(t, err)
	_, err = service.RestoreWeeklyAllowance(ctx)
	assert.NoError(t, err)

	// Both runs requested the identical fixed amount.
	repo.AssertNumberOfCalls(t, "RestoreAll", 2)
}

func TestCreditService_Balance(t *testing.T) {
	repo := &MockAccountRepository{}
	service := NewCreditService(repo, decimal.NewFromInt(300))

	ctx := context.Background()
	repo.On("Balance", ctx, int64(7)).Return(decimal.NewFromFloat(120.5), nil).Once()

	balance, err := service.Balance(ctx, 7)

	assert.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromFloat(120.5)))
}
