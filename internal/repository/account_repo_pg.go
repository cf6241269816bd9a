package repository

import (
	"context"
	"errors"

	"github.com/avetrov/facilityhub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AccountRepository is the credit ledger. The balance column is mutated
// only through these operations.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	Balance(ctx context.Context, id int64) (decimal.Decimal, error)
	CheckAndDeduct(ctx context.Context, id int64, amount decimal.Decimal) (bool, error)
	Refund(ctx context.Context, id int64, amount decimal.Decimal) error
	RestoreAll(ctx context.Context, amount decimal.Decimal) (int64, error)
}

type PGAccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) AccountRepository {
	return &PGAccountRepository{db: db}
}

func (r *PGAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.db.QueryRow(ctx, `INSERT INTO accounts (name, email, credit_balance)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`, account.Name, account.Email, account.CreditBalance).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *PGAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, credit_balance, created_at, updated_at FROM accounts WHERE id=$1`, id)
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.CreditBalance, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAccountRepository) Balance(ctx context.Context, id int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT credit_balance FROM accounts WHERE id=$1`, id).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	return balance, err
}

// CheckAndDeduct decrements the balance only when it covers amount. The
// condition lives inside the UPDATE itself, so two concurrent callers for
// the same account can never both observe a stale balance and overdraw it.
// Returns false when the balance was insufficient.
func (r *PGAccountRepository) CheckAndDeduct(ctx context.Context, id int64, amount decimal.Decimal) (bool, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts
		SET credit_balance = credit_balance - $1, updated_at = now()
		WHERE id = $2 AND credit_balance >= $1`, amount, id)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		// Either insufficient funds or a missing account; tell them apart
		// so the caller can report the right error.
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id=$1)`, id).Scan(&exists); err != nil {
			return false, err
		}
		if !exists {
			return false, domain.ErrAccountNotFound
		}
		return false, nil
	}
	return true, nil
}

func (r *PGAccountRepository) Refund(ctx context.Context, id int64, amount decimal.Decimal) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts
		SET credit_balance = credit_balance + $1, updated_at = now()
		WHERE id = $2`, amount, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// RestoreAll sets every balance to the weekly allotment in a single bulk
// UPDATE. Running it twice in a row leaves the same end state.
func (r *PGAccountRepository) RestoreAll(ctx context.Context, amount decimal.Decimal) (int64, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET credit_balance = $1, updated_at = now()`, amount)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

var _ AccountRepository = (*PGAccountRepository)(nil)
