// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/naseer6/bankapp/internal/domain"
	"github.com/naseer6/bankapp/pkg/dbpkg"
	"github.com/naseer6/bankapp/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const accountColumns = `id, iban, owner, type, balance, absolute_limit, daily_limit, active, created_at`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.IBAN,
		&a.Owner,
		&a.Type,
		&a.Balance,
		&a.AbsoluteLimit,
		&a.DailyLimit,
		&a.Active,
		&a.CreatedAt,
	)

	return a, err
}

const createQuery = `
INSERT INTO
    accounts (iban, owner, type, balance, absolute_limit, daily_limit)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING ` + accountColumns

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.IBAN,
		arg.Owner,
		arg.Type,
		arg.Balance,
		arg.AbsoluteLimit,
		arg.DailyLimit,
	)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_owner_fkey":
				return a, domain.ErrOwnerNotFound
			case "accounts_iban_key":
				return a, domain.ErrIBANAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE iban = $1`

// Get returns the account with the given IBAN.
func (r *RepoPGS) Get(ctx context.Context, iban string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, iban))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getForUpdateQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE iban = $1
FOR UPDATE`

// GetForUpdate returns the account with the given IBAN and takes a row lock on it.
// Must run inside a transaction; the lock serializes concurrent debits so limit
// checks never act on stale balances.
func (r *RepoPGS) GetForUpdate(ctx context.Context, iban string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getForUpdateQuery, iban))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE iban = $2
RETURNING ` + accountColumns

// AddBalance changes the account's balance and returns the changed account.
// A negative amount debits the account; the table's balance check backs up the
// absolute-limit validation already done under the row lock.
func (r *RepoPGS) AddBalance(ctx context.Context, amount decimal.Decimal, iban string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, addBalanceQuery, amount, iban))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_absolute_check" {
				return a, domain.ErrAbsoluteLimitExceeded
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const updateLimitsQuery = `
UPDATE accounts
SET absolute_limit = $1, daily_limit = $2
WHERE iban = $3
RETURNING ` + accountColumns

// UpdateLimits persists a new limit configuration without touching the balance.
func (r *RepoPGS) UpdateLimits(ctx context.Context, iban string, absoluteLimit, dailyLimit decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, updateLimitsQuery, absoluteLimit, dailyLimit, iban))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const closeQuery = `
UPDATE accounts
SET active = FALSE
WHERE iban = $1 AND balance = 0
RETURNING ` + accountColumns

// Close flags the account inactive. Accounts are never deleted; the update only
// matches when the balance is zero.
func (r *RepoPGS) Close(ctx context.Context, iban string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, closeQuery, iban))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrBalanceNotZero
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE owner = $1
ORDER BY id
LIMIT $2 OFFSET $3`

// List returns the specified number of accounts for the given owner.
func (r *RepoPGS) List(ctx context.Context, owner string, limit, offset int32) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, owner, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID,
			&a.IBAN,
			&a.Owner,
			&a.Type,
			&a.Balance,
			&a.AbsoluteLimit,
			&a.DailyLimit,
			&a.Active,
			&a.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
