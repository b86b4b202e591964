// Package transactionrepo manages the append-only transaction log.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/naseer6/bankapp/internal/domain"
	"github.com/naseer6/bankapp/pkg/dbpkg"
	"github.com/naseer6/bankapp/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    transactions (from_iban, to_iban, amount, type, initiated_by)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, from_iban, to_iban, amount, type, initiated_by, created_at`

// Create appends the transaction record and then returns it. Records are never
// updated or deleted afterwards.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		nullIfEmpty(arg.FromIBAN),
		nullIfEmpty(arg.ToIBAN),
		arg.Amount,
		arg.Type,
		arg.InitiatedBy,
	)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)
		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT id, from_iban, to_iban, amount, type, initiated_by, created_at
FROM transactions
WHERE id = $1`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTransaction(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT id, from_iban, to_iban, amount, type, initiated_by, created_at
FROM transactions
WHERE from_iban = $1 OR to_iban = $1
ORDER BY id DESC
LIMIT $2 OFFSET $3`

// List returns the specified page of the account's transaction history,
// newest first.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, arg.IBAN, arg.Limit, arg.Offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var (
			t        domain.Transaction
			from, to sql.NullString
		)

		if err := rows.Scan(&t.ID, &from, &to, &t.Amount, &t.Type, &t.InitiatedBy, &t.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		t.FromIBAN, t.ToIBAN = from.String, to.String

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanTransaction(row *sql.Row) (domain.Transaction, error) {
	var (
		t        domain.Transaction
		from, to sql.NullString
	)

	err := row.Scan(&t.ID, &from, &to, &t.Amount, &t.Type, &t.InitiatedBy, &t.CreatedAt)
	if err != nil {
		return t, err
	}

	t.FromIBAN, t.ToIBAN = from.String, to.String

	return t, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
