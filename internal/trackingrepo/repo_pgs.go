// Package trackingrepo manages repository layer of daily transfer totals.
package trackingrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/naseer6/bankapp/internal/domain"
	"github.com/naseer6/bankapp/pkg/dbpkg"
	"github.com/naseer6/bankapp/pkg/errorspkg"
)

// RepoPGS facilitates daily-total repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns daily-total RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const getQuery = `
SELECT account_id, transfer_date, total_transferred
FROM daily_totals
WHERE account_id = $1 AND transfer_date = $2`

// Get returns the accumulated total for the given account and date.
// A missing row is a zero total, not an error; rows appear lazily on the first
// debit of the day.
func (r *RepoPGS) Get(ctx context.Context, accountID int64, date string) (domain.DailyTotal, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, accountID, date)

	d, err := scanDailyTotal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.DailyTotal{
				AccountID:        accountID,
				Date:             date,
				TotalTransferred: decimal.Zero,
			}, nil
		}

		l.Error().Err(err).Send()

		return d, errorspkg.ErrInternal
	}

	return d, nil
}

const addQuery = `
INSERT INTO daily_totals (account_id, transfer_date, total_transferred)
VALUES ($1, $2, $3)
ON CONFLICT (account_id, transfer_date)
DO UPDATE SET total_transferred = daily_totals.total_transferred + EXCLUDED.total_transferred
RETURNING account_id, transfer_date, total_transferred`

// Add records amount against the account's total for the date and returns the
// new total. The upsert keeps at most one row per (account, date).
func (r *RepoPGS) Add(ctx context.Context, accountID int64, date string, amount decimal.Decimal) (domain.DailyTotal, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addQuery, accountID, date, amount)

	d, err := scanDailyTotal(row)
	if err != nil {
		l.Error().Err(err).Send()
		return d, errorspkg.ErrInternal
	}

	return d, nil
}

// scanDailyTotal reads a daily_totals row; the DATE column arrives as time.Time
// and is normalized back to the tracking date string.
func scanDailyTotal(row *sql.Row) (domain.DailyTotal, error) {
	var (
		d    domain.DailyTotal
		date time.Time
	)

	if err := row.Scan(&d.AccountID, &date, &d.TotalTransferred); err != nil {
		return d, err
	}

	d.Date = date.Format(domain.DateLayout)

	return d, nil
}
