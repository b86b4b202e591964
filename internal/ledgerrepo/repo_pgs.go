// Package ledgerrepo executes ledger operations as single database transactions.
//
// Every operation locks the account rows it touches, re-validates the policy
// invariants against the locked state, applies the balance mutation, updates
// the daily tracking row and appends the transaction record. All of it commits
// together or not at all; concurrent debits against one account serialize on
// the row lock, so limit checks never run on stale balances.
package ledgerrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/naseer6/bankapp/internal/accountrepo"
	"github.com/naseer6/bankapp/internal/domain"
	"github.com/naseer6/bankapp/internal/trackingrepo"
	"github.com/naseer6/bankapp/internal/transactionrepo"
	"github.com/naseer6/bankapp/pkg/errorspkg"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

// txRepos bundles the repositories bound to one transaction scope.
type txRepos struct {
	accounts     *accountrepo.RepoPGS
	totals       *trackingrepo.RepoPGS
	transactions *transactionrepo.RepoPGS
}

func newTxRepos(tx *sql.Tx) txRepos {
	return txRepos{
		accounts:     accountrepo.NewRepoPGS(tx),
		totals:       trackingrepo.NewRepoPGS(tx),
		transactions: transactionrepo.NewRepoPGS(tx),
	}
}

// DepositTx credits an account and appends the transaction record atomically.
func (r *RepoPGS) DepositTx(ctx context.Context, arg domain.DepositParams) (domain.DepositResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.DepositResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer tx.Rollback()

	repos := newTxRepos(tx)

	account, err := repos.accounts.GetForUpdate(ctx, arg.IBAN)
	if err != nil {
		return result, err
	}

	if err := domain.ValidateDeposit(account, arg.Amount, arg.Actor); err != nil {
		return result, err
	}

	result.Account, err = repos.accounts.AddBalance(ctx, arg.Amount, arg.IBAN)
	if err != nil {
		return result, err
	}

	result.Transaction, err = repos.transactions.Create(ctx, domain.CreateTransactionParams{
		ToIBAN:      arg.IBAN,
		Amount:      arg.Amount,
		Type:        arg.Type,
		InitiatedBy: arg.Actor.Username,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

// WithdrawTx debits an account, records the amount against today's total and
// appends the transaction record atomically.
func (r *RepoPGS) WithdrawTx(ctx context.Context, arg domain.WithdrawParams) (domain.WithdrawResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.WithdrawResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer tx.Rollback()

	repos := newTxRepos(tx)

	account, err := repos.accounts.GetForUpdate(ctx, arg.IBAN)
	if err != nil {
		return result, err
	}

	today, err := repos.totals.Get(ctx, account.ID, arg.Date)
	if err != nil {
		return result, err
	}

	if err := domain.ValidateWithdrawal(account, today, arg.Amount, arg.Actor); err != nil {
		return result, err
	}

	result.Account, err = repos.accounts.AddBalance(ctx, arg.Amount.Neg(), arg.IBAN)
	if err != nil {
		return result, err
	}

	newTotal, err := repos.totals.Add(ctx, account.ID, arg.Date, arg.Amount)
	if err != nil {
		return result, err
	}

	result.Transaction, err = repos.transactions.Create(ctx, domain.CreateTransactionParams{
		FromIBAN:    arg.IBAN,
		Amount:      arg.Amount,
		Type:        arg.Type,
		InitiatedBy: arg.Actor.Username,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result.RemainingDailyLimit = newTotal.Remaining(account.DailyLimit)

	return result, nil
}

// TransferTx moves funds between two accounts atomically: debit, credit,
// daily-total update and transaction record in one commit.
func (r *RepoPGS) TransferTx(ctx context.Context, arg domain.TransferParams) (domain.TransferResult, error) {
	return r.transferTx(ctx, arg, domain.TransactionTransfer)
}

// InternalTransferTx moves funds between two accounts of one owner. The amount
// is exempt from daily tracking; the absolute-limit floor still applies.
func (r *RepoPGS) InternalTransferTx(ctx context.Context, arg domain.TransferParams) (domain.TransferResult, error) {
	return r.transferTx(ctx, arg, domain.TransactionInternalTransfer)
}

func (r *RepoPGS) transferTx(ctx context.Context, arg domain.TransferParams, kind domain.TransactionType) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferResult

	// Equal IBANs would double-lock one row; reject before locking.
	if arg.FromIBAN == arg.ToIBAN {
		return result, domain.ErrSameAccountTransfer
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer tx.Rollback()

	repos := newTxRepos(tx)

	from, to, err := lockAccountPair(ctx, repos.accounts, arg.FromIBAN, arg.ToIBAN)
	if err != nil {
		return result, err
	}

	today, err := repos.totals.Get(ctx, from.ID, arg.Date)
	if err != nil {
		return result, err
	}

	if kind == domain.TransactionInternalTransfer {
		err = domain.ValidateInternalTransfer(from, to, arg.Amount, arg.Actor)
	} else {
		err = domain.ValidateTransfer(from, to, today, arg.Amount, arg.Actor)
	}

	if err != nil {
		return result, err
	}

	result.FromAccount, err = repos.accounts.AddBalance(ctx, arg.Amount.Neg(), arg.FromIBAN)
	if err != nil {
		return result, err
	}

	result.ToAccount, err = repos.accounts.AddBalance(ctx, arg.Amount, arg.ToIBAN)
	if err != nil {
		return result, err
	}

	newTotal := today
	if kind != domain.TransactionInternalTransfer {
		newTotal, err = repos.totals.Add(ctx, from.ID, arg.Date, arg.Amount)
		if err != nil {
			return result, err
		}
	}

	result.Transaction, err = repos.transactions.Create(ctx, domain.CreateTransactionParams{
		FromIBAN:    arg.FromIBAN,
		ToIBAN:      arg.ToIBAN,
		Amount:      arg.Amount,
		Type:        kind,
		InitiatedBy: arg.Actor.Username,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result.RemainingDailyLimit = newTotal.Remaining(from.DailyLimit)

	return result, nil
}

// UpdateLimitsTx changes an account's limit configuration after validating it
// against the locked balance.
func (r *RepoPGS) UpdateLimitsTx(ctx context.Context, arg domain.UpdateLimitsParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var updated domain.Account

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return updated, errorspkg.ErrInternal
	}
	defer tx.Rollback()

	accounts := accountrepo.NewRepoPGS(tx)

	account, err := accounts.GetForUpdate(ctx, arg.IBAN)
	if err != nil {
		return updated, err
	}

	if err := domain.ValidateLimitUpdate(account, arg.AbsoluteLimit, arg.DailyLimit, arg.Actor); err != nil {
		return updated, err
	}

	updated, err = accounts.UpdateLimits(ctx, arg.IBAN, arg.AbsoluteLimit, arg.DailyLimit)
	if err != nil {
		return updated, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	return updated, nil
}

// lockAccountPair takes both row locks in lexical IBAN order so two opposing
// transfers cannot deadlock.
func lockAccountPair(ctx context.Context, accounts *accountrepo.RepoPGS, fromIBAN, toIBAN string) (domain.Account, domain.Account, error) {
	var from, to domain.Account

	var err error

	if fromIBAN < toIBAN {
		from, err = accounts.GetForUpdate(ctx, fromIBAN)
		if err != nil {
			return from, to, err
		}

		to, err = accounts.GetForUpdate(ctx, toIBAN)
	} else {
		to, err = accounts.GetForUpdate(ctx, toIBAN)
		if err != nil {
			return from, to, err
		}

		from, err = accounts.GetForUpdate(ctx, fromIBAN)
	}

	return from, to, err
}
