// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/naseer6/bankapp/internal/domain"
	"github.com/naseer6/bankapp/pkg/configpkg"
	"github.com/naseer6/bankapp/pkg/randompkg"
)

// Fallback limit configuration for newly provisioned accounts.
const (
	defaultAbsoluteLimit = "0"
	defaultDailyLimit    = "1000"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, iban string) (domain.Account, error)
	List(ctx context.Context, owner string, limit, offset int32) ([]domain.Account, error)
	Close(ctx context.Context, iban string) (domain.Account, error)
}

// TrackingRepo provides read access to daily transfer totals.
type TrackingRepo interface {
	Get(ctx context.Context, accountID int64, date string) (domain.DailyTotal, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo          Repo
	tracking      TrackingRepo
	absoluteLimit decimal.Decimal
	dailyLimit    decimal.Decimal
}

// New returns account service struct to manage account business logic.
// Default limits for new accounts come from the configuration.
func New(ar Repo, tr TrackingRepo, config configpkg.Config) (*Service, error) {
	absolute := config.DefaultAbsoluteLimit
	if absolute == "" {
		absolute = defaultAbsoluteLimit
	}

	daily := config.DefaultDailyLimit
	if daily == "" {
		daily = defaultDailyLimit
	}

	absoluteDec, err := decimal.NewFromString(absolute)
	if err != nil {
		return nil, err
	}

	dailyDec, err := decimal.NewFromString(daily)
	if err != nil {
		return nil, err
	}

	return &Service{
		repo:          ar,
		tracking:      tr,
		absoluteLimit: absoluteDec,
		dailyLimit:    dailyDec,
	}, nil
}

// Create provisions an account of the given type for the owner. Staff only.
// The IBAN is generated here; a collision on the unique constraint is retried once.
func (s *Service) Create(ctx context.Context, owner string, accountType domain.AccountType, actor domain.Actor) (domain.Account, error) {
	if !actor.IsStaff() {
		return domain.Account{}, domain.ErrPermissionDenied
	}

	arg := domain.CreateAccountParams{
		IBAN:          randompkg.IBAN(),
		Owner:         owner,
		Type:          accountType,
		Balance:       decimal.Zero,
		AbsoluteLimit: s.absoluteLimit,
		DailyLimit:    s.dailyLimit,
	}

	account, err := s.repo.Create(ctx, arg)
	if err == domain.ErrIBANAlreadyExists {
		arg.IBAN = randompkg.IBAN()
		account, err = s.repo.Create(ctx, arg)
	}

	return account, err
}

// Get returns the account with the given IBAN, subject to the ownership rule.
func (s *Service) Get(ctx context.Context, iban string, actor domain.Actor) (domain.Account, error) {
	account, err := s.repo.Get(ctx, iban)
	if err != nil {
		return account, err
	}

	if !actor.CanAccess(account.Owner) {
		return domain.Account{}, domain.ErrAccountOwnerMismatch
	}

	return account, nil
}

// Summary returns the balance and limit state of the account as of the given
// time. Reading never mutates anything.
func (s *Service) Summary(ctx context.Context, iban string, actor domain.Actor, asOf time.Time) (domain.AccountSummary, error) {
	account, err := s.Get(ctx, iban, actor)
	if err != nil {
		return domain.AccountSummary{}, err
	}

	today, err := s.tracking.Get(ctx, account.ID, domain.Date(asOf))
	if err != nil {
		return domain.AccountSummary{}, err
	}

	return domain.AccountSummary{
		IBAN:                account.IBAN,
		Type:                account.Type,
		Balance:             account.Balance,
		AvailableBalance:    account.AvailableBalance(),
		DailyLimit:          account.DailyLimit,
		RemainingDailyLimit: today.Remaining(account.DailyLimit),
	}, nil
}

// List returns accounts that are owned by the given user.
func (s *Service) List(ctx context.Context, owner string, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, owner, limit, offset)
}

// Close flags the account inactive. The balance must be zero; accounts are
// never deleted.
func (s *Service) Close(ctx context.Context, iban string, actor domain.Actor) (domain.Account, error) {
	account, err := s.Get(ctx, iban, actor)
	if err != nil {
		return domain.Account{}, err
	}

	if !account.Active {
		return domain.Account{}, domain.ErrAccountInactive
	}

	return s.repo.Close(ctx, iban)
}
