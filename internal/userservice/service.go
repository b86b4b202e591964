// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/naseer6/bankapp/internal/domain"
	"github.com/naseer6/bankapp/pkg/errorspkg"
	"github.com/naseer6/bankapp/pkg/passpkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, username string) (domain.User, error)
	SetApproved(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context, limit, offset int32) ([]domain.User, error)
}

// AccountProvisioner creates the accounts handed to a user on approval.
type AccountProvisioner interface {
	Create(ctx context.Context, owner string, accountType domain.AccountType, actor domain.Actor) (domain.Account, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo     Repo
	accounts AccountProvisioner
}

// New returns user service struct to manage user business logic.
func New(ur Repo, ap AccountProvisioner) *Service {
	return &Service{
		repo:     ur,
		accounts: ap,
	}
}

// NewUserWithoutPassword returns user with removed sensitive data.
func NewUserWithoutPassword(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Approved:  u.Approved,
		CreatedAt: u.CreatedAt,
	}
}

// Create registers a customer. New users start unapproved and hold no accounts
// until an employee approves them.
func (s *Service) Create(ctx context.Context, username, password, fullname, email string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		FullName:       fullname,
		Email:          email,
		Role:           domain.RoleCustomer,
	}

	gotUser, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	return NewUserWithoutPassword(gotUser), nil
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, pass string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWithoutPassword

	gotUser, err := s.repo.Get(ctx, username)
	if err != nil {
		return response, err
	}

	err = passpkg.Check(pass, gotUser.HashedPassword)
	if err != nil {
		l.Warn().Err(err).Send()
		return response, domain.ErrWrongPassword
	}

	return NewUserWithoutPassword(gotUser), nil
}

// Approve marks the user approved and provisions one checking and one savings
// account with the configured default limits. Staff only.
func (s *Service) Approve(ctx context.Context, username string, actor domain.Actor) (domain.UserWithoutPassword, []domain.Account, error) {
	var result domain.UserWithoutPassword

	if !actor.IsStaff() {
		return result, nil, domain.ErrPermissionDenied
	}

	gotUser, err := s.repo.Get(ctx, username)
	if err != nil {
		return result, nil, err
	}

	if gotUser.Approved {
		return result, nil, domain.ErrUserAlreadyApproved
	}

	approved, err := s.repo.SetApproved(ctx, username)
	if err != nil {
		return result, nil, err
	}

	accounts := make([]domain.Account, 0, 2)

	for _, accountType := range []domain.AccountType{domain.Checking, domain.Savings} {
		account, err := s.accounts.Create(ctx, username, accountType, actor)
		if err != nil {
			return result, nil, err
		}

		accounts = append(accounts, account)
	}

	return NewUserWithoutPassword(approved), accounts, nil
}

// List returns the specified page of users. Staff only.
func (s *Service) List(ctx context.Context, actor domain.Actor, pageSize, pageID int32) ([]domain.UserWithoutPassword, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrPermissionDenied
	}

	limit := pageSize
	offset := (pageID - 1) * pageSize

	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]domain.UserWithoutPassword, 0, len(users))
	for _, u := range users {
		result = append(result, NewUserWithoutPassword(u))
	}

	return result, nil
}
