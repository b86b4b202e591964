package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/naseer6/bankapp/internal/domain"
	"github.com/naseer6/bankapp/pkg/configpkg"
	"github.com/naseer6/bankapp/pkg/errorspkg"
)

var testConfig = configpkg.Config{
	DefaultAbsoluteLimit: "0",
	DefaultDailyLimit:    "500",
}

func newTestService(t *testing.T, repo *MockRepo, tracking *MockTrackingRepo) *Service {
	t.Helper()

	service, err := New(repo, tracking, testConfig)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	return service
}

func TestCreate(t *testing.T) {
	t.Parallel()

	owner := "alice"
	employee := domain.Actor{Username: "teller", Role: domain.RoleEmployee}

	want := domain.Account{
		ID:         1,
		IBAN:       "NL01BANK0000000001",
		Owner:      owner,
		Type:       domain.Checking,
		DailyLimit: decimal.NewFromInt(500),
		Active:     true,
	}

	testCases := []struct {
		name       string
		actor      domain.Actor
		buildStubs func(repo *MockRepo)
		wantError  error
	}{
		{
			name:  "OK",
			actor: employee,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.AssignableToTypeOf(domain.CreateAccountParams{})).
					Times(1).
					Return(want, nil)
			},
		},
		{
			name:  "CustomerDenied",
			actor: domain.Actor{Username: owner, Role: domain.RoleCustomer},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrPermissionDenied,
		},
		{
			name:  "IBANCollisionRetried",
			actor: employee,
			buildStubs: func(repo *MockRepo) {
				first := repo.EXPECT().
					Create(gomock.Any(), gomock.AssignableToTypeOf(domain.CreateAccountParams{})).
					Times(1).
					Return(domain.Account{}, domain.ErrIBANAlreadyExists)
				repo.EXPECT().
					Create(gomock.Any(), gomock.AssignableToTypeOf(domain.CreateAccountParams{})).
					Times(1).
					After(first).
					Return(want, nil)
			},
		},
		{
			name:  "OwnerNotFound",
			actor: employee,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.AssignableToTypeOf(domain.CreateAccountParams{})).
					Times(1).
					Return(domain.Account{}, domain.ErrOwnerNotFound)
			},
			wantError: domain.ErrOwnerNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := newTestService(t, repo, NewMockTrackingRepo(ctrl))

			got, err := service.Create(context.Background(), owner, domain.Checking, tc.actor)
			if err != tc.wantError {
				t.Fatalf("Create() error = %v, want %v", err, tc.wantError)
			}

			if err != nil {
				return
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("account returned unexpected diff: %s", diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	account := domain.Account{
		ID:     1,
		IBAN:   "NL01BANK0000000001",
		Owner:  "alice",
		Type:   domain.Checking,
		Active: true,
	}

	testCases := []struct {
		name       string
		actor      domain.Actor
		buildStubs func(repo *MockRepo)
		wantError  error
	}{
		{
			name:  "OwnerOK",
			actor: domain.Actor{Username: "alice", Role: domain.RoleCustomer},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.IBAN)).
					Times(1).
					Return(account, nil)
			},
		},
		{
			name:  "StaffOK",
			actor: domain.Actor{Username: "teller", Role: domain.RoleEmployee},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.IBAN)).
					Times(1).
					Return(account, nil)
			},
		},
		{
			name:  "ForeignCustomerDenied",
			actor: domain.Actor{Username: "bob", Role: domain.RoleCustomer},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.IBAN)).
					Times(1).
					Return(account, nil)
			},
			wantError: domain.ErrAccountOwnerMismatch,
		},
		{
			name:  "NotFound",
			actor: domain.Actor{Username: "alice", Role: domain.RoleCustomer},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.IBAN)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantError: domain.ErrAccountNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := newTestService(t, repo, NewMockTrackingRepo(ctrl))

			_, err := service.Get(context.Background(), account.IBAN, tc.actor)
			if err != tc.wantError {
				t.Errorf("Get() error = %v, want %v", err, tc.wantError)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)

	account := domain.Account{
		ID:            1,
		IBAN:          "NL01BANK0000000001",
		Owner:         "alice",
		Type:          domain.Checking,
		Balance:       decimal.NewFromInt(1000),
		AbsoluteLimit: decimal.NewFromInt(100),
		DailyLimit:    decimal.NewFromInt(500),
		Active:        true,
	}

	actor := domain.Actor{Username: "alice", Role: domain.RoleCustomer}

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo, tracking *MockTrackingRepo)
		want       domain.AccountSummary
		wantError  error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, tracking *MockTrackingRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.IBAN)).
					Times(1).
					Return(account, nil)
				tracking.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID), gomock.Eq("2024-05-01")).
					Times(1).
					Return(domain.DailyTotal{
						AccountID:        account.ID,
						Date:             "2024-05-01",
						TotalTransferred: decimal.NewFromInt(450),
					}, nil)
			},
			want: domain.AccountSummary{
				IBAN:                account.IBAN,
				Type:                domain.Checking,
				Balance:             decimal.NewFromInt(1000),
				AvailableBalance:    decimal.NewFromInt(900),
				DailyLimit:          decimal.NewFromInt(500),
				RemainingDailyLimit: decimal.NewFromInt(50),
			},
		},
		{
			name: "TrackingError",
			buildStubs: func(repo *MockRepo, tracking *MockTrackingRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.IBAN)).
					Times(1).
					Return(account, nil)
				tracking.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID), gomock.Eq("2024-05-01")).
					Times(1).
					Return(domain.DailyTotal{}, errorspkg.ErrInternal)
			},
			wantError: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tracking := NewMockTrackingRepo(ctrl)
			tc.buildStubs(repo, tracking)

			service := newTestService(t, repo, tracking)

			got, err := service.Summary(context.Background(), account.IBAN, actor, asOf)
			if err != tc.wantError {
				t.Fatalf("Summary() error = %v, want %v", err, tc.wantError)
			}

			if err != nil {
				return
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("summary returned unexpected diff: %s", diff)
			}
		})
	}
}

func TestClose(t *testing.T) {
	t.Parallel()

	account := domain.Account{
		ID:     1,
		IBAN:   "NL01BANK0000000001",
		Owner:  "alice",
		Active: true,
	}

	closed := account
	closed.Active = false

	actor := domain.Actor{Username: "alice", Role: domain.RoleCustomer}

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo)
		wantError  error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.IBAN)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().
					Close(gomock.Any(), gomock.Eq(account.IBAN)).
					Times(1).
					Return(closed, nil)
			},
		},
		{
			name: "AlreadyInactive",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.IBAN)).
					Times(1).
					Return(closed, nil)
				repo.EXPECT().Close(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrAccountInactive,
		},
		{
			name: "BalanceNotZero",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.IBAN)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().
					Close(gomock.Any(), gomock.Eq(account.IBAN)).
					Times(1).
					Return(domain.Account{}, domain.ErrBalanceNotZero)
			},
			wantError: domain.ErrBalanceNotZero,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := newTestService(t, repo, NewMockTrackingRepo(ctrl))

			_, err := service.Close(context.Background(), account.IBAN, actor)
			if err != tc.wantError {
				t.Errorf("Close() error = %v, want %v", err, tc.wantError)
			}
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().
		List(gomock.Any(), gomock.Eq("alice"), gomock.Eq(int32(10)), gomock.Eq(int32(20))).
		Times(1).
		Return([]domain.Account{}, nil)

	service := newTestService(t, repo, NewMockTrackingRepo(ctrl))

	if _, err := service.List(context.Background(), "alice", 10, 3); err != nil {
		t.Errorf("List() returned unexpected error: %v", err)
	}
}
