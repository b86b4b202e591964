package userdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"

	"github.com/naseer6/bankapp/internal/domain"
	"github.com/naseer6/bankapp/internal/middleware"
	"github.com/naseer6/bankapp/pkg/errorspkg"
	"github.com/naseer6/bankapp/pkg/randompkg"
	"github.com/naseer6/bankapp/pkg/tokenpkg"
	"github.com/naseer6/bankapp/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func randomUser() domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		Username:  randompkg.Owner(),
		FullName:  randompkg.String(10),
		Email:     randompkg.Email(),
		Role:      domain.RoleCustomer,
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestServer(t *testing.T, tokenMaker tokenpkg.Maker) (*gin.Engine, *MockService, *MockSessionMaker) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	service := NewMockService(ctrl)
	sessionMaker := NewMockSessionMaker(ctrl)
	handler := NewHandler(service, sessionMaker)

	server := gin.New()
	server.POST("/users", handler.Create)
	server.POST("/users/login", handler.Login)

	auth := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker))
	auth.GET("/users", handler.List)
	auth.POST("/users/:username/approve", handler.Approve)

	return server, service, sessionMaker
}

func TestCreate(t *testing.T) {
	user := randomUser()
	password := randompkg.String(10)

	session := domain.Session{
		Username:     user.Username,
		RefreshToken: randompkg.String(20),
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker() returned error: %v", err)
	}

	type requestBody struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"fullname"`
		Email    string `json:"email"`
	}

	body := requestBody{
		Username: user.Username,
		Password: password,
		FullName: user.FullName,
		Email:    user.Email,
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(service *MockService, sessionMaker *MockSessionMaker)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "OK",
			requestBody: body,
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(user.Username), gomock.Eq(password),
						gomock.Eq(user.FullName), gomock.Eq(user.Email)).
					Times(1).
					Return(user, nil)

				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return("access-token", time.Now().Add(time.Minute), session, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidEmail",
			requestBody: requestBody{
				Username: user.Username,
				Password: password,
				FullName: user.FullName,
				Email:    "not-an-email",
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Email must be a valid email address",
		},
		{
			name: "ShortPassword",
			requestBody: requestBody{
				Username: user.Username,
				Password: "short",
				FullName: user.FullName,
				Email:    user.Email,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Password is too short or too small",
		},
		{
			name:        "UsernameTaken",
			requestBody: body,
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(user.Username), gomock.Eq(password),
						gomock.Eq(user.FullName), gomock.Eq(user.Email)).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUsernameAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrUsernameAlreadyExists.Error(),
		},
		{
			name:        "EmailTaken",
			requestBody: body,
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(user.Username), gomock.Eq(password),
						gomock.Eq(user.FullName), gomock.Eq(user.Email)).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrEmailAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrEmailAlreadyExists.Error(),
		},
		{
			name:        "SessionError",
			requestBody: body,
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(user.Username), gomock.Eq(password),
						gomock.Eq(user.FullName), gomock.Eq(user.Email)).
					Times(1).
					Return(user, nil)

				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return("", time.Time{}, domain.Session{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server, service, sessionMaker := newTestServer(t, tokenMaker)
			tc.buildStubs(service, sessionMaker)

			payload, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/users", bytes.NewReader(payload))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &userData{}}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf("resp.Error=%q, want %q", res.Error, tc.wantError)
				}

				return
			}

			if res.AccessToken == "" || res.RefreshToken == "" {
				t.Error("session tokens missing from response")
			}

			got, ok := res.Data.(*userData)
			if !ok {
				t.Fatalf("res.Data=%v, failed type conversion", res.Data)
			}

			compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
			if diff := cmp.Diff(user, got.User, compareCreatedAt); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	user := randomUser()
	password := randompkg.String(10)

	session := domain.Session{
		Username:     user.Username,
		RefreshToken: randompkg.String(20),
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker() returned error: %v", err)
	}

	testCases := []struct {
		name           string
		buildStubs     func(service *MockService, sessionMaker *MockSessionMaker)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Eq(user.Username), gomock.Eq(password)).
					Times(1).
					Return(user, nil)

				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return("access-token", time.Now().Add(time.Minute), session, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "UserNotFound",
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Eq(user.Username), gomock.Eq(password)).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUserNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrUserNotFound.Error(),
		},
		{
			name: "WrongPassword",
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Eq(user.Username), gomock.Eq(password)).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrWrongPassword)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrWrongPassword.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server, service, sessionMaker := newTestServer(t, tokenMaker)
			tc.buildStubs(service, sessionMaker)

			payload, err := json.Marshal(gin.H{"username": user.Username, "password": password})
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(payload))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			var res web.Response
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if res.Error != tc.wantError {
				t.Errorf("resp.Error=%q, want %q", res.Error, tc.wantError)
			}
		})
	}
}

func TestApprove(t *testing.T) {
	user := randomUser()
	employee := randompkg.Owner()

	approved := user
	approved.Approved = true

	accounts := []domain.Account{
		{
			ID:         1,
			IBAN:       randompkg.IBAN(),
			Owner:      user.Username,
			Type:       domain.Checking,
			Balance:    decimal.Zero,
			DailyLimit: decimal.NewFromInt(500),
			Active:     true,
		},
		{
			ID:         2,
			IBAN:       randompkg.IBAN(),
			Owner:      user.Username,
			Type:       domain.Savings,
			Balance:    decimal.Zero,
			DailyLimit: decimal.NewFromInt(500),
			Active:     true,
		},
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker() returned error: %v", err)
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	testCases := []struct {
		name           string
		actorUsername  string
		actorRole      domain.Role
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:          "OK",
			actorUsername: employee,
			actorRole:     domain.RoleEmployee,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Approve(gomock.Any(), gomock.Eq(user.Username),
						gomock.Eq(domain.Actor{Username: employee, Role: domain.RoleEmployee})).
					Times(1).
					Return(approved, accounts, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:          "CustomerDenied",
			actorUsername: user.Username,
			actorRole:     domain.RoleCustomer,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Approve(gomock.Any(), gomock.Eq(user.Username), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, nil, domain.ErrPermissionDenied)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrPermissionDenied.Error(),
		},
		{
			name:          "NotFound",
			actorUsername: employee,
			actorRole:     domain.RoleEmployee,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Approve(gomock.Any(), gomock.Eq(user.Username), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, nil, domain.ErrUserNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrUserNotFound.Error(),
		},
		{
			name:          "AlreadyApproved",
			actorUsername: employee,
			actorRole:     domain.RoleEmployee,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Approve(gomock.Any(), gomock.Eq(user.Username), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, nil, domain.ErrUserAlreadyApproved)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrUserAlreadyApproved.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server, service, _ := newTestServer(t, tokenMaker)
			tc.buildStubs(service)

			url := fmt.Sprintf("/users/%s/approve", user.Username)
			req, err := http.NewRequest(http.MethodPost, url, nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err := middleware.AddAuthorization(req, tokenMaker, authType, tc.actorUsername, tc.actorRole, duration); err != nil {
				t.Fatalf("middleware.AddAuthorization() returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &approveData{}}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf("resp.Error=%q, want %q", res.Error, tc.wantError)
				}

				return
			}

			got, ok := res.Data.(*approveData)
			if !ok {
				t.Fatalf("res.Data=%v, failed type conversion", res.Data)
			}

			if !got.User.Approved {
				t.Error("approved user flag not set in response")
			}

			compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
			if diff := cmp.Diff(accounts, got.Accounts, compareCreatedAt); diff != "" {
				t.Errorf("res.Data accounts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList(t *testing.T) {
	employee := randompkg.Owner()
	users := []domain.UserWithoutPassword{randomUser(), randomUser()}

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker() returned error: %v", err)
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	testCases := []struct {
		name           string
		url            string
		actorRole      domain.Role
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:      "OK",
			url:       "/users?page_id=1&page_size=10",
			actorRole: domain.RoleEmployee,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					List(gomock.Any(),
						gomock.Eq(domain.Actor{Username: employee, Role: domain.RoleEmployee}),
						gomock.Eq(int32(10)), gomock.Eq(int32(1))).
					Times(1).
					Return(users, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:      "CustomerDenied",
			url:       "/users?page_id=1&page_size=10",
			actorRole: domain.RoleCustomer,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, domain.ErrPermissionDenied)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrPermissionDenied.Error(),
		},
		{
			name:      "InvalidPageSize",
			url:       "/users?page_id=1&page_size=500",
			actorRole: domain.RoleEmployee,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "PageSize is too long or too large",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server, service, _ := newTestServer(t, tokenMaker)
			tc.buildStubs(service)

			req, err := http.NewRequest(http.MethodGet, tc.url, nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err := middleware.AddAuthorization(req, tokenMaker, authType, employee, tc.actorRole, duration); err != nil {
				t.Fatalf("middleware.AddAuthorization() returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &usersData{}}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf("resp.Error=%q, want %q", res.Error, tc.wantError)
				}

				return
			}

			got, ok := res.Data.(*usersData)
			if !ok {
				t.Fatalf("res.Data=%v, failed type conversion", res.Data)
			}

			compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
			if diff := cmp.Diff(users, got.Users, compareCreatedAt); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
