// Package ledgerdelivery manages delivery layer of ledger operations.
package ledgerdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/naseer6/bankapp/internal/domain"
	"github.com/naseer6/bankapp/internal/middleware"
	"github.com/naseer6/bankapp/pkg/errorspkg"
	"github.com/naseer6/bankapp/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Deposit(ctx context.Context, iban, amount string, actor domain.Actor, asOf time.Time, atm bool) (domain.DepositResult, error)
	Withdraw(ctx context.Context, iban, amount string, actor domain.Actor, asOf time.Time, atm bool) (domain.WithdrawResult, error)
	Transfer(ctx context.Context, fromIBAN, toIBAN, amount string, actor domain.Actor, asOf time.Time) (domain.TransferResult, error)
	InternalTransfer(ctx context.Context, fromIBAN, toIBAN, amount string, actor domain.Actor, asOf time.Time) (domain.TransferResult, error)
	UpdateLimits(ctx context.Context, iban, absoluteLimit, dailyLimit string, actor domain.Actor) (domain.Account, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) *Handler {
	return &Handler{
		service: ls,
	}
}

type moveRequest struct {
	IBAN   string `json:"iban" binding:"required,iban"`
	Amount string `json:"amount" binding:"required"`
}

type depositData struct {
	Deposit domain.DepositResult `json:"deposit"`
}

type withdrawalData struct {
	Withdrawal domain.WithdrawResult `json:"withdrawal"`
}

type transferData struct {
	Transfer domain.TransferResult `json:"transfer"`
}

// Deposit handles http request to credit an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.deposit(gctx, false)
}

// ATMDeposit handles http request to credit an account through an ATM.
func (h *Handler) ATMDeposit(gctx *gin.Context) {
	h.deposit(gctx, true)
}

func (h *Handler) deposit(gctx *gin.Context, atm bool) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req moveRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	actor := middleware.ActorFrom(gctx)

	result, err := h.service.Deposit(ctx, req.IBAN, req.Amount, actor, time.Now(), atm)
	if err != nil {
		writeLedgerError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: depositData{result}})
}

// Withdraw handles http request to debit an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.withdraw(gctx, false)
}

// ATMWithdraw handles http request to debit an account through an ATM.
func (h *Handler) ATMWithdraw(gctx *gin.Context) {
	h.withdraw(gctx, true)
}

func (h *Handler) withdraw(gctx *gin.Context, atm bool) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req moveRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	actor := middleware.ActorFrom(gctx)

	result, err := h.service.Withdraw(ctx, req.IBAN, req.Amount, actor, time.Now(), atm)
	if err != nil {
		writeLedgerError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: withdrawalData{result}})
}

type transferRequest struct {
	FromIBAN string `json:"from_iban" binding:"required,iban"`
	ToIBAN   string `json:"to_iban" binding:"required,iban"`
	Amount   string `json:"amount" binding:"required"`
}

// Transfer handles http request to move funds between two accounts.
func (h *Handler) Transfer(gctx *gin.Context) {
	h.transfer(gctx, false)
}

// InternalTransfer handles http request to move funds between two accounts of
// one owner without touching the daily limit.
func (h *Handler) InternalTransfer(gctx *gin.Context) {
	h.transfer(gctx, true)
}

func (h *Handler) transfer(gctx *gin.Context, internal bool) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	actor := middleware.ActorFrom(gctx)

	var (
		result domain.TransferResult
		err    error
	)

	if internal {
		result, err = h.service.InternalTransfer(ctx, req.FromIBAN, req.ToIBAN, req.Amount, actor, time.Now())
	} else {
		result, err = h.service.Transfer(ctx, req.FromIBAN, req.ToIBAN, req.Amount, actor, time.Now())
	}

	if err != nil {
		writeLedgerError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transferData{result}})
}

type updateLimitsURI struct {
	IBAN string `uri:"iban" binding:"required,iban"`
}

type updateLimitsRequest struct {
	AbsoluteLimit string `json:"absolute_limit" binding:"required"`
	DailyLimit    string `json:"daily_limit" binding:"required"`
}

type accountData struct {
	Account domain.Account `json:"account"`
}

// UpdateLimits handles http request to change an account's limit
// configuration. Administrator only.
func (h *Handler) UpdateLimits(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri updateLimitsURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req updateLimitsRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	actor := middleware.ActorFrom(gctx)

	account, err := h.service.UpdateLimits(ctx, uri.IBAN, req.AbsoluteLimit, req.DailyLimit, actor)
	if err != nil {
		writeLedgerError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

// writeLedgerError maps the domain sentinels shared by the ledger operations
// to http status codes.
func writeLedgerError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())
	l.Info().Err(err).Send()

	switch err {
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	case domain.ErrAccountOwnerMismatch, domain.ErrPermissionDenied:
		gctx.JSON(http.StatusForbidden, web.Error(err))
		return
	case domain.ErrAccountInactive:
		gctx.JSON(http.StatusConflict, web.Error(err))
		return
	case
		domain.ErrInvalidAmount,
		domain.ErrSameAccountTransfer,
		domain.ErrAccountTypeViolation,
		domain.ErrDifferentOwners,
		domain.ErrInsufficientBalance,
		domain.ErrAbsoluteLimitExceeded,
		domain.ErrDailyLimitExceeded,
		domain.ErrNegativeAbsoluteLimit,
		domain.ErrNonPositiveDailyLimit,
		domain.ErrAbsoluteLimitAboveBalance:
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}
