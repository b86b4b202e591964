// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

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

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, owner string, accountType domain.AccountType, actor domain.Actor) (domain.Account, error)
	Get(ctx context.Context, iban string, actor domain.Actor) (domain.Account, error)
	Summary(ctx context.Context, iban string, actor domain.Actor, asOf time.Time) (domain.AccountSummary, error)
	List(ctx context.Context, owner string, pageSize, pageID int32) ([]domain.Account, error)
	Close(ctx context.Context, iban string, actor domain.Actor) (domain.Account, error)
}

// TransactionLister provides read access to the transaction log.
type TransactionLister interface {
	List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service      Service
	transactions TransactionLister
}

// NewHandler returns account handler.
func NewHandler(as Service, tl TransactionLister) *Handler {
	return &Handler{
		service:      as,
		transactions: tl,
	}
}

type accountData struct {
	Account domain.Account `json:"account"`
}

type createRequest struct {
	Owner string `json:"owner" binding:"required,alphanum"`
	Type  string `json:"type" binding:"required,accounttype"`
}

// Create handles http request to open an account for a user. Staff only.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
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

	account, err := h.service.Create(ctx, req.Owner, domain.AccountType(req.Type), actor)
	if err != nil {
		switch err {
		case domain.ErrPermissionDenied:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		case domain.ErrOwnerNotFound:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

type ibanRequest struct {
	IBAN string `uri:"iban" binding:"required,iban"`
}

type summaryData struct {
	Account domain.AccountSummary `json:"account"`
}

// Get handles http request to get the balance and limit summary of an account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req ibanRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
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

	summary, err := h.service.Summary(ctx, req.IBAN, actor, time.Now())
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountOwnerMismatch:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: summaryData{summary}})
}

type listRequest struct {
	Owner    string `form:"owner" binding:"omitempty,alphanum"`
	PageID   int32  `form:"page_id" binding:"required,min=1"`
	PageSize int32  `form:"page_size" binding:"required,min=1,max=100"`
}

type accountsData struct {
	Accounts []domain.Account `json:"accounts"`
}

// List handles http request to list accounts. Customers always get their own
// accounts; staff may list any owner's accounts via the owner query parameter.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
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

	owner := req.Owner
	if owner == "" {
		owner = actor.Username
	}

	if !actor.CanAccess(owner) {
		gctx.JSON(http.StatusForbidden, web.Error(domain.ErrPermissionDenied))

		return
	}

	accounts, err := h.service.List(ctx, owner, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountsData{accounts}})
}

// Close handles http request to close an account. The balance must be zero.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req ibanRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
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

	account, err := h.service.Close(ctx, req.IBAN, actor)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountOwnerMismatch:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		case domain.ErrAccountInactive, domain.ErrBalanceNotZero:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

type listTransactionsURI struct {
	IBAN string `uri:"iban" binding:"required,iban"`
}

type listTransactionsQuery struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// ListTransactions handles http request to list the transaction history of an
// account, newest first. The ownership rule of Get applies.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri listTransactionsURI
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

	var query listTransactionsQuery
	if err := gctx.ShouldBindQuery(&query); err != nil {
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

	// The ownership check lives in the account lookup.
	if _, err := h.service.Get(ctx, uri.IBAN, actor); err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountOwnerMismatch:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	transactions, err := h.transactions.List(ctx, domain.ListTransactionsParams{
		IBAN:   uri.IBAN,
		Limit:  query.PageSize,
		Offset: (query.PageID - 1) * query.PageSize,
	})
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{transactions}})
}
