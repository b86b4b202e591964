// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/naseer6/bankapp/internal/accountdelivery"
	"github.com/naseer6/bankapp/internal/accountrepo"
	"github.com/naseer6/bankapp/internal/accountservice"
	"github.com/naseer6/bankapp/internal/ledgerdelivery"
	"github.com/naseer6/bankapp/internal/ledgerrepo"
	"github.com/naseer6/bankapp/internal/ledgerservice"
	"github.com/naseer6/bankapp/internal/middleware"
	"github.com/naseer6/bankapp/internal/sessiondelivery"
	"github.com/naseer6/bankapp/internal/sessionrepo"
	"github.com/naseer6/bankapp/internal/sessionservice"
	"github.com/naseer6/bankapp/internal/trackingrepo"
	"github.com/naseer6/bankapp/internal/transactionrepo"
	"github.com/naseer6/bankapp/internal/userdelivery"
	"github.com/naseer6/bankapp/internal/userrepo"
	"github.com/naseer6/bankapp/internal/userservice"
	"github.com/naseer6/bankapp/pkg/configpkg"
	"github.com/naseer6/bankapp/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	trackingRepo := trackingrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	accountService, err := accountservice.New(accountRepo, trackingRepo, config)
	if err != nil {
		return nil, errors.New("cannot initialize account service")
	}

	userService := userservice.New(userRepo, accountService)
	ledgerService := ledgerservice.New(ledgerRepo)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService, transactionRepo)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.GET("/users", userHandler.List)
	authRoutes.POST("/users/:username/approve", userHandler.Approve)

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.GET("/accounts/:iban", accountHandler.Get)
	authRoutes.DELETE("/accounts/:iban", accountHandler.Close)
	authRoutes.GET("/accounts/:iban/transactions", accountHandler.ListTransactions)
	authRoutes.PUT("/accounts/:iban/limits", ledgerHandler.UpdateLimits)

	authRoutes.POST("/deposits", ledgerHandler.Deposit)
	authRoutes.POST("/withdrawals", ledgerHandler.Withdraw)
	authRoutes.POST("/atm/deposits", ledgerHandler.ATMDeposit)
	authRoutes.POST("/atm/withdrawals", ledgerHandler.ATMWithdraw)

	authRoutes.POST("/transfers", ledgerHandler.Transfer)
	authRoutes.POST("/transfers/internal", ledgerHandler.InternalTransfer)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("accounttype", accountdelivery.ValidAccountType); err != nil {
			return nil, errors.New("cannot register account type validator")
		}

		if err := v.RegisterValidation("iban", accountdelivery.ValidIBAN); err != nil {
			return nil, errors.New("cannot register iban validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
