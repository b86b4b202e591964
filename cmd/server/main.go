package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq" // postgres driver

	"github.com/naseer6/bankapp/cmd/httpserver"
	"github.com/naseer6/bankapp/internal/middleware"
	"github.com/naseer6/bankapp/pkg/configpkg"
	"github.com/naseer6/bankapp/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	if err := dbpkg.Migrate(conn, config.MigrationPath); err != nil {
		logger.Fatal().Err(err).Msg("cannot apply migrations")
	}

	server, err := httpserver.New(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Str("address", config.ServerAddress).Msg("starting server")

	if err := http.ListenAndServe(config.ServerAddress, server); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
