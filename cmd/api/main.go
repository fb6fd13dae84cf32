package main

import (
	"context"
	"os"

	// Time zone database for hosts without one; reporting dates use Africa/Nairobi.
	_ "time/tzdata"

	"github.com/braxton0054/eavisystem/internal/pkg/logger"
	"github.com/braxton0054/eavisystem/internal/server"
)

// @title EAVI Admissions API
// @version 1.0
// @description Admissions back office: registration, admission numbers and admission packages.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
