package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/dbostatement/config"
	"github.com/guttosm/dbostatement/internal/api"
	"github.com/guttosm/dbostatement/internal/service"
	"github.com/guttosm/dbostatement/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Wiring: Postgres (migrated) -> StatementRepository -> StatementService ->
// Handler -> router, plus health and readiness probes on the same engine.
func InitializeApp(ctx context.Context) (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	db, err := postgresOpener(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewStatementRepository(db)
	svc := service.NewStatementService(repo)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler, cfg.Server.UploadMaxBytes)

	api.NewHealthHandler(db.PingContext).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
