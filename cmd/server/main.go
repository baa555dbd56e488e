package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/ogurasousui/codex-rest-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/adapters/rest"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/employee"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/platform/config"
	pg "github.com/ogurasousui/codex-rest-clean-arch/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		level.Error(logger).Log("msg", "failed to load config", "err", err)
		os.Exit(1)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		level.Error(logger).Log("msg", "failed to initialize database pool", "err", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	txManager := pg.NewTransactionManager(dbPool)

	var svc employee.UseCase = employee.NewService(employeeRepo, txManager)
	svc = employee.NewLoggingMiddleware(log.With(logger, "component", "employee"), svc)

	handler := rest.MakeHTTPHandler(svc, log.With(logger, "component", "http"))
	httpServer := server.New(cfg.Server, handler)

	level.Info(logger).Log("msg", "http server listening", "addr", cfg.Server.ListenAddr)

	if err := httpServer.Run(ctx); err != nil {
		level.Error(logger).Log("msg", "server stopped with error", "err", err)
		os.Exit(1)
	}
}
