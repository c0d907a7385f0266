package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lojavirtual/internal/config"
	"lojavirtual/internal/http/handlers"
	applog "lojavirtual/internal/log"
	"lojavirtual/internal/repos"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API.

Configuration comes from the environment (PORT, DB_DRIVER, DB_DSN, JWT_SECRET, ...).

Examples:
  lojavirtual serve
  DB_DRIVER=mysql DB_DSN='user:pass@tcp(localhost:3306)/loja' lojavirtual serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := applog.Init(applog.Options{Mode: cfg.LogMode, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	fields := make([]zap.Field, 0, len(cfg.Fields()))
	for k, v := range cfg.Fields() {
		fields = append(fields, zap.Any(k, v))
	}
	logger.Info("config.loaded", fields...)

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		return fmt.Errorf("wire handlers: %w", err)
	}
	app := handlers.NewApp(cfg, deps)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("server.shutdown")
		_ = app.Shutdown()
	}()

	logger.Info("server.start", zap.String("addr", ":"+cfg.Port))
	return app.Listen(":" + cfg.Port)
}
