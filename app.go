package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gotomicro/ego/core/elog"

	"promptbench/internal/config"
	"promptbench/internal/database"
	"promptbench/internal/encryption"
	"promptbench/internal/llm/client"
	"promptbench/internal/server"
	"promptbench/internal/services"
)

const shutdownTimeout = 15 * time.Second

// App owns the database pool, the service container and the HTTP server.
type App struct {
	cfg     *config.Config
	srv     *http.Server
	dbClose func() error
}

func NewApp(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// startup opens the database and wires services into the router.
func (a *App) startup(ctx context.Context) error {
	db, err := database.Init(a.cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	a.dbClose = sqlDB.Close

	cipher, err := encryption.NewCipher(a.cfg.EncryptionSecret)
	if err != nil {
		return err
	}
	svc, err := services.NewDbServices(db, cipher, client.NewFactory(), services.Options{
		GenerationConcurrency: a.cfg.GenerationConcurrency,
		ProviderTimeout:       a.cfg.ProviderTimeout,
		DefaultCandidateModel: a.cfg.DefaultCandidateModel,
	})
	if err != nil {
		return err
	}

	router := server.NewRouter(server.Config{
		JWTSecret:          a.cfg.JWTSecret,
		CORSAllowedOrigins: a.cfg.CORSAllowedOrigins,
	}, server.Deps{
		Tests:      svc.Tests,
		Generation: svc.Generation,
		ApiKeys:    svc.ApiKeys,
		Models:     svc.Models,
		Ping:       sqlDB.PingContext,
	})

	a.srv = &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}
	return nil
}

// run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		a.shutdown(context.Background())
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		elog.DefaultLogger.Info("http server listening", elog.String("addr", a.cfg.HTTPAddr))
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		a.shutdown(context.Background())
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.shutdown(shutdownCtx)
	return nil
}

// shutdown stops the HTTP server and closes the database pool.
func (a *App) shutdown(ctx context.Context) {
	if a.srv != nil {
		if err := a.srv.Shutdown(ctx); err != nil {
			elog.DefaultLogger.Error("failed to stop http server", elog.FieldErr(err))
		}
	}
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			elog.DefaultLogger.Error("failed to close database", elog.FieldErr(err))
		}
	}
	elog.DefaultLogger.Info("shutdown complete")
}
