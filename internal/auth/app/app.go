// Package app wires configuration, storage, keys, services, and the two
// server surfaces into a runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	grpcapi "github.com/nightglass/authkit/internal/auth/grpc"
	httpapi "github.com/nightglass/authkit/internal/auth/http"
	"github.com/nightglass/authkit/internal/auth/identity"
	"github.com/nightglass/authkit/internal/auth/service"
	"github.com/nightglass/authkit/internal/auth/store"
	"github.com/nightglass/authkit/internal/auth/store/drivers/sqlite"
	"github.com/nightglass/authkit/pkg/jwtx"
	"github.com/nightglass/authkit/pkg/slogx"

	pb "github.com/nightglass/authkit/gen/go/authkit/v1"
)

// BuildVersion is set at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application owns every long-lived component of the auth service.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db   store.Store
	ring *jwtx.Keyring

	tokenService        *service.TokenService
	loginService        *service.LoginService
	keyRotationService  *service.KeyRotationService
	housekeepingService *service.HousekeepingService

	httpServer *http.Server
	grpcServer *grpc.Server
}

// New builds the application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "authkit",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ring, rotation, err := initAuthKeys(context.Background(), cfg, app.db, app.logger)
	if err != nil {
		return nil, err
	}
	app.ring = ring
	app.keyRotationService = rotation

	app.initServices()
	app.initHTTP()
	app.initGRPC()

	return app, nil
}

// Run starts the servers and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting",
		"http_port", app.cfg.HTTPPort,
		"grpc_port", app.cfg.GRPCPort,
		"version", BuildVersion,
	)

	serverErrors := make(chan error, 2)

	go func() {
		serverErrors <- app.httpServer.ListenAndServe()
	}()

	go func() {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", app.cfg.GRPCPort))
		if err != nil {
			serverErrors <- fmt.Errorf("grpc listen: %w", err)
			return
		}
		serverErrors <- app.grpcServer.Serve(lis)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops the servers, the sweeper, and the store, in that order.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.httpServer.Shutdown(ctx); err != nil {
		app.logger.Error("graceful http shutdown failed", "error", err)
		if err := app.httpServer.Close(); err != nil {
			app.logger.Error("error closing http server", "error", err)
		}
	}

	stopped := make(chan struct{})
	go func() {
		app.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		app.grpcServer.Stop()
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied")
	return nil
}

func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Keyring: app.ring,
		Verifier: jwtx.NewVerifier(app.ring, jwtx.VerifyOptions{
			Issuer: app.cfg.Issuer,
			Leeway: app.cfg.ClockLeeway,
		}),
		Store:          app.db,
		Issuer:         app.cfg.Issuer,
		AccessTTL:      app.cfg.AccessTTL,
		RefreshTTL:     app.cfg.RefreshTTL,
		RevocationMode: service.RevocationMode(app.cfg.RevocationMode),
	}

	app.loginService = &service.LoginService{
		Identity: app.identityVerifier(),
		Tokens:   app.tokenService,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.ring,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	app.housekeepingService.RefreshTTL = app.cfg.RefreshTTL
}

// identityVerifier picks the directory client, or the static in-memory
// verifier when no directory is configured (development only).
func (app *Application) identityVerifier() identity.Verifier {
	if app.cfg.IdentityURL != "" {
		return identity.NewHTTPVerifier(app.cfg.IdentityURL, app.cfg.IdentityTimeout)
	}
	app.logger.Warn("no identity directory configured, using empty static verifier")
	return identity.NewStaticVerifier()
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.ring, BuildVersion, app.db, app.logger)
	router.LoginService = app.loginService
	router.TokenService = app.tokenService
	router.ApplyRoutes()

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

func (app *Application) initGRPC() {
	app.grpcServer = grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpcapi.RecoverUnary(app.logger),
			grpcapi.LoggingUnary(app.logger),
		),
	)
	pb.RegisterAuthServiceServer(app.grpcServer, grpcapi.New(app.loginService, app.tokenService))
}
