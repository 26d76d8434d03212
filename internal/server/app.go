// Package server wires configuration, storage, authentication and the
// HTTP and gRPC servers into a runnable application with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/bookreviews/internal/logging"
	"github.com/dmitrijs2005/bookreviews/internal/server/auth"
	"github.com/dmitrijs2005/bookreviews/internal/server/config"
	"github.com/dmitrijs2005/bookreviews/internal/server/httpserver"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookreviews/internal/server/services"

	gs "github.com/dmitrijs2005/bookreviews/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	http   *httpserver.Server
	grpc   *gs.GRPCServer
}

// NewApp validates c and builds the application. A missing signing secret
// is reported here so the process never starts without one.
func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	repos, err := newRepositoryManager(c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return newApp(c, logger, repos)
}

func newRepositoryManager(c *config.Config) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		return repomanager.NewInMemoryRepositoryManager(), nil
	}
	return repomanager.NewPostgresRepositoryManager(c.DatabaseDSN)
}

func newApp(c *config.Config, logger logging.Logger, repos repomanager.RepositoryManager) (*App, error) {
	codec := auth.NewTokenCodec(c.SecretKey, c.AccessTokenValidityDuration, auth.WithLeeway(c.TokenLeeway))
	gate := auth.NewGate(codec, auth.NewStoreResolver(repos.Users()), logger)

	accounts, err := services.NewAccountService(repos, auth.NewBcryptHasher(c.BcryptCost), codec, logger)
	if err != nil {
		return nil, fmt.Errorf("account service init error: %w", err)
	}
	books := services.NewBookService(repos, auth.BookPolicy(c.BookPolicy), logger)
	reviews := services.NewReviewService(repos, logger)

	return &App{
		config: c,
		logger: logger,
		repos:  repos,
		http:   httpserver.New(c.EndpointAddrHTTP, logger, gate, accounts, books, reviews),
		grpc:   gs.NewGRPCServer(c.EndpointAddrGRPC, logger, repos),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run migrates the store and serves until ctx is cancelled, a signal
// arrives, or either server fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "book_policy", app.config.BookPolicy)

	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(ctx, "closing store", "error", err)
		}
	}()

	if err := app.repos.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	start := func(name string, run func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil {
				app.logger.Error(ctx, name+" server failed", "error", err)
				errs <- err
				cancelFunc()
			}
		}()
	}

	start("http", app.http.Run)
	start("grpc", app.grpc.Run)

	wg.Wait()
	close(errs)

	app.logger.Info(context.Background(), "App stopped")
	return <-errs
}
