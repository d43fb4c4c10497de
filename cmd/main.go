package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "customer-service/docs"
	"customer-service/internal/api"
	"customer-service/internal/batch"
	"customer-service/internal/config"
	"customer-service/internal/domain/customer"
	"customer-service/internal/event"
	"customer-service/internal/infrastructure/database/memory"
	"customer-service/internal/infrastructure/database/postgres"
	"customer-service/internal/infrastructure/logging"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const rabbitMQConnectAttempts = 5

// @title Customer Service API
// @version 1.0
// @description Customer profile management: CRUD, search and identity-bound profiles.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	customerRepo, closeRepo, err := initializeRepository(appCtx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize customer repository", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeRepo()

	rabbitMQConn := setupRabbitMQ(cfg, logger)
	eventPublisher := initializeEventPublisher(rabbitMQConn, cfg, logger)
	customerService := customer.NewCustomerService(customerRepo, eventPublisher, logger)

	statsJob := batch.NewCustomerStatsJob(customerService, logger)
	cronScheduler := startBatchJobs(cfg, logger, statsJob)
	router := api.SetupRouter(appCtx, customerService, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

// initializeRepository picks the record store from database.driver. The
// returned close function is always safe to call.
func initializeRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (customer.CustomerRepository, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory customer store, data will not survive a restart")
		return memory.NewCustomerRepository(), func() {}, nil

	case config.DriverPostgres, "":
		if cfg.Database.Migrate {
			logger.Info("Running database migrations...", "dir", cfg.Database.MigrationsDir)
			if err := postgres.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsDir, logger); err != nil {
				return nil, func() {}, fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		logger.Info("Initializing database connection pool...")
		dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, func() {}, err
		}
		closeFn := func() {
			logger.Info("Closing database connection pool...")
			dbPool.Close()
		}
		return postgres.NewCustomerRepository(dbPool, logger), closeFn, nil

	default:
		return nil, func() {}, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func initializeEventPublisher(conn *amqp.Connection, cfg *config.Config, logger *slog.Logger) event.EventPublisher {
	if conn == nil {
		logger.Info("RabbitMQ not connected, customer events will not be published")
		return event.NoopEventPublisher{}
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to create RabbitMQ event publisher, falling back to no-op", slog.Any("error", err))
		return event.NoopEventPublisher{}
	}
	return publisher
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason := waitForShutdownTrigger(shutdownChan, serverErrors, logger)

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	closeRabbitMQConnection(rabbitConn, logger)
	shutdownHTTPServer(srv, serverErrors, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) string {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		logger.Info("Server goroutine finished before signal.", "error", err)
		return "server exited"
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	if cronScheduler == nil {
		return
	}
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	if rabbitConn == nil {
		logger.Info("RabbitMQ connection was not established, skipping close.")
		return
	}
	if rabbitConn.IsClosed() {
		logger.Info("RabbitMQ connection already closed, skipping close.")
		return
	}

	logger.Info("Closing RabbitMQ connection...")
	if err := rabbitConn.Close(); err != nil {
		logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
	} else {
		logger.Info("RabbitMQ connection closed.")
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, statsJob batch.Job) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	// A bad schedule disables the stats gauge but must not stop the API.
	_, _ = batch.ScheduleCustomerStats(c, cfg.Batch.CustomerStatsSchedule, cfg.Batch.CustomerStatsTimeout, statsJob, logger)

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

// setupRabbitMQ returns nil when messaging is disabled or unreachable; the
// service then runs without publishing events.
func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) *amqp.Connection {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled by configuration.")
		return nil
	}
	if cfg.RabbitMQ.URL == "" {
		logger.Error("RabbitMQ enabled but url is not configured.")
		return nil
	}

	conn, err := connectRabbitMQ(cfg.RabbitMQ.URL, rabbitMQConnectAttempts, 2*time.Second, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		return nil
	}
	return conn
}

func connectRabbitMQ(uri string, attempts int, backoff time.Duration, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	for i := 1; i <= attempts; i++ {
		conn, err = event.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			blockChan := conn.NotifyBlocked(make(chan amqp.Blocking, 1))
			closeChan := conn.NotifyClose(make(chan *amqp.Error, 1))
			go watchRabbitMQConnection(blockChan, closeChan, logger)

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", attempts),
			slog.Any("error", err),
		)
		if i < attempts {
			time.Sleep(time.Duration(i) * backoff)
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, err)
}

// watchRabbitMQConnection drains the connection notifications until the
// library closes both channels. amqp091 delivers them synchronously, so an
// unread channel stalls the connection.
func watchRabbitMQConnection(blockChan <-chan amqp.Blocking, closeChan <-chan *amqp.Error, logger *slog.Logger) {
	for blockChan != nil || closeChan != nil {
		select {
		case b, ok := <-blockChan:
			if !ok {
				blockChan = nil
				continue
			}
			if b.Active {
				logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
			} else {
				logger.Info("RabbitMQ Connection Unblocked")
			}
		case e, ok := <-closeChan:
			if !ok {
				closeChan = nil
				continue
			}
			logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
		}
	}
}
