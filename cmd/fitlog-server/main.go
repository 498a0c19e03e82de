package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fitlog/fitlog/internal/config"
	"github.com/fitlog/fitlog/internal/console"
	"github.com/fitlog/fitlog/internal/observability"
	"github.com/fitlog/fitlog/internal/tracker/exercises"
	"github.com/fitlog/fitlog/internal/tracker/migrate"
	"github.com/fitlog/fitlog/internal/tracker/users"
)

// AppState holds all application services
type AppState struct {
	UserService     users.UserService
	ExerciseService exercises.ExerciseService
	DB              *bun.DB
	Logger          *zap.Logger
	Config          *config.Config
}

func main() {
	// Load configuration
	config.Load()

	// Initialize logger with config
	logger := initLogger()

	// Initialize application state
	as, err := newAppState(logger)
	if err != nil {
		logger.Fatal("Failed to initialize application state", zap.Error(err))
	}

	// Create tables and indexes
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrate.CreateTables(ctx, as.DB); err != nil {
		cancel()
		logger.Fatal("Failed to create tables", zap.Error(err))
	}
	if err := migrate.CreateIndexes(ctx, as.DB); err != nil {
		cancel()
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}
	cancel()

	// Create HTTP server
	router := setupRouter(as)

	httpConfig := config.Http()
	addr := fmt.Sprintf("%s:%d", httpConfig.Host, httpConfig.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(httpConfig.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(httpConfig.WriteTimeout) * time.Second,
	}

	// Setup graceful shutdown
	done := setupSignalHandler(as, server, logger)

	logger.Info("Starting fitlog server", zap.String("address", addr))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState creates and initializes the application state
func newAppState(logger *zap.Logger) (*AppState, error) {
	pgConfig := config.Postgres()

	logger.Info("Database configuration",
		zap.String("host", pgConfig.Host),
		zap.Int("port", pgConfig.Port),
		zap.String("database", pgConfig.Database),
		zap.String("user", pgConfig.User))

	db, err := openDatabase(pgConfig.DSN(), pgConfig.MaxOpenConnections)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	userStore := users.NewUserStore(db)
	userService := users.NewUserService(userStore)

	exerciseStore := exercises.NewExerciseStore(db)
	exerciseService := exercises.NewExerciseService(exerciseStore)

	return &AppState{
		UserService:     userService,
		ExerciseService: exerciseService,
		DB:              db,
		Logger:          logger,
		Config:          config.Get(),
	}, nil
}

// openDatabase creates the bun database handle and verifies connectivity
func openDatabase(dsn string, maxConnections int) (*bun.DB, error) {
	if maxConnections <= 0 {
		maxConnections = 10
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	sqldb.SetMaxOpenConns(maxConnections)
	sqldb.SetMaxIdleConns(maxConnections / 2)
	sqldb.SetConnMaxLifetime(time.Hour)

	db := bun.NewDB(sqldb, pgdialect.New())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var cfg zap.Config
	if logConfig.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	// Set log level
	switch logConfig.Level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

func setupRouter(as *AppState) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add CORS middleware
	router.Use(cors.Default())

	// Add logging and recovery middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Request metrics
	router.Use(observability.Middleware())

	// Cap request body size
	router.Use(maxRequestSize(config.Http().MaxRequestSize))

	// Landing page
	consoleService := console.NewConsoleService(as.Logger)
	consoleService.RegisterRoutes(router)

	// Health endpoint
	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := as.DB.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"error":     err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Prometheus metrics
	router.GET("/metrics", observability.Handler())

	api := router.Group("/api")
	{
		api.GET("/users", listUsers(as))
		api.POST("/users", createUser(as))
		api.POST("/users/:userId/exercises", createExercise(as))
		api.GET("/users/:userId/logs", getUserLog(as))

		// Bulk deletes are destructive: DELETE method plus admin key
		admin := api.Group("", AdminAuthMiddleware(as))
		{
			admin.DELETE("/users", deleteAllUsers(as))
			admin.DELETE("/exercises", deleteAllExercises(as))
		}
	}

	return router
}

// maxRequestSize limits how much body a request may carry
func maxRequestSize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

func setupSignalHandler(as *AppState, server *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		// Create context with timeout for graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Shutdown server
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		// Close database
		if err := as.DB.Close(); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}
