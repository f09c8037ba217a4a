package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	matchRepo "github.com/ghaniswara/workmatch/internal/backend/repository/match"
	messageRepo "github.com/ghaniswara/workmatch/internal/backend/repository/message"
	userRepo "github.com/ghaniswara/workmatch/internal/backend/repository/user"
	routesAPI "github.com/ghaniswara/workmatch/internal/backend/routes/api"
	authUseCase "github.com/ghaniswara/workmatch/internal/backend/usecase/auth"
	"github.com/ghaniswara/workmatch/internal/backend/usecase/match"
	"github.com/ghaniswara/workmatch/internal/backend/usecase/message"
	"github.com/ghaniswara/workmatch/internal/backend/usecase/user"
	"github.com/ghaniswara/workmatch/internal/config"
	"github.com/ghaniswara/workmatch/internal/datastore/postgres"
	"github.com/ghaniswara/workmatch/internal/datastore/sqlite"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/logger"
	"github.com/ghaniswara/workmatch/pkg/jwt"
	"github.com/google/uuid"
	"github.com/labstack/echo"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type Server struct {
	writer     io.Writer
	httpServer *http.Server
	echo       *echo.Echo
	database   *gorm.DB
	cases      routesAPI.UseCases
}

func NewServer(ctx context.Context, w io.Writer, cfg *config.Config) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Use(requestLogger)

	database, err := OpenDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := database.AutoMigrate(&entity.User{}, &entity.Match{}, &entity.Message{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	users := userRepo.New(database)
	matches := matchRepo.NewMatchRepo(database)
	messages := messageRepo.New(database)

	ttl := cfg.GetDuration("JWT_TTL")

	cases := routesAPI.UseCases{
		Auth:    authUseCase.New(users, jwt.New(cfg.Get("JWT_SECRET"), ttl)),
		User:    user.New(users),
		Match:   match.NewMatchUseCase(users, matches),
		Message: message.New(matches, messages),
	}

	server := &Server{
		writer: w,
		httpServer: &http.Server{
			Addr:    ":" + cfg.Get("PORT"),
			Handler: e,
		},
		echo:     e,
		database: database,
		cases:    cases,
	}

	if n := cfg.GetInt("SEED_USERS"); n > 0 {
		if _, err := Seed(ctx, cases.Auth, n); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	server.RegisterRoutes(e)
	return server, nil
}

// OpenDatabase connects to the store selected by DB_DRIVER.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	level := gormLogger.Silent
	if cfg.Get("LOG_LEVEL") == "debug" {
		level = gormLogger.Info
	}

	switch driver := cfg.Get("DB_DRIVER"); driver {
	case "sqlite":
		return sqlite.InitializeDB(cfg.Get("DB_DSN"), level)
	case "postgres":
		dsn := postgres.DSN(
			cfg.Get("POSTGRES_USER"),
			cfg.Get("POSTGRES_PASSWORD"),
			cfg.Get("POSTGRES_DB_NAME"),
			cfg.Get("POSTGRES_HOST"),
			cfg.Get("POSTGRES_PORT"),
		)
		return postgres.InitializeDB(dsn, level)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	routesAPI.InitAPIRoutes(e, s.cases)
}

// Handler exposes the router for in-process use such as httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) DB() *gorm.DB {
	return s.database
}

func (s *Server) StartServer() error {
	fmt.Fprintf(s.writer, "Server starting on %s\n", s.httpServer.Addr)
	logger.Info("backend listening", "addr", s.httpServer.Addr)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	if sqlDB, dbErr := s.database.DB(); dbErr == nil {
		err = errors.Join(err, sqlDB.Close())
	}
	return err
}

const requestIDHeader = "X-Request-ID"

// requestLogger tags every request with an id (kept from the caller when
// present) and logs it once the handler is done.
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		id := c.Request().Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Response().Header().Set(requestIDHeader, id)

		if err := next(c); err != nil {
			c.Error(err)
		}

		logger.Debug("request",
			"request_id", id,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration", time.Since(start),
		)
		return nil
	}
}
