package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cybaemtech/site-core/internal/config"
	"github.com/cybaemtech/site-core/internal/database"
	"github.com/cybaemtech/site-core/internal/middleware"
	"github.com/cybaemtech/site-core/internal/modules/crm/spreadsheet"
	"github.com/cybaemtech/site-core/internal/modules/publisher"
	"github.com/cybaemtech/site-core/internal/pkg/cron"
	pkgjwt "github.com/cybaemtech/site-core/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *cron.Scheduler

	// shared between routes and cron jobs
	publisher    *publisher.Service
	spreadsheets *spreadsheet.Service
}

// New initializes the application: config → DB → scheduler → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if cfg.JWTSecret != "" {
		pkgjwt.SetSecret(cfg.JWTSecret)
	} else if !cfg.IsDev() {
		return nil, errors.New("jwt_secret is required in production")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(corsMiddleware(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	sched := cron.New()

	app := &App{cfg: cfg, router: router, db: db, logger: logger, cancel: cancel, sched: sched}
	app.registerRoutes()
	app.registerCronJobs()
	go sched.Start(ctx)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background goroutines.
func (a *App) Shutdown() { a.cancel() }
