// Package kernel assembles the storefront: it opens the backing stores,
// builds services and controllers on top of them and exposes a single
// http.Handler with the global middleware stack applied.
package kernel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/controllers"
	appmw "github.com/shashiranjanraj/storefront/app/middleware"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/session"
	"github.com/shashiranjanraj/storefront/pkg/storage"
	"github.com/shashiranjanraj/storefront/pkg/view"
	"github.com/shashiranjanraj/storefront/resources/views"
)

// App is a booted storefront.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Sessions session.Store
	Disk     storage.Disk

	router  *router.Router
	closers []func() error
}

// Boot opens the database, the session store and the storage disk named by
// cfg, then builds the application on top of them.
func Boot(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	closers := []func() error{func() error { return database.Close(db) }}
	fail := func(err error) (*App, error) {
		closeAll(closers)
		return nil, err
	}

	var store session.Store
	switch cfg.Session.Driver {
	case "redis":
		client, err := session.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, client.Close)
		store = session.NewRedisStore(client)
	default:
		store = session.NewMemoryStore()
	}

	disk, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fail(err)
	}

	app, err := New(ctx, cfg, db, store, disk)
	if err != nil {
		return fail(err)
	}
	app.closers = append(closers, app.closers...)
	return app, nil
}

// New builds the application over already opened stores. disk may be nil,
// in which case product images are not accepted.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, store session.Store, disk storage.Disk) (*App, error) {
	pages, err := view.New(views.FS, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("kernel: views: %w", err)
	}

	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	orders := repositories.NewOrderRepository(db)

	authSvc := services.NewAuthService(users, cfg.Auth.BcryptCost)
	orderSvc := services.NewOrderService(orders, products)
	catalogSvc := services.NewCatalogService(products, disk)

	limiterCtx, stopLimiter := context.WithCancel(ctx)
	limiter := middleware.NewRateLimiter(limiterCtx, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateBurst)

	a := &App{
		Config:   cfg,
		DB:       db,
		Sessions: store,
		Disk:     disk,
		router:   router.New(),
		closers:  []func() error{func() error { stopLimiter(); return nil }},
	}

	signer := auth.NewTokenSigner(cfg.Session.Secret, cfg.Session.TTL)
	sessions := session.NewManager(store, signer, sessionOptions(cfg.Session))

	// Global middleware stack (outermost first):
	//  1. Prometheus metrics
	//  2. Request ID, before anything logs
	//  3. Access log
	//  4. Recovery, so a panic is logged with its request id
	//  5. Session load
	a.router.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		sessions.Middleware(),
	)
	a.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Not Found")
	})

	a.registerRoutes(a.router, routes.Deps{
		Auth:         controllers.NewAuthController(authSvc, pages),
		Home:         controllers.NewHomeController(catalogSvc, orderSvc, pages),
		Order:        controllers.NewOrderController(orderSvc),
		Admin:        controllers.NewAdminController(orderSvc, catalogSvc, pages),
		Identities:   appmw.NewIdentities(authSvc),
		LoginLimiter: limiter.Middleware,
	})

	return a, nil
}

// Handler is the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router.Handler()
}

// Routes lists every mounted route.
func (a *App) Routes() []router.RouteInfo {
	return a.router.Routes()
}

// Close releases everything Boot opened, last opened first.
func (a *App) Close() error {
	return closeAll(a.closers)
}

// RouteList returns the route table without opening any store.
func RouteList(cfg *config.Config) []router.RouteInfo {
	a := &App{Config: cfg}
	r := router.New()
	a.registerRoutes(r, routes.Deps{Identities: appmw.NewIdentities(nil)})
	return r.Routes()
}

func (a *App) registerRoutes(r *router.Router, deps routes.Deps) {
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", a.healthz)

	if local, ok := a.Disk.(*storage.LocalDisk); ok && strings.HasPrefix(a.Config.Storage.URL, "/") {
		prefix := strings.TrimRight(a.Config.Storage.URL, "/")
		r.Handle(prefix+"/*", "storage", http.StripPrefix(prefix, local.FileServer()))
	}

	routes.RegisterWeb(r, deps)
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := a.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error().Err(err).Msg("healthz: database unreachable")
		response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func sessionOptions(c config.SessionConfig) session.Options {
	opts := session.DefaultOptions()
	opts.CookieName = c.CookieName
	opts.TTL = c.TTL
	opts.Secure = c.Secure
	return opts
}

func closeAll(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
