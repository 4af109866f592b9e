package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/angelmondragon/catalogo-industrial-backend/api/responses"
	"github.com/angelmondragon/catalogo-industrial-backend/api/routes"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/adminauth"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/adminusers"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/faq"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/notifications"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/products"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/quotes"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/support"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/taxonomy"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/uploads"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/auth/session"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/config"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/instance"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/mailer"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/metrics"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/migrate"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/redis"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/storage/s3store"
)

const shutdownTimeout = 20 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Instance:    instance.GetID(),
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	decimal.MarshalJSONWithoutQuotes = true
	responses.ExposeInternalErrors(!cfg.App.IsProd())

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	deps := routes.Deps{
		Config:   cfg,
		Logger:   logg,
		Database: dbClient,
	}

	var registry adminauth.SessionRegistry
	if cfg.Redis.Enabled() {
		redisClient, rerr := redis.New(ctx, cfg.Redis, logg)
		if rerr != nil {
			return rerr
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()

		sessionManager, serr := session.NewManager(redisClient, cfg.JWT)
		if serr != nil {
			return serr
		}
		deps.Redis = redisClient
		deps.Sessions = sessionManager
		registry = sessionManager
	} else {
		logg.Warn(ctx, "redis not configured; token revocation and rate limits disabled")
	}

	var objectStore uploads.ObjectStore
	if cfg.Storage.Enabled() {
		s3Client, serr := s3store.NewClient(ctx, cfg.Storage, logg)
		if serr != nil {
			return serr
		}
		objectStore = s3Client
		deps.Storage = s3Client
	} else {
		logg.Warn(ctx, "upload bucket not configured; uploads will answer 503")
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Metrics = metrics.NewHTTPMetrics(promRegistry)
	deps.Gatherer = promRegistry

	sender, err := mailer.New(cfg.SMTP, cfg.Mail, logg)
	if err != nil {
		return err
	}
	composer, err := mailer.NewComposer(cfg.Mail, cfg.App.PublicURL)
	if err != nil {
		return err
	}
	dispatcher, err := notifications.NewDispatcher(sender, composer, deps.Metrics, logg)
	if err != nil {
		return err
	}

	if err := buildServices(cfg, logg, dbClient, dispatcher, registry, objectStore, &deps); err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(ctx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildServices(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	dispatcher *notifications.Dispatcher,
	registry adminauth.SessionRegistry,
	objectStore uploads.ObjectStore,
	deps *routes.Deps,
) error {
	conn := dbClient.DB()

	productService, err := products.NewService(products.NewRepository(conn))
	if err != nil {
		return err
	}
	taxonomyService, err := taxonomy.NewService(conn)
	if err != nil {
		return err
	}
	quoteService, err := quotes.NewService(quotes.ServiceParams{
		Repo:     quotes.NewRepository(conn),
		Tx:       dbClient,
		Notifier: dispatcher,
		Logger:   logg,
	})
	if err != nil {
		return err
	}

	adminRepo := adminusers.NewRepository(conn)
	adminUserService, err := adminusers.NewService(adminRepo)
	if err != nil {
		return err
	}
	authService, err := adminauth.NewService(adminauth.ServiceParams{
		Admins:   adminRepo,
		Sessions: adminauth.NewSessionRepository(conn),
		Tx:       dbClient,
		Sender:   dispatcher,
		Registry: registry,
		JWT:      cfg.JWT,
		Password: cfg.Password,
		OTP:      cfg.OTP,
		Logger:   logg,
	})
	if err != nil {
		return err
	}

	faqService, err := faq.NewService(conn)
	if err != nil {
		return err
	}
	supportService, err := support.NewService(support.ServiceParams{
		Repo:     support.NewRepository(conn),
		Notifier: dispatcher,
		Logger:   logg,
	})
	if err != nil {
		return err
	}

	deps.Products = productService
	deps.Taxonomy = taxonomyService
	deps.Quotes = quoteService
	deps.AdminUsers = adminUserService
	deps.AdminAuth = authService
	deps.FAQ = faqService
	deps.Support = supportService
	deps.Uploads = uploads.NewService(objectStore, cfg.Storage, logg)
	return nil
}
