package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/catalogo-industrial-backend/api/controllers"
	"github.com/angelmondragon/catalogo-industrial-backend/api/middleware"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/adminauth"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/adminusers"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/faq"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/products"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/quotes"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/support"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/taxonomy"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/uploads"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/auth/session"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/config"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/catalogo-industrial-backend/pkg/redis"
)

// RedisStore backs rate limits and idempotency replays.
type RedisStore interface {
	pkgredis.IdempotencyStore
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Deps carries everything the router wires. Optional collaborators must be
// left as nil interfaces when their backing service is not configured.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Metrics  *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer

	Database controllers.Pinger
	Redis    RedisStore
	Sessions session.AccessSessionChecker
	Storage  controllers.Pinger

	Products   products.Service
	Taxonomy   taxonomy.Service
	Quotes     quotes.Service
	AdminAuth  adminauth.Service
	AdminUsers adminusers.Service
	FAQ        faq.Service
	Support    support.Service
	Uploads    uploads.Service
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(cfg.CORS),
	)

	otpLimit := func(step string) func(http.Handler) http.Handler {
		policy := middleware.NewAuthRateLimitPolicy(step, cfg.AuthRateLimit.Window, cfg.AuthRateLimit.IPLimit, cfg.AuthRateLimit.EmailLimit)
		return middleware.AuthRateLimit(policy, d.Redis, logg)
	}
	idempotent := middleware.Idempotency(d.Redis, logg)
	requireAdmin := middleware.Auth(cfg.JWT, d.Sessions, logg)
	adminTimeout := middleware.Timeout(cfg.Admin.RequestTimeout, logg)

	health := map[string]controllers.Pinger{"database": d.Database}
	if d.Redis != nil {
		if p, ok := d.Redis.(controllers.Pinger); ok {
			health["redis"] = p
		}
	}
	if d.Storage != nil {
		health["storage"] = d.Storage
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, health, logg))
	})
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.Products, logg))
			r.Get("/{id}", controllers.GetProduct(d.Products, logg))
			r.With(requireAdmin, adminTimeout).Put("/{id}", controllers.AdminUpdateProduct(d.Products, logg))
			r.With(requireAdmin, adminTimeout).Delete("/{id}", controllers.AdminDeleteProduct(d.Products, logg))
		})

		mountPublicTaxonomy(r, d.Taxonomy, logg)

		r.With(idempotent).Post("/quotes", controllers.CreateQuote(d.Quotes, logg))
		r.With(requireAdmin, adminTimeout).Get("/quotes", controllers.ListQuotes(d.Quotes, logg))
		r.Get("/quotes/{id}", controllers.GetPublicQuote(d.Quotes, logg))

		r.Get("/faq", controllers.ListFAQ(d.FAQ, logg))
		r.With(idempotent).Post("/contact", controllers.SubmitContact(d.Support, logg))

		r.Route("/admin/auth", func(r chi.Router) {
			r.With(otpLimit("check-user")).Post("/check-user", controllers.AdminCheckUser(d.AdminAuth, logg))
			r.With(otpLimit("send-code")).Post("/send-code", controllers.AdminSendCode(d.AdminAuth, logg))
			r.With(otpLimit("verify-code")).Post("/verify-code", controllers.AdminVerifyCode(d.AdminAuth, logg))
			r.With(requireAdmin).Post("/logout", controllers.AdminLogout(d.AdminAuth, logg))
			r.With(requireAdmin).Get("/me", controllers.AdminMe(d.AdminAuth, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin, adminTimeout)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(d.Products, logg))
				r.Post("/", controllers.AdminCreateProduct(d.Products, logg))
				r.Get("/{id}", controllers.AdminGetProduct(d.Products, logg))
				r.Put("/{id}", controllers.AdminUpdateProduct(d.Products, logg))
				r.Delete("/{id}", controllers.AdminDeleteProduct(d.Products, logg))
			})

			mountAdminTaxonomy(r, d.Taxonomy, logg)

			r.Route("/quotes", func(r chi.Router) {
				r.Get("/", controllers.ListQuotes(d.Quotes, logg))
				r.Get("/{id}", controllers.GetQuote(d.Quotes, logg))
				r.Put("/{id}", controllers.AdminUpdateQuote(d.Quotes, logg))
				r.Delete("/{id}", controllers.AdminCancelQuote(d.Quotes, logg))
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.AdminRoleSuperAdmin, enums.AdminRoleAdmin))
				r.Get("/", controllers.AdminListUsers(d.AdminUsers, logg))
				r.Post("/", controllers.AdminCreateUser(d.AdminUsers, logg))
				r.Get("/{id}", controllers.AdminGetUser(d.AdminUsers, logg))
				r.Put("/{id}", controllers.AdminUpdateUser(d.AdminUsers, logg))
				r.Delete("/{id}", controllers.AdminDeactivateUser(d.AdminUsers, logg))
			})

			r.Route("/faq", func(r chi.Router) {
				r.Get("/", controllers.AdminListFAQ(d.FAQ, logg))
				r.Post("/", controllers.AdminCreateFAQ(d.FAQ, logg))
				r.Get("/{id}", controllers.AdminGetFAQ(d.FAQ, logg))
				r.Put("/{id}", controllers.AdminUpdateFAQ(d.FAQ, logg))
				r.Delete("/{id}", controllers.AdminDeleteFAQ(d.FAQ, logg))
			})

			r.Route("/contact-submissions", func(r chi.Router) {
				r.Get("/", controllers.AdminListTickets(d.Support, logg))
				r.Get("/{id}", controllers.AdminGetTicket(d.Support, logg))
				r.Put("/{id}", controllers.AdminUpdateTicket(d.Support, logg))
				r.Post("/{id}/reply", controllers.AdminReplyTicket(d.Support, logg))
			})

			r.Post("/uploads", controllers.AdminUpload(d.Uploads, logg))
		})
	})

	return r
}

func mountPublicTaxonomy(r chi.Router, svc taxonomy.Service, logg *logger.Logger) {
	if svc == nil {
		return
	}
	r.Get("/categories/validate-slug", controllers.ValidateCategorySlug(svc, logg))
	r.Get("/categories", controllers.ListTaxonomy(svc.Categories(), true, logg))
	r.Get("/categories/{id}", controllers.GetTaxonomy(svc.Categories(), true, logg))
	r.Get("/subcategories", controllers.ListTaxonomy(svc.Subcategories(), true, logg))
	r.Get("/subcategories/{id}", controllers.GetTaxonomy(svc.Subcategories(), true, logg))
	r.Get("/manufacturers", controllers.ListTaxonomy(svc.Manufacturers(), true, logg))
	r.Get("/manufacturers/{id}", controllers.GetTaxonomy(svc.Manufacturers(), true, logg))
	r.Get("/brands", controllers.ListTaxonomy(svc.Brands(), true, logg))
	r.Get("/brands/{id}", controllers.GetTaxonomy(svc.Brands(), true, logg))
	r.Get("/models", controllers.ListTaxonomy(svc.Models(), true, logg))
	r.Get("/models/{id}", controllers.GetTaxonomy(svc.Models(), true, logg))
}

func mountAdminTaxonomy(r chi.Router, svc taxonomy.Service, logg *logger.Logger) {
	if svc == nil {
		return
	}
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", controllers.ListTaxonomy(svc.Categories(), false, logg))
		r.Post("/", controllers.AdminCreateCategory(svc, logg))
		r.Get("/{id}", controllers.GetTaxonomy(svc.Categories(), false, logg))
		r.Put("/{id}", controllers.AdminUpdateCategory(svc, logg))
		r.Delete("/{id}", controllers.DeleteTaxonomy(svc.Categories(), logg))
	})
	r.Route("/subcategories", func(r chi.Router) {
		r.Get("/", controllers.ListTaxonomy(svc.Subcategories(), false, logg))
		r.Post("/", controllers.AdminCreateSubcategory(svc, logg))
		r.Get("/{id}", controllers.GetTaxonomy(svc.Subcategories(), false, logg))
		r.Put("/{id}", controllers.AdminUpdateSubcategory(svc, logg))
		r.Delete("/{id}", controllers.DeleteTaxonomy(svc.Subcategories(), logg))
	})
	r.Route("/manufacturers", func(r chi.Router) {
		r.Get("/", controllers.ListTaxonomy(svc.Manufacturers(), false, logg))
		r.Post("/", controllers.AdminCreateManufacturer(svc, logg))
		r.Get("/{id}", controllers.GetTaxonomy(svc.Manufacturers(), false, logg))
		r.Put("/{id}", controllers.AdminUpdateManufacturer(svc, logg))
		r.Delete("/{id}", controllers.DeleteTaxonomy(svc.Manufacturers(), logg))
	})
	r.Route("/brands", func(r chi.Router) {
		r.Get("/", controllers.ListTaxonomy(svc.Brands(), false, logg))
		r.Post("/", controllers.AdminCreateBrand(svc, logg))
		r.Get("/{id}", controllers.GetTaxonomy(svc.Brands(), false, logg))
		r.Put("/{id}", controllers.AdminUpdateBrand(svc, logg))
		r.Delete("/{id}", controllers.DeleteTaxonomy(svc.Brands(), logg))
	})
	r.Route("/models", func(r chi.Router) {
		r.Get("/", controllers.ListTaxonomy(svc.Models(), false, logg))
		r.Post("/", controllers.AdminCreateModel(svc, logg))
		r.Get("/{id}", controllers.GetTaxonomy(svc.Models(), false, logg))
		r.Put("/{id}", controllers.AdminUpdateModel(svc, logg))
		r.Delete("/{id}", controllers.DeleteTaxonomy(svc.Models(), logg))
	})
}
