package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/storefront-server/internal/api/http/handler"
	"github.com/dtroode/storefront-server/internal/api/http/middleware"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// Settings controls cross-origin access and the session cookie.
type Settings struct {
	AllowedOrigins []string
	SecureCookie   bool
	SessionTTL     time.Duration
}

// Router wires HTTP handlers and middleware for the storefront API.
type Router struct {
	credentials    model.CredentialService
	coupons        model.CouponService
	products       model.ProductService
	signer         model.TokenSigner
	contextManager model.ContextManager
	settings       Settings
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	credentials model.CredentialService,
	coupons model.CouponService,
	products model.ProductService,
	signer model.TokenSigner,
	contextManager model.ContextManager,
	settings Settings,
	logger *logger.Logger,
) *Router {
	return &Router{
		credentials:    credentials,
		coupons:        coupons,
		products:       products,
		signer:         signer,
		contextManager: contextManager,
		settings:       settings,
		logger:         logger,
	}
}

// Register builds the handler tree.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)

	mux := chi.NewRouter()
	mux.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		logging.Handle,
		chimiddleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   r.settings.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/api", func(api chi.Router) {
		api.Route("/auth", r.registerAuthRoutes)
		api.Route("/coupon", r.registerCouponRoutes)
		api.Route("/product", r.registerProductRoutes)
	})

	return mux
}

func (r *Router) registerAuthRoutes(rt chi.Router) {
	authenticate := middleware.NewAuthenticate(r.signer, r.contextManager, r.logger)
	auth := handler.NewAuth(r.credentials, r.contextManager, handler.CookieSettings{
		TTL:    r.settings.SessionTTL,
		Secure: r.settings.SecureCookie,
	}, r.logger)

	rt.Post("/signup", auth.SignUp)
	rt.Post("/login", auth.Login)
	rt.With(authenticate.Optional).Get("/logout", auth.Logout)
	rt.Post("/password/forgot", auth.ForgotPassword)
	rt.Post("/password/reset/{token}", auth.ResetPassword)

	rt.Group(func(private chi.Router) {
		private.Use(authenticate.Handle)
		private.Post("/password/change", auth.ChangePassword)
		private.Get("/profile", auth.Profile)
		private.With(middleware.RequireRole(r.contextManager, r.logger, model.RoleAdmin)).
			Put("/users/{id}/role", auth.ChangeRole)
	})
}

func (r *Router) registerCouponRoutes(rt chi.Router) {
	authenticate := middleware.NewAuthenticate(r.signer, r.contextManager, r.logger)
	coupons := handler.NewCoupon(r.coupons, r.logger)

	rt.Use(
		authenticate.Handle,
		middleware.RequireRole(r.contextManager, r.logger, model.RoleAdmin, model.RoleModerator),
	)
	rt.Post("/", coupons.Create)
	rt.Get("/", coupons.List)
	rt.Put("/deactivate/{id}", coupons.Deactivate)
	rt.Delete("/{id}", coupons.Delete)
}

func (r *Router) registerProductRoutes(rt chi.Router) {
	authenticate := middleware.NewAuthenticate(r.signer, r.contextManager, r.logger)
	products := handler.NewProduct(r.products, r.logger)

	rt.Get("/{id}", products.Get)

	rt.Group(func(admin chi.Router) {
		admin.Use(
			authenticate.Handle,
			middleware.RequireRole(r.contextManager, r.logger, model.RoleAdmin),
		)
		admin.Post("/", products.Create)
		admin.Delete("/{id}", products.Delete)
	})
}
