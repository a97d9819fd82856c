package http

import (
	"net/http"

	"github.com/car-parts-api/internal/application/catalog"
	"github.com/car-parts-api/internal/application/order"
	"github.com/car-parts-api/internal/application/payment"
	"github.com/car-parts-api/internal/application/review"
	"github.com/car-parts-api/internal/application/user"
	"github.com/car-parts-api/internal/config"
	"github.com/car-parts-api/internal/transport/http/handler"
	appmiddleware "github.com/car-parts-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to the public write endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	userSvc := user.NewService(deps.UserRepo, deps.JWTProvider)
	orderSvc := order.NewService(deps.OrderRepo, deps.SMSSender, deps.Mailer)
	paymentSvc := payment.NewService(deps.PaymentGateway)
	catalogSvc := catalog.NewService(deps.PartRepo, deps.ImageStore)
	reviewSvc := review.NewService(deps.ReviewRepo)

	adminMw := appmiddleware.RequireAdmin(userSvc)

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(userSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	partH := handler.NewPartHandler(catalogSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/health-check/ping", healthH.Ping)

	// The /user/{id} wildcard is shared across methods: for PUT the key is
	// the email (the directory's natural key), for GET and PATCH the store id.
	r.With(sensitiveRL.Limit).Put("/user/{id}", userH.Upsert)
	r.Get("/user", userH.GetByEmail)
	r.Patch("/user/{id}", userH.UpdateProfile)

	r.Get("/parts", partH.List)
	r.Get("/part/{id}", partH.Get)
	r.Get("/part/{id}/image", partH.DownloadImage)

	r.Get("/review", reviewH.List)
	r.Post("/review", reviewH.Create)

	// Order placement and single-order reads ship unauthenticated for
	// compatibility with existing clients; REQUIRE_ORDER_AUTH tightens both.
	if cfg.RequireOrderAuth {
		r.With(authMw, sensitiveRL.Limit).Post("/order", orderH.Create)
		r.With(authMw).Get("/order/{id}", orderH.Get)
	} else {
		r.With(sensitiveRL.Limit).Post("/order", orderH.Create)
		r.Get("/order/{id}", orderH.Get)
	}

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Get("/user/{id}", userH.Get)
		r.Get("/admin/{email}", userH.AdminStatus)

		// Owner-scoped order listing: verified email must match the route.
		r.With(appmiddleware.RequireSelf("email")).Get("/orders/{email}", orderH.ListByOwner)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(adminMw)

			r.Get("/users", userH.List)
			r.Put("/user/admin/{email}", userH.Promote)

			r.Get("/orders", orderH.ListAll)
			r.Patch("/order/{id}", orderH.ConfirmPayment)
			r.Patch("/orderstatus/{id}", orderH.MarkShipped)
			r.Delete("/order/{id}", orderH.Delete)

			r.Post("/create-payment-intent", paymentH.CreateIntent)

			r.Post("/part", partH.Create)
			r.Delete("/part/{id}", partH.Delete)
			r.Post("/part/{id}/image", partH.UploadImage)
		})
	})

	return r
}
