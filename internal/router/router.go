package router

import (
	"net/http"

	"marketplace-admin/internal/config"
	"marketplace-admin/internal/feedback"
	"marketplace-admin/internal/finance"
	"marketplace-admin/internal/handler"
	"marketplace-admin/internal/logger"
	mw "marketplace-admin/internal/middleware"
	"marketplace-admin/internal/metrics"
	"marketplace-admin/internal/notify"
	"marketplace-admin/internal/offer"
	"marketplace-admin/internal/order"
	"marketplace-admin/internal/report"
	"marketplace-admin/internal/session"
	"marketplace-admin/internal/stock"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Deps struct {
	Config     *config.Config
	Sessions   *session.Manager
	Client     session.Poster
	Orders     order.Service
	Stock      stock.Service
	Offers     offer.Service
	Finance    finance.Service
	Feedback   feedback.Service
	Workspaces *handler.Workspaces
	Hub        *notify.Hub
	Metrics    *metrics.Registry
	Limiter    *mw.Limiter
}

// New creates a Chi router with all back-office routes wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(mw.Authenticate(d.Sessions))
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware)
	}

	system := handler.NewSystemHandler(d.Metrics, d.Sessions, d.Workspaces, d.Hub, d.Config.CORSOrigins)
	system.RegisterPublicRoutes(r)

	handler.NewAuthHandler(d.Client, d.Sessions, d.Config.AppEnv == "production").RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(session.RoleAdmin))

		system.RegisterRoutes(r)

		r.Route("/orders", handler.NewOrderHandler(d.Orders).RegisterRoutes)
		r.Route("/deliveries", handler.NewDeliveryHandler(d.Workspaces).RegisterRoutes)
		r.Route("/stock", handler.NewStockHandler(d.Stock).RegisterRoutes)
		r.Route("/offers", handler.NewOfferHandler(d.Offers).RegisterRoutes)
		r.Route("/finance", handler.NewFinanceHandler(d.Finance).RegisterRoutes)
		r.Route("/feedback", handler.NewFeedbackHandler(d.Feedback).RegisterRoutes)

		company := report.Company{
			Name:    d.Config.CompanyName,
			Address: d.Config.CompanyAddress,
			Phone:   d.Config.CompanyPhone,
		}
		r.Route("/reports", handler.NewReportHandler(d.Orders, d.Stock, d.Offers, d.Finance, company).RegisterRoutes)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	})

	return r
}
