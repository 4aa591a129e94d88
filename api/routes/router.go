package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulgashop/envios-backend/api/controllers"
	"github.com/pulgashop/envios-backend/api/middleware"
	"github.com/pulgashop/envios-backend/api/responses"
	"github.com/pulgashop/envios-backend/internal/address"
	"github.com/pulgashop/envios-backend/internal/deliveries"
	"github.com/pulgashop/envios-backend/internal/quotes"
	"github.com/pulgashop/envios-backend/internal/territory"
	"github.com/pulgashop/envios-backend/pkg/chilexpress"
	"github.com/pulgashop/envios-backend/pkg/config"
	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
	"github.com/pulgashop/envios-backend/pkg/logger"
)

// Deps bundles everything the HTTP surface is wired with.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Pingers map[string]controllers.Pinger

	Addresses     address.Service
	Territory     territory.Service
	QuoteManager  *quotes.Manager
	QuoteRecorder *quotes.Recorder
	Deliveries    deliveries.Service

	Carrier  *chilexpress.Client
	Registry *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(nil),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", controllers.AddressList(deps.Addresses, cfg, logg))
			r.Post("/", controllers.AddressCreate(deps.Addresses, cfg, logg))
			r.Patch("/{addressId}", controllers.AddressUpdate(deps.Addresses, cfg, logg))
			r.Delete("/{addressId}", controllers.AddressDelete(deps.Addresses, cfg, logg))
		})

		r.Route("/territory", func(r chi.Router) {
			r.Get("/regions", controllers.TerritoryTree(deps.Territory, logg))
			r.Get("/resolve", controllers.TerritoryResolve(deps.Territory, logg))
		})

		r.Route("/carrier", func(r chi.Router) {
			r.Get("/regions", controllers.CarrierRegions(deps.Territory, logg))
			r.Get("/coverage-areas", controllers.CarrierCoverageAreas(deps.Territory, logg))
			r.Get("/resolve", controllers.CarrierResolve(deps.Territory, logg))
			r.Delete("/cache", carrierCacheClear(deps.Carrier, logg))
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", controllers.QuoteSnapshot(deps.QuoteManager, cfg, logg))
			r.Post("/", controllers.QuoteRequest(deps.QuoteManager, cfg, logg))
			r.Post("/select", controllers.QuoteSelect(deps.QuoteManager, cfg, logg))
			r.Post("/record", controllers.QuoteRecord(deps.QuoteRecorder, cfg, logg))
		})

		r.Route("/deliveries", func(r chi.Router) {
			r.Get("/", controllers.DeliveryList(deps.Deliveries, cfg, logg))
			r.Post("/", controllers.DeliveryConfirm(deps.Deliveries, deps.Addresses, deps.QuoteManager, cfg, logg))
			r.Delete("/{deliveryId}", controllers.DeliveryDelete(deps.Deliveries, cfg, logg))
		})
	})

	return r
}

func carrierCacheClear(carrier *chilexpress.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if carrier == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "carrier client unavailable"))
			return
		}
		if err := carrier.ClearCache(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing carrier cache"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
