package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/pulgashop/envios-backend/api/controllers"
	"github.com/pulgashop/envios-backend/api/routes"
	"github.com/pulgashop/envios-backend/internal/address"
	"github.com/pulgashop/envios-backend/internal/cart"
	"github.com/pulgashop/envios-backend/internal/deliveries"
	"github.com/pulgashop/envios-backend/internal/quotes"
	"github.com/pulgashop/envios-backend/internal/territory"
	"github.com/pulgashop/envios-backend/pkg/chilexpress"
	"github.com/pulgashop/envios-backend/pkg/config"
	"github.com/pulgashop/envios-backend/pkg/coreapi"
	"github.com/pulgashop/envios-backend/pkg/db"
	"github.com/pulgashop/envios-backend/pkg/db/models"
	"github.com/pulgashop/envios-backend/pkg/logger"
	"github.com/pulgashop/envios-backend/pkg/metrics"
	"github.com/pulgashop/envios-backend/pkg/postal"
	"github.com/pulgashop/envios-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "envios-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "envios-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.AutoMigrate {
		if err := dbClient.DB().AutoMigrate(&models.Address{}, &models.Delivery{}, &models.QuoteRecord{}); err != nil {
			logg.Error(context.Background(), "failed to run auto-migration", err)
			os.Exit(1)
		}
	}

	pingers := map[string]controllers.Pinger{"database": dbClient}

	var carrierCache chilexpress.Cache = chilexpress.NewMemoryCache(time.Now)
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		carrierCache = redisClient
		pingers["redis"] = redisClient
	}

	carrierClient := chilexpress.NewClient(cfg.Chilexpress.APIKey,
		chilexpress.WithBaseURL(cfg.Chilexpress.BaseURL),
		chilexpress.WithHTTPClient(&http.Client{Timeout: cfg.Chilexpress.Timeout}),
		chilexpress.WithCache(carrierCache, cfg.Chilexpress.CacheTTL),
	)
	postalClient := postal.NewClient(cfg.Postal.BaseURL,
		postal.WithHTTPClient(&http.Client{Timeout: cfg.Postal.Timeout}),
		postal.WithCache(carrierCache, cfg.Postal.CacheTTL),
	)

	var coreClient *coreapi.Client
	if cfg.CoreAPI.BaseURL != "" {
		coreClient = coreapi.NewClient(cfg.CoreAPI.BaseURL,
			coreapi.WithHTTPClient(&http.Client{Timeout: cfg.CoreAPI.Timeout}),
		)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	shippingMetrics := metrics.NewShippingMetrics(registry)

	defaults := shippingDefaults(cfg.Shipping, logg)

	var addressForwarder address.Forwarder
	var forwarder quotes.Forwarder
	var remote deliveries.CoreAPI
	if coreClient != nil {
		addressForwarder = coreClient
		forwarder = coreClient
		remote = coreClient
	}

	addressService := address.NewService(address.NewRepository(dbClient.DB()), addressForwarder, logg)
	territoryService := territory.NewService(postalClient, carrierClient)
	quoteManager := quotes.NewManager(func() *quotes.Workflow {
		return quotes.NewWorkflow(carrierClient, cfg.Shipping.OriginCountyCode, defaults, shippingMetrics, logg)
	})

	quoteRecorder := quotes.NewRecorder(quotes.NewRecordRepository(dbClient.DB()), forwarder, logg)

	deliveryService := deliveries.NewService(
		deliveries.NewRepository(dbClient.DB()),
		remote,
		deliveries.NewTrackingGenerator(),
		cfg.Shipping.OriginCountyCode,
		defaults,
		shippingMetrics,
		logg,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting envios api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			Pingers:       pingers,
			Addresses:     addressService,
			Territory:     territoryService,
			QuoteManager:  quoteManager,
			QuoteRecorder: quoteRecorder,
			Deliveries:    deliveryService,
			Carrier:       carrierClient,
			Registry:      registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// shippingDefaults parses the configured fallback dimensions, keeping the
// shop-wide standards for any value that does not parse.
func shippingDefaults(cfg config.ShippingConfig, logg *logger.Logger) cart.Defaults {
	defaults := cart.StandardDefaults()

	parse := func(raw string, dest *decimal.Decimal, field string) {
		if raw == "" {
			return
		}
		value, err := decimal.NewFromString(raw)
		if err != nil || !value.IsPositive() {
			ctx := logg.WithField(context.Background(), "field", field)
			logg.Warn(ctx, "ignoring invalid shipping default")
			return
		}
		*dest = value
	}

	parse(cfg.DefaultWeightKg, &defaults.WeightKg, "weight_kg")
	parse(cfg.DefaultLengthCm, &defaults.LengthCm, "length_cm")
	parse(cfg.DefaultWidthCm, &defaults.WidthCm, "width_cm")
	parse(cfg.DefaultHeightCm, &defaults.HeightCm, "height_cm")
	return defaults
}
