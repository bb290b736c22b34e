package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clipprmobile/config"
	"clipprmobile/cron"
	"clipprmobile/database"
	appointmentRepo "clipprmobile/database/repository/appointment"
	userRepoPkg "clipprmobile/database/repository/user"
	"clipprmobile/handlers"
	"clipprmobile/metrics"
	"clipprmobile/middleware"
	"clipprmobile/routes"
	"clipprmobile/services/geocoding"
	"clipprmobile/services/scheduling"
	"clipprmobile/services/travel"
	"clipprmobile/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	mongoClient, err := database.InitDB(rootCtx)
	if err != nil {
		logger.Fatal("main: failed to initialize MongoDB", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	// Redis only backs the geocode cache; run without it if it is down.
	if err := utils.InitCache(); err != nil {
		logger.Warn("main: geocode cache disabled", zap.Error(err))
	}
	cacheClient := utils.GetCacheClient()

	utils.StartHealthMonitor(rootCtx, 30*time.Second, cacheClient, mongoClient)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.New(registry)
	if err != nil {
		logger.Fatal("main: failed to register metrics", zap.Error(err))
	}

	settings := scheduling.SettingsFromConfig(config.AppConfig)
	if err := settings.Validate(); err != nil {
		logger.Fatal("main: invalid scheduling configuration", zap.Error(err))
	}

	// repositories.
	db := database.Database()
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	aptRepo := appointmentRepo.NewMongoAppointmentRepo(db)
	if r, ok := userRepo.(*userRepoPkg.MongoUserRepo); ok {
		if err := r.EnsureIndexes(rootCtx); err != nil {
			logger.Warn("main: user indexes", zap.Error(err))
		}
	}
	if r, ok := aptRepo.(*appointmentRepo.MongoAppointmentRepo); ok {
		if err := r.EnsureIndexes(rootCtx); err != nil {
			logger.Warn("main: appointment indexes", zap.Error(err))
		}
	}

	// travel.
	timeout := time.Duration(config.AppConfig.TravelTimeoutSeconds) * time.Second
	var geocoder geocoding.Geocoder = geocoding.NewGoogleGeocoder(
		config.AppConfig.GoogleAPIKey, config.AppConfig.MapsBaseURL, timeout, logger, recorder)
	if cacheClient != nil {
		ttl := time.Duration(config.AppConfig.GeocodeCacheTTLHours) * time.Hour
		geocoder = geocoding.NewCachedGeocoder(cacheClient, geocoder, ttl, logger, recorder)
	}
	provider := travel.NewGoogleProvider(travel.GoogleConfig{
		APIKey:            config.AppConfig.GoogleAPIKey,
		BaseURL:           config.AppConfig.MapsBaseURL,
		Timeout:           timeout,
		TransitMultiplier: config.AppConfig.TravelTransitMultiplier,
	}, geocoder, logger, recorder)

	// background geocode warm-up; only useful with the cache in place.
	if cacheClient != nil && config.AppConfig.GeocodeWarmEnabled {
		warmer := &cron.GeocodeWarmer{Appointments: aptRepo, Geocoder: geocoder, Logger: logger}
		stopWorker, err := cron.StartGeocodeWorker(cron.WorkerConfig{
			Redis: asynq.RedisClientOpt{
				Addr:     config.AppConfig.RedisAddr,
				Password: config.AppConfig.RedisPassword,
				DB:       config.AppConfig.RedisQueueDB,
			},
			CronSpec: config.AppConfig.GeocodeWarmSchedule,
			Window:   time.Duration(config.AppConfig.GeocodeWarmWindowHours) * time.Hour,
		}, warmer, logger)
		if err != nil {
			logger.Warn("main: geocode warm-up disabled", zap.Error(err))
		} else {
			defer stopWorker()
		}
	}

	// services.
	schedulingService := &scheduling.DefaultSchedulingService{
		UserRepo:        userRepo,
		AppointmentRepo: aptRepo,
		Buffers:         scheduling.NewBufferCalculator(provider, settings, logger, recorder),
		Scanner:         scheduling.NewSlotScanner(settings),
		Renderer:        scheduling.NewCalendarRenderer(settings),
		Settings:        settings,
		Logger:          logger,
	}

	schedulingHandler := handlers.NewSchedulingHandler(schedulingService)
	travelHandler := handlers.NewTravelHandler(provider, geocoder, settings.Fallbacks)

	handlerBundle := &handlers.HandlerBundle{
		GetAvailabilityHandler: schedulingHandler.GetAvailabilityHandler,
		GetCalendarHandler:     schedulingHandler.GetCalendarHandler,
		GetDayBuffersHandler:   schedulingHandler.GetDayBuffersHandler,
		EstimateTravelHandler:  travelHandler.EstimateTravelHandler,
		GeocodeHandler:         travelHandler.GeocodeHandler,
		HealthHandler:          handlers.HealthHandler,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, registry)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("main: starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if cacheClient != nil {
		_ = cacheClient.Close()
	}
	logger.Info("main: server stopped gracefully")
}
