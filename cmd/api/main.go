package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/capacity-service/internal/application"
	kafkaInfra "github.com/wms-platform/capacity-service/internal/infrastructure/kafka"
	mongoRepo "github.com/wms-platform/capacity-service/internal/infrastructure/mongodb"
	"github.com/wms-platform/capacity-service/internal/pkg/logging"
	"github.com/wms-platform/capacity-service/internal/pkg/metrics"
	"github.com/wms-platform/capacity-service/internal/pkg/middleware"
	"github.com/wms-platform/capacity-service/internal/validation"
)

const serviceName = "capacity-service"

func main() {
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting capacity-service API")

	config := loadConfig()
	ctx := context.Background()

	metricsConfig := metrics.DefaultConfig(serviceName)
	m := metrics.New(metricsConfig)
	logger.Info("Metrics initialized")

	mongoClient, err := mongoRepo.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	publisher := kafkaInfra.NewEventPublisher(config.Kafka, m, logger)
	defer publisher.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers, "topic", config.Kafka.Topic)

	// Repositories
	db := mongoClient.Database()
	masterData := mongoRepo.NewMasterDataRepository(db)
	containerRepo := mongoRepo.NewContainerRepository(db)
	inboundRepo := mongoRepo.NewInboundRunRepository(db)
	outboundRepo := mongoRepo.NewOutboundRunRepository(db)

	// Validation pipeline
	validators := validation.NewValidators(
		masterData.Warehouses(),
		masterData.Companies(),
		masterData.Customers(),
		masterData.SKUs(),
		containerRepo,
		inboundRepo,
		outboundRepo,
	)
	pipeline := validation.NewPipeline(validators)

	// Application services
	ledger := application.NewCapacityLedger(containerRepo)
	capacityService := application.NewCapacityService(pipeline, ledger, publisher, logger)
	runService := application.NewRunService(pipeline, inboundRepo, outboundRepo, publisher, logger)
	containerService := application.NewContainerService(masterData.Warehouses(), containerRepo, publisher, logger)

	// Router
	router := gin.New()
	middleware.Setup(router, logger.Logger)
	router.Use(m.Middleware())

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/inbounds", startInboundHandler(runService, m))
		api.GET("/inbounds/:inboundId", getInboundHandler(runService))
		api.POST("/inbounds/:inboundId/close", endInboundHandler(runService, m))

		api.POST("/outbounds", startOutboundHandler(runService, m))
		api.GET("/outbounds/:outboundId", getOutboundHandler(runService))
		api.POST("/outbounds/:outboundId/close", endOutboundHandler(runService, m))

		api.POST("/containers", registerContainerHandler(containerService))
		api.GET("/containers/:containerId", getContainerHandler(containerService))
		api.POST("/containers/:containerId/discontinue", discontinueContainerHandler(containerService))

		api.POST("/inventory/inbound", inventoryInboundHandler(capacityService, m))
		api.POST("/inventory/outbound", inventoryOutboundHandler(capacityService, m))
		api.POST("/inventory/move", moveInventoryHandler(capacityService))

		api.POST("/actions/validate", validateActionHandler(capacityService, m))
	}

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongoRepo.Config
	Kafka      *kafkaInfra.Config
}

func loadConfig() *Config {
	mongoConfig := mongoRepo.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", "mongodb://localhost:27017")
	mongoConfig.Database = getEnv("MONGODB_DATABASE", "capacity_db")

	kafkaConfig := kafkaInfra.DefaultConfig([]string{getEnv("KAFKA_BROKERS", "localhost:9092")})
	kafkaConfig.Topic = getEnv("KAFKA_TOPIC", "wms.capacity.events")

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8012"),
		MongoDB:    mongoConfig,
		Kafka:      kafkaConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
