package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chargerate/internal/clients"
	"chargerate/internal/config"
	httpserver "chargerate/internal/http"
	"chargerate/internal/http/handlers"
	"chargerate/internal/http/middleware"
	redisstore "chargerate/internal/redis"
	"chargerate/internal/service"
	libredis "chargerate/libs/redis"
)

// App wires rate service dependencies.
type App struct {
	server *httpserver.Server
	redis  *redis.Client
	logger *zap.Logger
}

// New constructs application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	redisClient, err := libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		return nil, err
	}

	quoteStore := redisstore.NewQuoteStore(redisClient, logger)
	exchangeClient := clients.NewExchangeClient(cfg.Exchange.BaseURL, logger)
	rateService := service.NewRateService(quoteStore, exchangeClient, logger)

	routes := httpserver.Routes{
		ApplyRate:     handlers.NewRateHandler(rateService, logger),
		ConvertedRate: handlers.NewConversionHandler(rateService, logger),
		Health:        handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes, middleware.APIKeyMiddleware(cfg.Auth.APIKeySecret))
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
}
