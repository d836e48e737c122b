package main

import (
	"context"
	"log/slog"
	"os"

	"handshakeme/config"
	"handshakeme/internal/delivery"
	"handshakeme/internal/delivery/http"
	"handshakeme/internal/delivery/http/middleware"
	"handshakeme/internal/delivery/http/router/handler"
	"handshakeme/internal/domain/service"
	"handshakeme/internal/infra/auth"
	"handshakeme/internal/infra/cache"
	"handshakeme/internal/infra/geocode"
	logs "handshakeme/internal/infra/log"
	"handshakeme/internal/infra/persistence/postgres"
	"handshakeme/internal/infra/pubsub"
	"handshakeme/internal/infra/qrcode"
	"handshakeme/internal/infra/ratelimit"
	redisinfra "handshakeme/internal/infra/redis"
	"handshakeme/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			redisinfra.New,
			cache.NewRedisStore,
			cache.New,
			ratelimit.New,
			geocode.NewYandexClient,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewMasterRepository,
			postgres.NewCategoryRepository,
			postgres.NewOfferingRepository,
			postgres.NewPortfolioRepository,
			postgres.NewScheduleRepository,
			postgres.NewTimeSessionRepository,
			postgres.NewGeocodingUsageRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSearchService,
			impl.NewGeocodingService,
			impl.NewTimeSessionService,
			impl.NewProfileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSearchHandler,
			handler.NewGeocodingHandler,
			handler.NewTimeSessionHandler,
			handler.NewMasterHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
