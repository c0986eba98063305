package main

import (
	"context"
	"log/slog"
	"os"

	"moducare/config"
	"moducare/internal/delivery"
	"moducare/internal/delivery/http"
	"moducare/internal/delivery/http/middleware"
	"moducare/internal/delivery/http/router/handler"
	"moducare/internal/domain/service"
	"moducare/internal/infra/cache"
	logs "moducare/internal/infra/log"
	"moducare/internal/infra/qrcode"
	"moducare/internal/infra/render"
	"moducare/internal/infra/securestore"
	"moducare/internal/infra/transport"
	"moducare/internal/usecase/impl"

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
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		transport.NewHeaderRegistry,
		transport.NewClient,
		cache.NewMemoryCache,
		securestore.NewFileStore,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			transport.NewAuthAPI,
			transport.NewReportAPI,
			transport.NewDiaryAPI,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			render.NewFileblobSink,
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
			impl.NewSessionService,
			impl.NewReportService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewLoggerMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewReportHandler,
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
