package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"jetsetgo/cmd/fx/config_fx"
	"jetsetgo/cmd/fx/controllers_fx"
	"jetsetgo/cmd/fx/crew_fx"
	"jetsetgo/cmd/fx/db_fx"
	"jetsetgo/cmd/fx/logger_fx"
	"jetsetgo/cmd/fx/telemetry_fx"
	"jetsetgo/cmd/fx/trip_fx"
	"jetsetgo/internal/api/controllers"
	"jetsetgo/internal/config"
	"jetsetgo/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		telemetry_fx.Module,
		db_fx.Module,
		crew_fx.Module,
		trip_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	server := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			log.Info("Starting HTTP server", zap.String("addr", server.Addr))
			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	log *zap.Logger,
	tripController *controllers.TripController,
	healthController *controllers.HealthController) *gin.Engine {

	if cfg.Log.Format != "console" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowOrigins))

	controllers.RegisterRoutes(r, tripController, healthController)

	return r
}
