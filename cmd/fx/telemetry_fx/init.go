package telemetry_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"jetsetgo/internal/config"
	"jetsetgo/pkg/telemetry"
)

var Module = fx.Provide(provideTelemetry, providePlanMetrics)

func provideTelemetry(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (telemetry.ShutdownFunc, error) {
	shutdown, err := telemetry.Init(context.Background(), telemetry.Config{
		Exporter:     cfg.Telemetry.Exporter,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure: cfg.Telemetry.OTLPInsecure,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.Telemetry.ServiceVersion,
	})
	if err != nil {
		return nil, err
	}
	log.Info("telemetry initialised",
		zap.String("exporter", cfg.Telemetry.Exporter),
		zap.String("version", cfg.Telemetry.ServiceVersion))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return shutdown, nil
}

// providePlanMetrics takes the shutdown func only so the global meter provider is installed first.
func providePlanMetrics(_ telemetry.ShutdownFunc, log *zap.Logger) *telemetry.PlanMetrics {
	metrics, err := telemetry.NewPlanMetrics()
	if err != nil {
		log.Warn("plan metrics disabled", zap.Error(err))
		return nil
	}
	return metrics
}
