package trip_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"jetsetgo/internal/config"
	"jetsetgo/internal/repositories"
	"jetsetgo/internal/services"
	"jetsetgo/pkg/telemetry"
)

var Module = fx.Provide(provideTripService)

func provideTripService(
	engine services.ItineraryEngine,
	repo repositories.TripPlanRepositoryInterface,
	cfg *config.Config,
	log *zap.Logger,
	metrics *telemetry.PlanMetrics,
) services.TripServiceInterface {
	return services.NewTripService(engine, repo, services.TripServiceConfig{
		Timeout: cfg.Engine.Timeout,
		MaxDays: cfg.Trip.MaxDays,
	}, log, metrics)
}
