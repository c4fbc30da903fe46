package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"jetsetgo/internal/config"
	"jetsetgo/internal/infra"
	"jetsetgo/internal/models/db_models"
	"jetsetgo/internal/repositories"
	mem "jetsetgo/pkg/memcache"
)

var Module = fx.Provide(provideTripPlanRepository)

// provideTripPlanRepository uses Postgres when storage.postgres_url is set and reachable, and
// the in-memory store otherwise.
func provideTripPlanRepository(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) repositories.TripPlanRepositoryInterface {
	if cfg.Storage.PostgresURL != "" {
		db, err := infra.InitPostgresql(cfg.Storage.PostgresURL, log)
		if err == nil {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					infra.ClosePostgresql(db, log)
					return nil
				},
			})
			return repositories.NewTripPlanRepository(db)
		}
		log.Warn("postgres unavailable, keeping plan history in memory", zap.Error(err))
	}

	log.Info("plan history in memory", zap.Duration("ttl", cfg.Storage.MemoryTTL))
	return repositories.NewMemoryTripPlanRepository(mem.NewTTLStore[db_models.TripPlan](), cfg.Storage.MemoryTTL)
}
