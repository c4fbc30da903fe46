package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"jetsetgo/internal/config"
	"jetsetgo/pkg/logger"
)

var Module = fx.Provide(provideLogger)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	undo := zap.ReplaceGlobals(log)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			undo()
			// stderr sync fails on some platforms; nothing to do about it at shutdown.
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}
