// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/runpro9ja/adminhub/internal/app/resources"
	"github.com/runpro9ja/adminhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Startup runs after the backends are up and before the handler is built.
// It applies TIMEOUT_* overrides, registers the shared templates and starts
// the API probe.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n), zap.Any("timeouts", timeouts.Current()))
	}
	resources.LoadSharedTemplates()
	if deps.Probe != nil {
		deps.Probe.Start()
	}
	return nil
}
