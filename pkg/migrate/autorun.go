package migrate

import (
	"context"
	"fmt"

	"github.com/quizhubhq/quizhub-backend/pkg/config"
	"github.com/quizhubhq/quizhub-backend/pkg/db"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
)

// MaybeRunDev applies migrations at boot when the auto-migrate flag is set.
// Refused outside dev so production schema changes stay explicit.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg == nil || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	if !cfg.App.IsDev() {
		return fmt.Errorf("auto-migrate is only allowed in the dev environment")
	}
	return Run(ctx, client.DB(), logg)
}
