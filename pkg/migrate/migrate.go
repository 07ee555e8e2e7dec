package migrate

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
)

// Run applies the schema for every persisted entity. Parent tables migrate
// before children so foreign keys resolve.
func Run(ctx context.Context, conn *gorm.DB, logg *logger.Logger) error {
	if conn == nil {
		return fmt.Errorf("db connection is required")
	}

	err := conn.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.CompanyMembership{},
		&models.Action{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
	)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "migrations applied")
	}
	return nil
}
