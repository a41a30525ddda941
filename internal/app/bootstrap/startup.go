// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/thecityofwhiteplains/cityguide/internal/app/resources"
	userstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/users"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/authutil"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are
// complete, but before the HTTP handler is built and requests are served.
//
// It loads the shared console templates and, when configured, seeds the
// initial admin account so a fresh deployment has someone who can sign
// in to the moderation console.
//
// Returning a non-nil error will abort startup and prevent the server
// from starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	// Note: Indexes are created in EnsureSchema via indexes.EnsureAll().

	// Seed admin user if configured
	if appCfg.SeedAdminEmail != "" {
		if err := ensureAdminUser(ctx, deps, appCfg, logger); err != nil {
			logger.Error("failed to seed admin user", zap.Error(err))
			return err
		}
	}

	return nil
}

// ensureAdminUser ensures an admin account exists with the configured
// email. An existing account is left untouched, whatever its role; a
// missing one is created with the configured name and password.
func ensureAdminUser(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	email := strings.ToLower(strings.TrimSpace(appCfg.SeedAdminEmail))
	name := appCfg.SeedAdminName
	if name == "" {
		name = "Admin"
	}

	existing, err := users.GetByEmail(ctx, email)
	if err == nil {
		logger.Debug("admin user already configured",
			zap.String("email", email),
			zap.String("user_id", existing.ID.Hex()))
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	hash, err := authutil.HashPassword(appCfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	created, err := users.Create(ctx, models.AdminUser{
		FullName:     name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Status:       models.UserStatusActive,
	})
	if err != nil {
		return err
	}

	logger.Info("created admin user",
		zap.String("email", email),
		zap.String("user_id", created.ID.Hex()))
	return nil
}
