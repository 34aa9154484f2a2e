// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/interno/internal/app/resources"
	"github.com/dalemusser/interno/internal/app/system/authprovider"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ownerFullName is the display name given to a newly created owner account.
const ownerFullName = "Owner"

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if err := ensureOwner(ctx, deps, appCfg.OwnerEmail, appCfg.OwnerPassword, logger); err != nil {
		logger.Error("owner account setup failed", zap.Error(err))
		return err
	}
	return nil
}

// ensureOwner creates the owner account when owner_email is configured and no
// account with that email exists. An existing account is left untouched.
func ensureOwner(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	if email == "" {
		return nil
	}
	created, err := authprovider.NewLocal(deps.Records.Users, logger).EnsureAccount(ctx, ownerFullName, email, password)
	if err != nil {
		return err
	}
	if created {
		logger.Info("created owner account", zap.String("email", email))
	}
	return nil
}
