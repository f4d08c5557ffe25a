package db

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"idms/internal/platform/config"
)

// AdminSeeder creates the bootstrap administrator when it is missing.
type AdminSeeder interface {
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
}

func Seed(ctx context.Context, users AdminSeeder, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	if email == "" {
		return nil
	}
	if cfg.SeedAdminPassword == "" {
		return errors.New("SEED_ADMIN_PASSWORD is required to seed the admin user")
	}
	created, err := users.EnsureAdmin(ctx, email, cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	if created {
		slog.Info("seeded admin user", "email", email)
	}
	return nil
}
