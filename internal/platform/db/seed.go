package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"feedback360/internal/domain/auth"
	"feedback360/internal/platform/config"
)

// Seed ensures a bootstrap admin account exists so a fresh deployment
// can log in and register further users.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", cfg.SeedAdminEmail).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (username, email, password_hash, role)
    VALUES ($1, $2, $3, $4)
  `, cfg.SeedAdminUsername, cfg.SeedAdminEmail, hash, auth.RoleAdmin)
	return err
}
