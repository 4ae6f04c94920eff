package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"crewhub/internal/domain/auth"
	"crewhub/internal/platform/config"
)

// Seed ensures the administrator account exists so a fresh install can log
// in. Existing rows are never overwritten.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE email = $1", cfg.SeedAdminEmail).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := cfg.SeedAdminPassword
	if password == "" {
		password = cfg.DefaultUserPassword
	}
	if password == "" {
		return fmt.Errorf("seed admin: SEED_ADMIN_PASSWORD or DEFAULT_USER_PASSWORD must be set")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO employees (name, email, role, password_hash, monthly_hours)
    VALUES ($1, $2, $3, $4, $5)
  `, cfg.SeedAdminName, cfg.SeedAdminEmail, auth.RoleAdmin, hash, cfg.DefaultMonthlyHours)
	return err
}
