package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"paydesk/internal/domain/auth"
	"paydesk/internal/platform/config"
)

// Seed ensures the clerk account exists. The system is single-tenant with a
// single operator, so this is the whole user model.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.SeedClerkEmail))
	if email == "" {
		return fmt.Errorf("seed: clerk email is empty")
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM clerk_users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := cfg.SeedClerkPassword
	if password == "" {
		// Development convenience only; Validate rejects this in production.
		password = "changeme"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, "INSERT INTO clerk_users (email, password_hash) VALUES ($1, $2)", email, hash)
	return err
}
