package database

import (
	"context"

	"supermanager/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// sampleProducts is inserted once, on first run against an empty
// catalogue, so the inventory screens have something to show.
var sampleProducts = []model.ProductInput{
	{Name: "Pasta Barilla", Code: "8076809513548", Price: 1.20, Quantity: 50, Category: "Alimentari", Description: "Pasta di grano duro"},
	{Name: "Latte Parmalat", Code: "8000300123456", Price: 1.50, Quantity: 30, Category: "Latticini", Description: "Latte fresco intero"},
	{Name: "Pane Mulino Bianco", Code: "8076809876543", Price: 2.00, Quantity: 20, Category: "Panetteria", Description: "Pane bianco affettato"},
	{Name: "Coca Cola", Code: "8000300987654", Price: 1.80, Quantity: 45, Category: "Bevande", Description: "Bibita gassata"},
	{Name: "Olio Extravergine", Code: "8076809111222", Price: 4.50, Quantity: 15, Category: "Alimentari", Description: "Olio di oliva extravergine"},
}

// Demo credentials for the bundled account. The password is hashed at
// seed time; the plaintext is never stored.
const (
	DemoUserEmail    = "demo@supermanager.com"
	DemoUserName     = "Demo User"
	demoUserPassword = "demo123"
)

// SeedProducts inserts the sample catalogue when the products table is
// empty. A failure to insert one row is logged and skipped rather than
// aborting initialisation; rows inserted before the failure remain
// valid. Calling it again once products exist is a no-op, so seeding is
// idempotent.
func SeedProducts(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("failed to count products before seeding")
		return model.WrapDomainError(model.ErrCodeStorageInit, "failed to inspect products table", err)
	}

	if count > 0 {
		logger.Debug().Int("existing", count).Msg("catalogue not empty, skipping sample data")
		return nil
	}

	query := `
		INSERT INTO products (name, code, price, quantity, category, description)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	inserted := 0
	for _, p := range sampleProducts {
		_, err := pool.Exec(ctx, query, p.Name, p.Code, p.Price, p.Quantity, p.Category, p.Description)
		if err != nil {
			logger.Warn().Err(err).Str("code", p.Code).Msg("failed to insert sample product, skipping")
			continue
		}
		inserted++
	}

	logger.Info().Int("count", inserted).Msg("sample products seeded")
	return nil
}

// SeedDemoUser creates the pre-verified demo account if it does not
// exist yet.
func SeedDemoUser(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return model.WrapDomainError(model.ErrCodeStorageInit, "failed to hash demo password", err)
	}

	query := `
		INSERT INTO users (email, name, password_hash, verified)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO NOTHING
	`

	tag, err := pool.Exec(ctx, query, DemoUserEmail, DemoUserName, string(hash))
	if err != nil {
		logger.Error().Err(err).Msg("failed to seed demo user")
		return model.WrapDomainError(model.ErrCodeStorageInit, "failed to seed demo user", err)
	}

	if tag.RowsAffected() > 0 {
		logger.Info().Str("email", DemoUserEmail).Msg("demo user created")
	}
	return nil
}
