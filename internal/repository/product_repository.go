package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"supermanager/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// pgUniqueViolation is the Postgres error code for unique constraint
// violations, raised when a duplicate product code is inserted.
const pgUniqueViolation = "23505"

const productColumns = "id, name, code, price, quantity, category, description, created_at, updated_at"

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Create inserts a new product. Both timestamps take the insertion
// time, so updatedAt equals createdAt on a fresh record.
func (r *productRepository) Create(ctx context.Context, input *model.ProductInput) (int64, error) {
	query := `
		INSERT INTO products (name, code, price, quantity, category, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		input.Name, input.Code, input.Price, input.Quantity, input.Category, input.Description,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			r.logger.Warn().Str("code", input.Code).Msg("duplicate product code")
			return 0, model.ErrDuplicateCode
		}
		r.logger.Error().Err(err).Str("code", input.Code).Msg("failed to insert product")
		return 0, model.WrapDomainError(model.ErrCodeStorageWrite, "failed to insert product", err)
	}

	r.logger.Debug().Int64("product_id", id).Str("code", input.Code).Msg("product created")
	return id, nil
}

// GetAll retrieves every product. Ordering is byte-wise on name (C
// collation, so case-sensitive and locale-independent) with ID as the
// deterministic tie-breaker.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY name COLLATE "C", id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, model.WrapDomainError(model.ErrCodeStorageRead, "failed to query products", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	p, err := r.scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, model.WrapDomainError(model.ErrCodeStorageRead, "failed to query product", err)
	}

	return p, nil
}

// GetByCode retrieves a single product by its unique code. This is the
// lookup path for barcode scans; a miss returns (nil, nil).
func (r *productRepository) GetByCode(ctx context.Context, code string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE code = $1
	`

	p, err := r.scanProduct(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("code", code).Msg("no product with code")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query product by code")
		return nil, model.WrapDomainError(model.ErrCodeStorageRead, "failed to query product by code", err)
	}

	return p, nil
}

// Search matches the query as a plain substring against the name
// (case-insensitive) and the code. LIKE metacharacters in the query are
// escaped so they match literally. An empty query matches everything.
func (r *productRepository) Search(ctx context.Context, query string) ([]model.Product, error) {
	sql := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE $1 OR code LIKE $1
		ORDER BY name COLLATE "C", id
	`

	pattern := "%" + escapeLike(query) + "%"

	rows, err := r.pool.Query(ctx, sql, pattern)
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, model.WrapDomainError(model.ErrCodeStorageRead, "failed to search products", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// GetByCategory returns products whose category matches exactly.
func (r *productRepository) GetByCategory(ctx context.Context, category string) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1
		ORDER BY name COLLATE "C", id
	`

	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("failed to query products by category")
		return nil, model.WrapDomainError(model.ErrCodeStorageRead, "failed to query products by category", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// Update applies the supplied fields and refreshes updated_at in a
// single statement, so the field set and the timestamp change
// atomically. It runs even when no field is supplied: updated_at is
// refreshed regardless.
func (r *productRepository) Update(ctx context.Context, id int64, update *model.ProductUpdate) error {
	set := []string{}
	args := []interface{}{}
	idx := 1

	appendField := func(column string, value interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if update.Name != nil {
		appendField("name", *update.Name)
	}
	if update.Price != nil {
		appendField("price", *update.Price)
	}
	if update.Quantity != nil {
		appendField("quantity", *update.Quantity)
	}
	if update.Category != nil {
		appendField("category", *update.Category)
	}
	if update.Description != nil {
		appendField("description", *update.Description)
	}
	set = append(set, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(set, ", "), idx)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return model.WrapDomainError(model.ErrCodeStorageWrite, "failed to update product", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("product_id", id).Msg("update target not found")
		return model.ErrProductNotFound
	}

	r.logger.Debug().Int64("product_id", id).Msg("product updated")
	return nil
}

// Delete removes the product permanently. There is no soft delete.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return model.WrapDomainError(model.ErrCodeStorageWrite, "failed to delete product", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("product_id", id).Msg("delete target not found")
		return model.ErrProductNotFound
	}

	r.logger.Debug().Int64("product_id", id).Msg("product deleted")
	return nil
}

// GetCategories returns the distinct category values, sorted ascending.
func (r *productRepository) GetCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM products ORDER BY category COLLATE "C"`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, model.WrapDomainError(model.ErrCodeStorageRead, "failed to query categories", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, model.WrapDomainError(model.ErrCodeStorageRead, "failed to scan category", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, model.WrapDomainError(model.ErrCodeStorageRead, "error iterating categories", err)
	}

	return categories, nil
}

// GetStats computes all aggregates in one query. COALESCE keeps the
// empty-catalogue result at {0, 0, 0} instead of a NULL scan failure.
func (r *productRepository) GetStats(ctx context.Context) (*model.Stats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(price * quantity), 0), COUNT(DISTINCT category)
		FROM products
	`

	var stats model.Stats
	err := r.pool.QueryRow(ctx, query).Scan(&stats.TotalProducts, &stats.TotalValue, &stats.CategoryCount)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query stats")
		return nil, model.WrapDomainError(model.ErrCodeStorageRead, "failed to query stats", err)
	}

	return &stats, nil
}

// collectProducts drains rows into a slice.
func (r *productRepository) collectProducts(rows pgx.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Price, &p.Quantity, &p.Category, &p.Description, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, model.WrapDomainError(model.ErrCodeStorageRead, "failed to scan product", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, model.WrapDomainError(model.ErrCodeStorageRead, "error iterating products", err)
	}

	return products, nil
}

// scanProduct scans a single row into a product.
func (r *productRepository) scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Price, &p.Quantity, &p.Category, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// escapeLike escapes LIKE metacharacters so user input is matched as a
// literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
