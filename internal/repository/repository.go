package repository

import (
	"context"

	"supermanager/internal/model"
)

// ProductRepository defines the interface for catalogue data access.
// Callers receive snapshots; mutations go back through the repository.
type ProductRepository interface {
	// Create inserts a new product and returns the assigned ID. Both
	// timestamps are set to the insertion time.
	Create(ctx context.Context, input *model.ProductInput) (int64, error)

	// GetAll retrieves every product ordered by name (byte-wise,
	// case-sensitive), ties broken by ID.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns (nil, nil)
	// when no product matches.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByCode retrieves a single product by its unique business code.
	// Returns (nil, nil) when no product matches; absence is not an
	// error on this path, it is how a scan miss is detected.
	GetByCode(ctx context.Context, code string) (*model.Product, error)

	// Search returns products whose name contains the query
	// (case-insensitive) or whose code contains it, ordered by name.
	// An empty query returns all products.
	Search(ctx context.Context, query string) ([]model.Product, error)

	// GetByCategory returns products whose category matches exactly,
	// ordered by name.
	GetByCategory(ctx context.Context, category string) ([]model.Product, error)

	// Update applies the supplied fields and refreshes updated_at as a
	// single atomic statement.
	Update(ctx context.Context, id int64, update *model.ProductUpdate) error

	// Delete removes the product permanently.
	Delete(ctx context.Context, id int64) error

	// GetCategories returns the distinct category values, sorted
	// ascending.
	GetCategories(ctx context.Context) ([]string, error)

	// GetStats computes catalogue-wide aggregates.
	GetStats(ctx context.Context) (*model.Stats, error)
}

// UserRepository defines the interface for account data access.
type UserRepository interface {
	// Create inserts a new user and returns the assigned ID.
	Create(ctx context.Context, user *model.User) (int64, error)

	// GetByEmail retrieves a user by email. Returns (nil, nil) when no
	// user matches.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// SetVerified marks the user's email address as verified.
	SetVerified(ctx context.Context, id int64) error
}
