package service

import (
	"context"

	"supermanager/internal/model"
)

// ProductService defines the catalogue operations exposed to the
// scanning and inventory clients.
type ProductService interface {
	// Add validates and inserts a new product, returning the assigned ID.
	Add(ctx context.Context, input *model.ProductInput) (int64, error)

	// GetAll retrieves every product, ordered by name.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by ID. Returns (nil, nil) when
	// no product matches.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByCode retrieves a single product by its barcode value.
	// Returns (nil, nil) on a scan miss; absence is not an error.
	GetByCode(ctx context.Context, code string) (*model.Product, error)

	// Search matches the query as a substring of the name
	// (case-insensitive) or the code. An empty query returns all
	// products.
	Search(ctx context.Context, query string) ([]model.Product, error)

	// FilterByCategory returns products in exactly the given category.
	FilterByCategory(ctx context.Context, category string) ([]model.Product, error)

	// Update applies a partial update; unsupplied fields stay unchanged
	// and updatedAt is always refreshed.
	Update(ctx context.Context, id int64, update *model.ProductUpdate) error

	// Delete removes a product permanently.
	Delete(ctx context.Context, id int64) error

	// GetCategories returns the distinct categories, sorted ascending.
	GetCategories(ctx context.Context) ([]string, error)

	// GetStats computes catalogue-wide aggregates.
	GetStats(ctx context.Context) (*model.Stats, error)
}

// AuthService defines operations for the demo account collaborator.
type AuthService interface {
	// Register creates a new, unverified account.
	Register(ctx context.Context, input *model.RegisterInput) (*model.User, error)

	// Login checks the credentials and returns a signed session token.
	Login(ctx context.Context, creds *model.Credentials) (*model.AuthToken, error)

	// VerifyEmail marks the account as verified when the code matches.
	VerifyEmail(ctx context.Context, email, code string) error

	// RequestPasswordReset acknowledges a reset request. Mail delivery
	// is outside this service; the request is only logged.
	RequestPasswordReset(ctx context.Context, email string) error
}
