package service

import (
	"context"
	"fmt"

	"supermanager/internal/model"
	"supermanager/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Add validates the input and inserts the product. A duplicate code
// surfaces as a domain error and leaves the catalogue unchanged.
func (s *productService) Add(ctx context.Context, input *model.ProductInput) (int64, error) {
	if err := input.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("code", input.Code).Msg("invalid product input")
		return 0, err
	}

	id, err := s.productRepo.Create(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).Str("code", input.Code).Msg("failed to add product")
		return 0, err
	}

	s.logger.Info().Int64("product_id", id).Str("code", input.Code).Str("name", input.Name).Msg("product added")
	return id, nil
}

// GetAll retrieves every product ordered by name.
func (s *productService) GetAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")
	return products, nil
}

// GetByID retrieves a single product by ID; (nil, nil) on a miss.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// GetByCode is the scan-result lookup. A miss is (nil, nil), not an
// error; the scanning client decides whether to create a new record.
func (s *productService) GetByCode(ctx context.Context, code string) (*model.Product, error) {
	if code == "" {
		s.logger.Warn().Msg("product code is empty")
		return nil, model.NewDomainError(model.ErrCodeValidation, "product code must not be empty")
	}

	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to get product by code")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// Search matches name (case-insensitive) or code substrings. The empty
// query returns the whole catalogue.
func (s *productService) Search(ctx context.Context, query string) ([]model.Product, error) {
	products, err := s.productRepo.Search(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	s.logger.Debug().Str("query", query).Int("count", len(products)).Msg("searched products")
	return products, nil
}

// FilterByCategory returns products in exactly the given category.
func (s *productService) FilterByCategory(ctx context.Context, category string) ([]model.Product, error) {
	products, err := s.productRepo.GetByCategory(ctx, category)
	if err != nil {
		s.logger.Error().Err(err).Str("category", category).Msg("failed to filter products")
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}

	return products, nil
}

// Update validates the supplied fields and applies them. The update
// runs even when no field is supplied, which still refreshes updatedAt.
func (s *productService) Update(ctx context.Context, id int64, update *model.ProductUpdate) error {
	if err := update.Validate(); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", id).Msg("invalid product update")
		return err
	}

	if err := s.productRepo.Update(ctx, id, update); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return err
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return nil
}

// Delete removes the product permanently.
func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return err
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

// GetCategories returns the distinct categories, sorted ascending.
func (s *productService) GetCategories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.GetCategories(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

// GetStats computes catalogue-wide aggregates; {0, 0, 0} on an empty
// catalogue.
func (s *productService) GetStats(ctx context.Context) (*model.Stats, error) {
	stats, err := s.productRepo.GetStats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get stats")
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}
