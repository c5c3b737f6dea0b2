package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"supermanager/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, input *model.ProductInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCode(ctx context.Context, code string) (*model.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, query string) ([]model.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCategory(ctx context.Context, category string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id int64, update *model.ProductUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) GetCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) GetStats(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestProductService_Add(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	validInput := &model.ProductInput{
		Name: "Pasta", Code: "8076809513548", Price: 1.20, Quantity: 50, Category: "Food",
	}

	tests := []struct {
		name        string
		input       *model.ProductInput
		mockID      int64
		mockError   error
		callsRepo   bool
		expectError bool
		expectedErr error
	}{
		{
			name:        "Success",
			input:       validInput,
			mockID:      1,
			callsRepo:   true,
			expectError: false,
		},
		{
			name:        "Empty name rejected before the repository",
			input:       &model.ProductInput{Code: "C1", Price: 1, Quantity: 1, Category: "Food"},
			callsRepo:   false,
			expectError: true,
		},
		{
			name:        "Empty code rejected",
			input:       &model.ProductInput{Name: "Pasta", Price: 1, Quantity: 1, Category: "Food"},
			callsRepo:   false,
			expectError: true,
		},
		{
			name:        "Negative price rejected",
			input:       &model.ProductInput{Name: "Pasta", Code: "C1", Price: -1, Quantity: 1, Category: "Food"},
			callsRepo:   false,
			expectError: true,
		},
		{
			name:        "Negative quantity rejected",
			input:       &model.ProductInput{Name: "Pasta", Code: "C1", Price: 1, Quantity: -1, Category: "Food"},
			callsRepo:   false,
			expectError: true,
		},
		{
			name:        "Zero price and quantity are valid",
			input:       &model.ProductInput{Name: "Pasta", Code: "C1", Price: 0, Quantity: 0, Category: "Food"},
			mockID:      2,
			callsRepo:   true,
			expectError: false,
		},
		{
			name:        "Duplicate code from repository",
			input:       validInput,
			mockID:      0,
			mockError:   model.ErrDuplicateCode,
			callsRepo:   true,
			expectError: true,
			expectedErr: model.ErrDuplicateCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo, logger)

			if tt.callsRepo {
				mockRepo.On("Create", ctx, tt.input).Return(tt.mockID, tt.mockError)
			}

			id, err := service.Add(ctx, tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Zero(t, id)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockID, id)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_GetByCode(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	testProduct := &model.Product{
		ID: 1, Name: "Pasta", Code: "8076809513548", Price: 1.20, Quantity: 50,
		Category: "Food", CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}

	tests := []struct {
		name        string
		code        string
		mockReturn  *model.Product
		mockError   error
		callsRepo   bool
		expectError bool
	}{
		{
			name:       "Success",
			code:       "8076809513548",
			mockReturn: testProduct,
			callsRepo:  true,
		},
		{
			name:       "Unknown code is a miss, not an error",
			code:       "0000000000000",
			mockReturn: nil,
			callsRepo:  true,
		},
		{
			name:        "Empty code rejected",
			code:        "",
			callsRepo:   false,
			expectError: true,
		},
		{
			name:        "Repository error",
			code:        "8076809513548",
			mockError:   errors.New("database error"),
			callsRepo:   true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo, logger)

			if tt.callsRepo {
				mockRepo.On("GetByCode", ctx, tt.code).Return(tt.mockReturn, tt.mockError)
			}

			product, err := service.GetByCode(ctx, tt.code)

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, product)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, product)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_Search(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	testProducts := []model.Product{
		{ID: 1, Name: "Pasta", Code: "A", Price: 1.20, Quantity: 50, Category: "Food"},
	}

	tests := []struct {
		name        string
		query       string
		mockReturn  []model.Product
		mockError   error
		expectError bool
	}{
		{
			name:       "Success",
			query:      "pas",
			mockReturn: testProducts,
		},
		{
			name:       "Empty query is passed through",
			query:      "",
			mockReturn: testProducts,
		},
		{
			name:        "Repository error",
			query:       "pas",
			mockError:   errors.New("database error"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo, logger)

			mockRepo.On("Search", ctx, tt.query).Return(tt.mockReturn, tt.mockError)

			products, err := service.Search(ctx, tt.query)

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, products)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, products)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_Update(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name        string
		id          int64
		update      *model.ProductUpdate
		mockError   error
		callsRepo   bool
		expectError bool
		expectedErr error
	}{
		{
			name:      "Success with single field",
			id:        1,
			update:    &model.ProductUpdate{Quantity: intPtr(7)},
			callsRepo: true,
		},
		{
			name: "Success with all fields",
			id:   1,
			update: &model.ProductUpdate{
				Name:        strPtr("Pasta Integrale"),
				Price:       floatPtr(1.80),
				Quantity:    intPtr(12),
				Category:    strPtr("Food"),
				Description: strPtr("Whole wheat"),
			},
			callsRepo: true,
		},
		{
			name:      "Empty update still reaches the repository",
			id:        1,
			update:    &model.ProductUpdate{},
			callsRepo: true,
		},
		{
			name:        "Empty name rejected",
			id:          1,
			update:      &model.ProductUpdate{Name: strPtr("")},
			callsRepo:   false,
			expectError: true,
		},
		{
			name:        "Negative price rejected",
			id:          1,
			update:      &model.ProductUpdate{Price: floatPtr(-0.01)},
			callsRepo:   false,
			expectError: true,
		},
		{
			name:        "Negative quantity rejected",
			id:          1,
			update:      &model.ProductUpdate{Quantity: intPtr(-1)},
			callsRepo:   false,
			expectError: true,
		},
		{
			name:        "Unknown product",
			id:          99,
			update:      &model.ProductUpdate{Quantity: intPtr(7)},
			mockError:   model.ErrProductNotFound,
			callsRepo:   true,
			expectError: true,
			expectedErr: model.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo, logger)

			if tt.callsRepo {
				mockRepo.On("Update", ctx, tt.id, tt.update).Return(tt.mockError)
			}

			err := service.Update(ctx, tt.id, tt.update)

			if tt.expectError {
				require.Error(t, err)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
			} else {
				require.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_Delete(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name        string
		id          int64
		mockError   error
		expectError bool
		expectedErr error
	}{
		{
			name: "Success",
			id:   1,
		},
		{
			name:        "Unknown product",
			id:          99,
			mockError:   model.ErrProductNotFound,
			expectError: true,
			expectedErr: model.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo, logger)

			mockRepo.On("Delete", ctx, tt.id).Return(tt.mockError)

			err := service.Delete(ctx, tt.id)

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_GetStats(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo, logger)

		expected := &model.Stats{TotalProducts: 2, TotalValue: 105.0, CategoryCount: 2}
		mockRepo.On("GetStats", ctx).Return(expected, nil)

		stats, err := service.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, stats)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo, logger)

		mockRepo.On("GetStats", ctx).Return(nil, errors.New("database error"))

		stats, err := service.GetStats(ctx)
		require.Error(t, err)
		assert.Nil(t, stats)
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_GetCategories(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, logger)

	mockRepo.On("GetCategories", ctx).Return([]string{"Dairy", "Food"}, nil)

	categories, err := service.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dairy", "Food"}, categories)
	mockRepo.AssertExpectations(t)
}
