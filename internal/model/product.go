package model

import "time"

// Product represents a single inventory item. It is keyed by a
// system-assigned ID and by a unique business code (typically the
// barcode printed on the item).
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	Price       float64   `json:"price" db:"price"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductInput carries the caller-supplied fields for a new product.
// The ID and timestamps are assigned by the store.
type ProductInput struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// Validate checks the input against the product invariants.
func (in *ProductInput) Validate() error {
	if in.Name == "" {
		return NewDomainError(ErrCodeValidation, "product name must not be empty")
	}
	if in.Code == "" {
		return NewDomainError(ErrCodeValidation, "product code must not be empty")
	}
	if in.Price < 0 {
		return NewDomainError(ErrCodeValidation, "product price must not be negative")
	}
	if in.Quantity < 0 {
		return NewDomainError(ErrCodeValidation, "product quantity must not be negative")
	}
	return nil
}

// ProductUpdate describes a partial update. Nil fields are left
// unchanged; the product code is immutable and therefore absent here.
// An update with no fields set still refreshes the updatedAt timestamp.
type ProductUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// Validate checks every supplied field against its invariant.
func (u *ProductUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return NewDomainError(ErrCodeValidation, "product name must not be empty")
	}
	if u.Price != nil && *u.Price < 0 {
		return NewDomainError(ErrCodeValidation, "product price must not be negative")
	}
	if u.Quantity != nil && *u.Quantity < 0 {
		return NewDomainError(ErrCodeValidation, "product quantity must not be negative")
	}
	return nil
}

// IsEmpty reports whether no field is supplied.
func (u *ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Price == nil && u.Quantity == nil &&
		u.Category == nil && u.Description == nil
}

// Stats aggregates the whole catalogue: number of products, total stock
// value (sum of price times quantity) and number of distinct categories.
// An empty catalogue yields all zeroes.
type Stats struct {
	TotalProducts int     `json:"totalProducts"`
	TotalValue    float64 `json:"totalValue"`
	CategoryCount int     `json:"categoryCount"`
}
