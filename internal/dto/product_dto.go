package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Ref       string          `json:"ref"       validate:"required,min=1,max=64"`
	Image     string          `json:"image"     validate:"omitempty,url"`
	Height    decimal.Decimal `json:"height"    validate:"min=0"`
	Width     decimal.Decimal `json:"width"     validate:"min=0"`
	Brand     string          `json:"brand"`
	Campaign  string          `json:"campaign"`
	Date      string          `json:"date"      validate:"omitempty,datetime=2006-01-02"`
	Stock     int             `json:"stock"     validate:"min=0"`
	Location  string          `json:"location"`
	Typology  string          `json:"typology"`
	Notes     string          `json:"notes"`
	Warehouse string          `json:"warehouse" validate:"required,oneof=1 2"`
}

// UpdateProductRequest carries only the fields the caller wants to change.
// The service merges them over the stored record before the whole-row write,
// so omitted fields survive.
type UpdateProductRequest struct {
	Image     *string          `json:"image"     validate:"omitempty,url"`
	Height    *decimal.Decimal `json:"height"    validate:"omitempty,min=0"`
	Width     *decimal.Decimal `json:"width"     validate:"omitempty,min=0"`
	Brand     *string          `json:"brand"`
	Campaign  *string          `json:"campaign"`
	Date      *string          `json:"date"      validate:"omitempty,datetime=2006-01-02"`
	Stock     *int             `json:"stock"     validate:"omitempty,min=0"`
	Location  *string          `json:"location"`
	Typology  *string          `json:"typology"`
	Notes     *string          `json:"notes"`
	Warehouse *string          `json:"warehouse" validate:"omitempty,oneof=1 2"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductFilter is matched client-side over the full table dump: warehouse
// partitions, every other field is a case-insensitive substring match.
type ProductFilter struct {
	Warehouse string `form:"warehouse" validate:"omitempty,oneof=1 2"`
	Ref       string `form:"ref"`
	Brand     string `form:"brand"`
	Campaign  string `form:"campaign"`
	Date      string `form:"date"`
	Stock     string `form:"stock"`
	Location  string `form:"location"`
	Typology  string `form:"typology"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=10" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	Ref       string          `json:"ref"`
	Image     string          `json:"image"`
	Height    decimal.Decimal `json:"height"`
	Width     decimal.Decimal `json:"width"`
	Brand     string          `json:"brand"`
	Campaign  string          `json:"campaign"`
	Date      string          `json:"date"`
	Stock     int             `json:"stock"`
	Location  string          `json:"location"`
	Typology  string          `json:"typology"`
	Notes     string          `json:"notes"`
	Warehouse string          `json:"warehouse"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
