package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/admin-api/internal/utils/platformerrors"
)

// Category identifies which product table a record lives in.
type Category string

const (
	CategoryLaptop    Category = "laptop"
	CategoryDesktop   Category = "desktop"
	CategoryAccessory Category = "accessory"
)

// Categories lists every known category, in table order.
var Categories = []Category{CategoryLaptop, CategoryDesktop, CategoryAccessory}

// ParseCategory validates a category string from an action name.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(s)) {
	case CategoryLaptop:
		return CategoryLaptop, true
	case CategoryDesktop:
		return CategoryDesktop, true
	case CategoryAccessory:
		return CategoryAccessory, true
	default:
		return "", false
	}
}

// Status is derived from the stock quantity; the database value is a cache of
// that derivation, never an independent input.
type Status string

const (
	StatusActive     Status = "active"
	StatusLowStock   Status = "low_stock"
	StatusOutOfStock Status = "out_of_stock"
)

// DefaultLowStockThreshold matches the stock level at which the storefront
// shows a low-stock badge.
const DefaultLowStockThreshold = 5

// StatusForStock derives the product status from its stock quantity.
func StatusForStock(stock, lowStockThreshold int) Status {
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= lowStockThreshold:
		return StatusLowStock
	default:
		return StatusActive
	}
}

// LaptopSpecs holds the laptop-only specification fields.
type LaptopSpecs struct {
	Processor  string `json:"processor"`
	RAM        string `json:"ram"`
	Storage    string `json:"storage"`
	ScreenSize string `json:"screen_size"`
	Graphics   string `json:"graphics"`
}

// DesktopSpecs holds the desktop-only specification fields.
type DesktopSpecs struct {
	Processor  string `json:"processor"`
	RAM        string `json:"ram"`
	Storage    string `json:"storage"`
	Graphics   string `json:"graphics"`
	FormFactor string `json:"form_factor"`
}

// AccessorySpecs holds the accessory-only fields.
type AccessorySpecs struct {
	Kind          string `json:"kind"`
	Compatibility string `json:"compatibility"`
}

// Product is a tagged variant: the shared base plus exactly one category
// specific spec set, selected by Category.
type Product struct {
	ID        uint             `json:"id"`
	Category  Category         `json:"category"`
	Brand     string           `json:"brand"`
	Name      string           `json:"name"`
	Price     decimal.Decimal  `json:"price"`
	PriceMax  *decimal.Decimal `json:"price_max,omitempty"`
	Stock     int              `json:"stock"`
	Status    Status           `json:"status"`
	ImageURL1 string           `json:"image_url_1,omitempty"`
	ImageURL2 string           `json:"image_url_2,omitempty"`
	Laptop    *LaptopSpecs     `json:"laptop,omitempty"`
	Desktop   *DesktopSpecs    `json:"desktop,omitempty"`
	Accessory *AccessorySpecs  `json:"accessory,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Validate checks required fields and that the spec set matches the category
// tag, with the other variants left unset.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "product name is required", nil)
	}
	if p.Category != CategoryAccessory && strings.TrimSpace(p.Brand) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "product brand is required", nil)
	}
	if p.Price.IsNegative() {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "price must not be negative", nil)
	}
	if p.PriceMax != nil && p.PriceMax.LessThan(p.Price) {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "price range upper bound is below the price", nil)
	}
	if p.Stock < 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "stock must not be negative", nil)
	}

	var mismatch bool
	switch p.Category {
	case CategoryLaptop:
		mismatch = p.Laptop == nil || p.Desktop != nil || p.Accessory != nil
	case CategoryDesktop:
		mismatch = p.Desktop == nil || p.Laptop != nil || p.Accessory != nil
	case CategoryAccessory:
		mismatch = p.Accessory == nil || p.Laptop != nil || p.Desktop != nil
	default:
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "unknown product category", nil)
	}
	if mismatch {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "spec fields do not match the product category", nil)
	}
	return nil
}
