package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Slug        string `db:"slug"`
	Description string `db:"description"`
	ImagePath   string `db:"image_path"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

type Product struct {
	ID          string          `db:"id"`
	CategoryID  string          `db:"category_id"`
	Name        string          `db:"name"`
	Slug        string          `db:"slug"`
	Description string          `db:"description"`
	ImagePath   string          `db:"image_path"`
	Price       decimal.Decimal `db:"price"`
	DiscountPct int             `db:"discount_pct"` // percentage 0-100
	Stock       int             `db:"stock"`
	Available   bool            `db:"available"`
	CreatedAt   string          `db:"created_at"`
	UpdatedAt   string          `db:"updated_at"`
}

// Order statuses. Default is pending; the admin endpoint can set any
// of these, no transition rules are enforced.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCanceled   = "canceled"
)

type Order struct {
	ID             string          `db:"id"`
	PublicID       string          `db:"public_id"` // 8-char customer-facing id
	UserID         string          `db:"user_id"`
	FullName       string          `db:"full_name"`
	Email          string          `db:"email"`
	PhoneNumber    string          `db:"phone_number"`
	Address        string          `db:"address"`
	City           string          `db:"city"`
	PostalCode     string          `db:"postal_code"`
	Country        string          `db:"country"`
	Status         string          `db:"status"`
	DeliveryCharge decimal.Decimal `db:"delivery_charge"`
	TotalPrice     decimal.Decimal `db:"total_price"`
	CreatedAt      string          `db:"created_at"`
	UpdatedAt      string          `db:"updated_at"`
}

// Availability is the stock status reported by /api/v1/availability.
type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}
