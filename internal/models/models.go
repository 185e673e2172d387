package models

import (
	"time"
)

// All monetary values are stored as int64 cents.

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `gorm:"not null"        json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type Category struct {
	ID          uint   `gorm:"primaryKey"           json:"id"`
	Name        string `gorm:"not null"             json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"default:true"         json:"is_active"`
}

type Product struct {
	ID          uint             `gorm:"primaryKey"           json:"id"`
	CategoryID  uint             `gorm:"index;not null"       json:"category_id"`
	Name        string           `gorm:"not null"             json:"name"`
	Slug        string           `gorm:"uniqueIndex;not null" json:"slug"`
	Description string           `json:"description"`
	IsActive    bool             `gorm:"default:true"         json:"is_active"`
	TaxRateBP   int64            `gorm:"default:0"            json:"tax_rate_bp"`
	Variants    []ProductVariant `gorm:"constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Photos      []ProductPhoto   `gorm:"constraint:OnDelete:CASCADE" json:"photos,omitempty"`
}

type ProductVariant struct {
	ID              uint   `gorm:"primaryKey"           json:"id"`
	ProductID       uint   `gorm:"index;not null"       json:"product_id"`
	Name            string `gorm:"not null"             json:"name"`
	SKU             string `gorm:"uniqueIndex;not null" json:"sku"`
	Price           int64  `gorm:"not null"             json:"price"`
	DiscountPercent int    `gorm:"default:0;check:discount_percent >= 0 AND discount_percent <= 100" json:"discount_percent"`
	StockCount      int    `gorm:"not null;default:0;check:stock_count >= 0" json:"stock_count"`
	IsActive        bool   `gorm:"default:true"         json:"is_active"`
	Aroma           string `json:"aroma"`
	SizeGrams       int    `json:"size_grams"`
	Servings        int    `json:"servings"`

	CreatedAt time.Time `json:"created_at"`
}

type ProductPhoto struct {
	ID        uint   `gorm:"primaryKey"     json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	URL       string `gorm:"not null"       json:"url"`
	Position  int    `gorm:"default:0"      json:"position"`
	IsMain    bool   `gorm:"default:false"  json:"is_main"`
}

// Cart is one-per-user and created lazily on first access. An empty cart
// keeps its row; only the items go away.
type Cart struct {
	ID     uint       `gorm:"primaryKey"           json:"id"`
	UserID uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey"                 json:"id"`
	CartID    uint      `gorm:"index;not null"             json:"cart_id"`
	VariantID uint      `gorm:"not null"                   json:"variant_id"`
	Quantity  int       `gorm:"default:1;check:quantity>0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

type UserAddress struct {
	ID         uint      `gorm:"primaryKey"     json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Recipient  string    `gorm:"not null"       json:"recipient"`
	Phone      string    `json:"phone"`
	City       string    `gorm:"not null"       json:"city"`
	Street     string    `gorm:"not null"       json:"street"`
	Building   string    `json:"building"`
	Apartment  string    `json:"apartment"`
	PostalCode string    `json:"postal_code"`
	IsDefault  bool      `gorm:"default:false"  json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

type ShippingMethod struct {
	ID       uint   `gorm:"primaryKey"           json:"id"`
	Code     string `gorm:"uniqueIndex;not null" json:"code"`
	Name     string `gorm:"not null"             json:"name"`
	Price    int64  `gorm:"not null"             json:"price"`
	IsActive bool   `gorm:"default:true"         json:"is_active"`
}

// AddressSnapshot is the denormalized copy of the shipping address written
// into the order at checkout time. Later edits or deletion of the source
// UserAddress do not touch it.
type AddressSnapshot struct {
	Recipient  string `json:"recipient"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	Street     string `json:"street"`
	Building   string `json:"building"`
	Apartment  string `json:"apartment"`
	PostalCode string `json:"postal_code"`
}

type Order struct {
	ID          uint        `gorm:"primaryKey"           json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID      uint        `gorm:"index;not null"       json:"user_id"`
	Status      OrderStatus `gorm:"not null"             json:"status"`

	Subtotal      int64  `gorm:"not null" json:"subtotal"`
	ShippingCost  int64  `gorm:"not null" json:"shipping_cost"`
	TaxAmount     int64  `gorm:"not null" json:"tax_amount"`
	TotalAmount   int64  `gorm:"not null" json:"total_amount"`
	PaymentMethod string `json:"payment_method"`

	ShippingAddress AddressSnapshot `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`

	PaidAt         *time.Time `json:"paid_at"`
	ShippedAt      *time.Time `json:"shipped_at"`
	DeliveredAt    *time.Time `json:"delivered_at"`
	CancelledAt    *time.Time `json:"cancelled_at"`
	TrackingNumber string     `json:"tracking_number"`
	CancelReason   string     `json:"cancel_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is immutable once written. It carries the full point-in-time
// snapshot of the product and variant plus the unit price actually charged.
type OrderItem struct {
	ID      uint `gorm:"primaryKey"     json:"id"`
	OrderID uint `gorm:"index;not null" json:"order_id"`

	ProductID uint `gorm:"not null" json:"product_id"`
	VariantID uint `gorm:"not null" json:"variant_id"`

	ProductName string `gorm:"not null" json:"product_name"`
	ProductSlug string `json:"product_slug"`
	VariantName string `gorm:"not null" json:"variant_name"`
	VariantSKU  string `json:"variant_sku"`
	Aroma       string `json:"aroma"`
	SizeGrams   int    `json:"size_grams"`
	Servings    int    `json:"servings"`

	UnitPrice int64 `gorm:"not null"                   json:"unit_price"`
	Quantity  int   `gorm:"default:1;check:quantity>0" json:"quantity"`
	Subtotal  int64 `gorm:"not null"                   json:"subtotal"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey"                                   json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"product_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"   json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
