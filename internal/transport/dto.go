package transport

import "github.com/avdeenko/aromashop/internal/models"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AddToCartRequest struct {
	VariantID uint `json:"variant_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CreateOrderRequest struct {
	ShippingAddressID  uint   `json:"shipping_address_id"`
	PaymentMethod      string `json:"payment_method"`
	ShippingMethodCode string `json:"shipping_method_code"`
}

type UpdateOrderStatusRequest struct {
	Status         models.OrderStatus `json:"status"`
	TrackingNumber string             `json:"tracking_number"`
	CancelReason   string             `json:"cancel_reason"`
}

type CancelOrderRequest struct {
	CancelReason string `json:"cancel_reason"`
}

type AddressRequest struct {
	Recipient  string `json:"recipient"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	Street     string `json:"street"`
	Building   string `json:"building"`
	Apartment  string `json:"apartment"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type ProductRequest struct {
	CategoryID  uint   `json:"category_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
	TaxRateBP   int64  `json:"tax_rate_bp"`
}

type VariantRequest struct {
	ProductID       uint   `json:"product_id"`
	Name            string `json:"name"`
	SKU             string `json:"sku"`
	Price           int64  `json:"price"`
	DiscountPercent int    `json:"discount_percent"`
	StockCount      int    `json:"stock_count"`
	IsActive        *bool  `json:"is_active"`
	Aroma           string `json:"aroma"`
	SizeGrams       int    `json:"size_grams"`
	Servings        int    `json:"servings"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ShippingMethodRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	IsActive *bool  `json:"is_active"`
}

type Meta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

func NewPage[T any](data []T, page, size int, total int64) Page[T] {
	return Page[T]{
		Data: data,
		Meta: Meta{
			Page:       page,
			Size:       size,
			Total:      total,
			TotalPages: (total + int64(size) - 1) / int64(size),
		},
	}
}
