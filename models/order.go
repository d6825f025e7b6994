package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending     OrderStatus = "pending"       // Order placed, awaiting confirmation
	OrderStatusConfirmed   OrderStatus = "confirmed"     // Confirmed by the atelier
	OrderStatusReadyToShip OrderStatus = "ready_to_ship" // Packed and ready for dispatch
	OrderStatusShipped     OrderStatus = "shipped"       // Out for delivery
	OrderStatusDelivered   OrderStatus = "delivered"     // Customer received the item
	OrderStatusCancelled   OrderStatus = "cancelled"     // Cancelled before shipping

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Checkout session created, not completed
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer
)

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	OrderRef   string      `gorm:"uniqueIndex;not null" json:"order_ref"`
	CustomerID uint        `gorm:"not null" json:"customer_id"`
	Customer   Customer    `gorm:"foreignKey:CustomerID" json:"customer"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	// Monetary fields hold server-validated values, never client-submitted ones.
	// TotalAmount == validated subtotal + ShippingFee + TaxAmount - DiscountAmount.
	TotalAmount    float64 `json:"total_amount"`
	ShippingFee    float64 `json:"shipping_fee"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	CurrencyCode   string  `gorm:"type:VARCHAR(3)" json:"currency_code"`

	ShippingAddress string `json:"shipping_address"`

	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`

	// Payment-session fields, filled after the gateway call
	PaymentSessionID    string `json:"payment_session_id"`
	CheckoutURL         string `json:"checkout_url"`
	PaymentProcessorRaw string `gorm:"type:TEXT" json:"payment_processor_raw"` // last gateway response, kept for audit

	CreatedAt time.Time `json:"created_at"`
}

type OrderItem struct {
	ID              uint `gorm:"primaryKey"`
	OrderID         uint `gorm:"index"`
	ProductID       string
	ProductTitle    string
	ProductSlug     string
	VariantID       string
	VariantTitle    string
	ProductImageURL string
	Quantity        int
	PricePerItem    float64 // validated per-unit price in the order's currency
	TotalAmount     float64
}
