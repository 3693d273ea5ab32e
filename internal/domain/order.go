package domain

import "time"

// OrderStatus represents the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further status transitions are expected.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentMethod is the buyer-chosen way to pay.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentCard           PaymentMethod = "card"
	PaymentQRTransfer     PaymentMethod = "qr_transfer"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
)

// Valid reports whether the method is one of the supported variants.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentCard, PaymentQRTransfer, PaymentBankTransfer:
		return true
	}
	return false
}

// PaymentStatus tracks the payment side of an order.
type PaymentStatus string

const (
	PaymentStatusPending              PaymentStatus = "pending"
	PaymentStatusAwaitingConfirmation PaymentStatus = "awaiting_confirmation"
	PaymentStatusPaid                 PaymentStatus = "paid"
	PaymentStatusRejected             PaymentStatus = "rejected"
)

// InitialPaymentStatus maps a payment method to the status an order starts
// in: cash on delivery needs nothing up front, everything else waits for an
// external proof to be confirmed.
func (m PaymentMethod) InitialPaymentStatus() PaymentStatus {
	switch m {
	case PaymentCashOnDelivery:
		return PaymentStatusPending
	case PaymentCard, PaymentQRTransfer, PaymentBankTransfer:
		return PaymentStatusAwaitingConfirmation
	default:
		return PaymentStatusAwaitingConfirmation
	}
}

// OrderItemSnapshot is an immutable copy of a cart line taken at checkout.
// Later product or cart mutation does not reach it.
type OrderItemSnapshot struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	ImageURL  string  `bson:"image_url,omitempty" json:"image_url,omitempty"`
	SellerID  string  `bson:"seller_id,omitempty" json:"seller_id,omitempty"`
}

// StatusEntry is one append-only record in an order's status log.
type StatusEntry struct {
	Status    OrderStatus `bson:"status" json:"status"`
	Message   string      `bson:"message" json:"message"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
}

// ShippingAddress is the destination captured at checkout.
type ShippingAddress struct {
	FullName    string `bson:"full_name" json:"full_name"`
	Phone       string `bson:"phone" json:"phone"`
	AddressLine string `bson:"address_line" json:"address_line"`
	City        string `bson:"city" json:"city"`
	PostalCode  string `bson:"postal_code" json:"postal_code"`
}

// Order is the persisted record created once at checkout submission and
// thereafter mutated only by appending status transitions.
type Order struct {
	ID              string              `bson:"_id" json:"id"`
	BuyerID         string              `bson:"buyer_id" json:"buyer_id"`
	Items           []OrderItemSnapshot `bson:"items" json:"items"`
	Subtotal        float64             `bson:"subtotal" json:"subtotal"`
	DiscountAmount  float64             `bson:"discount_amount" json:"discount_amount"`
	DiscountCode    string              `bson:"discount_code,omitempty" json:"discount_code,omitempty"`
	DeliveryFee     float64             `bson:"delivery_fee" json:"delivery_fee"`
	Total           float64             `bson:"total" json:"total"`
	PaymentMethod   PaymentMethod       `bson:"payment_method" json:"payment_method"`
	PaymentStatus   PaymentStatus       `bson:"payment_status" json:"payment_status"`
	PaymentProofURL string              `bson:"payment_proof_url,omitempty" json:"payment_proof_url,omitempty"`
	ShippingAddress ShippingAddress     `bson:"shipping_address" json:"shipping_address"`
	Status          OrderStatus         `bson:"status" json:"status"`
	StatusLog       []StatusEntry       `bson:"status_log" json:"status_log"`
	SellerIDs       []string            `bson:"seller_ids" json:"seller_ids"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}
