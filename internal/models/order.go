package models

// OrderItemInput references a product and a desired quantity. Price and
// subtotal are always computed server-side, never trusted from the client.
type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

type OrderInput struct {
	UserID string           `json:"userId" validate:"required"`
	Items  []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type BillInput struct {
	OrderID  string  `json:"orderId" validate:"required"`
	UserID   string  `json:"userId" validate:"required"`
	Discount float64 `json:"discount,omitempty" validate:"omitempty,gte=0"`
}

type TransactionInput struct {
	OrderID string  `json:"orderId" validate:"required"`
	UserID  string  `json:"userId" validate:"required"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	Method  string  `json:"method" validate:"required,oneof=card cash netbanking upi"`
	Status  string  `json:"status,omitempty" validate:"omitempty,oneof=pending completed failed"`
}

type AddressInput struct {
	UserID     string `json:"userId" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

type CartItemInput struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}
