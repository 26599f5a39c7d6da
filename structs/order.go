package structs

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutRequest is the checkout form payload. Required fields are
// validated after trimming; phone2 is optional.
type CheckoutRequest struct {
	FIO     string `json:"fio"`
	Phone   string `json:"phone"`
	Phone2  string `json:"phone2,omitempty"`
	Address string `json:"address"`
}

// ContactRequest feeds the contact-form notification.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"required,max=30"`
	Message string `json:"message" validate:"max=2000"`
}

// OrderConfirmation is returned after a successful checkout: the immutable
// header, the moved lines and the computed (not persisted) total.
type OrderConfirmation struct {
	OrderID     uuid.UUID      `json:"order_id"`
	OrderNumber string         `json:"order_number"`
	FullName    string         `json:"full_name"`
	Phone       string         `json:"phone"`
	Phone2      string         `json:"phone2,omitempty"`
	Address     string         `json:"address"`
	CreatedAt   time.Time      `json:"created_at"`
	Lines       []CartLineView `json:"lines"`
	TotalCents  int64          `json:"total_cents"`
}
