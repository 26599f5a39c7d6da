package tables

import (
	"time"

	"github.com/google/uuid"
)

// Order is the immutable checkout snapshot header. Its line items are the
// exact cart items moved onto it at commit time; neither the header nor
// the item set is ever mutated afterwards. The total is computed for
// display and notification, never persisted.
type Order struct {
	tableName   struct{}  `bun:"table:orders,alias:o"`
	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	OrderNumber string    `bun:"order_number,notnull,unique" json:"order_number"`
	FullName    string    `bun:"full_name,notnull" json:"full_name"`
	Phone       string    `bun:"phone,notnull" json:"phone"`
	Phone2      string    `bun:"phone2" json:"phone2,omitempty"`
	Address     string    `bun:"address,notnull" json:"address"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`

	Items []CartItem `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
}
