package model

import "time"

// CartLine is one reservation-in-progress inside a cart. Lines are owned
// exclusively by their cart and never shared across accounts.
type CartLine struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id"`
	LocalityName string `json:"locality_name"`
	Quantity     int    `json:"quantity"`
}

// Cart is the ordered collection of lines embedded in an account. Line order
// is insertion order and is only used for display.
type Cart struct {
	CreatedAt time.Time  `json:"created_at"`
	Lines     []CartLine `json:"lines"`
}

// Line returns the index of the line with the given id, or -1.
func (c *Cart) Line(id string) int {
	for i, line := range c.Lines {
		if line.ID == id {
			return i
		}
	}
	return -1
}

// CartUpdateResult reports the outcome of a cart mutation. CartEmpty is set
// when the operation was a no-op because the cart had no lines: an expected
// user action reported as information, not as an error.
type CartUpdateResult struct {
	CartEmpty bool `json:"cart_empty"`
}

// AddCartLineRequest is the DTO for POST /api/accounts/:id/cart/items.
type AddCartLineRequest struct {
	EventID      string `json:"event_id" validate:"required,notblank"`
	LocalityName string `json:"locality_name" validate:"required,notblank,max=255"`
	Quantity     int    `json:"quantity" validate:"required,gte=1"`
}

// EditCartLineRequest is the DTO for PUT /api/accounts/:id/cart/items/:itemID.
// Locality and quantity are always replaced together.
type EditCartLineRequest struct {
	NewLocalityName string `json:"new_locality_name" validate:"required,notblank,max=255"`
	NewQuantity     int    `json:"new_quantity" validate:"required,gte=1"`
}
