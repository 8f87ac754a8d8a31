package models

import "time"

// CartItem is a product plus the quantity the shopper picked.
// The embedded product keeps the wire shape flat: a cart item serializes
// as the product fields with a quantity next to them.
type CartItem struct {
	Product  `bson:",inline"`
	Quantity int `json:"quantity" bson:"quantity" validate:"gte=1"`
}

// Cart holds the pending selection for one shopper. Items keep insertion
// order; at most one entry exists per product id.
type Cart struct {
	ID        string     `json:"id" bson:"_id"`
	Items     []CartItem `json:"items" bson:"items"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

func NewCart(id string) *Cart {
	now := time.Now()
	return &Cart{
		ID:        id,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem merges a product into the cart: an existing entry gets its
// quantity bumped by one, otherwise the product is appended with
// quantity 1.
func (c *Cart) AddItem(p Product) {
	for i := range c.Items {
		if c.Items[i].ID == p.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: 1})
}

// RemoveItem drops the entry for the product id. Removing an absent
// product is a no-op.
func (c *Cart) RemoveItem(productID string) {
	for i, it := range c.Items {
		if it.ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity pins the entry's quantity. Anything below one removes the
// entry instead.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// TotalItems is the sum of quantities over all entries.
func (c *Cart) TotalItems() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of price times quantity over all entries.
func (c *Cart) TotalPrice() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
