package domain

import "time"

// CartItem is one catalog item held in a cart, keyed by ItemID. The price
// fields are snapshotted at add time so totals stay stable while the item
// sits in the cart.
type CartItem struct {
	ItemID          string    `json:"item_id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DiscountedPrice *float64  `json:"discounted_price,omitempty"`
	Type            string    `json:"type"`
	Image           string    `json:"image,omitempty"`
	Quantity        int       `json:"quantity"`
	AddedAt         time.Time `json:"added_at"`
}

// EffectivePrice returns the discounted price when present, the list price
// otherwise.
func (ci CartItem) EffectivePrice() float64 {
	if ci.DiscountedPrice != nil {
		return *ci.DiscountedPrice
	}
	return ci.Price
}

// Cart holds a user's selected items. Invariants maintained by the mutation
// methods: at most one entry per item id, and every entry has Quantity >= 1.
type Cart struct {
	ID        string     `json:"id,omitempty"`
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddItem inserts item with quantity 1, or increments the quantity of the
// existing entry with the same item id.
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ItemID == item.ItemID {
			c.Items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the entry with the given item id. Removing an absent id
// is a no-op.
func (c *Cart) RemoveItem(itemID string) {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of the entry with the given item id.
// A quantity of zero or less removes the entry, so no zero-quantity entries
// ever persist.
func (c *Cart) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalItems returns the sum of quantities across entries, not the number of
// distinct entries.
func (c *Cart) TotalItems() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// TotalPrice returns the running total using each entry's effective price.
// Rounding to the smallest currency unit is a display concern.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, it := range c.Items {
		total += it.EffectivePrice() * float64(it.Quantity)
	}
	return total
}
