package entity

// CartLine is one product line of a POS cart
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Subtotal returns unit price times quantity
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart is the in-memory cart of a single POS session.
// Lines keep the order in which their products were first added.
// A Cart is not safe for concurrent use; the session owning it serializes access.
type Cart struct {
	order []string
	lines map[string]*CartLine
}

// NewCart returns an empty cart
func NewCart() *Cart {
	return &Cart{lines: make(map[string]*CartLine)}
}

// Add puts one unit of product into the cart.
// An existing line is incremented, otherwise a new line with quantity 1 is appended.
func (c *Cart) Add(product *Product) {
	if c.lines == nil {
		c.lines = make(map[string]*CartLine)
	}
	if line, ok := c.lines[product.ID]; ok {
		line.Quantity++
		return
	}
	c.lines[product.ID] = &CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  1,
	}
	c.order = append(c.order, product.ID)
}

// UpdateQuantity changes a line's quantity by delta, never going below 1.
// Unknown product ids are ignored.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	line, ok := c.lines[productID]
	if !ok {
		return
	}
	line.Quantity = max(1, line.Quantity+delta)
}

// Remove deletes the line for productID if present
func (c *Cart) Remove(productID string) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.order = nil
	c.lines = make(map[string]*CartLine)
}

// Total is the sum of all line subtotals
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.order)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.order) == 0
}

// Line returns a copy of the line for productID
func (c *Cart) Line(productID string) (CartLine, bool) {
	line, ok := c.lines[productID]
	if !ok {
		return CartLine{}, false
	}
	return *line, true
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}
