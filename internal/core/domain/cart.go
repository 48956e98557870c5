package domain

// A CartItem is a single cart entry. LineTotal is always recomputed from
// Quantity and UnitPrice, never carried independently.
type CartItem struct {
	Quantity  int
	UnitPrice float64
	LineTotal float64
	ImageRef  string
}

// A Cart holds the selected products keyed by product name together with
// the aggregate totals. TotalQuantity and TotalPrice stay consistent with
// Items after every mutation.
//
// Carts are values: mutating operations return an updated copy, so a Cart
// loaded by one request is never shared with another.
type Cart struct {
	Items         map[string]CartItem
	TotalQuantity int
	TotalPrice    float64
}

func NewCart() Cart {
	return Cart{Items: make(map[string]CartItem)}
}

// AddItem increments the quantity of the named product by one, creating the
// entry if absent. The unit price is always overwritten with the latest
// value so a catalog price change mid-session reprices the whole line; the
// cart total moves by the line-total delta, not just the added unit.
func (c Cart) AddItem(name string, unitPrice float64, imageRef string) Cart {
	next := c.clone()

	item := next.Items[name]
	oldLineTotal := item.LineTotal
	item.Quantity++
	item.UnitPrice = unitPrice
	item.ImageRef = imageRef
	item.LineTotal = float64(item.Quantity) * item.UnitPrice
	next.Items[name] = item

	next.TotalQuantity++
	next.TotalPrice += item.LineTotal - oldLineTotal
	return next
}

// SetQuantity sets the quantity of an existing entry, adjusting the item
// and cart aggregates by the delta against the entry's current unit price.
// Unknown names are a no-op. A quantity of 0 leaves a zero-value entry.
func (c Cart) SetQuantity(name string, quantity int) Cart {
	item, ok := c.Items[name]
	if !ok || quantity < 0 {
		return c
	}

	next := c.clone()

	qtyDelta := quantity - item.Quantity
	priceDelta := float64(qtyDelta) * item.UnitPrice

	item.Quantity = quantity
	item.LineTotal = float64(item.Quantity) * item.UnitPrice
	next.Items[name] = item

	next.TotalQuantity += qtyDelta
	next.TotalPrice += priceDelta
	return next
}

// RemoveItem deletes the entry and subtracts its quantity and line total
// from the cart aggregates. Unknown names are a no-op.
func (c Cart) RemoveItem(name string) Cart {
	item, ok := c.Items[name]
	if !ok {
		return c
	}

	next := c.clone()
	next.TotalQuantity -= item.Quantity
	next.TotalPrice -= item.LineTotal
	delete(next.Items, name)
	return next
}

func (c Cart) Empty() bool {
	return len(c.Items) == 0 || c.TotalQuantity == 0
}

func (c Cart) clone() Cart {
	items := make(map[string]CartItem, len(c.Items))
	for name, item := range c.Items {
		items[name] = item
	}
	c.Items = items
	return c
}

// A StoreOutcome reports how a cart persistence attempt ended. Persistence
// is fail-soft: the in-memory cart stays authoritative whatever the outcome.
type StoreOutcome int

const (
	OutcomeStored StoreOutcome = iota
	OutcomeSkippedEmpty
	OutcomeFailed
)

func (o StoreOutcome) String() string {
	switch o {
	case OutcomeStored:
		return "stored"
	case OutcomeSkippedEmpty:
		return "skipped-empty"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}
