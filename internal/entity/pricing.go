package entity

import "fmt"

// PricingLineItem is one priced row of a proposal.
type PricingLineItem struct {
	Item  string  `json:"item"`
	Qty   int     `json:"qty"`
	Unit  string  `json:"unit"`
	Price float64 `json:"price"`
}

// Subtotal is quantity times unit price.
func (li PricingLineItem) Subtotal() float64 {
	return float64(li.Qty) * li.Price
}

func (li PricingLineItem) Validate() error {
	if li.Item == "" {
		return fmt.Errorf("%w: item", ErrMissingField)
	}
	if li.Qty <= 0 {
		return fmt.Errorf("%w: qty must be positive, got %d", ErrInvalidParameter, li.Qty)
	}
	if li.Price < 0 {
		return fmt.Errorf("%w: price must not be negative, got %v", ErrInvalidParameter, li.Price)
	}
	return nil
}

// PricingTable is an ordered collection of line items. Totals are derived on
// read so user edits can never leave a stale total visible.
type PricingTable struct {
	Items []PricingLineItem `json:"items"`
}

// Total is the sum of all line subtotals.
func (t *PricingTable) Total() float64 {
	var total float64
	for _, li := range t.Items {
		total += li.Subtotal()
	}
	return total
}

// Add appends a line item, keeping insertion order.
func (t *PricingTable) Add(li PricingLineItem) error {
	if err := li.Validate(); err != nil {
		return err
	}
	t.Items = append(t.Items, li)
	return nil
}

// Update replaces the line item at index.
func (t *PricingTable) Update(index int, li PricingLineItem) error {
	if index < 0 || index >= len(t.Items) {
		return fmt.Errorf("%w: pricing row %d", ErrRowNotFound, index)
	}
	if err := li.Validate(); err != nil {
		return err
	}
	t.Items[index] = li
	return nil
}

// Remove deletes the line item at index, preserving the order of the rest.
func (t *PricingTable) Remove(index int) error {
	if index < 0 || index >= len(t.Items) {
		return fmt.Errorf("%w: pricing row %d", ErrRowNotFound, index)
	}
	t.Items = append(t.Items[:index], t.Items[index+1:]...)
	return nil
}
