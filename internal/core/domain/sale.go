package domain

import "time"

// SaleDateLayout is the wire format for sale dates.
const SaleDateLayout = "2006-01-02"

// Sale is a completed sales transaction header.
type Sale struct {
	ID           int64   `json:"id,omitempty"`
	CustomerName string  `json:"customerName"`
	TotalAmount  float64 `json:"totalAmount"`
	SaleDate     string  `json:"saleDate,omitempty"`
}

// SaleItem is one line of a sale.
type SaleItem struct {
	ID         int64   `json:"id,omitempty"`
	SaleID     int64   `json:"saleId,omitempty"`
	MedicineID int64   `json:"medicineId"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// SaleRequest is the create-sale payload: header plus line items.
type SaleRequest struct {
	Sale  Sale       `json:"sale"`
	Items []SaleItem `json:"items"`
}

// CartLine is one pending line of an unsaved sale.
type CartLine struct {
	MedicineID int64
	Name       string
	Price      float64
	Quantity   int
}

// Cart accumulates sale lines against the inventory snapshot loaded when the
// sale was started. Quantity checks run against that snapshot only; the
// backend decrements real stock when the sale is persisted.
type Cart struct {
	stock map[int64]Medicine
	lines []CartLine
}

// NewCart starts an empty cart over an inventory snapshot.
func NewCart(stock []Medicine) *Cart {
	byID := make(map[int64]Medicine, len(stock))
	for _, m := range stock {
		byID[m.ID] = m
	}
	return &Cart{stock: byID}
}

// Add puts qty units of a medicine in the cart, merging with an existing line
// for the same medicine. The merged quantity may not exceed the stock
// snapshot.
func (c *Cart) Add(medicineID int64, qty int) error {
	if qty <= 0 {
		return ErrInsufficientStock
	}
	med, ok := c.stock[medicineID]
	if !ok {
		return ErrInsufficientStock
	}
	for i, line := range c.lines {
		if line.MedicineID == medicineID {
			if line.Quantity+qty > med.Quantity {
				return ErrInsufficientStock
			}
			c.lines[i].Quantity += qty
			return nil
		}
	}
	if qty > med.Quantity {
		return ErrInsufficientStock
	}
	c.lines = append(c.lines, CartLine{
		MedicineID: medicineID,
		Name:       med.Name,
		Price:      med.Price,
		Quantity:   qty,
	})
	return nil
}

// Remove drops the line for a medicine, if present.
func (c *Cart) Remove(medicineID int64) {
	for i, line := range c.lines {
		if line.MedicineID == medicineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity on an existing line. A quantity of zero
// or less removes the line.
func (c *Cart) SetQuantity(medicineID int64, qty int) error {
	if qty <= 0 {
		c.Remove(medicineID)
		return nil
	}
	med, ok := c.stock[medicineID]
	if !ok || qty > med.Quantity {
		return ErrInsufficientStock
	}
	for i, line := range c.lines {
		if line.MedicineID == medicineID {
			c.lines[i].Quantity = qty
			return nil
		}
	}
	return ErrInsufficientStock
}

// Lines returns a copy of the pending lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// BuildRequest assembles the create-sale payload for a non-empty cart.
func (c *Cart) BuildRequest(customerName string, now time.Time) (SaleRequest, error) {
	if len(c.lines) == 0 {
		return SaleRequest{}, ErrEmptyCart
	}
	items := make([]SaleItem, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, SaleItem{
			MedicineID: line.MedicineID,
			Quantity:   line.Quantity,
			Price:      line.Price,
		})
	}
	return SaleRequest{
		Sale: Sale{
			CustomerName: customerName,
			TotalAmount:  c.Total(),
			SaleDate:     now.Format(SaleDateLayout),
		},
		Items: items,
	}, nil
}
