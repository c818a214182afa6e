package domain

// Supplier is a wholesale source of inventory.
type Supplier struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}
