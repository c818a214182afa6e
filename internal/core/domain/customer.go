package domain

// Customer is a registered buyer.
type Customer struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}
