package dto

// ServiceResponse describes one catalog entry.
type ServiceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Rate     string `json:"rate"`
	Currency string `json:"currency"`
	MinOrder int    `json:"min_order"`
	MaxOrder int    `json:"max_order"`
}
