package domain

import "time"

// Store is one tenant of the storefront, addressed by its URL key.
type Store struct {
	ID              string    `json:"id"`
	Key             string    `json:"key"`
	Name            string    `json:"name"`
	Currency        string    `json:"currency"`
	PointValueCents int64     `json:"pointValueCents"`
	CreatedAt       time.Time `json:"createdAt"`
}
