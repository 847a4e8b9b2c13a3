package domain

import "time"

// TimeWindow is a recurring weekly availability rule. Weekday follows the
// ISO convention, 1=Monday through 7=Sunday, independent of the platform's
// native numbering.
type TimeWindow struct {
	ID              string     `json:"id"`
	StoreID         string     `json:"-"`
	Method          MethodType `json:"method"`
	Weekday         int        `json:"weekday"`
	Start           string     `json:"start"`
	End             string     `json:"end"`
	IntervalMinutes int        `json:"intervalMinutes"`
	MaxOrders       *int       `json:"maxOrders,omitempty"`
	Enabled         bool       `json:"enabled"`
}

// Closure is a concrete calendar date on which the store does not take
// orders, overriding every recurring window regardless of method.
type Closure struct {
	ID      string    `json:"id"`
	StoreID string    `json:"-"`
	Date    time.Time `json:"date"`
	Reason  string    `json:"reason,omitempty"`
}
