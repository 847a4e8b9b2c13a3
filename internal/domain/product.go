package domain

import "time"

type ProductDefinition struct {
	ID          string         `json:"id"`
	StoreID     string         `json:"-"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	PriceCents  *int64         `json:"priceCents,omitempty"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	Groups      []*OptionGroup `json:"optionGroups,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// OptionGroup is one customization step ("popup") attached to a product.
type OptionGroup struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Multiselect bool     `json:"multiselect"`
	Minimum     int      `json:"minimum"`
	Maximum     int      `json:"maximum"`
	Order       int      `json:"order"`
	Options     []Option `json:"options"`
}

// MaxSelections returns the effective upper bound for the group.
// Single-choice groups allow one selection regardless of the stored maximum.
func (g OptionGroup) MaxSelections() int {
	if !g.Multiselect {
		return 1
	}
	return g.Maximum
}

type Option struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	PriceCents int64          `json:"priceCents"`
	Linked     *LinkedProduct `json:"linkedProduct,omitempty"`
}

// LinkedProduct is a full product reused as an option. When present, its
// id, name and price take precedence over the option's own.
type LinkedProduct struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	ImageURL   string `json:"imageUrl,omitempty"`
}
