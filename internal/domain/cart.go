package domain

// LineItem is one row in a session cart: a product with a specific set of
// chosen options, note and quantity. Identity for merge purposes is the
// signature computed over productId + sorted option ids + note, never the
// product id alone.
type LineItem struct {
	ProductID      string                `json:"productId"`
	ProductName    string                `json:"productName"`
	UnitPriceCents *int64                `json:"unitPriceCents,omitempty"`
	Quantity       int                   `json:"quantity"`
	Note           string                `json:"note,omitempty"`
	Selections     []SubproductSelection `json:"selections,omitempty"`
	ImageURL       string                `json:"imageUrl,omitempty"`
	HasOptions     bool                  `json:"hasOptions"`
	TaxRate        *float64              `json:"taxRate,omitempty"`
}

// SubproductSelection is one chosen option captured at add time.
type SubproductSelection struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	PriceCents int64          `json:"priceCents"`
	Linked     *LinkedProduct `json:"linkedProduct,omitempty"`
}

// EffectivePriceCents honors the linked-product override.
func (s SubproductSelection) EffectivePriceCents() int64 {
	if s.Linked != nil {
		return s.Linked.PriceCents
	}
	return s.PriceCents
}

// UnitTotalCents is the price of a single unit of the line: base price plus
// every selected option. A missing base price counts as zero.
func (li LineItem) UnitTotalCents() int64 {
	var total int64
	if li.UnitPriceCents != nil {
		total = *li.UnitPriceCents
	}
	for _, sel := range li.Selections {
		total += sel.EffectivePriceCents()
	}
	return total
}

// OptionIDs returns the ids of the chosen options, using the linked-product
// id when an override is present.
func (li LineItem) OptionIDs() []string {
	if len(li.Selections) == 0 {
		return nil
	}
	ids := make([]string, 0, len(li.Selections))
	for _, sel := range li.Selections {
		if sel.Linked != nil {
			ids = append(ids, sel.Linked.ID)
			continue
		}
		ids = append(ids, sel.ID)
	}
	return ids
}
