package domain

type MethodType string

const (
	MethodDelivery MethodType = "delivery"
	MethodTakeaway MethodType = "takeaway"
	MethodDineIn   MethodType = "dine-in"
)

// FulfillmentMethod describes one way a store hands an order to the
// customer. Delivery parameters are zero for the other types.
type FulfillmentMethod struct {
	Type              MethodType `json:"type"`
	StoreID           string     `json:"-"`
	Enabled           bool       `json:"enabled"`
	BaseFeeCents      int64      `json:"baseFeeCents"`
	ExtraCentsPerKm   int64      `json:"extraCentsPerKm"`
	MinimumOrderCents int64      `json:"minimumOrderCents"`
	RadiusKm          float64    `json:"radiusKm"`
	RequireLastName   bool       `json:"requireLastName"`
	RequirePhone      bool       `json:"requirePhone"`
	RequireEmail      bool       `json:"requireEmail"`
}
