package domain

import "time"

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// Coupon reduces the payable subtotal by a percentage or a fixed amount.
// Value is a percentage for DiscountPercentage, cents for DiscountFixed.
type Coupon struct {
	ID         string       `json:"id"`
	StoreID    string       `json:"-"`
	Code       string       `json:"code"`
	Kind       DiscountKind `json:"kind"`
	Value      int64        `json:"value"`
	ValidFrom  time.Time    `json:"validFrom"`
	ValidUntil time.Time    `json:"validUntil"`
	UsageLimit *int         `json:"usageLimit,omitempty"`
	UsedCount  int          `json:"usedCount"`
}

// ActiveAt reports whether the coupon may be applied at the given moment.
func (c Coupon) ActiveAt(now time.Time) bool {
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return false
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false
	}
	return true
}

// Voucher is a fixed-value gift voucher.
type Voucher struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"-"`
	Code       string    `json:"code"`
	ValueCents int64     `json:"valueCents"`
	ValidFrom  time.Time `json:"validFrom"`
	ValidUntil time.Time `json:"validUntil"`
	Redeemed   bool      `json:"redeemed"`
}

func (v Voucher) ActiveAt(now time.Time) bool {
	if v.Redeemed {
		return false
	}
	return !now.Before(v.ValidFrom) && !now.After(v.ValidUntil)
}

// Promotion is the checkout's active discount state: at most one coupon or
// one voucher, never both.
type Promotion struct {
	Coupon  *Coupon  `json:"coupon,omitempty"`
	Voucher *Voucher `json:"voucher,omitempty"`
}
