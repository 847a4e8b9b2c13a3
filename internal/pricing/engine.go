package pricing

import (
	"fmt"
	"math"

	"orderfront/internal/cart"
	"orderfront/internal/domain"
)

// Quote is the checkout price breakdown. All amounts are cents.
type Quote struct {
	SubtotalCents int64 `json:"subtotalCents"`
	DiscountCents int64 `json:"discountCents"`
	ShippingCents int64 `json:"shippingCents"`
	TotalCents    int64 `json:"totalCents"`
}

// DeliveryFeeCents computes the shipping cost. It is zero for non-delivery
// methods, while the distance is still unknown, and when the address falls
// outside the delivery radius; CanSubmit reports those last two as blocking
// conditions separately.
func DeliveryFeeCents(method domain.FulfillmentMethod, distanceKm *float64) int64 {
	if method.Type != domain.MethodDelivery || distanceKm == nil {
		return 0
	}
	if method.RadiusKm > 0 && *distanceKm > method.RadiusKm {
		return 0
	}
	return method.BaseFeeCents + int64(math.Round(*distanceKm*float64(method.ExtraCentsPerKm)))
}

// DiscountCents computes the coupon or voucher reduction, capped at the
// subtotal. An empty promotion discounts nothing.
func DiscountCents(subtotalCents int64, promo domain.Promotion) int64 {
	var discount int64
	switch {
	case promo.Coupon != nil:
		if promo.Coupon.Kind == domain.DiscountPercentage {
			discount = subtotalCents * promo.Coupon.Value / 100
		} else {
			discount = promo.Coupon.Value
		}
	case promo.Voucher != nil:
		discount = promo.Voucher.ValueCents
	default:
		return 0
	}
	if discount < 0 {
		return 0
	}
	if discount > subtotalCents {
		return subtotalCents
	}
	return discount
}

// Engine prices a cart for checkout. PointValueCents is the store's
// conversion rate for loyalty points; credits are already cents.
type Engine struct {
	PointValueCents int64
}

// Total computes the chargeable breakdown. The promotion discount plus
// points and credits reduce the subtotal, floored at zero before shipping
// is added; the grand total is never negative. A line with a non-positive
// quantity or negative redemption amounts reaching this layer is a defect
// and reported as a hard error, not a validation message.
func (e Engine) Total(c *cart.Store, method domain.FulfillmentMethod, distanceKm *float64, promo domain.Promotion, pointsUsed, creditsUsedCents int64) (Quote, error) {
	for _, line := range c.Items() {
		if line.Quantity <= 0 {
			return Quote{}, fmt.Errorf("cart line %q has non-positive quantity %d", cart.Signature(line), line.Quantity)
		}
	}
	if pointsUsed < 0 || creditsUsedCents < 0 {
		return Quote{}, fmt.Errorf("negative redemption: points %d, credits %d", pointsUsed, creditsUsedCents)
	}

	subtotal := c.SubtotalCents()
	discount := DiscountCents(subtotal, promo) + pointsUsed*e.PointValueCents + creditsUsedCents
	shipping := DeliveryFeeCents(method, distanceKm)

	payable := subtotal - discount
	if payable < 0 {
		payable = 0
	}
	return Quote{
		SubtotalCents: subtotal,
		DiscountCents: discount,
		ShippingCents: shipping,
		TotalCents:    payable + shipping,
	}, nil
}

// Reason names the first condition blocking checkout submission. Callers
// translate it into user-facing copy.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonMethodMissing   Reason = "method_missing"
	ReasonMethodDisabled  Reason = "method_disabled"
	ReasonDateMissing     Reason = "date_missing"
	ReasonTimeMissing     Reason = "time_missing"
	ReasonPaymentMissing  Reason = "payment_missing"
	ReasonLastNameMissing Reason = "last_name_missing"
	ReasonPhoneMissing    Reason = "phone_missing"
	ReasonEmailMissing    Reason = "email_missing"
	ReasonDistanceUnknown Reason = "distance_unknown"
	ReasonOutOfRadius     Reason = "out_of_radius"
	ReasonBelowMinimum    Reason = "below_minimum_order"
)

// SubmitInput is everything CanSubmit looks at. Method is nil while the
// customer has not picked one; DistanceKm is nil while the delivery address
// has not resolved yet.
type SubmitInput struct {
	Method          *domain.FulfillmentMethod
	SelectedDate    string
	SelectedTime    string
	PaymentSelected bool
	LastName        string
	Phone           string
	Email           string
	DistanceKm      *float64
	TotalCents      int64
}

// CanSubmit is the single gate for enabling checkout submission. It is
// pure and cheap; callers re-evaluate it whenever any input changes. It
// never fails for business conditions, it only says no and why.
func CanSubmit(in SubmitInput) (bool, Reason) {
	if in.Method == nil {
		return false, ReasonMethodMissing
	}
	if !in.Method.Enabled {
		return false, ReasonMethodDisabled
	}
	if in.SelectedDate == "" {
		return false, ReasonDateMissing
	}
	if in.SelectedTime == "" {
		return false, ReasonTimeMissing
	}
	if !in.PaymentSelected {
		return false, ReasonPaymentMissing
	}
	if in.Method.RequireLastName && in.LastName == "" {
		return false, ReasonLastNameMissing
	}
	if in.Method.RequirePhone && in.Phone == "" {
		return false, ReasonPhoneMissing
	}
	if in.Method.RequireEmail && in.Email == "" {
		return false, ReasonEmailMissing
	}
	if in.Method.Type == domain.MethodDelivery {
		if in.DistanceKm == nil {
			return false, ReasonDistanceUnknown
		}
		if in.Method.RadiusKm > 0 && *in.DistanceKm > in.Method.RadiusKm {
			return false, ReasonOutOfRadius
		}
		if in.TotalCents < in.Method.MinimumOrderCents {
			return false, ReasonBelowMinimum
		}
	}
	return true, ReasonNone
}
