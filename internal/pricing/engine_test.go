package pricing

import (
	"strings"
	"testing"
	"time"

	"orderfront/internal/cart"
	"orderfront/internal/domain"
)

func centsPtr(v int64) *int64 {
	return &v
}

func kmPtr(v float64) *float64 {
	return &v
}

func deliveryMethod() domain.FulfillmentMethod {
	return domain.FulfillmentMethod{
		Type:              domain.MethodDelivery,
		Enabled:           true,
		BaseFeeCents:      200,
		ExtraCentsPerKm:   50,
		MinimumOrderCents: 1000,
		RadiusKm:          5,
		RequireLastName:   true,
		RequirePhone:      true,
	}
}

func cartWith(t *testing.T, items ...domain.LineItem) *cart.Store {
	t.Helper()
	s := cart.NewStore(cart.NewMemoryStorage(), nil)
	for _, item := range items {
		if err := s.AddItem(item); err != nil {
			t.Fatalf("seed cart: %v", err)
		}
	}
	return s
}

func coupon(kind domain.DiscountKind, value int64) domain.Promotion {
	return domain.Promotion{Coupon: &domain.Coupon{Code: "C", Kind: kind, Value: value}}
}

func TestDeliveryFeeBoundary(t *testing.T) {
	method := deliveryMethod()
	if got := DeliveryFeeCents(method, kmPtr(5.0)); got != 450 {
		t.Fatalf("expected fee 450 at the radius edge, got %d", got)
	}
	if got := DeliveryFeeCents(method, kmPtr(5.01)); got != 0 {
		t.Fatalf("expected fee 0 beyond the radius, got %d", got)
	}
	if got := DeliveryFeeCents(method, nil); got != 0 {
		t.Fatalf("expected fee 0 for unknown distance, got %d", got)
	}
	takeaway := domain.FulfillmentMethod{Type: domain.MethodTakeaway, Enabled: true}
	if got := DeliveryFeeCents(takeaway, kmPtr(2)); got != 0 {
		t.Fatalf("expected fee 0 for takeaway, got %d", got)
	}
}

func TestDiscountCents(t *testing.T) {
	if got := DiscountCents(2000, domain.Promotion{}); got != 0 {
		t.Fatalf("expected no discount without promotion, got %d", got)
	}
	if got := DiscountCents(2000, coupon(domain.DiscountPercentage, 25)); got != 500 {
		t.Fatalf("expected 25%% of 2000 = 500, got %d", got)
	}
	if got := DiscountCents(2000, coupon(domain.DiscountPercentage, 150)); got != 2000 {
		t.Fatalf("expected percentage discount capped at subtotal, got %d", got)
	}
	if got := DiscountCents(2000, coupon(domain.DiscountFixed, 300)); got != 300 {
		t.Fatalf("expected fixed discount 300, got %d", got)
	}
	if got := DiscountCents(200, coupon(domain.DiscountFixed, 500)); got != 200 {
		t.Fatalf("expected fixed discount capped at subtotal, got %d", got)
	}
	voucher := domain.Promotion{Voucher: &domain.Voucher{Code: "V", ValueCents: 800}}
	if got := DiscountCents(500, voucher); got != 500 {
		t.Fatalf("expected voucher capped at subtotal, got %d", got)
	}
}

func TestTotalBreakdown(t *testing.T) {
	c := cartWith(t, domain.LineItem{ProductID: "p1", UnitPriceCents: centsPtr(800), Quantity: 2})
	engine := Engine{PointValueCents: 10}
	quote, err := engine.Total(c, deliveryMethod(), kmPtr(2), coupon(domain.DiscountFixed, 100), 5, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.SubtotalCents != 1600 {
		t.Fatalf("expected subtotal 1600, got %d", quote.SubtotalCents)
	}
	// 100 coupon + 5 points * 10 + 50 credits.
	if quote.DiscountCents != 200 {
		t.Fatalf("expected discount 200, got %d", quote.DiscountCents)
	}
	if quote.ShippingCents != 300 {
		t.Fatalf("expected shipping 300, got %d", quote.ShippingCents)
	}
	if quote.TotalCents != 1700 {
		t.Fatalf("expected total 1700, got %d", quote.TotalCents)
	}
}

func TestTotalNeverNegative(t *testing.T) {
	c := cartWith(t, domain.LineItem{ProductID: "p1", UnitPriceCents: centsPtr(300), Quantity: 1})
	engine := Engine{PointValueCents: 1}
	quote, err := engine.Total(c, deliveryMethod(), kmPtr(2), coupon(domain.DiscountFixed, 250), 0, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.TotalCents != quote.ShippingCents {
		t.Fatalf("over-discounted total must equal shipping, got %d (shipping %d)", quote.TotalCents, quote.ShippingCents)
	}
	if quote.TotalCents < 0 {
		t.Fatalf("total must never be negative, got %d", quote.TotalCents)
	}
}

func TestTotalRejectsNegativeRedemption(t *testing.T) {
	c := cartWith(t, domain.LineItem{ProductID: "p1", UnitPriceCents: centsPtr(300), Quantity: 1})
	engine := Engine{PointValueCents: 1}
	if _, err := engine.Total(c, deliveryMethod(), nil, domain.Promotion{}, -1, 0); err == nil {
		t.Fatalf("expected hard error for negative points")
	}
	if _, err := engine.Total(c, deliveryMethod(), nil, domain.Promotion{}, 0, -10); err == nil {
		t.Fatalf("expected hard error for negative credits")
	}
}

func TestCouponActiveWindowAndUsageCap(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	limit := 10
	c := domain.Coupon{
		Code:       "SUMMER",
		Kind:       domain.DiscountPercentage,
		Value:      10,
		ValidFrom:  now.AddDate(0, 0, -1),
		ValidUntil: now.AddDate(0, 0, 1),
		UsageLimit: &limit,
		UsedCount:  9,
	}
	if !c.ActiveAt(now) {
		t.Fatalf("coupon inside window and under cap must be active")
	}
	c.UsedCount = 10
	if c.ActiveAt(now) {
		t.Fatalf("coupon at usage cap must be inactive")
	}
	c.UsedCount = 0
	if c.ActiveAt(now.AddDate(0, 0, 5)) {
		t.Fatalf("expired coupon must be inactive")
	}
}

func TestCanSubmitGate(t *testing.T) {
	method := deliveryMethod()
	valid := SubmitInput{
		Method:          &method,
		SelectedDate:    "2026-08-30",
		SelectedTime:    "18:30",
		PaymentSelected: true,
		LastName:        "Doe",
		Phone:           "+3212345678",
		DistanceKm:      kmPtr(4.5),
		TotalCents:      1500,
	}
	if ok, reason := CanSubmit(valid); !ok {
		t.Fatalf("expected submittable input, got reason %q", reason)
	}

	cases := []struct {
		name   string
		mutate func(*SubmitInput)
		reason Reason
	}{
		{"no method", func(in *SubmitInput) { in.Method = nil }, ReasonMethodMissing},
		{"no date", func(in *SubmitInput) { in.SelectedDate = "" }, ReasonDateMissing},
		{"no time", func(in *SubmitInput) { in.SelectedTime = "" }, ReasonTimeMissing},
		{"no payment", func(in *SubmitInput) { in.PaymentSelected = false }, ReasonPaymentMissing},
		{"no last name", func(in *SubmitInput) { in.LastName = "" }, ReasonLastNameMissing},
		{"no phone", func(in *SubmitInput) { in.Phone = "" }, ReasonPhoneMissing},
		{"distance unknown", func(in *SubmitInput) { in.DistanceKm = nil }, ReasonDistanceUnknown},
		{"out of radius", func(in *SubmitInput) { in.DistanceKm = kmPtr(5.01) }, ReasonOutOfRadius},
		{"below minimum", func(in *SubmitInput) { in.TotalCents = 999 }, ReasonBelowMinimum},
	}
	for _, tc := range cases {
		in := valid
		tc.mutate(&in)
		ok, reason := CanSubmit(in)
		if ok || reason != tc.reason {
			t.Fatalf("%s: expected blocked with %q, got ok=%v reason=%q", tc.name, tc.reason, ok, reason)
		}
	}
}

func TestCanSubmitTakeawaySkipsDeliveryChecks(t *testing.T) {
	method := domain.FulfillmentMethod{Type: domain.MethodTakeaway, Enabled: true, RequireEmail: true}
	in := SubmitInput{
		Method:          &method,
		SelectedDate:    "2026-08-30",
		SelectedTime:    "12:00",
		PaymentSelected: true,
		Email:           "jo@example.com",
	}
	if ok, reason := CanSubmit(in); !ok {
		t.Fatalf("expected takeaway to ignore distance and minimum, got %q", reason)
	}
	in.Email = ""
	if ok, reason := CanSubmit(in); ok || reason != ReasonEmailMissing {
		t.Fatalf("expected email requirement to block, got ok=%v reason=%q", ok, reason)
	}
}

func TestTotalRejectsCorruptLine(t *testing.T) {
	// A non-positive quantity can only reach the engine through a defect in
	// a mutation path; simulate by restoring a corrupt persisted payload.
	storage := cart.NewMemoryStorage()
	if err := storage.Save([]byte(`[{"productId":"p1","quantity":-2}]`)); err != nil {
		t.Fatalf("seed storage: %v", err)
	}
	c := cart.NewStore(storage, nil)
	if len(c.Items()) != 1 {
		t.Fatalf("fixture expects the corrupt line to load")
	}
	engine := Engine{PointValueCents: 1}
	_, err := engine.Total(c, deliveryMethod(), nil, domain.Promotion{}, 0, 0)
	if err == nil || !strings.Contains(err.Error(), "non-positive quantity") {
		t.Fatalf("expected hard error for corrupt line, got %v", err)
	}
}
