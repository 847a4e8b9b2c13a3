package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"orderfront/internal/cart"
	"orderfront/internal/domain"
	"orderfront/internal/pricing"
)

type quoteRequest struct {
	Method              string   `json:"method" binding:"required"`
	DistanceKm          *float64 `json:"distanceKm"`
	CouponCode          string   `json:"couponCode"`
	VoucherCode         string   `json:"voucherCode"`
	PointsUsed          int64    `json:"pointsUsed"`
	CreditsUsedCents    int64    `json:"creditsUsedCents"`
	PointsBalance       *int64   `json:"pointsBalance"`
	CreditsBalanceCents *int64   `json:"creditsBalanceCents"`
}

type validateRequest struct {
	quoteRequest
	SelectedDate    string `json:"selectedDate"`
	SelectedTime    string `json:"selectedTime"`
	PaymentSelected bool   `json:"paymentSelected"`
	LastName        string `json:"lastName"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
}

// resolveQuote turns a quote request into a method and a priced breakdown.
// It writes the error response itself and reports ok=false on failure.
func (h *handlers) resolveQuote(c *gin.Context, cartStore *cart.Store, req quoteRequest) (domain.FulfillmentMethod, pricing.Quote, bool) {
	st := currentStore(c)

	method, err := h.deps.FulfillmentRepo.GetMethod(c.Request.Context(), st.ID, domain.MethodType(req.Method))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, "fulfillment method not found")
		} else {
			h.logger.Printf("get method: %v", err)
			respondError(c, http.StatusInternalServerError, "fulfillment unavailable")
		}
		return domain.FulfillmentMethod{}, pricing.Quote{}, false
	}

	if req.PointsUsed < 0 || req.CreditsUsedCents < 0 {
		respondError(c, http.StatusBadRequest, "points and credits must be non-negative")
		return domain.FulfillmentMethod{}, pricing.Quote{}, false
	}

	promo, ok := h.resolvePromotion(c, st.ID, req.CouponCode, req.VoucherCode)
	if !ok {
		return domain.FulfillmentMethod{}, pricing.Quote{}, false
	}

	// Redemptions are bounded by the customer's balances when supplied.
	points := req.PointsUsed
	if req.PointsBalance != nil && points > *req.PointsBalance {
		points = *req.PointsBalance
	}
	credits := req.CreditsUsedCents
	if req.CreditsBalanceCents != nil && credits > *req.CreditsBalanceCents {
		credits = *req.CreditsBalanceCents
	}

	engine := pricing.Engine{PointValueCents: st.PointValueCents}
	quote, err := engine.Total(cartStore, *method, req.DistanceKm, promo, points, credits)
	if err != nil {
		h.logger.Printf("pricing defect: %v", err)
		respondError(c, http.StatusInternalServerError, "pricing failed")
		return domain.FulfillmentMethod{}, pricing.Quote{}, false
	}
	return *method, quote, true
}

// resolvePromotion looks up at most one of coupon or voucher; applying both
// at once is rejected.
func (h *handlers) resolvePromotion(c *gin.Context, storeID, couponCode, voucherCode string) (domain.Promotion, bool) {
	var promo domain.Promotion
	if couponCode == "" && voucherCode == "" {
		return promo, true
	}
	if couponCode != "" && voucherCode != "" {
		respondError(c, http.StatusBadRequest, "coupon and voucher are mutually exclusive")
		return promo, false
	}
	now := time.Now()

	if couponCode != "" {
		coupon, err := h.deps.PromotionRepo.GetCoupon(c.Request.Context(), storeID, couponCode)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondError(c, http.StatusUnprocessableEntity, "unknown coupon code")
			} else {
				h.logger.Printf("get coupon: %v", err)
				respondError(c, http.StatusInternalServerError, "promotions unavailable")
			}
			return promo, false
		}
		if !coupon.ActiveAt(now) {
			respondError(c, http.StatusUnprocessableEntity, "coupon is not active")
			return promo, false
		}
		promo.Coupon = coupon
		return promo, true
	}

	voucher, err := h.deps.PromotionRepo.GetVoucher(c.Request.Context(), storeID, voucherCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusUnprocessableEntity, "unknown voucher code")
		} else {
			h.logger.Printf("get voucher: %v", err)
			respondError(c, http.StatusInternalServerError, "promotions unavailable")
		}
		return promo, false
	}
	if !voucher.ActiveAt(now) {
		respondError(c, http.StatusUnprocessableEntity, "voucher is not active")
		return promo, false
	}
	promo.Voucher = voucher
	return promo, true
}

func (h *handlers) checkoutQuote(c *gin.Context) {
	cartStore, ok := h.sessionCart(c)
	if !ok {
		return
	}
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "method required")
		return
	}
	if _, quote, ok := h.resolveQuote(c, cartStore, req); ok {
		c.JSON(http.StatusOK, quote)
	}
}

func (h *handlers) checkoutValidate(c *gin.Context) {
	cartStore, ok := h.sessionCart(c)
	if !ok {
		return
	}
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "method required")
		return
	}
	method, quote, ok := h.resolveQuote(c, cartStore, req.quoteRequest)
	if !ok {
		return
	}

	canSubmit, reason := pricing.CanSubmit(pricing.SubmitInput{
		Method:          &method,
		SelectedDate:    req.SelectedDate,
		SelectedTime:    req.SelectedTime,
		PaymentSelected: req.PaymentSelected,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Email:           req.Email,
		DistanceKm:      req.DistanceKm,
		TotalCents:      quote.TotalCents,
	})
	c.JSON(http.StatusOK, gin.H{
		"canSubmit": canSubmit,
		"reason":    reason,
		"quote":     quote,
	})
}
