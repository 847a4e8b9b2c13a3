package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"orderfront/internal/domain"
	"orderfront/internal/schedule"
)

func methodFromQuery(c *gin.Context) (domain.MethodType, bool) {
	switch m := domain.MethodType(c.Query("method")); m {
	case domain.MethodDelivery, domain.MethodTakeaway, domain.MethodDineIn:
		return m, true
	default:
		respondError(c, http.StatusBadRequest, "method must be delivery, takeaway or dine-in")
		return "", false
	}
}

func (h *handlers) availableDates(c *gin.Context) {
	method, ok := methodFromQuery(c)
	if !ok {
		return
	}
	st := currentStore(c)
	windows, err := h.deps.FulfillmentRepo.ListWindows(c.Request.Context(), st.ID)
	if err != nil {
		h.logger.Printf("list windows: %v", err)
		respondError(c, http.StatusInternalServerError, "availability unavailable")
		return
	}
	closures, err := h.deps.FulfillmentRepo.ListClosures(c.Request.Context(), st.ID)
	if err != nil {
		h.logger.Printf("list closures: %v", err)
		respondError(c, http.StatusInternalServerError, "availability unavailable")
		return
	}

	dates := schedule.AvailableDates(method, windows, closures, time.Now(), h.deps.HorizonDays)
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, schedule.DateKey(d))
	}
	c.JSON(http.StatusOK, gin.H{"dates": out})
}

func (h *handlers) availableSlots(c *gin.Context) {
	method, ok := methodFromQuery(c)
	if !ok {
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	st := currentStore(c)
	windows, err := h.deps.FulfillmentRepo.ListWindows(c.Request.Context(), st.ID)
	if err != nil {
		h.logger.Printf("list windows: %v", err)
		respondError(c, http.StatusInternalServerError, "availability unavailable")
		return
	}

	// Per-slot booked counts come from the order intake, which lives
	// outside this service; without them no slot reports as full.
	slots := schedule.SlotsForDate(method, windows, date, nil)
	if slots == nil {
		slots = []schedule.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
