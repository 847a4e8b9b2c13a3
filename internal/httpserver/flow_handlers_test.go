package httpserver

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"orderfront/internal/customize"
)

type flowNextResponse struct {
	Flow flowView `json:"flow"`
	Cart cartView `json:"cart"`
}

func startBurgerFlow(t *testing.T, router *gin.Engine) flowView {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/stores/demo/flows",
		map[string]any{"productId": "p-burger"}, "sess-1")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var view flowView
	decodeBody(t, rec, &view)
	return view
}

func TestStartFlowRejectsOptionlessProduct(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := doJSON(t, router, http.MethodPost, "/stores/demo/flows",
		map[string]any{"productId": "p-water"}, "sess-1")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestStartFlowUnknownProduct(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := doJSON(t, router, http.MethodPost, "/stores/demo/flows",
		map[string]any{"productId": "p-nope"}, "sess-1")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestStartFlowFirstStep(t *testing.T) {
	router := newTestRouter(t, testDeps())

	view := startBurgerFlow(t, router)

	if view.State != customize.StateStep {
		t.Fatalf("expected state %q, got %q", customize.StateStep, view.State)
	}
	if view.TotalSteps != 2 {
		t.Fatalf("expected 2 steps, got %d", view.TotalSteps)
	}
	if view.Group == nil || view.Group.ID != "g-patty" {
		t.Fatalf("expected first group g-patty, got %+v", view.Group)
	}
}

func TestFlowNextBlockedBelowMinimum(t *testing.T) {
	router := newTestRouter(t, testDeps())
	view := startBurgerFlow(t, router)

	rec := doJSON(t, router, http.MethodPost, "/stores/demo/flows/"+view.ID+"/next", nil, "sess-1")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestFlowSelectRejectsForeignOption(t *testing.T) {
	router := newTestRouter(t, testDeps())
	view := startBurgerFlow(t, router)

	rec := doJSON(t, router, http.MethodPost, "/stores/demo/flows/"+view.ID+"/select",
		map[string]any{"optionId": "o-cheese"}, "sess-1")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestFlowCompletionCommitsToCart(t *testing.T) {
	router := newTestRouter(t, testDeps())
	view := startBurgerFlow(t, router)
	base := "/stores/demo/flows/" + view.ID

	rec := doJSON(t, router, http.MethodPost, base+"/select", map[string]any{"optionId": "o-double"}, "sess-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("select patty: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, base+"/next", nil, "sess-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("next to extras: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &view)
	if view.Group == nil || view.Group.ID != "g-extras" {
		t.Fatalf("expected extras group, got %+v", view.Group)
	}

	doJSON(t, router, http.MethodPost, base+"/select", map[string]any{"optionId": "o-cheese"}, "sess-1")
	rec = doJSON(t, router, http.MethodPost, base+"/next", nil, "sess-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("final next: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var done flowNextResponse
	decodeBody(t, rec, &done)
	if done.Flow.State != customize.StateCompleted {
		t.Fatalf("expected completed flow, got %q", done.Flow.State)
	}
	// 950 burger + 300 double beef + 100 cheese.
	if done.Cart.SubtotalCents != 1350 {
		t.Fatalf("expected subtotal 1350, got %d", done.Cart.SubtotalCents)
	}
	if len(done.Cart.Items) != 1 || len(done.Cart.Items[0].Selections) != 2 {
		t.Fatalf("unexpected cart contents: %+v", done.Cart.Items)
	}

	// The completed flow is gone from the registry.
	rec = doJSON(t, router, http.MethodGet, base, nil, "sess-1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for finished flow, got %d", rec.Code)
	}
}

func TestFlowBackStaysOnFirstStep(t *testing.T) {
	router := newTestRouter(t, testDeps())
	view := startBurgerFlow(t, router)

	rec := doJSON(t, router, http.MethodPost, "/stores/demo/flows/"+view.ID+"/back", nil, "sess-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	decodeBody(t, rec, &view)
	if view.StepIndex != 0 {
		t.Fatalf("expected step 0, got %d", view.StepIndex)
	}
}

func TestCancelFlowLeavesCartUntouched(t *testing.T) {
	router := newTestRouter(t, testDeps())
	view := startBurgerFlow(t, router)

	rec := doJSON(t, router, http.MethodDelete, "/stores/demo/flows/"+view.ID, nil, "sess-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/stores/demo/cart", nil, "sess-1")
	var cart cartView
	decodeBody(t, rec, &cart)
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart after cancel, got %+v", cart.Items)
	}

	rec = doJSON(t, router, http.MethodGet, "/stores/demo/flows/"+view.ID, nil, "sess-1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for cancelled flow, got %d", rec.Code)
	}
}
