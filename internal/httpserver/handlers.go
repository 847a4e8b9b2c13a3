package httpserver

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"orderfront/internal/cart"
	"orderfront/internal/domain"
)

type handlers struct {
	deps     Deps
	logger   *log.Logger
	sessions *sessionRegistry
	flows    *flowRegistry
}

// sessionCart resolves the caller's cart from the session header, creating
// and rehydrating it on first touch. It writes the error response itself
// when the header is missing.
func (h *handlers) sessionCart(c *gin.Context) (*cart.Store, bool) {
	st := currentStore(c)
	sessionID := strings.TrimSpace(c.GetHeader(sessionHeader))
	if sessionID == "" {
		respondError(c, http.StatusBadRequest, sessionHeader+" header required")
		return nil, false
	}
	return h.sessions.cartFor(st.ID, sessionID), true
}

type cartLineView struct {
	Signature string `json:"signature"`
	domain.LineItem
}

type cartView struct {
	Items         []cartLineView `json:"items"`
	ItemCount     int            `json:"itemCount"`
	SubtotalCents int64          `json:"subtotalCents"`
}

func cartViewOf(s *cart.Store) cartView {
	items := s.Items()
	view := cartView{
		Items:         make([]cartLineView, 0, len(items)),
		ItemCount:     s.ItemCount(),
		SubtotalCents: s.SubtotalCents(),
	}
	for _, item := range items {
		view.Items = append(view.Items, cartLineView{Signature: cart.Signature(item), LineItem: item})
	}
	return view
}
