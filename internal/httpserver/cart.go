package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"orderfront/internal/cart"
	"orderfront/internal/customize"
	"orderfront/internal/domain"
)

func (h *handlers) getCart(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartViewOf(store))
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

// addCartItem is the quick-add path for option-less products. Products with
// option groups go through the customization flow instead.
func (h *handlers) addCartItem(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "productId required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		respondError(c, http.StatusBadRequest, "quantity must be positive")
		return
	}

	st := currentStore(c)
	product, err := h.deps.ProductRepo.GetByID(c.Request.Context(), st.ID, req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Printf("get product: %v", err)
		respondError(c, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	if len(customize.Steps(*product)) > 0 {
		respondError(c, http.StatusUnprocessableEntity, "product requires customization; start a flow")
		return
	}

	item := domain.LineItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		Note:        req.Note,
		ImageURL:    product.ImageURL,
	}
	if product.PriceCents != nil {
		price := *product.PriceCents
		item.UnitPriceCents = &price
	}
	if err := store.AddItem(item); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, cartViewOf(store))
}

type updateItemRequest struct {
	Quantity       *int    `json:"quantity"`
	Note           *string `json:"note"`
	UnitPriceCents *int64  `json:"unitPriceCents"`
}

func (h *handlers) updateCartItem(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid body")
		return
	}
	sig := c.Param("signature")

	var err error
	if req.Quantity != nil {
		err = store.UpdateQuantity(sig, *req.Quantity)
	} else {
		err = store.UpdateItem(sig, cart.LineUpdate{Note: req.Note, UnitPriceCents: req.UnitPriceCents})
	}
	if err != nil {
		if errors.Is(err, domain.ErrLineNotFound) {
			respondError(c, http.StatusNotFound, "cart line not found")
			return
		}
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, cartViewOf(store))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	store.RemoveItem(c.Param("signature"))
	c.JSON(http.StatusOK, cartViewOf(store))
}

func (h *handlers) clearCart(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	store.Clear()
	c.JSON(http.StatusOK, cartViewOf(store))
}
