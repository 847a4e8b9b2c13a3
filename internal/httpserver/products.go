package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"orderfront/internal/domain"
)

func (h *handlers) listProducts(c *gin.Context) {
	st := currentStore(c)
	products, err := h.deps.ProductRepo.ListByStore(c.Request.Context(), st.ID)
	if err != nil {
		h.logger.Printf("list products: %v", err)
		respondError(c, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	if products == nil {
		products = []domain.ProductDefinition{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *handlers) getProduct(c *gin.Context) {
	st := currentStore(c)
	product, err := h.deps.ProductRepo.GetByID(c.Request.Context(), st.ID, c.Param("productID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Printf("get product: %v", err)
		respondError(c, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *handlers) listMethods(c *gin.Context) {
	st := currentStore(c)
	methods, err := h.deps.FulfillmentRepo.ListMethods(c.Request.Context(), st.ID)
	if err != nil {
		h.logger.Printf("list methods: %v", err)
		respondError(c, http.StatusInternalServerError, "fulfillment unavailable")
		return
	}
	if methods == nil {
		methods = []domain.FulfillmentMethod{}
	}
	c.JSON(http.StatusOK, gin.H{"methods": methods})
}
