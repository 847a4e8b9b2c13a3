package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"orderfront/internal/customize"
	"orderfront/internal/domain"
)

type flowView struct {
	ID                string              `json:"id"`
	State             customize.State     `json:"state"`
	StepIndex         int                 `json:"stepIndex"`
	TotalSteps        int                 `json:"totalSteps"`
	Group             *domain.OptionGroup `json:"group,omitempty"`
	SelectedOptionIDs []string            `json:"selectedOptionIds"`
}

func flowViewOf(id string, flow *customize.Flow) flowView {
	view := flowView{
		ID:                id,
		State:             flow.State(),
		StepIndex:         flow.StepIndex(),
		TotalSteps:        flow.TotalSteps(),
		SelectedOptionIDs: []string{},
	}
	if flow.State() == customize.StateStep {
		group := flow.CurrentGroup()
		view.Group = &group
		if ids := flow.SelectedIDs(); ids != nil {
			view.SelectedOptionIDs = ids
		}
	}
	return view
}

type startFlowRequest struct {
	ProductID     string `json:"productId" binding:"required"`
	EditSignature string `json:"editSignature"`
}

func (h *handlers) startFlow(c *gin.Context) {
	cartStore, ok := h.sessionCart(c)
	if !ok {
		return
	}
	var req startFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "productId required")
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

	flow, err := customize.New(*product, cartStore, req.EditSignature)
	if err != nil {
		if errors.Is(err, customize.ErrNoOptionGroups) {
			respondError(c, http.StatusUnprocessableEntity, "product has no option groups; add it to the cart directly")
			return
		}
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.NewString()
	h.flows.put(id, &flowEntry{flow: flow, storeID: st.ID, cartStore: cartStore})
	c.JSON(http.StatusCreated, flowViewOf(id, flow))
}

func (h *handlers) flowEntryFor(c *gin.Context) (*flowEntry, string, bool) {
	st := currentStore(c)
	id := c.Param("flowID")
	entry, ok := h.flows.get(id, st.ID)
	if !ok {
		respondError(c, http.StatusNotFound, "flow not found")
		return nil, "", false
	}
	return entry, id, true
}

func (h *handlers) getFlow(c *gin.Context) {
	entry, id, ok := h.flowEntryFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, flowViewOf(id, entry.flow))
}

type flowSelectRequest struct {
	OptionID string `json:"optionId" binding:"required"`
}

func (h *handlers) flowSelect(c *gin.Context) {
	entry, id, ok := h.flowEntryFor(c)
	if !ok {
		return
	}
	var req flowSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "optionId required")
		return
	}
	if err := entry.flow.SelectOption(req.OptionID); err != nil {
		switch {
		case errors.Is(err, customize.ErrFlowFinished):
			respondError(c, http.StatusConflict, "flow already finished")
		case errors.Is(err, customize.ErrUnknownOption):
			respondError(c, http.StatusUnprocessableEntity, "option not in current group")
		default:
			respondError(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, flowViewOf(id, entry.flow))
}

func (h *handlers) flowNext(c *gin.Context) {
	entry, id, ok := h.flowEntryFor(c)
	if !ok {
		return
	}
	if err := entry.flow.Next(); err != nil {
		switch {
		case errors.Is(err, customize.ErrFlowFinished):
			respondError(c, http.StatusConflict, "flow already finished")
		case errors.Is(err, customize.ErrSelectionBounds):
			respondError(c, http.StatusUnprocessableEntity, "selection count outside group bounds")
		case errors.Is(err, domain.ErrLineNotFound):
			// Editing a line that was removed underneath the flow.
			h.flows.remove(id)
			respondError(c, http.StatusConflict, "edited cart line no longer exists")
		default:
			respondError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	if entry.flow.State() == customize.StateCompleted {
		h.flows.remove(id)
		c.JSON(http.StatusOK, gin.H{
			"flow": flowViewOf(id, entry.flow),
			"cart": cartViewOf(entry.cartStore),
		})
		return
	}
	c.JSON(http.StatusOK, flowViewOf(id, entry.flow))
}

func (h *handlers) flowBack(c *gin.Context) {
	entry, id, ok := h.flowEntryFor(c)
	if !ok {
		return
	}
	if err := entry.flow.Back(); err != nil {
		respondError(c, http.StatusConflict, "flow already finished")
		return
	}
	c.JSON(http.StatusOK, flowViewOf(id, entry.flow))
}

func (h *handlers) cancelFlow(c *gin.Context) {
	entry, id, ok := h.flowEntryFor(c)
	if !ok {
		return
	}
	entry.flow.Cancel()
	h.flows.remove(id)
	c.JSON(http.StatusOK, flowViewOf(id, entry.flow))
}
