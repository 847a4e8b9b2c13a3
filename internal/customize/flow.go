package customize

import (
	"errors"
	"sort"

	"orderfront/internal/cart"
	"orderfront/internal/domain"
)

var (
	// ErrNoOptionGroups means the product has nothing to customize; the
	// caller should add it to the cart directly instead of starting a flow.
	ErrNoOptionGroups = errors.New("product has no option groups")
	// ErrFlowFinished is returned by transitions on a completed or
	// cancelled flow.
	ErrFlowFinished = errors.New("flow already finished")
	// ErrSelectionBounds blocks Next while the current group's selection
	// count is outside its minimum/maximum.
	ErrSelectionBounds = errors.New("selection count outside group bounds")
	// ErrUnknownOption is returned when the option id does not belong to
	// the current group.
	ErrUnknownOption = errors.New("option not in current group")
)

// State of a flow: stepping through groups, committed, or abandoned.
type State string

const (
	StateStep      State = "step"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

// Steps returns the product's usable option groups: nil entries filtered,
// remainder sorted by display order.
func Steps(product domain.ProductDefinition) []domain.OptionGroup {
	groups := make([]domain.OptionGroup, 0, len(product.Groups))
	for _, g := range product.Groups {
		if g == nil {
			continue
		}
		groups = append(groups, *g)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Order < groups[j].Order
	})
	return groups
}

// Flow walks one product's option groups step by step and, on completion,
// commits exactly one line item into the cart store. Selections in groups
// other than the current one are retained but only validated on their own
// step. The flow performs no partial cart writes before completion.
type Flow struct {
	product  domain.ProductDefinition
	groups   []domain.OptionGroup
	store    *cart.Store
	editSig  string
	editNote string
	step     int
	state    State
	selected map[string]map[string]bool
}

// New starts a flow at step 0. editSig is the signature of a pre-existing
// line when this is an edit; leave it empty for a fresh add. A product
// without option groups cannot enter a flow.
func New(product domain.ProductDefinition, store *cart.Store, editSig string) (*Flow, error) {
	groups := Steps(product)
	if len(groups) == 0 {
		return nil, ErrNoOptionGroups
	}
	return &Flow{
		product:  product,
		groups:   groups,
		store:    store,
		editSig:  editSig,
		step:     0,
		state:    StateStep,
		selected: make(map[string]map[string]bool),
	}, nil
}

func (f *Flow) State() State { return f.state }

// StepIndex is the current zero-based step; meaningless once terminal.
func (f *Flow) StepIndex() int { return f.step }

func (f *Flow) TotalSteps() int { return len(f.groups) }

// CurrentGroup returns the group being customized on this step.
func (f *Flow) CurrentGroup() domain.OptionGroup { return f.groups[f.step] }

// SelectedIDs lists the chosen option ids for the current group, in the
// group's display order.
func (f *Flow) SelectedIDs() []string {
	return f.selectedForGroup(f.groups[f.step])
}

func (f *Flow) selectedForGroup(g domain.OptionGroup) []string {
	set := f.selected[g.ID]
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for _, opt := range g.Options {
		if set[opt.ID] {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// SelectOption toggles the option in a multiselect group, or makes it the
// sole selection in a single-choice group. Bounds are not enforced here;
// Next refuses to advance while they are violated.
func (f *Flow) SelectOption(optionID string) error {
	if f.state != StateStep {
		return ErrFlowFinished
	}
	group := f.groups[f.step]
	found := false
	for _, opt := range group.Options {
		if opt.ID == optionID {
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownOption
	}

	set := f.selected[group.ID]
	if set == nil {
		set = make(map[string]bool)
		f.selected[group.ID] = set
	}
	if group.Multiselect {
		if set[optionID] {
			delete(set, optionID)
		} else {
			set[optionID] = true
		}
		return nil
	}
	for id := range set {
		delete(set, id)
	}
	set[optionID] = true
	return nil
}

// Next advances to the following step, or commits when the last step is
// done. It refuses to move while the current group's selection count is
// outside its bounds.
func (f *Flow) Next() error {
	if f.state != StateStep {
		return ErrFlowFinished
	}
	group := f.groups[f.step]
	count := len(f.selectedForGroup(group))
	if count < group.Minimum {
		return ErrSelectionBounds
	}
	if max := group.MaxSelections(); max > 0 && count > max {
		return ErrSelectionBounds
	}

	if f.step == len(f.groups)-1 {
		f.state = StateCompleted
		return f.commit()
	}
	f.step++
	return nil
}

// Back returns to the previous step; from step 0 it is a no-op.
func (f *Flow) Back() error {
	if f.state != StateStep {
		return ErrFlowFinished
	}
	if f.step > 0 {
		f.step--
	}
	return nil
}

// Cancel abandons the flow without touching the cart.
func (f *Flow) Cancel() {
	if f.state == StateStep {
		f.state = StateCancelled
	}
}

// commit gathers every selected option across all groups in order and
// performs the single cart write: an update when editing, an add otherwise.
func (f *Flow) commit() error {
	sels := f.gatherSelections()

	if f.editSig != "" {
		upd := cart.LineUpdate{Selections: sels}
		if f.product.PriceCents != nil {
			price := *f.product.PriceCents
			upd.UnitPriceCents = &price
		}
		return f.store.UpdateItem(f.editSig, upd)
	}

	item := domain.LineItem{
		ProductID:   f.product.ID,
		ProductName: f.product.Name,
		Quantity:    1,
		Selections:  sels,
		ImageURL:    f.product.ImageURL,
		HasOptions:  true,
	}
	if f.product.PriceCents != nil {
		price := *f.product.PriceCents
		item.UnitPriceCents = &price
	}
	return f.store.AddItem(item)
}

func (f *Flow) gatherSelections() []domain.SubproductSelection {
	var sels []domain.SubproductSelection
	for _, group := range f.groups {
		set := f.selected[group.ID]
		if len(set) == 0 {
			continue
		}
		for _, opt := range group.Options {
			if !set[opt.ID] {
				continue
			}
			if opt.Linked != nil {
				sels = append(sels, domain.SubproductSelection{
					ID:         opt.Linked.ID,
					Name:       opt.Linked.Name,
					PriceCents: opt.Linked.PriceCents,
					Linked:     opt.Linked,
				})
				continue
			}
			sels = append(sels, domain.SubproductSelection{
				ID:         opt.ID,
				Name:       opt.Name,
				PriceCents: opt.PriceCents,
			})
		}
	}
	return sels
}
