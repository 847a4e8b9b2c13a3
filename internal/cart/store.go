package cart

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"orderfront/internal/domain"
)

// Store holds one session's cart lines in insertion order and writes the
// full list through Storage after every mutation. No two lines ever share a
// signature. The store is confined to a single session; callers do not need
// to synchronize beyond ordinary last-write-wins.
type Store struct {
	storage Storage
	logger  *log.Logger
	lines   []domain.LineItem
}

// NewStore builds a Store and rehydrates it from storage. A failed or
// corrupt load falls back to an empty cart and is logged, never surfaced.
func NewStore(storage Storage, logger *log.Logger) *Store {
	s := &Store{storage: storage, logger: logger}
	s.restore()
	return s
}

func (s *Store) restore() {
	if s.storage == nil {
		return
	}
	data, err := s.storage.Load()
	if err != nil {
		s.logf("restore cart: %v", err)
		return
	}
	if len(data) == 0 {
		return
	}
	var lines []domain.LineItem
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logf("restore cart: discarding corrupt payload: %v", err)
		return
	}
	s.lines = lines
}

func (s *Store) persist() {
	if s.storage == nil {
		return
	}
	data, err := json.Marshal(s.lines)
	if err != nil {
		s.logf("serialize cart: %v", err)
		return
	}
	if err := s.storage.Save(data); err != nil {
		s.logf("save cart: %v", err)
	}
}

func (s *Store) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// AddItem appends the line, or merges quantities into an existing line with
// the same signature. Only the quantity of the existing line changes on a
// merge.
func (s *Store) AddItem(item domain.LineItem) error {
	if strings.TrimSpace(item.ProductID) == "" {
		return errors.New("productId required")
	}
	if item.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	sig := Signature(item)
	for i := range s.lines {
		if Signature(s.lines[i]) == sig {
			s.lines[i].Quantity += item.Quantity
			s.persist()
			return nil
		}
	}
	s.lines = append(s.lines, item)
	s.persist()
	return nil
}

// LineUpdate is a partial field update for UpdateItem. Nil fields are left
// untouched; Selections replaces the whole selection list when non-nil.
type LineUpdate struct {
	UnitPriceCents *int64
	Note           *string
	Selections     []domain.SubproductSelection
}

// UpdateItem applies the partial update to the line currently matching sig
// and recomputes its signature. If the new signature collides with another
// existing line, the two merge: the other line absorbs this line's quantity
// and the updated line is dropped, so no duplicate signatures persist.
func (s *Store) UpdateItem(sig string, upd LineUpdate) error {
	idx := s.indexOf(sig)
	if idx < 0 {
		return domain.ErrLineNotFound
	}
	line := s.lines[idx]
	if upd.UnitPriceCents != nil {
		v := *upd.UnitPriceCents
		line.UnitPriceCents = &v
	}
	if upd.Note != nil {
		line.Note = *upd.Note
	}
	if upd.Selections != nil {
		line.Selections = upd.Selections
	}

	newSig := Signature(line)
	if newSig != sig {
		for j := range s.lines {
			if j == idx {
				continue
			}
			if Signature(s.lines[j]) == newSig {
				s.lines[j].Quantity += line.Quantity
				s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
				s.persist()
				return nil
			}
		}
	}
	s.lines[idx] = line
	s.persist()
	return nil
}

// UpdateQuantity sets the line's quantity; zero or negative removes the
// line instead. No line ever persists with quantity <= 0.
func (s *Store) UpdateQuantity(sig string, quantity int) error {
	idx := s.indexOf(sig)
	if idx < 0 {
		return domain.ErrLineNotFound
	}
	if quantity <= 0 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	} else {
		s.lines[idx].Quantity = quantity
	}
	s.persist()
	return nil
}

// RemoveItem drops the matching line. Removing an absent signature is a
// no-op.
func (s *Store) RemoveItem(sig string) {
	idx := s.indexOf(sig)
	if idx < 0 {
		return
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	s.persist()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lines = nil
	s.persist()
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(s.lines))
	copy(out, s.lines)
	return out
}

// ItemCount is the sum of all quantities, not the number of lines.
func (s *Store) ItemCount() int {
	var n int
	for _, line := range s.lines {
		n += line.Quantity
	}
	return n
}

// SubtotalCents sums (unit price + option prices) * quantity over all
// lines, using the linked-product price where present.
func (s *Store) SubtotalCents() int64 {
	var total int64
	for _, line := range s.lines {
		total += line.UnitTotalCents() * int64(line.Quantity)
	}
	return total
}

func (s *Store) indexOf(sig string) int {
	for i := range s.lines {
		if Signature(s.lines[i]) == sig {
			return i
		}
	}
	return -1
}
