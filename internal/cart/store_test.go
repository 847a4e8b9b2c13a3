package cart

import (
	"errors"
	"testing"

	"orderfront/internal/domain"
)

type failingStorage struct {
	loadData []byte
	loadErr  error
	saveErr  error
	saves    int
}

func (f *failingStorage) Load() ([]byte, error) {
	return f.loadData, f.loadErr
}

func (f *failingStorage) Save(data []byte) error {
	f.saves++
	return f.saveErr
}

func centsPtr(v int64) *int64 {
	return &v
}

func line(productID, note string, qty int, price int64, optionIDs ...string) domain.LineItem {
	return domain.LineItem{
		ProductID:      productID,
		ProductName:    "product " + productID,
		UnitPriceCents: centsPtr(price),
		Quantity:       qty,
		Note:           note,
		Selections:     selections(optionIDs...),
		HasOptions:     len(optionIDs) > 0,
	}
}

func TestAddItemMergesEqualSignatures(t *testing.T) {
	s := NewStore(NewMemoryStorage(), nil)
	if err := s.AddItem(line("p1", "", 2, 500, "o1", "o2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddItem(line("p1", "", 3, 500, "o2", "o1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddItemKeepsDistinctNotesSeparate(t *testing.T) {
	s := NewStore(NewMemoryStorage(), nil)
	if err := s.AddItem(line("p1", "extra hot", 1, 500, "o1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddItem(line("p1", "", 1, 500, "o1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Items()) != 2 {
		t.Fatalf("expected two lines, got %d", len(s.Items()))
	}
}

func TestAddItemRejectsBadInput(t *testing.T) {
	s := NewStore(NewMemoryStorage(), nil)
	if err := s.AddItem(line("", "", 1, 100)); err == nil {
		t.Fatalf("expected error for missing product id")
	}
	if err := s.AddItem(line("p1", "", 0, 100)); err == nil {
		t.Fatalf("expected error for zero quantity")
	}
	if err := s.AddItem(line("p1", "", -2, 100)); err == nil {
		t.Fatalf("expected error for negative quantity")
	}
	if len(s.Items()) != 0 {
		t.Fatalf("rejected adds must not mutate the cart")
	}
}

func TestUpdateQuantityFloor(t *testing.T) {
	s := NewStore(NewMemoryStorage(), nil)
	item := line("p1", "", 2, 500, "o1")
	if err := s.AddItem(item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sig := Signature(item)

	if err := s.UpdateQuantity(sig, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ItemCount() != 4 {
		t.Fatalf("expected count 4, got %d", s.ItemCount())
	}

	if err := s.UpdateQuantity(sig, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Items()) != 0 {
		t.Fatalf("quantity 0 must remove the line")
	}

	if err := s.AddItem(item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.UpdateQuantity(sig, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Items()) != 0 {
		t.Fatalf("negative quantity must remove the line")
	}

	if err := s.UpdateQuantity("missing", 1); !errors.Is(err, domain.ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}

func TestSubtotalUsesLinkedProductPrice(t *testing.T) {
	s := NewStore(NewMemoryStorage(), nil)
	item := domain.LineItem{
		ProductID:      "p1",
		UnitPriceCents: centsPtr(500),
		Quantity:       2,
		Selections: []domain.SubproductSelection{
			{ID: "o1", Name: "Sauce", PriceCents: 150},
			{ID: "o2", Name: "Side", PriceCents: 999, Linked: &domain.LinkedProduct{ID: "lp1", Name: "Fries", PriceCents: 0}},
		},
		HasOptions: true,
	}
	if err := s.AddItem(item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.SubtotalCents(); got != 1300 {
		t.Fatalf("expected subtotal 1300, got %d", got)
	}
}

func TestSubtotalTreatsMissingUnitPriceAsZero(t *testing.T) {
	s := NewStore(NewMemoryStorage(), nil)
	item := domain.LineItem{ProductID: "p1", Quantity: 3, Selections: []domain.SubproductSelection{{ID: "o1", PriceCents: 100}}}
	if err := s.AddItem(item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.SubtotalCents(); got != 300 {
		t.Fatalf("expected subtotal 300, got %d", got)
	}
}

func TestItemCountSumsQuantities(t *testing.T) {
	s := NewStore(NewMemoryStorage(), nil)
	if err := s.AddItem(line("p1", "", 2, 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddItem(line("p2", "", 3, 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.ItemCount(); got != 5 {
		t.Fatalf("expected item count 5, got %d", got)
	}
}

func TestUpdateItemRecomputesSignature(t *testing.T) {
	s := NewStore(NewMemoryStorage(), nil)
	item := line("p1", "", 2, 500, "o1")
	if err := s.AddItem(item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	oldSig := Signature(item)

	note := "well done"
	if err := s.UpdateItem(oldSig, LineUpdate{Note: &note}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := s.Items()
	if len(items) != 1 || items[0].Note != "well done" {
		t.Fatalf("note update not applied: %+v", items)
	}
	if Signature(items[0]) == oldSig {
		t.Fatalf("expected signature to change after note update")
	}
	if err := s.UpdateItem(oldSig, LineUpdate{Note: &note}); !errors.Is(err, domain.ErrLineNotFound) {
		t.Fatalf("stale signature must no longer match, got %v", err)
	}
}

func TestUpdateItemMergesOnCollision(t *testing.T) {
	s := NewStore(NewMemoryStorage(), nil)
	plain := line("p1", "", 2, 500, "o1")
	noted := line("p1", "spicy", 3, 500, "o1")
	if err := s.AddItem(plain); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddItem(noted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Editing the noted line to drop its note collides with the plain line.
	empty := ""
	if err := s.UpdateItem(Signature(noted), LineUpdate{Note: &empty}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected collision to merge into one line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", items[0].Quantity)
	}
}

func TestRemoveItemIsNoOpWhenAbsent(t *testing.T) {
	storage := &failingStorage{}
	s := NewStore(storage, nil)
	saves := storage.saves
	s.RemoveItem("missing")
	if storage.saves != saves {
		t.Fatalf("no-op removal must not persist")
	}
}

func TestClearEmptiesCart(t *testing.T) {
	s := NewStore(NewMemoryStorage(), nil)
	if err := s.AddItem(line("p1", "", 2, 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Clear()
	if len(s.Items()) != 0 || s.ItemCount() != 0 || s.SubtotalCents() != 0 {
		t.Fatalf("expected empty cart after clear")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	s := NewStore(storage, nil)
	item := domain.LineItem{
		ProductID:      "p1",
		ProductName:    "Burger",
		UnitPriceCents: centsPtr(500),
		Quantity:       2,
		Note:           "no pickles",
		Selections: []domain.SubproductSelection{
			{ID: "o1", Name: "Cheddar", PriceCents: 150},
			{ID: "o2", Name: "Fries", PriceCents: 0, Linked: &domain.LinkedProduct{ID: "lp1", Name: "Fries", PriceCents: 200}},
		},
		HasOptions: true,
	}
	if err := s.AddItem(item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddItem(line("p2", "", 1, 300)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded := NewStore(storage, nil)
	before, after := s.Items(), reloaded.Items()
	if len(before) != len(after) {
		t.Fatalf("expected %d lines after reload, got %d", len(before), len(after))
	}
	for i := range before {
		if Signature(before[i]) != Signature(after[i]) {
			t.Fatalf("line %d signature changed across reload", i)
		}
		if before[i].Quantity != after[i].Quantity || before[i].Note != after[i].Note {
			t.Fatalf("line %d fields changed across reload: %+v vs %+v", i, before[i], after[i])
		}
	}
	if s.SubtotalCents() != reloaded.SubtotalCents() {
		t.Fatalf("subtotal changed across reload: %d vs %d", s.SubtotalCents(), reloaded.SubtotalCents())
	}
}

func TestRestoreFailureFallsBackToEmptyCart(t *testing.T) {
	s := NewStore(&failingStorage{loadErr: errors.New("disk gone")}, nil)
	if len(s.Items()) != 0 {
		t.Fatalf("expected empty cart after load failure")
	}
	if err := s.AddItem(line("p1", "", 1, 100)); err != nil {
		t.Fatalf("store must stay usable after load failure: %v", err)
	}

	s = NewStore(&failingStorage{loadData: []byte("{not json")}, nil)
	if len(s.Items()) != 0 {
		t.Fatalf("expected empty cart after corrupt payload")
	}
}
