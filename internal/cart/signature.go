package cart

import (
	"sort"
	"strings"

	"orderfront/internal/domain"
)

// Signature derives the identity key that decides whether two lines are the
// same cart row. It covers the product id, the chosen option ids sorted
// ascending, and the note; the order in which options were selected never
// changes the result. Two lines merge iff their signatures are equal.
func Signature(item domain.LineItem) string {
	ids := append([]string(nil), item.OptionIDs()...)
	sort.Strings(ids)
	var b strings.Builder
	b.WriteString(item.ProductID)
	b.WriteByte('|')
	b.WriteString(strings.Join(ids, ","))
	b.WriteByte('|')
	b.WriteString(item.Note)
	return b.String()
}
