package checkout

import "kantinho-pos/internal/domain"

// GroupedLine is a principal cart line with its add-ons attached for
// display. Grouping never changes the cart's own bookkeeping: add-ons stay
// independent lines in the store.
type GroupedLine struct {
	Item   domain.LineItem   `json:"item"`
	Extras []domain.LineItem `json:"extras,omitempty"`
}

// Group arranges cart lines into the shape the receipt renders. The
// simplified receipt lists the delivery zone as a fee rather than a line, so
// that variant drops delivery-zone lines from the principal list.
func Group(items []domain.LineItem, variant Variant) []GroupedLine {
	out := make([]GroupedLine, 0, len(items))
	for _, item := range items {
		if item.ParentID != "" {
			continue
		}
		if variant == VariantSimplified && item.Kind == domain.KindDeliveryZone {
			continue
		}
		group := GroupedLine{Item: item}
		for _, extra := range items {
			if extra.ParentID == item.ID {
				group.Extras = append(group.Extras, extra)
			}
		}
		out = append(out, group)
	}
	return out
}
