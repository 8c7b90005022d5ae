package services

import "strings"

// PartnershipItem is an entry of the partnership reference list.
type PartnershipItem struct {
	SKU      string `json:"sku"`
	Material string `json:"material"`
}

// PartnershipClassifier decides which associations are partnership freight.
type PartnershipClassifier struct {
	skus    map[string]struct{}
	missing string
}

// NewPartnershipClassifier builds the SKU set from the reference list.
// Associations whose client equals missing never qualify.
func NewPartnershipClassifier(items []PartnershipItem, missing string) *PartnershipClassifier {
	skus := make(map[string]struct{}, len(items))
	for _, it := range items {
		sku := strings.TrimSpace(it.SKU)
		if sku == "" {
			continue
		}
		skus[sku] = struct{}{}
	}
	return &PartnershipClassifier{skus: skus, missing: missing}
}

// Qualifies reports whether a single association is partnership freight.
func (c *PartnershipClassifier) Qualifies(a Association) bool {
	if a.Client == c.missing {
		return false
	}
	_, ok := c.skus[a.SKU]
	return ok
}

// Qualifying returns the partnership associations in their original order.
func (c *PartnershipClassifier) Qualifying(assocs []Association) []Association {
	var out []Association
	for _, a := range assocs {
		if c.Qualifies(a) {
			out = append(out, a)
		}
	}
	return out
}

// IsPartnership reports whether any association qualifies.
func (c *PartnershipClassifier) IsPartnership(assocs []Association) bool {
	for _, a := range assocs {
		if c.Qualifies(a) {
			return true
		}
	}
	return false
}

// Len returns the size of the reference set.
func (c *PartnershipClassifier) Len() int {
	return len(c.skus)
}
