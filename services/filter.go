package services

import "strings"

// FilterLabels returns the rows where any column contains term,
// case-insensitively. An empty term returns rows unchanged.
func FilterLabels(rows []LabelRow, term string) []LabelRow {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}
	out := []LabelRow{}
	for _, r := range rows {
		if rowMatches(r, term) {
			out = append(out, r)
		}
	}
	return out
}

func rowMatches(r LabelRow, term string) bool {
	for _, c := range LabelCells(r) {
		if strings.Contains(strings.ToLower(c), term) {
			return true
		}
	}
	return false
}

// FilterPartnershipItems returns the reference entries whose SKU or
// material contains term, case-insensitively.
func FilterPartnershipItems(items []PartnershipItem, term string) []PartnershipItem {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := []PartnershipItem{}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.SKU), term) ||
			strings.Contains(strings.ToLower(it.Material), term) {
			out = append(out, it)
		}
	}
	return out
}
