package services

import (
	"fmt"
	"strconv"
)

// PadCount formats a box count with a minimum width of two digits.
// Counts of 100 or more are printed in full.
func PadCount(n int) string {
	return fmt.Sprintf("%02d", n)
}

// FormatBoxPosition renders a box position as "NN/TT".
func FormatBoxPosition(position, total int) string {
	return PadCount(position) + "/" + PadCount(total)
}

// FormatQuantity returns the printed quantity of a row; separator rows have
// none.
func FormatQuantity(r LabelRow) string {
	if r.Separator {
		return ""
	}
	return strconv.Itoa(r.Quantity)
}
