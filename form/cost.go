package form

import "fmt"

// Total sums the cost of the checked activities. It is the only way the
// running total is computed.
func Total(activities []Activity) int {
	total := 0
	for _, a := range activities {
		if a.Checked {
			total += a.Cost
		}
	}
	return total
}

// TotalLabel renders a total the way the activities fieldset shows it.
func TotalLabel(total int) string {
	return fmt.Sprintf("Total: $%d", total)
}
