package model

import "fmt"

// FormatAmount renders a dollar amount without trailing zero cents,
// so 1500 prints as "1500" and 899.5 as "899.50".
func FormatAmount(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%d", int64(amount))
	}
	return fmt.Sprintf("%.2f", amount)
}
