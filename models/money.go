package models

import "fmt"

// FormatAmount renders an amount in paise as a decimal string, e.g. 125000 ->
// "1250.00". All monetary values are stored as integer minor units.
func FormatAmount(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s%d.%02d", sign, paise/100, paise%100)
}
