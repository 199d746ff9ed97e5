package ledger

import "github.com/shopspring/decimal"

// FormatCurrency renders amount with two decimals, rounding half away from
// zero, followed by the currency code: "-12.50 GBP".
func FormatCurrency(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + " " + currency
}
