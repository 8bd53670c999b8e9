package retention

import "strconv"

// FormattedRate renders the rate with two decimals and a percent sign.
func (r Report) FormattedRate() string {
	return strconv.FormatFloat(r.RetentionRate, 'f', 2, 64) + "%"
}

// Retained counts tracked wallets with no sale.
func (r Report) Retained() int64 {
	return r.Total - r.Sold
}
