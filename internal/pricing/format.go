package pricing

import (
	"strconv"
	"strings"
)

// Format renders an amount of naira with thousands separators, e.g. ₦11,300.
func Format(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-₦" + s
	}
	return "₦" + s
}
