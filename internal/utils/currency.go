package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatINR renders an amount as a whole-unit rupee string with Indian digit
// grouping, e.g. 123456.78 -> "₹1,23,457". Display only; all arithmetic
// stays on the raw amounts.
func FormatINR(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return "₹" + sign + s
	}
	head := s[:len(s)-3]
	tail := s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return "₹" + sign + strings.Join(groups, ",") + "," + tail
}
