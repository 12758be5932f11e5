package domain

import (
	"fmt"
	"strings"
)

// Range is a closed numeric target such as a calorie or protein window.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func NewRange(min, max *int) Range {
	var r Range
	if min != nil {
		r.Min = *min
	}
	if max != nil {
		r.Max = *max
	}
	return r
}

// ParseRange reads a "min-max" string. Each bound takes its leading digits
// and falls back to 0, so "20-30g" yields {20 30} and "abc" yields {0 0}.
func ParseRange(s string) Range {
	lo, hi, _ := strings.Cut(s, "-")
	return Range{Min: leadingInt(lo), Max: leadingInt(hi)}
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Grams formats the range with a gram suffix, as protein targets display.
func (r Range) Grams() string {
	return r.String() + "g"
}

func (r Range) Bounds() (*int, *int) {
	min, max := r.Min, r.Max
	return &min, &max
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	digits := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		digits++
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}
