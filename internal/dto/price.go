package dto

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidPrice = errors.New("price must be a non-negative number")

// Price accepts either a JSON number or a display string carrying a
// currency symbol and thousands separators ("₦45,000,000").
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		v, err := checkPrice(n)
		if err != nil {
			return err
		}
		*p = Price(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidPrice
	}
	v, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

// ParsePrice strips every rune except digits, the decimal point and the
// minus sign, then parses the remainder as a decimal number.
func ParsePrice(s string) (float64, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, ErrInvalidPrice
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	return checkPrice(v)
}

func checkPrice(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidPrice
	}
	return v, nil
}
