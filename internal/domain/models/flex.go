// internal/domain/models/flex.go
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString decodes from a JSON string or number. The API is not
// consistent about ids ("890221" vs 890221) and amounts ("23,000.00" vs
// 23000), so both shapes are accepted and kept as text.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// Amount is a currency value decoded from a number or a formatted string
// such as "₦23,000.00".
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s FlexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	v, err := ParseAmount(string(s))
	if err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// ParseAmount strips currency symbols and thousands separators.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.NewReplacer("₦", "", "NGN", "", ",", "", " ", "").Replace(s)
	return strconv.ParseFloat(s, 64)
}

// Naira formats a as "₦23,000.00".
func (a Amount) Naira() string {
	return "₦" + groupThousands(float64(a))
}

// Plain formats a as "23,000.00".
func (a Amount) Plain() string {
	return groupThousands(float64(a))
}

func groupThousands(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}
