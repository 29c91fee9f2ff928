package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Amount is a money value. The backend serializes decimals as strings
// ("15000000.00"); older endpoints send plain numbers.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		if s == "" {
			*a = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount: parse %q: %w", s, err)
		}
		*a = Amount(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = Amount(v)
	return nil
}

// Float returns the amount as float64.
func (a Amount) Float() float64 { return float64(a) }

// String formats the amount the way the backend accepts it in form fields.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}
