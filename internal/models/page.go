package models

import (
	"bytes"
	"encoding/json"
)

// Page is a list response. Paginated endpoints wrap results in
// {"count", "next", "previous", "results"}; others return a bare array.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*p = Page[T]{Count: len(items), Results: items}
		return nil
	}

	var env struct {
		Count    int     `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
		Results  []T     `json:"results"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*p = Page[T]{Count: env.Count, Next: env.Next, Previous: env.Previous, Results: env.Results}
	return nil
}
