package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeFilters(t *testing.T) {
	blank := "  "
	set := "x"

	tests := []struct {
		name  string
		input FilterState
		want  FilterState
	}{
		{
			name:  "drops_empty_and_nil",
			input: FilterState{"a": "", "b": "x", "c": nil},
			want:  FilterState{"b": "x"},
		},
		{
			name:  "drops_blank_strings_and_pointers",
			input: FilterState{"a": "   ", "b": &blank, "c": (*string)(nil), "d": &set},
			want:  FilterState{"d": &set},
		},
		{
			name:  "keeps_zero_numbers_and_false",
			input: FilterState{"rooms": 0, "has_furniture": false, "min_price": 1.5},
			want:  FilterState{"rooms": 0, "has_furniture": false, "min_price": 1.5},
		},
		{
			name:  "drops_empty_slices",
			input: FilterState{"ids": []string{}, "tags": []any{}, "type": []string{"rent"}},
			want:  FilterState{"type": []string{"rent"}},
		},
		{
			name:  "empty_input",
			input: FilterState{},
			want:  FilterState{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeFilters(tt.input))
		})
	}
}

func TestNormalizeFiltersDoesNotMutateInput(t *testing.T) {
	in := FilterState{"a": "", "b": "x"}
	_ = NormalizeFilters(in)
	require.Len(t, in, 2)
}

func TestQueryParams(t *testing.T) {
	state := FilterState{
		"search":        "центр",
		"rooms":         2,
		"has_furniture": true,
		"max_price":     1500000.0,
		"type":          []any{"rent", "daily_rent"},
		"empty":         "",
	}

	q := state.QueryParams()
	require.Equal(t, "центр", q.Get("search"))
	require.Equal(t, "2", q.Get("rooms"))
	require.Equal(t, "true", q.Get("has_furniture"))
	require.Equal(t, "1500000", q.Get("max_price"))
	require.Equal(t, []string{"rent", "daily_rent"}, q["type"])
	_, present := q["empty"]
	require.False(t, present)
}

func TestPropertyFiltersRoundTrip(t *testing.T) {
	pf, err := ParsePropertyFilters(url.Values{
		"type":      {"rent"},
		"min_price": {"100"},
		"unknown":   {"ignored"},
	})
	require.NoError(t, err)
	require.Equal(t, "rent", pf.Type)
	require.Equal(t, "100", pf.MinPrice)
	require.Equal(t, "active", pf.Status, "defaults survive parsing")
	require.Equal(t, "created_at", pf.SortBy)
	require.Equal(t, "desc", pf.SortOrder)
	require.Equal(t, "1", pf.NearbyRadius)

	state, err := pf.State()
	require.NoError(t, err)
	require.Equal(t, "", state["max_price"], "blank fields are present before normalization")

	normalized := NormalizeFilters(state)
	require.Equal(t, FilterState{
		"type":          "rent",
		"min_price":     "100",
		"status":        "active",
		"sort_by":       "created_at",
		"sort_order":    "desc",
		"nearby_radius": "1",
	}, normalized)
}

func TestFilterStateString(t *testing.T) {
	state := FilterState{"a": " x ", "b": 3, "c": nil}
	require.Equal(t, "x", state.String("a"))
	require.Equal(t, "3", state.String("b"))
	require.Equal(t, "", state.String("c"))
	require.Equal(t, "", state.String("missing"))
}
