package listing

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

// FilterState is the raw filter form: field name to value. Values are
// usually strings but AI-derived filters may carry numbers or booleans.
type FilterState map[string]any

// Keys consumed by the client-side search pipeline and never sent to the
// list endpoint.
const (
	KeyAISearch       = "ai_search"
	KeyNearbyLocation = "nearby_location"
	KeyNearbyRadius   = "nearby_radius"
)

// NormalizeFilters drops unset values (nil, empty or blank strings, empty
// slices) and copies everything else unchanged. The input is not modified.
func NormalizeFilters(state FilterState) FilterState {
	out := make(FilterState, len(state))
	for k, v := range state {
		if isUnset(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func isUnset(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case *string:
		return val == nil || strings.TrimSpace(*val) == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}

// QueryParams serializes the normalized state for a GET request.
func (f FilterState) QueryParams() url.Values {
	q := url.Values{}
	for k, v := range NormalizeFilters(f) {
		switch val := v.(type) {
		case []string:
			for _, s := range val {
				q.Add(k, s)
			}
		case []any:
			for _, item := range val {
				q.Add(k, formatValue(item))
			}
		default:
			q.Set(k, formatValue(val))
		}
	}
	return q
}

// String returns the value of key as text, or "" when unset.
func (f FilterState) String(key string) string {
	v, ok := f[key]
	if !ok || isUnset(v) {
		return ""
	}
	return strings.TrimSpace(formatValue(v))
}

// Clone returns a shallow copy.
func (f FilterState) Clone() FilterState {
	out := make(FilterState, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case *string:
		return *val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// PropertyFilters is the typed property search form.
type PropertyFilters struct {
	Search           string `schema:"search"`
	AISearch         string `schema:"ai_search"`
	NearbyLocation   string `schema:"nearby_location"`
	NearbyRadius     string `schema:"nearby_radius"`
	Type             string `schema:"type"`
	Rooms            string `schema:"rooms"`
	MinPrice         string `schema:"min_price"`
	MaxPrice         string `schema:"max_price"`
	Status           string `schema:"status"`
	MinArea          string `schema:"min_area"`
	MaxArea          string `schema:"max_area"`
	GenderPreference string `schema:"gender_preference"`
	BoilerType       string `schema:"boiler_type"`
	HasFurniture     string `schema:"has_furniture"`
	MinFloor         string `schema:"min_floor"`
	MaxFloor         string `schema:"max_floor"`
	YearBuiltFrom    string `schema:"year_built_from"`
	YearBuiltTo      string `schema:"year_built_to"`
	Renovation       string `schema:"renovation"`
	Entrance         string `schema:"entrance"`
	SortBy           string `schema:"sort_by"`
	SortOrder        string `schema:"sort_order"`
	PricePerDayMin   string `schema:"price_per_day_min"`
	PricePerDayMax   string `schema:"price_per_day_max"`
	PricePerMonthMin string `schema:"price_per_month_min"`
	PricePerMonthMax string `schema:"price_per_month_max"`
	MinRentalDays    string `schema:"min_rental_days"`
}

// DefaultPropertyFilters is the form as first shown and after a reset.
func DefaultPropertyFilters() PropertyFilters {
	return PropertyFilters{
		NearbyRadius: "1",
		Status:       "active",
		SortBy:       "created_at",
		SortOrder:    "desc",
	}
}

var (
	encoder = schema.NewEncoder()
	decoder = func() *schema.Decoder {
		d := schema.NewDecoder()
		d.IgnoreUnknownKeys(true)
		return d
	}()
)

// ParsePropertyFilters reads form values over the defaults. Unknown keys
// are ignored.
func ParsePropertyFilters(values url.Values) (PropertyFilters, error) {
	pf := DefaultPropertyFilters()
	if err := decoder.Decode(&pf, values); err != nil {
		return pf, fmt.Errorf("listing: parse filters: %w", err)
	}
	return pf, nil
}

// State converts the typed form into a FilterState, blank fields included.
func (p PropertyFilters) State() (FilterState, error) {
	values := map[string][]string{}
	if err := encoder.Encode(p, values); err != nil {
		return nil, fmt.Errorf("listing: encode filters: %w", err)
	}

	state := make(FilterState, len(values))
	for k, v := range values {
		if len(v) > 0 {
			state[k] = v[0]
		} else {
			state[k] = ""
		}
	}
	return state, nil
}
