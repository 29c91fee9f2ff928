package mapprovider

//go:generate mockgen -source=geocoder.go -destination=mock_geocoder.go -package=mapprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"realty-client/internal/models"
)

// ErrNotFound is returned when an address cannot be resolved.
var ErrNotFound = errors.New("address not found")

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lng float64
}

func (p Point) String() string {
	return fmt.Sprintf("%.5f, %.5f", p.Lat, p.Lng)
}

// DefaultCenter is where the map opens without a known position (Nukus).
var DefaultCenter = Point{Lat: 42.4640, Lng: 59.6103}

// Geocoder converts between addresses and coordinates.
type Geocoder interface {
	// Geocode returns the position of address and its normalized form.
	Geocode(ctx context.Context, address string) (Point, string, error)
	ReverseGeocode(ctx context.Context, p Point) (string, error)
}

// GeocodeAPI is the backend surface BackendGeocoder calls.
type GeocodeAPI interface {
	Geocode(ctx context.Context, address string) (*models.GeocodeResult, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// BackendGeocoder resolves addresses through the marketplace API, which
// proxies the map vendor.
type BackendGeocoder struct {
	api GeocodeAPI
}

func NewBackendGeocoder(api GeocodeAPI) *BackendGeocoder {
	return &BackendGeocoder{api: api}
}

func (g *BackendGeocoder) Geocode(ctx context.Context, address string) (Point, string, error) {
	res, err := g.api.Geocode(ctx, address)
	if err != nil {
		return Point{}, "", fmt.Errorf("mapprovider: geocode %q: %w", address, err)
	}
	if res == nil || (res.Lat == 0 && res.Lon == 0) {
		return Point{}, "", fmt.Errorf("mapprovider: geocode %q: %w", address, ErrNotFound)
	}

	formatted := strings.TrimSpace(res.FormattedAddress)
	if formatted == "" {
		formatted = address
	}
	return Point{Lat: res.Lat, Lng: res.Lon}, formatted, nil
}

func (g *BackendGeocoder) ReverseGeocode(ctx context.Context, p Point) (string, error) {
	addr, err := g.api.ReverseGeocode(ctx, p.Lat, p.Lng)
	if err != nil {
		return "", fmt.Errorf("mapprovider: reverse geocode %s: %w", p, err)
	}
	if strings.TrimSpace(addr) == "" {
		return "", fmt.Errorf("mapprovider: reverse geocode %s: %w", p, ErrNotFound)
	}
	return addr, nil
}
