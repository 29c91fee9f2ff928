package mapprovider

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"realty-client/internal/listing"
	"realty-client/internal/models"
)

// Marker is a pin on the map. Placing a marker with an existing ID moves it.
type Marker struct {
	ID        string
	Position  Point
	Hint      string
	Label     string
	Draggable bool
}

// MapProvider is the map SDK surface the client relies on.
type MapProvider interface {
	Geocoder
	PlaceMarker(m Marker)
	RemoveMarker(id string)
	SetCenter(p Point, zoom int)
	// OnClick registers fn for map clicks; ctx belongs to the click.
	OnClick(fn func(ctx context.Context, p Point))
}

// Canvas is an in-memory MapProvider. It renders nothing; clicks are
// injected with Click.
type Canvas struct {
	Geocoder

	mu       sync.Mutex
	markers  map[string]Marker
	center   Point
	zoom     int
	handlers []func(context.Context, Point)
}

// DefaultZoom is the initial zoom level of a new map.
const DefaultZoom = 13

func NewCanvas(g Geocoder) *Canvas {
	return &Canvas{
		Geocoder: g,
		markers:  make(map[string]Marker),
		center:   DefaultCenter,
		zoom:     DefaultZoom,
	}
}

func (c *Canvas) PlaceMarker(m Marker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markers[m.ID] = m
}

func (c *Canvas) RemoveMarker(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.markers, id)
}

func (c *Canvas) SetCenter(p Point, zoom int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.center, c.zoom = p, zoom
}

func (c *Canvas) OnClick(fn func(context.Context, Point)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, fn)
}

// Click delivers a map click to every registered handler.
func (c *Canvas) Click(ctx context.Context, p Point) {
	c.mu.Lock()
	handlers := append(([]func(context.Context, Point))(nil), c.handlers...)
	c.mu.Unlock()

	for _, fn := range handlers {
		fn(ctx, p)
	}
}

// Center returns the current viewport center and zoom.
func (c *Canvas) Center() (Point, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.center, c.zoom
}

func (c *Canvas) Marker(id string) (Marker, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.markers[id]
	return m, ok
}

// Markers returns all markers ordered by ID.
func (c *Canvas) Markers() []Marker {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Marker, 0, len(c.markers))
	for _, m := range c.markers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PropertyMarkers builds one marker per geocoded listing, labelled with its
// price. Listings without coordinates are skipped. A nil formatter uses
// the default locale.
func PropertyMarkers(props []models.Property, f *listing.PriceFormatter) []Marker {
	out := make([]Marker, 0, len(props))
	for i := range props {
		p := &props[i]
		lat, lng, ok := p.Coordinates()
		if !ok {
			continue
		}

		label := listing.FormatPrice(p)
		if f != nil {
			label = f.FormatPrice(p)
		}

		out = append(out, Marker{
			ID:       fmt.Sprintf("property-%d", p.ID),
			Position: Point{Lat: lat, Lng: lng},
			Hint:     p.Title,
			Label:    label,
		})
	}
	return out
}
