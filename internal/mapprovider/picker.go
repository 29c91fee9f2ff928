package mapprovider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"realty-client/internal/clienterrors"
	"realty-client/utils"
)

const (
	pickerMarkerID = "address-picker"
	pickerHint     = "Drag the marker to the right place"
	searchZoom     = 15
)

// AddressPicker lets the user choose a listing address either by typing
// it or by clicking the map.
type AddressPicker struct {
	provider MapProvider
	initial  string

	mu       sync.Mutex
	address  string
	position *Point
}

// NewAddressPicker binds a picker to provider.
func NewAddressPicker(provider MapProvider, initial string) *AddressPicker {
	p := &AddressPicker{
		provider: provider,
		initial:  initial,
		address:  initial,
	}
	provider.OnClick(p.handleClick)
	return p
}

// Open centers the map and shows the draggable marker. A typed address
// without a known position is geocoded; failures leave the default view.
func (p *AddressPicker) Open(ctx context.Context) {
	p.mu.Lock()
	center := DefaultCenter
	if p.position != nil {
		center = *p.position
	}
	address, hasPosition := p.address, p.position != nil
	p.mu.Unlock()

	p.provider.SetCenter(center, DefaultZoom)
	p.placeMarker(center, address)

	if strings.TrimSpace(address) != "" && !hasPosition {
		if err := p.Search(ctx); err != nil {
			utils.Warn("mapprovider: initial address not found", map[string]any{"error": err.Error()})
		}
	}
}

// SetAddress records typed input without geocoding it.
func (p *AddressPicker) SetAddress(address string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.address = address
}

// Search geocodes the typed address and moves the marker there.
func (p *AddressPicker) Search(ctx context.Context) error {
	address := strings.TrimSpace(p.Address())
	if address == "" {
		return clienterrors.NewValidation(clienterrors.ErrMissingAddress, "enter an address or click on the map")
	}

	pos, _, err := p.provider.Geocode(ctx, address)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.position = &pos
	p.mu.Unlock()

	p.provider.SetCenter(pos, searchZoom)
	p.placeMarker(pos, address)
	return nil
}

// Save returns the chosen address, which must not be blank.
func (p *AddressPicker) Save() (string, error) {
	address := strings.TrimSpace(p.Address())
	if address == "" {
		return "", clienterrors.NewValidation(clienterrors.ErrMissingAddress, "enter an address or click on the map")
	}
	return address, nil
}

// Cancel discards changes made since the picker was created.
func (p *AddressPicker) Cancel() {
	p.mu.Lock()
	p.address = p.initial
	p.position = nil
	p.mu.Unlock()
	p.provider.RemoveMarker(pickerMarkerID)
}

func (p *AddressPicker) Address() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.address
}

// Position is the last chosen point, if any.
func (p *AddressPicker) Position() (Point, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.position == nil {
		return Point{}, false
	}
	return *p.position, true
}

// handleClick moves the marker to pt and resolves its address. When the
// reverse lookup fails the coordinates themselves become the address.
func (p *AddressPicker) handleClick(ctx context.Context, pt Point) {
	address, err := p.provider.ReverseGeocode(ctx, pt)
	if err != nil {
		utils.Warn("mapprovider: reverse geocode failed", map[string]any{"point": pt.String(), "error": err.Error()})
		address = fmt.Sprintf("Координаты: %s", pt)
	}

	p.mu.Lock()
	p.position = &pt
	p.address = address
	p.mu.Unlock()

	p.placeMarker(pt, address)
}

func (p *AddressPicker) placeMarker(pt Point, address string) {
	p.provider.PlaceMarker(Marker{
		ID:        pickerMarkerID,
		Position:  pt,
		Hint:      pickerHint,
		Label:     address,
		Draggable: true,
	})
}
