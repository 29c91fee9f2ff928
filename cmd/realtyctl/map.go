package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"realty-client/internal/clienterrors"
	"realty-client/internal/listing"
	"realty-client/internal/mapprovider"
	"realty-client/internal/models"
	"realty-client/utils"
)

func cmdMap(ctx context.Context, a *app, args []string) error {
	fs := newFlags("map")
	filters := filterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	state, err := filters()
	if err != nil {
		return err
	}

	a.restore(ctx)
	res, err := listing.NewSearcher(a.client).Search(ctx, state)
	if err != nil {
		return errors.New(clienterrors.UserMessage(err, "search failed"))
	}

	canvas := mapprovider.NewCanvas(mapprovider.NewBackendGeocoder(a.client))
	if place := state.String(listing.KeyNearbyLocation); place != "" {
		if pos, _, err := canvas.Geocode(ctx, place); err == nil {
			canvas.SetCenter(pos, mapprovider.DefaultZoom)
		} else {
			utils.Warn("realtyctl: map center not found", map[string]any{"place": place, "error": err.Error()})
		}
	}

	fmt.Printf("found %d (%s)\n", res.Count, res.Source)
	return renderMap(os.Stdout, canvas, res.Properties, a.prices)
}

// renderMap pins every geocoded listing on canvas and prints the view.
// Without an explicit center the map centers on the first pin.
func renderMap(w io.Writer, canvas *mapprovider.Canvas, props []models.Property, prices *listing.PriceFormatter) error {
	markers := mapprovider.PropertyMarkers(props, prices)
	for _, m := range markers {
		canvas.PlaceMarker(m)
	}

	center, zoom := canvas.Center()
	if center == mapprovider.DefaultCenter && len(markers) > 0 {
		center = markers[0].Position
		canvas.SetCenter(center, zoom)
	}

	fmt.Fprintf(w, "center %s zoom %d, %d of %d listings on the map\n", center, zoom, len(markers), len(props))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MARKER\tPOSITION\tPRICE\tTITLE")
	for _, m := range canvas.Markers() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Position, m.Label, m.Hint)
	}
	return tw.Flush()
}

func cmdGeocode(ctx context.Context, a *app, args []string) error {
	fs := newFlags("geocode")
	reverse := fs.String("reverse", "", "coordinates as lat,lng")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	address := strings.Join(fs.Args(), " ")
	if *reverse == "" && strings.TrimSpace(address) == "" {
		return errUsage
	}

	a.restore(ctx)
	canvas := mapprovider.NewCanvas(mapprovider.NewBackendGeocoder(a.client))
	address, pos, err := pickAddress(ctx, canvas, address, *reverse)
	if err != nil {
		return errors.New(clienterrors.UserMessage(err, "address not found"))
	}

	fmt.Printf("%s\n%s\n", address, pos)
	return nil
}

// pickAddress runs the address picker the way a listing form does: a
// reverse lookup is a click on the map, otherwise the typed address is
// searched.
func pickAddress(ctx context.Context, provider mapprovider.MapProvider, address, reverse string) (string, mapprovider.Point, error) {
	picker := mapprovider.NewAddressPicker(provider, address)

	if reverse != "" {
		pt, err := parsePoint(reverse)
		if err != nil {
			return "", mapprovider.Point{}, err
		}
		provider.SetCenter(pt, mapprovider.DefaultZoom)
		simulateClick(ctx, provider, pt)
	} else if err := picker.Search(ctx); err != nil {
		return "", mapprovider.Point{}, err
	}

	saved, err := picker.Save()
	if err != nil {
		return "", mapprovider.Point{}, err
	}
	pos, _ := picker.Position()
	return saved, pos, nil
}

type clicker interface {
	Click(ctx context.Context, p mapprovider.Point)
}

func simulateClick(ctx context.Context, provider mapprovider.MapProvider, pt mapprovider.Point) {
	if c, ok := provider.(clicker); ok {
		c.Click(ctx, pt)
	}
}

func parsePoint(s string) (mapprovider.Point, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return mapprovider.Point{}, fmt.Errorf("coordinates %q: want lat,lng", s)
	}

	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil || la < -90 || la > 90 {
		return mapprovider.Point{}, fmt.Errorf("latitude %q is invalid", lat)
	}
	ln, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil || ln < -180 || ln > 180 {
		return mapprovider.Point{}, fmt.Errorf("longitude %q is invalid", lng)
	}
	return mapprovider.Point{Lat: la, Lng: ln}, nil
}
