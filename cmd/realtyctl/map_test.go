package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"realty-client/internal/listing"
	"realty-client/internal/mapprovider"
	"realty-client/internal/models"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestRenderMap(t *testing.T) {
	lat, lng := 42.46, 59.61
	props := []models.Property{
		{ID: 1, Title: "Flat", Latitude: &lat, Longitude: &lng, Price: 2500},
		{ID: 2, Title: "No coords", Price: 5},
	}
	prices := listing.NewPriceFormatter("en", "USD")

	t.Run("centers_on_first_marker", func(t *testing.T) {
		canvas := mapprovider.NewCanvas(nil)
		var out bytes.Buffer

		require.NoError(t, renderMap(&out, canvas, props, prices))

		center, zoom := canvas.Center()
		require.Equal(t, mapprovider.Point{Lat: lat, Lng: lng}, center)
		require.Equal(t, mapprovider.DefaultZoom, zoom)

		_, ok := canvas.Marker("property-1")
		require.True(t, ok)
		_, ok = canvas.Marker("property-2")
		require.False(t, ok)

		require.Contains(t, out.String(), "center 42.46000, 59.61000 zoom 13, 1 of 2 listings on the map")
		require.Contains(t, out.String(), "property-1")
		require.Contains(t, out.String(), "2,500 USD")
		require.NotContains(t, out.String(), "No coords")
	})

	t.Run("keeps_explicit_center", func(t *testing.T) {
		canvas := mapprovider.NewCanvas(nil)
		near := mapprovider.Point{Lat: 41.3, Lng: 69.2}
		canvas.SetCenter(near, 15)
		var out bytes.Buffer

		require.NoError(t, renderMap(&out, canvas, props, prices))

		center, zoom := canvas.Center()
		require.Equal(t, near, center)
		require.Equal(t, 15, zoom)
		require.Contains(t, out.String(), "center 41.30000, 69.20000 zoom 15")
	})

	t.Run("no_listings", func(t *testing.T) {
		canvas := mapprovider.NewCanvas(nil)
		var out bytes.Buffer

		require.NoError(t, renderMap(&out, canvas, nil, prices))

		center, _ := canvas.Center()
		require.Equal(t, mapprovider.DefaultCenter, center)
		require.Contains(t, out.String(), "0 of 0 listings")
	})
}

func TestPickAddress(t *testing.T) {
	tests := []struct {
		name      string
		address   string
		reverse   string
		mockSetup func(api *mapprovider.MockGeocodeAPI)
		want      string
		wantPoint mapprovider.Point
		wantErr   error
		errSubstr string
	}{
		{
			name:    "typed_address",
			address: "Нукус, Бердаха 12",
			mockSetup: func(api *mapprovider.MockGeocodeAPI) {
				api.EXPECT().Geocode(gomock.Any(), "Нукус, Бердаха 12").
					Return(&models.GeocodeResult{Lat: 42.45, Lon: 59.6, FormattedAddress: "Бердаха 12, Нукус"}, nil)
			},
			want:      "Нукус, Бердаха 12",
			wantPoint: mapprovider.Point{Lat: 42.45, Lng: 59.6},
		},
		{
			name:    "typed_address_not_found",
			address: "nowhere",
			mockSetup: func(api *mapprovider.MockGeocodeAPI) {
				api.EXPECT().Geocode(gomock.Any(), "nowhere").Return(nil, nil)
			},
			wantErr: mapprovider.ErrNotFound,
		},
		{
			name:    "reverse_lookup",
			reverse: "42.1, 59.2",
			mockSetup: func(api *mapprovider.MockGeocodeAPI) {
				api.EXPECT().ReverseGeocode(gomock.Any(), 42.1, 59.2).Return("ул. Каракалпакстан 5", nil)
			},
			want:      "ул. Каракалпакстан 5",
			wantPoint: mapprovider.Point{Lat: 42.1, Lng: 59.2},
		},
		{
			name:    "reverse_lookup_failure_keeps_coordinates",
			reverse: "42.1,59.2",
			mockSetup: func(api *mapprovider.MockGeocodeAPI) {
				api.EXPECT().ReverseGeocode(gomock.Any(), 42.1, 59.2).Return("", errors.New("upstream down"))
			},
			want:      "Координаты: 42.10000, 59.20000",
			wantPoint: mapprovider.Point{Lat: 42.1, Lng: 59.2},
		},
		{
			name:      "bad_coordinates",
			reverse:   "42.1",
			mockSetup: func(api *mapprovider.MockGeocodeAPI) {},
			errSubstr: "want lat,lng",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api := mapprovider.NewMockGeocodeAPI(ctrl)
			tt.mockSetup(api)
			canvas := mapprovider.NewCanvas(mapprovider.NewBackendGeocoder(api))

			got, pos, err := pickAddress(context.Background(), canvas, tt.address, tt.reverse)
			if tt.wantErr != nil || tt.errSubstr != "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					require.ErrorIs(t, err, tt.wantErr)
				}
				if tt.errSubstr != "" {
					require.Contains(t, err.Error(), tt.errSubstr)
				}
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.wantPoint, pos)

			marker, ok := canvas.Marker("address-picker")
			require.True(t, ok)
			require.Equal(t, tt.wantPoint, marker.Position)
		})
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    mapprovider.Point
		wantErr bool
	}{
		{name: "plain", in: "42.46,59.61", want: mapprovider.Point{Lat: 42.46, Lng: 59.61}},
		{name: "spaces", in: " 42.46 , 59.61 ", want: mapprovider.Point{Lat: 42.46, Lng: 59.61}},
		{name: "missing_comma", in: "42.46", wantErr: true},
		{name: "latitude_out_of_range", in: "91,59", wantErr: true},
		{name: "longitude_not_a_number", in: "42,east", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
