package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "decimal_string", input: `"15000000.00"`, want: 15000000},
		{name: "number", input: `2500000`, want: 2500000},
		{name: "null", input: `null`, want: 0},
		{name: "empty_string", input: `""`, want: 0},
		{name: "garbage", input: `"abc"`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tc.input), &a)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, a)
		})
	}
}

func TestAuction_DecodeBackendPayload(t *testing.T) {
	payload := `{
		"id": 7, "property": 3, "property_title": "2-комнатная", "organizer": 11,
		"organizer_name": "Seller", "start_price": "100000000.00", "current_price": "120000000.00",
		"target_price": null, "start_time": "2025-03-01T10:00:00+05:00",
		"end_time": "2025-03-08T10:00:00.123456Z", "end_type": "time", "status": "active",
		"bids": [{"id": 2, "bidder": 5, "bidder_name": "Buyer", "amount": "120000000.00", "bid_time": "2025-03-02T12:00:00Z"}],
		"winner": null, "is_active": true, "created_at": "2025-03-01T09:00:00Z", "unknown_field": 1
	}`

	var a Auction
	require.NoError(t, json.Unmarshal([]byte(payload), &a))

	require.Equal(t, int64(7), a.ID)
	require.Equal(t, Amount(120000000), a.CurrentPrice)
	require.Nil(t, a.TargetPrice)
	require.NotNil(t, a.EndTime)
	require.True(t, a.IsTimeBound())
	require.True(t, a.IsOrganizer(11))
	require.Len(t, a.Bids, 1)
	require.Equal(t, "Buyer", a.Bids[0].BidderName)
	require.Nil(t, a.WinnerID)
}

func TestAuction_IsTimeBound(t *testing.T) {
	end := time.Now()
	tests := []struct {
		name    string
		auction Auction
		want    bool
	}{
		{name: "time_with_end", auction: Auction{EndType: EndByTime, EndTime: &end}, want: true},
		{name: "both_with_end", auction: Auction{EndType: EndByBoth, EndTime: &end}, want: true},
		{name: "price_with_end", auction: Auction{EndType: EndByPrice, EndTime: &end}, want: false},
		{name: "time_without_end", auction: Auction{EndType: EndByTime}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.auction.IsTimeBound())
		})
	}
}

func TestPage_UnmarshalJSON(t *testing.T) {
	var bare Page[Property]
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1},{"id":2}]`), &bare))
	require.Equal(t, 2, bare.Count)
	require.Len(t, bare.Results, 2)

	var wrapped Page[Property]
	require.NoError(t, json.Unmarshal([]byte(`{"count":10,"next":"http://x/?page=2","results":[{"id":3}]}`), &wrapped))
	require.Equal(t, 10, wrapped.Count)
	require.NotNil(t, wrapped.Next)
	require.Equal(t, int64(3), wrapped.Results[0].ID)
}
