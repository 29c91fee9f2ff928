package auction

import (
	"testing"
	"time"

	"realty-client/internal/models"

	"github.com/stretchr/testify/require"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{name: "sixty_five_seconds", in: 65 * time.Second, want: "1м 5с"},
		{name: "under_a_minute", in: 59 * time.Second, want: "0м 59с"},
		{name: "hours_show_seconds", in: time.Hour + time.Minute + time.Second, want: "1ч 1м 1с"},
		{name: "days_drop_seconds", in: 25*time.Hour + time.Minute + 30*time.Second, want: "1д 1ч 1м"},
		{name: "fractions_truncate", in: 1500 * time.Millisecond, want: "0м 1с"},
		{name: "zero_is_expired", in: 0, want: ExpiredLabel},
		{name: "negative_is_expired", in: -time.Second, want: ExpiredLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatRemaining(tt.in))
		})
	}
}

func TestLabels(t *testing.T) {
	require.Equal(t, "Активен", StatusLabel(models.AuctionActive))
	require.Equal(t, "Ожидает оплаты", StatusLabel(models.AuctionPendingPayment))
	require.Equal(t, "archived", StatusLabel(models.AuctionStatus("archived")))

	require.Equal(t, "По времени или цене", EndTypeLabel(models.EndByBoth))
	require.Equal(t, "По цене", EndTypeLabel(models.EndByPrice))
	require.Equal(t, "other", EndTypeLabel(models.EndType("other")))
}
