package auction

import (
	"fmt"
	"time"

	"realty-client/internal/models"
)

// ExpiredLabel replaces the countdown once the end time has passed.
const ExpiredLabel = "Завершен"

// FormatRemaining renders a countdown: "Nд Nч Nм" from one day up,
// "Nч Nм Nс" from one hour up, "Nм Nс" below that.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return ExpiredLabel
	}

	total := int64(d / time.Second)
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	default:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	}
}

var statusLabels = map[models.AuctionStatus]string{
	models.AuctionPendingPayment: "Ожидает оплаты",
	models.AuctionScheduled:      "Запланирован",
	models.AuctionActive:         "Активен",
	models.AuctionCompleted:      "Завершен",
	models.AuctionCancelled:      "Отменен",
}

// StatusLabel returns the display name of an auction status. Unknown
// statuses are shown as sent by the server.
func StatusLabel(s models.AuctionStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

var endTypeLabels = map[models.EndType]string{
	models.EndByTime:  "По времени",
	models.EndByPrice: "По цене",
	models.EndByBoth:  "По времени или цене",
}

func EndTypeLabel(t models.EndType) string {
	if label, ok := endTypeLabels[t]; ok {
		return label
	}
	return string(t)
}
