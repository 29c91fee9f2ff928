package models

import "time"

// AuctionStatus is owned by the server; the client only observes it.
type AuctionStatus string

const (
	AuctionPendingPayment AuctionStatus = "pending_payment"
	AuctionScheduled      AuctionStatus = "scheduled"
	AuctionActive         AuctionStatus = "active"
	AuctionCompleted      AuctionStatus = "completed"
	AuctionCancelled      AuctionStatus = "cancelled"
)

// EndType is the condition under which an auction closes.
type EndType string

const (
	EndByTime  EndType = "time"
	EndByPrice EndType = "price"
	EndByBoth  EndType = "both"
)

// Auction represents a property auction with its bid history (newest first)
type Auction struct {
	ID            int64         `json:"id"`
	PropertyID    int64         `json:"property"`
	PropertyTitle string        `json:"property_title"`
	OrganizerID   int64         `json:"organizer"`
	OrganizerName string        `json:"organizer_name"`
	StartPrice    Amount        `json:"start_price"`
	CurrentPrice  Amount        `json:"current_price"`
	TargetPrice   *Amount       `json:"target_price,omitempty"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       *time.Time    `json:"end_time,omitempty"`
	EndType       EndType       `json:"end_type"`
	Status        AuctionStatus `json:"status"`
	Bids          []Bid         `json:"bids"`
	WinnerID      *int64        `json:"winner,omitempty"`
	WinnerName    *string       `json:"winner_name,omitempty"`
	IsActive      bool          `json:"is_active"`
	IsPaid        bool          `json:"is_paid"`
	CreatedAt     time.Time     `json:"created_at"`
}

// IsTimeBound reports whether the auction closes on a deadline.
func (a *Auction) IsTimeBound() bool {
	return a.EndTime != nil && (a.EndType == EndByTime || a.EndType == EndByBoth)
}

// IsOrganizer reports whether userID created the auction.
func (a *Auction) IsOrganizer(userID int64) bool {
	return a.OrganizerID == userID
}

// Bid represents a single accepted offer
type Bid struct {
	ID         int64     `json:"id"`
	BidderID   int64     `json:"bidder"`
	BidderName string    `json:"bidder_name"`
	Amount     Amount    `json:"amount"`
	BidTime    time.Time `json:"bid_time"`
}

// PlaceBidRequest is the bid submission body.
type PlaceBidRequest struct {
	Amount float64 `json:"amount"`
}

// AuctionInput is the create/update form for an auction.
type AuctionInput struct {
	PropertyID  int64      `json:"property"`
	StartPrice  float64    `json:"start_price"`
	EndType     EndType    `json:"end_type"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	TargetPrice *float64   `json:"target_price,omitempty"`
}

// PaymentStatus tracks the manual listing-fee payment of an auction.
type PaymentStatus string

const (
	PaymentPending             PaymentStatus = "pending"
	PaymentWaitingConfirmation PaymentStatus = "waiting_confirmation"
	PaymentConfirmed           PaymentStatus = "confirmed"
	PaymentRejected            PaymentStatus = "rejected"
)

// PaymentInfo holds the card details for the listing fee transfer.
type PaymentInfo struct {
	CardNumber    string        `json:"card_number"`
	CardNumberRaw string        `json:"card_number_raw"`
	Amount        Amount        `json:"amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentURL    string        `json:"payment_url,omitempty"`
}

// CanUploadProof reports whether a new payment screenshot may be sent.
func (p *PaymentInfo) CanUploadProof() bool {
	return p.PaymentStatus != PaymentWaitingConfirmation && p.PaymentStatus != PaymentConfirmed
}
