package auction

//go:generate mockgen -source=bid_flow.go -destination=mock_api.go -package=auction

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"realty-client/internal/clienterrors"
	"realty-client/internal/models"
	"realty-client/utils"
)

// BidStep is the increment between the current price and the suggested bid.
const BidStep = 1_000_000

// BidFailedMessage is shown when the server gives no reason for a rejection.
const BidFailedMessage = "Could not place the bid. Please try again."

// FlowState is the submission state of a BidFlow.
type FlowState int

const (
	// Viewing: no submission in progress.
	Viewing FlowState = iota
	// Submitting: a bid was sent and the flow waits for the server.
	Submitting
	// Settled: the last bid was accepted and the auction re-fetched.
	Settled
)

func (s FlowState) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Submitting:
		return "submitting"
	case Settled:
		return "settled"
	default:
		return fmt.Sprintf("flow_state(%d)", int(s))
	}
}

// AuctionAPI is the backend surface the bid flow uses.
type AuctionAPI interface {
	GetAuction(ctx context.Context, id int64) (*models.Auction, error)
	PlaceBid(ctx context.Context, auctionID int64, amount float64) error
}

// Viewer identifies who is looking at the auction.
type Viewer interface {
	IsAuthenticated() bool
	CurrentUser() *models.User
}

// BidFlow drives the detail view of a single auction: it holds the last
// server snapshot, the local countdown, and the bid submission state.
type BidFlow struct {
	api       AuctionAPI
	viewer    Viewer
	auctionID int64

	clock       clockwork.Clock
	formatPrice func(float64) string
	onTick      func(label string)
	onExpire    func()

	mu        sync.Mutex
	state     FlowState
	auction   *models.Auction
	countdown *Countdown
	lastError string
	closed    bool
}

// FlowOption configures a BidFlow.
type FlowOption func(*BidFlow)

func WithClock(clock clockwork.Clock) FlowOption {
	return func(f *BidFlow) { f.clock = clock }
}

// WithPriceFormatter sets how prices appear in validation messages.
func WithPriceFormatter(fn func(float64) string) FlowOption {
	return func(f *BidFlow) { f.formatPrice = fn }
}

// WithTickHandler receives the countdown label every second.
func WithTickHandler(fn func(label string)) FlowOption {
	return func(f *BidFlow) { f.onTick = fn }
}

// WithExpireHandler runs once when the countdown reaches zero.
func WithExpireHandler(fn func()) FlowOption {
	return func(f *BidFlow) { f.onExpire = fn }
}

func NewBidFlow(api AuctionAPI, viewer Viewer, auctionID int64, opts ...FlowOption) *BidFlow {
	f := &BidFlow{
		api:       api,
		viewer:    viewer,
		auctionID: auctionID,
		clock:     clockwork.NewRealClock(),
		formatPrice: func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load fetches the auction and restarts the countdown from its end time.
func (f *BidFlow) Load(ctx context.Context) error {
	a, err := f.api.GetAuction(ctx, f.auctionID)
	if err != nil {
		return fmt.Errorf("auction: load %d: %w", f.auctionID, err)
	}
	f.setAuction(a)
	return nil
}

// Refresh re-reads the server state; the status reported by the server
// reconciles any local expiry.
func (f *BidFlow) Refresh(ctx context.Context) error {
	return f.Load(ctx)
}

func (f *BidFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Auction returns the last server snapshot, or nil before Load.
func (f *BidFlow) Auction() *models.Auction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.auction
}

// LastError is the message of the last rejected bid.
func (f *BidFlow) LastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastError
}

// Expired reports whether the local countdown has run out. Auctions that
// do not end by time never expire locally.
func (f *BidFlow) Expired() bool {
	f.mu.Lock()
	cd := f.countdown
	f.mu.Unlock()
	return cd != nil && cd.Expired()
}

// TimeLeft is the countdown label, or "" for auctions without a deadline.
func (f *BidFlow) TimeLeft() string {
	f.mu.Lock()
	cd := f.countdown
	f.mu.Unlock()
	if cd == nil {
		return ""
	}
	return cd.Label()
}

// MinimumBid is the smallest amount PlaceBid accepts.
func (f *BidFlow) MinimumBid() float64 {
	a := f.Auction()
	if a == nil {
		return 0
	}
	return a.CurrentPrice.Float() + 1
}

// SuggestedBid prefills the bid input.
func (f *BidFlow) SuggestedBid() float64 {
	a := f.Auction()
	if a == nil {
		return 0
	}
	return a.CurrentPrice.Float() + BidStep
}

// CanBid checks whether the viewer may bid right now, without any network
// call. The returned error carries a message for the user.
func (f *BidFlow) CanBid() error {
	a := f.Auction()
	if a == nil {
		return clienterrors.NewValidation(clienterrors.ErrAuctionNotActive, "auction is not loaded")
	}
	if f.viewer == nil || !f.viewer.IsAuthenticated() {
		return clienterrors.NewValidation(clienterrors.ErrNotAuthenticated, "log in to place bids")
	}
	if u := f.viewer.CurrentUser(); u != nil && a.IsOrganizer(u.ID) {
		return clienterrors.NewValidation(clienterrors.ErrOrganizerBid, "you cannot bid on your own auction")
	}
	if a.Status != models.AuctionActive || !a.IsActive {
		return clienterrors.NewValidation(clienterrors.ErrAuctionNotActive, "auction is %s", StatusLabel(a.Status))
	}
	if f.Expired() {
		return clienterrors.NewValidation(clienterrors.ErrAuctionExpired, "auction has ended")
	}
	return nil
}

// PlaceBid validates amount locally, submits it, and on success replaces
// the snapshot with a fresh copy from the server. Nothing is sent when
// validation fails.
func (f *BidFlow) PlaceBid(ctx context.Context, amount float64) error {
	if err := f.CanBid(); err != nil {
		f.setLastError(err)
		return err
	}
	if err := f.validateAmount(amount); err != nil {
		f.setLastError(err)
		return err
	}

	f.mu.Lock()
	if f.state == Submitting {
		f.mu.Unlock()
		return clienterrors.ErrBidInFlight
	}
	f.state = Submitting
	f.lastError = ""
	f.mu.Unlock()

	if err := f.api.PlaceBid(ctx, f.auctionID, amount); err != nil {
		f.mu.Lock()
		f.state = Viewing
		f.lastError = clienterrors.UserMessage(err, BidFailedMessage)
		f.mu.Unlock()

		utils.Warn("auction: bid rejected", map[string]any{
			"auction_id": f.auctionID,
			"amount":     amount,
			"error":      err.Error(),
		})
		return fmt.Errorf("auction: place bid on %d: %w", f.auctionID, err)
	}

	utils.Info("auction: bid placed", map[string]any{"auction_id": f.auctionID, "amount": amount})

	a, err := f.api.GetAuction(ctx, f.auctionID)

	f.mu.Lock()
	f.state = Settled
	f.mu.Unlock()

	if err != nil {
		return fmt.Errorf("auction: bid placed, reload %d: %w", f.auctionID, err)
	}
	f.setAuction(a)
	return nil
}

// Close stops the countdown. Snapshots arriving after Close are still
// stored, but their countdown is never started.
func (f *BidFlow) Close() {
	f.mu.Lock()
	f.closed = true
	cd := f.countdown
	f.mu.Unlock()

	if cd != nil {
		cd.Stop()
	}
}

func (f *BidFlow) validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return clienterrors.NewValidation(clienterrors.ErrInvalidBid, "enter a valid bid amount")
	}
	current := f.Auction().CurrentPrice.Float()
	if amount <= current {
		return clienterrors.NewValidation(clienterrors.ErrBidTooLow,
			"bid must be higher than the current price (%s)", f.formatPrice(current))
	}
	return nil
}

func (f *BidFlow) setLastError(err error) {
	f.mu.Lock()
	f.lastError = clienterrors.UserMessage(err, BidFailedMessage)
	f.mu.Unlock()
}

// setAuction swaps the snapshot and replaces the countdown.
func (f *BidFlow) setAuction(a *models.Auction) {
	var next *Countdown
	if a.IsTimeBound() {
		next = NewCountdown(f.clock, *a.EndTime, f.tickHandler(), f.onExpire)
	}

	f.mu.Lock()
	prev := f.countdown
	f.auction = a
	f.countdown = next
	// Start under f.mu so Close either sees the running countdown or
	// prevents it from starting
	if next != nil && !f.closed {
		next.Start()
	}
	f.mu.Unlock()

	// Stop waits for callbacks, which may read the flow, so it runs unlocked
	if prev != nil {
		prev.Stop()
	}
}

func (f *BidFlow) tickHandler() func(time.Duration) {
	if f.onTick == nil {
		return nil
	}
	return func(rem time.Duration) { f.onTick(FormatRemaining(rem)) }
}
