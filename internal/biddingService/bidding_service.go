package bidding

import (
	"fmt"
	"math"

	"github.com/jonboulle/clockwork"

	"realty-client/internal/biddingerrors"
	"realty-client/internal/models"
	"realty-client/internal/repository"
)

// BiddingService defines the business logic for auctions and bidding
type BiddingService struct {
	repo  repository.AuctionDB
	clock clockwork.Clock
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, clock clockwork.Clock) *BiddingService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &BiddingService{
		repo:  repo,
		clock: clock,
	}
}

// CreateAuction opens an auction on a property owned by the organizer
func (s *BiddingService) CreateAuction(organizer models.User, in models.AuctionInput) (models.Auction, error) {
	if err := s.validateAuction(in); err != nil {
		return models.Auction{}, err
	}

	p, err := s.repo.GetProperty(in.PropertyID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: create auction: %w", err)
	}
	if p.OwnerID != organizer.ID {
		return models.Auction{}, fmt.Errorf("service: create auction on property %d: %w", p.ID, biddingerrors.ErrForbidden)
	}

	now := s.clock.Now().UTC()
	start := in.StartTime
	if start.IsZero() {
		start = now
	}

	a := models.Auction{
		PropertyID:    p.ID,
		PropertyTitle: p.Title,
		OrganizerID:   organizer.ID,
		OrganizerName: organizer.FullName,
		StartPrice:    models.Amount(in.StartPrice),
		CurrentPrice:  models.Amount(in.StartPrice),
		StartTime:     start,
		EndTime:       in.EndTime,
		EndType:       in.EndType,
		Status:        models.AuctionScheduled,
		CreatedAt:     now,
	}
	if in.TargetPrice != nil {
		target := models.Amount(*in.TargetPrice)
		a.TargetPrice = &target
	}
	if !now.Before(start) {
		a.Status = models.AuctionActive
		a.IsActive = true
	}

	created, err := s.repo.CreateAuction(a)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: create auction: %w", err)
	}
	return created, nil
}

// validateAuction checks the auction form against its end type
func (s *BiddingService) validateAuction(in models.AuctionInput) error {
	if in.PropertyID <= 0 {
		return fmt.Errorf("service: %w - property is required", biddingerrors.ErrInvalidInput)
	}
	if in.StartPrice <= 0 || math.IsNaN(in.StartPrice) || math.IsInf(in.StartPrice, 0) {
		return fmt.Errorf("service: %w - start price must be positive", biddingerrors.ErrInvalidInput)
	}

	switch in.EndType {
	case models.EndByTime, models.EndByPrice, models.EndByBoth:
	default:
		return fmt.Errorf("service: %w - unknown end type %q", biddingerrors.ErrInvalidInput, in.EndType)
	}

	if in.EndType != models.EndByPrice {
		if in.EndTime == nil {
			return fmt.Errorf("service: %w - end time is required", biddingerrors.ErrInvalidInput)
		}
		start := in.StartTime
		if start.IsZero() {
			start = s.clock.Now()
		}
		if !in.EndTime.After(start) {
			return fmt.Errorf("service: %w - end time must be after start time", biddingerrors.ErrInvalidInput)
		}
	}
	if in.EndType != models.EndByTime {
		if in.TargetPrice == nil || *in.TargetPrice <= in.StartPrice {
			return fmt.Errorf("service: %w - target price must exceed start price", biddingerrors.ErrInvalidInput)
		}
	}
	return nil
}

// GetAuction returns an auction with its bid history
func (s *BiddingService) GetAuction(id int64) (models.Auction, error) {
	a, err := s.repo.GetAuction(id)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: get auction: %w", err)
	}
	return s.effective(a), nil
}

// ListAuctions returns auctions newest first; activeOnly filters on is_active when set
func (s *BiddingService) ListAuctions(activeOnly *bool) []models.Auction {
	all := s.repo.ListAuctions()
	out := make([]models.Auction, 0, len(all))
	for _, a := range all {
		a = s.effective(a)
		if activeOnly != nil && a.IsActive != *activeOnly {
			continue
		}
		out = append(out, a)
	}
	return out
}

// effective opens scheduled auctions whose start time has passed
func (s *BiddingService) effective(a models.Auction) models.Auction {
	if a.Status == models.AuctionScheduled && !s.clock.Now().Before(a.StartTime) {
		a.Status = models.AuctionActive
		a.IsActive = true
	}
	return a
}

// PlaceBid validates and records a user's bid; the checks run atomically
// with the write so concurrent bids cannot undercut each other.
func (s *BiddingService) PlaceBid(auctionID int64, bidder models.User, amount float64) (models.Bid, error) {
	if auctionID <= 0 || bidder.ID <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - missing auction or bidder", biddingerrors.ErrInvalidBid)
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", biddingerrors.ErrInvalidBid)
	}

	now := s.clock.Now().UTC()
	check := func(a models.Auction) error {
		a = s.effective(a)
		if !a.IsActive || a.Status != models.AuctionActive {
			return fmt.Errorf("service: auction %d: %w", a.ID, biddingerrors.ErrAuctionNotActive)
		}
		if a.IsOrganizer(bidder.ID) {
			return fmt.Errorf("service: auction %d: %w", a.ID, biddingerrors.ErrOrganizerBid)
		}
		if a.IsTimeBound() && a.EndTime != nil && !now.Before(*a.EndTime) {
			return fmt.Errorf("service: auction %d ended: %w", a.ID, biddingerrors.ErrAuctionNotActive)
		}
		if amount <= a.CurrentPrice.Float() {
			return fmt.Errorf("service: %w - current price is %.2f", biddingerrors.ErrBidTooLow, a.CurrentPrice.Float())
		}
		return nil
	}

	bid := models.Bid{
		BidderID:   bidder.ID,
		BidderName: bidder.FullName,
		Amount:     models.Amount(amount),
		BidTime:    now,
	}

	a, err := s.repo.RecordBidForAuction(auctionID, bid, check)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for auction %d by user %d: %w", auctionID, bidder.ID, err)
	}

	return a.Bids[0], nil
}
