package bidding

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"realty-client/internal/biddingerrors"
	"realty-client/internal/models"
	"realty-client/internal/repository"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// applyBid mimics the repository: run check against stored, then record
func applyBid(stored models.Auction) func(int64, models.Bid, repository.BidCheck) (models.Auction, error) {
	return func(_ int64, bid models.Bid, check repository.BidCheck) (models.Auction, error) {
		if check != nil {
			if err := check(stored); err != nil {
				return models.Auction{}, err
			}
		}
		stored.Bids = append([]models.Bid{bid}, stored.Bids...)
		stored.CurrentPrice = bid.Amount
		return stored, nil
	}
}

// Tests PlaceBid
func TestBiddingService_PlaceBid(t *testing.T) {
	end := testNow.Add(time.Hour)
	past := testNow.Add(-time.Minute)

	active := models.Auction{
		ID:           1,
		OrganizerID:  10,
		CurrentPrice: 100,
		EndType:      models.EndByTime,
		EndTime:      &end,
		Status:       models.AuctionActive,
		IsActive:     true,
	}
	ended := active
	ended.EndTime = &past
	completed := active
	completed.Status, completed.IsActive = models.AuctionCompleted, false

	bidder := models.User{ID: 20, FullName: "Bidder"}
	organizer := models.User{ID: 10, FullName: "Organizer"}

	// Table-driven test cases
	tests := []struct {
		name          string
		auctionID     int64
		user          models.User
		amount        float64
		stored        *models.Auction
		repoErr       error
		expectedError error
	}{
		{name: "valid_bid", auctionID: 1, user: bidder, amount: 150, stored: &active},
		{name: "max_float", auctionID: 1, user: bidder, amount: math.MaxFloat64, stored: &active},
		{name: "zero_amount", auctionID: 1, user: bidder, amount: 0, expectedError: biddingerrors.ErrInvalidBid},
		{name: "negative_amount", auctionID: 1, user: bidder, amount: -5, expectedError: biddingerrors.ErrInvalidBid},
		{name: "nan_amount", auctionID: 1, user: bidder, amount: math.NaN(), expectedError: biddingerrors.ErrInvalidBid},
		{name: "missing_auction_id", auctionID: 0, user: bidder, amount: 150, expectedError: biddingerrors.ErrInvalidBid},
		{name: "anonymous_bidder", auctionID: 1, user: models.User{}, amount: 150, expectedError: biddingerrors.ErrInvalidBid},
		{name: "equal_to_current", auctionID: 1, user: bidder, amount: 100, stored: &active, expectedError: biddingerrors.ErrBidTooLow},
		{name: "below_current", auctionID: 1, user: bidder, amount: 80, stored: &active, expectedError: biddingerrors.ErrBidTooLow},
		{name: "organizer_bid", auctionID: 1, user: organizer, amount: 150, stored: &active, expectedError: biddingerrors.ErrOrganizerBid},
		{name: "auction_ended", auctionID: 1, user: bidder, amount: 150, stored: &ended, expectedError: biddingerrors.ErrAuctionNotActive},
		{name: "auction_completed", auctionID: 1, user: bidder, amount: 150, stored: &completed, expectedError: biddingerrors.ErrAuctionNotActive},
		{name: "auction_not_found", auctionID: 1, user: bidder, amount: 150, repoErr: biddingerrors.ErrAuctionNotFound, expectedError: biddingerrors.ErrAuctionNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockRepo := repository.NewMockAuctionDB(ctrl)
			service := NewBiddingService(mockRepo, clockwork.NewFakeClockAt(testNow))

			switch {
			case tc.repoErr != nil:
				mockRepo.EXPECT().RecordBidForAuction(tc.auctionID, gomock.Any(), gomock.Any()).Return(models.Auction{}, tc.repoErr)
			case tc.stored != nil:
				mockRepo.EXPECT().RecordBidForAuction(tc.auctionID, gomock.Any(), gomock.Any()).DoAndReturn(applyBid(*tc.stored))
			}

			bid, err := service.PlaceBid(tc.auctionID, tc.user, tc.amount)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.user.ID, bid.BidderID)
			require.Equal(t, tc.user.FullName, bid.BidderName)
			require.Equal(t, tc.amount, bid.Amount.Float())
			require.Equal(t, testNow, bid.BidTime)
		})
	}
}

// Tests CreateAuction validation and ownership
func TestBiddingService_CreateAuction(t *testing.T) {
	end := testNow.Add(24 * time.Hour)
	target := 500.0
	low := 50.0
	owner := models.User{ID: 10, FullName: "Owner"}
	property := models.Property{ID: 7, Title: "Flat", OwnerID: owner.ID}

	tests := []struct {
		name          string
		user          models.User
		in            models.AuctionInput
		expectRepo    bool
		expectedError error
		wantStatus    models.AuctionStatus
	}{
		{
			name:       "time_bound",
			user:       owner,
			in:         models.AuctionInput{PropertyID: 7, StartPrice: 100, EndType: models.EndByTime, EndTime: &end},
			expectRepo: true,
			wantStatus: models.AuctionActive,
		},
		{
			name:       "price_bound",
			user:       owner,
			in:         models.AuctionInput{PropertyID: 7, StartPrice: 100, EndType: models.EndByPrice, TargetPrice: &target},
			expectRepo: true,
			wantStatus: models.AuctionActive,
		},
		{
			name:       "scheduled",
			user:       owner,
			in:         models.AuctionInput{PropertyID: 7, StartPrice: 100, EndType: models.EndByTime, StartTime: testNow.Add(time.Hour), EndTime: &end},
			expectRepo: true,
			wantStatus: models.AuctionScheduled,
		},
		{
			name:          "missing_end_time",
			user:          owner,
			in:            models.AuctionInput{PropertyID: 7, StartPrice: 100, EndType: models.EndByTime},
			expectedError: biddingerrors.ErrInvalidInput,
		},
		{
			name:          "target_below_start",
			user:          owner,
			in:            models.AuctionInput{PropertyID: 7, StartPrice: 100, EndType: models.EndByBoth, EndTime: &end, TargetPrice: &low},
			expectedError: biddingerrors.ErrInvalidInput,
		},
		{
			name:          "unknown_end_type",
			user:          owner,
			in:            models.AuctionInput{PropertyID: 7, StartPrice: 100, EndType: "never"},
			expectedError: biddingerrors.ErrInvalidInput,
		},
		{
			name:          "zero_start_price",
			user:          owner,
			in:            models.AuctionInput{PropertyID: 7, EndType: models.EndByTime, EndTime: &end},
			expectedError: biddingerrors.ErrInvalidInput,
		},
		{
			name:          "not_owner",
			user:          models.User{ID: 99},
			in:            models.AuctionInput{PropertyID: 7, StartPrice: 100, EndType: models.EndByTime, EndTime: &end},
			expectedError: biddingerrors.ErrForbidden,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockRepo := repository.NewMockAuctionDB(ctrl)
			service := NewBiddingService(mockRepo, clockwork.NewFakeClockAt(testNow))

			if tc.expectRepo || errors.Is(tc.expectedError, biddingerrors.ErrForbidden) {
				mockRepo.EXPECT().GetProperty(int64(7)).Return(property, nil)
			}
			if tc.expectRepo {
				mockRepo.EXPECT().CreateAuction(gomock.Any()).DoAndReturn(func(a models.Auction) (models.Auction, error) {
					a.ID = 1
					return a, nil
				})
			}

			a, err := service.CreateAuction(tc.user, tc.in)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantStatus, a.Status)
			require.Equal(t, tc.wantStatus == models.AuctionActive, a.IsActive)
			require.Equal(t, tc.in.StartPrice, a.CurrentPrice.Float())
			require.Equal(t, "Flat", a.PropertyTitle)
		})
	}
}

// Scheduled auctions open once their start time passes
func TestBiddingService_ScheduledAuctionOpens(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := repository.NewMockAuctionDB(ctrl)
	clock := clockwork.NewFakeClockAt(testNow)
	service := NewBiddingService(mockRepo, clock)

	stored := models.Auction{ID: 1, StartTime: testNow.Add(time.Minute), Status: models.AuctionScheduled}
	mockRepo.EXPECT().GetAuction(int64(1)).Return(stored, nil).Times(2)

	a, err := service.GetAuction(1)
	require.NoError(t, err)
	require.Equal(t, models.AuctionScheduled, a.Status)

	clock.Advance(time.Minute)

	a, err = service.GetAuction(1)
	require.NoError(t, err)
	require.Equal(t, models.AuctionActive, a.Status)
	require.True(t, a.IsActive)
}

// Tests ListAuctions filtering on is_active
func TestBiddingService_ListAuctions(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewBiddingService(mockRepo, clockwork.NewFakeClockAt(testNow))

	auctions := []models.Auction{
		{ID: 2, Status: models.AuctionActive, IsActive: true},
		{ID: 1, Status: models.AuctionCompleted},
	}
	mockRepo.EXPECT().ListAuctions().Return(auctions).Times(3)

	require.Len(t, service.ListAuctions(nil), 2)

	yes, no := true, false
	got := service.ListAuctions(&yes)
	require.Len(t, got, 1)
	require.Equal(t, int64(2), got[0].ID)

	got = service.ListAuctions(&no)
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].ID)
}

// Concurrent bids through the real store keep the price increasing
func TestBiddingService_ConcurrentBidsOnMemoryRepo(t *testing.T) {
	repo := repository.NewMemoryRepo()
	service := NewBiddingService(repo, clockwork.NewFakeClockAt(testNow))

	organizer, err := repo.CreateUser(repository.UserRecord{User: models.User{Username: "org", Email: "org@example.com", Role: models.RoleSeller}})
	require.NoError(t, err)
	p, err := repo.CreateProperty(models.Property{Title: "Flat", OwnerID: organizer.ID})
	require.NoError(t, err)
	end := testNow.Add(time.Hour)
	a, err := service.CreateAuction(organizer.User, models.AuctionInput{PropertyID: p.ID, StartPrice: 1, EndType: models.EndByTime, EndTime: &end})
	require.NoError(t, err)

	const bidders = 20
	errs := make(chan error, bidders)
	for i := 1; i <= bidders; i++ {
		go func(i int) {
			_, err := service.PlaceBid(a.ID, models.User{ID: int64(100 + i)}, float64(i*10))
			errs <- err
		}(i)
	}

	accepted := 0
	for i := 0; i < bidders; i++ {
		err := <-errs
		if err == nil {
			accepted++
			continue
		}
		require.ErrorIs(t, err, biddingerrors.ErrBidTooLow)
	}
	require.GreaterOrEqual(t, accepted, 1)

	got, err := service.GetAuction(a.ID)
	require.NoError(t, err)
	require.Equal(t, float64(bidders*10), got.CurrentPrice.Float())
	require.Len(t, got.Bids, accepted)
}
