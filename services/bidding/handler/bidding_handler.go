package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"realty-client/internal/models"
	"realty-client/services/bidding/helpers"
	"realty-client/utils"
)

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_service.go -package=handler

type BiddingServiceInterface interface {
	CreateAuction(organizer models.User, in models.AuctionInput) (models.Auction, error)
	GetAuction(id int64) (models.Auction, error)
	ListAuctions(activeOnly *bool) []models.Auction
	PlaceBid(auctionID int64, bidder models.User, amount float64) (models.Bid, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// ListAuctionsHandler handles GET /auctions/
func (h *BiddingHandler) ListAuctionsHandler(c *gin.Context) {
	var activeOnly *bool
	if raw := c.Query("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			helpers.HandleBindError(c, "ListAuctionsHandler", err)
			return
		}
		activeOnly = &v
	}

	auctions := h.service.ListAuctions(activeOnly)

	utils.JSONResponse(c, http.StatusOK, helpers.NewPage(auctions))
	helpers.LogSuccess("ListAuctionsHandler", "auctions listed", map[string]any{"count": len(auctions)})
}

// GetAuctionHandler handles GET /auctions/:id/
func (h *BiddingHandler) GetAuctionHandler(c *gin.Context) {
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return
	}

	a, err := h.service.GetAuction(id)
	if err != nil {
		helpers.RespondError(c, "GetAuctionHandler", err, map[string]any{"auction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, a)
}

// CreateAuctionHandler handles POST /auctions/
func (h *BiddingHandler) CreateAuctionHandler(c *gin.Context) {
	var req models.AuctionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	organizer, _ := helpers.CurrentUser(c)
	a, err := h.service.CreateAuction(organizer, req)
	if err != nil {
		helpers.RespondError(c, "CreateAuctionHandler", err, map[string]any{"property_id": req.PropertyID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, a)
	helpers.LogSuccess("CreateAuctionHandler", "auction created", map[string]any{
		"auction_id":  a.ID,
		"property_id": a.PropertyID,
		"organizer":   organizer.ID,
	})
}

// PlaceBidHandler handles POST /auctions/:id/bid/
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Не указана сумма ставки")
		utils.Warn("PlaceBidHandler: binding error", map[string]any{"error": err.Error()})
		return
	}

	bidder, _ := helpers.CurrentUser(c)
	bid, err := h.service.PlaceBid(id, bidder, *req.Amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{
			"auction_id": id,
			"user_id":    bidder.ID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, bid)
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": id,
		"user_id":    bidder.ID,
		"amount":     bid.Amount,
	})
}
