package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"realty-client/internal/clienterrors"
	"realty-client/internal/models"
)

// MaxPaymentProofSize caps the payment screenshot upload.
const MaxPaymentProofSize = 5 << 20

func auctionPath(id int64, suffix string) string {
	return fmt.Sprintf("/auctions/%d/%s", id, suffix)
}

func (c *Client) ListAuctions(ctx context.Context, params url.Values) (*models.Page[models.Auction], error) {
	var page models.Page[models.Auction]
	if err := c.get(ctx, "/auctions/", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAuction returns the auction with its bid history.
func (c *Client) GetAuction(ctx context.Context, id int64) (*models.Auction, error) {
	var a models.Auction
	if err := c.get(ctx, auctionPath(id, ""), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateAuction(ctx context.Context, in models.AuctionInput) (*models.Auction, error) {
	var a models.Auction
	if err := c.post(ctx, "/auctions/", in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) UpdateAuction(ctx context.Context, id int64, in models.AuctionInput) (*models.Auction, error) {
	var a models.Auction
	if err := c.Do(ctx, http.MethodPatch, auctionPath(id, ""), in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) DeleteAuction(ctx context.Context, id int64) error {
	return c.delete(ctx, auctionPath(id, ""))
}

// PlaceBid submits a bid. The response body is ignored; callers re-fetch
// the auction to observe the server-side state.
func (c *Client) PlaceBid(ctx context.Context, auctionID int64, amount float64) error {
	return c.post(ctx, auctionPath(auctionID, "bid/"), models.PlaceBidRequest{Amount: amount}, nil)
}

// InitiatePayment starts the listing-fee payment and returns the card
// details to transfer to.
func (c *Client) InitiatePayment(ctx context.Context, auctionID int64) (*models.PaymentInfo, error) {
	var info models.PaymentInfo
	if err := c.post(ctx, auctionPath(auctionID, "initiate-payment/"), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) PaymentInfo(ctx context.Context, auctionID int64) (*models.PaymentInfo, error) {
	var info models.PaymentInfo
	if err := c.get(ctx, auctionPath(auctionID, "payment-info/"), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UploadPaymentProof sends the transfer screenshot. Files over
// MaxPaymentProofSize are rejected before any request is made.
func (c *Client) UploadPaymentProof(ctx context.Context, auctionID int64, fileName string, content []byte) (*models.PaymentInfo, error) {
	if len(content) == 0 {
		return nil, clienterrors.NewValidation(clienterrors.ErrValidation, "screenshot is empty")
	}
	if len(content) > MaxPaymentProofSize {
		return nil, clienterrors.NewValidation(clienterrors.ErrFileTooLarge,
			"file is too large: maximum size is %d MB", MaxPaymentProofSize>>20)
	}

	body := &Multipart{Files: []models.Upload{{FieldName: "screenshot", FileName: fileName, Content: content}}}

	var info models.PaymentInfo
	if err := c.post(ctx, auctionPath(auctionID, "upload-screenshot/"), body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
