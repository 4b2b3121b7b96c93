package bidding

import (
	"fmt"
	"time"

	"reversa-auctions/internal/auctionerrors"
	"reversa-auctions/internal/lifecycle"
	"reversa-auctions/internal/models"
	"reversa-auctions/internal/repository"
	"reversa-auctions/utils"
)

// Accept validates a bid against an auction snapshot and, when every
// precondition holds, returns the auction with the bid applied. Preconditions
// are checked in order and the first failure wins:
//
//  1. actingUser present      -> ErrUnauthenticated
//  2. actingUser approved     -> ErrNotEligible
//  3. auction not ended       -> ErrAuctionClosed
//  4. amount >= minimum       -> BidTooLowError carrying the minimum
//
// Accept never mutates its input; the caller applies the returned auction
// atomically or discards it.
func Accept(auction models.Auction, actingUser *models.User, amount float64, now time.Time, rules lifecycle.Rules) (models.Auction, error) {
	if actingUser == nil {
		return models.Auction{}, auctionerrors.ErrUnauthenticated
	}
	if actingUser.Status != models.UserApproved {
		return models.Auction{}, auctionerrors.ErrNotEligible
	}
	if lifecycle.IsEnded(auction, now) {
		return models.Auction{}, auctionerrors.ErrAuctionClosed
	}
	minimum := lifecycle.MinimumNextBid(auction, rules)
	if amount < minimum {
		return models.Auction{}, &auctionerrors.BidTooLowError{Minimum: minimum}
	}

	bid := models.Bid{
		BidID:      utils.GenerateID(),
		AuctionID:  auction.AuctionID,
		BidderID:   actingUser.UserID,
		BidderName: actingUser.Name,
		Amount:     amount,
		CreatedAt:  now,
	}

	// Newest first; the head of the sequence is always the highest accepted bid
	auction.Bids = append([]models.Bid{bid}, auction.Bids...)
	auction.CurrentBid = &bid.Amount

	return auction, nil
}

// BiddingService orchestrates bid placement against the repository
type BiddingService struct {
	auctions repository.AuctionDB
	users    repository.UserDB
	rules    lifecycle.Rules
	now      func() time.Time
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(auctions repository.AuctionDB, users repository.UserDB, rules lifecycle.Rules) *BiddingService {
	return &BiddingService{
		auctions: auctions,
		users:    users,
		rules:    rules,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock, for tests
func (s *BiddingService) WithClock(now func() time.Time) *BiddingService {
	s.now = now
	return s
}

// PlaceBid validates and records a bid by the given user on the given
// auction. Validation and apply run inside the repository's single-writer
// update, so the minimum-bid check always sees the latest committed bid.
func (s *BiddingService) PlaceBid(auctionID, userID string, amount float64) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - missing auction ID", auctionerrors.ErrInvalidInput)
	}
	if userID == "" {
		return models.Auction{}, auctionerrors.ErrUnauthenticated
	}

	user, err := s.users.GetUser(userID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to resolve bidder %s: %w", userID, err)
	}

	now := s.now()
	updated, err := s.auctions.UpdateAuction(auctionID, func(a models.Auction) (models.Auction, error) {
		return Accept(a, &user, amount, now, s.rules)
	})
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: bid by user %s on auction %s rejected: %w", userID, auctionID, err)
	}

	utils.Info("bid accepted", map[string]any{
		"auction_id": auctionID,
		"user_id":    userID,
		"amount":     amount,
		"bid_count":  len(updated.Bids),
	})

	return updated, nil
}

// GetAuction returns a single auction by id
func (s *BiddingService) GetAuction(auctionID string) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - missing auction ID", auctionerrors.ErrInvalidInput)
	}

	auction, err := s.auctions.GetAuction(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// Winner returns the winning bid of an ended auction. Asking before the end
// time is rejected, since no winner is meaningful while bidding is open.
func (s *BiddingService) Winner(auctionID string) (models.Bid, error) {
	auction, err := s.GetAuction(auctionID)
	if err != nil {
		return models.Bid{}, err
	}

	now := s.now()
	if !lifecycle.IsEnded(auction, now) {
		return models.Bid{}, fmt.Errorf("service: auction %s still open: %w", auctionID, auctionerrors.ErrNoWinner)
	}
	winner, ok := lifecycle.Winner(auction, now)
	if !ok {
		return models.Bid{}, fmt.Errorf("service: auction %s ended without bids: %w", auctionID, auctionerrors.ErrNoWinner)
	}
	return winner, nil
}

// MinimumNextBid exposes the current bidding floor for display
func (s *BiddingService) MinimumNextBid(auctionID string) (float64, error) {
	auction, err := s.GetAuction(auctionID)
	if err != nil {
		return 0, err
	}
	return lifecycle.MinimumNextBid(auction, s.rules), nil
}
