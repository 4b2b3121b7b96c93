// Package lifecycle provides the pure auction lifecycle engine: stateless
// functions deriving an auction's temporal and bidding state from a snapshot
// and the current time. Nothing here mutates an auction or touches a clock.
package lifecycle

import (
	"time"

	"reversa-auctions/internal/models"
)

// Rules carries the configurable bidding parameters.
type Rules struct {
	// MinIncrement is the amount every new bid must exceed the current
	// highest by. This is the sole ordering rule between bids.
	MinIncrement float64
}

// DefaultRules uses the platform default increment of 50 currency units.
var DefaultRules = Rules{MinIncrement: 50}

// Informational fee rates shown to bidders. They are never part of bid
// acceptance; the accepted amount is always the raw bid.
const (
	AuctioneerFeeRate = 0.05
	AdminFeeRate      = 0.02
)

// CostBreakdown itemizes what a winning bid would cost the buyer in total.
type CostBreakdown struct {
	Bid           float64 `json:"bid"`
	AuctioneerFee float64 `json:"auctioneer_fee"`
	AdminFee      float64 `json:"admin_fee"`
	Total         float64 `json:"total"`
}

// RemainingTime returns how long until the auction ends, clamped at zero.
func RemainingTime(a models.Auction, now time.Time) time.Duration {
	remaining := a.EndsAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsEnded reports whether bidding has closed. Ended-ness is derived from the
// wall clock, never from a stored flag, so a missed timer can never leave an
// expired auction open.
func IsEnded(a models.Auction, now time.Time) bool {
	return RemainingTime(a, now) == 0
}

// MinimumNextBid returns the smallest amount the next bid must reach:
// the current highest bid (or the starting price when there are no bids yet)
// plus the configured increment.
func MinimumNextBid(a models.Auction, rules Rules) float64 {
	base := a.StartingPrice
	if a.CurrentBid != nil {
		base = *a.CurrentBid
	}
	return base + rules.MinIncrement
}

// Winner returns the winning bid of an ended auction. Bids are kept newest
// first, so the head of the sequence is the latest and highest accepted bid.
// Before the end time, or with no bids, there is no winner.
func Winner(a models.Auction, now time.Time) (models.Bid, bool) {
	if !IsEnded(a, now) || len(a.Bids) == 0 {
		return models.Bid{}, false
	}
	return a.Bids[0], true
}

// Quote itemizes the total buyer cost for a given bid amount.
func Quote(amount float64) CostBreakdown {
	auctioneer := amount * AuctioneerFeeRate
	admin := amount * AdminFeeRate
	return CostBreakdown{
		Bid:           amount,
		AuctioneerFee: auctioneer,
		AdminFee:      admin,
		Total:         amount + auctioneer + admin,
	}
}
