package helpers

import (
	"time"

	"reversa-auctions/internal/lifecycle"
	"reversa-auctions/internal/models"
)

// Request DTOs

type PlaceBidRequest struct {
	UserID string  `json:"user_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type CreateAuctionRequest struct {
	UserID          string   `json:"user_id" binding:"required"`
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Condition       string   `json:"condition"`
	Origin          string   `json:"origin"`
	ItemCount       int      `json:"item_count" binding:"required,gt=0"`
	StartingPrice   float64  `json:"starting_price" binding:"gte=0"`
	DurationInHours int      `json:"duration_in_hours" binding:"required,gt=0"`
	ImageURLs       []string `json:"image_urls"`
	VideoURL        string   `json:"video_url"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	CPF      string `json:"cpf" binding:"required"`
	CNH      string `json:"cnh"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SetUserStatusRequest struct {
	ActingUserID string `json:"acting_user_id" binding:"required"`
	Status       string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

type CreateBannerRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	ImageURL string `json:"image_url" binding:"required"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type SuggestionRequest struct {
	Description string `json:"description" binding:"required"`
}

type BannerImageRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// Response DTOs

// AuctionResponse is an auction snapshot plus the derived lifecycle values
// the storefront renders: remaining time, ended-ness and the bidding floor.
type AuctionResponse struct {
	models.Auction
	RemainingSeconds int64                    `json:"remaining_seconds"`
	IsEnded          bool                     `json:"is_ended"`
	MinimumNextBid   float64                  `json:"minimum_next_bid"`
	CostBreakdown    *lifecycle.CostBreakdown `json:"cost_breakdown,omitempty"`
}

// FromAuction derives the presentation fields from an auction snapshot
func FromAuction(a models.Auction, now time.Time, rules lifecycle.Rules) AuctionResponse {
	resp := AuctionResponse{
		Auction:          a,
		RemainingSeconds: int64(lifecycle.RemainingTime(a, now) / time.Second),
		IsEnded:          lifecycle.IsEnded(a, now),
		MinimumNextBid:   lifecycle.MinimumNextBid(a, rules),
	}
	if a.CurrentBid != nil {
		quote := lifecycle.Quote(*a.CurrentBid)
		resp.CostBreakdown = &quote
	}
	return resp
}

// FromAuctions maps a list of auctions to responses
func FromAuctions(auctions []models.Auction, now time.Time, rules lifecycle.Rules) []AuctionResponse {
	out := make([]AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		out = append(out, FromAuction(a, now, rules))
	}
	return out
}

// UserResponse exposes an account without its password
type UserResponse struct {
	UserID   string            `json:"user_id"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone,omitempty"`
	Role     models.UserRole   `json:"role"`
	Status   models.UserStatus `json:"status"`
	JoinedAt string            `json:"joined_at"`
}

// FromUser maps a user to its public representation
func FromUser(u models.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		Status:   u.Status,
		JoinedAt: u.JoinedAt.UTC().Format(time.RFC3339),
	}
}
