package models

import "time"

// UserRole separates admins (who create lots and banners) from regular bidders
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// UserStatus tracks the account approval workflow. Only approved accounts may bid.
type UserStatus string

const (
	UserPending  UserStatus = "PENDING"
	UserApproved UserStatus = "APPROVED"
	UserRejected UserStatus = "REJECTED"
)

// AuctionStatus is the stored administrative state of a lot. Whether bidding is
// still open is derived from EndsAt and the wall clock, not from this field.
type AuctionStatus string

const (
	AuctionActive    AuctionStatus = "ACTIVE"
	AuctionCompleted AuctionStatus = "COMPLETED"
	AuctionCancelled AuctionStatus = "CANCELLED"
)

// Documents holds the identity papers collected at registration
type Documents struct {
	CPF       string `json:"cpf"`
	CNH       string `json:"cnh,omitempty"`
	Address   string `json:"address"`
	HasSelfie bool   `json:"has_selfie"`
	DocURL    string `json:"doc_url,omitempty"`
	SelfieURL string `json:"selfie_url,omitempty"`
}

// User represents a participant in the auction platform
type User struct {
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"password,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	Documents Documents  `json:"documents"`
	JoinedAt  time.Time  `json:"joined_at"`
}

// Auction represents a single auctioned lot of reverse-logistics goods.
// Bids are ordered newest first; CurrentBid is nil until the first accepted bid
// and afterwards always equals the amount of Bids[0].
type Auction struct {
	AuctionID     string        `json:"auction_id"`
	LotCode       string        `json:"lot_code"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Category      string        `json:"category"`
	Condition     string        `json:"condition"`
	Origin        string        `json:"origin"`
	ItemCount     int           `json:"item_count"`
	StartingPrice float64       `json:"starting_price"`
	CurrentBid    *float64      `json:"current_bid"`
	EndsAt        time.Time     `json:"ends_at"`
	Status        AuctionStatus `json:"status"`
	Bids          []Bid         `json:"bids"`
	ImageURLs     []string      `json:"image_urls"`
	VideoURL      string        `json:"video_url,omitempty"`
}

// Bid represents a user's accepted bid on an auction. Immutable once created.
type Bid struct {
	BidID      string    `json:"bid_id"`
	AuctionID  string    `json:"auction_id"`
	BidderID   string    `json:"bidder_id"`
	BidderName string    `json:"bidder_name"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// Banner is a purely presentational carousel entry
type Banner struct {
	BannerID string `json:"banner_id"`
	ImageURL string `json:"image_url"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
}

// CreateAuctionData carries the admin-supplied fields for a new lot
type CreateAuctionData struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Condition       string   `json:"condition"`
	Origin          string   `json:"origin"`
	ItemCount       int      `json:"item_count"`
	StartingPrice   float64  `json:"starting_price"`
	DurationInHours int      `json:"duration_in_hours"`
	ImageURLs       []string `json:"image_urls"`
	VideoURL        string   `json:"video_url,omitempty"`
}

// AISuggestion is the structured output of the listing-suggestion model call
type AISuggestion struct {
	SuggestedTitle       string  `json:"suggested_title"`
	SuggestedDescription string  `json:"suggested_description"`
	EstimatedMarketPrice float64 `json:"estimated_market_price"`
	Category             string  `json:"category"`
	ItemCount            int     `json:"item_count"`
	Origin               string  `json:"origin"`
	Condition            string  `json:"condition"`
}
