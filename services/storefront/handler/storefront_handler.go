package handler

import (
	"context"
	"net/http"
	"time"

	account "reversa-auctions/internal/accountService"
	catalog "reversa-auctions/internal/catalogService"
	"reversa-auctions/internal/lifecycle"
	model "reversa-auctions/internal/models"
	"reversa-auctions/services/storefront/helpers"
	"reversa-auctions/utils"

	"github.com/gin-gonic/gin"
)

// Service interfaces consumed by the handlers. Concrete implementations live
// under internal/; the handlers only need this surface.

type BiddingService interface {
	PlaceBid(auctionID, userID string, amount float64) (model.Auction, error)
	GetAuction(auctionID string) (model.Auction, error)
	Winner(auctionID string) (model.Bid, error)
}

type CatalogService interface {
	CreateAuction(actingUserID string, data model.CreateAuctionData) (model.Auction, error)
	ListAuctions(tab, query string) ([]model.Auction, error)
	Options() catalog.Options
	ListBanners() ([]model.Banner, error)
	CreateBanner(actingUserID, imageURL, title, subtitle string) (model.Banner, error)
}

type AccountService interface {
	Register(data account.RegistrationData) (model.User, error)
	Authenticate(login, password string) (model.User, error)
	SetStatus(actingUserID, userID string, status model.UserStatus) (model.User, error)
}

// SuggestClient is the AI suggestion boundary; nil or empty results mean
// "no suggestion available" and are never treated as errors.
type SuggestClient interface {
	SuggestListing(ctx context.Context, input string) *model.AISuggestion
	GenerateBannerImage(ctx context.Context, theme string) string
}

// StorefrontHandler exposes the platform operations over HTTP
type StorefrontHandler struct {
	bidding BiddingService
	catalog CatalogService
	account AccountService
	suggest SuggestClient
	rules   lifecycle.Rules
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(bidding BiddingService, catalog CatalogService, account AccountService, suggest SuggestClient, rules lifecycle.Rules) *StorefrontHandler {
	return &StorefrontHandler{
		bidding: bidding,
		catalog: catalog,
		account: account,
		suggest: suggest,
		rules:   rules,
	}
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *StorefrontHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	auction, err := h.bidding.PlaceBid(auctionID, req.UserID, req.Amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{
			"auction_id": auctionID,
			"user_id":    req.UserID,
			"amount":     req.Amount,
		})
		return
	}

	resp := helpers.FromAuction(auction, time.Now().UTC(), h.rules)
	utils.JSONResponse(c, http.StatusCreated, resp, "bid accepted")
	helpers.LogSuccess("PlaceBidHandler", "bid accepted", map[string]any{
		"auction_id": auctionID,
		"user_id":    req.UserID,
		"amount":     req.Amount,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *StorefrontHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	auction, err := h.bidding.GetAuction(auctionID)
	if err != nil {
		helpers.RespondError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	resp := helpers.FromAuction(auction, time.Now().UTC(), h.rules)
	utils.JSONResponse(c, http.StatusOK, resp, "auction retrieved successfully")
}

// ListAuctionsHandler handles GET /auctions?tab=open|closed&q=...
func (h *StorefrontHandler) ListAuctionsHandler(c *gin.Context) {
	tab := c.Query("tab")
	query := c.Query("q")

	auctions, err := h.catalog.ListAuctions(tab, query)
	if err != nil {
		helpers.RespondError(c, "ListAuctionsHandler", err, map[string]any{"tab": tab, "q": query})
		return
	}

	resp := helpers.FromAuctions(auctions, time.Now().UTC(), h.rules)
	utils.JSONResponse(c, http.StatusOK, resp, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"tab":   tab,
		"q":     query,
		"count": len(resp),
	})
}

// GetWinnerHandler handles GET /auctions/:auction_id/winner
func (h *StorefrontHandler) GetWinnerHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	winner, err := h.bidding.Winner(auctionID)
	if err != nil {
		helpers.RespondError(c, "GetWinnerHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, winner, "winner retrieved successfully")
	helpers.LogSuccess("GetWinnerHandler", "winner retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"bidder_id":  winner.BidderID,
		"amount":     winner.Amount,
	})
}

// CreateAuctionHandler handles POST /auctions
func (h *StorefrontHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auction, err := h.catalog.CreateAuction(req.UserID, model.CreateAuctionData{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Condition:       req.Condition,
		Origin:          req.Origin,
		ItemCount:       req.ItemCount,
		StartingPrice:   req.StartingPrice,
		DurationInHours: req.DurationInHours,
		ImageURLs:       req.ImageURLs,
		VideoURL:        req.VideoURL,
	})
	if err != nil {
		helpers.RespondError(c, "CreateAuctionHandler", err, map[string]any{"user_id": req.UserID})
		return
	}

	resp := helpers.FromAuction(auction, time.Now().UTC(), h.rules)
	utils.JSONResponse(c, http.StatusCreated, resp, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": auction.AuctionID,
		"lot_code":   auction.LotCode,
	})
}

// CatalogOptionsHandler handles GET /catalog/options
func (h *StorefrontHandler) CatalogOptionsHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, h.catalog.Options(), "catalog options retrieved successfully")
}

// RegisterHandler handles POST /users
func (h *StorefrontHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.account.Register(account.RegistrationData{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Documents: model.Documents{
			CPF:     req.CPF,
			CNH:     req.CNH,
			Address: req.Address,
		},
	})
	if err != nil {
		helpers.RespondError(c, "RegisterHandler", err, map[string]any{"email": req.Email})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.FromUser(user), "registration submitted, awaiting approval")
	helpers.LogSuccess("RegisterHandler", "registration submitted", map[string]any{"user_id": user.UserID})
}

// LoginHandler handles POST /login
func (h *StorefrontHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	user, err := h.account.Authenticate(req.Login, req.Password)
	if err != nil {
		helpers.RespondError(c, "LoginHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.FromUser(user), "login successful")
	helpers.LogSuccess("LoginHandler", "login successful", map[string]any{"user_id": user.UserID})
}

// SetUserStatusHandler handles PATCH /users/:user_id/status
func (h *StorefrontHandler) SetUserStatusHandler(c *gin.Context) {
	targetID := c.Param("user_id")

	var req helpers.SetUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetUserStatusHandler", err)
		return
	}

	user, err := h.account.SetStatus(req.ActingUserID, targetID, model.UserStatus(req.Status))
	if err != nil {
		helpers.RespondError(c, "SetUserStatusHandler", err, map[string]any{
			"target_user": targetID,
			"status":      req.Status,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.FromUser(user), "user status updated")
	helpers.LogSuccess("SetUserStatusHandler", "user status updated", map[string]any{
		"user_id": user.UserID,
		"status":  req.Status,
	})
}

// ListBannersHandler handles GET /banners
func (h *StorefrontHandler) ListBannersHandler(c *gin.Context) {
	banners, err := h.catalog.ListBanners()
	if err != nil {
		helpers.RespondError(c, "ListBannersHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, banners, "banners retrieved successfully")
}

// CreateBannerHandler handles POST /banners
func (h *StorefrontHandler) CreateBannerHandler(c *gin.Context) {
	var req helpers.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateBannerHandler", err)
		return
	}

	banner, err := h.catalog.CreateBanner(req.UserID, req.ImageURL, req.Title, req.Subtitle)
	if err != nil {
		helpers.RespondError(c, "CreateBannerHandler", err, map[string]any{"user_id": req.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, banner, "banner created successfully")
	helpers.LogSuccess("CreateBannerHandler", "banner created successfully", map[string]any{"banner_id": banner.BannerID})
}

// SuggestListingHandler handles POST /suggestions. A missing suggestion is a
// normal outcome, not an error.
func (h *StorefrontHandler) SuggestListingHandler(c *gin.Context) {
	var req helpers.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SuggestListingHandler", err)
		return
	}

	suggestion := h.suggest.SuggestListing(c.Request.Context(), req.Description)
	if suggestion == nil {
		utils.JSONResponse(c, http.StatusOK, nil, "no suggestion available")
		return
	}

	utils.JSONResponse(c, http.StatusOK, suggestion, "suggestion generated successfully")
	helpers.LogSuccess("SuggestListingHandler", "suggestion generated", map[string]any{
		"category": suggestion.Category,
	})
}

// GenerateBannerImageHandler handles POST /banners/image
func (h *StorefrontHandler) GenerateBannerImageHandler(c *gin.Context) {
	var req helpers.BannerImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "GenerateBannerImageHandler", err)
		return
	}

	image := h.suggest.GenerateBannerImage(c.Request.Context(), req.Theme)
	if image == "" {
		utils.JSONResponse(c, http.StatusOK, nil, "no image available")
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"image_url": image}, "banner image generated successfully")
}
