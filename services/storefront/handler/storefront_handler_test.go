package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	account "reversa-auctions/internal/accountService"
	"reversa-auctions/internal/auctionerrors"
	catalog "reversa-auctions/internal/catalogService"
	"reversa-auctions/internal/lifecycle"
	model "reversa-auctions/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Stub services driving the handlers from canned results

type stubBidding struct {
	auction model.Auction
	bid     model.Bid
	err     error
}

func (s *stubBidding) PlaceBid(auctionID, userID string, amount float64) (model.Auction, error) {
	return s.auction, s.err
}
func (s *stubBidding) GetAuction(auctionID string) (model.Auction, error) { return s.auction, s.err }
func (s *stubBidding) Winner(auctionID string) (model.Bid, error)         { return s.bid, s.err }

type stubCatalog struct {
	auction  model.Auction
	auctions []model.Auction
	banner   model.Banner
	banners  []model.Banner
	err      error
}

func (s *stubCatalog) CreateAuction(actingUserID string, data model.CreateAuctionData) (model.Auction, error) {
	return s.auction, s.err
}
func (s *stubCatalog) ListAuctions(tab, query string) ([]model.Auction, error) {
	return s.auctions, s.err
}
func (s *stubCatalog) Options() catalog.Options {
	return catalog.Options{Categories: []string{"Mixed Lot"}}
}
func (s *stubCatalog) ListBanners() ([]model.Banner, error) { return s.banners, s.err }
func (s *stubCatalog) CreateBanner(actingUserID, imageURL, title, subtitle string) (model.Banner, error) {
	return s.banner, s.err
}

type stubAccount struct {
	user model.User
	err  error
}

func (s *stubAccount) Register(data account.RegistrationData) (model.User, error) {
	return s.user, s.err
}
func (s *stubAccount) Authenticate(login, password string) (model.User, error) {
	return s.user, s.err
}
func (s *stubAccount) SetStatus(actingUserID, userID string, status model.UserStatus) (model.User, error) {
	return s.user, s.err
}

type stubSuggest struct {
	suggestion *model.AISuggestion
	image      string
}

func (s *stubSuggest) SuggestListing(ctx context.Context, input string) *model.AISuggestion {
	return s.suggestion
}
func (s *stubSuggest) GenerateBannerImage(ctx context.Context, theme string) string { return s.image }

func newTestRouter(bidding BiddingService, catalog CatalogService, acct AccountService, suggest SuggestClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStorefrontHandler(bidding, catalog, acct, suggest, lifecycle.DefaultRules)

	router := gin.New()
	router.POST("/auctions", h.CreateAuctionHandler)
	router.GET("/auctions", h.ListAuctionsHandler)
	router.GET("/auctions/:auction_id", h.GetAuctionHandler)
	router.GET("/auctions/:auction_id/winner", h.GetWinnerHandler)
	router.POST("/auctions/:auction_id/bids", h.PlaceBidHandler)
	router.POST("/users", h.RegisterHandler)
	router.POST("/login", h.LoginHandler)
	router.PATCH("/users/:user_id/status", h.SetUserStatusHandler)
	router.GET("/catalog/options", h.CatalogOptionsHandler)
	router.GET("/banners", h.ListBannersHandler)
	router.POST("/banners", h.CreateBannerHandler)
	router.POST("/suggestions", h.SuggestListingHandler)
	router.POST("/banners/image", h.GenerateBannerImageHandler)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleAuction() model.Auction {
	amount := 1550.0
	return model.Auction{
		AuctionID:     "lot1",
		LotCode:       "REV-1042",
		Title:         "Mixed electronics lot",
		StartingPrice: 1500,
		CurrentBid:    &amount,
		EndsAt:        time.Now().UTC().Add(time.Hour),
		Status:        model.AuctionActive,
		Bids: []model.Bid{
			{BidID: "b1", AuctionID: "lot1", BidderID: "u1", BidderName: "Alice", Amount: amount},
		},
	}
}

// Test PlaceBidHandler status mapping
func TestPlaceBidHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		serviceErr error
		wantStatus int
	}{
		{name: "accepted", body: gin.H{"user_id": "u1", "amount": 1550}, wantStatus: http.StatusCreated},
		{name: "missing_body_fields", body: gin.H{"amount": 1550}, wantStatus: http.StatusBadRequest},
		{name: "non_positive_amount", body: gin.H{"user_id": "u1", "amount": -5}, wantStatus: http.StatusBadRequest},
		{name: "unauthenticated", body: gin.H{"user_id": "u1", "amount": 1550}, serviceErr: auctionerrors.ErrUnauthenticated, wantStatus: http.StatusUnauthorized},
		{name: "not_eligible", body: gin.H{"user_id": "u1", "amount": 1550}, serviceErr: auctionerrors.ErrNotEligible, wantStatus: http.StatusForbidden},
		{name: "auction_closed", body: gin.H{"user_id": "u1", "amount": 1550}, serviceErr: auctionerrors.ErrAuctionClosed, wantStatus: http.StatusConflict},
		{name: "unknown_auction", body: gin.H{"user_id": "u1", "amount": 1550}, serviceErr: auctionerrors.ErrAuctionNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(
				&stubBidding{auction: sampleAuction(), err: tc.serviceErr},
				&stubCatalog{}, &stubAccount{}, &stubSuggest{},
			)

			w := doRequest(t, router, http.MethodPost, "/auctions/lot1/bids", tc.body)
			require.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

// A too-low bid response carries the required minimum in its data payload
func TestPlaceBidHandler_BidTooLowCarriesMinimum(t *testing.T) {
	router := newTestRouter(
		&stubBidding{err: &auctionerrors.BidTooLowError{Minimum: 1600}},
		&stubCatalog{}, &stubAccount{}, &stubSuggest{},
	)

	w := doRequest(t, router, http.MethodPost, "/auctions/lot1/bids", gin.H{"user_id": "u1", "amount": 1560})
	require.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "rejection must carry a data payload")
	require.Equal(t, 1600.0, data["minimum_bid"])
}

// Auction responses include the derived lifecycle fields
func TestGetAuctionHandler_DerivedFields(t *testing.T) {
	router := newTestRouter(
		&stubBidding{auction: sampleAuction()},
		&stubCatalog{}, &stubAccount{}, &stubSuggest{},
	)

	w := doRequest(t, router, http.MethodGet, "/auctions/lot1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	require.Equal(t, false, data["is_ended"])
	require.Equal(t, 1600.0, data["minimum_next_bid"])
	require.Greater(t, data["remaining_seconds"], 0.0)

	breakdown := data["cost_breakdown"].(map[string]any)
	require.InDelta(t, 77.5, breakdown["auctioneer_fee"], 1e-9)
	require.InDelta(t, 31.0, breakdown["admin_fee"], 1e-9)
	require.InDelta(t, 1658.5, breakdown["total"], 1e-9)
}

// Test GetWinnerHandler
func TestGetWinnerHandler(t *testing.T) {
	t.Run("winner_found", func(t *testing.T) {
		router := newTestRouter(
			&stubBidding{bid: model.Bid{BidID: "b1", BidderName: "X", Amount: 4000}},
			&stubCatalog{}, &stubAccount{}, &stubSuggest{},
		)

		w := doRequest(t, router, http.MethodGet, "/auctions/lot1/winner", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		require.Equal(t, "X", data["bidder_name"])
	})

	t.Run("no_winner_yet", func(t *testing.T) {
		router := newTestRouter(
			&stubBidding{err: auctionerrors.ErrNoWinner},
			&stubCatalog{}, &stubAccount{}, &stubSuggest{},
		)

		w := doRequest(t, router, http.MethodGet, "/auctions/lot1/winner", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Test CreateAuctionHandler status mapping
func TestCreateAuctionHandler(t *testing.T) {
	valid := gin.H{
		"user_id":           "admin",
		"title":             "Lot of 10x tablets",
		"item_count":        10,
		"starting_price":    500,
		"duration_in_hours": 48,
	}

	tests := []struct {
		name       string
		body       any
		serviceErr error
		wantStatus int
	}{
		{name: "created", body: valid, wantStatus: http.StatusCreated},
		{name: "missing_title", body: gin.H{"user_id": "admin", "item_count": 1, "duration_in_hours": 1}, wantStatus: http.StatusBadRequest},
		{name: "non_admin", body: valid, serviceErr: auctionerrors.ErrNotAllowed, wantStatus: http.StatusForbidden},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(
				&stubBidding{},
				&stubCatalog{auction: sampleAuction(), err: tc.serviceErr},
				&stubAccount{}, &stubSuggest{},
			)

			w := doRequest(t, router, http.MethodPost, "/auctions", tc.body)
			require.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

// Registration returns the public user shape without the password
func TestRegisterHandler(t *testing.T) {
	router := newTestRouter(
		&stubBidding{}, &stubCatalog{},
		&stubAccount{user: model.User{UserID: "u1", Name: "Alice", Email: "alice@example.com", Password: "secret", Status: model.UserPending, Role: model.RoleUser}},
		&stubSuggest{},
	)

	w := doRequest(t, router, http.MethodPost, "/users", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret",
		"cpf":      "123.456.789-00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	require.Equal(t, "PENDING", data["status"])
	require.NotContains(t, data, "password")
}

// Test LoginHandler
func TestLoginHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router := newTestRouter(
			&stubBidding{}, &stubCatalog{},
			&stubAccount{user: model.User{UserID: "u1", Name: "Alice"}},
			&stubSuggest{},
		)

		w := doRequest(t, router, http.MethodPost, "/login", gin.H{"login": "Alice", "password": "secret"})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad_credentials", func(t *testing.T) {
		router := newTestRouter(
			&stubBidding{}, &stubCatalog{},
			&stubAccount{err: auctionerrors.ErrInvalidCredentials},
			&stubSuggest{},
		)

		w := doRequest(t, router, http.MethodPost, "/login", gin.H{"login": "Alice", "password": "nope"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// Suggestion endpoint: nil suggestion is a 200 with no data, never an error
func TestSuggestListingHandler(t *testing.T) {
	t.Run("suggestion_available", func(t *testing.T) {
		router := newTestRouter(&stubBidding{}, &stubCatalog{}, &stubAccount{},
			&stubSuggest{suggestion: &model.AISuggestion{SuggestedTitle: "Lot of 12x Tablets", Category: "Smartphones & Tablets"}},
		)

		w := doRequest(t, router, http.MethodPost, "/suggestions", gin.H{"description": "twelve tablets"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		require.Equal(t, "Lot of 12x Tablets", data["suggested_title"])
	})

	t.Run("no_suggestion", func(t *testing.T) {
		router := newTestRouter(&stubBidding{}, &stubCatalog{}, &stubAccount{}, &stubSuggest{})

		w := doRequest(t, router, http.MethodPost, "/suggestions", gin.H{"description": "anything"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "no suggestion available", resp["message"])
		require.Nil(t, resp["data"])
	})
}
