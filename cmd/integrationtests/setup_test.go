package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	account "reversa-auctions/internal/accountService"
	bidding "reversa-auctions/internal/biddingService"
	catalog "reversa-auctions/internal/catalogService"
	"reversa-auctions/internal/lifecycle"
	model "reversa-auctions/internal/models"
	"reversa-auctions/internal/repository"
	"reversa-auctions/internal/server"
	"reversa-auctions/internal/storage"
	"reversa-auctions/internal/suggest"
	"reversa-auctions/services/storefront/handler"

	"github.com/gin-gonic/gin"
)

// SetupTestRouter initializes the full HTTP stack over an in-memory repository
// seeded with the given auctions and users. The Gemini client is constructed
// without an API key so suggestion endpoints degrade to "no suggestion".
func SetupTestRouter(auctions []model.Auction, users []model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepoFromSnapshot(storage.Snapshot{
		Auctions: auctions,
		Users:    users,
	}, nil)

	rules := lifecycle.DefaultRules
	biddingSvc := bidding.NewBiddingService(repo, repo, rules)
	catalogSvc := catalog.NewCatalogService(repo, repo, repo)
	accountSvc := account.NewAccountService(repo)
	suggestClient := suggest.NewClient("")

	h := handler.NewStorefrontHandler(biddingSvc, catalogSvc, accountSvc, suggestClient, rules)
	return server.SetupRouter(h)
}

// NewTestAdmin is the approved administrator every scenario can act as
func NewTestAdmin() model.User {
	return model.User{
		UserID:   "admin",
		Name:     "Administrator",
		Email:    "admin@example.com",
		Password: "admin-pass",
		Role:     model.RoleAdmin,
		Status:   model.UserApproved,
		Documents: model.Documents{
			CPF: "000.000.000-00",
		},
		JoinedAt: time.Now().UTC(),
	}
}

// OpenAuction builds an active auction ending an hour from now
func OpenAuction(id string, startingPrice float64) model.Auction {
	return model.Auction{
		AuctionID:     id,
		LotCode:       "REV-1042",
		Title:         "Mixed returns pallet",
		StartingPrice: startingPrice,
		EndsAt:        time.Now().UTC().Add(time.Hour),
		Status:        model.AuctionActive,
		Bids:          []model.Bid{},
	}
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the envelope, returning its data payload when present.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := ExecuteRequest(t, router, method, url, reqBody)

	var envelope map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	if data, ok := envelope["data"].(map[string]any); ok {
		return data, w
	}
	return envelope, w
}
