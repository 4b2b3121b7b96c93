package catalog

import (
	"fmt"
	"strings"
	"time"

	"reversa-auctions/internal/auctionerrors"
	"reversa-auctions/internal/models"
	"reversa-auctions/internal/repository"
	"reversa-auctions/internal/storage"
	"reversa-auctions/utils"
)

// Options lists the values offered in the lot creation form
type Options struct {
	Categories []string `json:"categories"`
	Conditions []string `json:"conditions"`
	Origins    []string `json:"origins"`
}

// CatalogService manages the lot catalog and site banners. Creating lots and
// banners is restricted to admin accounts.
type CatalogService struct {
	auctions repository.AuctionDB
	users    repository.UserDB
	banners  repository.BannerDB
	now      func() time.Time
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(auctions repository.AuctionDB, users repository.UserDB, banners repository.BannerDB) *CatalogService {
	return &CatalogService{
		auctions: auctions,
		users:    users,
		banners:  banners,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock, for tests
func (s *CatalogService) WithClock(now func() time.Time) *CatalogService {
	s.now = now
	return s
}

// CreateAuction validates the listing data and creates a new active lot on
// behalf of the acting admin.
func (s *CatalogService) CreateAuction(actingUserID string, data models.CreateAuctionData) (models.Auction, error) {
	if err := s.requireAdmin(actingUserID); err != nil {
		return models.Auction{}, err
	}
	if err := validateListing(data); err != nil {
		return models.Auction{}, err
	}

	auction, err := s.auctions.CreateAuction(data, s.now())
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}

	utils.Info("auction created", map[string]any{
		"auction_id": auction.AuctionID,
		"lot_code":   auction.LotCode,
		"ends_at":    auction.EndsAt,
		"created_by": actingUserID,
	})

	return auction, nil
}

// ListAuctions returns auctions for the given tab ("open", "closed" or empty
// for all) and free-text query, newest first.
func (s *CatalogService) ListAuctions(tab, query string) ([]models.Auction, error) {
	tab = strings.ToLower(strings.TrimSpace(tab))
	if tab != "" && tab != repository.TabOpen && tab != repository.TabClosed {
		return nil, fmt.Errorf("service: %w - unknown tab %q", auctionerrors.ErrInvalidInput, tab)
	}

	auctions, err := s.auctions.ListAuctions(repository.AuctionFilter{Tab: tab, Query: query}, s.now())
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return auctions, nil
}

// ListBanners returns the site banners
func (s *CatalogService) ListBanners() ([]models.Banner, error) {
	banners, err := s.banners.ListBanners()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list banners: %w", err)
	}
	return banners, nil
}

// CreateBanner stores a new site banner on behalf of the acting admin
func (s *CatalogService) CreateBanner(actingUserID, imageURL, title, subtitle string) (models.Banner, error) {
	if err := s.requireAdmin(actingUserID); err != nil {
		return models.Banner{}, err
	}
	if imageURL == "" {
		return models.Banner{}, fmt.Errorf("service: %w - missing banner image", auctionerrors.ErrInvalidInput)
	}

	banner := models.Banner{
		BannerID: utils.GenerateID(),
		ImageURL: imageURL,
		Title:    title,
		Subtitle: subtitle,
	}
	if err := s.banners.AddBanner(banner); err != nil {
		return models.Banner{}, fmt.Errorf("service: failed to store banner: %w", err)
	}

	utils.Info("banner created", map[string]any{"banner_id": banner.BannerID, "created_by": actingUserID})

	return banner, nil
}

// Options returns the catalog taxonomy for listing forms
func (s *CatalogService) Options() Options {
	return Options{
		Categories: storage.Categories,
		Conditions: storage.LotConditions,
		Origins:    storage.LotOrigins,
	}
}

func (s *CatalogService) requireAdmin(actingUserID string) error {
	if actingUserID == "" {
		return auctionerrors.ErrUnauthenticated
	}
	user, err := s.users.GetUser(actingUserID)
	if err != nil {
		return fmt.Errorf("service: failed to resolve user %s: %w", actingUserID, err)
	}
	if user.Role != models.RoleAdmin {
		return fmt.Errorf("service: user %s: %w", actingUserID, auctionerrors.ErrNotAllowed)
	}
	return nil
}

func validateListing(data models.CreateAuctionData) error {
	switch {
	case strings.TrimSpace(data.Title) == "":
		return fmt.Errorf("service: %w - missing title", auctionerrors.ErrInvalidInput)
	case data.StartingPrice < 0:
		return fmt.Errorf("service: %w - negative starting price", auctionerrors.ErrInvalidInput)
	case data.DurationInHours <= 0:
		return fmt.Errorf("service: %w - non-positive duration", auctionerrors.ErrInvalidInput)
	case data.ItemCount <= 0:
		return fmt.Errorf("service: %w - non-positive item count", auctionerrors.ErrInvalidInput)
	}
	return nil
}
