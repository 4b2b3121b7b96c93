package repository

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"reversa-auctions/internal/auctionerrors"
	model "reversa-auctions/internal/models"
	"reversa-auctions/internal/storage"
	"reversa-auctions/utils"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// Tab values accepted by AuctionFilter
const (
	TabOpen   = "open"
	TabClosed = "closed"
)

// AuctionFilter selects auctions for listing. Tab filters on derived
// open/closed state; Query is a case-insensitive match on title or lot code.
type AuctionFilter struct {
	Tab   string
	Query string
}

// AuctionDB defines the auction storage interface. Bid invariants are not
// enforced here; callers apply them inside an UpdateAuction mutator.
type AuctionDB interface {
	CreateAuction(data model.CreateAuctionData, now time.Time) (model.Auction, error)
	GetAuction(auctionID string) (model.Auction, error)
	UpdateAuction(auctionID string, mutate func(model.Auction) (model.Auction, error)) (model.Auction, error)
	ListAuctions(filter AuctionFilter, now time.Time) ([]model.Auction, error)
}

// UserDB defines the user account storage interface
type UserDB interface {
	CreateUser(user model.User) error
	GetUser(userID string) (model.User, error)
	FindByCredentials(login, password string) (model.User, error)
	SetUserStatus(userID string, status model.UserStatus) (model.User, error)
}

// BannerDB defines the site banner storage interface
type BannerDB interface {
	ListBanners() ([]model.Banner, error)
	AddBanner(banner model.Banner) error
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB,
// UserDB and BannerDB. All mutations pass through a single write lock, so the
// minimum-bid check inside an UpdateAuction mutator always observes the latest
// committed bid. After every successful mutation the full collection snapshot
// is handed to the storage collaborator (best effort).
type MemoryRepo struct {
	mu           sync.RWMutex
	auctions     map[string]model.Auction
	auctionOrder []string // auction IDs, newest first
	users        map[string]model.User
	userOrder    []string
	banners      []model.Banner
	store        storage.Store // nil disables persistence
}

// NewMemoryRepo creates an empty repository with no persistence
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions: make(map[string]model.Auction),
		users:    make(map[string]model.User),
	}
}

// NewMemoryRepoFromSnapshot seeds a repository from a loaded snapshot and
// wires the store that receives future snapshots.
func NewMemoryRepoFromSnapshot(snap storage.Snapshot, store storage.Store) *MemoryRepo {
	r := NewMemoryRepo()
	r.store = store
	for _, a := range snap.Auctions {
		r.auctions[a.AuctionID] = a
		r.auctionOrder = append(r.auctionOrder, a.AuctionID)
	}
	for _, u := range snap.Users {
		r.users[u.UserID] = u
		r.userOrder = append(r.userOrder, u.UserID)
	}
	r.banners = append(r.banners, snap.Banners...)
	return r
}

// persist hands the current collections to the storage collaborator. It runs
// with the write lock held so saved snapshots are always consistent. A save
// failure never fails the mutation that triggered it.
func (r *MemoryRepo) persist() {
	if r.store == nil {
		return
	}
	if err := r.store.Save(r.snapshotLocked()); err != nil {
		utils.Warn("repository: snapshot save failed", map[string]any{"error": err.Error()})
	}
}

func (r *MemoryRepo) snapshotLocked() storage.Snapshot {
	snap := storage.Snapshot{
		Auctions: make([]model.Auction, 0, len(r.auctionOrder)),
		Users:    make([]model.User, 0, len(r.userOrder)),
		Banners:  append([]model.Banner(nil), r.banners...),
	}
	for _, id := range r.auctionOrder {
		snap.Auctions = append(snap.Auctions, r.auctions[id])
	}
	for _, id := range r.userOrder {
		snap.Users = append(snap.Users, r.users[id])
	}
	return snap
}

// CreateAuction assigns an id and lot code and stores a fresh active auction
// with no bids, ending DurationInHours from now.
func (r *MemoryRepo) CreateAuction(data model.CreateAuctionData, now time.Time) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction := model.Auction{
		AuctionID:     utils.GenerateID(),
		LotCode:       utils.GenerateLotCode(),
		Title:         data.Title,
		Description:   data.Description,
		Category:      data.Category,
		Condition:     data.Condition,
		Origin:        data.Origin,
		ItemCount:     data.ItemCount,
		StartingPrice: data.StartingPrice,
		CurrentBid:    nil,
		EndsAt:        now.Add(time.Duration(data.DurationInHours) * time.Hour),
		Status:        model.AuctionActive,
		Bids:          []model.Bid{},
		ImageURLs:     append([]string(nil), data.ImageURLs...),
		VideoURL:      data.VideoURL,
	}

	r.auctions[auction.AuctionID] = auction
	r.auctionOrder = append([]string{auction.AuctionID}, r.auctionOrder...)
	r.persist()

	return auction, nil
}

// GetAuction returns the auction with the given id
func (r *MemoryRepo) GetAuction(auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// UpdateAuction applies the mutator to the stored auction under the write
// lock. An error from the mutator aborts the update with no visible change;
// on success the returned auction replaces the stored one atomically.
func (r *MemoryRepo) UpdateAuction(auctionID string, mutate func(model.Auction) (model.Auction, error)) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("update auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	updated, err := mutate(auction)
	if err != nil {
		return model.Auction{}, err
	}
	updated.AuctionID = auctionID // the key is immutable

	r.auctions[auctionID] = updated
	r.persist()

	return updated, nil
}

// ListAuctions returns auctions matching the filter, newest first
func (r *MemoryRepo) ListAuctions(filter AuctionFilter, now time.Time) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))

	results := make([]model.Auction, 0, len(r.auctionOrder))
	for _, id := range r.auctionOrder {
		auction := r.auctions[id]

		ended := !auction.EndsAt.After(now)
		if filter.Tab == TabOpen && ended {
			continue
		}
		if filter.Tab == TabClosed && !ended {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(auction.Title), query) &&
			!strings.Contains(strings.ToLower(auction.LotCode), query) {
			continue
		}
		results = append(results, auction)
	}
	return results, nil
}

// CreateUser stores a new user, rejecting duplicate emails
func (r *MemoryRepo) CreateUser(user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("create user %s: %w", user.Email, auctionerrors.ErrEmailTaken)
		}
	}

	r.users[user.UserID] = user
	r.userOrder = append(r.userOrder, user.UserID)
	r.persist()

	return nil
}

// GetUser returns the user with the given id
func (r *MemoryRepo) GetUser(userID string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// FindByCredentials matches a user by CPF or name plus an opaque password
// comparison. Credential hardening is out of scope for this platform.
func (r *MemoryRepo) FindByCredentials(login, password string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.userOrder {
		user := r.users[id]
		if (user.Documents.CPF == login || user.Name == login) && user.Password == password {
			return user, nil
		}
	}
	return model.User{}, auctionerrors.ErrInvalidCredentials
}

// SetUserStatus applies the admin approval decision to an account
func (r *MemoryRepo) SetUserStatus(userID string, status model.UserStatus) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("set status for user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}

	user.Status = status
	r.users[userID] = user
	r.persist()

	return user, nil
}

// ListBanners returns all site banners in insertion order
func (r *MemoryRepo) ListBanners() ([]model.Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.Banner(nil), r.banners...), nil
}

// AddBanner stores a new site banner
func (r *MemoryRepo) AddBanner(banner model.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.banners = append(r.banners, banner)
	r.persist()

	return nil
}
