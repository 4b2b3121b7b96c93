package storage

import (
	"time"

	model "reversa-auctions/internal/models"
)

// Catalog options offered to admins when creating a lot
var (
	Categories = []string{
		"Mixed Lot", "Smartphones & Tablets", "Computing & Peripherals",
		"Home Appliances", "TV, Audio & Video", "Games & Consoles",
		"Furniture", "Tools", "Fashion & Accessories", "Vehicles & Parts",
	}

	LotConditions = []string{
		"New (Sealed)", "Open Box", "Dented Box",
		"Used (Good Condition)", "Scrap (For Parts)", "Refurbished",
	}

	LotOrigins = []string{
		"Customer Return", "Surplus Stock", "Judicial Auction", "Insurance Salvage",
	}
)

// DefaultSnapshot returns the built-in seed set used when no saved snapshot
// exists: the platform admin account, a sample lot, and one banner.
func DefaultSnapshot(now time.Time) Snapshot {
	return Snapshot{
		Users: []model.User{
			{
				UserID:   "admin",
				Name:     "Administrator",
				Email:    "admin@reversa.com",
				Password: "Sempre2026@@",
				Role:     model.RoleAdmin,
				Status:   model.UserApproved,
				Documents: model.Documents{
					CPF:       "ADM",
					HasSelfie: true,
				},
				JoinedAt: now,
			},
		},
		Auctions: []model.Auction{
			{
				AuctionID:     "lot-001",
				LotCode:       "REV-1042",
				Title:         "Lot of 15x Samsung & Motorola Smartphones",
				Description:   "Lot containing 15 assorted mobile phones. Ideal for repair resale.",
				Category:      "Smartphones & Tablets",
				Condition:     "Used (Good Condition)",
				Origin:        "Customer Return",
				ItemCount:     15,
				StartingPrice: 1500,
				CurrentBid:    nil,
				EndsAt:        now.Add(48 * time.Hour),
				Status:        model.AuctionActive,
				Bids:          []model.Bid{},
				ImageURLs: []string{
					"https://images.unsplash.com/photo-1592899677712-a5a254503484?q=80&w=800",
				},
			},
		},
		Banners: []model.Banner{
			{
				BannerID: "b1",
				ImageURL: "https://images.unsplash.com/photo-1556742049-0cfed4f7a07d?q=80&w=2070",
				Title:    "Opportunities in Reverse Logistics",
				Subtitle: "Exclusive lots of returns from major e-commerce platforms.",
			},
		},
	}
}
