package main

import (
	"fmt"
	"os"
	"time"

	account "reversa-auctions/internal/accountService"
	bidding "reversa-auctions/internal/biddingService"
	catalog "reversa-auctions/internal/catalogService"
	"reversa-auctions/internal/config"
	"reversa-auctions/internal/lifecycle"
	"reversa-auctions/internal/repository"
	"reversa-auctions/internal/server"
	"reversa-auctions/internal/storage"
	"reversa-auctions/internal/suggest"
	handler "reversa-auctions/services/storefront/handler"
	"reversa-auctions/utils"
)

func main() {
	cfg := config.Load()

	store := storage.NewFileStore(cfg.DataFile)
	repo, err := loadRepository(store)
	if err != nil {
		utils.Fatal("failed to load snapshot", map[string]any{"error": err.Error(), "file": cfg.DataFile})
	}

	rules := lifecycle.Rules{MinIncrement: cfg.BidIncrement}

	biddingSvc := bidding.NewBiddingService(repo, repo, rules)
	catalogSvc := catalog.NewCatalogService(repo, repo, repo)
	accountSvc := account.NewAccountService(repo)
	suggestClient := suggest.NewClient(cfg.GeminiAPIKey)

	h := handler.NewStorefrontHandler(biddingSvc, catalogSvc, accountSvc, suggestClient, rules)
	router := server.SetupRouter(h)

	addr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Starting auction server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// loadRepository restores the last saved snapshot, falling back to the
// built-in seed set on first run.
func loadRepository(store *storage.FileStore) (*repository.MemoryRepo, error) {
	snap, err := store.Load()
	if err != nil {
		return nil, err
	}
	if snap == nil {
		seeded := storage.DefaultSnapshot(time.Now().UTC())
		snap = &seeded
		utils.Info("no snapshot found, using default seed set", nil)
	}
	return repository.NewMemoryRepoFromSnapshot(*snap, store), nil
}
