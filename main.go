package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	bidding "realty-client/internal/biddingService"
	"realty-client/internal/config"
	"realty-client/internal/models"
	"realty-client/internal/repository"
	"realty-client/internal/server"
	"realty-client/utils"
)

// Demo accounts created at startup
const (
	demoPassword = "demo12345"
	demoSeller   = "seller"
	demoBuyer    = "buyer"
)

func main() {
	cfg := config.Load()
	utils.SetLevel(cfg.LogLevel)

	repo := repository.NewMemoryRepo()
	clock := clockwork.NewRealClock()

	svc := server.Services{
		Auth:       bidding.NewAuthService(repo, cfg.SandboxJWTSecret, cfg.SandboxAccessTTL, clock),
		Properties: bidding.NewPropertyService(repo),
		Bidding:    bidding.NewBiddingService(repo, clock),
	}

	if err := prepopulate(svc, clock.Now()); err != nil {
		utils.Fatal("sandbox: failed to seed demo data", map[string]any{"error": err.Error()})
	}

	router := server.SetupRouter(svc)

	port := getPort(cfg.Port)
	utils.Info("Starting sandbox marketplace server", map[string]any{"addr": port})
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// prepopulate adds demo accounts, listings and auctions
func prepopulate(svc server.Services, now time.Time) error {
	seller, err := svc.Auth.Register(models.RegisterInput{
		Username:        demoSeller,
		FullName:        "Demo Seller",
		Email:           "seller@example.com",
		Role:            models.RoleSeller,
		Password:        demoPassword,
		PasswordConfirm: demoPassword,
	})
	if err != nil {
		return err
	}
	if _, err := svc.Auth.Register(models.RegisterInput{
		Username:        demoBuyer,
		FullName:        "Demo Buyer",
		Email:           "buyer@example.com",
		Role:            models.RoleBuyer,
		Password:        demoPassword,
		PasswordConfirm: demoPassword,
	}); err != nil {
		return err
	}

	lat, lng := 42.4640, 59.6103
	perMonth := models.Amount(2500000)
	perDay := models.Amount(150000)

	listings := []models.Property{
		{Title: "Трехкомнатная квартира в центре", Address: "Нукус, ул. Гарезсизлик", Type: models.PropertySale, Price: 450000000, Rooms: 3, Area: 84, Latitude: &lat, Longitude: &lng},
		{Title: "Квартира рядом с НГПИ", Address: "Нукус, ул. Ч. Абдирова", Type: models.PropertyRent, Price: 2500000, PricePerMonth: &perMonth, Rooms: 2, Area: 56, HasFurniture: true, HasWifi: true},
		{Title: "Студия посуточно", Address: "Нукус, центр", Type: models.PropertyDailyRent, Price: 150000, PricePerDay: &perDay, MinRentalDays: 2, Rooms: 1, Area: 30, HasWifi: true},
	}

	var first models.Property
	for i, p := range listings {
		created, err := svc.Properties.Create(seller.User, p)
		if err != nil {
			return err
		}
		if i == 0 {
			first = created
		}
	}

	end := now.Add(24 * time.Hour)
	target := 600000000.0
	_, err = svc.Bidding.CreateAuction(seller.User, models.AuctionInput{
		PropertyID:  first.ID,
		StartPrice:  450000000,
		StartTime:   now,
		EndTime:     &end,
		EndType:     models.EndByBoth,
		TargetPrice: &target,
	})
	return err
}

// getPort formats the listen address, defaulting to ":8080"
func getPort(port string) string {
	if port == "" {
		return ":8080"
	}
	return fmt.Sprintf(":%s", port)
}
