// Package main provides a tool to seed the database with test submissions.
//
// This creates realistic direct booking site submissions across several
// countries and cities to exercise the review workflow and directory views.
//
// Usage:
//
//	DB_PATH=~/.directstay/directstay.db go run ./cmd/seed
//	DB_PATH=~/.directstay/directstay.db go run ./cmd/seed --approve  # Approve everything too
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/directstay/directstay-server/internal/domain"
	"github.com/directstay/directstay-server/internal/id"
	"github.com/directstay/directstay-server/internal/store"
	"github.com/directstay/directstay-server/internal/store/sqlite"
)

var approve = flag.Bool("approve", false, "Approve all seeded submissions")

type seedEntry struct {
	brand       string
	website     string
	email       string
	description string
	countries   []string
	cities      []domain.CityRegion
	tier        domain.PlanTier
}

var seedData = []seedEntry{
	{
		brand:       "Casa do Mar",
		website:     "https://casadomar.example.com",
		email:       "hello@casadomar.example.com",
		description: "Family-run beach villas on the Algarve coast with direct booking discounts.",
		countries:   []string{"Portugal"},
		cities:      []domain.CityRegion{{Name: "Lagos"}, {Name: "Faro"}},
		tier:        domain.PlanFeatured,
	},
	{
		brand:       "Alpine Hideaways",
		website:     "https://alpinehideaways.example.com",
		email:       "stay@alpinehideaways.example.com",
		description: "Chalets in the Austrian and Swiss Alps, bookable without platform fees.",
		countries:   []string{"Austria", "Switzerland"},
		cities:      []domain.CityRegion{{Name: "Innsbruck"}, {Name: "Zermatt"}},
		tier:        domain.PlanBasic,
	},
	{
		brand:       "Madrid Rooftops",
		website:     "https://madridrooftops.example.com",
		description: "Boutique apartments in central Madrid with terrace views.",
		countries:   []string{"Spain"},
		cities:      []domain.CityRegion{{Name: "Madrid", GeonameID: 3117735}},
		tier:        domain.PlanBasic,
	},
	{
		brand:       "Kyoto Machiya Stays",
		website:     "https://kyotomachiya.example.com",
		email:       "book@kyotomachiya.example.com",
		description: "Restored townhouses in historic Kyoto districts.",
		countries:   []string{"Japan"},
		cities:      []domain.CityRegion{{Name: "Kyoto"}},
		tier:        domain.PlanFeatured,
	},
	{
		brand:       "Patagonia Basecamp",
		website:     "https://patagoniabasecamp.example.com",
		description: "Cabins near Torres del Paine, booked direct with the owners.",
		countries:   []string{"Chile", "Argentina"},
		cities:      []domain.CityRegion{{Name: "Puerto Natales"}, {Name: "El Chaltén"}},
		tier:        domain.PlanBasic,
	},
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/.directstay/directstay.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	created := 0

	for _, entry := range seedData {
		subID, err := id.Generate("sub")
		if err != nil {
			log.Fatalf("Failed to generate ID: %v", err)
		}

		sub := &domain.Submission{
			ID:            subID,
			BrandName:     entry.brand,
			WebsiteURL:    entry.website,
			Email:         entry.email,
			Description:   entry.description,
			Countries:     entry.countries,
			CitiesRegions: entry.cities,
			Status:        domain.StatusPending,
			PlanTier:      entry.tier,
		}
		sub.InitTimestamps()

		if err := s.CreateSubmission(ctx, sub); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				fmt.Printf("  Skipping %s (already seeded)\n", entry.brand)
				continue
			}
			log.Fatalf("Failed to create submission %s: %v", entry.brand, err)
		}

		created++
		fmt.Printf("  Created %s (%s)\n", entry.brand, sub.ID)

		if *approve {
			if err := s.SetSubmissionStatus(ctx, sub.ID, domain.StatusApproved); err != nil {
				log.Fatalf("Failed to approve %s: %v", entry.brand, err)
			}
			fmt.Printf("  Approved %s\n", entry.brand)
		}
	}

	fmt.Printf("\nSeeded %d submissions\n", created)
}
