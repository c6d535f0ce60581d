// Command seed (re)populates the listings table and generates the viewing
// slot horizon. It is offline fixture tooling, not part of the serving path.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"imovelmatch/config"
	"imovelmatch/database"
	propertyRepo "imovelmatch/database/repository/property"
	slotRepo "imovelmatch/database/repository/slot"
	"imovelmatch/models"
	"imovelmatch/services/seed"
)

func main() {
	reset := flag.Bool("reset", false, "delete all existing slots before generating")
	randSeed := flag.Int64("seed", 42, "random seed for the pre-booked ratio")
	flag.Parse()

	config.LoadConfig()
	database.InitDB()
	db := database.GetDB()

	propRepo := propertyRepo.NewGormPropertyRepo(db)
	slotsRepo := slotRepo.NewGormSlotRepo(db)

	seeder := seed.NewSeeder(propRepo, slotsRepo, seed.Options{
		DaysAhead:   config.AppConfig.SlotDaysAhead,
		OpenHour:    config.AppConfig.SlotOpenHour,
		CloseHour:   config.AppConfig.SlotCloseHour,
		SlotMinutes: config.AppConfig.SlotMinutes,
		BookedRatio: config.AppConfig.SeedBookedRatio,
		RandSeed:    *randSeed,
	})

	ctx := context.Background()

	if err := seeder.SeedProperties(ctx, seed.DemoProperties()); err != nil {
		log.Fatalf("seed: %v", err)
	}

	if *reset {
		if err := slotsRepo.DeleteAll(ctx); err != nil {
			log.Fatalf("seed: failed to reset slots: %v", err)
		}
	}

	inserted, err := seeder.GenerateHorizon(ctx, time.Now())
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	booked, err := slotsRepo.CountByStatus(ctx, models.SlotStatusBooked)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	free, err := slotsRepo.CountByStatus(ctx, models.SlotStatusFree)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	fmt.Printf("%d slots inserted (%d booked, %d free in total)\n", inserted, booked, free)
}
