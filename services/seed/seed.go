// Package seed is the offline fixture tooling: it (re)populates the listings
// table and keeps the rolling slot horizon filled.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	propertyRepo "imovelmatch/database/repository/property"
	slotRepo "imovelmatch/database/repository/slot"
	"imovelmatch/models"
	"imovelmatch/services/search"
	"imovelmatch/utils"
)

// Options control slot horizon generation. The reference seed covers 28 days
// of 30-minute slots during business hours, Sundays excluded, with roughly a
// third of the new slots pre-booked for demo data.
type Options struct {
	DaysAhead   int
	OpenHour    int
	CloseHour   int
	SlotMinutes int
	BookedRatio float64
	RandSeed    int64
}

type Seeder struct {
	Props propertyRepo.Repository
	Slots slotRepo.Repository
	Opts  Options
}

func NewSeeder(props propertyRepo.Repository, slots slotRepo.Repository, opts Options) *Seeder {
	return &Seeder{Props: props, Slots: slots, Opts: opts}
}

// SeedProperties replaces the full listing set, filling the normalized shadow
// columns used by substring matching.
func (s *Seeder) SeedProperties(ctx context.Context, props []models.Property) error {
	for i := range props {
		props[i].StreetNorm = search.Fold(props[i].Street)
		props[i].NeighborhoodNorm = search.Fold(props[i].Neighborhood)
		props[i].CityNorm = search.Fold(props[i].City)
	}
	if err := s.Props.ReplaceAll(ctx, props); err != nil {
		return fmt.Errorf("seed properties: %w", err)
	}
	utils.GetLogger().Info("properties seeded", zap.Int("count", len(props)))
	return nil
}

// GenerateHorizon creates any missing slots over the configured rolling
// window for every listing. Existing rows, booked ones included, are left
// untouched.
func (s *Seeder) GenerateHorizon(ctx context.Context, now time.Time) (int64, error) {
	props, err := s.Props.Search(ctx, propertyRepo.Filters{})
	if err != nil {
		return 0, fmt.Errorf("list properties: %w", err)
	}

	starts := s.slotStarts(now)
	rng := rand.New(rand.NewSource(s.Opts.RandSeed))

	slots := make([]models.ViewingSlot, 0, len(props)*len(starts))
	duration := time.Duration(s.Opts.SlotMinutes) * time.Minute
	for _, p := range props {
		for _, start := range starts {
			status := models.SlotStatusFree
			if rng.Float64() < s.Opts.BookedRatio {
				status = models.SlotStatusBooked
			}
			slots = append(slots, models.ViewingSlot{
				PropertyID: p.PropertyID,
				SlotStart:  start,
				SlotEnd:    start.Add(duration),
				Status:     status,
			})
		}
	}

	inserted, err := s.Slots.InsertMissing(ctx, slots)
	if err != nil {
		return 0, fmt.Errorf("insert slots: %w", err)
	}
	utils.GetLogger().Info("slot horizon generated",
		zap.Int64("inserted", inserted), zap.Int("candidates", len(slots)))
	return inserted, nil
}

// slotStarts enumerates slot start times over the horizon: business hours
// only, Sundays excluded, aligned to the slot granularity.
func (s *Seeder) slotStarts(now time.Time) []time.Time {
	step := time.Duration(s.Opts.SlotMinutes) * time.Minute

	// Align the first candidate to the next slot boundary.
	aligned := now.Truncate(step)
	if aligned.Before(now) {
		aligned = aligned.Add(step)
	}

	var starts []time.Time
	for d := 0; d < s.Opts.DaysAhead; d++ {
		day := aligned.AddDate(0, 0, d)
		if day.Weekday() == time.Sunday {
			continue
		}
		t := time.Date(day.Year(), day.Month(), day.Day(), s.Opts.OpenHour, 0, 0, 0, day.Location())
		close := time.Date(day.Year(), day.Month(), day.Day(), s.Opts.CloseHour, 0, 0, 0, day.Location())
		for t.Before(close) {
			starts = append(starts, t)
			t = t.Add(step)
		}
	}
	return starts
}
