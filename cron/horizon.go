// Package cron hosts the background maintenance jobs of the server process.
package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"imovelmatch/services/seed"
	"imovelmatch/utils"
)

// StartHorizonJob extends the rolling slot window every night so the bookable
// horizon never shrinks as days pass. Returns the running scheduler.
func StartHorizonJob(seeder *seed.Seeder) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if _, err := seeder.GenerateHorizon(ctx, time.Now()); err != nil {
			utils.GetLogger().Error("slot horizon job failed", zap.Error(err))
		}
	})
	if err != nil {
		utils.GetLogger().Error("failed to register horizon job", zap.Error(err))
		return c
	}
	c.Start()
	return c
}
