// Command achievements runs one batch pass of the achievement evaluator
// over every business. Intended for cron; the API also evaluates on
// demand per user.
package main

import (
	"context"
	"time"

	"github.com/kofiannan/biztrack-api/internal/application/achievements"
	"github.com/kofiannan/biztrack-api/internal/infrastructure/postgres"
	"github.com/kofiannan/biztrack-api/pkg/config"
	"github.com/kofiannan/biztrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	evaluator := achievements.NewEvaluator(
		postgres.NewBusinessRepository(pool),
		postgres.NewAchievementRepository(pool),
		postgres.NewSaleRepository(pool),
		postgres.NewReminderRepository(pool),
		log,
	)

	start := time.Now()
	if err := evaluator.RunAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("achievement batch failed")
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("achievement batch finished")
}
