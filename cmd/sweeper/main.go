// Varredura única de downgrade de planos vencidos, para agendamento externo
// (cron/Kubernetes CronJob) quando a API roda com múltiplas réplicas.
package main

import (
	"context"
	"time"

	"github.com/jhoicas/comanda-api/internal/application/plans"
	"github.com/jhoicas/comanda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/comanda-api/pkg/config"
	"github.com/jhoicas/comanda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	restaurantRepo := postgres.NewRestaurantRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	planUC := plans.NewUseCase(txRunner, restaurantRepo, cfg.Sweep.GraceDays, log.Component("plans"))

	sweeper := plans.NewSweeper(planUC, cfg.Sweep.Hour, log)
	sweeper.RunOnce(ctx)
}
