package plans

import (
	"context"
	"time"

	"github.com/jhoicas/comanda-api/pkg/logger"
)

// Sweeper agenda a varredura de downgrade uma vez por dia, em hora fixa.
type Sweeper struct {
	plans *UseCase
	hour  int // hora local (0-23)
	log   *logger.Logger
}

// NewSweeper constrói o agendador.
func NewSweeper(plans *UseCase, hour int, log *logger.Logger) *Sweeper {
	if hour < 0 || hour > 23 {
		hour = 3
	}
	return &Sweeper{plans: plans, hour: hour, log: log.Component("sweeper")}
}

// RunForever dorme até a próxima hora agendada, roda a varredura e repete.
// Encerra quando o contexto é cancelado.
func (s *Sweeper) RunForever(ctx context.Context) {
	for {
		wait := time.Until(nextRunAt(time.Now(), s.hour))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		s.RunOnce(ctx)
	}
}

// RunOnce executa uma varredura agora. Erros globais (listagem) só geram log;
// falhas por tenant já são isoladas dentro do use case.
func (s *Sweeper) RunOnce(ctx context.Context) {
	start := time.Now()
	n, err := s.plans.RunDowngradeSweep(ctx, start)
	if err != nil {
		s.log.Error().Err(err).Msg("varredura de downgrade falhou")
		return
	}
	s.log.Info().Int("downgraded", n).Dur("took", time.Since(start)).Msg("varredura de downgrade concluída")
}

// nextRunAt devolve a próxima ocorrência da hora agendada estritamente após now.
func nextRunAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
