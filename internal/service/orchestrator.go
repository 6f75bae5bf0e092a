package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tiebasign/internal/config"
	"tiebasign/internal/core/domain"
	"tiebasign/internal/core/ports"
)

// Orchestrator runs the check-in workflow for every configured account.
type Orchestrator struct {
	cfg     config.Config
	clients ports.ClientFactory
	logger  zerolog.Logger
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(
	cfg config.Config,
	clients ports.ClientFactory,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		clients: clients,
		logger:  logger,
	}
}

// Run processes accounts one after another. The only error it returns is a
// configuration error, raised before any request is made; account failures
// are recorded in the report.
func (o *Orchestrator) Run(ctx context.Context) (*domain.RunReport, error) {
	accounts, err := o.cfg.Accounts()
	if err != nil {
		return nil, err
	}

	report := &domain.RunReport{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	logger := o.logger.With().Str("run_id", report.RunID).Logger()
	logger.Info().Int("accounts", len(accounts)).Msg("starting check-in run")

	for _, acc := range accounts {
		report.Accounts = append(report.Accounts, o.runAccount(ctx, acc, logger))
	}

	report.FinishedAt = time.Now().UTC()
	logger.Info().
		Int("accounts", len(report.Accounts)).
		Int("aborted", report.AbortedAccounts()).
		Dur("elapsed", report.FinishedAt.Sub(report.StartedAt)).
		Msg("all accounts finished")
	return report, nil
}

func (o *Orchestrator) runAccount(ctx context.Context, acc domain.Account, logger zerolog.Logger) domain.AccountReport {
	client, err := o.clients.NewClient(acc.BDUSS)
	if err != nil {
		logger.Error().Int("account", acc.Index).Err(err).Msg("failed to initialize account client")
		return domain.AccountReport{Index: acc.Index, Err: err}
	}
	return NewAccountRunner(acc, client, o.cfg.Strategy, logger).Run(ctx)
}
