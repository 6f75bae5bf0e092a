package service

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"tiebasign/internal/config"
	"tiebasign/internal/core/domain"
	"tiebasign/internal/core/ports"
)

// AccountRunner drives login, forum listing and check-ins for one account.
type AccountRunner struct {
	account  domain.Account
	client   ports.CheckinClient
	strategy config.Strategy
	logger   zerolog.Logger
	session  domain.Session
}

// NewAccountRunner creates an AccountRunner. The client must not be shared
// with another account.
func NewAccountRunner(
	account domain.Account,
	client ports.CheckinClient,
	strategy config.Strategy,
	logger zerolog.Logger,
) *AccountRunner {
	return &AccountRunner{
		account:  account,
		client:   client,
		strategy: strategy,
		logger:   logger.With().Int("account", account.Index).Logger(),
	}
}

// Run executes the account workflow. Failures are logged and reflected in the
// report; they are never returned.
func (r *AccountRunner) Run(ctx context.Context) domain.AccountReport {
	report := domain.AccountReport{Index: r.account.Index}

	r.logger.Info().Msg("logging in")
	tbs, err := r.client.FetchTbs(ctx)
	if err != nil {
		report.Err = err
		r.logger.Error().Err(err).Msg("account login failed")
		return report
	}
	r.session.Tbs = tbs
	report.LoggedIn = true
	r.logger.Info().Msg("login succeeded")

	r.logger.Info().Msg("fetching forum list")
	forums, err := r.client.FetchForums(ctx)
	if err != nil {
		report.Err = err
		r.logger.Error().Err(err).Msg("account check-in failed")
		return report
	}
	report.Forums = len(forums)
	r.logger.Info().Int("forums", len(forums)).Msg("forum list fetched")

	r.logger.Info().Str("strategy", r.strategy.String()).Msg("starting check-in")
	success := r.signAll(ctx, forums)

	report.Success = success
	report.Failure = len(forums) - success
	r.logger.Info().
		Int("success", report.Success).
		Int("failure", report.Failure).
		Msg("account check-in finished")
	return report
}

// signAll submits one check-in per forum and returns the number that
// succeeded once every attempt has completed.
func (r *AccountRunner) signAll(ctx context.Context, forums []string) int {
	var g errgroup.Group
	if r.strategy == config.Sequential {
		g.SetLimit(1)
	}

	var success atomic.Int64
	tbs := r.session.Tbs
	for _, forum := range forums {
		forum := forum // per-iteration copy (go1.21 loop semantics)
		g.Go(func() error {
			out := domain.Outcome{Forum: forum, Err: r.client.Sign(ctx, forum, tbs)}
			if out.OK() {
				success.Add(1)
				r.logger.Info().Str("forum", out.Forum).Msg("check-in succeeded")
			} else {
				r.logger.Error().Str("forum", out.Forum).Err(out.Err).Msg("check-in failed")
			}
			return nil
		})
	}
	// Tasks always return nil; failures are tallied, not propagated.
	_ = g.Wait()
	return int(success.Load())
}
