package ports

import (
	"context"
)

// CheckinClient defines the calls made on behalf of a single account.
type CheckinClient interface {
	// FetchTbs logs in and returns the session verifier.
	// Returns domain.ErrAuthFailed when the token is not logged in.
	FetchTbs(ctx context.Context) (string, error)

	// FetchForums returns the subscribed forum names in server order.
	FetchForums(ctx context.Context) ([]string, error)

	// Sign submits the daily check-in for one forum.
	// A remote rejection is returned as *domain.CheckinError.
	Sign(ctx context.Context, forum, tbs string) error
}

// ClientFactory builds the CheckinClient for one account token.
type ClientFactory interface {
	NewClient(bduss string) (CheckinClient, error)
}

// ClientFactoryFunc adapts a function to ClientFactory.
type ClientFactoryFunc func(bduss string) (CheckinClient, error)

// NewClient calls f(bduss).
func (f ClientFactoryFunc) NewClient(bduss string) (CheckinClient, error) {
	return f(bduss)
}
