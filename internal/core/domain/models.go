package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingAccounts is returned when no account tokens are configured.
	ErrMissingAccounts = errors.New("BDUSS not set: provide one or more account tokens separated by '&'")

	// ErrAuthFailed is returned when the tbs endpoint reports is_login != 1.
	ErrAuthFailed = errors.New("authentication failed")
)

// Account is one configured credential and its 1-based position.
type Account struct {
	Index int
	BDUSS string
}

// Session holds what login yields for an account. Tbs is only set after a
// successful login and is read-only afterwards.
type Session struct {
	Tbs string
}

// Outcome is the result of one forum check-in.
type Outcome struct {
	Forum string
	Err   error
}

// OK reports whether the check-in succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// CheckinError is an application-level rejection from the sign endpoint.
type CheckinError struct {
	Forum   string
	Code    string
	Message string
}

func (e *CheckinError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("error code: %s", e.Code)
}

// AccountReport summarizes one account run.
type AccountReport struct {
	Index    int
	LoggedIn bool
	Forums   int
	Success  int
	Failure  int
	Err      error // set when the account aborted before check-ins
}

// Aborted reports whether the account stopped before any check-in.
func (r AccountReport) Aborted() bool { return r.Err != nil }

// RunReport holds the outcome of a whole multi-account run.
type RunReport struct {
	RunID      string
	Accounts   []AccountReport
	StartedAt  time.Time
	FinishedAt time.Time
}

// AbortedAccounts counts the accounts that never reached the check-in stage.
func (r RunReport) AbortedAccounts() int {
	n := 0
	for _, a := range r.Accounts {
		if a.Aborted() {
			n++
		}
	}
	return n
}
