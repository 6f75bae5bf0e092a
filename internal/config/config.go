package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tiebasign/internal/core/domain"
)

const (
	bdussEnvVar      = "BDUSS"
	timeoutEnvVar    = "TIEBA_TIMEOUT"
	sequentialEnvVar = "TIEBA_SEQUENTIAL"
	logLevelEnvVar   = "LOG_LEVEL"

	accountSeparator = "&"
	defaultTimeout   = 15 * time.Second
)

// Strategy selects how check-ins within one account are scheduled.
type Strategy int

const (
	Concurrent Strategy = iota
	Sequential
)

func (s Strategy) String() string {
	if s == Sequential {
		return "sequential"
	}
	return "concurrent"
}

// Config is the resolved runtime configuration.
type Config struct {
	BDUSS    string
	Timeout  time.Duration
	Strategy Strategy
	LogLevel string
}

// FromEnv reads the configuration from environment variables, applying defaults.
func FromEnv() (Config, error) {
	c := Config{
		BDUSS:    os.Getenv(bdussEnvVar),
		Timeout:  defaultTimeout,
		Strategy: Concurrent,
		LogLevel: GetEnv(logLevelEnvVar, "info"),
	}

	if v := os.Getenv(timeoutEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("invalid %s %q: %w", timeoutEnvVar, v, err)
		}
		c.Timeout = d
	}

	if v := os.Getenv(sequentialEnvVar); v != "" {
		seq, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("invalid %s %q: %w", sequentialEnvVar, v, err)
		}
		if seq {
			c.Strategy = Sequential
		}
	}
	return c, nil
}

// Accounts splits BDUSS on '&' into accounts indexed by their 1-based
// position. Blank segments are skipped but still occupy their position.
func (c Config) Accounts() ([]domain.Account, error) {
	var accounts []domain.Account
	for i, tok := range strings.Split(c.BDUSS, accountSeparator) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		accounts = append(accounts, domain.Account{Index: i + 1, BDUSS: tok})
	}
	if len(accounts) == 0 {
		return nil, domain.ErrMissingAccounts
	}
	return accounts, nil
}

// GetEnv returns the value of envVar or defaultValue when unset.
func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
