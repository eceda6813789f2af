package domain

import (
	"fmt"
	"time"
)

// Config fixes the economics and timing of a deployment.
type Config struct {
	// Fee is charged for every play.
	Fee uint64
	// RoundDuration is both the playing window and the winner's grace window.
	RoundDuration time.Duration
	// RentReserve is deposited into custody by the initializer and returned
	// to the admin on kill.
	RentReserve uint64
	// ResetWinnerOnClaim clears winner and score when the pool is claimed.
	ResetWinnerOnClaim bool
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.Fee == 0 {
		return fmt.Errorf("fee must be greater than zero")
	}
	if c.RoundDuration < time.Second {
		return fmt.Errorf("round duration must be at least 1s")
	}
	if c.RoundDuration%time.Second != 0 {
		return fmt.Errorf("round duration must be a whole number of seconds")
	}
	return nil
}

// Commission is the admin share of one fee, truncated.
func (c Config) Commission() uint64 {
	return c.Fee / 10
}

// PoolShare is the part of one fee credited to the pool.
func (c Config) PoolShare() uint64 {
	return c.Fee - c.Commission()
}

// DurationSeconds returns RoundDuration in whole seconds.
func (c Config) DurationSeconds() int64 {
	return int64(c.RoundDuration / time.Second)
}
