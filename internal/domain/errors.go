package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount is returned when an ether amount cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrUnknownAccount is returned when a signer reference matches no account
	ErrUnknownAccount = errors.New("unknown account")

	// ErrInsufficientFunds is returned when a sender cannot pay value plus fee
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNetworkNotFound is returned for a network missing from domains.toml
	ErrNetworkNotFound = errors.New("network not found")

	// ErrReverted is returned for a revert that matches no known registry error
	ErrReverted = errors.New("execution reverted")

	// ErrCancelled is returned when the user declines a confirmation
	ErrCancelled = errors.New("cancelled")
)

// NoDeploymentErr is returned when a network has no recorded registry deployment
type NoDeploymentErr struct {
	Network   string
	Ephemeral bool
}

func (e NoDeploymentErr) Error() string {
	if e.Ephemeral {
		return fmt.Sprintf("no registry deployed on %s: the network is ephemeral, use 'domains run' or pass --contract", e.Network)
	}
	return fmt.Sprintf("no registry deployed on %s: run 'domains deploy' first or pass --contract", e.Network)
}

func (e NoDeploymentErr) Is(target error) bool {
	return target == ErrNotFound
}

// UnexpectedOutcomeErr is returned when a scenario step's result differs from its expectation
type UnexpectedOutcomeErr struct {
	Step     string
	Expected string
	Err      error
}

func (e UnexpectedOutcomeErr) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: expected %s, but it succeeded", e.Step, e.Expected)
	}
	if e.Expected == "" {
		return fmt.Sprintf("%s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s: expected %s, got: %v", e.Step, e.Expected, e.Err)
}

func (e UnexpectedOutcomeErr) Unwrap() error {
	return e.Err
}
