// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountNotActive indicates that the account does not accept funds.
	ErrAccountNotActive = errors.New("account is not active")
	// ErrAccountTypeExists indicates that the owner already has an account of the given type.
	ErrAccountTypeExists = errors.New("account type already exists")
	// ErrAccountNumberTaken indicates a collision with an existing account number.
	ErrAccountNumberTaken = errors.New("account number already taken")
	// ErrAccountNumbersExhausted indicates that no unique account number was found
	// within the retry ceiling.
	ErrAccountNumbersExhausted = errors.New("account number allocation exhausted")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
)

// Constants for all supported account types.
const (
	Checking = "checking"
	Savings  = "savings"
)

// SupportedAccountTypes holds all the supported account types.
var SupportedAccountTypes = []string{Checking, Savings}

// IsSupportedAccountType returns true if the account type is supported.
func IsSupportedAccountType(accountType string) bool {
	for _, t := range SupportedAccountTypes {
		if t == accountType {
			return true
		}
	}

	return false
}

// Constants for all account statuses. Only active accounts accept funding.
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusClosed  = "closed"
)

// Account holds balance data of a single user account.
//
// Number is the externally visible 10-digit identifier, unique across all
// accounts and immutable once assigned. Balance always carries exactly two
// decimal digits.
type Account struct {
	ID        int64     `json:"id"`
	Number    string    `json:"number"`
	Owner     string    `json:"owner"`
	Type      string    `json:"type"`
	Balance   string    `json:"balance"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAccountParams is the input data to insert an account.
type CreateAccountParams struct {
	Number  string `json:"number"`
	Owner   string `json:"owner"`
	Type    string `json:"type"`
	Balance string `json:"balance"`
	Status  string `json:"status"`
}
