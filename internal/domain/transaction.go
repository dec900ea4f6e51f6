package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrAmountTooSmall indicates that the amount is below the minimum unit.
	ErrAmountTooSmall = errors.New("amount is below the minimum unit")
	// ErrInvalidFundingSource indicates malformed funding source data.
	ErrInvalidFundingSource = errors.New("invalid funding source")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Constants for all transaction types.
const (
	Deposit = "deposit"
)

// Constants for all transaction statuses. The funding path only ever
// persists completed transactions.
const (
	Completed = "completed"
)

// Constants for all funding source types.
const (
	SourceCard = "card"
	SourceBank = "bank"
)

// FundingSource declares the origin of deposited funds.
//
// RoutingNumber is required when Type is SourceBank and must be exactly
// 9 digits. It is validated and then discarded, never stored.
type FundingSource struct {
	Type          string `json:"type"`
	AccountNumber string `json:"account_number"`
	RoutingNumber string `json:"routing_number,omitempty"`
}

// Transaction holds a single immutable ledger entry of an account.
type Transaction struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	ProcessedAt time.Time `json:"processed_at"`
}

// TransactionWithAccountType is a Transaction enriched with the account's
// type at query time. The account type is denormalized for convenience and
// is not stored with the ledger entry.
type TransactionWithAccountType struct {
	Transaction
	AccountType string `json:"account_type"`
}

// FundParams is the input data for the funding transaction.
type FundParams struct {
	AccountID int64         `json:"account_id"`
	Amount    string        `json:"amount"`
	Source    FundingSource `json:"source"`
}

// FundResult is the result of the funding transaction.
//
// Transaction and Account reflect the same atomic operation: the account
// balance already includes the transaction amount.
type FundResult struct {
	Transaction Transaction `json:"transaction"`
	Account     Account     `json:"account"`
}
