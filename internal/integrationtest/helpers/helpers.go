// Package helpers seeds rows for integration tests.
package helpers

import (
	"context"
	"testing"

	"github.com/go-vlad/demo-bank/internal/accountrepo"
	"github.com/go-vlad/demo-bank/internal/domain"
	"github.com/go-vlad/demo-bank/internal/transactionrepo"
	"github.com/go-vlad/demo-bank/internal/userrepo"
	"github.com/go-vlad/demo-bank/pkg/dbpkg"
	"github.com/go-vlad/demo-bank/pkg/passpkg"
	"github.com/go-vlad/demo-bank/pkg/randompkg"
)

// SeedUser inserts a random user and returns it.
func SeedUser(t *testing.T, db dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.Owner(),
		Email:          randompkg.Email(),
	}

	user, err := userrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(ctx, %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount inserts an account of the given type for owner and returns it.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, owner, accountType string) domain.Account {
	t.Helper()

	return SeedAccountWithBalance(t, db, owner, accountType, "0.00")
}

// SeedAccountWithBalance inserts an active account holding the given balance.
func SeedAccountWithBalance(t *testing.T, db dbpkg.SQLInterface, owner, accountType, balance string) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		Number:  randompkg.AccountNumber(),
		Owner:   owner,
		Type:    accountType,
		Balance: balance,
		Status:  domain.StatusActive,
	}

	account, err := accountrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(ctx, %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedTransaction inserts a completed deposit for the account and returns it.
// The account balance is left untouched.
func SeedTransaction(t *testing.T, db dbpkg.SQLInterface, accountID int64, amount string) domain.Transaction {
	t.Helper()

	transaction, err := transactionrepo.NewTxRepoPGS(db).Create(context.Background(), amount, accountID)
	if err != nil {
		t.Fatalf("transactionRepo.Create(ctx, %v, %v) returned error: %v", amount, accountID, err)
	}

	return transaction
}

// RandomAccount returns an unsaved account owned by owner.
func RandomAccount(owner string) domain.Account {
	return domain.Account{
		ID:      randompkg.Int64Between(1, 1000),
		Number:  randompkg.AccountNumber(),
		Owner:   owner,
		Type:    domain.Checking,
		Balance: randompkg.MoneyAmountBetween(10, 1000),
		Status:  domain.StatusActive,
	}
}
