// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-vlad/demo-bank/internal/domain"
	"github.com/go-vlad/demo-bank/pkg/randompkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	GetForOwner(ctx context.Context, id int64, owner string) (domain.Account, error)
	List(ctx context.Context, owner string) ([]domain.Account, error)
}

// InitialBalance is the balance every account starts with.
const InitialBalance = "0.00"

// maxNumberAttempts bounds account number redraws on collisions.
const maxNumberAttempts = 100

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates and returns an active account with a zero balance and a
// freshly allocated account number for the given owner and account type.
//
// Account numbers are drawn from a cryptographically strong source and
// redrawn on collision with an existing account, up to maxNumberAttempts.
func (s *Service) Create(ctx context.Context, owner, accountType string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		arg := domain.CreateAccountParams{
			Number:  randompkg.AccountNumber(),
			Owner:   owner,
			Type:    accountType,
			Balance: InitialBalance,
			Status:  domain.StatusActive,
		}

		account, err := s.repo.Create(ctx, arg)
		if err == domain.ErrAccountNumberTaken {
			continue
		}

		return account, err
	}

	l.Error().Msgf("no unique account number found after %d attempts", maxNumberAttempts)

	return domain.Account{}, domain.ErrAccountNumbersExhausted
}

// GetForOwner returns the account with the given id if it belongs to owner.
func (s *Service) GetForOwner(ctx context.Context, id int64, owner string) (domain.Account, error) {
	account, err := s.repo.GetForOwner(ctx, id, owner)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns all accounts that are owned by the given user.
func (s *Service) List(ctx context.Context, owner string) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}
