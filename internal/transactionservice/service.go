// Package transactionservice manages business logic layer of transactions.
package transactionservice

import (
	"context"
	"regexp"

	"github.com/go-vlad/demo-bank/internal/domain"
	"github.com/go-vlad/demo-bank/pkg/moneypkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Fund(ctx context.Context, amount string, accountID int64) (domain.FundResult, error)
	List(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// AccountService provides the account lookup needed to authorize callers.
type AccountService interface {
	GetForOwner(ctx context.Context, id int64, owner string) (domain.Account, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
}

// New returns transaction service struct to manage transaction business logic.
func New(tr Repo, as AccountService) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
	}
}

var routingNumberPattern = regexp.MustCompile(`^[0-9]{9}$`)

func validSource(source domain.FundingSource) error {
	switch source.Type {
	case domain.SourceCard:
		return nil
	case domain.SourceBank:
		if !routingNumberPattern.MatchString(source.RoutingNumber) {
			return domain.ErrInvalidFundingSource
		}

		return nil
	}

	return domain.ErrInvalidFundingSource
}

// Fund validates the funding request and records the deposit.
//
// The amount is normalized to exactly two decimal places, the funding
// source is checked, and the caller must own an active target account.
// Nothing is persisted unless every check passes; the ledger entry and the
// balance update are then applied as one atomic step.
func (s *Service) Fund(ctx context.Context, owner string, arg domain.FundParams) (domain.FundResult, error) {
	l := zerolog.Ctx(ctx)

	amount, err := moneypkg.Normalize(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()

		if err == moneypkg.ErrTooSmall {
			return domain.FundResult{}, domain.ErrAmountTooSmall
		}

		return domain.FundResult{}, domain.ErrInvalidAmount
	}

	if err := validSource(arg.Source); err != nil {
		l.Info().Err(err).Send()
		return domain.FundResult{}, err
	}

	account, err := s.accountService.GetForOwner(ctx, arg.AccountID, owner)
	if err != nil {
		return domain.FundResult{}, err
	}

	if account.Status != domain.StatusActive {
		l.Info().Msgf("account %d does not accept funds in status %s", account.ID, account.Status)
		return domain.FundResult{}, domain.ErrAccountNotActive
	}

	result, err := s.repo.Fund(ctx, amount.StringFixed(2), arg.AccountID)
	if err != nil {
		return domain.FundResult{}, err
	}

	return result, nil
}

// List returns all transactions of the account, each enriched with the
// account's type at query time, provided the caller owns the account.
func (s *Service) List(ctx context.Context, owner string, accountID int64) ([]domain.TransactionWithAccountType, error) {
	account, err := s.accountService.GetForOwner(ctx, accountID, owner)
	if err != nil {
		return nil, err
	}

	transactions, err := s.repo.List(ctx, accountID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.TransactionWithAccountType, 0, len(transactions))

	for _, t := range transactions {
		items = append(items, domain.TransactionWithAccountType{
			Transaction: t,
			AccountType: account.Type,
		})
	}

	return items, nil
}
