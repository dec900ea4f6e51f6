// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-vlad/demo-bank/internal/domain"
	"github.com/go-vlad/demo-bank/internal/middleware"
	"github.com/go-vlad/demo-bank/pkg/errorspkg"
	"github.com/go-vlad/demo-bank/pkg/tokenpkg"
	"github.com/go-vlad/demo-bank/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Fund(ctx context.Context, owner string, arg domain.FundParams) (domain.FundResult, error)
	List(ctx context.Context, owner string, accountID int64) ([]domain.TransactionWithAccountType, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

// amount accepts both a JSON number and a JSON string and keeps the raw
// literal text for the normalizer to validate.
type amount string

func (a *amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}

	*a = amount(n.String())

	return nil
}

type accountURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type fundingSource struct {
	Type          string `json:"type" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
	RoutingNumber string `json:"routing_number"`
}

type fundRequest struct {
	Amount amount        `json:"amount" binding:"required"`
	Source fundingSource `json:"source" binding:"required"`
}

type fundData struct {
	Transaction domain.Transaction `json:"transaction"`
	Account     domain.Account     `json:"account"`
}
type fundResponse struct {
	Data fundData `json:"data,omitempty"`
}

// Fund handles http request to deposit money into an account.
func (h *Handler) Fund(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrAccountNotFound))

		return
	}

	var req fundRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	arg := domain.FundParams{
		AccountID: uri.ID,
		Amount:    string(req.Amount),
		Source: domain.FundingSource{
			Type:          req.Source.Type,
			AccountNumber: req.Source.AccountNumber,
			RoutingNumber: req.Source.RoutingNumber,
		},
	}

	result, err := h.service.Fund(ctx, authPayload.Username, arg)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrAmountTooSmall,
			domain.ErrInvalidFundingSource, domain.ErrAccountNotActive:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := fundResponse{
		Data: fundData{
			Transaction: result.Transaction,
			Account:     result.Account,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type listData struct {
	Transactions []domain.TransactionWithAccountType `json:"transactions"`
}
type listResponse struct {
	Data listData `json:"data,omitempty"`
}

// List handles http request to list transactions of an account.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrAccountNotFound))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transactions, err := h.service.List(ctx, authPayload.Username, uri.ID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := listResponse{
		Data: listData{transactions},
	}

	gctx.JSON(http.StatusOK, res)
}
