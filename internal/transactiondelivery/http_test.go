package transactiondelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-vlad/demo-bank/internal/domain"
	"github.com/go-vlad/demo-bank/internal/integrationtest/helpers"
	"github.com/go-vlad/demo-bank/internal/middleware"
	"github.com/go-vlad/demo-bank/pkg/errorspkg"
	"github.com/go-vlad/demo-bank/pkg/randompkg"
	"github.com/go-vlad/demo-bank/pkg/tokenpkg"
	"github.com/go-vlad/demo-bank/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestFund(t *testing.T) {
	username := randompkg.Owner()
	account := helpers.RandomAccount(username)
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	cardSource := domain.FundingSource{
		Type:          domain.SourceCard,
		AccountNumber: randompkg.CardNumber(),
	}

	wantResult := domain.FundResult{
		Transaction: domain.Transaction{
			ID:          1,
			AccountID:   account.ID,
			Type:        domain.Deposit,
			Amount:      "25.50",
			Status:      domain.Completed,
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
			ProcessedAt: time.Now().UTC().Truncate(time.Second),
		},
		Account: account,
	}

	testCases := []struct {
		name           string
		accountID      int64
		requestBody    string
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(transactionService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name:      "OK",
			accountID: account.ID,
			requestBody: fmt.Sprintf(`{"amount":"25.50","source":{"type":"card","account_number":%q}}`,
				cardSource.AccountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				arg := domain.FundParams{
					AccountID: account.ID,
					Amount:    "25.50",
					Source:    cardSource,
				}

				transactionService.EXPECT().
					Fund(gomock.Any(), gomock.Eq(username), gomock.Eq(arg)).
					Times(1).
					Return(wantResult, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*struct {
					Transaction domain.Transaction `json:"transaction"`
					Account     domain.Account     `json:"account"`
				})
				if !ok {
					t.Errorf(`res.Data=%v, failed type conversion`, data)
				}

				compareTimes := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(wantResult.Transaction, got.Transaction, compareTimes); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}

				if diff := cmp.Diff(wantResult.Account, got.Account, compareTimes); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:      "NumberAmountAccepted",
			accountID: account.ID,
			requestBody: fmt.Sprintf(`{"amount":25.50,"source":{"type":"card","account_number":%q}}`,
				cardSource.AccountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				arg := domain.FundParams{
					AccountID: account.ID,
					Amount:    "25.50",
					Source:    cardSource,
				}

				transactionService.EXPECT().
					Fund(gomock.Any(), gomock.Eq(username), gomock.Eq(arg)).
					Times(1).
					Return(wantResult, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData:      func(data any) {},
		},
		{
			name:      "NoAuthorization",
			accountID: account.ID,
			requestBody: fmt.Sprintf(`{"amount":"25.50","source":{"type":"card","account_number":%q}}`,
				cardSource.AccountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					Fund(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name:        "InvalidID",
			accountID:   0,
			requestBody: `{"amount":"25.50","source":{"type":"card","account_number":"4242424242424242"}}`,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					Fund(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name:        "MissingAmount",
			accountID:   account.ID,
			requestBody: `{"source":{"type":"card","account_number":"4242424242424242"}}`,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					Fund(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount is required",
		},
		{
			name:        "MissingSourceType",
			accountID:   account.ID,
			requestBody: `{"amount":"25.50","source":{"account_number":"4242424242424242"}}`,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					Fund(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Type is required",
		},
		{
			name:      "ErrInvalidAmount",
			accountID: account.ID,
			requestBody: fmt.Sprintf(`{"amount":"-1","source":{"type":"card","account_number":%q}}`,
				cardSource.AccountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					Fund(gomock.Any(), gomock.Eq(username), gomock.Any()).
					Times(1).
					Return(domain.FundResult{}, domain.ErrInvalidAmount)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInvalidAmount.Error(),
		},
		{
			name:      "ErrInvalidFundingSource",
			accountID: account.ID,
			requestBody: fmt.Sprintf(`{"amount":"25.50","source":{"type":"bank","account_number":%q}}`,
				cardSource.AccountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					Fund(gomock.Any(), gomock.Eq(username), gomock.Any()).
					Times(1).
					Return(domain.FundResult{}, domain.ErrInvalidFundingSource)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInvalidFundingSource.Error(),
		},
		{
			name:      "ErrAccountNotActive",
			accountID: account.ID,
			requestBody: fmt.Sprintf(`{"amount":"25.50","source":{"type":"card","account_number":%q}}`,
				cardSource.AccountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					Fund(gomock.Any(), gomock.Eq(username), gomock.Any()).
					Times(1).
					Return(domain.FundResult{}, domain.ErrAccountNotActive)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrAccountNotActive.Error(),
		},
		{
			name:      "ErrAccountNotFound",
			accountID: account.ID,
			requestBody: fmt.Sprintf(`{"amount":"25.50","source":{"type":"card","account_number":%q}}`,
				cardSource.AccountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					Fund(gomock.Any(), gomock.Eq(username), gomock.Any()).
					Times(1).
					Return(domain.FundResult{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name:      "InternalServerError",
			accountID: account.ID,
			requestBody: fmt.Sprintf(`{"amount":"25.50","source":{"type":"card","account_number":%q}}`,
				cardSource.AccountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					Fund(gomock.Any(), gomock.Eq(username), gomock.Any()).
					Times(1).
					Return(domain.FundResult{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Initialize mocks
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			transactionService := NewMockService(ctrl)
			transactionHandler := NewHandler(transactionService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.POST("/accounts/:id/deposits", transactionHandler.Fund)

			tc.buildStubs(transactionService)

			// Send request
			url := fmt.Sprintf("/accounts/%d/deposits", tc.accountID)
			req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader([]byte(tc.requestBody)))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = tc.setupAuth(t, req); err != nil {
				t.Fatalf("tc.setupAuth(t, %+v) returned error: %v", req, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			// Test response
			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{
				Data: &struct {
					Transaction domain.Transaction `json:"transaction"`
					Account     domain.Account     `json:"account"`
				}{},
			}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(res.Data)
			}
		})
	}
}

func TestList(t *testing.T) {
	username := randompkg.Owner()
	account := helpers.RandomAccount(username)
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	transactions := []domain.TransactionWithAccountType{
		{
			Transaction: domain.Transaction{
				ID:          1,
				AccountID:   account.ID,
				Type:        domain.Deposit,
				Amount:      "10.00",
				Status:      domain.Completed,
				CreatedAt:   time.Now().UTC().Truncate(time.Second),
				ProcessedAt: time.Now().UTC().Truncate(time.Second),
			},
			AccountType: account.Type,
		},
		{
			Transaction: domain.Transaction{
				ID:          2,
				AccountID:   account.ID,
				Type:        domain.Deposit,
				Amount:      "15.25",
				Status:      domain.Completed,
				CreatedAt:   time.Now().UTC().Truncate(time.Second),
				ProcessedAt: time.Now().UTC().Truncate(time.Second),
			},
			AccountType: account.Type,
		},
	}

	testCases := []struct {
		name           string
		accountID      int64
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(transactionService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name:      "OK",
			accountID: account.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					List(gomock.Any(), gomock.Eq(username), gomock.Eq(account.ID)).
					Times(1).
					Return(transactions, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*struct {
					Transactions []domain.TransactionWithAccountType `json:"transactions"`
				})
				if !ok {
					t.Errorf(`res.Data=%v, failed type conversion`, data)
				}

				compareTimes := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(transactions, got.Transactions, compareTimes); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:      "NoAuthorization",
			accountID: account.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					List(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name:      "InvalidID",
			accountID: 0,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					List(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name:      "ErrAccountNotFound",
			accountID: account.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					List(gomock.Any(), gomock.Eq(username), gomock.Eq(account.ID)).
					Times(1).
					Return(nil, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name:      "InternalError",
			accountID: account.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					List(gomock.Any(), gomock.Eq(username), gomock.Eq(account.ID)).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Initialize mocks
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			transactionService := NewMockService(ctrl)
			transactionHandler := NewHandler(transactionService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.GET("/accounts/:id/transactions", transactionHandler.List)

			tc.buildStubs(transactionService)

			// Send request
			url := fmt.Sprintf("/accounts/%d/transactions", tc.accountID)
			req, err := http.NewRequest(http.MethodGet, url, nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = tc.setupAuth(t, req); err != nil {
				t.Fatalf("tc.setupAuth(t, %+v) returned error: %v", req, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			// Test response
			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{
				Data: &struct {
					Transactions []domain.TransactionWithAccountType `json:"transactions"`
				}{},
			}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(res.Data)
			}
		})
	}
}
