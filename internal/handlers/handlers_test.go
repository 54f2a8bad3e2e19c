package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/coa_ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/coa_ledger_engine/internal/dto"
	"github.com/SscSPs/coa_ledger_engine/internal/handlers"
	"github.com/SscSPs/coa_ledger_engine/internal/middleware"
	"github.com/SscSPs/coa_ledger_engine/pkg/config"
)

// --- Mock MappingService ---
type MockMappingService struct {
	mock.Mock
}

var _ portssvc.MappingSvcFacade = (*MockMappingService)(nil)

func (m *MockMappingService) Reconcile(ctx context.Context, req dto.ReconcileRequest) (domain.ChangeSet, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.ChangeSet), args.Error(1)
}

func (m *MockMappingService) SaveProductAccounting(ctx context.Context, req dto.SaveAccountingRequest) (domain.ChangeSet, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.ChangeSet), args.Error(1)
}

func (m *MockMappingService) DeleteAllMappings(ctx context.Context, productID int64, productType domain.ProductType) (domain.ChangeSet, error) {
	args := m.Called(ctx, productID, productType)
	return args.Get(0).(domain.ChangeSet), args.Error(1)
}

// --- Mock AccountingReaderService ---
type MockAccountingService struct {
	mock.Mock
}

var _ portssvc.AccountingReaderSvcFacade = (*MockAccountingService)(nil)

func (m *MockAccountingService) ReadAccounting(ctx context.Context, productID int64, productType domain.ProductType, mode domain.AccountingMode) (*domain.ProductAccounting, error) {
	args := m.Called(ctx, productID, productType, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductAccounting), args.Error(1)
}

func (m *MockAccountingService) ListPaymentChannelMappings(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.PaymentChannelMapping, error) {
	args := m.Called(ctx, productID, productType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentChannelMapping), args.Error(1)
}

func (m *MockAccountingService) ListChargeIncomeMappings(ctx context.Context, productID int64, productType domain.ProductType, penalty *bool) ([]domain.ChargeIncomeMapping, error) {
	args := m.Called(ctx, productID, productType, penalty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChargeIncomeMapping), args.Error(1)
}

// --- Mock TellerLedgerService ---
type MockTellerService struct {
	mock.Mock
}

var _ portssvc.TellerLedgerSvcFacade = (*MockTellerService)(nil)

func (m *MockTellerService) PostCashierEvent(ctx context.Context, req dto.PostCashierEventRequest, userID string) (*dto.CashierPostingResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CashierPostingResult), args.Error(1)
}

func (m *MockTellerService) GetJournalEntries(ctx context.Context, transactionID string) (*dto.GetJournalEntriesResponse, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GetJournalEntriesResponse), args.Error(1)
}

func (m *MockTellerService) ListCashierTransactions(ctx context.Context, cashierID int64, params dto.ListCashierTransactionsParams) (*dto.ListCashierTransactionsResponse, error) {
	args := m.Called(ctx, cashierID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListCashierTransactionsResponse), args.Error(1)
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockMapping    *MockMappingService
	mockAccounting *MockAccountingService
	mockTeller     *MockTellerService
	jwtSecret      string
	token          string
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlersTestSuite) SetupTest() {
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockMapping = new(MockMappingService)
	suite.mockAccounting = new(MockAccountingService)
	suite.mockTeller = new(MockTellerService)

	lim, err := middleware.NewLimiter("1000-M")
	suite.Require().NoError(err)

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.Default()))
	cfg := &config.Config{JWTSecret: suite.jwtSecret, EnableDBCheck: true}
	services := &portssvc.ServiceContainer{
		Mapping:    suite.mockMapping,
		Accounting: suite.mockAccounting,
		Teller:     suite.mockTeller,
	}
	handlers.RegisterRoutes(suite.router, cfg, services, lim, nil)
	suite.token = suite.generateTestToken("teller-user")
}

func (suite *HandlersTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "coa-ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlersTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) errorBody(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- Accounting routes ---

func (suite *HandlersTestSuite) TestSaveProductAccounting_Success() {
	portfolio := int64(102)
	accountID := int64(102)
	changes := domain.ChangeSet{Created: []domain.MappingChange{{Slot: "LOAN_PORTFOLIO", SlotCode: 2, AccountID: &accountID}}}
	suite.mockMapping.On("SaveProductAccounting", mock.Anything, mock.MatchedBy(func(req dto.SaveAccountingRequest) bool {
		return req.ProductID == 42 &&
			req.ProductType == domain.LoanProduct &&
			req.Mode == domain.ModeCash &&
			*req.Accounts["LOAN_PORTFOLIO"] == portfolio &&
			req.PaymentChannelMappings == nil &&
			len(req.FeeToIncomeMappings) == 1
	})).Return(changes, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/products/loans/42/accounting", map[string]any{
		"accountingMode":             "cash",
		"accountingMappings":         map[string]any{"LOAN_PORTFOLIO": portfolio},
		"feeToIncomeAccountMappings": []map[string]any{{"chargeId": 1, "incomeAccountId": 301}},
	})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ChangeSetResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.LoanProduct, resp.ProductType)
	suite.Require().Len(resp.Changes.Created, 1)
	suite.Equal("LOAN_PORTFOLIO", resp.Changes.Created[0].Slot)
	suite.mockMapping.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestSaveProductAccounting_InvalidCategory() {
	suite.mockMapping.On("SaveProductAccounting", mock.Anything, mock.Anything).Return(domain.ChangeSet{},
		&apperrors.InvalidAccountCategoryError{
			Parameter: "fundSourceAccountId[0]", AccountID: 300, AccountName: "Interest income",
			Actual: "INCOME", Expected: []string{"ASSET", "LIABILITY"},
		}).Once()

	w := suite.do(http.MethodPut, "/api/v1/products/LOAN/42/accounting", map[string]any{"accountingMode": "CASH"})

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.errorBody(w)
	suite.Equal("fundSourceAccountId[0]", body["parameter"])
	suite.EqualValues(300, body["glAccountId"])
}

func (suite *HandlersTestSuite) TestSaveProductAccounting_RejectedBeforeService() {
	tests := []struct {
		name string
		url  string
		body any
	}{
		{"unknown product type", "/api/v1/products/mortgages/42/accounting", map[string]any{"accountingMode": "CASH"}},
		{"non-numeric product id", "/api/v1/products/loans/abc/accounting", map[string]any{"accountingMode": "CASH"}},
		{"missing mode", "/api/v1/products/loans/42/accounting", map[string]any{}},
		{"unknown mode", "/api/v1/products/loans/42/accounting", map[string]any{"accountingMode": "LIFO"}},
		{"zero charge id", "/api/v1/products/loans/42/accounting", map[string]any{
			"accountingMode":             "CASH",
			"feeToIncomeAccountMappings": []map[string]any{{"chargeId": 0, "incomeAccountId": 301}},
		}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPut, tt.url, tt.body)
			suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
	suite.mockMapping.AssertNotCalled(suite.T(), "SaveProductAccounting", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestReconcile_PaymentChannels() {
	suite.mockMapping.On("Reconcile", mock.Anything, mock.MatchedBy(func(req dto.ReconcileRequest) bool {
		return req.Family == domain.FamilyPaymentChannels &&
			req.ProductType == domain.SavingsProduct &&
			req.Mode == domain.ModeAccrualPeriodic &&
			len(req.Bindings) == 2
	})).Return(domain.ChangeSet{}, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/products/savings/7/accounting/payment-channels", map[string]any{
		"accountingMode": "accrual_periodic",
		"bindings":       []map[string]any{{"key": 1, "glAccountId": 100}, {"key": 2, "glAccountId": 101}},
	})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.mockMapping.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestReconcile_UnknownFamily() {
	w := suite.do(http.MethodPut, "/api/v1/products/loans/42/accounting/interest-charts", map[string]any{"accountingMode": "CASH"})
	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockMapping.AssertNotCalled(suite.T(), "Reconcile", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestReconcile_ErrorMapping() {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: slot FUND_SOURCE is required", apperrors.ErrValidation), http.StatusBadRequest},
		{"not found", apperrors.NewNotFoundError("charge", 99), http.StatusNotFound},
		{"duplicate", &apperrors.DuplicateBindingError{ProductID: 42, ProductType: "LOAN", Slot: "FUND_SOURCE"}, http.StatusConflict},
		{"internal", apperrors.NewAppError(500, "failed to upsert mapping", apperrors.ErrInternal), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockMapping.On("Reconcile", mock.Anything, mock.Anything).Return(domain.ChangeSet{}, tt.err).Once()

			w := suite.do(http.MethodPut, "/api/v1/products/loans/42/accounting/fee-charges", map[string]any{"accountingMode": "CASH", "bindings": []any{}})

			suite.Equal(tt.want, w.Code)
			if tt.want == http.StatusInternalServerError {
				suite.Equal("Failed to reconcile product mappings", suite.errorBody(w)["error"])
			}
		})
	}
}

func (suite *HandlersTestSuite) TestReadAccounting() {
	view := &domain.ProductAccounting{
		ProductID:   42,
		ProductType: domain.LoanProduct,
		Mode:        domain.ModeCash,
		Accounts:    map[string]domain.GLAccountSummary{"LOAN_PORTFOLIO": {ID: 102, Name: "Loan portfolio", GLCode: "1200"}},
	}
	suite.mockAccounting.On("ReadAccounting", mock.Anything, int64(42), domain.LoanProduct, domain.ModeCash).Return(view, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/products/loan/42/accounting?accountingMode=cash", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var got domain.ProductAccounting
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("1200", got.Accounts["LOAN_PORTFOLIO"].GLCode)

	w = suite.do(http.MethodGet, "/api/v1/products/loan/42/accounting", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestListChargeIncomeMappings_PenaltyFilter() {
	suite.mockAccounting.On("ListChargeIncomeMappings", mock.Anything, int64(42), domain.LoanProduct, mock.MatchedBy(func(p *bool) bool {
		return p != nil && *p
	})).Return([]domain.ChargeIncomeMapping{{Charge: domain.Charge{ID: 4, IsPenalty: true}}}, nil).Once()
	suite.mockAccounting.On("ListChargeIncomeMappings", mock.Anything, int64(42), domain.LoanProduct, (*bool)(nil)).
		Return([]domain.ChargeIncomeMapping{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/products/loans/42/accounting/charges?penalty=true", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/products/loans/42/accounting/charges", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq("[]", w.Body.String())
	suite.mockAccounting.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestListPaymentChannelMappings() {
	suite.mockAccounting.On("ListPaymentChannelMappings", mock.Anything, int64(42), domain.SharesProduct).
		Return(nil, fmt.Errorf("%w: shares products do not support PAYMENT_CHANNELS mappings", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/products/shares/42/accounting/payment-channels", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestDeleteAllMappings() {
	suite.mockMapping.On("DeleteAllMappings", mock.Anything, int64(42), domain.LoanProduct).Return(domain.ChangeSet{}, nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/products/loans/42/accounting", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockMapping.AssertExpectations(suite.T())
}

// --- Cashier routes ---

func (suite *HandlersTestSuite) TestPostCashierEvent_Success() {
	result := &dto.CashierPostingResult{CashierTransactionID: 9, TransactionID: "tx-1", JournalEntryIDs: []int64{1, 2}}
	suite.mockTeller.On("PostCashierEvent", mock.Anything, mock.MatchedBy(func(req dto.PostCashierEventRequest) bool {
		return req.CashierID == 7 && req.Type == domain.Allocate && req.Amount.Equal(decimal.NewFromInt(500))
	}), "teller-user").Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/cashiers/7/transactions", map[string]any{
		"txnType":      "allocate",
		"txnAmount":    "500",
		"currencyCode": "USD",
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var got dto.CashierPostingResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(*result, got)
	suite.mockTeller.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestPostCashierEvent_ErrorMapping() {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"configuration missing", &apperrors.ConfigurationMissingError{Activity: "CASH_AT_TELLER"}, http.StatusUnprocessableEntity},
		{"duplicate", apperrors.NewAppError(409, "journal entry already exists", apperrors.ErrDuplicate), http.StatusConflict},
		{"inactive cashier", fmt.Errorf("%w: cashier 7 is not active", apperrors.ErrValidation), http.StatusBadRequest},
		{"unknown cashier", apperrors.NewNotFoundError("cashier", 7), http.StatusNotFound},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockTeller.On("PostCashierEvent", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/cashiers/7/transactions", map[string]any{
				"txnType": "SETTLE", "txnAmount": 10, "currencyCode": "USD",
			})
			suite.Equal(tt.want, w.Code, w.Body.String())
		})
	}
}

func (suite *HandlersTestSuite) TestPostCashierEvent_BadRequests() {
	tests := []struct {
		name string
		url  string
		body map[string]any
	}{
		{"bad cashier id", "/api/v1/cashiers/zero/transactions", map[string]any{"txnType": "SETTLE", "txnAmount": 1, "currencyCode": "USD"}},
		{"unknown type", "/api/v1/cashiers/7/transactions", map[string]any{"txnType": "LEND", "txnAmount": 1, "currencyCode": "USD"}},
		{"long currency", "/api/v1/cashiers/7/transactions", map[string]any{"txnType": "SETTLE", "txnAmount": 1, "currencyCode": "DOLLAR"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, tt.url, tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockTeller.AssertNotCalled(suite.T(), "PostCashierEvent", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestPostCashierEvent_Unauthenticated() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cashiers/7/transactions", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestListCashierTransactions() {
	next := "token-2"
	suite.mockTeller.On("ListCashierTransactions", mock.Anything, int64(7), mock.MatchedBy(func(p dto.ListCashierTransactionsParams) bool {
		return p.Limit == 2 && p.NextToken != nil && *p.NextToken == "token-1"
	})).Return(&dto.ListCashierTransactionsResponse{
		Transactions: []dto.CashierTransactionResponse{{ID: 3}, {ID: 2}},
		NextToken:    &next,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/cashiers/7/transactions?limit=2&nextToken=token-1", nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/cashiers/7/transactions?limit=1000", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTeller.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestGetJournalEntries() {
	suite.mockTeller.On("GetJournalEntries", mock.Anything, "tx-1").Return(&dto.GetJournalEntriesResponse{TransactionID: "tx-1", Balanced: true}, nil).Once()
	suite.mockTeller.On("GetJournalEntries", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("journal entries for transaction", "missing")).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/journal-entries/tx-1", nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/v1/journal-entries/missing", nil).Code)
}

// --- Health ---

func (suite *HandlersTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, w.Code)

	lim, err := middleware.NewLimiter("10-M")
	suite.Require().NoError(err)
	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{JWTSecret: suite.jwtSecret, EnableDBCheck: true}, &portssvc.ServiceContainer{}, lim, failingPinger{})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}
