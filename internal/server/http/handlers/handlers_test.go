package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/boostlane/panel/internal/bulkorder"
	domainErrors "github.com/boostlane/panel/internal/domain/errors"
	"github.com/boostlane/panel/internal/domain/model"
	"github.com/boostlane/panel/internal/server/http/dto"
	"github.com/boostlane/panel/internal/server/http/middleware"
	testhelpers "github.com/boostlane/panel/internal/test"
	"github.com/boostlane/panel/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return performRequestAt(t, method, path, path, handler, setup, body, headers)
}

// performRequestAt separates the gin route pattern from the request URL so
// tests can exercise handlers reading path parameters.
func performRequestAt(t *testing.T, method, pattern, url string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, pattern, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	var gotCurrency string
	facade := testhelpers.AuthFacadeStub{RegisterFn: func(_ context.Context, login, password, currency string) (string, error) {
		gotCurrency = currency
		return "session-token", nil
	}}
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass", Currency: "BDT"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(facade).Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotCurrency != "BDT" {
		t.Fatalf("expected currency to reach facade, got %q", gotCurrency)
	}
	if resp.Header().Get("Authorization") != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", resp.Header().Get("Authorization"))
	}

	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	foundCookie := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "panel_token" && cookie.Value == "session-token" {
			foundCookie = true
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named panel_token")
	}
}

func TestAuthHandlerRegisterScenarioMatchesE2E(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.AuthRequest{Login: login, Password: password})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(_ context.Context, gotLogin, gotPassword, _ string) (string, error) {
		if gotLogin != login || gotPassword != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q", gotLogin, gotPassword)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", resp.Header().Get("Authorization"))
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid credentials", body: []byte(`{"login":"","password":""}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusBadRequest},
		{name: "already exists", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
		{name: "unknown currency", body: []byte(`{"login":"a","password":"b","currency":"XXX"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrUnknownCurrency
		}}, status: http.StatusUnprocessableEntity},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, jsonHeaders())
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	facade := testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}}
	resp = performRequest(t, http.MethodPost, "/login", NewAuthHandler(facade).Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}

	facade = testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
		return "", errors.New("boom")
	}}
	resp = performRequest(t, http.MethodPost, "/login", NewAuthHandler(facade).Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestCatalogHandlerList(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/services", NewCatalogHandler(testhelpers.CatalogFacadeStub{}).List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var services []dto.ServiceResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &services); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(services) != 1 || services[0].ID != 101 || services[0].Rate != "0.9" {
		t.Fatalf("unexpected services %+v", services)
	}

	failing := testhelpers.CatalogFacadeStub{ServicesFn: func(context.Context) ([]model.ServiceDescriptor, error) {
		return nil, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodGet, "/services", NewCatalogHandler(failing).List, nil, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func samplePreview() *usecase.Preview {
	price := decimal.RequireFromString("0.45")
	return &usecase.Preview{
		Result: &bulkorder.ValidationResult{
			ValidOrders: []bulkorder.ParsedOrder{{
				LineNumber:          1,
				ServiceID:           101,
				Link:                "https://a",
				Quantity:            500,
				Service:             model.ServiceDescriptor{ID: 101, Name: "Instagram Followers"},
				PriceInUserCurrency: price,
			}},
			InvalidOrders: []bulkorder.InvalidOrderLine{{
				LineNumber:    2,
				RawText:       "abc|link",
				ReasonCode:    bulkorder.ReasonMalformedLine,
				ReasonMessage: "expected 3 fields, got 2",
			}},
			TotalCostInUserCurrency: price,
			UserCurrency:            "USD",
		},
		Balance: bulkorder.BalanceCheckResult{
			Sufficient: true,
			Available:  decimal.NewFromInt(100),
			Required:   price,
		},
	}
}

func TestBulkOrderHandlerPreview(t *testing.T) {
	facade := testhelpers.BulkOrderFacadeStub{PreviewFn: func(_ context.Context, userID int64, text string) (*usecase.Preview, error) {
		if userID != 7 || text != "101|https://a|500" {
			t.Fatalf("unexpected facade call: user=%d text=%q", userID, text)
		}
		return samplePreview(), nil
	}}

	body, _ := json.Marshal(dto.BulkOrderRequest{Orders: "101|https://a|500"})
	resp := performRequest(t, http.MethodPost, "/preview", NewBulkOrderHandler(facade).Preview, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var preview dto.PreviewResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &preview); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(preview.Valid) != 1 || preview.Valid[0].Price != "0.45" {
		t.Fatalf("unexpected valid lines %+v", preview.Valid)
	}
	if len(preview.Invalid) != 1 || preview.Invalid[0].Code != "MALFORMED_LINE" || preview.Invalid[0].Line != 2 {
		t.Fatalf("unexpected invalid lines %+v", preview.Invalid)
	}
	if preview.Total != "0.45" || preview.Currency != "USD" || !preview.Balance.Sufficient {
		t.Fatalf("unexpected preview summary %+v", preview)
	}
}

func TestBulkOrderHandlerPreviewFailures(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/preview", NewBulkOrderHandler(testhelpers.BulkOrderFacadeStub{}).Preview, asUser(7), []byte("not json"), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad json, got %d", resp.Code)
	}

	body, _ := json.Marshal(dto.BulkOrderRequest{Orders: "101|https://a|500"})
	facade := testhelpers.BulkOrderFacadeStub{PreviewFn: func(context.Context, int64, string) (*usecase.Preview, error) {
		return nil, bulkorder.ErrUnknownUserCurrency
	}}
	resp = performRequest(t, http.MethodPost, "/preview", NewBulkOrderHandler(facade).Preview, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 for unknown currency, got %d", resp.Code)
	}

	facade = testhelpers.BulkOrderFacadeStub{PreviewFn: func(context.Context, int64, string) (*usecase.Preview, error) {
		return nil, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodPost, "/preview", NewBulkOrderHandler(facade).Preview, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestBulkOrderHandlerSubmit(t *testing.T) {
	facade := testhelpers.BulkOrderFacadeStub{SubmitFn: func(context.Context, int64, string) (*usecase.SubmissionReceipt, error) {
		return &usecase.SubmissionReceipt{
			BatchID:       "B1700000000000-U7",
			OrdersCreated: 2,
			TotalCost:     decimal.RequireFromString("1.65"),
			Currency:      "USD",
		}, nil
	}}

	body, _ := json.Marshal(dto.BulkOrderRequest{Orders: "101|https://a|500\n205|https://b|1000"})
	resp := performRequest(t, http.MethodPost, "/mass", NewBulkOrderHandler(facade).Submit, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var receipt dto.SubmitResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &receipt); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if receipt.BatchID != "B1700000000000-U7" || receipt.OrdersCreated != 2 || receipt.Total != "1.65" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
}

func TestBulkOrderHandlerSubmitFailures(t *testing.T) {
	body, _ := json.Marshal(dto.BulkOrderRequest{Orders: "x"})
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "empty batch", err: domainErrors.ErrEmptyBatch, status: http.StatusUnprocessableEntity},
		{name: "unknown currency", err: bulkorder.ErrUnknownUserCurrency, status: http.StatusUnprocessableEntity},
		{name: "insufficient funds", err: domainErrors.ErrInsufficientBalance, status: http.StatusPaymentRequired},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.BulkOrderFacadeStub{SubmitFn: func(context.Context, int64, string) (*usecase.SubmissionReceipt, error) {
				return nil, tt.err
			}}
			resp := performRequest(t, http.MethodPost, "/mass", NewBulkOrderHandler(facade).Submit, asUser(7), body, jsonHeaders())
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerList(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/orders", NewOrderHandler(testhelpers.OrderFacadeStub{}).List, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	empty := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return nil, nil
	}}
	resp = performRequest(t, http.MethodGet, "/orders", NewOrderHandler(empty).List, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for empty list, got %d", resp.Code)
	}

	failing := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return nil, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodGet, "/orders", NewOrderHandler(failing).List, asUser(7), nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestOrderHandlerBatch(t *testing.T) {
	charge := decimal.RequireFromString("0.45")
	facade := testhelpers.OrderFacadeStub{BatchOrdersFn: func(_ context.Context, userID int64, batchID string) ([]model.Order, error) {
		if userID != 7 || batchID != "B1-U7" {
			t.Fatalf("unexpected facade call: user=%d batch=%q", userID, batchID)
		}
		return []model.Order{{ID: 1, BatchID: batchID, ServiceID: 101, Charge: charge, Currency: "USD", Status: model.OrderStatusPending}}, nil
	}}

	resp := performRequestAt(t, http.MethodGet, "/orders/batch/:batchId", "/orders/batch/B1-U7", func(c *gin.Context) {
		NewOrderHandler(facade).Batch(c)
	}, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var orders []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &orders); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(orders) != 1 || orders[0].Charge != "0.45" || orders[0].Status != "PENDING" {
		t.Fatalf("unexpected orders %+v", orders)
	}
}

func TestWalletHandlerSummary(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/wallet", NewWalletHandler(testhelpers.WalletFacadeStub{}).Summary, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var wallet dto.WalletResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &wallet); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if wallet.Balance != "10.00" || wallet.Spent != "5.00" || wallet.Currency != "USD" {
		t.Fatalf("unexpected wallet %+v", wallet)
	}
}

func TestWalletHandlerTopUp(t *testing.T) {
	var gotAmount decimal.Decimal
	facade := testhelpers.WalletFacadeStub{TopUpFn: func(_ context.Context, _ int64, amount decimal.Decimal) error {
		gotAmount = amount
		return nil
	}}
	resp := performRequest(t, http.MethodPost, "/topup", NewWalletHandler(facade).TopUp, asUser(7), []byte(`{"amount":"25.50"}`), jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !gotAmount.Equal(decimal.RequireFromString("25.50")) {
		t.Fatalf("unexpected amount %s", gotAmount)
	}

	rejecting := testhelpers.WalletFacadeStub{TopUpFn: func(context.Context, int64, decimal.Decimal) error {
		return domainErrors.ErrInvalidAmount
	}}
	resp = performRequest(t, http.MethodPost, "/topup", NewWalletHandler(rejecting).TopUp, asUser(7), []byte(`{"amount":"0"}`), jsonHeaders())
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/topup", NewWalletHandler(testhelpers.WalletFacadeStub{}).TopUp, asUser(7), []byte("not json"), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestWalletHandlerHistory(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/transactions", NewWalletHandler(testhelpers.WalletFacadeStub{}).History, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	empty := testhelpers.WalletFacadeStub{HistoryFn: func(context.Context, int64) ([]model.WalletTransaction, error) {
		return nil, nil
	}}
	resp = performRequest(t, http.MethodGet, "/transactions", NewWalletHandler(empty).History, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for empty history, got %d", resp.Code)
	}
}
