package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/preppal-io/prep-pal/domain/stock"
	"github.com/preppal-io/prep-pal/modules/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

// fakeInventory records the calls it receives and answers with resp.
type fakeInventory struct {
	resp *inventory.OperationResponse
	err  error

	lastParams inventory.InitializeParams
	lastID     int
	lastPatch  inventory.CategoryPatch
	lastItem   inventory.NewStockItem
	lastLocale string
}

var _ inventory.InventoryPort = (*fakeInventory)(nil)

func (f *fakeInventory) answer() (*inventory.OperationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &inventory.OperationResponse{Success: true}, nil
}

func (f *fakeInventory) Snapshot(_ context.Context) (*inventory.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &inventory.Snapshot{
		Dataset: stock.EmptyDataset(),
		State:   inventory.State{Phase: inventory.PhaseEmpty},
		Locale:  "en_US",
		Backend: "local",
	}, nil
}

func (f *fakeInventory) Load(_ context.Context) (*inventory.OperationResponse, error) {
	return f.answer()
}

func (f *fakeInventory) Initialize(_ context.Context, params inventory.InitializeParams) (*inventory.OperationResponse, error) {
	f.lastParams = params
	return f.answer()
}

func (f *fakeInventory) Reset(_ context.Context) (*inventory.OperationResponse, error) {
	return f.answer()
}

func (f *fakeInventory) AddCategory(_ context.Context, _ inventory.NewCategory) (*inventory.OperationResponse, error) {
	return f.answer()
}

func (f *fakeInventory) UpdateCategory(_ context.Context, id int, patch inventory.CategoryPatch) (*inventory.OperationResponse, error) {
	f.lastID = id
	f.lastPatch = patch
	return f.answer()
}

func (f *fakeInventory) DeleteCategory(_ context.Context, id int) (*inventory.OperationResponse, error) {
	f.lastID = id
	return f.answer()
}

func (f *fakeInventory) SaveCategories(_ context.Context, _ []stock.Category) (*inventory.OperationResponse, error) {
	return f.answer()
}

func (f *fakeInventory) SaveStock(_ context.Context, _ stock.Stock) (*inventory.OperationResponse, error) {
	return f.answer()
}

func (f *fakeInventory) AddStockItem(_ context.Context, item inventory.NewStockItem) (*inventory.OperationResponse, error) {
	f.lastItem = item
	return f.answer()
}

func (f *fakeInventory) SetLocale(_ context.Context, locale string) (*inventory.OperationResponse, error) {
	f.lastLocale = locale
	return f.answer()
}

func newTestModule(inv inventory.InventoryPort) *APIModule {
	m := NewModule(8080, &mockLogger{})
	m.inventory = inv
	m.app = m.newApp()
	return m
}

func doRequest(t *testing.T, m *APIModule, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodeError(t *testing.T, data []byte) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestHealthHandler(t *testing.T) {
	m := newTestModule(&fakeInventory{})
	status, data := doRequest(t, m, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, status)
	var h HealthResponse
	require.NoError(t, json.Unmarshal(data, &h))
	assert.Equal(t, "healthy", h.Status)
	assert.EqualValues(t, 8080, h.Details["port"])
}

func TestGetState(t *testing.T) {
	m := newTestModule(&fakeInventory{})
	status, data := doRequest(t, m, http.MethodGet, "/api/v1/state", "")

	assert.Equal(t, http.StatusOK, status)
	var snap inventory.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, inventory.PhaseEmpty, snap.State.Phase)
	assert.Equal(t, "local", snap.Backend)
}

func TestInitialize(t *testing.T) {
	t.Run("empty body uses defaults", func(t *testing.T) {
		inv := &fakeInventory{}
		m := newTestModule(inv)
		status, _ := doRequest(t, m, http.MethodPost, "/api/v1/initialize", "")

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, inventory.InitializeParams{}, inv.lastParams)
	})

	t.Run("household from body", func(t *testing.T) {
		inv := &fakeInventory{}
		m := newTestModule(inv)
		status, _ := doRequest(t, m, http.MethodPost, "/api/v1/initialize", `{"people":2,"days":14}`)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, inventory.InitializeParams{People: 2, Days: 14}, inv.lastParams)
	})

	t.Run("malformed body", func(t *testing.T) {
		m := newTestModule(&fakeInventory{})
		status, data := doRequest(t, m, http.MethodPost, "/api/v1/initialize", `{"people":`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid_request", decodeError(t, data).Error)
	})
}

func TestAddCategory(t *testing.T) {
	inv := &fakeInventory{resp: &inventory.OperationResponse{Success: true, ID: 11}}
	m := newTestModule(inv)
	status, data := doRequest(t, m, http.MethodPost, "/api/v1/categories", `{"productType":"Candles"}`)

	assert.Equal(t, http.StatusCreated, status)
	var result OperationResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.True(t, result.Success)
	assert.Equal(t, 11, result.ID)
}

func TestUpdateCategory(t *testing.T) {
	t.Run("passes id and patch", func(t *testing.T) {
		inv := &fakeInventory{}
		m := newTestModule(inv)
		status, _ := doRequest(t, m, http.MethodPatch, "/api/v1/categories/3", `{"quantity":7}`)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, 3, inv.lastID)
		require.NotNil(t, inv.lastPatch.Quantity)
		assert.Equal(t, 7, *inv.lastPatch.Quantity)
	})

	t.Run("invalid id", func(t *testing.T) {
		m := newTestModule(&fakeInventory{})
		status, data := doRequest(t, m, http.MethodPatch, "/api/v1/categories/abc", `{}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "validation_error", decodeError(t, data).Error)
	})
}

func TestDeleteCategory(t *testing.T) {
	inv := &fakeInventory{}
	m := newTestModule(inv)
	status, _ := doRequest(t, m, http.MethodDelete, "/api/v1/categories/5", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 5, inv.lastID)
}

func TestAddStockItem(t *testing.T) {
	inv := &fakeInventory{}
	m := newTestModule(inv)
	status, _ := doRequest(t, m, http.MethodPost, "/api/v1/stock/items", `{"typeId":2,"quantity":3}`)

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, inventory.NewStockItem{TypeID: 2, Quantity: 3}, inv.lastItem)
}

func TestSetLocale(t *testing.T) {
	inv := &fakeInventory{}
	m := newTestModule(inv)
	status, _ := doRequest(t, m, http.MethodPut, "/api/v1/locale", `{"locale":"fr_CH"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "fr_CH", inv.lastLocale)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		resp       *inventory.OperationResponse
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid input",
			resp:       &inventory.OperationResponse{ErrorKind: inventory.ErrorInvalid, Error: "Invalid input"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_error",
		},
		{
			name:       "not found",
			resp:       &inventory.OperationResponse{ErrorKind: inventory.ErrorNotFound, Error: "category 9 not found"},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "partial failure",
			resp:       &inventory.OperationResponse{ErrorKind: inventory.ErrorPartialFailure, Error: "Failed to save stock data"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "partial_failure",
		},
		{
			name:       "backend",
			resp:       &inventory.OperationResponse{ErrorKind: inventory.ErrorBackend, Error: "Failed to save product data"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "backend_error",
		},
		{
			name:       "service call failed",
			err:        errors.New("no responders"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "service_unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModule(&fakeInventory{resp: tt.resp, err: tt.err})
			status, data := doRequest(t, m, http.MethodPut, "/api/v1/stock", `{"products":[]}`)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, decodeError(t, data).Error)
		})
	}
}

func TestStart_RequiresInventory(t *testing.T) {
	m := NewModule(0, &mockLogger{})
	require.Error(t, m.Start(context.Background()))
	assert.False(t, m.Health(context.Background()).Healthy)
}
