package inventory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/preppal-io/prep-pal/domain/stock"
)

// InventoryPort is the driving side of the inventory module.
type InventoryPort interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	Load(ctx context.Context) (*OperationResponse, error)
	Initialize(ctx context.Context, params InitializeParams) (*OperationResponse, error)
	Reset(ctx context.Context) (*OperationResponse, error)
	AddCategory(ctx context.Context, fields NewCategory) (*OperationResponse, error)
	UpdateCategory(ctx context.Context, id int, patch CategoryPatch) (*OperationResponse, error)
	DeleteCategory(ctx context.Context, id int) (*OperationResponse, error)
	SaveCategories(ctx context.Context, categories []stock.Category) (*OperationResponse, error)
	SaveStock(ctx context.Context, s stock.Stock) (*OperationResponse, error)
	AddStockItem(ctx context.Context, item NewStockItem) (*OperationResponse, error)
	SetLocale(ctx context.Context, locale string) (*OperationResponse, error)
}

// inventoryAdapter wraps ServiceContainer for type-safe cross-module communication.
type inventoryAdapter struct {
	container mono.ServiceContainer
}

// NewInventoryAdapter creates a new adapter for inventory services.
// container is the ServiceContainer from the inventory module received via SetDependencyServiceContainer.
func NewInventoryAdapter(container mono.ServiceContainer) InventoryPort {
	if container == nil {
		panic("inventory adapter requires non-nil ServiceContainer")
	}
	return &inventoryAdapter{container: container}
}

// Snapshot fetches the dataset and state via the snapshot service.
func (a *inventoryAdapter) Snapshot(ctx context.Context) (*Snapshot, error) {
	var resp SnapshotResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceSnapshot,
		json.Marshal,
		json.Unmarshal,
		&EmptyRequest{},
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceSnapshot, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%s: %s", ServiceSnapshot, resp.Error)
	}
	return &resp.Snapshot, nil
}

// Load reloads the dataset via the load service.
func (a *inventoryAdapter) Load(ctx context.Context) (*OperationResponse, error) {
	return a.call(ctx, ServiceLoad, &EmptyRequest{})
}

// Initialize writes a fresh dataset via the initialize service.
func (a *inventoryAdapter) Initialize(ctx context.Context, params InitializeParams) (*OperationResponse, error) {
	return a.call(ctx, ServiceInitialize, &params)
}

// Reset deletes both records via the reset service.
func (a *inventoryAdapter) Reset(ctx context.Context) (*OperationResponse, error) {
	return a.call(ctx, ServiceReset, &EmptyRequest{})
}

// AddCategory adds a category via the add-category service.
func (a *inventoryAdapter) AddCategory(ctx context.Context, fields NewCategory) (*OperationResponse, error) {
	return a.call(ctx, ServiceAddCategory, &fields)
}

// UpdateCategory patches a category via the update-category service.
func (a *inventoryAdapter) UpdateCategory(ctx context.Context, id int, patch CategoryPatch) (*OperationResponse, error) {
	return a.call(ctx, ServiceUpdateCategory, &UpdateCategoryRequest{ID: id, Patch: patch})
}

// DeleteCategory deletes a category via the delete-category service.
func (a *inventoryAdapter) DeleteCategory(ctx context.Context, id int) (*OperationResponse, error) {
	return a.call(ctx, ServiceDeleteCategory, &DeleteCategoryRequest{ID: id})
}

// SaveCategories replaces the categories via the save-categories service.
func (a *inventoryAdapter) SaveCategories(ctx context.Context, categories []stock.Category) (*OperationResponse, error) {
	return a.call(ctx, ServiceSaveCategories, &SaveCategoriesRequest{BaseCategories: categories})
}

// SaveStock replaces the stock via the save-stock service.
func (a *inventoryAdapter) SaveStock(ctx context.Context, s stock.Stock) (*OperationResponse, error) {
	return a.call(ctx, ServiceSaveStock, &SaveStockRequest{Stock: s})
}

// AddStockItem adds a stock item via the add-stock-item service.
func (a *inventoryAdapter) AddStockItem(ctx context.Context, item NewStockItem) (*OperationResponse, error) {
	return a.call(ctx, ServiceAddStockItem, &item)
}

// SetLocale changes the locale via the set-locale service.
func (a *inventoryAdapter) SetLocale(ctx context.Context, locale string) (*OperationResponse, error) {
	return a.call(ctx, ServiceSetLocale, &SetLocaleRequest{Locale: locale})
}

func (a *inventoryAdapter) call(ctx context.Context, service string, req any) (*OperationResponse, error) {
	var resp OperationResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", service, err)
	}
	return &resp, nil
}
