package inventory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Service names.
const (
	ServiceSnapshot       = "snapshot"
	ServiceLoad           = "load"
	ServiceInitialize     = "initialize"
	ServiceReset          = "reset"
	ServiceAddCategory    = "add-category"
	ServiceUpdateCategory = "update-category"
	ServiceDeleteCategory = "delete-category"
	ServiceSaveCategories = "save-categories"
	ServiceSaveStock      = "save-stock"
	ServiceAddStockItem   = "add-stock-item"
	ServiceSetLocale      = "set-locale"
)

const errNotStarted = "inventory module not started"

// RegisterServices registers the inventory services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceSnapshot, json.Unmarshal, json.Marshal, m.snapshot,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceSnapshot, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceLoad, json.Unmarshal, json.Marshal, m.load,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceLoad, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceInitialize, json.Unmarshal, json.Marshal, m.initialize,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceInitialize, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceReset, json.Unmarshal, json.Marshal, m.reset,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceReset, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceAddCategory, json.Unmarshal, json.Marshal, m.addCategory,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceAddCategory, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdateCategory, json.Unmarshal, json.Marshal, m.updateCategory,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdateCategory, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDeleteCategory, json.Unmarshal, json.Marshal, m.deleteCategory,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDeleteCategory, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceSaveCategories, json.Unmarshal, json.Marshal, m.saveCategories,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceSaveCategories, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceSaveStock, json.Unmarshal, json.Marshal, m.saveStock,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceSaveStock, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceAddStockItem, json.Unmarshal, json.Marshal, m.addStockItem,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceAddStockItem, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceSetLocale, json.Unmarshal, json.Marshal, m.setLocale,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceSetLocale, err)
	}

	m.logger.Info("Registered services", "module", ModuleName)
	return nil
}

func (m *Module) snapshot(_ context.Context, _ EmptyRequest, _ *mono.Msg) (SnapshotResponse, error) {
	if m.coordinator == nil {
		return SnapshotResponse{Error: errNotStarted}, nil
	}
	return SnapshotResponse{Snapshot: m.coordinator.Snapshot()}, nil
}

func (m *Module) load(ctx context.Context, _ EmptyRequest, _ *mono.Msg) (OperationResponse, error) {
	if m.coordinator == nil {
		return OperationResponse{Error: errNotStarted}, nil
	}
	return m.result(m.coordinator.LoadProductData(ctx), 0), nil
}

func (m *Module) initialize(ctx context.Context, req InitializeParams, _ *mono.Msg) (OperationResponse, error) {
	if m.coordinator == nil {
		return OperationResponse{Error: errNotStarted}, nil
	}
	return m.result(m.coordinator.InitializeData(ctx, req), 0), nil
}

func (m *Module) reset(ctx context.Context, _ EmptyRequest, _ *mono.Msg) (OperationResponse, error) {
	if m.coordinator == nil {
		return OperationResponse{Error: errNotStarted}, nil
	}
	return m.result(m.coordinator.ResetDatabases(ctx), 0), nil
}

func (m *Module) addCategory(ctx context.Context, req NewCategory, _ *mono.Msg) (OperationResponse, error) {
	if m.coordinator == nil {
		return OperationResponse{Error: errNotStarted}, nil
	}
	id, ok := m.coordinator.AddCategory(ctx, req)
	return m.result(ok, id), nil
}

func (m *Module) updateCategory(ctx context.Context, req UpdateCategoryRequest, _ *mono.Msg) (OperationResponse, error) {
	if m.coordinator == nil {
		return OperationResponse{Error: errNotStarted}, nil
	}
	if !m.hasCategory(req.ID) {
		return m.notFound(req.ID), nil
	}
	return m.result(m.coordinator.UpdateCategory(ctx, req.ID, req.Patch), 0), nil
}

func (m *Module) deleteCategory(ctx context.Context, req DeleteCategoryRequest, _ *mono.Msg) (OperationResponse, error) {
	if m.coordinator == nil {
		return OperationResponse{Error: errNotStarted}, nil
	}
	if !m.hasCategory(req.ID) {
		return m.notFound(req.ID), nil
	}
	return m.result(m.coordinator.DeleteCategory(ctx, req.ID), 0), nil
}

func (m *Module) saveCategories(ctx context.Context, req SaveCategoriesRequest, _ *mono.Msg) (OperationResponse, error) {
	if m.coordinator == nil {
		return OperationResponse{Error: errNotStarted}, nil
	}
	return m.result(m.coordinator.SaveProductCategoriesData(ctx, req.BaseCategories), 0), nil
}

func (m *Module) saveStock(ctx context.Context, req SaveStockRequest, _ *mono.Msg) (OperationResponse, error) {
	if m.coordinator == nil {
		return OperationResponse{Error: errNotStarted}, nil
	}
	return m.result(m.coordinator.SaveStockData(ctx, req.Stock), 0), nil
}

func (m *Module) addStockItem(ctx context.Context, req NewStockItem, _ *mono.Msg) (OperationResponse, error) {
	if m.coordinator == nil {
		return OperationResponse{Error: errNotStarted}, nil
	}
	return m.result(m.coordinator.AddStockItem(ctx, req), 0), nil
}

func (m *Module) setLocale(_ context.Context, req SetLocaleRequest, _ *mono.Msg) (OperationResponse, error) {
	if m.coordinator == nil {
		return OperationResponse{Error: errNotStarted}, nil
	}
	m.coordinator.SetLocale(req.Locale)
	return m.result(true, 0), nil
}

// result builds the response of an operation from the coordinator state.
func (m *Module) result(ok bool, id int) OperationResponse {
	snap := m.coordinator.Snapshot()
	resp := OperationResponse{Success: ok, ID: id, Snapshot: snap}
	if ok {
		return resp
	}

	resp.ErrorKind = ErrorBackend
	resp.Error = "operation failed"
	if snap.State.Error != nil {
		resp.ErrorKind = snap.State.Error.Kind
		resp.Error = snap.State.Error.Message
	}
	return resp
}

func (m *Module) hasCategory(id int) bool {
	for _, c := range m.coordinator.Snapshot().Dataset.BaseCategories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (m *Module) notFound(id int) OperationResponse {
	return OperationResponse{
		Snapshot:  m.coordinator.Snapshot(),
		ErrorKind: ErrorNotFound,
		Error:     fmt.Sprintf("category %d not found", id),
	}
}
