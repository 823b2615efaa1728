package hoststore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/preppal-io/prep-pal/domain/stock"
)

// ModuleName is the name other modules depend on.
const ModuleName = "hoststore"

// BucketName is the object bucket holding the record files.
const BucketName = "mystock"

// Module is the privileged host process. It serves read, write and delete
// for every record on an fs-jetstream bucket.
type Module struct {
	storage *fsjetstream.PluginModule
	bucket  fsjetstream.FileStoragePort
	logger  types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new host store module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return ModuleName
}

// SetPlugin receives the storage plugin from the framework.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias == "storage" {
		storage, ok := plugin.(*fsjetstream.PluginModule)
		if !ok {
			m.logger.Error("Invalid plugin type for storage",
				"alias", alias,
				"expected", "*fsjetstream.PluginModule")
			return
		}
		m.storage = storage
		m.logger.Info("Received storage plugin", "alias", alias)
	}
}

// Start resolves the record bucket.
func (m *Module) Start(_ context.Context) error {
	if m.storage == nil {
		return fmt.Errorf("required plugin 'storage' not registered")
	}

	m.bucket = m.storage.Bucket(BucketName)
	if m.bucket == nil {
		return fmt.Errorf("bucket '%s' not found in storage plugin", BucketName)
	}

	m.logger.Info("Host store module started", "bucket", BucketName)
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Host store module stopped")
	return nil
}

// Health reports whether the bucket is reachable.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.bucket == nil {
		return mono.HealthStatus{Healthy: false, Message: "bucket not initialized"}
	}
	records, err := m.listRecords()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: err.Error()}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"bucket":  BucketName,
			"records": records,
		},
	}
}

// RegisterServices registers read, write and delete for every record.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	names := make([]string, 0, 3*len(stock.Records()))
	for _, record := range stock.Records() {
		if err := helper.RegisterTypedRequestReplyService(
			container, record.Operation(stock.VerbRead), json.Unmarshal, json.Marshal, m.readHandler(record),
		); err != nil {
			return fmt.Errorf("failed to register %s service: %w", record.Operation(stock.VerbRead), err)
		}
		if err := helper.RegisterTypedRequestReplyService(
			container, record.Operation(stock.VerbWrite), json.Unmarshal, json.Marshal, m.writeHandler(record),
		); err != nil {
			return fmt.Errorf("failed to register %s service: %w", record.Operation(stock.VerbWrite), err)
		}
		if err := helper.RegisterTypedRequestReplyService(
			container, record.Operation(stock.VerbDelete), json.Unmarshal, json.Marshal, m.deleteHandler(record),
		); err != nil {
			return fmt.Errorf("failed to register %s service: %w", record.Operation(stock.VerbDelete), err)
		}
		names = append(names,
			record.Operation(stock.VerbRead),
			record.Operation(stock.VerbWrite),
			record.Operation(stock.VerbDelete))
	}

	m.logger.Info("Registered services", "module", ModuleName, "services", names)
	return nil
}
