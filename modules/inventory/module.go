// Package inventory is the application state module. It owns the cached
// product dataset and exposes its operations as request-reply services.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/preppal-io/prep-pal/modules/hoststore"
	"github.com/preppal-io/prep-pal/modules/setup"
	"github.com/preppal-io/prep-pal/modules/storage"
)

// ModuleName is the name other modules depend on.
const ModuleName = "inventory"

// LocalBucketName is the kv bucket used outside the privileged environment.
const LocalBucketName = "mystock-local"

// Config configures the module.
type Config struct {
	Privileged     bool
	Locale         string
	RequestTimeout time.Duration
}

// Module wires the storage backend, the orchestrator and the coordinator.
type Module struct {
	cfg         Config
	kv          *kvjetstream.PluginModule
	host        storage.HostPort
	coordinator *Coordinator
	logger      types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                             = (*Module)(nil)
	_ mono.UsePluginModule                    = (*Module)(nil)
	_ mono.DependentModule                    = (*Module)(nil)
	_ mono.SetDependencyServiceContainerModule = (*Module)(nil)
	_ mono.ServiceProviderModule              = (*Module)(nil)
	_ mono.HealthCheckableModule              = (*Module)(nil)
)

// NewModule creates a new inventory module.
func NewModule(cfg Config, logger types.Logger) *Module {
	return &Module{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return ModuleName
}

// Dependencies returns the host store in the privileged environment only.
func (m *Module) Dependencies() []string {
	if m.cfg.Privileged {
		return []string{hoststore.ModuleName}
	}
	return nil
}

// SetDependencyServiceContainer receives the host store container.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == hoststore.ModuleName {
		m.host = hoststore.NewAdapter(container)
	}
}

// SetPlugin receives the KV plugin from the framework.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias == "kv" {
		kv, ok := plugin.(*kvjetstream.PluginModule)
		if !ok {
			m.logger.Error("Invalid plugin type for kv",
				"alias", alias,
				"expected", "*kvjetstream.PluginModule")
			return
		}
		m.kv = kv
		m.logger.Info("Received KV plugin", "alias", alias)
	}
}

// Start selects the storage backend once and loads the dataset.
func (m *Module) Start(ctx context.Context) error {
	opts := storage.Options{
		Privileged:  m.cfg.Privileged,
		Host:        m.host,
		HostTimeout: m.cfg.RequestTimeout,
	}
	if m.kv != nil {
		bucket := m.kv.Bucket(LocalBucketName)
		if bucket == nil {
			return fmt.Errorf("bucket '%s' not found in KV plugin", LocalBucketName)
		}
		opts.Local = bucket
	}

	provider, err := storage.SelectProvider(opts)
	if err != nil {
		return fmt.Errorf("failed to select storage provider: %w", err)
	}

	gateway := storage.NewGateway(provider, m.logger)
	orchestrator := setup.NewOrchestrator(gateway, m.logger)
	m.coordinator = NewCoordinator(gateway, orchestrator, m.logger, WithLocale(m.cfg.Locale))

	m.coordinator.CheckFilesAndLoad(ctx)
	snap := m.coordinator.Snapshot()

	m.logger.Info("Inventory module started",
		"backend", provider.Name(),
		"locale", snap.Locale,
		"phase", snap.State.Phase)
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Inventory module stopped")
	return nil
}

// Health reports the coordinator phase.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.coordinator == nil {
		return mono.HealthStatus{Healthy: false, Message: "not started"}
	}

	snap := m.coordinator.Snapshot()
	status := mono.HealthStatus{
		Healthy: snap.State.Phase != PhaseError,
		Message: "operational",
		Details: map[string]any{
			"backend":    snap.Backend,
			"phase":      snap.State.Phase,
			"loading":    snap.State.Loading,
			"categories": len(snap.Dataset.BaseCategories),
			"products":   len(snap.Dataset.Stock.Products),
		},
	}
	if snap.State.Error != nil {
		status.Message = snap.State.Error.Message
	}
	return status
}

// Coordinator returns the coordinator. It is nil before Start.
func (m *Module) Coordinator() *Coordinator {
	return m.coordinator
}
