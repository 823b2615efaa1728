package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/preppal-io/prep-pal/domain/stock"
)

// Gateway reads and writes the three records through a single provider.
// Errors wrap stock.ErrNotFound or stock.ErrBackend.
type Gateway struct {
	provider Provider
	logger   types.Logger
}

// NewGateway creates a gateway over provider.
func NewGateway(provider Provider, logger types.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		logger:   logger,
	}
}

// Backend returns the provider name.
func (g *Gateway) Backend() string {
	return g.provider.Name()
}

// Exists reports whether record holds data. It never fails; any lookup
// error counts as false.
func (g *Gateway) Exists(ctx context.Context, record stock.Record) bool {
	payload, err := g.provider.Lookup(ctx, record)
	if err != nil {
		g.logger.Warn("Record existence check failed",
			"record", record,
			"backend", g.provider.Name(),
			"error", err)
		return false
	}
	return payload.State == Present
}

// ReadCategories reads the categories record.
func (g *Gateway) ReadCategories(ctx context.Context) (stock.CategoriesRecord, error) {
	var rec stock.CategoriesRecord
	if err := g.read(ctx, stock.RecordCategories, &rec); err != nil {
		return stock.CategoriesRecord{}, err
	}
	return rec, nil
}

// ReadStock reads the stock record.
func (g *Gateway) ReadStock(ctx context.Context) (stock.Stock, error) {
	var s stock.Stock
	if err := g.read(ctx, stock.RecordStock, &s); err != nil {
		return stock.Stock{}, err
	}
	return s, nil
}

// ReadProfile reads the user profile record.
func (g *Gateway) ReadProfile(ctx context.Context) (stock.UserProfile, error) {
	var p stock.UserProfile
	if err := g.read(ctx, stock.RecordProfile, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// WriteCategories replaces the categories record.
func (g *Gateway) WriteCategories(ctx context.Context, rec stock.CategoriesRecord) error {
	return g.write(ctx, stock.RecordCategories, rec)
}

// WriteStock replaces the stock record.
func (g *Gateway) WriteStock(ctx context.Context, s stock.Stock) error {
	return g.write(ctx, stock.RecordStock, s)
}

// WriteProfile replaces the user profile record.
func (g *Gateway) WriteProfile(ctx context.Context, p stock.UserProfile) error {
	return g.write(ctx, stock.RecordProfile, p)
}

// Delete removes record. Deleting an absent record succeeds.
func (g *Gateway) Delete(ctx context.Context, record stock.Record) error {
	if !record.Valid() {
		return fmt.Errorf("%w: %q", stock.ErrUnknownRecord, record)
	}
	if err := g.provider.Remove(ctx, record); err != nil {
		g.logger.Error("Failed to delete record",
			"record", record,
			"backend", g.provider.Name(),
			"error", err)
		return fmt.Errorf("%w: delete %s: %v", stock.ErrBackend, record, err)
	}
	g.logger.Debug("Record deleted", "record", record, "backend", g.provider.Name())
	return nil
}

// DeleteAll deletes categories, then stock. It stops at the first failure
// and does not restore anything already deleted.
func (g *Gateway) DeleteAll(ctx context.Context) error {
	for _, record := range []stock.Record{stock.RecordCategories, stock.RecordStock} {
		if err := g.Delete(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (g *Gateway) read(ctx context.Context, record stock.Record, v any) error {
	payload, err := g.provider.Lookup(ctx, record)
	if err != nil {
		g.logger.Error("Failed to read record",
			"record", record,
			"backend", g.provider.Name(),
			"error", err)
		return fmt.Errorf("%w: read %s: %v", stock.ErrBackend, record, err)
	}
	if payload.State != Present {
		return fmt.Errorf("%w: %s is %s", stock.ErrNotFound, record, payload.State)
	}
	if err := json.Unmarshal(payload.Data, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", stock.ErrBackend, record, err)
	}
	return nil
}

func (g *Gateway) write(ctx context.Context, record stock.Record, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", stock.ErrBackend, record, err)
	}
	if err := g.provider.Store(ctx, record, data); err != nil {
		g.logger.Error("Failed to write record",
			"record", record,
			"backend", g.provider.Name(),
			"error", err)
		return fmt.Errorf("%w: write %s: %v", stock.ErrBackend, record, err)
	}
	g.logger.Debug("Record written",
		"record", record,
		"backend", g.provider.Name(),
		"bytes", len(data))
	return nil
}
