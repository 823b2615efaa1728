// Package setup bootstraps and tears down the categories and stock records.
package setup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/preppal-io/prep-pal/domain/catalog"
	"github.com/preppal-io/prep-pal/domain/stock"
)

const (
	// DefaultHouseholdSize applies when no household size is given.
	DefaultHouseholdSize = 1
	// DefaultDurationDays applies when no duration is given.
	DefaultDurationDays = 30
)

// Store is the subset of the persistence gateway the orchestrator needs.
type Store interface {
	WriteCategories(ctx context.Context, rec stock.CategoriesRecord) error
	WriteStock(ctx context.Context, s stock.Stock) error
	DeleteAll(ctx context.Context) error
}

// Orchestrator writes a fresh dataset pair or deletes both records.
type Orchestrator struct {
	store    Store
	template catalog.Template
	now      func() time.Time
	logger   types.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTemplate replaces the bundled category template.
func WithTemplate(tpl catalog.Template) Option {
	return func(o *Orchestrator) {
		o.template = tpl
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// NewOrchestrator creates an orchestrator over store.
func NewOrchestrator(store Store, logger types.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:    store,
		template: catalog.Bundled(),
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Initialize derives the categories for locale and a household of people
// over days, writes them, then writes the empty default stock. Zero people
// or days select the defaults.
//
// The two writes are not atomic. When categories are written and the stock
// write fails, the error wraps both stock.ErrPartialFailure and
// stock.ErrBackend, and the categories record stays in place.
func (o *Orchestrator) Initialize(ctx context.Context, locale string, people, days int) (stock.ProductDataset, error) {
	if people == 0 {
		people = DefaultHouseholdSize
	}
	if days == 0 {
		days = DefaultDurationDays
	}
	if people < 0 || days < 0 {
		return stock.ProductDataset{}, fmt.Errorf("%w: household size %d and duration %d must be positive",
			stock.ErrInvalidInput, people, days)
	}
	if locale == "" {
		locale = catalog.DefaultLocale
	}

	categories := stock.CategoriesRecord{
		BaseCategories: catalog.DeriveCategories(o.template, locale, catalog.HouseholdQuantity(people, days)),
		LastUpdate:     stock.FormatTimestamp(o.now()),
	}
	defaultStock := stock.DefaultStock()

	if err := o.store.WriteCategories(ctx, categories); err != nil {
		o.logger.Error("Failed to write initial categories", "locale", locale, "error", err)
		return stock.ProductDataset{}, fmt.Errorf("failed to initialize categories: %w", err)
	}
	if err := o.store.WriteStock(ctx, defaultStock); err != nil {
		o.logger.Error("Initial stock write failed after categories were written",
			"locale", locale,
			"error", err)
		return stock.ProductDataset{}, errors.Join(
			fmt.Errorf("%w: categories written, stock not written", stock.ErrPartialFailure),
			err,
		)
	}

	o.logger.Info("Databases initialized",
		"locale", locale,
		"people", people,
		"days", days,
		"categories", len(categories.BaseCategories))

	return stock.ProductDataset{
		LastCategoriesUpdate: categories.LastUpdate,
		BaseCategories:       categories.BaseCategories,
		Stock:                defaultStock,
	}, nil
}

// Reset deletes categories, then stock. It does not reinitialize.
func (o *Orchestrator) Reset(ctx context.Context) error {
	if err := o.store.DeleteAll(ctx); err != nil {
		o.logger.Error("Failed to reset databases", "error", err)
		return fmt.Errorf("failed to reset databases: %w", err)
	}
	o.logger.Info("Databases reset")
	return nil
}
