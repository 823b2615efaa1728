package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/preppal-io/prep-pal/domain/catalog"
	"github.com/preppal-io/prep-pal/domain/stock"
)

// Gateway is the persistence the coordinator reads from and writes to.
type Gateway interface {
	Backend() string
	Exists(ctx context.Context, record stock.Record) bool
	ReadCategories(ctx context.Context) (stock.CategoriesRecord, error)
	ReadStock(ctx context.Context) (stock.Stock, error)
	WriteCategories(ctx context.Context, rec stock.CategoriesRecord) error
	WriteStock(ctx context.Context, s stock.Stock) error
}

// Initializer bootstraps and tears down the dataset pair.
type Initializer interface {
	Initialize(ctx context.Context, locale string, people, days int) (stock.ProductDataset, error)
	Reset(ctx context.Context) error
}

// Coordinator owns the cached dataset and its state. Mutating operations
// run one at a time; Snapshot may run alongside them and sees Loading set.
// Operations report success as a bool and record failures in the state.
type Coordinator struct {
	opMu sync.Mutex

	mu      sync.RWMutex
	dataset stock.ProductDataset
	state   State
	locale  string

	gateway Gateway
	setup   Initializer
	now     func() time.Time
	logger  types.Logger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLocale sets the initial locale.
func WithLocale(locale string) CoordinatorOption {
	return func(c *Coordinator) {
		if locale != "" {
			c.locale = locale
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		c.now = now
	}
}

// NewCoordinator creates a coordinator with an empty dataset.
func NewCoordinator(gateway Gateway, setup Initializer, logger types.Logger, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		dataset: stock.EmptyDataset(),
		state:   State{Phase: PhaseUninitialized},
		locale:  catalog.DefaultLocale,
		gateway: gateway,
		setup:   setup,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the dataset and state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := c.state
	if c.state.Error != nil {
		e := *c.state.Error
		state.Error = &e
	}
	return Snapshot{
		Dataset: c.dataset.Clone(),
		State:   state,
		Locale:  c.locale,
		Backend: c.gateway.Backend(),
	}
}

// Locale returns the current locale.
func (c *Coordinator) Locale() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locale
}

// SetLocale changes the locale used for messages and initialization.
// An empty locale selects en_US.
func (c *Coordinator) SetLocale(locale string) {
	if locale == "" {
		locale = catalog.DefaultLocale
	}
	c.mu.Lock()
	c.locale = locale
	c.mu.Unlock()
}

// CheckFilesAndLoad checks both records and loads them when both exist.
// Otherwise the dataset stays empty.
func (c *Coordinator) CheckFilesAndLoad(ctx context.Context) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	c.state.Phase = PhaseChecking
	c.state.Loading = true
	c.mu.Unlock()
	defer c.finish()

	files := FilesExist{
		Categories: c.gateway.Exists(ctx, stock.RecordCategories),
		Stock:      c.gateway.Exists(ctx, stock.RecordStock),
	}
	c.logger.Info("Record existence checked",
		"categories", files.Categories,
		"stock", files.Stock,
		"backend", c.gateway.Backend())

	c.mu.Lock()
	c.state.FilesExist = files
	c.mu.Unlock()

	if files.Categories && files.Stock {
		return c.load(ctx)
	}

	c.mu.Lock()
	c.dataset = stock.EmptyDataset()
	c.state.Phase = PhaseEmpty
	c.mu.Unlock()
	return true
}

// LoadProductData reads both records into the cache.
func (c *Coordinator) LoadProductData(ctx context.Context) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.begin()
	defer c.finish()

	return c.load(ctx)
}

// InitializeData writes a fresh dataset for the current locale and loads it.
func (c *Coordinator) InitializeData(ctx context.Context, params InitializeParams) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.begin()
	defer c.finish()

	if err := validateInput(params); err != nil {
		c.fail(err, msgInvalidInput)
		return false
	}

	if _, err := c.setup.Initialize(ctx, c.Locale(), params.People, params.Days); err != nil {
		if errors.Is(err, stock.ErrPartialFailure) {
			c.mu.Lock()
			c.state.FilesExist = FilesExist{Categories: true, Stock: c.state.FilesExist.Stock}
			c.mu.Unlock()
		}
		c.fail(err, msgFailedSavingData)
		c.setPhase(PhaseError)
		return false
	}

	c.mu.Lock()
	c.state.FilesExist = FilesExist{Categories: true, Stock: true}
	c.mu.Unlock()

	return c.load(ctx)
}

// ResetDatabases deletes both records and empties the cache. It does not
// reinitialize.
func (c *Coordinator) ResetDatabases(ctx context.Context) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.begin()
	defer c.finish()

	if err := c.setup.Reset(ctx); err != nil {
		c.fail(err, msgFailedDeletingData)
		return false
	}

	c.mu.Lock()
	c.dataset = stock.EmptyDataset()
	c.state.FilesExist = FilesExist{}
	c.state.Error = nil
	c.state.Phase = PhaseEmpty
	c.mu.Unlock()
	return true
}

// SaveProductCategoriesData replaces and persists the categories, stamping
// the update time.
func (c *Coordinator) SaveProductCategoriesData(ctx context.Context, categories []stock.Category) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.begin()
	defer c.finish()

	if err := checkUniqueIDs(categories); err != nil {
		c.fail(err, msgInvalidInput)
		return false
	}
	return c.saveCategories(ctx, categories)
}

// SaveStockData replaces and persists the stock.
func (c *Coordinator) SaveStockData(ctx context.Context, s stock.Stock) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.begin()
	defer c.finish()

	if err := checkQuantities(s); err != nil {
		c.fail(err, msgInvalidInput)
		return false
	}
	return c.saveStock(ctx, s)
}

// AddCategory appends a category with the next free id and persists the
// categories. It returns the new id, or 0 and false on failure.
func (c *Coordinator) AddCategory(ctx context.Context, fields NewCategory) (int, bool) {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.begin()
	defer c.finish()

	if err := validateInput(fields); err != nil {
		c.fail(err, msgInvalidInput)
		return 0, false
	}

	categories := c.currentCategories()
	id := stock.NextCategoryID(categories)

	links := []string{}
	if fields.OnlineShopLink != "" {
		links = []string{fields.OnlineShopLink}
	}
	categories = append(categories, stock.Category{
		ID:                     id,
		OnlineShopLink:         links,
		UsualExpiryCheckDays:   fields.UsualExpiryCheckDays,
		QuantityOverride:       fields.QuantityOverride,
		RecommendedQtyDayAdult: fields.RecommendedQtyDayAdult,
		ProductType:            fields.ProductType,
		Description:            fields.Description,
		DefaultUnit:            fields.DefaultUnit,
		Quantity:               fields.Quantity,
	})

	if !c.saveCategories(ctx, categories) {
		return 0, false
	}
	c.logger.Info("Category added", "id", id, "product_type", fields.ProductType)
	return id, true
}

// UpdateCategory merges patch into the category with id and persists the
// categories. An unknown id returns false without recording an error.
func (c *Coordinator) UpdateCategory(ctx context.Context, id int, patch CategoryPatch) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.begin()
	defer c.finish()

	if err := validateInput(patch); err != nil {
		c.fail(err, msgInvalidInput)
		return false
	}

	categories := c.currentCategories()
	idx := stock.FindCategory(categories, id)
	if idx == -1 {
		return false
	}
	categories[idx] = applyPatch(categories[idx], patch)

	return c.saveCategories(ctx, categories)
}

// DeleteCategory removes the category with id and every stock item of that
// type, then persists categories and stock in that order. Both writes are
// attempted; it returns true only when both succeed. When exactly one
// succeeds the error kind is partial_failure.
func (c *Coordinator) DeleteCategory(ctx context.Context, id int) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.begin()
	defer c.finish()

	categories := c.currentCategories()
	idx := stock.FindCategory(categories, id)
	if idx == -1 {
		return false
	}
	categories = append(categories[:idx], categories[idx+1:]...)

	c.mu.RLock()
	remaining := c.dataset.Stock.WithoutType(id)
	c.mu.RUnlock()

	categoriesSaved := c.saveCategories(ctx, categories)
	stockSaved := c.saveStock(ctx, remaining)

	if categoriesSaved != stockSaved {
		key := msgFailedSavingStockData
		if !categoriesSaved {
			key = msgFailedSavingData
		}
		c.fail(fmt.Errorf("%w: category %d delete persisted only partly", stock.ErrPartialFailure, id), key)
	}
	return categoriesSaved && stockSaved
}

// AddStockItem appends an item of an existing category dated today, with
// the next check after the category's expiry interval, and persists the
// stock. A blank description becomes the localized "Unnamed product".
func (c *Coordinator) AddStockItem(ctx context.Context, item NewStockItem) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.begin()
	defer c.finish()

	if err := validateInput(item); err != nil {
		c.fail(err, msgInvalidInput)
		return false
	}

	c.mu.RLock()
	idx := stock.FindCategory(c.dataset.BaseCategories, item.TypeID)
	var category stock.Category
	if idx != -1 {
		category = c.dataset.BaseCategories[idx]
	}
	current := c.dataset.Stock.Clone()
	locale := c.locale
	c.mu.RUnlock()

	if idx == -1 {
		c.fail(fmt.Errorf("%w: category %d does not exist", stock.ErrInvalidInput, item.TypeID), msgInvalidInput)
		return false
	}

	description := strings.TrimSpace(item.Description)
	if description == "" {
		description = translate(msgUnnamedProduct, locale)
	}

	today := stock.FormatDate(c.now())
	nextCheck, err := stock.AddDays(today, stock.CheckInterval(&category))
	if err != nil {
		c.fail(err, msgFailedSavingStockData)
		return false
	}

	current.Products = append(current.Products, stock.StockItem{
		TypeID:      item.TypeID,
		Description: description,
		Quantity:    item.Quantity,
		AddedDate:   today,
		CheckedDate: today,
		NextCheck:   nextCheck,
	})
	return c.saveStock(ctx, current)
}

// load reads both records. The caller holds opMu.
func (c *Coordinator) load(ctx context.Context) bool {
	rec, err := c.gateway.ReadCategories(ctx)
	if err != nil {
		c.fail(err, msgFailedLoadingData)
		c.setPhase(PhaseError)
		return false
	}
	s, err := c.gateway.ReadStock(ctx)
	if err != nil {
		c.fail(err, msgFailedLoadingData)
		c.setPhase(PhaseError)
		return false
	}

	dataset := stock.ProductDataset{
		LastCategoriesUpdate: rec.LastUpdate,
		BaseCategories:       stock.CloneCategories(rec.BaseCategories),
		Stock:                s.Clone(),
	}

	c.mu.Lock()
	c.dataset = dataset
	c.state.Error = nil
	c.state.Phase = PhaseReady
	c.mu.Unlock()

	c.logger.Info("Product data loaded",
		"categories", len(dataset.BaseCategories),
		"products", len(dataset.Stock.Products))
	return true
}

// saveCategories persists categories and updates the cache on success.
// The caller holds opMu.
func (c *Coordinator) saveCategories(ctx context.Context, categories []stock.Category) bool {
	rec := stock.CategoriesRecord{
		BaseCategories: stock.CloneCategories(categories),
		LastUpdate:     stock.FormatTimestamp(c.now()),
	}
	if err := c.gateway.WriteCategories(ctx, rec); err != nil {
		c.fail(err, msgFailedSavingData)
		return false
	}

	c.mu.Lock()
	c.dataset = stock.ProductDataset{
		LastCategoriesUpdate: rec.LastUpdate,
		BaseCategories:       rec.BaseCategories,
		Stock:                c.dataset.Stock,
	}
	c.state.FilesExist.Categories = true
	c.state.Error = nil
	c.state.Phase = phaseFor(c.state.FilesExist)
	c.mu.Unlock()
	return true
}

// saveStock persists s and updates the cache on success. The caller holds
// opMu.
func (c *Coordinator) saveStock(ctx context.Context, s stock.Stock) bool {
	s = s.Clone()
	if err := c.gateway.WriteStock(ctx, s); err != nil {
		c.fail(err, msgFailedSavingStockData)
		return false
	}

	c.mu.Lock()
	c.dataset = stock.ProductDataset{
		LastCategoriesUpdate: c.dataset.LastCategoriesUpdate,
		BaseCategories:       c.dataset.BaseCategories,
		Stock:                s,
	}
	c.state.FilesExist.Stock = true
	c.state.Error = nil
	c.state.Phase = phaseFor(c.state.FilesExist)
	c.mu.Unlock()
	return true
}

func (c *Coordinator) currentCategories() []stock.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return stock.CloneCategories(c.dataset.BaseCategories)
}

func (c *Coordinator) begin() {
	c.mu.Lock()
	c.state.Loading = true
	c.mu.Unlock()
}

func (c *Coordinator) finish() {
	c.mu.Lock()
	c.state.Loading = false
	c.mu.Unlock()
}

func (c *Coordinator) setPhase(p Phase) {
	c.mu.Lock()
	c.state.Phase = p
	c.mu.Unlock()
}

// fail records err under the localized message key.
func (c *Coordinator) fail(err error, key string) {
	c.mu.Lock()
	c.state.Error = &ErrorState{
		Kind:    kindOf(err),
		Message: translate(key, c.locale),
	}
	c.mu.Unlock()

	c.logger.Error("Inventory operation failed", "message", key, "error", err)
}

func kindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, stock.ErrPartialFailure):
		return ErrorPartialFailure
	case errors.Is(err, stock.ErrInvalidInput):
		return ErrorInvalid
	case errors.Is(err, stock.ErrNotFound):
		return ErrorNotFound
	default:
		return ErrorBackend
	}
}

func phaseFor(files FilesExist) Phase {
	if files.Categories && files.Stock {
		return PhaseReady
	}
	return PhaseEmpty
}

func applyPatch(c stock.Category, p CategoryPatch) stock.Category {
	if p.OnlineShopLink != nil {
		c.OnlineShopLink = append([]string{}, (*p.OnlineShopLink)...)
	}
	if p.UsualExpiryCheckDays != nil {
		c.UsualExpiryCheckDays = *p.UsualExpiryCheckDays
	}
	if p.QuantityOverride != nil {
		c.QuantityOverride = *p.QuantityOverride
	}
	if p.RecommendedQtyDayAdult != nil {
		c.RecommendedQtyDayAdult = *p.RecommendedQtyDayAdult
	}
	if p.ProductType != nil {
		c.ProductType = *p.ProductType
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.DefaultUnit != nil {
		unit := *p.DefaultUnit
		c.DefaultUnit = &unit
	}
	if p.Quantity != nil {
		c.Quantity = *p.Quantity
	}
	return c
}

func checkUniqueIDs(categories []stock.Category) error {
	seen := make(map[int]bool, len(categories))
	for _, cat := range categories {
		if seen[cat.ID] {
			return fmt.Errorf("%w: duplicate category id %d", stock.ErrInvalidInput, cat.ID)
		}
		seen[cat.ID] = true
	}
	return nil
}

func checkQuantities(s stock.Stock) error {
	for i, item := range s.Products {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: product %d has quantity %d", stock.ErrInvalidInput, i, item.Quantity)
		}
	}
	return nil
}
