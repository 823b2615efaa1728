package inventory

import "github.com/preppal-io/prep-pal/domain/stock"

// ErrorKind classifies a recorded failure.
type ErrorKind string

const (
	ErrorNotFound       ErrorKind = "not_found"
	ErrorBackend        ErrorKind = "backend"
	ErrorPartialFailure ErrorKind = "partial_failure"
	ErrorInvalid        ErrorKind = "invalid"
)

// Phase is the coarse lifecycle position of the coordinator.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseChecking      Phase = "checking"
	PhaseReady         Phase = "ready"
	PhaseEmpty         Phase = "empty"
	PhaseError         Phase = "error"
)

// ErrorState is the last recorded failure with a localized message.
type ErrorState struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// FilesExist tracks which records are known to be persisted.
type FilesExist struct {
	Categories bool `json:"categories"`
	Stock      bool `json:"stock"`
}

// State is the observable coordinator state.
type State struct {
	Phase      Phase       `json:"phase"`
	Loading    bool        `json:"loading"`
	Error      *ErrorState `json:"error"`
	FilesExist FilesExist  `json:"filesExist"`
}

// Snapshot is a copy of the dataset and state at one point in time.
type Snapshot struct {
	Dataset stock.ProductDataset `json:"dataset"`
	State   State                `json:"state"`
	Locale  string               `json:"locale"`
	Backend string               `json:"backend"`
}

// NewCategory holds the caller supplied fields of a category to add.
// OnlineShopLink is a single link stored as given; an empty one yields no
// links.
type NewCategory struct {
	OnlineShopLink         string  `json:"onlineShopLink"`
	UsualExpiryCheckDays   int     `json:"usualExpiryCheckDays" validate:"gte=0"`
	QuantityOverride       string  `json:"quantityOverride"`
	RecommendedQtyDayAdult float64 `json:"recommendedQtyDayAdult" validate:"gte=0"`
	ProductType            string  `json:"productType"`
	Description            string  `json:"description"`
	DefaultUnit            *string `json:"defaultUnit,omitempty"`
	Quantity               int     `json:"quantity" validate:"gte=0"`
}

// CategoryPatch holds the fields to merge into an existing category.
// Nil fields are left unchanged. The id cannot be patched.
type CategoryPatch struct {
	OnlineShopLink         *[]string `json:"onlineShopLink,omitempty"`
	UsualExpiryCheckDays   *int      `json:"usualExpiryCheckDays,omitempty" validate:"omitempty,gte=0"`
	QuantityOverride       *string   `json:"quantityOverride,omitempty"`
	RecommendedQtyDayAdult *float64  `json:"recommendedQtyDayAdult,omitempty" validate:"omitempty,gte=0"`
	ProductType            *string   `json:"productType,omitempty" validate:"omitempty,min=1"`
	Description            *string   `json:"description,omitempty"`
	DefaultUnit            *string   `json:"defaultUnit,omitempty"`
	Quantity               *int      `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

// NewStockItem holds the fields of a stock item to add.
type NewStockItem struct {
	TypeID      int    `json:"typeId" validate:"required,gt=0"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity" validate:"required,gte=1"`
}

// InitializeParams sizes the initial dataset. Zero values select the
// defaults of one person for thirty days.
type InitializeParams struct {
	People int `json:"people" validate:"gte=0"`
	Days   int `json:"days" validate:"gte=0"`
}

// EmptyRequest is the request of services that take no input.
type EmptyRequest struct{}

// SnapshotResponse is the response of the snapshot service.
type SnapshotResponse struct {
	Snapshot Snapshot `json:"snapshot"`
	Error    string   `json:"error,omitempty"`
}

// OperationResponse is the response of every mutating service. ID is set
// by add-category. Error carries the localized message on failure.
type OperationResponse struct {
	Success   bool      `json:"success"`
	ID        int       `json:"id,omitempty"`
	Snapshot  Snapshot  `json:"snapshot"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// UpdateCategoryRequest is the request of the update-category service.
type UpdateCategoryRequest struct {
	ID    int           `json:"id"`
	Patch CategoryPatch `json:"patch"`
}

// DeleteCategoryRequest is the request of the delete-category service.
type DeleteCategoryRequest struct {
	ID int `json:"id"`
}

// SaveCategoriesRequest is the request of the save-categories service.
type SaveCategoriesRequest struct {
	BaseCategories []stock.Category `json:"baseCategories"`
}

// SaveStockRequest is the request of the save-stock service.
type SaveStockRequest struct {
	Stock stock.Stock `json:"stock"`
}

// SetLocaleRequest is the request of the set-locale service.
type SetLocaleRequest struct {
	Locale string `json:"locale"`
}
