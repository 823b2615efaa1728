// Package stock provides the domain types for household stock management.
package stock

// Category is a product class the household keeps in stock.
type Category struct {
	ID                     int      `json:"id"`
	OnlineShopLink         []string `json:"onlineShopLink"`
	UsualExpiryCheckDays   int      `json:"usualExpiryCheckDays"`
	QuantityOverride       string   `json:"quantityOverride"`
	RecommendedQtyDayAdult float64  `json:"recommendedQtyDayAdult"`
	ProductType            string   `json:"productType"`
	Description            string   `json:"description"`
	DefaultUnit            *string  `json:"defaultUnit,omitempty"`
	Quantity               int      `json:"quantity"`
}

// StockItem is one physical item on the shelf.
// TypeID references Category.ID.
type StockItem struct {
	TypeID      int    `json:"typeId"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	AddedDate   string `json:"addedDate"`
	CheckedDate string `json:"checkedDate"`
	NextCheck   string `json:"nextCheck"`
}

// Stock is the persisted stock record.
type Stock struct {
	Products []StockItem `json:"products"`
}

// CategoriesRecord is the persisted categories record.
type CategoriesRecord struct {
	BaseCategories []Category `json:"baseCategories"`
	LastUpdate     string     `json:"lastUpdate"`
}

// UserProfile is an opaque key-value record.
type UserProfile map[string]any

// ProductDataset is the in-memory aggregate of categories and stock.
type ProductDataset struct {
	LastCategoriesUpdate string     `json:"lastCategoriesUpdate"`
	BaseCategories       []Category `json:"baseCategories"`
	Stock                Stock      `json:"stock"`
}

// EmptyDataset returns a dataset with no categories and no stock.
func EmptyDataset() ProductDataset {
	return ProductDataset{
		BaseCategories: []Category{},
		Stock:          Stock{Products: []StockItem{}},
	}
}

// DefaultStock returns the stock record written on initialization.
func DefaultStock() Stock {
	return Stock{Products: []StockItem{}}
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	out := c
	if c.OnlineShopLink != nil {
		out.OnlineShopLink = append([]string{}, c.OnlineShopLink...)
	}
	if c.DefaultUnit != nil {
		unit := *c.DefaultUnit
		out.DefaultUnit = &unit
	}
	return out
}

// CloneCategories returns a deep copy of the category list, never nil.
func CloneCategories(categories []Category) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.Clone())
	}
	return out
}

// Clone returns a deep copy of the stock record, never with nil products.
func (s Stock) Clone() Stock {
	products := make([]StockItem, len(s.Products))
	copy(products, s.Products)
	return Stock{Products: products}
}

// Clone returns a deep copy of the dataset.
func (d ProductDataset) Clone() ProductDataset {
	return ProductDataset{
		LastCategoriesUpdate: d.LastCategoriesUpdate,
		BaseCategories:       CloneCategories(d.BaseCategories),
		Stock:                d.Stock.Clone(),
	}
}

// IsEmpty reports whether the dataset holds neither categories nor stock.
func (d ProductDataset) IsEmpty() bool {
	return len(d.BaseCategories) == 0 && len(d.Stock.Products) == 0 && d.LastCategoriesUpdate == ""
}

// NextCategoryID returns one more than the highest category id, or 1.
func NextCategoryID(categories []Category) int {
	highest := 0
	for _, c := range categories {
		if c.ID > highest {
			highest = c.ID
		}
	}
	return highest + 1
}

// FindCategory returns the index of the category with the given id, or -1.
func FindCategory(categories []Category, id int) int {
	for i, c := range categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// WithoutType returns the products whose TypeID differs from typeID.
func (s Stock) WithoutType(typeID int) Stock {
	kept := make([]StockItem, 0, len(s.Products))
	for _, item := range s.Products {
		if item.TypeID != typeID {
			kept = append(kept, item)
		}
	}
	return Stock{Products: kept}
}
