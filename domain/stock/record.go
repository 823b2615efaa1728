package stock

import "fmt"

// Record names one of the independently persisted datasets.
type Record string

const (
	// RecordCategories holds the category definitions.
	RecordCategories Record = "categories"
	// RecordStock holds the stock items.
	RecordStock Record = "stock"
	// RecordProfile holds the user profile.
	RecordProfile Record = "profile"
)

// Records lists every record in deletion order.
func Records() []Record {
	return []Record{RecordCategories, RecordStock, RecordProfile}
}

// Verbs used to build host operation names.
const (
	VerbRead   = "read"
	VerbWrite  = "write"
	VerbDelete = "delete"
)

// Valid reports whether r is a known record.
func (r Record) Valid() bool {
	switch r {
	case RecordCategories, RecordStock, RecordProfile:
		return true
	}
	return false
}

// slug is the operation suffix used by the host process.
func (r Record) slug() string {
	switch r {
	case RecordCategories:
		return "product-categories"
	case RecordStock:
		return "stock"
	case RecordProfile:
		return "user-profile"
	}
	return string(r)
}

// Operation returns the host operation name, e.g. "read-product-categories".
func (r Record) Operation(verb string) string {
	return fmt.Sprintf("%s-%s", verb, r.slug())
}

// LocalKey returns the key used by the local key-value store.
func (r Record) LocalKey() string {
	switch r {
	case RecordCategories:
		return "mystock_product_categories"
	case RecordStock:
		return "mystock_stock"
	case RecordProfile:
		return "mystock_user_profile"
	}
	return "mystock_" + string(r)
}

// FileName returns the object name used by the host file store.
func (r Record) FileName() string {
	switch r {
	case RecordCategories:
		return "productCategories.json"
	case RecordStock:
		return "stock.json"
	case RecordProfile:
		return "userProfile.json"
	}
	return string(r) + ".json"
}

// ParseRecord converts a record name into a Record.
func ParseRecord(name string) (Record, error) {
	r := Record(name)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRecord, name)
	}
	return r, nil
}
