// Package catalog projects the bundled category template into locale
// specific categories with household quantities.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// DefaultLocale is the reference locale every translation falls back to.
const DefaultLocale = "en_US"

// FlagYes marks a quantity parameter as scaling with the household.
const FlagYes = "yes"

//go:embed data/productCategories_template.json
var bundledTemplate []byte

// Translations maps a locale identifier to translated text.
type Translations map[string]string

// In returns the text for locale, falling back to DefaultLocale when the
// locale is missing or its value is empty.
func (t Translations) In(locale string) string {
	if v := t[locale]; v != "" {
		return v
	}
	return t[DefaultLocale]
}

// TemplateCategory is one language-neutral category definition.
type TemplateCategory struct {
	ID                     int          `json:"id"`
	OnlineShopLink         []string     `json:"onlineShopLink"`
	UsualExpiryCheckDays   int          `json:"usualExpiryCheckDays"`
	RecommendedQtyDayAdult float64      `json:"recommendedQtyDayAdult"`
	QuantityMultiplier     float64      `json:"quantityMultiplier"`
	FunctionOfPeople       string       `json:"functionOfPeople"`
	FunctionOfDays         string       `json:"functionOfDays"`
	ProductType            Translations `json:"productType"`
	Description            Translations `json:"description"`
	DefaultUnit            Translations `json:"defaultUnit,omitempty"`
}

// Template is the full category template.
type Template struct {
	BaseCategories []TemplateCategory `json:"baseCategories"`
}

// ParseTemplate decodes a template document.
func ParseTemplate(data []byte) (Template, error) {
	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("failed to parse category template: %w", err)
	}
	return tpl, nil
}

// Bundled returns the template shipped with the binary. Each call decodes a
// fresh copy so callers may not affect one another.
func Bundled() Template {
	tpl, err := ParseTemplate(bundledTemplate)
	if err != nil {
		panic(err)
	}
	return tpl
}
