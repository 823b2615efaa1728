package catalog

import (
	"math"

	"github.com/preppal-io/prep-pal/domain/stock"
)

// QuantityFunc computes the recommended quantity for a template category.
type QuantityFunc func(TemplateCategory) int

// HouseholdQuantity returns a QuantityFunc for a household of people over
// days. A factor only applies when its flag is exactly "yes"; a zero or
// non-finite multiplier yields 0 and the result is never negative. Products
// beyond the int range saturate at math.MaxInt.
func HouseholdQuantity(people, days int) QuantityFunc {
	return func(c TemplateCategory) int {
		peopleFactor := 1.0
		if c.FunctionOfPeople == FlagYes {
			peopleFactor = float64(people)
		}
		daysFactor := 1.0
		if c.FunctionOfDays == FlagYes {
			daysFactor = float64(days)
		}

		product := peopleFactor * daysFactor * c.QuantityMultiplier
		if math.IsNaN(product) || math.IsInf(product, 0) || product <= 0 {
			return 0
		}
		product = math.Ceil(product)
		if product >= float64(math.MaxInt) {
			return math.MaxInt
		}
		return int(product)
	}
}

// DeriveCategories projects tpl into locale. Each text field falls back to
// DefaultLocale on its own. A nil computeQuantity assigns 1 to every category.
func DeriveCategories(tpl Template, locale string, computeQuantity QuantityFunc) []stock.Category {
	if computeQuantity == nil {
		computeQuantity = func(TemplateCategory) int { return 1 }
	}

	categories := make([]stock.Category, 0, len(tpl.BaseCategories))
	for _, tc := range tpl.BaseCategories {
		c := stock.Category{
			ID:                     tc.ID,
			OnlineShopLink:         append([]string{}, tc.OnlineShopLink...),
			UsualExpiryCheckDays:   tc.UsualExpiryCheckDays,
			QuantityOverride:       "",
			RecommendedQtyDayAdult: tc.RecommendedQtyDayAdult,
			ProductType:            tc.ProductType.In(locale),
			Description:            tc.Description.In(locale),
			Quantity:               computeQuantity(tc),
		}
		if tc.DefaultUnit != nil {
			if unit := tc.DefaultUnit.In(locale); unit != "" {
				c.DefaultUnit = &unit
			}
		}
		if c.Quantity < 0 {
			c.Quantity = 0
		}
		categories = append(categories, c)
	}
	return categories
}
