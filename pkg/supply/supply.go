// Package supply aggregates recipe dosages over live plantings into a
// product-by-week pivot, the warehouse's shopping list for a week or a
// span of weeks within one ISO year.
package supply

import (
	"errors"

	"github.com/agroplan/agroplan/pkg/product"
	"github.com/shopspring/decimal"
)

type Scope string

const (
	ScopeWeek Scope = "week"
	ScopeYear Scope = "year"
)

// Query narrows the aggregation. Zero-valued filters mean "all"; Year 0
// defaults to the current UTC year, Week 0 to week 1.
type Query struct {
	Year      int
	Week      int
	Scope     Scope
	WeekStart int
	WeekEnd   int
	RanchId   string
	Zone      string
	CropId    string
}

// Result is the pivot: one row per product, one cell per week column.
type Result struct {
	Year    int
	Week    int
	Columns []string
	Totals  []ProductRow
	Meta    Meta
}

// ProductRow aggregates everything one product needs over the window,
// attributed to the recipes that demanded it.
type ProductRow struct {
	ProductId      string
	Name           string
	Unit           string
	Classification product.Classification
	Total          decimal.Decimal
	Cells          map[string]decimal.Decimal
	Sources        []Source
}

// Source records one recipe's share of a product row.
type Source struct {
	RecipeId            string
	RecipeName          string
	Temporalidad        string
	GrowthWeek          int
	Classification      product.Classification
	TotalFromThisRecipe decimal.Decimal
	Occurrences         int
}

type Meta struct {
	CountPlantings int
	ZoneUsed       string
	RanchIdsUsed   []string
	RanchNamesUsed []string
	Scope          Scope
	WeekStart      int
	WeekEnd        int
}

var ErrInvalidQuery = errors.New("invalid supply query")
