// Package weekly_plan is the field-facing counterpart of the warehouse
// pivot: the same resolution core for exactly one week, grouped by planting
// instead of by product.
package weekly_plan

import (
	"time"

	"github.com/agroplan/agroplan/pkg/planting"
	"github.com/agroplan/agroplan/pkg/product"
	"github.com/shopspring/decimal"
)

// WeekPlan lists every live planting of one ISO week with its resolved
// dosage packages.
type WeekPlan struct {
	IsoWeek    string
	RangeStart time.Time
	RangeEnd   time.Time
	Totals     Totals
	Plan       []PlanEntry
}

type Totals struct {
	Plantings int
	Hectares  decimal.Decimal
}

// PlanEntry pairs one planting with its growth week and the packages that
// apply to it. Zero packages is a valid state, not an error.
type PlanEntry struct {
	Planting   planting.Detailed
	GrowthWeek int
	Packages   []Package
}

// Package is a resolved recipe with quantities scaled to the planting's
// area.
type Package struct {
	Id             string
	Name           string
	Classification product.Classification
	GrowthWeek     int
	Temporalidad   string
	Items          []PackageItem
}

type PackageItem struct {
	ProductId     string
	Product       string
	Unit          string
	QtyPerHectare decimal.Decimal
	QtyTotal      decimal.Decimal
}
