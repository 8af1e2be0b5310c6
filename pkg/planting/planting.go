package planting

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusHarvested Status = "HARVESTED"
	StatusCancelled Status = "CANCELLED"
)

// Planting records one sown area: what was sown, where, how much, and when
// it lives. Only ACTIVE plantings whose sowing-to-harvest interval overlaps
// a query window participate in supply aggregation.
type Planting struct {
	Id          string
	CropId      string
	VarietyId   string // empty = no specific variety
	RanchId     string
	PlotId      string
	Hectares    decimal.Decimal
	SowingDate  time.Time
	HarvestDate time.Time
	// SowingIsoWeek / HarvestIsoWeek are derived "YYYY-Www" keys, recomputed
	// on every write.
	SowingIsoWeek  string
	HarvestIsoWeek string
	Status         Status
	Tabla          string // free-text field label, optional
}

// Detailed carries the catalog names joined in for listing and the
// weekly-plan view.
type Detailed struct {
	Planting
	CropName    string
	VarietyName string
	RanchName   string
	PlotName    string
}

// Filter narrows planting listings. Zero values mean "no restriction".
type Filter struct {
	CropId      string
	RanchId     string
	PlotId      string
	SowFrom     time.Time
	SowTo       time.Time
	HarvestFrom time.Time
	HarvestTo   time.Time
	Tabla       string // case-insensitive substring match
}

var ErrNotFound = errors.New("planting not found")
var ErrMissingFields = errors.New("crop, ranch, plot, hectares and dates are required")
var ErrDatesOutOfOrder = errors.New("sowing date must be on or before harvest date")
var ErrNonPositiveHectares = errors.New("hectares must be greater than zero")

// OverlapsRange reports whether the planting is alive during any part of
// the inclusive [start, end] window.
func (p Planting) OverlapsRange(start, end time.Time) bool {
	return !p.SowingDate.After(end) && !p.HarvestDate.Before(start)
}

// Validate enforces the invariants shared by create and update.
func (p Planting) Validate() error {
	if p.CropId == "" || p.RanchId == "" || p.PlotId == "" || p.SowingDate.IsZero() || p.HarvestDate.IsZero() {
		return ErrMissingFields
	}
	if p.SowingDate.After(p.HarvestDate) {
		return ErrDatesOutOfOrder
	}
	if !p.Hectares.IsPositive() {
		return ErrNonPositiveHectares
	}
	return nil
}
