package recipe

import (
	"errors"
	"strings"
	"unicode"

	"github.com/agroplan/agroplan/pkg/product"
	"github.com/agroplan/agroplan/pkg/ranch"
	"github.com/agroplan/agroplan/pkg/seasonality"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Recipe is a dosage package: the products to apply to a crop (optionally a
// specific variety) at a given growth week, optionally gated by seasonality
// and sowing environment. Recipes sharing (crop, variety, growthWeek) are
// all candidates; the selection strategy disambiguates at query time.
type Recipe struct {
	Id             string
	Name           string
	Classification product.Classification
	CropId         string
	VarietyId      string // empty = applies to the whole crop
	GrowthWeek     int
	Temporalidad   string // raw seasonality expression, "" or "Anual" = year-round
	SowingType     string // raw, normalized on demand
	IsActive       bool
	Items          []Item

	season *seasonality.Seasonality
}

// Item is one product line inside a recipe. Items are owned by their recipe
// and replaced wholesale on update.
type Item struct {
	Id            string
	ProductId     string
	Product       string
	Unit          string
	QtyPerHectare decimal.Decimal
	Notes         string
}

var ErrNotFound = errors.New("recipe not found")
var ErrMissingFields = errors.New("name, classification, crop and growth week are required")
var ErrUnknownStrategy = errors.New("unknown recipe selection strategy")
var ErrInvalidSeasonality = errors.New("invalid temporalidad expression")

// Season returns the parsed seasonality expression, parsing it once and
// caching the result on the recipe.
func (r *Recipe) Season() seasonality.Seasonality {
	if r.season == nil {
		s := seasonality.Parse(r.Temporalidad)
		r.season = &s
	}
	return *r.season
}

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizedSowingType maps the free-text sowing type to one of the two
// known environments. Anything unrecognized counts as unset.
func (r *Recipe) NormalizedSowingType() (ranch.SowingType, bool) {
	s, _, err := transform.String(stripDiacritics, r.SowingType)
	if err != nil {
		s = r.SowingType
	}
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ranch.SowingTypeGreenhouse):
		return ranch.SowingTypeGreenhouse, true
	case string(ranch.SowingTypeOpenField):
		return ranch.SowingTypeOpenField, true
	}
	return "", false
}

// Validate enforces the invariants shared by create and update.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" || r.Classification == "" || r.CropId == "" || r.GrowthWeek < 1 {
		return ErrMissingFields
	}
	return nil
}
