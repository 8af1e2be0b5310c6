package ranch

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Ranch is a production site. Plots subdivide a ranch.
type Ranch struct {
	Id   string
	Name string
}

type Plot struct {
	Id       string
	RanchId  string
	Name     string
	Hectares decimal.Decimal
}

// SowingType classifies where a planting grows, derived from its ranch.
type SowingType string

const (
	SowingTypeGreenhouse SowingType = "INVERNADERO"
	SowingTypeOpenField  SowingType = "CAMPO ABIERTO"
)

var ErrRanchNotFound = errors.New("ranch not found")

// SowingTypeOf derives the sowing environment from a ranch name: ranches
// named after their greenhouse ("Invernadero Norte") are greenhouses,
// everything else is open field.
func SowingTypeOf(ranchName string) SowingType {
	if strings.Contains(strings.ToLower(ranchName), "invernadero") {
		return SowingTypeGreenhouse
	}
	return SowingTypeOpenField
}
