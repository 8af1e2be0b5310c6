package product

import "errors"

// Classification separates fertilizers from agrochemicals in recipes and in
// the warehouse pivot.
type Classification string

const (
	ClassificationFertilizante Classification = "FERTILIZANTE"
	ClassificationAgroquimico  Classification = "AGROQUIMICO"
)

// Product is a warehouse catalog entry. Recipe items reference products and
// never own them.
type Product struct {
	Id             string
	Name           string
	Unit           string
	Classification Classification
}

var ErrProductNotFound = errors.New("product not found")
