package crop

import "errors"

// Crop is a cultivated species ("Maíz", "Tomate"). Varieties, plantings and
// recipes reference crops; a crop cannot be deleted while any of them do.
type Crop struct {
	Id   string
	Name string
}

// Variety belongs to exactly one Crop. Its name is unique within the crop.
type Variety struct {
	Id     string
	CropId string
	Name   string
}

var ErrCropNotFound = errors.New("crop not found")
var ErrVarietyNotFound = errors.New("variety not found")
var ErrNameConflict = errors.New("name already exists")
var ErrHasDependencies = errors.New("entity has dependent records")
