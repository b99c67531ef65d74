package model

import "strings"

// ModelID identifies a classifier variant inside the client
type ModelID string

const (
	ModelResNet50     ModelID = "resnet50"
	ModelEfficientNet ModelID = "efficientnet"
)

// ModelOption is one entry of the closed classifier catalog
type ModelOption struct {
	ID    ModelID
	Label string
}

// Catalog lists the selectable classifiers; the first entry is the default
var Catalog = []ModelOption{
	{ID: ModelResNet50, Label: "ResNet50"},
	{ID: ModelEfficientNet, Label: "EfficientNet"},
}

// DefaultModel returns the classifier selected at startup
func DefaultModel() ModelID {
	return Catalog[0].ID
}

// String returns the string representation of ModelID
func (id ModelID) String() string {
	return string(id)
}

// Valid reports whether the id belongs to the catalog
func (id ModelID) Valid() bool {
	_, ok := LookupModel(string(id))
	return ok
}

// Heading returns the id upper-cased for result headers
func (id ModelID) Heading() string {
	return strings.ToUpper(string(id))
}

// LookupModel finds a catalog entry by id
func LookupModel(id string) (ModelOption, bool) {
	for _, option := range Catalog {
		if string(option.ID) == id {
			return option, true
		}
	}
	return ModelOption{}, false
}

// LookupModelByLabel finds a catalog entry by its display label
func LookupModelByLabel(label string) (ModelOption, bool) {
	for _, option := range Catalog {
		if option.Label == label {
			return option, true
		}
	}
	return ModelOption{}, false
}

// ModelLabels returns the display labels in catalog order
func ModelLabels() []string {
	labels := make([]string, 0, len(Catalog))
	for _, option := range Catalog {
		labels = append(labels, option.Label)
	}
	return labels
}
